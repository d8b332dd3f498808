package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/quoteflow/quoteflow/internal/domain/entity"
	"github.com/quoteflow/quoteflow/internal/domain/repository"
)

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

// QuoteRepo implements QuoteRepository (usable with pool or tx).
type QuoteRepo struct {
	q Querier
}

// NewQuoteRepository builds the adapter. Pass a pool or a tx (Querier).
func NewQuoteRepository(q Querier) *QuoteRepo {
	return &QuoteRepo{q: q}
}

// Create persists the quote header.
func (r *QuoteRepo) Create(quote *entity.Quote) error {
	if quote.ID == "" {
		quote.ID = uuid.New().String()
	}
	query := `
		INSERT INTO quotes (id, company_id, number, title, subtotal, vat_rate, vat_amount, total, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		quote.ID, quote.CompanyID, quote.Number, quote.Title,
		quote.Subtotal, quote.VATRate, quote.VATAmount, quote.Total,
		quote.Status, quote.CreatedAt, quote.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("quote number already exists: %w", err)
		}
		return fmt.Errorf("insert quote: %w", err)
	}
	return nil
}

// CreateItem persists one quote line.
func (r *QuoteRepo) CreateItem(item *entity.QuoteItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO quote_items (id, quote_id, catalog_item_id, position, quantity, unit_price, discount, total, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.QuoteID, item.CatalogItemID, item.Position,
		item.Quantity, item.UnitPrice, item.Discount, item.Total, item.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert quote item: %w", err)
	}
	return nil
}

// GetByID fetches a quote header by id.
func (r *QuoteRepo) GetByID(id string) (*entity.Quote, error) {
	query := `
		SELECT id, company_id, number, title, subtotal, vat_rate, vat_amount, total, status, created_at, updated_at
		FROM quotes WHERE id = $1`
	var q entity.Quote
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&q.ID, &q.CompanyID, &q.Number, &q.Title,
		&q.Subtotal, &q.VATRate, &q.VATAmount, &q.Total,
		&q.Status, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}
	return &q, nil
}

// GetItemsByQuoteID fetches the quote's lines in their original order.
func (r *QuoteRepo) GetItemsByQuoteID(quoteID string) ([]*entity.QuoteItem, error) {
	query := `
		SELECT id, quote_id, catalog_item_id, position, quantity, unit_price, discount, total, notes
		FROM quote_items WHERE quote_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, quoteID)
	if err != nil {
		return nil, fmt.Errorf("list quote items: %w", err)
	}
	defer rows.Close()
	var list []*entity.QuoteItem
	for rows.Next() {
		var it entity.QuoteItem
		if err := rows.Scan(&it.ID, &it.QuoteID, &it.CatalogItemID, &it.Position,
			&it.Quantity, &it.UnitPrice, &it.Discount, &it.Total, &it.Notes); err != nil {
			return nil, fmt.Errorf("scan quote item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// ListByCompany lists quote headers for a company, newest first.
func (r *QuoteRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Quote, error) {
	query := `
		SELECT id, company_id, number, title, subtotal, vat_rate, vat_amount, total, status, created_at, updated_at
		FROM quotes WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Quote
	for rows.Next() {
		var q entity.Quote
		if err := rows.Scan(&q.ID, &q.CompanyID, &q.Number, &q.Title,
			&q.Subtotal, &q.VATRate, &q.VATAmount, &q.Total,
			&q.Status, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		list = append(list, &q)
	}
	return list, rows.Err()
}

// UpdateStatus updates only the status label.
func (r *QuoteRepo) UpdateStatus(id, status string, updatedAt time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE quotes SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update quote status: %w", err)
	}
	return nil
}

// Delete removes a quote; quote_items cascade at the schema level.
func (r *QuoteRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM quotes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	return nil
}
