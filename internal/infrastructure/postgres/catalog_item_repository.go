package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/quoteflow/quoteflow/internal/domain/entity"
	"github.com/quoteflow/quoteflow/internal/domain/repository"
)

var _ repository.CatalogItemRepository = (*CatalogItemRepo)(nil)

// CatalogItemRepo implements CatalogItemRepository (usable with pool or tx).
type CatalogItemRepo struct {
	q Querier
}

// NewCatalogItemRepository builds the adapter. Pass a pool or a tx (Querier).
func NewCatalogItemRepository(q Querier) *CatalogItemRepo {
	return &CatalogItemRepo{q: q}
}

const catalogItemColumns = `id, company_id, category_id, code, description, unit, price, notes, active, created_at, updated_at`

// Create persists a new catalog item.
func (r *CatalogItemRepo) Create(item *entity.CatalogItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO catalog_items (` + catalogItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.CompanyID, item.CategoryID, item.Code, item.Description,
		item.Unit, item.Price, item.Notes, item.Active, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert catalog item: %w", err)
	}
	return nil
}

// GetByID fetches a catalog item by id.
func (r *CatalogItemRepo) GetByID(id string) (*entity.CatalogItem, error) {
	query := `SELECT ` + catalogItemColumns + ` FROM catalog_items WHERE id = $1`
	item, err := scanCatalogItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get catalog item: %w", err)
	}
	return item, nil
}

// Update rewrites all mutable fields.
func (r *CatalogItemRepo) Update(item *entity.CatalogItem) error {
	query := `
		UPDATE catalog_items
		SET category_id = $2, code = $3, description = $4, unit = $5,
		    price = $6, notes = $7, active = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.CategoryID, item.Code, item.Description, item.Unit,
		item.Price, item.Notes, item.Active, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update catalog item: %w", err)
	}
	return nil
}

// ListByCompany lists a company's items, optionally active only, in stable
// code order so exports are reproducible.
func (r *CatalogItemRepo) ListByCompany(companyID string, onlyActive bool) ([]*entity.CatalogItem, error) {
	query := `SELECT ` + catalogItemColumns + ` FROM catalog_items WHERE company_id = $1`
	if onlyActive {
		query += ` AND active`
	}
	query += ` ORDER BY code, created_at`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list catalog items: %w", err)
	}
	return collectCatalogItems(rows)
}

// Search finds active items whose code or description contains query
// (case-insensitive), optionally restricted to one category.
func (r *CatalogItemRepo) Search(companyID, query, categoryID string) ([]*entity.CatalogItem, error) {
	sql := `SELECT ` + catalogItemColumns + `
		FROM catalog_items
		WHERE company_id = $1 AND active
		  AND (code ILIKE '%' || $2 || '%' OR description ILIKE '%' || $2 || '%')`
	args := []any{companyID, query}
	if categoryID != "" {
		sql += ` AND category_id = $3`
		args = append(args, categoryID)
	}
	sql += ` ORDER BY code, created_at`
	rows, err := r.q.Query(context.Background(), sql, args...)
	if err != nil {
		return nil, fmt.Errorf("search catalog items: %w", err)
	}
	return collectCatalogItems(rows)
}

func scanCatalogItem(row pgx.Row) (*entity.CatalogItem, error) {
	var it entity.CatalogItem
	err := row.Scan(&it.ID, &it.CompanyID, &it.CategoryID, &it.Code, &it.Description,
		&it.Unit, &it.Price, &it.Notes, &it.Active, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func collectCatalogItems(rows pgx.Rows) ([]*entity.CatalogItem, error) {
	defer rows.Close()
	var list []*entity.CatalogItem
	for rows.Next() {
		item, err := scanCatalogItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan catalog item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}
