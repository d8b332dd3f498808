package quoting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/quoteflow/quoteflow/internal/application/dto"
	"github.com/quoteflow/quoteflow/internal/domain"
	"github.com/quoteflow/quoteflow/internal/domain/entity"
	"github.com/quoteflow/quoteflow/internal/domain/repository"
)

// QuoteUseCase covers the quote lifecycle: atomic creation with pricing and
// number allocation, company-scoped reads, status transitions and deletion.
//
// Every fetched quote is checked against the caller's company; a mismatch is
// reported as not found, indistinguishable from a quote that does not exist.
type QuoteUseCase struct {
	txRunner    QuoteTxRunner
	quoteRepo   repository.QuoteRepository
	catalogRepo repository.CatalogItemRepository
	allocator   *QuoteNumberAllocator
	now         func() time.Time
}

// NewQuoteUseCase builds the use case. now is injectable for tests; nil
// means time.Now.
func NewQuoteUseCase(
	txRunner QuoteTxRunner,
	quoteRepo repository.QuoteRepository,
	catalogRepo repository.CatalogItemRepository,
	allocator *QuoteNumberAllocator,
	now func() time.Time,
) *QuoteUseCase {
	if now == nil {
		now = time.Now
	}
	return &QuoteUseCase{
		txRunner:    txRunner,
		quoteRepo:   quoteRepo,
		catalogRepo: catalogRepo,
		allocator:   allocator,
		now:         now,
	}
}

// Create prices the requested lines, allocates the visible number and
// persists the quote with all its items in one transaction. Any validation
// failure rejects the whole request; no partial quote is ever stored.
func (uc *QuoteUseCase) Create(ctx context.Context, companyID string, in dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	// Resolve catalog references first (read-only, outside the tx). A line
	// pointing at another company's item reads as not found.
	catalogByID := make(map[string]*entity.CatalogItem, len(in.Items))
	lines := make([]LineInput, 0, len(in.Items))
	for _, item := range in.Items {
		if item.CatalogItemID == "" {
			return nil, domain.ErrInvalidInput
		}
		ci, err := uc.catalogRepo.GetByID(item.CatalogItemID)
		if err != nil {
			return nil, err
		}
		if ci == nil || ci.CompanyID != companyID {
			return nil, domain.ErrNotFound
		}
		catalogByID[item.CatalogItemID] = ci
		lines = append(lines, LineInput{
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
			Discount:  item.Discount,
		})
	}

	totals, err := ComputeTotals(lines)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	quote := &entity.Quote{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Title:     in.Title,
		Subtotal:  totals.Subtotal,
		VATRate:   totals.VATRate,
		VATAmount: totals.VATAmount,
		Total:     totals.Total,
		Status:    entity.QuoteStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	items := make([]*entity.QuoteItem, 0, len(in.Items))
	for i, item := range in.Items {
		items = append(items, &entity.QuoteItem{
			ID:            uuid.New().String(),
			QuoteID:       quote.ID,
			CatalogItemID: item.CatalogItemID,
			Position:      i + 1,
			Quantity:      item.Quantity,
			UnitPrice:     item.Price,
			Discount:      item.Discount,
			Total:         totals.LineTotals[i],
			Notes:         item.Notes,
		})
	}

	err = uc.txRunner.RunQuote(ctx, func(
		quoteRepo repository.QuoteRepository,
		counterRepo repository.QuoteCounterRepository,
	) error {
		number, err := uc.allocator.Allocate(counterRepo)
		if err != nil {
			return err
		}
		quote.Number = number
		if err := quoteRepo.Create(quote); err != nil {
			return err
		}
		for _, it := range items {
			if err := quoteRepo.CreateItem(it); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.toResponse(quote, items, catalogByID), nil
}

// Get returns one quote with its lines, scoped to the caller's company.
func (uc *QuoteUseCase) Get(ctx context.Context, companyID, id string) (*dto.QuoteResponse, error) {
	quote, items, err := uc.load(companyID, id)
	if err != nil {
		return nil, err
	}
	catalog, err := uc.catalogLookup(items)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(quote, items, catalog), nil
}

// List returns the company's quotes, newest first, without lines.
func (uc *QuoteUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.QuoteListResponse, error) {
	page.DefaultPage()
	quotes, err := uc.quoteRepo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		items = append(items, *uc.toResponse(q, nil, nil))
	}
	return &dto.QuoteListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// UpdateStatus applies a status transition. Any non-empty label is accepted;
// there is deliberately no transition graph.
func (uc *QuoteUseCase) UpdateStatus(ctx context.Context, companyID, id, status string) (*dto.QuoteResponse, error) {
	if status == "" {
		return nil, domain.ErrInvalidInput
	}
	quote, items, err := uc.load(companyID, id)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	if err := uc.quoteRepo.UpdateStatus(id, status, now); err != nil {
		return nil, err
	}
	quote.Status = status
	quote.UpdatedAt = now
	catalog, err := uc.catalogLookup(items)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(quote, items, catalog), nil
}

// Delete removes a quote and its lines, scoped to the caller's company.
func (uc *QuoteUseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, _, err := uc.load(companyID, id); err != nil {
		return err
	}
	return uc.quoteRepo.Delete(id)
}

// load fetches a quote and its items with company scoping applied.
func (uc *QuoteUseCase) load(companyID, id string) (*entity.Quote, []*entity.QuoteItem, error) {
	quote, err := uc.quoteRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if quote == nil || quote.CompanyID != companyID {
		return nil, nil, domain.ErrNotFound
	}
	items, err := uc.quoteRepo.GetItemsByQuoteID(id)
	if err != nil {
		return nil, nil, err
	}
	return quote, items, nil
}

// catalogLookup resolves catalog items referenced by quote lines. Entries
// that have since been removed are tolerated; repository failures are not.
func (uc *QuoteUseCase) catalogLookup(items []*entity.QuoteItem) (map[string]*entity.CatalogItem, error) {
	lookup := make(map[string]*entity.CatalogItem, len(items))
	for _, it := range items {
		if _, ok := lookup[it.CatalogItemID]; ok {
			continue
		}
		ci, err := uc.catalogRepo.GetByID(it.CatalogItemID)
		if err != nil {
			return nil, fmt.Errorf("resolve catalog item %s: %w", it.CatalogItemID, err)
		}
		if ci != nil {
			lookup[it.CatalogItemID] = ci
		}
	}
	return lookup, nil
}

func (uc *QuoteUseCase) toResponse(q *entity.Quote, items []*entity.QuoteItem, catalog map[string]*entity.CatalogItem) *dto.QuoteResponse {
	resp := &dto.QuoteResponse{
		ID:        q.ID,
		Number:    q.Number,
		Title:     q.Title,
		Subtotal:  q.Subtotal,
		VATRate:   q.VATRate,
		VATAmount: q.VATAmount,
		Total:     q.Total,
		Status:    q.Status,
		CreatedAt: q.CreatedAt,
		Items:     make([]dto.QuoteItemResponse, 0, len(items)),
	}
	for _, it := range items {
		line := dto.QuoteItemResponse{
			ID:            it.ID,
			CatalogItemID: it.CatalogItemID,
			Quantity:      it.Quantity,
			Price:         it.UnitPrice,
			Discount:      it.Discount,
			Total:         it.Total,
			Notes:         it.Notes,
		}
		if ci := catalog[it.CatalogItemID]; ci != nil {
			line.Description = ci.Description
			line.Unit = ci.Unit
		}
		resp.Items = append(resp.Items, line)
	}
	return resp
}
