package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/quoteflow/quoteflow/internal/application/dto"
	"github.com/quoteflow/quoteflow/internal/domain"
	"github.com/quoteflow/quoteflow/internal/domain/entity"
	"github.com/quoteflow/quoteflow/internal/domain/repository"
)

var (
	errRowEmpty         = fmt.Errorf("%w: row needs a code or a description", domain.ErrInvalidInput)
	errRowNegativePrice = fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
)

// BulkImporter ingests catalog rows one at a time. A failing row is recorded
// and skipped; the batch always runs to the end. Row order is preserved
// within each outcome list.
type BulkImporter struct {
	reconciler *CategoryReconciler
	items      repository.CatalogItemRepository
	now        func() time.Time
}

// NewBulkImporter builds the importer. now is injectable for tests; nil
// means time.Now.
func NewBulkImporter(reconciler *CategoryReconciler, items repository.CatalogItemRepository, now func() time.Time) *BulkImporter {
	if now == nil {
		now = time.Now
	}
	return &BulkImporter{reconciler: reconciler, items: items, now: now}
}

// Import processes rows in input order. The returned result always satisfies
// len(Successful) + len(Failed) == len(rows).
func (b *BulkImporter) Import(companyID string, rows []dto.ImportRow) *dto.ImportResult {
	result := &dto.ImportResult{
		Successful: []dto.CatalogItemResponse{},
		Failed:     []dto.FailedRow{},
	}
	for _, row := range rows {
		item, err := b.importRow(companyID, row)
		if err != nil {
			result.Failed = append(result.Failed, dto.FailedRow{Row: row, Error: err.Error()})
			continue
		}
		result.Successful = append(result.Successful, *item)
	}
	return result
}

func (b *BulkImporter) importRow(companyID string, row dto.ImportRow) (*dto.CatalogItemResponse, error) {
	if err := validateRow(row); err != nil {
		return nil, err
	}

	category, err := b.reconciler.Reconcile(companyID, row.Category)
	if err != nil {
		return nil, err
	}

	now := b.now()
	item := &entity.CatalogItem{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		CategoryID:  category.ID,
		Code:        strings.TrimSpace(row.Code),
		Description: strings.TrimSpace(row.Description),
		Unit:        strings.TrimSpace(row.Unit),
		Price:       row.Price,
		Notes:       row.Notes,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := b.items.Create(item); err != nil {
		return nil, err
	}

	resp := toItemResponse(item)
	resp.CategoryName = category.Name
	return resp, nil
}

func validateRow(row dto.ImportRow) error {
	if strings.TrimSpace(row.Code) == "" && strings.TrimSpace(row.Description) == "" {
		return errRowEmpty
	}
	if row.Price.LessThan(decimal.Zero) {
		return errRowNegativePrice
	}
	return nil
}
