package catalog

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/quoteflow/quoteflow/internal/application/dto"
	"github.com/quoteflow/quoteflow/internal/domain"
	"github.com/quoteflow/quoteflow/internal/domain/entity"
	"github.com/quoteflow/quoteflow/internal/domain/repository"
)

// CatalogUseCase covers catalog CRUD, search, bulk import and the tabular
// import/export round-trip. File-based imports parse the whole envelope
// first, then hand the rows to the BulkImporter.
type CatalogUseCase struct {
	items      repository.CatalogItemRepository
	categories repository.CategoryRepository
	reconciler *CategoryReconciler
	importer   *BulkImporter
	csv        TabularCodec
	xlsx       TabularCodec
	now        func() time.Time
}

// NewCatalogUseCase builds the use case. now is injectable for tests; nil
// means time.Now.
func NewCatalogUseCase(
	items repository.CatalogItemRepository,
	categories repository.CategoryRepository,
	reconciler *CategoryReconciler,
	importer *BulkImporter,
	csv TabularCodec,
	xlsx TabularCodec,
	now func() time.Time,
) *CatalogUseCase {
	if now == nil {
		now = time.Now
	}
	return &CatalogUseCase{
		items:      items,
		categories: categories,
		reconciler: reconciler,
		importer:   importer,
		csv:        csv,
		xlsx:       xlsx,
		now:        now,
	}
}

// ── Categories ────────────────────────────────────────────────────────────────

// CreateCategory creates a category by explicit request. Reconciliation is
// reused so a concurrent import of the same name cannot produce a duplicate.
func (uc *CatalogUseCase) CreateCategory(companyID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.reconciler.Reconcile(companyID, in.Name)
	if err != nil {
		return nil, err
	}
	if in.Description != "" && category.Description == "" {
		category.Description = in.Description
		category.UpdatedAt = uc.now()
		if err := uc.categories.Update(category); err != nil {
			return nil, err
		}
	}
	return toCategoryResponse(category), nil
}

// ListCategories lists the company's categories.
func (uc *CatalogUseCase) ListCategories(companyID string) ([]dto.CategoryResponse, error) {
	categories, err := uc.categories.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

// ── Items ─────────────────────────────────────────────────────────────────────

// CreateItem creates a catalog item referencing an existing category.
func (uc *CatalogUseCase) CreateItem(companyID string, in dto.CreateCatalogItemRequest) (*dto.CatalogItemResponse, error) {
	if strings.TrimSpace(in.Description) == "" && strings.TrimSpace(in.Code) == "" {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.requireCategory(companyID, in.CategoryID)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	item := &entity.CatalogItem{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		CategoryID:  category.ID,
		Code:        in.Code,
		Description: in.Description,
		Unit:        in.Unit,
		Price:       in.Price,
		Notes:       in.Notes,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.items.Create(item); err != nil {
		return nil, err
	}
	resp := toItemResponse(item)
	resp.CategoryName = category.Name
	return resp, nil
}

// UpdateItem updates a catalog item, company-scoped. Deactivation goes
// through the Active flag; items are never hard-deleted here.
func (uc *CatalogUseCase) UpdateItem(companyID, id string, in dto.UpdateCatalogItemRequest) (*dto.CatalogItemResponse, error) {
	item, err := uc.items.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil || item.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if in.Code != nil {
		item.Code = *in.Code
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Unit != nil {
		item.Unit = *in.Unit
	}
	if in.Price != nil {
		item.Price = *in.Price
	}
	if in.CategoryID != nil {
		category, err := uc.requireCategory(companyID, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		item.CategoryID = category.ID
	}
	if in.Notes != nil {
		item.Notes = *in.Notes
	}
	if in.Active != nil {
		item.Active = *in.Active
	}
	item.UpdatedAt = uc.now()
	if err := uc.items.Update(item); err != nil {
		return nil, err
	}
	return uc.withCategoryName(item), nil
}

// ListItems lists the company's active catalog items.
func (uc *CatalogUseCase) ListItems(companyID string) ([]dto.CatalogItemResponse, error) {
	items, err := uc.items.ListByCompany(companyID, true)
	if err != nil {
		return nil, err
	}
	return uc.toItemResponses(items), nil
}

// Search finds active items matching the free-text query in code or
// description, optionally restricted to one category.
func (uc *CatalogUseCase) Search(companyID, query, categoryID string) ([]dto.CatalogItemResponse, error) {
	items, err := uc.items.Search(companyID, query, categoryID)
	if err != nil {
		return nil, err
	}
	return uc.toItemResponses(items), nil
}

// ── Bulk import / tabular transfer ────────────────────────────────────────────

// BulkImport ingests already-normalized rows (JSON body).
func (uc *CatalogUseCase) BulkImport(companyID string, rows []dto.ImportRow) *dto.ImportResult {
	return uc.importer.Import(companyID, rows)
}

// ImportCSV parses raw CSV text and ingests the rows.
func (uc *CatalogUseCase) ImportCSV(companyID, fileContent string) (*dto.ImportResult, error) {
	rows, err := uc.csv.Parse([]byte(fileContent))
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return uc.importer.Import(companyID, rows), nil
}

// ImportXLSX decodes the base64 workbook and ingests the rows of its first
// sheet.
func (uc *CatalogUseCase) ImportXLSX(companyID, fileContent string) (*dto.ImportResult, error) {
	raw, err := base64.StdEncoding.DecodeString(fileContent)
	if err != nil {
		return nil, fmt.Errorf("%w: file content is not base64", domain.ErrInvalidInput)
	}
	rows, err := uc.xlsx.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse xlsx: %w", err)
	}
	return uc.importer.Import(companyID, rows), nil
}

// ExportCSV writes the whole catalog (active and inactive) as CSV.
func (uc *CatalogUseCase) ExportCSV(companyID string) ([]byte, error) {
	rows, err := uc.ExportRows(companyID)
	if err != nil {
		return nil, err
	}
	return uc.csv.Generate(rows)
}

// ExportXLSX writes the whole catalog as an XLSX workbook.
func (uc *CatalogUseCase) ExportXLSX(companyID string) ([]byte, error) {
	rows, err := uc.ExportRows(companyID)
	if err != nil {
		return nil, err
	}
	return uc.xlsx.Generate(rows)
}

// ExportRows flattens the catalog into the shared tabular schema. Category
// is exported by name so a re-import reconciles against the same categories
// instead of failing on unknown ids.
func (uc *CatalogUseCase) ExportRows(companyID string) ([]dto.ImportRow, error) {
	items, err := uc.items.ListByCompany(companyID, false)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string)
	rows := make([]dto.ImportRow, 0, len(items))
	for _, item := range items {
		name, ok := names[item.CategoryID]
		if !ok {
			if category, cErr := uc.categories.GetByID(item.CategoryID); cErr == nil && category != nil {
				name = category.Name
			}
			names[item.CategoryID] = name
		}
		rows = append(rows, dto.ImportRow{
			Code:        item.Code,
			Description: item.Description,
			Unit:        item.Unit,
			Price:       item.Price,
			Category:    name,
			Notes:       item.Notes,
		})
	}
	return rows, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

// requireCategory validates that the category exists and belongs to the
// company. A cross-company category reads as not found.
func (uc *CatalogUseCase) requireCategory(companyID, categoryID string) (*entity.Category, error) {
	if categoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.categories.GetByID(categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil || category.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return category, nil
}

func (uc *CatalogUseCase) withCategoryName(item *entity.CatalogItem) *dto.CatalogItemResponse {
	resp := toItemResponse(item)
	if category, err := uc.categories.GetByID(item.CategoryID); err == nil && category != nil {
		resp.CategoryName = category.Name
	}
	return resp
}

func (uc *CatalogUseCase) toItemResponses(items []*entity.CatalogItem) []dto.CatalogItemResponse {
	names := make(map[string]string)
	out := make([]dto.CatalogItemResponse, 0, len(items))
	for _, item := range items {
		resp := toItemResponse(item)
		name, ok := names[item.CategoryID]
		if !ok {
			if category, err := uc.categories.GetByID(item.CategoryID); err == nil && category != nil {
				name = category.Name
			}
			names[item.CategoryID] = name
		}
		resp.CategoryName = name
		out = append(out, *resp)
	}
	return out
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

func toItemResponse(item *entity.CatalogItem) *dto.CatalogItemResponse {
	return &dto.CatalogItemResponse{
		ID:          item.ID,
		Code:        item.Code,
		Description: item.Description,
		Unit:        item.Unit,
		Price:       item.Price,
		CategoryID:  item.CategoryID,
		Notes:       item.Notes,
		Active:      item.Active,
		CreatedAt:   item.CreatedAt,
	}
}
