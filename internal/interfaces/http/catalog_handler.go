package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/quoteflow/quoteflow/internal/application/catalog"
	"github.com/quoteflow/quoteflow/internal/application/dto"
)

// CatalogHandler handles categories, catalog items, bulk import and the
// tabular export endpoints (protected).
type CatalogHandler struct {
	uc *catalog.CatalogUseCase
}

// NewCatalogHandler builds the handler.
func NewCatalogHandler(uc *catalog.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ── Categories ────────────────────────────────────────────────────────────────

// CreateCategory creates (or reuses) a category by name.
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id required"})
	}
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.CreateCategory(companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCategories lists the company's categories.
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id required"})
	}
	out, err := h.uc.ListCategories(companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ── Items ─────────────────────────────────────────────────────────────────────

// CreateItem creates a catalog item.
func (h *CatalogHandler) CreateItem(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id required"})
	}
	var in dto.CreateCatalogItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.CreateItem(companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateItem updates a catalog item; deactivation goes through "active".
func (h *CatalogHandler) UpdateItem(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id required"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id required"})
	}
	var in dto.UpdateCatalogItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.UpdateItem(companyID, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListItems lists the company's active catalog items.
func (h *CatalogHandler) ListItems(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id required"})
	}
	out, err := h.uc.ListItems(companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SearchItems free-text search on code and description, with an optional
// categoryId filter.
func (h *CatalogHandler) SearchItems(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id required"})
	}
	out, err := h.uc.Search(companyID, c.Query("q"), c.Query("categoryId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ── Bulk import / tabular transfer ────────────────────────────────────────────

// BulkImport ingests rows from the JSON body. The response always reports
// both lists; partial failure is a 200, not an error.
func (h *CatalogHandler) BulkImport(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id required"})
	}
	var in dto.BulkImportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	return c.JSON(h.uc.BulkImport(companyID, in.Items))
}

// ImportCSV ingests a CSV file sent as raw text in fileContent.
func (h *CatalogHandler) ImportCSV(c *fiber.Ctx) error {
	return h.importFile(c, h.uc.ImportCSV)
}

// ImportXLSX ingests an XLSX workbook sent base64-encoded in fileContent.
func (h *CatalogHandler) ImportXLSX(c *fiber.Ctx) error {
	return h.importFile(c, h.uc.ImportXLSX)
}

func (h *CatalogHandler) importFile(c *fiber.Ctx, ingest func(companyID, fileContent string) (*dto.ImportResult, error)) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id required"})
	}
	var in dto.ImportFileRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if in.FileContent == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fileContent required"})
	}
	out, err := ingest(companyID, in.FileContent)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExportCSV downloads the whole catalog as CSV.
func (h *CatalogHandler) ExportCSV(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id required"})
	}
	data, err := h.uc.ExportCSV(companyID)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="catalog.csv"`)
	return c.Send(data)
}

// ExportXLSX downloads the whole catalog as an XLSX workbook.
func (h *CatalogHandler) ExportXLSX(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id required"})
	}
	data, err := h.uc.ExportXLSX(companyID)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="catalog.xlsx"`)
	return c.Send(data)
}
