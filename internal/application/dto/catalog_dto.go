package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCategoryRequest body for POST /api/catalog/categories.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryResponse category in responses.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateCatalogItemRequest body for POST /api/catalog/items.
type CreateCatalogItemRequest struct {
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Unit        string          `json:"unit"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  string          `json:"categoryId"`
	Notes       string          `json:"notes"`
}

// UpdateCatalogItemRequest body for PUT /api/catalog/items/:id.
// Nil fields are left unchanged.
type UpdateCatalogItemRequest struct {
	Code        *string          `json:"code"`
	Description *string          `json:"description"`
	Unit        *string          `json:"unit"`
	Price       *decimal.Decimal `json:"price"`
	CategoryID  *string          `json:"categoryId"`
	Notes       *string          `json:"notes"`
	Active      *bool            `json:"active"`
}

// CatalogItemResponse catalog item in responses.
type CatalogItemResponse struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	Description  string          `json:"description"`
	Unit         string          `json:"unit"`
	Price        decimal.Decimal `json:"price"`
	CategoryID   string          `json:"categoryId"`
	CategoryName string          `json:"categoryName,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ImportRow is the normalized tabular record shared by the CSV and XLSX
// codecs and by direct JSON bulk import. Category carries a name to
// reconcile, never an id.
type ImportRow struct {
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Unit        string          `json:"unit"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Notes       string          `json:"notes"`
}

// FailedRow one rejected import row with the reason.
type FailedRow struct {
	Row   ImportRow `json:"row"`
	Error string    `json:"error"`
}

// ImportResult per-row outcome of a bulk import. Both lists preserve input
// order; Successful + Failed always add up to the input row count.
type ImportResult struct {
	Successful []CatalogItemResponse `json:"successful"`
	Failed     []FailedRow           `json:"failed"`
}

// BulkImportRequest body for POST /api/catalog/bulk-import.
type BulkImportRequest struct {
	Items []ImportRow `json:"items"`
}

// ImportFileRequest body for file-based imports. CSV arrives as raw text,
// XLSX as base64.
type ImportFileRequest struct {
	FileContent string `json:"fileContent"`
}
