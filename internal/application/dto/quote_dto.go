package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteItemRequest one requested quote line. Discount is optional (0 = none).
type QuoteItemRequest struct {
	CatalogItemID string          `json:"catalogItemId"`
	Quantity      decimal.Decimal `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	Discount      decimal.Decimal `json:"discount"`
	Notes         string          `json:"notes"`
}

// CreateQuoteRequest body for POST /api/quotes.
type CreateQuoteRequest struct {
	Title string             `json:"title"`
	Items []QuoteItemRequest `json:"items"`
}

// UpdateQuoteStatusRequest body for PATCH /api/quotes/:id/status.
type UpdateQuoteStatusRequest struct {
	Status string `json:"status"`
}

// QuoteItemResponse one quote line in responses.
type QuoteItemResponse struct {
	ID            string          `json:"id"`
	CatalogItemID string          `json:"catalogItemId"`
	Description   string          `json:"description"`
	Unit          string          `json:"unit"`
	Quantity      decimal.Decimal `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	Notes         string          `json:"notes,omitempty"`
}

// QuoteResponse full quote with its lines.
type QuoteResponse struct {
	ID        string              `json:"id"`
	Number    string              `json:"number"`
	Title     string              `json:"title"`
	Subtotal  decimal.Decimal     `json:"subtotal"`
	VATRate   decimal.Decimal     `json:"vatRate"`
	VATAmount decimal.Decimal     `json:"vatAmount"`
	Total     decimal.Decimal     `json:"total"`
	Status    string              `json:"status"`
	CreatedAt time.Time           `json:"createdAt"`
	Items     []QuoteItemResponse `json:"items"`
}

// QuoteListResponse paged quote listing (headers only, no lines).
type QuoteListResponse struct {
	Items []QuoteResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
