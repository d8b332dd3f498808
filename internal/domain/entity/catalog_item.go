package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CatalogItem is a company-scoped priced product or service entry.
// Deactivated via Active instead of deleted so existing quotes keep their
// line references.
type CatalogItem struct {
	ID          string
	CompanyID   string
	CategoryID  string
	Code        string
	Description string
	Unit        string // unit of measure, free text ("m", "unit", ...)
	Price       decimal.Decimal
	Notes       string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
