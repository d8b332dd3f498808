package entity

import "github.com/shopspring/decimal"

// QuoteItem is one line of a quote. Immutable once the quote is created.
// Total = Quantity * UnitPrice * (1 - Discount/100).
type QuoteItem struct {
	ID            string
	QuoteID       string
	CatalogItemID string
	Position      int // input order, 1-based
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	Discount      decimal.Decimal // percentage, 0..100
	Total         decimal.Decimal
	Notes         string
}
