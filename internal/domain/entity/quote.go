package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Common quote statuses. The status field is an open set: any non-empty
// string is accepted, these are the values the UI knows about.
const (
	QuoteStatusDraft    = "DRAFT"
	QuoteStatusSent     = "SENT"
	QuoteStatusAccepted = "ACCEPTED"
	QuoteStatusRejected = "REJECTED"
)

// Quote is a priced offer document. Totals are computed once at creation and
// never recomputed; VATRate is stored alongside VATAmount so a future rate
// change does not alter historical quotes.
type Quote struct {
	ID        string
	CompanyID string
	Number    string // visible identifier, Qyyyymm-NNN
	Title     string
	Subtotal  decimal.Decimal
	VATRate   decimal.Decimal // percentage, e.g. 18
	VATAmount decimal.Decimal
	Total     decimal.Decimal
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
