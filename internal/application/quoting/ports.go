package quoting

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/quoteflow/quoteflow/internal/domain/entity"
	"github.com/quoteflow/quoteflow/internal/domain/repository"
)

// QuoteTxRunner runs fn inside one storage transaction with the quote and
// counter repositories bound to it. Quote creation uses it so the number
// allocation and the quote+items insert commit or roll back together.
type QuoteTxRunner interface {
	RunQuote(ctx context.Context, fn func(
		quoteRepo repository.QuoteRepository,
		counterRepo repository.QuoteCounterRepository,
	) error) error
}

// RenderLine is one fully resolved quote line for document rendering:
// the stored amounts plus the catalog item's description and unit.
type RenderLine struct {
	Index       int
	Description string
	Unit        string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
	Total       decimal.Decimal
}

// RenderData is everything a renderer needs. Totals are taken verbatim from
// the quote fields; renderers must not recompute them. Logo is the raw image
// bytes, nil when the company has none.
type RenderData struct {
	Quote *entity.Quote
	Lines []RenderLine
	Logo  []byte
}

// QuoteDocumentRenderer renders a loaded quote into one binary document
// format. Implementations are read-only with respect to the data model.
type QuoteDocumentRenderer interface {
	Render(ctx context.Context, data *RenderData) ([]byte, error)
}
