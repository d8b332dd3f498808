package quoting

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/quoteflow/quoteflow/internal/domain"
)

// DefaultVATRate is the VAT percentage applied to new quotes. The rate is
// copied onto each quote at creation, so changing this constant never alters
// already-issued quotes.
var DefaultVATRate = decimal.NewFromInt(18)

var hundred = decimal.NewFromInt(100)

// LineInput is the pricing input for one quote line.
type LineInput struct {
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal // percentage, 0..100; zero value means no discount
}

// Totals is the result of pricing a whole quote. LineTotals matches the
// input order. No intermediate rounding: amounts keep full precision and are
// rounded to two decimals only for display.
type Totals struct {
	LineTotals []decimal.Decimal
	Subtotal   decimal.Decimal
	VATRate    decimal.Decimal
	VATAmount  decimal.Decimal
	Total      decimal.Decimal
}

// ComputeLine prices a single line: quantity * price * (1 - discount/100).
func ComputeLine(in LineInput) (decimal.Decimal, error) {
	if err := validateLine(in); err != nil {
		return decimal.Decimal{}, err
	}
	factor := decimal.NewFromInt(1).Sub(in.Discount.Div(hundred))
	return in.Quantity.Mul(in.UnitPrice).Mul(factor), nil
}

// ComputeTotals prices all lines and derives subtotal, VAT and grand total.
// Any invalid line fails the whole computation; nothing partial is returned.
func ComputeTotals(lines []LineInput) (*Totals, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: quote needs at least one line", domain.ErrInvalidInput)
	}
	t := &Totals{
		LineTotals: make([]decimal.Decimal, 0, len(lines)),
		VATRate:    DefaultVATRate,
	}
	for i, line := range lines {
		total, err := ComputeLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		t.LineTotals = append(t.LineTotals, total)
		t.Subtotal = t.Subtotal.Add(total)
	}
	t.VATAmount = t.Subtotal.Mul(DefaultVATRate).Div(hundred)
	t.Total = t.Subtotal.Add(t.VATAmount)
	return t, nil
}

func validateLine(in LineInput) error {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}
	if in.UnitPrice.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
	}
	if in.Discount.LessThan(decimal.Zero) || in.Discount.GreaterThan(hundred) {
		return fmt.Errorf("%w: discount must be between 0 and 100", domain.ErrInvalidInput)
	}
	return nil
}
