package quoting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quoteflow/quoteflow/internal/application/quoting"
	"github.com/quoteflow/quoteflow/internal/domain"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// ComputeLine
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeLine_NoDiscount(t *testing.T) {
	total, err := quoting.ComputeLine(quoting.LineInput{
		Quantity:  dec("3"),
		UnitPrice: dec("25.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "76.50", total.StringFixed(2))
}

func TestComputeLine_WithDiscount(t *testing.T) {
	total, err := quoting.ComputeLine(quoting.LineInput{
		Quantity:  dec("10"),
		UnitPrice: dec("100"),
		Discount:  dec("15"),
	})
	require.NoError(t, err)
	assert.Equal(t, "850.00", total.StringFixed(2))
}

func TestComputeLine_FullDiscountIsZero(t *testing.T) {
	total, err := quoting.ComputeLine(quoting.LineInput{
		Quantity:  dec("4"),
		UnitPrice: dec("99.99"),
		Discount:  dec("100"),
	})
	require.NoError(t, err)
	assert.True(t, total.IsZero(), "100%% discount must zero the line")
}

func TestComputeLine_ZeroPriceIsValid(t *testing.T) {
	total, err := quoting.ComputeLine(quoting.LineInput{
		Quantity:  dec("2"),
		UnitPrice: decimal.Zero,
	})
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestComputeLine_Validation(t *testing.T) {
	cases := []struct {
		name string
		in   quoting.LineInput
	}{
		{"zero quantity", quoting.LineInput{Quantity: decimal.Zero, UnitPrice: dec("10")}},
		{"negative quantity", quoting.LineInput{Quantity: dec("-1"), UnitPrice: dec("10")}},
		{"negative price", quoting.LineInput{Quantity: dec("1"), UnitPrice: dec("-0.01")}},
		{"negative discount", quoting.LineInput{Quantity: dec("1"), UnitPrice: dec("10"), Discount: dec("-5")}},
		{"discount above 100", quoting.LineInput{Quantity: dec("1"), UnitPrice: dec("10"), Discount: dec("101")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := quoting.ComputeLine(tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// ComputeTotals
// ──────────────────────────────────────────────────────────────────────────────

// Two lines: 2 × 100 with 10% discount = 180, plus 1 × 65 = 65.
// Subtotal 245.00, VAT (18%) 44.10, total 289.10.
func TestComputeTotals_SubtotalVATAndTotal(t *testing.T) {
	totals, err := quoting.ComputeTotals([]quoting.LineInput{
		{Quantity: dec("2"), UnitPrice: dec("100"), Discount: dec("10")},
		{Quantity: dec("1"), UnitPrice: dec("65")},
	})
	require.NoError(t, err)

	require.Len(t, totals.LineTotals, 2)
	assert.Equal(t, "180.00", totals.LineTotals[0].StringFixed(2))
	assert.Equal(t, "65.00", totals.LineTotals[1].StringFixed(2))
	assert.Equal(t, "245.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "18", totals.VATRate.String())
	assert.Equal(t, "44.10", totals.VATAmount.StringFixed(2))
	assert.Equal(t, "289.10", totals.Total.StringFixed(2))
}

func TestComputeTotals_NoIntermediateRounding(t *testing.T) {
	// 3 × 0.333 = 0.999; rounding per line would lose precision before VAT.
	totals, err := quoting.ComputeTotals([]quoting.LineInput{
		{Quantity: dec("3"), UnitPrice: dec("0.333")},
	})
	require.NoError(t, err)
	assert.Equal(t, "0.999", totals.Subtotal.String())
	assert.Equal(t, "1.18", totals.Total.StringFixed(2))
}

func TestComputeTotals_EmptyLinesRejected(t *testing.T) {
	_, err := quoting.ComputeTotals(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestComputeTotals_InvalidLineFailsWhole(t *testing.T) {
	_, err := quoting.ComputeTotals([]quoting.LineInput{
		{Quantity: dec("1"), UnitPrice: dec("10")},
		{Quantity: decimal.Zero, UnitPrice: dec("10")},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "line 2")
}
