package postgres

import (
	"context"
	"fmt"

	"github.com/quoteflow/quoteflow/internal/domain/repository"
)

var _ repository.QuoteCounterRepository = (*QuoteCounterRepo)(nil)

// QuoteCounterRepo implements QuoteCounterRepository over a per-period
// counter row. The upsert below is a single atomic statement: PostgreSQL
// serializes the ON CONFLICT update on the row, so concurrent callers for
// the same period always observe distinct sequence values. This replaces
// counting existing quotes, which could hand two racing requests the same
// number.
type QuoteCounterRepo struct {
	q Querier
}

// NewQuoteCounterRepository builds the adapter. Pass a pool or a tx
// (Querier); during quote creation it runs on the creation tx.
func NewQuoteCounterRepository(q Querier) *QuoteCounterRepo {
	return &QuoteCounterRepo{q: q}
}

// Next reserves and returns the next sequence for the period (yyyymm).
func (r *QuoteCounterRepo) Next(period string) (int, error) {
	query := `
		INSERT INTO quote_counters (period, seq) VALUES ($1, 1)
		ON CONFLICT (period) DO UPDATE SET seq = quote_counters.seq + 1
		RETURNING seq`
	var seq int
	if err := r.q.QueryRow(context.Background(), query, period).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next quote sequence for %s: %w", period, err)
	}
	return seq, nil
}
