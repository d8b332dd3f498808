package quoting

import (
	"fmt"
	"time"

	"github.com/quoteflow/quoteflow/internal/domain/repository"
)

// QuoteNumberAllocator produces the visible quote identifier
// Q<year><month>-<seq>, e.g. Q202608-007. The sequence restarts at 1 on the
// first quote of each calendar month and is global across companies.
//
// Sequences come from a per-period counter row bumped with a single atomic
// upsert, so two concurrent quote creations in the same month can never be
// handed the same number.
type QuoteNumberAllocator struct {
	now func() time.Time
}

// NewQuoteNumberAllocator builds the allocator. now is injectable for tests;
// nil means time.Now.
func NewQuoteNumberAllocator(now func() time.Time) *QuoteNumberAllocator {
	if now == nil {
		now = time.Now
	}
	return &QuoteNumberAllocator{now: now}
}

// Period returns the current allocation period as yyyymm.
func (a *QuoteNumberAllocator) Period() string {
	return a.now().Format("200601")
}

// Allocate reserves the next sequence for the current period and formats the
// quote number. Call it with the counter repository bound to the same
// transaction that persists the quote, so an aborted creation rolls the
// sequence back too.
func (a *QuoteNumberAllocator) Allocate(counters repository.QuoteCounterRepository) (string, error) {
	period := a.Period()
	seq, err := counters.Next(period)
	if err != nil {
		return "", fmt.Errorf("allocate quote number: %w", err)
	}
	return fmt.Sprintf("Q%s-%03d", period, seq), nil
}
