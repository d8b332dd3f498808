package repository

// QuoteCounterRepository hands out monotonic sequence numbers per period
// (yyyymm). Next must be atomic: two concurrent callers for the same period
// never receive the same value.
type QuoteCounterRepository interface {
	Next(period string) (int, error)
}
