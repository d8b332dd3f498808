package quoting_test

import (
	"context"
	"sync"
	"time"

	"github.com/quoteflow/quoteflow/internal/domain/entity"
	"github.com/quoteflow/quoteflow/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// In-memory repository fakes
// ──────────────────────────────────────────────────────────────────────────────

type memCounterRepo struct {
	mu  sync.Mutex
	seq map[string]int
}

func newMemCounterRepo() *memCounterRepo {
	return &memCounterRepo{seq: make(map[string]int)}
}

func (m *memCounterRepo) Next(period string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq[period]++
	return m.seq[period], nil
}

type memQuoteRepo struct {
	mu     sync.Mutex
	quotes map[string]*entity.Quote
	items  map[string][]*entity.QuoteItem // by quote id

	failCreateItem bool // inject a failure mid-transaction
}

func newMemQuoteRepo() *memQuoteRepo {
	return &memQuoteRepo{
		quotes: make(map[string]*entity.Quote),
		items:  make(map[string][]*entity.QuoteItem),
	}
}

func (m *memQuoteRepo) Create(q *entity.Quote) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *q
	m.quotes[q.ID] = &cp
	return nil
}

func (m *memQuoteRepo) CreateItem(it *entity.QuoteItem) error {
	if m.failCreateItem {
		return errBoom
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *it
	m.items[it.QuoteID] = append(m.items[it.QuoteID], &cp)
	return nil
}

func (m *memQuoteRepo) GetByID(id string) (*entity.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.quotes[id]
	if !ok {
		return nil, nil
	}
	cp := *q
	return &cp, nil
}

func (m *memQuoteRepo) GetItemsByQuoteID(quoteID string) ([]*entity.QuoteItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*entity.QuoteItem(nil), m.items[quoteID]...), nil
}

func (m *memQuoteRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Quote
	for _, q := range m.quotes {
		if q.CompanyID == companyID {
			cp := *q
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memQuoteRepo) UpdateStatus(id, status string, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if q, ok := m.quotes[id]; ok {
		q.Status = status
		q.UpdatedAt = updatedAt
	}
	return nil
}

func (m *memQuoteRepo) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.quotes, id)
	delete(m.items, id)
	return nil
}

type memCatalogRepo struct {
	mu    sync.Mutex
	items map[string]*entity.CatalogItem

	getErr error // injected GetByID failure
}

func newMemCatalogRepo() *memCatalogRepo {
	return &memCatalogRepo{items: make(map[string]*entity.CatalogItem)}
}

func (m *memCatalogRepo) add(item *entity.CatalogItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *item
	m.items[item.ID] = &cp
}

func (m *memCatalogRepo) Create(item *entity.CatalogItem) error {
	m.add(item)
	return nil
}

func (m *memCatalogRepo) GetByID(id string) (*entity.CatalogItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	it, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (m *memCatalogRepo) Update(item *entity.CatalogItem) error {
	m.add(item)
	return nil
}

func (m *memCatalogRepo) ListByCompany(companyID string, onlyActive bool) ([]*entity.CatalogItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.CatalogItem
	for _, it := range m.items {
		if it.CompanyID != companyID {
			continue
		}
		if onlyActive && !it.Active {
			continue
		}
		cp := *it
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memCatalogRepo) Search(companyID, query, categoryID string) ([]*entity.CatalogItem, error) {
	return m.ListByCompany(companyID, true)
}

type memCompanyRepo struct {
	mu        sync.Mutex
	companies map[string]*entity.Company
}

func newMemCompanyRepo() *memCompanyRepo {
	return &memCompanyRepo{companies: make(map[string]*entity.Company)}
}

func (m *memCompanyRepo) Create(c *entity.Company) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.companies[c.ID] = &cp
	return nil
}

func (m *memCompanyRepo) GetByID(id string) (*entity.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.companies[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *memCompanyRepo) Update(c *entity.Company) error {
	return m.Create(c)
}

// memTxRunner hands the held repositories to fn. On error it restores the
// quote repository to its pre-transaction state, mimicking a rollback.
type memTxRunner struct {
	quotes   *memQuoteRepo
	counters *memCounterRepo
}

func (r *memTxRunner) RunQuote(_ context.Context, fn func(
	quoteRepo repository.QuoteRepository,
	counterRepo repository.QuoteCounterRepository,
) error) error {
	r.quotes.mu.Lock()
	savedQuotes := make(map[string]*entity.Quote, len(r.quotes.quotes))
	for k, v := range r.quotes.quotes {
		cp := *v
		savedQuotes[k] = &cp
	}
	savedItems := make(map[string][]*entity.QuoteItem, len(r.quotes.items))
	for k, v := range r.quotes.items {
		savedItems[k] = append([]*entity.QuoteItem(nil), v...)
	}
	r.quotes.mu.Unlock()

	if err := fn(r.quotes, r.counters); err != nil {
		r.quotes.mu.Lock()
		r.quotes.quotes = savedQuotes
		r.quotes.items = savedItems
		r.quotes.mu.Unlock()
		return err
	}
	return nil
}

var errBoom = errFake("boom")

type errFake string

func (e errFake) Error() string { return string(e) }
