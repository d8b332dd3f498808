package catalog_test

import (
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/quoteflow/quoteflow/internal/domain"
	"github.com/quoteflow/quoteflow/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// In-memory repository fakes
// ──────────────────────────────────────────────────────────────────────────────

// memCategoryRepo enforces the (company, name) unique constraint the way the
// storage layer does: Create under the lock returns domain.ErrDuplicate.
type memCategoryRepo struct {
	mu     sync.Mutex
	byID   map[string]*entity.Category
	byName map[string]*entity.Category // companyID + "\x00" + name

	creates int // Create calls, for race assertions
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{
		byID:   make(map[string]*entity.Category),
		byName: make(map[string]*entity.Category),
	}
}

func nameKey(companyID, name string) string {
	return companyID + "\x00" + name
}

func (m *memCategoryRepo) Create(category *entity.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	key := nameKey(category.CompanyID, category.Name)
	if _, exists := m.byName[key]; exists {
		return domain.ErrDuplicate
	}
	cp := *category
	m.byID[cp.ID] = &cp
	m.byName[key] = &cp
	return nil
}

func (m *memCategoryRepo) Update(category *entity.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.byID[category.ID]
	if !ok {
		return nil
	}
	delete(m.byName, nameKey(stored.CompanyID, stored.Name))
	cp := *category
	m.byID[cp.ID] = &cp
	m.byName[nameKey(cp.CompanyID, cp.Name)] = &cp
	return nil
}

func (m *memCategoryRepo) GetByID(id string) (*entity.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *memCategoryRepo) GetByCompanyAndName(companyID, name string) (*entity.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byName[nameKey(companyID, name)]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *memCategoryRepo) ListByCompany(companyID string) ([]*entity.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Category
	for _, c := range m.byID {
		if c.CompanyID == companyID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

// blindCategoryRepo hides existing rows from lookups until Create has been
// attempted, forcing the reconciler down the conflict-refetch path.
type blindCategoryRepo struct {
	*memCategoryRepo
	blind bool
}

func (b *blindCategoryRepo) GetByCompanyAndName(companyID, name string) (*entity.Category, error) {
	if b.blind {
		b.blind = false // only the first lookup misses
		return nil, nil
	}
	return b.memCategoryRepo.GetByCompanyAndName(companyID, name)
}

type memCatalogItemRepo struct {
	mu    sync.Mutex
	items map[string]*entity.CatalogItem
}

func newMemCatalogItemRepo() *memCatalogItemRepo {
	return &memCatalogItemRepo{items: make(map[string]*entity.CatalogItem)}
}

func (m *memCatalogItemRepo) Create(item *entity.CatalogItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *item
	m.items[item.ID] = &cp
	return nil
}

func (m *memCatalogItemRepo) GetByID(id string) (*entity.CatalogItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (m *memCatalogItemRepo) Update(item *entity.CatalogItem) error {
	return m.Create(item)
}

func (m *memCatalogItemRepo) ListByCompany(companyID string, onlyActive bool) ([]*entity.CatalogItem, error) {
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

func (m *memCatalogItemRepo) Search(companyID, query, categoryID string) ([]*entity.CatalogItem, error) {
	all, _ := m.ListByCompany(companyID, true)
	var out []*entity.CatalogItem
	q := strings.ToLower(query)
	for _, it := range all {
		if categoryID != "" && it.CategoryID != categoryID {
			continue
		}
		if strings.Contains(strings.ToLower(it.Code), q) ||
			strings.Contains(strings.ToLower(it.Description), q) {
			out = append(out, it)
		}
	}
	return out, nil
}
