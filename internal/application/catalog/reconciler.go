package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/quoteflow/quoteflow/internal/domain"
	"github.com/quoteflow/quoteflow/internal/domain/entity"
	"github.com/quoteflow/quoteflow/internal/domain/repository"
)

// CategoryReconciler resolves a free-text category name to the company's
// category with that name, creating it on first use.
//
// Concurrency: the storage layer enforces uniqueness on (company, name), so
// a racing create surfaces as ErrDuplicate and is resolved by re-fetching.
// Callers never see the conflict; the outcome is always exactly one category
// per (company, name).
type CategoryReconciler struct {
	categories repository.CategoryRepository
	now        func() time.Time
}

// NewCategoryReconciler builds the reconciler. now is injectable for tests;
// nil means time.Now.
func NewCategoryReconciler(categories repository.CategoryRepository, now func() time.Time) *CategoryReconciler {
	if now == nil {
		now = time.Now
	}
	return &CategoryReconciler{categories: categories, now: now}
}

// Reconcile returns the company's category named name, creating it if
// absent. A blank name maps to the default category.
func (r *CategoryReconciler) Reconcile(companyID, name string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = entity.DefaultCategoryName
	}

	existing, err := r.categories.GetByCompanyAndName(companyID, name)
	if err != nil {
		return nil, fmt.Errorf("reconcile category %q: %w", name, err)
	}
	if existing != nil {
		return existing, nil
	}

	now := r.now()
	category := &entity.Category{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = r.categories.Create(category)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, domain.ErrDuplicate) {
		return nil, fmt.Errorf("create category %q: %w", name, err)
	}

	// Lost the race: another request created it between our lookup and
	// insert. The winner's row is the canonical one.
	winner, err := r.categories.GetByCompanyAndName(companyID, name)
	if err != nil {
		return nil, fmt.Errorf("refetch category %q after conflict: %w", name, err)
	}
	if winner == nil {
		return nil, fmt.Errorf("category %q: %w", name, domain.ErrConflict)
	}
	return winner, nil
}
