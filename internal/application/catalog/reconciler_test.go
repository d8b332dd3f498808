package catalog_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quoteflow/quoteflow/internal/application/catalog"
	"github.com/quoteflow/quoteflow/internal/domain/entity"
)

const testCompany = "company-1"

func TestReconcile_CreatesOnFirstUse(t *testing.T) {
	repo := newMemCategoryRepo()
	r := catalog.NewCategoryReconciler(repo, nil)

	c, err := r.Reconcile(testCompany, "Electrical")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Electrical", c.Name)
	assert.Equal(t, testCompany, c.CompanyID)
	assert.NotEmpty(t, c.ID)
}

func TestReconcile_ReturnsExistingUnchanged(t *testing.T) {
	repo := newMemCategoryRepo()
	r := catalog.NewCategoryReconciler(repo, nil)

	first, err := r.Reconcile(testCompany, "Electrical")
	require.NoError(t, err)
	second, err := r.Reconcile(testCompany, "Electrical")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "same name must always resolve to the same category")
	assert.Equal(t, 1, repo.creates, "the second call must not attempt a create")
}

func TestReconcile_BlankNameMapsToDefault(t *testing.T) {
	repo := newMemCategoryRepo()
	r := catalog.NewCategoryReconciler(repo, nil)

	for _, name := range []string{"", "   ", "\t"} {
		c, err := r.Reconcile(testCompany, name)
		require.NoError(t, err)
		assert.Equal(t, entity.DefaultCategoryName, c.Name)
	}
	assert.Equal(t, 1, repo.creates, "all blank spellings share one default category")
}

func TestReconcile_TrimsName(t *testing.T) {
	repo := newMemCategoryRepo()
	r := catalog.NewCategoryReconciler(repo, nil)

	a, err := r.Reconcile(testCompany, "  Plumbing ")
	require.NoError(t, err)
	b, err := r.Reconcile(testCompany, "Plumbing")
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)
}

func TestReconcile_ScopedPerCompany(t *testing.T) {
	repo := newMemCategoryRepo()
	r := catalog.NewCategoryReconciler(repo, nil)

	a, err := r.Reconcile("company-1", "Electrical")
	require.NoError(t, err)
	b, err := r.Reconcile("company-2", "Electrical")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID, "the same name in two companies is two categories")
}

// The lookup misses, the insert collides, and the winner's row comes back.
func TestReconcile_LostRaceRefetchesWinner(t *testing.T) {
	inner := newMemCategoryRepo()
	winner := &entity.Category{ID: "winner-id", CompanyID: testCompany, Name: "Electrical"}
	require.NoError(t, inner.Create(winner))

	repo := &blindCategoryRepo{memCategoryRepo: inner, blind: true}
	r := catalog.NewCategoryReconciler(repo, nil)

	c, err := r.Reconcile(testCompany, "Electrical")
	require.NoError(t, err)
	assert.Equal(t, "winner-id", c.ID, "the conflicting create must resolve to the winner's row")
}

func TestReconcile_ConcurrentSameName(t *testing.T) {
	repo := newMemCategoryRepo()
	r := catalog.NewCategoryReconciler(repo, nil)

	const workers = 32
	ids := make([]string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := r.Reconcile(testCompany, "Electrical")
			require.NoError(t, err)
			ids[i] = c.ID
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		assert.Equal(t, ids[0], ids[i], "worker %d got a different category", i)
	}
	list, err := repo.ListByCompany(testCompany)
	require.NoError(t, err)
	assert.Len(t, list, 1, "concurrency must never yield duplicate categories")
}

func TestReconcile_ConcurrentDistinctNames(t *testing.T) {
	repo := newMemCategoryRepo()
	r := catalog.NewCategoryReconciler(repo, nil)

	const names = 10
	var wg sync.WaitGroup
	for i := 0; i < names; i++ {
		for j := 0; j < 4; j++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := r.Reconcile(testCompany, fmt.Sprintf("Category %d", i))
				assert.NoError(t, err)
			}(i)
		}
	}
	wg.Wait()

	list, err := repo.ListByCompany(testCompany)
	require.NoError(t, err)
	assert.Len(t, list, names)
}
