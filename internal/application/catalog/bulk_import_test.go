package catalog_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quoteflow/quoteflow/internal/application/catalog"
	"github.com/quoteflow/quoteflow/internal/application/dto"
	"github.com/quoteflow/quoteflow/internal/domain/entity"
)

func newImporter() (*catalog.BulkImporter, *memCategoryRepo, *memCatalogItemRepo) {
	categories := newMemCategoryRepo()
	items := newMemCatalogItemRepo()
	reconciler := catalog.NewCategoryReconciler(categories, nil)
	return catalog.NewBulkImporter(reconciler, items, nil), categories, items
}

func TestImport_AllRowsSucceed(t *testing.T) {
	importer, _, items := newImporter()

	rows := []dto.ImportRow{
		{Code: "EL-001", Description: "Outlet", Unit: "pc", Price: dec("12.50"), Category: "Electrical"},
		{Code: "EL-002", Description: "Switch", Unit: "pc", Price: dec("9.90"), Category: "Electrical"},
		{Code: "PL-001", Description: "Pipe 2m", Unit: "pc", Price: dec("30"), Category: "Plumbing"},
	}
	result := importer.Import(testCompany, rows)

	assert.Len(t, result.Successful, 3)
	assert.Empty(t, result.Failed)

	stored, err := items.ListByCompany(testCompany, true)
	require.NoError(t, err)
	assert.Len(t, stored, 3)
	for _, item := range result.Successful {
		assert.True(t, item.Active, "imported items start active")
		assert.NotEmpty(t, item.CategoryID)
	}
}

func TestImport_FailingRowsAreRecordedAndSkipped(t *testing.T) {
	importer, _, items := newImporter()

	rows := []dto.ImportRow{
		{Code: "OK-1", Description: "Good row", Price: dec("10"), Category: "A"},
		{Price: dec("10"), Category: "A"}, // no code, no description
		{Code: "BAD-2", Description: "Negative", Price: dec("-1"), Category: "A"},
		{Code: "OK-2", Description: "Also good", Price: dec("20"), Category: "B"},
	}
	result := importer.Import(testCompany, rows)

	assert.Len(t, result.Successful, 2)
	require.Len(t, result.Failed, 2)
	assert.Equal(t, len(rows), len(result.Successful)+len(result.Failed),
		"every input row must land in exactly one outcome list")

	// Failures preserve the offending row and explain themselves.
	assert.Contains(t, result.Failed[0].Error, "code or a description")
	assert.Equal(t, "BAD-2", result.Failed[1].Row.Code)
	assert.Contains(t, result.Failed[1].Error, "negative")

	stored, err := items.ListByCompany(testCompany, true)
	require.NoError(t, err)
	assert.Len(t, stored, 2, "failed rows must not be stored")
}

func TestImport_OrderPreserved(t *testing.T) {
	importer, _, _ := newImporter()

	var rows []dto.ImportRow
	for i := 0; i < 10; i++ {
		rows = append(rows, dto.ImportRow{
			Code:        fmt.Sprintf("C-%03d", i),
			Description: fmt.Sprintf("Item %d", i),
			Price:       dec("1"),
		})
	}
	result := importer.Import(testCompany, rows)

	require.Len(t, result.Successful, 10)
	for i, item := range result.Successful {
		assert.Equal(t, fmt.Sprintf("C-%03d", i), item.Code)
	}
}

func TestImport_BlankCategoryUsesDefault(t *testing.T) {
	importer, categories, _ := newImporter()

	result := importer.Import(testCompany, []dto.ImportRow{
		{Code: "X-1", Description: "No category", Price: dec("5")},
	})
	require.Len(t, result.Successful, 1)
	assert.Equal(t, entity.DefaultCategoryName, result.Successful[0].CategoryName)

	def, err := categories.GetByCompanyAndName(testCompany, entity.DefaultCategoryName)
	require.NoError(t, err)
	require.NotNil(t, def)
	assert.Equal(t, def.ID, result.Successful[0].CategoryID)
}

func TestImport_SecondRunCreatesNoNewCategories(t *testing.T) {
	importer, categories, _ := newImporter()

	rows := []dto.ImportRow{
		{Code: "A-1", Description: "a", Price: dec("1"), Category: "Electrical"},
		{Code: "A-2", Description: "b", Price: dec("1"), Category: "Plumbing"},
	}
	importer.Import(testCompany, rows)
	createsAfterFirst := categories.creates

	importer.Import(testCompany, rows)
	assert.Equal(t, createsAfterFirst, categories.creates,
		"re-importing known category names must reuse the existing rows")

	list, err := categories.ListByCompany(testCompany)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestImport_ZeroPriceIsAccepted(t *testing.T) {
	importer, _, _ := newImporter()

	result := importer.Import(testCompany, []dto.ImportRow{
		{Code: "FREE-1", Description: "Included service", Category: "Misc"},
	})
	require.Len(t, result.Successful, 1)
	assert.Empty(t, result.Failed)
	assert.True(t, result.Successful[0].Price.IsZero())
}

func TestImport_EmptyBatch(t *testing.T) {
	importer, _, _ := newImporter()
	result := importer.Import(testCompany, nil)
	assert.Empty(t, result.Successful)
	assert.Empty(t, result.Failed)
}
