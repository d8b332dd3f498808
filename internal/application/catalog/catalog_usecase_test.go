package catalog_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quoteflow/quoteflow/internal/application/catalog"
	"github.com/quoteflow/quoteflow/internal/application/dto"
	"github.com/quoteflow/quoteflow/internal/domain"
)

// stubCodec records what it was asked to parse and returns canned rows.
type stubCodec struct {
	parsed   []byte
	rows     []dto.ImportRow
	parseErr error
}

func (s *stubCodec) Parse(data []byte) ([]dto.ImportRow, error) {
	s.parsed = data
	return s.rows, s.parseErr
}

func (s *stubCodec) Generate(rows []dto.ImportRow) ([]byte, error) {
	return []byte("generated"), nil
}

type catalogFixture struct {
	uc         *catalog.CatalogUseCase
	categories *memCategoryRepo
	items      *memCatalogItemRepo
	csv        *stubCodec
	xlsx       *stubCodec
}

func newCatalogFixture() *catalogFixture {
	categories := newMemCategoryRepo()
	items := newMemCatalogItemRepo()
	reconciler := catalog.NewCategoryReconciler(categories, nil)
	importer := catalog.NewBulkImporter(reconciler, items, nil)
	csv := &stubCodec{}
	xlsx := &stubCodec{}
	uc := catalog.NewCatalogUseCase(items, categories, reconciler, importer, csv, xlsx, nil)
	return &catalogFixture{uc: uc, categories: categories, items: items, csv: csv, xlsx: xlsx}
}

func (f *catalogFixture) createItem(t *testing.T, companyID, code string) *dto.CatalogItemResponse {
	t.Helper()
	cat, err := f.uc.CreateCategory(companyID, dto.CreateCategoryRequest{Name: "General"})
	require.NoError(t, err)
	item, err := f.uc.CreateItem(companyID, dto.CreateCatalogItemRequest{
		Code: code, Description: "Item " + code, Unit: "pc", Price: dec("10"), CategoryID: cat.ID,
	})
	require.NoError(t, err)
	return item
}

func TestCreateCategory_PersistsDescription(t *testing.T) {
	f := newCatalogFixture()
	created, err := f.uc.CreateCategory(testCompany, dto.CreateCategoryRequest{
		Name: "Electrical", Description: "Wiring and fixtures",
	})
	require.NoError(t, err)
	assert.Equal(t, "Wiring and fixtures", created.Description)

	stored, err := f.categories.GetByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Wiring and fixtures", stored.Description,
		"the description must be stored, not just echoed back")
}

func TestCreateItem_UnknownCategory(t *testing.T) {
	f := newCatalogFixture()
	_, err := f.uc.CreateItem(testCompany, dto.CreateCatalogItemRequest{
		Code: "X-1", Description: "x", CategoryID: "nope",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateItem_OtherCompanysCategoryReadsAsNotFound(t *testing.T) {
	f := newCatalogFixture()
	other, err := f.uc.CreateCategory("company-2", dto.CreateCategoryRequest{Name: "Theirs"})
	require.NoError(t, err)

	_, err = f.uc.CreateItem(testCompany, dto.CreateCatalogItemRequest{
		Code: "X-1", Description: "x", CategoryID: other.ID,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateItem_CompanyScoped(t *testing.T) {
	f := newCatalogFixture()
	item := f.createItem(t, testCompany, "A-1")

	newPrice := dec("25")
	_, err := f.uc.UpdateItem("company-2", item.ID, dto.UpdateCatalogItemRequest{Price: &newPrice})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	updated, err := f.uc.UpdateItem(testCompany, item.ID, dto.UpdateCatalogItemRequest{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, "25.00", updated.Price.StringFixed(2))
}

func TestUpdateItem_DeactivationHidesFromListing(t *testing.T) {
	f := newCatalogFixture()
	item := f.createItem(t, testCompany, "A-1")

	inactive := false
	_, err := f.uc.UpdateItem(testCompany, item.ID, dto.UpdateCatalogItemRequest{Active: &inactive})
	require.NoError(t, err)

	listed, err := f.uc.ListItems(testCompany)
	require.NoError(t, err)
	assert.Empty(t, listed, "inactive items are hidden from the listing")

	// But still present in the export, which covers the whole catalog.
	rows, err := f.uc.ExportRows(testCompany)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestImportCSV_PassesRawTextToCodec(t *testing.T) {
	f := newCatalogFixture()
	f.csv.rows = []dto.ImportRow{{Code: "C-1", Description: "From csv", Price: dec("1")}}

	result, err := f.uc.ImportCSV(testCompany, "code,description\nC-1,From csv")
	require.NoError(t, err)
	assert.Equal(t, "code,description\nC-1,From csv", string(f.csv.parsed))
	assert.Len(t, result.Successful, 1)
	assert.Empty(t, result.Failed)
}

func TestImportXLSX_DecodesBase64BeforeCodec(t *testing.T) {
	f := newCatalogFixture()
	f.xlsx.rows = []dto.ImportRow{{Code: "X-1", Description: "From xlsx", Price: dec("1")}}
	raw := []byte{0x50, 0x4b, 0x03, 0x04, 0xff}

	result, err := f.uc.ImportXLSX(testCompany, base64.StdEncoding.EncodeToString(raw))
	require.NoError(t, err)
	assert.Equal(t, raw, f.xlsx.parsed, "the codec must receive the decoded bytes")
	assert.Len(t, result.Successful, 1)
}

func TestImportXLSX_RejectsBadBase64(t *testing.T) {
	f := newCatalogFixture()
	_, err := f.uc.ImportXLSX(testCompany, "!!! not base64 !!!")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExportRows_CategoryByName(t *testing.T) {
	f := newCatalogFixture()
	cat, err := f.uc.CreateCategory(testCompany, dto.CreateCategoryRequest{Name: "Electrical"})
	require.NoError(t, err)
	_, err = f.uc.CreateItem(testCompany, dto.CreateCatalogItemRequest{
		Code: "EL-001", Description: "Outlet", Unit: "pc", Price: dec("12.5"), CategoryID: cat.ID,
	})
	require.NoError(t, err)

	rows, err := f.uc.ExportRows(testCompany)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Electrical", rows[0].Category,
		"exports carry the category name so a re-import reconciles by name")
}

func TestSearch_DelegatesCompanyScope(t *testing.T) {
	f := newCatalogFixture()
	f.createItem(t, testCompany, "EL-001")
	f.createItem(t, "company-2", "EL-002")

	found, err := f.uc.Search(testCompany, "el-0", "")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "EL-001", found[0].Code)
}
