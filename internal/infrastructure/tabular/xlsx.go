package tabular

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/quoteflow/quoteflow/internal/application/catalog"
	"github.com/quoteflow/quoteflow/internal/application/dto"
)

var _ catalog.TabularCodec = (*XLSXCodec)(nil)

// sheetName is where generated workbooks put the catalog and where Parse
// looks first; files with a single differently named sheet still import.
const sheetName = "Catalog Items"

// XLSXCodec reads and writes the catalog transfer schema as an XLSX workbook.
// It shares the header conventions of the CSV codec.
type XLSXCodec struct{}

// NewXLSXCodec builds the codec.
func NewXLSXCodec() *XLSXCodec {
	return &XLSXCodec{}
}

// Parse decodes the first populated sheet into import rows.
func (c *XLSXCodec) Parse(data []byte) ([]dto.ImportRow, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer file.Close()

	sheet := sheetName
	if idx, _ := file.GetSheetIndex(sheet); idx < 0 {
		sheets := file.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil
		}
		sheet = sheets[0]
	}
	records, err := file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	cols := headerIndex(records[0])
	rows := make([]dto.ImportRow, 0, len(records)-1)
	for _, record := range records[1:] {
		if isBlankRecord(record) {
			continue
		}
		rows = append(rows, dto.ImportRow{
			Code:        cell(record, cols, "code"),
			Description: cell(record, cols, "description"),
			Unit:        cell(record, cols, "unit"),
			Price:       parsePrice(cell(record, cols, "price")),
			Category:    cell(record, cols, "category"),
			Notes:       cell(record, cols, "notes"),
		})
	}
	return rows, nil
}

// Generate encodes rows as a single-sheet workbook.
func (c *XLSXCodec) Generate(rows []dto.ImportRow) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()
	file.SetSheetName(file.GetSheetName(0), sheetName)

	for i, name := range exportHeader {
		axis, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := file.SetCellValue(sheetName, axis, name); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}
	for r, row := range rows {
		values := []any{row.Code, row.Description, row.Unit, row.Price.String(), row.Category, row.Notes}
		for col, value := range values {
			axis, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return nil, fmt.Errorf("data cell: %w", err)
			}
			if err := file.SetCellValue(sheetName, axis, value); err != nil {
				return nil, fmt.Errorf("write row %d: %w", r+1, err)
			}
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
