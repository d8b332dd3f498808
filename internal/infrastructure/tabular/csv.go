package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/quoteflow/quoteflow/internal/application/catalog"
	"github.com/quoteflow/quoteflow/internal/application/dto"
)

var _ catalog.TabularCodec = (*CSVCodec)(nil)

// exportHeader is the canonical column order for generated files. Parse is
// header-keyed, so files with reordered or extra columns still import.
var exportHeader = []string{"code", "description", "unit", "price", "category", "notes"}

// CSVCodec reads and writes the catalog transfer schema as CSV.
type CSVCodec struct{}

// NewCSVCodec builds the codec.
func NewCSVCodec() *CSVCodec {
	return &CSVCodec{}
}

// Parse decodes CSV text into import rows. The first record is the header;
// unknown columns are ignored, missing ones default (price 0, texts empty).
// An unparseable price also reads as 0 so the row still reaches per-row
// validation instead of failing the whole file.
func (c *CSVCodec) Parse(data []byte) ([]dto.ImportRow, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
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

// Generate encodes rows as CSV with the canonical header.
func (c *CSVCodec) Generate(rows []dto.ImportRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		record := []string{row.Code, row.Description, row.Unit, row.Price.String(), row.Category, row.Notes}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ── shared helpers (used by the XLSX codec too) ───────────────────────────────

func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if key != "" {
			cols[key] = i
		}
	}
	return cols
}

func cell(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func parsePrice(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return price
}

func isBlankRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
