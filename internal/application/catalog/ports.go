package catalog

import "github.com/quoteflow/quoteflow/internal/application/dto"

// TabularCodec parses and generates one tabular representation of the fixed
// catalog row schema {code, description, unit, price, category, notes}.
// Parse fails only on a malformed envelope, before any row is produced;
// missing optional cells default instead of erroring.
type TabularCodec interface {
	Parse(data []byte) ([]dto.ImportRow, error)
	Generate(rows []dto.ImportRow) ([]byte, error)
}
