package tabular_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quoteflow/quoteflow/internal/application/dto"
	"github.com/quoteflow/quoteflow/internal/infrastructure/tabular"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCSVParse_HeaderKeyed(t *testing.T) {
	input := strings.Join([]string{
		"code,description,unit,price,category,notes",
		"EL-001,Outlet,pc,12.50,Electrical,standard",
		"PL-001,Pipe 2m,pc,30,Plumbing,",
	}, "\n")

	rows, err := tabular.NewCSVCodec().Parse([]byte(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "EL-001", rows[0].Code)
	assert.Equal(t, "Outlet", rows[0].Description)
	assert.Equal(t, "pc", rows[0].Unit)
	assert.Equal(t, "12.50", rows[0].Price.StringFixed(2))
	assert.Equal(t, "Electrical", rows[0].Category)
	assert.Equal(t, "standard", rows[0].Notes)
	assert.Equal(t, "Plumbing", rows[1].Category)
}

func TestCSVParse_ReorderedAndExtraColumns(t *testing.T) {
	input := strings.Join([]string{
		"price,ignored,description,code",
		"7.25,whatever,Cable 3m,CB-003",
	}, "\n")

	rows, err := tabular.NewCSVCodec().Parse([]byte(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "CB-003", rows[0].Code)
	assert.Equal(t, "Cable 3m", rows[0].Description)
	assert.Equal(t, "7.25", rows[0].Price.StringFixed(2))
	assert.Empty(t, rows[0].Category, "missing columns default to empty")
}

func TestCSVParse_Defaults(t *testing.T) {
	input := strings.Join([]string{
		"code,description,price",
		"X-1,No price here,",
		"X-2,Bad price,not-a-number",
	}, "\n")

	rows, err := tabular.NewCSVCodec().Parse([]byte(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Price.IsZero(), "empty price reads as zero")
	assert.True(t, rows[1].Price.IsZero(), "unparseable price reads as zero")
}

func TestCSVParse_SkipsBlankRows(t *testing.T) {
	input := "code,description,price\nA-1,First,1\n,,\nA-2,Second,2\n"

	rows, err := tabular.NewCSVCodec().Parse([]byte(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "A-1", rows[0].Code)
	assert.Equal(t, "A-2", rows[1].Code)
}

func TestCSVParse_EmptyInput(t *testing.T) {
	rows, err := tabular.NewCSVCodec().Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCSVRoundTrip(t *testing.T) {
	codec := tabular.NewCSVCodec()
	in := []dto.ImportRow{
		{Code: "EL-001", Description: "Outlet, grounded", Unit: "pc", Price: dec("12.5"), Category: "Electrical", Notes: "with \"quotes\""},
		{Code: "PL-001", Description: "Pipe 2m", Unit: "pc", Price: dec("30"), Category: "Plumbing"},
	}

	data, err := codec.Generate(in)
	require.NoError(t, err)

	out, err := codec.Parse(data)
	require.NoError(t, err)
	require.Len(t, out, len(in))
	for i := range in {
		assert.Equal(t, in[i].Code, out[i].Code)
		assert.Equal(t, in[i].Description, out[i].Description, "commas and quotes must survive the trip")
		assert.Equal(t, in[i].Unit, out[i].Unit)
		assert.True(t, in[i].Price.Equal(out[i].Price))
		assert.Equal(t, in[i].Category, out[i].Category)
		assert.Equal(t, in[i].Notes, out[i].Notes)
	}
}
