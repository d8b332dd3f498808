package document

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	marotoentity "github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"

	"github.com/quoteflow/quoteflow/internal/application/quoting"
)

// ── Palette ───────────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// hebrewFamily is the custom font family registered when a font file is
// configured. The built-in core fonts have no Hebrew glyphs.
const hebrewFamily = "hebrew"

// pt → mm, for sizing the logo cell (maroto works in millimeters).
const ptToMM = 25.4 / 72.0

// ── Renderer ──────────────────────────────────────────────────────────────────

var _ quoting.QuoteDocumentRenderer = (*PDFRenderer)(nil)

// PDFRenderer renders a quote as a paginated A4 PDF using Maroto v2.
// fontPath points at a UTF-8 TTF with Hebrew coverage; empty falls back to
// helvetica (layout intact, Hebrew glyphs missing). The header date is the
// render time, not the quote's creation time.
type PDFRenderer struct {
	fontPath string
	now      func() time.Time
}

// NewPDFRenderer builds the renderer. now is injectable for tests; nil
// means time.Now.
func NewPDFRenderer(fontPath string, now func() time.Time) *PDFRenderer {
	if now == nil {
		now = time.Now
	}
	return &PDFRenderer{fontPath: fontPath, now: now}
}

// Render produces the PDF bytes. Maroto paginates the line rows
// automatically when they overflow the page.
func (r *PDFRenderer) Render(_ context.Context, data *quoting.RenderData) ([]byte, error) {
	cfg, err := r.buildConfig(data)
	if err != nil {
		return nil, err
	}
	m := maroto.New(cfg)

	m.AddRows(headerRows(data, formatDate(r.now()))...)
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, lr := range lineRows(data.Lines) {
		m.AddRows(lr)
	}
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(data))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func (r *PDFRenderer) buildConfig(data *quoting.RenderData) (*marotoentity.Config, error) {
	builder := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithTitle(labelTitle+" "+data.Quote.Number, true)

	family := "helvetica"
	if r.fontPath != "" {
		fonts, err := repository.New().
			AddUTF8Font(hebrewFamily, fontstyle.Normal, r.fontPath).
			AddUTF8Font(hebrewFamily, fontstyle.Bold, r.fontPath).
			AddUTF8Font(hebrewFamily, fontstyle.Italic, r.fontPath).
			AddUTF8Font(hebrewFamily, fontstyle.BoldItalic, r.fontPath).
			Load()
		if err != nil {
			return nil, fmt.Errorf("load pdf font: %w", err)
		}
		builder = builder.WithCustomFonts(fonts)
		family = hebrewFamily
	}
	builder = builder.WithDefaultFont(&props.Font{Family: family, Size: 9})
	return builder.Build(), nil
}

// ── Sections ──────────────────────────────────────────────────────────────────

// headerRows: title, number, date and status at the right edge; logo, when
// present and decodable, at the left. date is the render date, already
// formatted.
func headerRows(data *quoting.RenderData, date string) []core.Row {
	q := data.Quote

	titleCol := col.New(7).Add(
		text.New(labelTitle, props.Text{
			Style: fontstyle.Bold, Size: 16, Align: align.Right,
			Color: colorPrimary, Top: 1,
		}),
		text.New(fmt.Sprintf("%s: %s", labelNumber, q.Number), props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 10,
		}),
		text.New(fmt.Sprintf("%s: %s", labelDate, date), props.Text{
			Size: 9, Align: align.Right, Top: 17, Color: colorGray,
		}),
		text.New(statusLabel(q.Status), props.Text{
			Size: 9, Align: align.Right, Top: 23, Color: colorGray,
		}),
	)

	height := 30.0
	logoCol := col.New(5)
	if info, err := logoImage(data.Logo); err == nil && info != nil {
		logoCol.Add(info.component)
		if h := info.heightMM + 4; h > height {
			height = h
		}
	}

	rows := []core.Row{row.New(height).Add(logoCol, titleCol)}
	if q.Title != "" {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New(q.Title, props.Text{Size: 11, Align: align.Right, Top: 2}),
		)))
	}
	return rows
}

// tableHeaderRow: column labels. Maroto lays columns left to right, so the
// right-to-left column list is added in reverse.
func tableHeaderRow() core.Row {
	cols := make([]core.Col, 0, len(tableColumns))
	for i := len(tableColumns) - 1; i >= 0; i-- {
		c := tableColumns[i]
		cols = append(cols, col.New(c.Grid).Add(text.New(c.Label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Center,
			Color: colorPrimary, Top: 2,
		})))
	}
	return row.New(8).Add(cols...)
}

// lineRows: one row per quote line, cells reversed to match the header.
func lineRows(lines []quoting.RenderLine) []core.Row {
	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		cells := []string{
			fmt.Sprintf("%d", l.Index),
			l.Description,
			l.Unit,
			formatAmount(l.Quantity),
			formatAmount(l.UnitPrice),
			formatAmount(l.Discount),
			formatAmount(l.Total),
		}
		cols := make([]core.Col, 0, len(tableColumns))
		for i := len(tableColumns) - 1; i >= 0; i-- {
			a := align.Center
			if i == 1 {
				a = align.Right // description hugs the right edge
			}
			cols = append(cols, col.New(tableColumns[i].Grid).Add(text.New(cells[i], props.Text{
				Size: 8, Align: a, Top: 1,
			})))
		}
		rows = append(rows, row.New(7).Add(cols...))
	}
	return rows
}

// totalsRow: the totals block sits at the left, under the line total
// column, values rendered verbatim from the stored quote fields.
func totalsRow(data *quoting.RenderData) core.Row {
	q := data.Quote
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: top, Right: 2,
		})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Top: top, Right: 1})
	}

	return row.New(24).Add(
		col.New(3).Add(
			value(formatAmount(q.Subtotal), 1),
			value(formatAmount(q.VATAmount), 8),
			text.New(formatAmount(q.Total), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 15, Right: 1,
			}),
		),
		col.New(4).Add(
			label(labelSubtotal, 1),
			label(vatLabel(q.VATRate), 8),
			text.New(labelTotal, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 15, Right: 2,
			}),
		),
		col.New(5),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

type logoComponent struct {
	component core.Component
	heightMM  float64
}

// logoImage builds the logo cell component, or (nil, err) when there is no
// logo or the bytes are not a supported image.
func logoImage(data []byte) (*logoComponent, error) {
	if len(data) == 0 {
		return nil, nil
	}
	info, err := sniffLogo(data)
	if err != nil {
		return nil, err
	}
	ext := extension.Png
	if info.Format == "jpeg" {
		ext = extension.Jpg
	}
	return &logoComponent{
		component: image.NewFromBytes(data, ext, props.Rect{
			Percent: 100,
			Top:     1,
		}),
		heightMM: info.Height * ptToMM,
	}, nil
}
