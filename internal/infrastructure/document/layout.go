// Package document renders a loaded quote into the two binary formats the
// API serves: a paginated PDF and a WordprocessingML (docx) package. Both
// renderers share one layout contract:
//
//   - Pages are right-to-left. The line table enumerates its columns from
//     the right edge: #, description, unit, quantity, unit price, discount,
//     line total.
//   - All money comes from the stored quote fields, formatted with two
//     decimals. Renderers never recompute totals.
//   - The company logo, when present, is fitted into a 150×100 box
//     preserving aspect ratio. No logo means no image anywhere in the
//     output.
package document

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quoteflow/quoteflow/internal/domain/entity"
)

// ── Labels (Hebrew UI copy) ───────────────────────────────────────────────────

const (
	labelTitle    = "הצעת מחיר"
	labelNumber   = "מספר"
	labelDate     = "תאריך"
	labelSubtotal = "סכום ביניים"
	labelTotal    = "סה\"כ לתשלום"
)

// tableColumns in right-to-left order: index 0 sits at the right page edge.
var tableColumns = []struct {
	Label string
	Grid  int // 12-part grid share (PDF)
	Twips int // absolute width (docx), sums to the printable A4 width
}{
	{"מס'", 1, 700},
	{"תיאור", 4, 3438},
	{"יח'", 1, 800},
	{"כמות", 1, 900},
	{"מחיר", 2, 1400},
	{"הנחה %", 1, 1000},
	{"סה\"כ", 2, 1400},
}

func statusLabel(status string) string {
	switch status {
	case entity.QuoteStatusDraft:
		return "טיוטה"
	case entity.QuoteStatusSent:
		return "נשלחה"
	case entity.QuoteStatusAccepted:
		return "אושרה"
	case entity.QuoteStatusRejected:
		return "נדחתה"
	}
	return status
}

func vatLabel(rate decimal.Decimal) string {
	return fmt.Sprintf("מע\"מ %s%%", rate.StringFixed(0))
}

// ── Formatting ────────────────────────────────────────────────────────────────

func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func formatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// ── Logo handling ─────────────────────────────────────────────────────────────

// Logo bounding box in points.
const (
	logoBoxWidth  = 150.0
	logoBoxHeight = 100.0
)

// logoInfo describes a decodable logo image: its registered format name
// ("png" or "jpeg") and its display size fitted into the bounding box.
type logoInfo struct {
	Format string
	Width  float64
	Height float64
}

// sniffLogo decodes the image header only. Unsupported or corrupt bytes
// return an error so the caller can render without a logo instead of
// emitting a broken document.
func sniffLogo(data []byte) (*logoInfo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode logo: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("decode logo: empty image")
	}
	w, h := fitBox(float64(cfg.Width), float64(cfg.Height), logoBoxWidth, logoBoxHeight)
	return &logoInfo{Format: format, Width: w, Height: h}, nil
}

// fitBox scales (w, h) down to fit (maxW, maxH) preserving aspect ratio.
// Images already inside the box keep their size.
func fitBox(w, h, maxW, maxH float64) (float64, float64) {
	if w <= maxW && h <= maxH {
		return w, h
	}
	scale := maxW / w
	if s := maxH / h; s < scale {
		scale = s
	}
	return w * scale, h * scale
}
