package document

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/quoteflow/quoteflow/internal/application/quoting"
)

// WordprocessingML and OPC namespaces.
const (
	nsW   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsWP  = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	nsA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPic = "http://schemas.openxmlformats.org/drawingml/2006/picture"

	nsCT   = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsRels = "http://schemas.openxmlformats.org/package/2006/relationships"

	relTypeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relTypeImage    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
)

// logoRelID is the document-part relationship id of the embedded logo.
const logoRelID = "rId1"

// 1 point = 12700 EMU (drawing extents), 1 point = 20 twips (table widths).
const emuPerPoint = 12700

var _ quoting.QuoteDocumentRenderer = (*DocxRenderer)(nil)

// DocxRenderer renders a quote as a docx package: a ZIP holding
// [Content_Types].xml, the package relationships and one
// word/document.xml. The body is right-to-left (w:bidi on every paragraph,
// w:bidiVisual on the table) and the logo, when present, travels as a real
// media part referenced from an inline drawing. The header date is the
// render time, not the quote's creation time.
type DocxRenderer struct {
	now func() time.Time
}

// NewDocxRenderer builds the renderer. now is injectable for tests; nil
// means time.Now.
func NewDocxRenderer(now func() time.Time) *DocxRenderer {
	if now == nil {
		now = time.Now
	}
	return &DocxRenderer{now: now}
}

// Render produces the docx bytes.
func (r *DocxRenderer) Render(_ context.Context, data *quoting.RenderData) ([]byte, error) {
	// An undecodable logo degrades to no logo rather than failing the export.
	var logo *logoInfo
	if len(data.Logo) > 0 {
		if info, err := sniffLogo(data.Logo); err == nil {
			logo = info
		}
	}

	doc, err := serializeXML(buildDocumentXML(data, logo, formatDate(r.now())))
	if err != nil {
		return nil, fmt.Errorf("build document.xml: %w", err)
	}
	contentTypes, err := serializeXML(buildContentTypesXML(logo))
	if err != nil {
		return nil, fmt.Errorf("build content types: %w", err)
	}
	rootRels, err := serializeXML(buildRootRelsXML())
	if err != nil {
		return nil, fmt.Errorf("build package rels: %w", err)
	}
	docRels, err := serializeXML(buildDocumentRelsXML(logo))
	if err != nil {
		return nil, fmt.Errorf("build document rels: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", contentTypes},
		{"_rels/.rels", rootRels},
		{"word/document.xml", doc},
		{"word/_rels/document.xml.rels", docRels},
	}
	if logo != nil {
		parts = append(parts, struct {
			name string
			data []byte
		}{"word/media/" + logoFileName(logo), data.Logo})
	}
	for _, part := range parts {
		fw, err := zw.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("zip entry %s: %w", part.name, err)
		}
		if _, err := fw.Write(part.data); err != nil {
			return nil, fmt.Errorf("zip write %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close docx package: %w", err)
	}
	return buf.Bytes(), nil
}

// ── OPC plumbing ──────────────────────────────────────────────────────────────

func buildContentTypesXML(logo *logoInfo) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	types := doc.CreateElement("Types")
	types.CreateAttr("xmlns", nsCT)

	def := func(ext, contentType string) {
		e := types.CreateElement("Default")
		e.CreateAttr("Extension", ext)
		e.CreateAttr("ContentType", contentType)
	}
	def("rels", "application/vnd.openxmlformats-package.relationships+xml")
	def("xml", "application/xml")
	if logo != nil {
		if logo.Format == "jpeg" {
			def("jpg", "image/jpeg")
		} else {
			def("png", "image/png")
		}
	}

	override := types.CreateElement("Override")
	override.CreateAttr("PartName", "/word/document.xml")
	override.CreateAttr("ContentType",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml")
	return doc
}

func buildRootRelsXML() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	rels := doc.CreateElement("Relationships")
	rels.CreateAttr("xmlns", nsRels)
	rel := rels.CreateElement("Relationship")
	rel.CreateAttr("Id", "rId1")
	rel.CreateAttr("Type", relTypeDocument)
	rel.CreateAttr("Target", "word/document.xml")
	return doc
}

func buildDocumentRelsXML(logo *logoInfo) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	rels := doc.CreateElement("Relationships")
	rels.CreateAttr("xmlns", nsRels)
	if logo != nil {
		rel := rels.CreateElement("Relationship")
		rel.CreateAttr("Id", logoRelID)
		rel.CreateAttr("Type", relTypeImage)
		rel.CreateAttr("Target", "media/"+logoFileName(logo))
	}
	return doc
}

func logoFileName(logo *logoInfo) string {
	if logo.Format == "jpeg" {
		return "logo.jpg"
	}
	return "logo.png"
}

// ── document.xml ──────────────────────────────────────────────────────────────

func buildDocumentXML(data *quoting.RenderData, logo *logoInfo, date string) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	root := doc.CreateElement("w:document")
	root.CreateAttr("xmlns:w", nsW)
	root.CreateAttr("xmlns:r", nsR)
	root.CreateAttr("xmlns:wp", nsWP)
	root.CreateAttr("xmlns:a", nsA)
	root.CreateAttr("xmlns:pic", nsPic)
	body := root.CreateElement("w:body")

	q := data.Quote
	if logo != nil {
		body.AddChild(logoParagraph(logo))
	}
	body.AddChild(paragraph(labelTitle, parProps{Bold: true, Size: 32, Center: true}))
	body.AddChild(paragraph(fmt.Sprintf("%s: %s", labelNumber, q.Number), parProps{Bold: true, Size: 24}))
	body.AddChild(paragraph(fmt.Sprintf("%s: %s", labelDate, date), parProps{}))
	body.AddChild(paragraph(statusLabel(q.Status), parProps{}))
	if q.Title != "" {
		body.AddChild(paragraph(q.Title, parProps{Size: 24}))
	}
	body.AddChild(paragraph("", parProps{}))

	body.AddChild(linesTable(data.Lines))

	body.AddChild(paragraph("", parProps{}))
	body.AddChild(paragraph(fmt.Sprintf("%s: %s", labelSubtotal, formatAmount(q.Subtotal)), parProps{}))
	body.AddChild(paragraph(fmt.Sprintf("%s: %s", vatLabel(q.VATRate), formatAmount(q.VATAmount)), parProps{}))
	body.AddChild(paragraph(fmt.Sprintf("%s: %s", labelTotal, formatAmount(q.Total)), parProps{Bold: true, Size: 24}))

	body.AddChild(sectionProperties())
	return doc
}

// parProps controls one paragraph. Size is in half-points (docx w:sz);
// zero means the application default.
type parProps struct {
	Bold   bool
	Size   int
	Center bool
}

// paragraph builds a single-run right-to-left paragraph.
func paragraph(textContent string, p parProps) *etree.Element {
	par := etree.NewElement("w:p")
	pPr := par.CreateElement("w:pPr")
	pPr.CreateElement("w:bidi")
	if p.Center {
		jc := pPr.CreateElement("w:jc")
		jc.CreateAttr("w:val", "center")
	}
	if textContent == "" {
		return par
	}
	run := par.CreateElement("w:r")
	rPr := run.CreateElement("w:rPr")
	if p.Bold {
		rPr.CreateElement("w:b")
	}
	if p.Size > 0 {
		sz := rPr.CreateElement("w:sz")
		sz.CreateAttr("w:val", strconv.Itoa(p.Size))
	}
	rPr.CreateElement("w:rtl")
	t := run.CreateElement("w:t")
	t.CreateAttr("xml:space", "preserve")
	t.SetText(textContent)
	return par
}

// linesTable builds the quote line table. w:bidiVisual flips the visual
// column order, so cells are appended in the right-to-left enumeration
// (index first) and render with the index column at the right edge.
func linesTable(lines []quoting.RenderLine) *etree.Element {
	tbl := etree.NewElement("w:tbl")

	tblPr := tbl.CreateElement("w:tblPr")
	tblPr.CreateElement("w:bidiVisual")
	width := 0
	for _, c := range tableColumns {
		width += c.Twips
	}
	tblW := tblPr.CreateElement("w:tblW")
	tblW.CreateAttr("w:w", strconv.Itoa(width))
	tblW.CreateAttr("w:type", "dxa")
	borders := tblPr.CreateElement("w:tblBorders")
	for _, side := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		b := borders.CreateElement("w:" + side)
		b.CreateAttr("w:val", "single")
		b.CreateAttr("w:sz", "4")
		b.CreateAttr("w:color", "auto")
	}

	grid := tbl.CreateElement("w:tblGrid")
	for _, c := range tableColumns {
		gc := grid.CreateElement("w:gridCol")
		gc.CreateAttr("w:w", strconv.Itoa(c.Twips))
	}

	header := tbl.CreateElement("w:tr")
	trPr := header.CreateElement("w:trPr")
	trPr.CreateElement("w:tblHeader")
	for _, c := range tableColumns {
		header.AddChild(tableCell(c.Label, c.Twips, true))
	}

	for _, l := range lines {
		cells := []string{
			strconv.Itoa(l.Index),
			l.Description,
			l.Unit,
			formatAmount(l.Quantity),
			formatAmount(l.UnitPrice),
			formatAmount(l.Discount),
			formatAmount(l.Total),
		}
		tr := tbl.CreateElement("w:tr")
		for i, c := range tableColumns {
			tr.AddChild(tableCell(cells[i], c.Twips, false))
		}
	}
	return tbl
}

func tableCell(textContent string, twips int, bold bool) *etree.Element {
	tc := etree.NewElement("w:tc")
	tcPr := tc.CreateElement("w:tcPr")
	tcW := tcPr.CreateElement("w:tcW")
	tcW.CreateAttr("w:w", strconv.Itoa(twips))
	tcW.CreateAttr("w:type", "dxa")
	tc.AddChild(paragraph(textContent, parProps{Bold: bold}))
	return tc
}

// logoParagraph embeds the logo as an inline drawing sized to the fitted
// box, in EMU.
func logoParagraph(logo *logoInfo) *etree.Element {
	cx := strconv.Itoa(int(logo.Width * emuPerPoint))
	cy := strconv.Itoa(int(logo.Height * emuPerPoint))

	par := etree.NewElement("w:p")
	pPr := par.CreateElement("w:pPr")
	pPr.CreateElement("w:bidi")
	run := par.CreateElement("w:r")
	drawing := run.CreateElement("w:drawing")

	inline := drawing.CreateElement("wp:inline")
	extent := inline.CreateElement("wp:extent")
	extent.CreateAttr("cx", cx)
	extent.CreateAttr("cy", cy)
	docPr := inline.CreateElement("wp:docPr")
	docPr.CreateAttr("id", "1")
	docPr.CreateAttr("name", "logo")

	graphic := inline.CreateElement("a:graphic")
	graphicData := graphic.CreateElement("a:graphicData")
	graphicData.CreateAttr("uri", nsPic)

	picEl := graphicData.CreateElement("pic:pic")
	nv := picEl.CreateElement("pic:nvPicPr")
	cNvPr := nv.CreateElement("pic:cNvPr")
	cNvPr.CreateAttr("id", "1")
	cNvPr.CreateAttr("name", "logo")
	nv.CreateElement("pic:cNvPicPr")

	blipFill := picEl.CreateElement("pic:blipFill")
	blip := blipFill.CreateElement("a:blip")
	blip.CreateAttr("r:embed", logoRelID)
	blipFill.CreateElement("a:stretch").CreateElement("a:fillRect")

	spPr := picEl.CreateElement("pic:spPr")
	xfrm := spPr.CreateElement("a:xfrm")
	off := xfrm.CreateElement("a:off")
	off.CreateAttr("x", "0")
	off.CreateAttr("y", "0")
	ext := xfrm.CreateElement("a:ext")
	ext.CreateAttr("cx", cx)
	ext.CreateAttr("cy", cy)
	geom := spPr.CreateElement("a:prstGeom")
	geom.CreateAttr("prst", "rect")

	return par
}

// sectionProperties: A4 portrait with 2cm margins, in twips.
func sectionProperties() *etree.Element {
	sectPr := etree.NewElement("w:sectPr")
	pgSz := sectPr.CreateElement("w:pgSz")
	pgSz.CreateAttr("w:w", "11906")
	pgSz.CreateAttr("w:h", "16838")
	pgMar := sectPr.CreateElement("w:pgMar")
	pgMar.CreateAttr("w:top", "1134")
	pgMar.CreateAttr("w:right", "1134")
	pgMar.CreateAttr("w:bottom", "1134")
	pgMar.CreateAttr("w:left", "1134")
	return sectPr
}

func serializeXML(doc *etree.Document) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
