package quoting

import (
	"context"
	"fmt"

	"github.com/quoteflow/quoteflow/internal/domain"
	"github.com/quoteflow/quoteflow/internal/domain/repository"
)

// Document MIME types.
const (
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ExportUseCase loads a quote with everything a renderer needs (resolved
// catalog descriptions, company logo) and produces one of the two document
// formats. Export is read-only: it never touches persisted state.
type ExportUseCase struct {
	quoteRepo   repository.QuoteRepository
	catalogRepo repository.CatalogItemRepository
	companyRepo repository.CompanyRepository
	pdf         QuoteDocumentRenderer
	docx        QuoteDocumentRenderer
}

// NewExportUseCase builds the use case with both renderers injected.
func NewExportUseCase(
	quoteRepo repository.QuoteRepository,
	catalogRepo repository.CatalogItemRepository,
	companyRepo repository.CompanyRepository,
	pdf QuoteDocumentRenderer,
	docx QuoteDocumentRenderer,
) *ExportUseCase {
	return &ExportUseCase{
		quoteRepo:   quoteRepo,
		catalogRepo: catalogRepo,
		companyRepo: companyRepo,
		pdf:         pdf,
		docx:        docx,
	}
}

// DownloadPDF renders the fixed-layout paginated format.
func (uc *ExportUseCase) DownloadPDF(ctx context.Context, companyID, quoteID string) (data []byte, filename, mime string, err error) {
	return uc.download(ctx, companyID, quoteID, uc.pdf, "pdf", MIMEPDF)
}

// DownloadDOCX renders the flow-document format.
func (uc *ExportUseCase) DownloadDOCX(ctx context.Context, companyID, quoteID string) (data []byte, filename, mime string, err error) {
	return uc.download(ctx, companyID, quoteID, uc.docx, "docx", MIMEDOCX)
}

func (uc *ExportUseCase) download(ctx context.Context, companyID, quoteID string, renderer QuoteDocumentRenderer, ext, mime string) ([]byte, string, string, error) {
	rd, err := uc.loadRenderData(companyID, quoteID)
	if err != nil {
		return nil, "", "", err
	}
	data, err := renderer.Render(ctx, rd)
	if err != nil {
		return nil, "", "", fmt.Errorf("render quote %s: %w", rd.Quote.Number, err)
	}
	return data, fmt.Sprintf("quote-%s.%s", rd.Quote.Number, ext), mime, nil
}

// loadRenderData assembles the render input: the quote and lines as stored
// (amounts are never recomputed here), catalog descriptions and units, and
// the company logo bytes when one is stored.
func (uc *ExportUseCase) loadRenderData(companyID, quoteID string) (*RenderData, error) {
	quote, err := uc.quoteRepo.GetByID(quoteID)
	if err != nil {
		return nil, fmt.Errorf("export: load quote: %w", err)
	}
	if quote == nil || quote.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	items, err := uc.quoteRepo.GetItemsByQuoteID(quoteID)
	if err != nil {
		return nil, fmt.Errorf("export: load quote items: %w", err)
	}

	lines := make([]RenderLine, 0, len(items))
	for i, it := range items {
		line := RenderLine{
			Index:     i + 1,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Discount:  it.Discount,
			Total:     it.Total,
		}
		ci, err := uc.catalogRepo.GetByID(it.CatalogItemID)
		if err != nil {
			return nil, fmt.Errorf("export: resolve catalog item %s: %w", it.CatalogItemID, err)
		}
		if ci != nil {
			line.Description = ci.Description
			line.Unit = ci.Unit
		}
		lines = append(lines, line)
	}

	rd := &RenderData{Quote: quote, Lines: lines}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, fmt.Errorf("export: load company: %w", err)
	}
	if company != nil {
		rd.Logo = company.LogoData
	}
	return rd, nil
}
