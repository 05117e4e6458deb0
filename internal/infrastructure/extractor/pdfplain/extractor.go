package pdfplain

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/Navya123445/RAG-project/internal/core/domain"
	"github.com/Navya123445/RAG-project/internal/core/ports"
)

// Extractor pulls the text layer page by page. Primary backend for
// well-formed digital PDFs.
type Extractor struct {
	storage ports.ObjectStorage
}

func NewExtractor(storage ports.ObjectStorage) *Extractor {
	return &Extractor{storage: storage}
}

func (e *Extractor) Name() string { return "pdfplain" }

func (e *Extractor) Extract(ctx context.Context, doc *domain.Document) ([]domain.RawPage, error) {
	file, reader, err := pdf.Open(e.storage.Path(doc.StoragePath))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer file.Close()

	pages := make([]domain.RawPage, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page lowers the score, it does not
			// abort the backend.
			continue
		}
		pages = append(pages, domain.RawPage{
			SourceID:         doc.ID,
			PageNumber:       i,
			Text:             strings.TrimSpace(text),
			ExtractionMethod: e.Name(),
		})
	}
	return pages, nil
}
