package pdffallback

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/Navya123445/RAG-project/internal/core/domain"
	"github.com/Navya123445/RAG-project/internal/core/ports"
)

// Extractor rebuilds page text from positioned rows. Slower than the
// plain-text walk but survives PDFs with a broken content stream order,
// which scanned agreements produce often enough to matter.
type Extractor struct {
	storage ports.ObjectStorage
}

func NewExtractor(storage ports.ObjectStorage) *Extractor {
	return &Extractor{storage: storage}
}

func (e *Extractor) Name() string { return "pdffallback" }

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
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var sb strings.Builder
		for _, row := range rows {
			for _, word := range row.Content {
				sb.WriteString(word.S)
				sb.WriteByte(' ')
			}
			sb.WriteByte('\n')
		}
		pages = append(pages, domain.RawPage{
			SourceID:         doc.ID,
			PageNumber:       i,
			Text:             strings.TrimSpace(sb.String()),
			ExtractionMethod: e.Name(),
		})
	}
	return pages, nil
}
