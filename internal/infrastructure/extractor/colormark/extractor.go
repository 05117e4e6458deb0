package colormark

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/Navya123445/RAG-project/internal/core/domain"
	"github.com/Navya123445/RAG-project/internal/core/ports"
)

// Extractor is the color-aware backend. It walks the text layer like
// the plain backend and joins in the color marks exported by the markup
// tool as a `<file>.marks.json` sidecar. No sidecar means this backend
// loses the race; the document then continues without color entities.
type Extractor struct {
	storage ports.ObjectStorage
}

func NewExtractor(storage ports.ObjectStorage) *Extractor {
	return &Extractor{storage: storage}
}

func (e *Extractor) Name() string { return "colormark" }

// sidecarMark mirrors one markup-tool annotation record: the marked
// rectangle, its fill color with components in [0,1], and the text the
// rectangle encloses.
type sidecarMark struct {
	Page  int        `json:"page"`
	Text  string     `json:"text"`
	Color []float64  `json:"color"`
	Rect  [4]float64 `json:"rect"`
	Kind  string     `json:"kind"`
}

type sidecarFile struct {
	Annotations []sidecarMark `json:"annotations"`
}

func (e *Extractor) Extract(ctx context.Context, doc *domain.Document) ([]domain.RawPage, error) {
	marksByPage, err := e.loadSidecar(ctx, doc)
	if err != nil {
		return nil, err
	}

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
			continue
		}
		pages = append(pages, domain.RawPage{
			SourceID:         doc.ID,
			PageNumber:       i,
			Text:             strings.TrimSpace(text),
			ExtractionMethod: e.Name(),
			ColorEntities:    classifyMarks(marksByPage[i]),
		})
	}
	return pages, nil
}

func (e *Extractor) loadSidecar(ctx context.Context, doc *domain.Document) (map[int][]sidecarMark, error) {
	reader, err := e.storage.Open(ctx, doc.StoragePath+domain.MarksSuffix)
	if err != nil {
		return nil, fmt.Errorf("open markup sidecar: %w", err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read markup sidecar: %w", err)
	}
	var sidecar sidecarFile
	if err := json.Unmarshal(raw, &sidecar); err != nil {
		return nil, fmt.Errorf("parse markup sidecar: %w", err)
	}

	byPage := make(map[int][]sidecarMark)
	for _, mark := range sidecar.Annotations {
		byPage[mark.Page] = append(byPage[mark.Page], mark)
	}
	return byPage, nil
}

// classifyMarks turns sidecar records into categorized color entities.
// Marks that classify as UNKNOWN carry no signal and are dropped.
func classifyMarks(marks []sidecarMark) []domain.ColorEntity {
	var entities []domain.ColorEntity
	for _, mark := range marks {
		if len(mark.Color) < 3 || strings.TrimSpace(mark.Text) == "" {
			continue
		}
		rgb := [3]float64{mark.Color[0], mark.Color[1], mark.Color[2]}
		category := domain.ClassifyColor(rgb, mark.Text)
		if category == domain.CategoryUnknown {
			continue
		}
		kind := domain.ColorSourceSpan
		if strings.EqualFold(mark.Kind, string(domain.ColorSourceHighlight)) {
			kind = domain.ColorSourceHighlight
		}
		entities = append(entities, domain.ColorEntity{
			Text:       strings.TrimSpace(mark.Text),
			Category:   category,
			RGB:        rgb,
			SourceKind: kind,
		})
	}
	return entities
}
