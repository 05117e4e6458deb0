package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Navya123445/RAG-project/internal/core/annotate"
	"github.com/Navya123445/RAG-project/internal/core/domain"
	"github.com/Navya123445/RAG-project/internal/core/extract"
	"github.com/Navya123445/RAG-project/internal/core/ports"
)

type ProcessDocumentUseCase struct {
	repo     ports.DocumentRepository
	backends []ports.ExtractionBackend
	engine   *annotate.Engine
	chunker  ports.Chunker
	embedder ports.Embedder
	vectorDB ports.VectorStore
	graph    ports.EntityGraph

	// ReportIssues receives non-fatal per-page fusion degradations.
	// Nil drops them.
	ReportIssues func(documentID string, pageNumber int, issues []string)
}

func NewProcessDocumentUseCase(
	repo ports.DocumentRepository,
	backends []ports.ExtractionBackend,
	engine *annotate.Engine,
	chunker ports.Chunker,
	embedder ports.Embedder,
	vectorDB ports.VectorStore,
	graph ports.EntityGraph,
) *ProcessDocumentUseCase {
	return &ProcessDocumentUseCase{
		repo:     repo,
		backends: backends,
		engine:   engine,
		chunker:  chunker,
		embedder: embedder,
		vectorDB: vectorDB,
		graph:    graph,
	}
}

func (uc *ProcessDocumentUseCase) ProcessByID(ctx context.Context, documentID string) error {
	if err := uc.markStatus(ctx, documentID, domain.StatusProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	doc, records, err := uc.processPipeline(ctx, documentID)
	if err != nil {
		if failErr := uc.markFailed(ctx, documentID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.repo.SaveAnnotations(ctx, doc.ID, *doc, records); err != nil {
		err = fmt.Errorf("save annotations: %w", err)
		if failErr := uc.markFailed(ctx, documentID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.markStatus(ctx, documentID, domain.StatusReady, ""); err != nil {
		return fmt.Errorf("set status=ready: %w", err)
	}

	return nil
}

func (uc *ProcessDocumentUseCase) processPipeline(ctx context.Context, documentID string) (*domain.Document, []domain.AnnotationRecord, error) {
	doc, err := uc.loadDocument(ctx, documentID)
	if err != nil {
		return nil, nil, err
	}

	pages, method, err := uc.extractPages(ctx, doc)
	if err != nil {
		return nil, nil, err
	}
	doc.ExtractionMethod = method
	doc.PageCount = len(pages)

	records := make([]domain.AnnotationRecord, 0, len(pages))
	for _, page := range pages {
		record, err := uc.annotateAndIndexPage(ctx, doc, page)
		if err != nil {
			return nil, nil, err
		}
		records = append(records, record)
	}

	uc.applyRollup(doc, records)
	return doc, records, nil
}

func (uc *ProcessDocumentUseCase) loadDocument(ctx context.Context, documentID string) (*domain.Document, error) {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("fetch document by id: %w", err)
	}
	return doc, nil
}

// extractPages races all configured backends and keeps the strongest
// result. Individual backend failures only lower that backend's score;
// the document fails only when every backend scores zero.
func (uc *ProcessDocumentUseCase) extractPages(ctx context.Context, doc *domain.Document) ([]domain.RawPage, string, error) {
	results := extract.Race(ctx, doc, uc.backends)
	best, ok := extract.SelectBest(results)
	if !ok {
		detail := make([]string, 0, len(results))
		for _, r := range results {
			if r.Err != nil {
				detail = append(detail, fmt.Sprintf("%s: %v", r.Backend, r.Err))
			} else {
				detail = append(detail, fmt.Sprintf("%s: empty", r.Backend))
			}
		}
		return nil, "", domain.WrapError(
			domain.ErrExtractionExhausted,
			"extract pages",
			errors.New(strings.Join(detail, "; ")),
		)
	}
	return best.Pages, best.Backend, nil
}

func (uc *ProcessDocumentUseCase) annotateAndIndexPage(ctx context.Context, doc *domain.Document, page domain.RawPage) (domain.AnnotationRecord, error) {
	record, issues := uc.engine.Annotate(ctx, page)
	if len(issues) > 0 && uc.ReportIssues != nil {
		uc.ReportIssues(doc.ID, page.PageNumber, issues)
	}

	chunks := uc.chunker.Split(page.Text)
	if len(chunks) == 0 {
		// Blank page: keep the record, nothing to index.
		return record, nil
	}

	bindings := make([]domain.ChunkBinding, 0, len(chunks))
	for i, chunk := range chunks {
		bindings = append(bindings, uc.engine.BindChunk(uuid.NewString(), i, chunk, page, record))
	}

	vectors, err := uc.embed(ctx, chunks)
	if err != nil {
		return domain.AnnotationRecord{}, err
	}

	if err := uc.vectorDB.IndexChunks(ctx, doc, page, chunks, bindings, vectors); err != nil {
		return domain.AnnotationRecord{}, fmt.Errorf("index chunks in vector db: %w", err)
	}

	uc.indexParties(ctx, doc, record)
	return record, nil
}

func (uc *ProcessDocumentUseCase) embed(ctx context.Context, chunks []string) ([][]float32, error) {
	vectors, err := uc.embedder.Embed(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return nil, domain.WrapError(
			domain.ErrInvalidInput,
			"embed chunks",
			fmt.Errorf("vectors/chunks mismatch: %d/%d", len(vectors), len(chunks)),
		)
	}
	return vectors, nil
}

// indexParties pushes company entities into the entity graph. Best
// effort: a graph outage must not fail the document.
func (uc *ProcessDocumentUseCase) indexParties(ctx context.Context, doc *domain.Document, record domain.AnnotationRecord) {
	if uc.graph == nil || len(record.LegalEntities.Companies) == 0 {
		return
	}
	if err := uc.graph.IndexParties(ctx, doc, record.LegalEntities.Companies); err != nil && uc.ReportIssues != nil {
		uc.ReportIssues(doc.ID, 0, []string{fmt.Sprintf("entity graph degraded: %v", err)})
	}
}

// applyRollup derives the document-level summary from per-page records.
func (uc *ProcessDocumentUseCase) applyRollup(doc *domain.Document, records []domain.AnnotationRecord) {
	if len(records) == 0 {
		return
	}
	var sum float64
	for _, record := range records {
		sum += record.ConfidenceScores.Overall
		if record.ColorIntegrationUsed {
			doc.ColorIntegration = true
		}
	}
	doc.Confidence = sum / float64(len(records))
}

func (uc *ProcessDocumentUseCase) markStatus(ctx context.Context, documentID string, status domain.DocumentStatus, errMessage string) error {
	return uc.repo.UpdateStatus(ctx, documentID, status, errMessage)
}

func (uc *ProcessDocumentUseCase) markFailed(ctx context.Context, documentID string, processErr error) error {
	if processErr == nil {
		return nil
	}
	return uc.markStatus(ctx, documentID, domain.StatusFailed, processErr.Error())
}
