package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/Navya123445/RAG-project/internal/core/annotate"
	"github.com/Navya123445/RAG-project/internal/core/domain"
	"github.com/Navya123445/RAG-project/internal/core/ports"
)

type statusCall struct {
	status domain.DocumentStatus
	errMsg string
}

type processRepoFake struct {
	doc           *domain.Document
	getErr        error
	saveErr       error
	failStatusErr error
	statusCalls   []statusCall
	savedSummary  domain.Document
	savedRecords  []domain.AnnotationRecord
	savedID       string
}

func (f *processRepoFake) Create(context.Context, *domain.Document) error { return nil }

func (f *processRepoFake) GetByID(context.Context, string) (*domain.Document, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	copyDoc := *f.doc
	return &copyDoc, nil
}

func (f *processRepoFake) UpdateStatus(_ context.Context, _ string, status domain.DocumentStatus, errMessage string) error {
	f.statusCalls = append(f.statusCalls, statusCall{status: status, errMsg: errMessage})
	if status == domain.StatusFailed && f.failStatusErr != nil {
		return f.failStatusErr
	}
	return nil
}

func (f *processRepoFake) SaveAnnotations(_ context.Context, id string, summary domain.Document, records []domain.AnnotationRecord) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.savedID = id
	f.savedSummary = summary
	f.savedRecords = records
	return nil
}

func (f *processRepoFake) GetAnnotations(context.Context, string) ([]domain.AnnotationRecord, error) {
	return nil, errors.New("not implemented")
}

func (f *processRepoFake) ListByStatus(context.Context, domain.DocumentStatus) ([]domain.Document, error) {
	return nil, errors.New("not implemented")
}

type processBackendFake struct {
	name  string
	pages []domain.RawPage
	err   error
}

func (f *processBackendFake) Name() string { return f.name }

func (f *processBackendFake) Extract(context.Context, *domain.Document) ([]domain.RawPage, error) {
	return f.pages, f.err
}

type chunkerFake struct {
	chunks []string
}

func (f *chunkerFake) Split(string) []string { return f.chunks }

type embedderFake struct {
	vectors [][]float32
	err     error
}

func (f *embedderFake) Embed(context.Context, []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vectors, nil
}

func (f *embedderFake) EmbedQuery(context.Context, string) ([]float32, error) { return nil, nil }

type vectorFake struct {
	err      error
	bindings []domain.ChunkBinding
	calls    int
}

func (f *vectorFake) IndexChunks(_ context.Context, _ *domain.Document, _ domain.RawPage, _ []string, bindings []domain.ChunkBinding, _ [][]float32) error {
	if f.err != nil {
		return f.err
	}
	f.calls++
	f.bindings = append(f.bindings, bindings...)
	return nil
}

func (f *vectorFake) Search(context.Context, []float32, int, domain.SearchFilter) ([]domain.RetrievedChunk, error) {
	return nil, nil
}

type graphFake struct {
	parties []domain.FusedEntity
	err     error
}

func (f *graphFake) IndexParties(_ context.Context, _ *domain.Document, parties []domain.FusedEntity) error {
	if f.err != nil {
		return f.err
	}
	f.parties = append(f.parties, parties...)
	return nil
}

func spaPage() domain.RawPage {
	return domain.RawPage{
		PageNumber: 1,
		Text:       "The purchase price is $1,500,000.00 payable by the Buyer.",
		ColorEntities: []domain.ColorEntity{
			{Text: "$1,500,000.00", Category: domain.CategoryAmount},
			{Text: "Acme Holdings, Inc.", Category: domain.CategoryParty},
		},
	}
}

func newProcessUC(repo *processRepoFake, backends []ports.ExtractionBackend, vec *vectorFake, graph ports.EntityGraph) *ProcessDocumentUseCase {
	return NewProcessDocumentUseCase(
		repo,
		backends,
		annotate.NewEngine(nil, nil),
		&chunkerFake{chunks: []string{"a", "b"}},
		&embedderFake{vectors: [][]float32{{1}, {2}}},
		vec,
		graph,
	)
}

func TestProcessByIDSuccess(t *testing.T) {
	repo := &processRepoFake{doc: &domain.Document{ID: "doc-1"}}
	vec := &vectorFake{}
	graph := &graphFake{}
	uc := newProcessUC(repo, []ports.ExtractionBackend{
		&processBackendFake{name: "colormark", pages: []domain.RawPage{spaPage()}},
		&processBackendFake{name: "pdfplain", err: errors.New("no text layer")},
	}, vec, graph)

	if err := uc.ProcessByID(context.Background(), "doc-1"); err != nil {
		t.Fatalf("ProcessByID() error = %v", err)
	}
	if len(repo.statusCalls) != 2 {
		t.Fatalf("expected 2 status calls, got %d", len(repo.statusCalls))
	}
	if repo.statusCalls[0].status != domain.StatusProcessing || repo.statusCalls[1].status != domain.StatusReady {
		t.Fatalf("unexpected status sequence: %+v", repo.statusCalls)
	}
	if repo.savedID != "doc-1" || len(repo.savedRecords) != 1 {
		t.Fatalf("expected one saved record for doc-1, got %s/%d", repo.savedID, len(repo.savedRecords))
	}
	if repo.savedSummary.ExtractionMethod != "colormark" {
		t.Fatalf("extraction method = %s, want colormark", repo.savedSummary.ExtractionMethod)
	}
	if repo.savedSummary.PageCount != 1 {
		t.Fatalf("page count = %d, want 1", repo.savedSummary.PageCount)
	}
	if !repo.savedSummary.ColorIntegration {
		t.Fatalf("color integration flag must roll up")
	}
	if repo.savedSummary.Confidence <= 0 {
		t.Fatalf("document confidence must roll up, got %v", repo.savedSummary.Confidence)
	}
	if vec.calls != 1 || len(vec.bindings) != 2 {
		t.Fatalf("expected one indexed page with 2 bindings, got %d/%d", vec.calls, len(vec.bindings))
	}
	if len(graph.parties) == 0 {
		t.Fatalf("company entities must reach the graph")
	}
}

func TestProcessByIDFailsWhenAllBackendsScoreZero(t *testing.T) {
	repo := &processRepoFake{doc: &domain.Document{ID: "doc-1"}}
	uc := newProcessUC(repo, []ports.ExtractionBackend{
		&processBackendFake{name: "colormark", err: errors.New("no sidecar")},
		&processBackendFake{name: "pdfplain", err: errors.New("corrupt xref")},
	}, &vectorFake{}, nil)

	err := uc.ProcessByID(context.Background(), "doc-1")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, domain.ErrExtractionExhausted) {
		t.Fatalf("expected ErrExtractionExhausted, got %v", err)
	}
	if len(repo.statusCalls) != 2 || repo.statusCalls[1].status != domain.StatusFailed {
		t.Fatalf("expected final failed status, got %+v", repo.statusCalls)
	}
}

func TestProcessByIDMarksFailedOnVectorMismatch(t *testing.T) {
	repo := &processRepoFake{doc: &domain.Document{ID: "doc-1"}}
	uc := NewProcessDocumentUseCase(
		repo,
		[]ports.ExtractionBackend{&processBackendFake{name: "pdfplain", pages: []domain.RawPage{spaPage()}}},
		annotate.NewEngine(nil, nil),
		&chunkerFake{chunks: []string{"a", "b"}},
		&embedderFake{vectors: [][]float32{{1}}},
		&vectorFake{},
		nil,
	)

	err := uc.ProcessByID(context.Background(), "doc-1")
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(repo.statusCalls) != 2 || repo.statusCalls[1].status != domain.StatusFailed {
		t.Fatalf("expected final failed status, got %+v", repo.statusCalls)
	}
}

func TestProcessByIDGraphOutageIsNonFatal(t *testing.T) {
	repo := &processRepoFake{doc: &domain.Document{ID: "doc-1"}}
	graph := &graphFake{err: errors.New("neo4j down")}
	uc := newProcessUC(repo, []ports.ExtractionBackend{
		&processBackendFake{name: "colormark", pages: []domain.RawPage{spaPage()}},
	}, &vectorFake{}, graph)

	var reported [][]string
	uc.ReportIssues = func(_ string, _ int, issues []string) {
		reported = append(reported, issues)
	}

	if err := uc.ProcessByID(context.Background(), "doc-1"); err != nil {
		t.Fatalf("graph outage must not fail processing: %v", err)
	}
	if len(reported) == 0 {
		t.Fatalf("graph outage should surface as an issue")
	}
}

func TestProcessByIDBlankPageSkipsIndexing(t *testing.T) {
	repo := &processRepoFake{doc: &domain.Document{ID: "doc-1"}}
	vec := &vectorFake{}
	uc := NewProcessDocumentUseCase(
		repo,
		[]ports.ExtractionBackend{&processBackendFake{name: "pdfplain", pages: []domain.RawPage{
			{PageNumber: 1, Text: "The Seller receives $9,000,000 at closing."},
			{PageNumber: 2, Text: ""},
		}}},
		annotate.NewEngine(nil, nil),
		&emptyAwareChunker{},
		&embedderFake{vectors: [][]float32{{1}}},
		vec,
		nil,
	)

	if err := uc.ProcessByID(context.Background(), "doc-1"); err != nil {
		t.Fatalf("ProcessByID() error = %v", err)
	}
	if vec.calls != 1 {
		t.Fatalf("blank page must not be indexed, calls = %d", vec.calls)
	}
	if len(repo.savedRecords) != 2 {
		t.Fatalf("blank page still gets a record, got %d", len(repo.savedRecords))
	}
}

type emptyAwareChunker struct{}

func (emptyAwareChunker) Split(text string) []string {
	if text == "" {
		return nil
	}
	return []string{text}
}
