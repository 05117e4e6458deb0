package ports

import (
	"context"
	"io"

	"github.com/Navya123445/RAG-project/internal/core/domain"
)

// DocumentRepository persists and reads document state and annotations.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error
	SaveAnnotations(ctx context.Context, id string, summary domain.Document, records []domain.AnnotationRecord) error
	GetAnnotations(ctx context.Context, id string) ([]domain.AnnotationRecord, error)
	ListByStatus(ctx context.Context, status domain.DocumentStatus) ([]domain.Document, error)
}

// ObjectStorage stores source documents and their markup sidecars.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Path(key string) string
}

// MessageQueue publishes/consumes ingestion events.
type MessageQueue interface {
	PublishDocumentIngested(ctx context.Context, documentID string) error
	SubscribeDocumentIngested(ctx context.Context, handler func(context.Context, string) error) error
}

// ExtractionBackend is one raw-text extraction strategy. Extract returns
// page documents for the stored file; an error or an empty page list
// scores the backend zero in the race, it never aborts the document.
type ExtractionBackend interface {
	Name() string
	Extract(ctx context.Context, doc *domain.Document) ([]domain.RawPage, error)
}

// EntityRecognizer is the statistical named-entity recognizer. Absence
// or failure degrades fusion tier 2 to a no-op.
type EntityRecognizer interface {
	Recognize(ctx context.Context, text string) ([]domain.RecognizedSpan, error)
}

// Embedder builds vectors for chunks and query text.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Chunker splits page text into overlapping chunks.
type Chunker interface {
	Split(text string) []string
}

// VectorStore indexes bound chunks and performs filtered semantic search.
type VectorStore interface {
	IndexChunks(ctx context.Context, doc *domain.Document, page domain.RawPage, chunks []string, bindings []domain.ChunkBinding, vectors [][]float32) error
	Search(ctx context.Context, queryVector []float32, limit int, filter domain.SearchFilter) ([]domain.RetrievedChunk, error)
}

// AnswerGenerator creates the final user-facing answer.
type AnswerGenerator interface {
	GenerateAnswer(ctx context.Context, question string, chunks []domain.RetrievedChunk) (string, error)
}

// EntityGraph records party-to-document edges for cross-document lookups.
// Best effort: callers log failures and continue.
type EntityGraph interface {
	IndexParties(ctx context.Context, doc *domain.Document, parties []domain.FusedEntity) error
}

// ReportWriter renders annotation records into a review artifact.
type ReportWriter interface {
	Write(docs []domain.Document, records map[string][]domain.AnnotationRecord, w io.Writer) error
}
