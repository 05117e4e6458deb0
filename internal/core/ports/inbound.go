package ports

import (
	"context"
	"io"

	"github.com/Navya123445/RAG-project/internal/core/domain"
)

// DocumentIngestor is the inbound contract for document upload orchestration.
type DocumentIngestor interface {
	Upload(ctx context.Context, filename, mimeType string, body, marks io.Reader) (*domain.Document, error)
}

// DocumentQueryService is the inbound contract for annotated retrieval.
type DocumentQueryService interface {
	Answer(ctx context.Context, question string, limit int, filter domain.SearchFilter) (*domain.Answer, error)
}

// DocumentReader is the inbound read model for document metadata/state
// and stored annotation records.
type DocumentReader interface {
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	GetAnnotations(ctx context.Context, id string) ([]domain.AnnotationRecord, error)
}

// DocumentProcessor is the inbound contract for asynchronous document processing.
type DocumentProcessor interface {
	ProcessByID(ctx context.Context, documentID string) error
}
