package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Navya123445/RAG-project/internal/config"
	"github.com/Navya123445/RAG-project/internal/core/domain"
)

type queryErrFake struct {
	err error
}

func (f queryErrFake) Answer(_ context.Context, _ string, _ int, _ domain.SearchFilter) (*domain.Answer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Answer{Text: "ok"}, nil
}

type docsErrFake struct {
	err error
}

func (f docsErrFake) GetByID(context.Context, string) (*domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Document{ID: "doc-1", Filename: "spa.pdf", MimeType: "application/pdf", StoragePath: "a", Status: domain.StatusReady}, nil
}

func (f docsErrFake) GetAnnotations(context.Context, string) ([]domain.AnnotationRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []domain.AnnotationRecord{{ColorIntegrationUsed: true}}, nil
}

func TestQueryRagMapsDomainInvalidInputTo400(t *testing.T) {
	handler := NewRouter(
		config.Config{RAGTopK: 5},
		nil,
		queryErrFake{err: domain.WrapError(domain.ErrInvalidInput, "answer", errors.New("bad query"))},
		docsErrFake{},
	).Handler()

	payload, _ := json.Marshal(map[string]any{"question": "test"})
	req := httptest.NewRequest(http.MethodPost, "/v1/rag/query", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestQueryRagMapsTemporaryTo503(t *testing.T) {
	handler := NewRouter(
		config.Config{RAGTopK: 5},
		nil,
		queryErrFake{err: domain.WrapError(domain.ErrTemporary, "answer", errors.New("vector db down"))},
		docsErrFake{},
	).Handler()

	payload, _ := json.Marshal(map[string]any{"question": "test"})
	req := httptest.NewRequest(http.MethodPost, "/v1/rag/query", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", res.Code)
	}
}

func TestGetDocumentByIDReturns404ForNotFound(t *testing.T) {
	handler := NewRouter(
		config.Config{RAGTopK: 5},
		nil,
		queryErrFake{},
		docsErrFake{err: domain.WrapError(domain.ErrDocumentNotFound, "get", errors.New("id=missing"))},
	).Handler()

	req := httptest.NewRequest(http.MethodGet, "/v1/documents/missing", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestGetDocumentAnnotationsReturnsPages(t *testing.T) {
	handler := NewRouter(
		config.Config{RAGTopK: 5},
		nil,
		queryErrFake{},
		docsErrFake{},
	).Handler()

	req := httptest.NewRequest(http.MethodGet, "/v1/documents/doc-1/annotations", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var payload struct {
		DocumentID string                    `json:"document_id"`
		Pages      []domain.AnnotationRecord `json:"pages"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.DocumentID != "doc-1" || len(payload.Pages) != 1 || !payload.Pages[0].ColorIntegrationUsed {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}
