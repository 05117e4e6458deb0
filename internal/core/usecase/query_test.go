package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/Navya123445/RAG-project/internal/core/domain"
)

type queryEmbedderFake struct {
	query string
	err   error
}

func (f *queryEmbedderFake) Embed(context.Context, []string) ([][]float32, error) { return nil, nil }
func (f *queryEmbedderFake) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	f.query = text
	if f.err != nil {
		return nil, f.err
	}
	return []float32{0.1, 0.2}, nil
}

type queryVectorFake struct {
	limit  int
	filter domain.SearchFilter
	err    error
}

func (f *queryVectorFake) IndexChunks(context.Context, *domain.Document, domain.RawPage, []string, []domain.ChunkBinding, [][]float32) error {
	return nil
}
func (f *queryVectorFake) Search(_ context.Context, _ []float32, limit int, filter domain.SearchFilter) ([]domain.RetrievedChunk, error) {
	f.limit = limit
	f.filter = filter
	if f.err != nil {
		return nil, f.err
	}
	return []domain.RetrievedChunk{{DocumentID: "doc-1", Text: "chunk"}}, nil
}

type queryGeneratorFake struct {
	err error
}

func (f *queryGeneratorFake) GenerateAnswer(context.Context, string, []domain.RetrievedChunk) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "answer", nil
}

func TestQueryUseCaseAnswerDefaultLimit(t *testing.T) {
	embedder := &queryEmbedderFake{}
	vector := &queryVectorFake{}
	generator := &queryGeneratorFake{}
	uc := NewQueryUseCase(embedder, vector, generator)

	answer, err := uc.Answer(context.Background(), "q", 0, domain.SearchFilter{})
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if answer.Text != "answer" {
		t.Fatalf("expected answer text, got %s", answer.Text)
	}
	if vector.limit != 5 {
		t.Fatalf("expected default limit=5, got %d", vector.limit)
	}
}

func TestQueryUseCaseDerivesFilterFromQuestion(t *testing.T) {
	vector := &queryVectorFake{}
	uc := NewQueryUseCase(&queryEmbedderFake{}, vector, &queryGeneratorFake{})

	_, err := uc.Answer(context.Background(), "What is the purchase price?", 3, domain.SearchFilter{})
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if !vector.filter.RequireColorAmounts {
		t.Fatalf("price question should require color amounts, got %+v", vector.filter)
	}
	if vector.filter.RequireColorDates {
		t.Fatalf("price question must not require dates")
	}
}

func TestQueryUseCaseExplicitFilterWins(t *testing.T) {
	vector := &queryVectorFake{}
	uc := NewQueryUseCase(&queryEmbedderFake{}, vector, &queryGeneratorFake{})

	explicit := domain.SearchFilter{RequireHighQuality: true}
	if _, err := uc.Answer(context.Background(), "What is the purchase price?", 3, explicit); err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if vector.filter != explicit {
		t.Fatalf("explicit filter must pass through untouched, got %+v", vector.filter)
	}
}

func TestQueryUseCaseAnswerEmbedError(t *testing.T) {
	uc := NewQueryUseCase(&queryEmbedderFake{err: errors.New("embed fail")}, &queryVectorFake{}, &queryGeneratorFake{})
	_, err := uc.Answer(context.Background(), "q", 3, domain.SearchFilter{})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestDeriveFilterCombinesCues(t *testing.T) {
	filter := DeriveFilter("When does the Buyer pay?")
	if !filter.RequireColorDates || !filter.RequireColorParties || !filter.RequireColorAmounts {
		t.Fatalf("expected dates+parties+amounts, got %+v", filter)
	}
	if !DeriveFilter("unrelated question").IsZero() {
		t.Fatalf("unclassifiable question must keep unfiltered search")
	}
}
