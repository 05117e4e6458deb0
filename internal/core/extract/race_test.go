package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/Navya123445/RAG-project/internal/core/domain"
	"github.com/Navya123445/RAG-project/internal/core/ports"
)

type backendFake struct {
	name  string
	pages []domain.RawPage
	err   error
}

func (f *backendFake) Name() string { return f.name }

func (f *backendFake) Extract(context.Context, *domain.Document) ([]domain.RawPage, error) {
	return f.pages, f.err
}

func TestRaceSwallowsBackendFailure(t *testing.T) {
	backends := []ports.ExtractionBackend{
		&backendFake{name: "colormark", err: errors.New("corrupt annotations")},
		&backendFake{name: "pdfplain", pages: []domain.RawPage{{Text: "Seller receives $9,000,000 at closing."}}},
	}

	results := Race(context.Background(), &domain.Document{ID: "doc-1"}, backends)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Score != 0 || results[0].Err == nil {
		t.Fatalf("failed backend should score 0 with recorded error: %+v", results[0])
	}
	if results[1].Score == 0 {
		t.Fatalf("healthy backend should score > 0")
	}
}

func TestSelectBestPicksHighestScore(t *testing.T) {
	results := []Result{
		{Backend: "colormark", Score: 0},
		{Backend: "pdfplain", Score: 4200, Pages: []domain.RawPage{{Text: "a"}}},
		{Backend: "pdffallback", Score: 3100, Pages: []domain.RawPage{{Text: "b"}}},
	}

	best, ok := SelectBest(results)
	if !ok {
		t.Fatalf("expected a winner")
	}
	if best.Backend != "pdfplain" {
		t.Fatalf("winner = %s, want pdfplain", best.Backend)
	}
}

func TestSelectBestTieKeepsPreferenceOrder(t *testing.T) {
	results := []Result{
		{Backend: "colormark", Score: 3100},
		{Backend: "pdfplain", Score: 3100},
	}

	best, ok := SelectBest(results)
	if !ok {
		t.Fatalf("expected a winner")
	}
	if best.Backend != "colormark" {
		t.Fatalf("tie should keep the more preferred backend, got %s", best.Backend)
	}
}

func TestSelectBestAllZeroYieldsNoPages(t *testing.T) {
	results := []Result{
		{Backend: "colormark", Score: 0},
		{Backend: "pdfplain", Score: 0},
		{Backend: "pdffallback", Score: 0},
	}

	if _, ok := SelectBest(results); ok {
		t.Fatalf("all-zero race must yield no pages")
	}
}
