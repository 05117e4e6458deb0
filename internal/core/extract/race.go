package extract

import (
	"context"

	"github.com/Navya123445/RAG-project/internal/core/domain"
	"github.com/Navya123445/RAG-project/internal/core/ports"
)

// Result is one backend's attempt. A failed backend carries its error
// for logging and a zero score; it never aborts the document.
type Result struct {
	Backend string
	Pages   []domain.RawPage
	Score   int
	Err     error
}

// Race runs every backend independently in the given preference order
// and scores each attempt. Backends must be passed most-preferred first
// (color-aware > plain > fallback) so tie-breaking in SelectBest follows
// the fixed preference order.
func Race(ctx context.Context, doc *domain.Document, backends []ports.ExtractionBackend) []Result {
	results := make([]Result, 0, len(backends))
	for _, backend := range backends {
		result := Result{Backend: backend.Name()}
		pages, err := backend.Extract(ctx, doc)
		if err != nil {
			result.Err = err
		} else {
			result.Pages = pages
			result.Score = ScoreWithColors(pages)
		}
		results = append(results, result)
	}
	return results
}

// SelectBest picks the strictly highest-scoring attempt. Ties keep the
// earlier (more preferred) backend. ok is false when every backend
// scored zero: the document yields no pages, which is an extraction
// failure, not an error.
func SelectBest(results []Result) (Result, bool) {
	var best Result
	for _, result := range results {
		if result.Score > best.Score {
			best = result
		}
	}
	if best.Score <= 0 {
		return Result{}, false
	}
	return best, true
}
