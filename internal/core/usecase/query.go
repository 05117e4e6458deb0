package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/Navya123445/RAG-project/internal/core/domain"
	"github.com/Navya123445/RAG-project/internal/core/ports"
)

type QueryUseCase struct {
	embedder  ports.Embedder
	vectorDB  ports.VectorStore
	generator ports.AnswerGenerator
}

func NewQueryUseCase(
	embedder ports.Embedder,
	vectorDB ports.VectorStore,
	generator ports.AnswerGenerator,
) *QueryUseCase {
	return &QueryUseCase{
		embedder:  embedder,
		vectorDB:  vectorDB,
		generator: generator,
	}
}

func (uc *QueryUseCase) Answer(
	ctx context.Context,
	question string,
	limit int,
	filter domain.SearchFilter,
) (*domain.Answer, error) {
	if limit <= 0 {
		limit = 5
	}
	if filter.IsZero() {
		filter = DeriveFilter(question)
	}

	queryVector, err := uc.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	chunks, err := uc.vectorDB.Search(ctx, queryVector, limit, filter)
	if err != nil {
		return nil, fmt.Errorf("search vector db: %w", err)
	}

	answerText, err := uc.generator.GenerateAnswer(ctx, question, chunks)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	return &domain.Answer{
		Text:    answerText,
		Sources: chunks,
	}, nil
}

var filterCues = []struct {
	words []string
	apply func(*domain.SearchFilter)
}{
	{
		words: []string{"price", "amount", "pay", "payment", "consideration", "cost", "$", "million"},
		apply: func(f *domain.SearchFilter) { f.RequireColorAmounts = true },
	},
	{
		words: []string{"party", "parties", "buyer", "seller", "purchaser", "who"},
		apply: func(f *domain.SearchFilter) { f.RequireColorParties = true },
	},
	{
		words: []string{"date", "deadline", "closing", "when", "expire"},
		apply: func(f *domain.SearchFilter) { f.RequireColorDates = true },
	},
	{
		words: []string{"percent", "percentage", "%", "interest rate"},
		apply: func(f *domain.SearchFilter) { f.RequireColorPercent = true },
	},
}

// DeriveFilter guesses retrieval filters from question wording. It only
// narrows by color signals actually asked about; an unclassifiable
// question keeps the unfiltered search.
func DeriveFilter(question string) domain.SearchFilter {
	lower := strings.ToLower(question)
	var filter domain.SearchFilter
	for _, cue := range filterCues {
		for _, word := range cue.words {
			if strings.Contains(lower, word) {
				cue.apply(&filter)
				break
			}
		}
	}
	return filter
}
