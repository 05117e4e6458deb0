package ollama

import (
	"fmt"
	"strings"

	"github.com/Navya123445/RAG-project/internal/core/domain"
)

// buildAnswerPrompt frames the model as a legal analyst and surfaces
// the annotation signals next to each excerpt so the model can weigh
// color-marked sources above plain-text matches.
func buildAnswerPrompt(question string, chunks []domain.RetrievedChunk) string {
	var contextBuilder strings.Builder
	for idx, chunk := range chunks {
		contextBuilder.WriteString(fmt.Sprintf(
			"[%d] file=%s page=%d score=%.3f annotation_confidence=%.2f color_entities=%d\n%s\n\n",
			idx+1,
			chunk.Filename,
			chunk.Page,
			chunk.Score,
			chunk.AnnotationConfidence,
			chunk.ColorEntityCount,
			chunk.Text,
		))
	}

	return fmt.Sprintf(`You are a legal analyst reviewing Stock Purchase Agreement excerpts.
Answer the question only from the context below.
Prefer excerpts with higher annotation confidence and color-marked entities.
Quote exact amounts, percentages, party names and dates verbatim.
If the context is insufficient, say so directly.

Question:
%s

Context:
%s
`, question, contextBuilder.String())
}
