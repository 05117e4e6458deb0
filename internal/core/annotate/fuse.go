package annotate

import (
	"strings"

	"github.com/Navya123445/RAG-project/internal/core/domain"
)

// normalizeText is the dedup key: lowercase, surrounding space trimmed.
func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// dedupe reduces a candidate list to one entity per normalized text,
// keeping the highest-confidence candidate. Ties keep the first-seen
// candidate, so higher-priority tiers must be appended first. First-seen
// order of surviving keys is preserved.
func dedupe(candidates []domain.FusedEntity) []domain.FusedEntity {
	if len(candidates) == 0 {
		return nil
	}

	out := make([]domain.FusedEntity, 0, len(candidates))
	index := make(map[string]int, len(candidates))
	for _, candidate := range candidates {
		key := normalizeText(candidate.Text)
		at, seen := index[key]
		if !seen {
			index[key] = len(out)
			out = append(out, candidate)
			continue
		}
		if candidate.Confidence > out[at].Confidence {
			out[at] = candidate
		}
	}
	return out
}

// containedInAny reports whether needle is substring-contained, case
// insensitively, in any existing entity text. Used to skip recognizer
// hits already covered by color markup.
func containedInAny(entities []domain.FusedEntity, needle string) bool {
	lower := strings.ToLower(needle)
	for _, entity := range entities {
		if strings.Contains(strings.ToLower(entity.Text), lower) {
			return true
		}
	}
	return false
}

// hasNormalized reports whether an entity with the same normalized text
// already exists. Used to skip pattern hits already captured upstream.
func hasNormalized(entities []domain.FusedEntity, text string) bool {
	key := normalizeText(text)
	for _, entity := range entities {
		if normalizeText(entity.Text) == key {
			return true
		}
	}
	return false
}
