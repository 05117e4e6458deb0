package annotate

import (
	"strings"

	"github.com/Navya123445/RAG-project/internal/core/domain"
)

const highQualityThreshold = 0.8

// Relevance weights. The score is a ranking hint, not a filter, so the
// weights only need to order chunks sensibly.
const (
	weightAnnotationConf = 0.3
	weightHasColors      = 0.25
	weightColorAmounts   = 0.2
	weightFinancialCues  = 0.15
	weightPartyCues      = 0.1
)

// BindChunk re-attaches the parent page's color entities and annotation
// signals to one chunk produced by the splitter. Membership is an exact
// substring test against the chunk text; an entity split across a chunk
// boundary belongs to neither side.
func (p *Patterns) BindChunk(chunkID string, index int, text string, page domain.RawPage, record domain.AnnotationRecord) domain.ChunkBinding {
	binding := domain.ChunkBinding{
		ChunkID:    chunkID,
		ChunkIndex: index,
		ChunkSize:  len(text),
	}

	for _, entity := range page.ColorEntities {
		if entity.Text == "" || !strings.Contains(text, entity.Text) {
			continue
		}
		binding.ColorEntities = append(binding.ColorEntities, entity)
		switch entity.Category {
		case domain.CategoryAmount:
			binding.HasColorAmounts = true
		case domain.CategoryParty:
			binding.HasColorParties = true
		case domain.CategoryDate, domain.CategoryDuration:
			binding.HasColorDates = true
		case domain.CategoryPercent:
			binding.HasColorPercentages = true
		case domain.CategoryQualifier:
			binding.HasColorQualifiers = true
		case domain.CategoryCrossRef:
			binding.HasColorCrossRefs = true
		}
	}
	binding.ColorEntityCount = len(binding.ColorEntities)

	lower := strings.ToLower(text)
	binding.ContainsFinancialInfo = containsAnyCue(lower, p.financialCues)
	binding.ContainsPartyInfo = containsAnyCue(lower, p.partyCues)
	binding.ContainsLegalRefs = containsAnyCue(lower, p.legalRefCues)

	binding.HasAnnotations = record.TotalEntities() > 0 ||
		len(record.FinancialInformation.MonetaryAmounts) > 0 ||
		len(record.FinancialInformation.Percentages) > 0
	binding.AnnotationConfidence = record.ConfidenceScores.Overall
	binding.FinancialConfidence = record.ConfidenceScores.Financial
	binding.EntityConfidence = record.ConfidenceScores.Entity
	binding.HighQuality = binding.AnnotationConfidence > highQualityThreshold

	// The confidence term only counts when the record actually carries
	// entities or financial hits; references alone do not set the flag.
	var score float64
	if binding.HasAnnotations {
		score = weightAnnotationConf * binding.AnnotationConfidence
	}
	if binding.ColorEntityCount > 0 {
		score += weightHasColors
	}
	if binding.HasColorAmounts {
		score += weightColorAmounts
	}
	if binding.ContainsFinancialInfo {
		score += weightFinancialCues
	}
	if binding.ContainsPartyInfo {
		score += weightPartyCues
	}
	if score > 1.0 {
		score = 1.0
	}
	binding.RelevanceScore = score

	return binding
}

func containsAnyCue(lower string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}
