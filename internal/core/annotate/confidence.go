package annotate

import "github.com/Navya123445/RAG-project/internal/core/domain"

const colorBoost = 0.10

// AggregateConfidence rolls per-entity confidences up into the record
// summary. The financial score is the mean over monetary amounts only;
// the overall score is the mean over the union of entity, amount and
// reference confidences, plus a flat boost whenever color markup was
// present on the page, capped at 1.0.
func AggregateConfidence(entities domain.LegalEntities, financial domain.FinancialInformation, references domain.LegalReferences, hasColors bool) domain.ConfidenceScores {
	entityVals := confidences(entities.Companies, entities.Persons, entities.Roles)
	amountVals := confidences(financial.MonetaryAmounts)
	referenceVals := confidences(references.Articles, references.Sections, references.Exhibits)

	all := make([]float64, 0, len(entityVals)+len(amountVals)+len(referenceVals))
	all = append(all, entityVals...)
	all = append(all, amountVals...)
	all = append(all, referenceVals...)

	overall := mean(all)
	if hasColors {
		overall += colorBoost
		if overall > 1.0 {
			overall = 1.0
		}
	}

	return domain.ConfidenceScores{
		Overall:           overall,
		Entity:            mean(entityVals),
		Financial:         mean(amountVals),
		ColorBoostApplied: hasColors,
	}
}

func confidences(groups ...[]domain.FusedEntity) []float64 {
	var out []float64
	for _, group := range groups {
		for _, entity := range group {
			out = append(out, entity.Confidence)
		}
	}
	return out
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
