package annotate

import (
	"math"
	"testing"

	"github.com/Navya123445/RAG-project/internal/core/domain"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestAggregateConfidenceEmptyRecord(t *testing.T) {
	scores := AggregateConfidence(domain.LegalEntities{}, domain.FinancialInformation{}, domain.LegalReferences{}, false)
	if scores.Overall != 0 || scores.Entity != 0 || scores.Financial != 0 {
		t.Fatalf("empty record must score zero: %+v", scores)
	}
	if scores.ColorBoostApplied {
		t.Fatalf("no markup, no boost flag")
	}
}

func TestAggregateConfidenceBoostsEmptyColoredPage(t *testing.T) {
	// Color markup present but nothing extracted from it: the boost is
	// unconditional on markup presence, so the page still scores the
	// flat tenth.
	scores := AggregateConfidence(domain.LegalEntities{}, domain.FinancialInformation{}, domain.LegalReferences{}, true)
	if !almostEqual(scores.Overall, colorBoost) {
		t.Fatalf("overall = %v, want bare boost %v", scores.Overall, colorBoost)
	}
	if !scores.ColorBoostApplied {
		t.Fatalf("boost flag must track markup presence")
	}
}

func TestAggregateConfidenceFinancialMeanIsAmountsOnly(t *testing.T) {
	financial := domain.FinancialInformation{
		MonetaryAmounts: []domain.FusedEntity{{Confidence: 0.80}},
		Percentages:     []domain.FusedEntity{{Confidence: 0.95}},
		PaymentStructures: []domain.FusedEntity{
			{Confidence: 0.75},
		},
	}

	scores := AggregateConfidence(domain.LegalEntities{}, financial, domain.LegalReferences{}, false)
	if !almostEqual(scores.Financial, 0.80) {
		t.Fatalf("financial = %v, want 0.80 over amounts only", scores.Financial)
	}
	if !almostEqual(scores.Overall, 0.80) {
		t.Fatalf("overall = %v, percentages and payments must stay out of the union", scores.Overall)
	}
}

func TestAggregateConfidenceMeans(t *testing.T) {
	entities := domain.LegalEntities{
		Companies: []domain.FusedEntity{{Confidence: 0.95}},
		Roles:     []domain.FusedEntity{{Confidence: 0.85}},
	}
	financial := domain.FinancialInformation{
		MonetaryAmounts: []domain.FusedEntity{{Confidence: 0.80}},
	}

	scores := AggregateConfidence(entities, financial, domain.LegalReferences{}, false)
	if !almostEqual(scores.Entity, 0.90) {
		t.Fatalf("entity = %v, want 0.90", scores.Entity)
	}
	if !almostEqual(scores.Financial, 0.80) {
		t.Fatalf("financial = %v, want 0.80", scores.Financial)
	}
	wantOverall := (0.95 + 0.85 + 0.80) / 3
	if !almostEqual(scores.Overall, wantOverall) {
		t.Fatalf("overall = %v, want %v", scores.Overall, wantOverall)
	}
}

func TestAggregateConfidenceColorBoostCapped(t *testing.T) {
	entities := domain.LegalEntities{
		Companies: []domain.FusedEntity{{Confidence: 0.95}, {Confidence: 0.95}},
	}

	scores := AggregateConfidence(entities, domain.FinancialInformation{}, domain.LegalReferences{}, true)
	if !scores.ColorBoostApplied {
		t.Fatalf("boost flag must be set")
	}
	if scores.Overall != 1.0 {
		t.Fatalf("overall = %v, want capped 1.0", scores.Overall)
	}
}

func TestAggregateConfidenceBoostAddsFlatTenth(t *testing.T) {
	entities := domain.LegalEntities{
		Roles: []domain.FusedEntity{{Confidence: 0.70}},
	}

	plain := AggregateConfidence(entities, domain.FinancialInformation{}, domain.LegalReferences{}, false)
	boosted := AggregateConfidence(entities, domain.FinancialInformation{}, domain.LegalReferences{}, true)
	if !almostEqual(boosted.Overall-plain.Overall, colorBoost) {
		t.Fatalf("boost delta = %v, want %v", boosted.Overall-plain.Overall, colorBoost)
	}
}
