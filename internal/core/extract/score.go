package extract

import (
	"regexp"
	"strings"

	"github.com/Navya123445/RAG-project/internal/core/domain"
)

const charScoreCap = 10000

const (
	keywordWeight   = 200
	financialWeight = 500
	currencyWeight  = 1000
	digitRunWeight  = 300
)

var domainKeywords = []string{
	"purchase agreement", "consideration", "seller", "closing", "shares", "representations",
}

var financialKeywords = []string{"$", "cash", "million", "thousand"}

var (
	currencyAmountRe = regexp.MustCompile(`\$[\d,]+`)
	longDigitRunRe   = regexp.MustCompile(`\b[\d,]{6,}\b`)
)

// Color bonus per marked entity, by category. Amounts and percentages
// are the highest-value markup for SPA queries.
func categoryBonus(cat domain.Category) int {
	switch cat {
	case domain.CategoryAmount, domain.CategoryPercent:
		return 200
	case domain.CategoryParty, domain.CategoryDate:
		return 150
	default:
		return 100
	}
}

// Score rates raw extraction quality for a candidate page set. Higher
// is better; zero means unusable output.
func Score(pages []domain.RawPage) int {
	if len(pages) == 0 {
		return 0
	}

	var b strings.Builder
	for _, page := range pages {
		b.WriteString(page.Text)
		b.WriteByte(' ')
	}
	text := strings.ToLower(b.String())

	score := len(text) / 10
	if score > charScoreCap {
		score = charScoreCap
	}
	for _, kw := range domainKeywords {
		if strings.Contains(text, kw) {
			score += keywordWeight
		}
	}
	for _, kw := range financialKeywords {
		if strings.Contains(text, kw) {
			score += financialWeight
		}
	}
	score += currencyWeight * len(currencyAmountRe.FindAllString(text, -1))
	score += digitRunWeight * len(longDigitRunRe.FindAllString(text, -1))
	return score
}

// ScoreWithColors adds a provenance bonus for color-marked entities on
// top of the base score. Pages without color entities score identically
// to Score.
func ScoreWithColors(pages []domain.RawPage) int {
	if len(pages) == 0 {
		return 0
	}
	score := Score(pages)
	for _, page := range pages {
		for _, entity := range page.ColorEntities {
			score += categoryBonus(entity.Category)
		}
	}
	return score
}
