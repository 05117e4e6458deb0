package annotate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Navya123445/RAG-project/internal/core/domain"
	"github.com/Navya123445/RAG-project/internal/core/ports"
)

const contextRadius = 50

// Engine fuses color-markup entities, statistical recognizer output and
// pattern matches into one AnnotationRecord per page. Stateless apart
// from the immutable pattern tables; safe for reuse across documents.
type Engine struct {
	patterns   *Patterns
	recognizer ports.EntityRecognizer
}

// NewEngine builds a fusion engine. recognizer may be nil, which
// permanently degrades tier 2 to a no-op.
func NewEngine(patterns *Patterns, recognizer ports.EntityRecognizer) *Engine {
	if patterns == nil {
		patterns = DefaultPatterns()
	}
	return &Engine{patterns: patterns, recognizer: recognizer}
}

// Annotate produces the fused annotation record for one raw page. It
// never fails: problems encountered along the way (a recognizer outage,
// mainly) are returned as issues and reflected only through missing
// tier-2 entities.
func (e *Engine) Annotate(ctx context.Context, page domain.RawPage) (domain.AnnotationRecord, []string) {
	var issues []string

	colorEntities := page.ColorEntities
	hasColors := len(colorEntities) > 0

	entities, entityIssues := e.extractLegalEntities(ctx, page.Text, colorEntities)
	issues = append(issues, entityIssues...)

	financial := e.extractFinancialInformation(page.Text, colorEntities, hasColors)
	references := e.extractLegalReferences(page.Text, colorEntities)
	dates := e.extractDates(page.Text, colorEntities)

	scores := AggregateConfidence(entities, financial, references, hasColors)

	return domain.AnnotationRecord{
		LegalEntities:        entities,
		FinancialInformation: financial,
		LegalReferences:      references,
		DatesAndDeadlines:    dates,
		ConfidenceScores:     scores,
		ColorIntegrationUsed: hasColors,
		AnnotationTimestamp:  time.Now().UTC().Format(time.RFC3339),
	}, issues
}

func (e *Engine) extractLegalEntities(ctx context.Context, text string, colorEntities []domain.ColorEntity) (domain.LegalEntities, []string) {
	var out domain.LegalEntities
	var issues []string

	// Tier 1: color-marked parties.
	for _, entity := range colorEntities {
		if entity.Category != domain.CategoryParty {
			continue
		}
		out.Companies = append(out.Companies, domain.FusedEntity{
			Text:       entity.Text,
			Label:      "PARTY",
			Confidence: confColorMarkup,
			Provenance: domain.ProvenanceColorMarkup,
		})
	}

	// Tier 2: statistical recognizer, organizations and persons only.
	// Any other label is dropped without comment.
	if e.recognizer != nil {
		spans, err := e.recognizer.Recognize(ctx, text)
		if err != nil {
			issues = append(issues, fmt.Sprintf("entity recognizer degraded: %v", err))
		} else {
			for _, span := range spans {
				switch strings.ToUpper(span.Label) {
				case "ORG":
					if containedInAny(out.Companies, span.Text) {
						continue
					}
					out.Companies = append(out.Companies, domain.FusedEntity{
						Text:       span.Text,
						Label:      "ORG",
						Confidence: confNEROrg,
						Provenance: domain.ProvenanceNER,
					})
				case "PERSON":
					if containedInAny(out.Companies, span.Text) {
						continue
					}
					out.Persons = append(out.Persons, domain.FusedEntity{
						Text:       span.Text,
						Label:      "PERSON",
						Confidence: confNERPerson,
						Provenance: domain.ProvenanceNER,
					})
				}
			}
		}
	}

	// Tier 3: role keywords.
	for _, match := range e.patterns.roleRe.FindAllString(text, -1) {
		out.Roles = append(out.Roles, domain.FusedEntity{
			Text:       match,
			Label:      "ROLE",
			Confidence: confRole,
			Provenance: domain.ProvenanceRegex,
		})
	}

	out.Companies = dedupe(out.Companies)
	out.Persons = dedupe(out.Persons)
	out.Roles = dedupe(out.Roles)
	return out, issues
}

func (e *Engine) extractFinancialInformation(text string, colorEntities []domain.ColorEntity, hasColors bool) domain.FinancialInformation {
	var out domain.FinancialInformation

	// Tier 1: color-marked amounts, with surrounding context when the
	// marked text occurs verbatim in the page.
	for _, entity := range colorEntities {
		if entity.Category != domain.CategoryAmount {
			continue
		}
		out.MonetaryAmounts = append(out.MonetaryAmounts, domain.FusedEntity{
			Text:       entity.Text,
			Label:      "AMOUNT",
			Confidence: confColorMarkup,
			Provenance: domain.ProvenanceColorMarkup,
			Context:    contextAround(text, entity.Text),
		})
	}

	// Tier 3: currency patterns for amounts the markup missed. Lower
	// confidence when color markup exists elsewhere in the document.
	amountConf := confAmountPlain
	if hasColors {
		amountConf = confAmountColored
	}
	for _, match := range e.patterns.currencyRe.FindAllString(text, -1) {
		if hasNormalized(out.MonetaryAmounts, match) {
			continue
		}
		out.MonetaryAmounts = append(out.MonetaryAmounts, domain.FusedEntity{
			Text:       match,
			Label:      "AMOUNT",
			Confidence: amountConf,
			Provenance: domain.ProvenanceRegex,
			Context:    contextAround(text, match),
		})
	}

	for _, entity := range colorEntities {
		if entity.Category != domain.CategoryPercent {
			continue
		}
		out.Percentages = append(out.Percentages, domain.FusedEntity{
			Text:       entity.Text,
			Label:      "PERCENT",
			Confidence: confColorMarkup,
			Provenance: domain.ProvenanceColorMarkup,
		})
	}
	for _, match := range e.patterns.percentRe.FindAllString(text, -1) {
		if hasNormalized(out.Percentages, match) {
			continue
		}
		out.Percentages = append(out.Percentages, domain.FusedEntity{
			Text:       match,
			Label:      "PERCENT",
			Confidence: confPercent,
			Provenance: domain.ProvenanceRegex,
		})
	}

	for _, keyword := range e.patterns.paymentOrder {
		for _, match := range e.patterns.paymentRes[keyword].FindAllString(text, -1) {
			out.PaymentStructures = append(out.PaymentStructures, domain.FusedEntity{
				Text:       match,
				Label:      strings.ToUpper(keyword),
				Confidence: confPayment,
				Provenance: domain.ProvenanceRegex,
			})
		}
	}

	out.MonetaryAmounts = dedupe(out.MonetaryAmounts)
	out.Percentages = dedupe(out.Percentages)
	out.PaymentStructures = dedupe(out.PaymentStructures)
	return out
}

func (e *Engine) extractLegalReferences(text string, colorEntities []domain.ColorEntity) domain.LegalReferences {
	var out domain.LegalReferences
	var colorRefs []domain.FusedEntity

	// Tier 1: color-marked cross-references, routed by keyword.
	for _, entity := range colorEntities {
		if entity.Category != domain.CategoryCrossRef {
			continue
		}
		lower := strings.ToLower(entity.Text)
		fused := domain.FusedEntity{
			Text:       entity.Text,
			Confidence: confColorMarkup,
			Provenance: domain.ProvenanceColorMarkup,
		}
		switch {
		case strings.Contains(lower, "article"):
			fused.Label = "ARTICLE"
			out.Articles = append(out.Articles, fused)
		case strings.Contains(lower, "section"):
			fused.Label = "SECTION"
			out.Sections = append(out.Sections, fused)
		case strings.Contains(lower, "exhibit"), strings.Contains(lower, "schedule"):
			fused.Label = "EXHIBIT"
			out.Exhibits = append(out.Exhibits, fused)
		default:
			continue
		}
		colorRefs = append(colorRefs, fused)
	}

	// Tier 3: structural reference patterns.
	appendRefs := func(list []domain.FusedEntity, matches []string, label string) []domain.FusedEntity {
		for _, match := range matches {
			if hasNormalized(colorRefs, match) {
				continue
			}
			list = append(list, domain.FusedEntity{
				Text:       match,
				Label:      label,
				Confidence: confLegalRef,
				Provenance: domain.ProvenanceRegex,
			})
		}
		return list
	}
	out.Articles = appendRefs(out.Articles, e.patterns.articleRe.FindAllString(text, -1), "ARTICLE")
	out.Sections = appendRefs(out.Sections, e.patterns.sectionRe.FindAllString(text, -1), "SECTION")
	out.Exhibits = appendRefs(out.Exhibits, e.patterns.exhibitRe.FindAllString(text, -1), "EXHIBIT")

	out.Articles = dedupe(out.Articles)
	out.Sections = dedupe(out.Sections)
	out.Exhibits = dedupe(out.Exhibits)
	return out
}

func (e *Engine) extractDates(text string, colorEntities []domain.ColorEntity) domain.DatesAndDeadlines {
	var out domain.DatesAndDeadlines

	// Tier 1: color-marked dates. Without context they stay unclassified.
	var colorDates []domain.FusedEntity
	for _, entity := range colorEntities {
		if entity.Category != domain.CategoryDate {
			continue
		}
		fused := domain.FusedEntity{
			Text:       entity.Text,
			Label:      "DATE",
			Confidence: confColorMarkup,
			Provenance: domain.ProvenanceColorMarkup,
		}
		out.OtherDates = append(out.OtherDates, fused)
		colorDates = append(colorDates, fused)
	}

	// Tier 3: anchored date phrases; group 1 is the date itself.
	collect := func(re interface {
		FindAllStringSubmatch(string, int) [][]string
	}, label string) []domain.FusedEntity {
		var list []domain.FusedEntity
		for _, match := range re.FindAllStringSubmatch(text, -1) {
			date := match[1]
			if hasNormalized(colorDates, date) {
				continue
			}
			list = append(list, domain.FusedEntity{
				Text:       date,
				Label:      label,
				Confidence: confContextualDate,
				Provenance: domain.ProvenanceRegex,
				Context:    strings.TrimSpace(match[0]),
			})
		}
		return list
	}
	out.ExecutionDates = dedupe(collect(e.patterns.executionDateRe, "EXECUTION_DATE"))
	out.ClosingDates = dedupe(collect(e.patterns.closingDateRe, "CLOSING_DATE"))
	out.OtherDates = dedupe(out.OtherDates)
	return out
}

// BindChunk re-attaches page signals to one chunk using the engine's
// pattern tables. See Patterns.BindChunk.
func (e *Engine) BindChunk(chunkID string, index int, text string, page domain.RawPage, record domain.AnnotationRecord) domain.ChunkBinding {
	return e.patterns.BindChunk(chunkID, index, text, page, record)
}

// contextAround returns up to contextRadius bytes either side of the
// first occurrence of needle, trimmed. Empty when needle is absent.
func contextAround(text, needle string) string {
	pos := strings.Index(text, needle)
	if pos < 0 {
		return ""
	}
	start := pos - contextRadius
	if start < 0 {
		start = 0
	}
	end := pos + len(needle) + contextRadius
	if end > len(text) {
		end = len(text)
	}
	return strings.TrimSpace(text[start:end])
}
