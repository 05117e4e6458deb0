package domain

// Category is the semantic class assigned to a color-marked span.
type Category string

const (
	CategoryAmount      Category = "AMOUNT"
	CategoryPercent     Category = "PERCENT"
	CategoryDate        Category = "DATE"
	CategoryDuration    Category = "DURATION"
	CategoryDefinedTerm Category = "DEFINED_TERM"
	CategoryCrossRef    Category = "CROSSREF"
	CategoryParty       Category = "PARTY"
	CategoryQualifier   Category = "QUALIFIER"
	CategoryUnknown     Category = "UNKNOWN"
)

// Provenance identifies the extraction tier that produced an entity.
type Provenance string

const (
	ProvenanceColorMarkup Provenance = "color_markup"
	ProvenanceNER         Provenance = "ner"
	ProvenanceRegex       Provenance = "regex"
)

type ColorSourceKind string

const (
	ColorSourceSpan      ColorSourceKind = "span"
	ColorSourceHighlight ColorSourceKind = "highlight"
)

// ColorEntity is a human color-marked span or highlight from the source
// document. The category is derived once during extraction and never
// recomputed.
type ColorEntity struct {
	Text       string          `json:"text"`
	Category   Category        `json:"category"`
	RGB        [3]float64      `json:"rgb"`
	SourceKind ColorSourceKind `json:"source_kind,omitempty"`
}

// FusedEntity is one deduplicated, confidence-weighted entity in a
// category list of an AnnotationRecord.
type FusedEntity struct {
	Text       string     `json:"text"`
	Label      string     `json:"label"`
	Confidence float64    `json:"confidence"`
	Provenance Provenance `json:"source"`
	Context    string     `json:"context,omitempty"`
}

type LegalEntities struct {
	Companies []FusedEntity `json:"companies"`
	Persons   []FusedEntity `json:"persons"`
	Roles     []FusedEntity `json:"roles"`
}

type FinancialInformation struct {
	MonetaryAmounts   []FusedEntity `json:"monetary_amounts"`
	Percentages       []FusedEntity `json:"percentages"`
	PaymentStructures []FusedEntity `json:"payment_structures"`
}

type LegalReferences struct {
	Articles []FusedEntity `json:"articles"`
	Sections []FusedEntity `json:"sections"`
	Exhibits []FusedEntity `json:"exhibits"`
}

type DatesAndDeadlines struct {
	ExecutionDates []FusedEntity `json:"execution_dates"`
	ClosingDates   []FusedEntity `json:"closing_dates"`
	OtherDates     []FusedEntity `json:"other_dates"`
}

type ConfidenceScores struct {
	Overall           float64 `json:"overall_confidence"`
	Entity            float64 `json:"entity_confidence"`
	Financial         float64 `json:"financial_confidence"`
	ColorBoostApplied bool    `json:"color_boost_applied"`
}

// AnnotationRecord is the fused annotation for one source page. It is
// re-created, never mutated, on re-annotation.
type AnnotationRecord struct {
	LegalEntities        LegalEntities        `json:"legal_entities"`
	FinancialInformation FinancialInformation `json:"financial_information"`
	LegalReferences      LegalReferences      `json:"legal_references"`
	DatesAndDeadlines    DatesAndDeadlines    `json:"dates_and_deadlines"`
	ConfidenceScores     ConfidenceScores     `json:"confidence_scores"`
	ColorIntegrationUsed bool                 `json:"color_integration_used"`
	AnnotationTimestamp  string               `json:"annotation_timestamp"`
}

// TotalEntities counts all fused legal entities across the three lists.
func (r AnnotationRecord) TotalEntities() int {
	return len(r.LegalEntities.Companies) + len(r.LegalEntities.Persons) + len(r.LegalEntities.Roles)
}

// RecognizedSpan is one hit from the statistical entity recognizer.
type RecognizedSpan struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}
