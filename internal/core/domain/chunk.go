package domain

// ChunkBinding re-attaches page-level color entities and annotation
// signals to one chunk after external splitting. Derived purely from a
// substring membership test against the chunk text plus the parent
// page's AnnotationRecord.
type ChunkBinding struct {
	ChunkID    string `json:"chunk_id"`
	ChunkIndex int    `json:"chunk_index"`
	ChunkSize  int    `json:"chunk_size"`

	ColorEntities    []ColorEntity `json:"color_entities_in_chunk,omitempty"`
	ColorEntityCount int           `json:"color_entity_count"`

	HasColorAmounts     bool `json:"has_color_amounts"`
	HasColorParties     bool `json:"has_color_parties"`
	HasColorDates       bool `json:"has_color_dates"`
	HasColorPercentages bool `json:"has_color_percentages"`
	HasColorQualifiers  bool `json:"has_color_qualifiers"`
	HasColorCrossRefs   bool `json:"has_color_crossrefs"`

	ContainsFinancialInfo bool `json:"contains_financial_info"`
	ContainsPartyInfo     bool `json:"contains_party_info"`
	ContainsLegalRefs     bool `json:"contains_legal_refs"`

	HasAnnotations       bool    `json:"has_annotations"`
	AnnotationConfidence float64 `json:"annotation_confidence"`
	FinancialConfidence  float64 `json:"financial_confidence"`
	EntityConfidence     float64 `json:"entity_confidence"`
	HighQuality          bool    `json:"high_quality_chunk"`

	// RelevanceScore is a ranking hint in [0,1], never a hard filter.
	RelevanceScore float64 `json:"relevance_score"`
}
