package domain

// SearchFilter narrows vector search using flattened chunk metadata.
// Boolean filters are applied only when set; zero value means no filter.
type SearchFilter struct {
	Filename            string
	RequireColorAmounts bool
	RequireColorParties bool
	RequireColorDates   bool
	RequireColorPercent bool
	RequireHighQuality  bool
	MinRelevance        float64
}

// IsZero reports whether no filter dimension is set.
func (f SearchFilter) IsZero() bool {
	return f == SearchFilter{}
}

type RetrievedChunk struct {
	DocumentID string  `json:"document_id"`
	Filename   string  `json:"filename"`
	ChunkIndex int     `json:"chunk_index"`
	Page       int     `json:"page"`
	Text       string  `json:"text"`
	Score      float64 `json:"score"`

	AnnotationConfidence float64 `json:"annotation_confidence"`
	FinancialConfidence  float64 `json:"financial_confidence"`
	ColorEntityCount     int     `json:"color_entity_count"`
	HighQuality          bool    `json:"high_quality_chunk"`

	// ColorEntitiesJSON is the JSON-encoded list of color entities bound
	// to the chunk, exactly as stored in the vector payload.
	ColorEntitiesJSON string `json:"chunk_color_entities,omitempty"`
}

type Answer struct {
	Text    string           `json:"text"`
	Sources []RetrievedChunk `json:"sources"`
}
