package domain

// MarksSuffix is appended to a document's storage key to address its
// color-markup sidecar.
const MarksSuffix = ".marks.json"

// RawPage is one physical page as produced by the winning extraction
// backend. Immutable once produced: exactly one RawPage survives the
// backend race per page.
type RawPage struct {
	SourceID         string        `json:"source_id"`
	PageNumber       int           `json:"page_number"`
	Text             string        `json:"text"`
	ExtractionMethod string        `json:"extraction_method"`
	ColorEntities    []ColorEntity `json:"color_entities,omitempty"`
}
