package domain

// Confidence classifies how an extracted tag's act was determined
type Confidence string

const (
	// ConfidenceHigh means an explicit act keyword co-occurred with the number
	ConfidenceHigh Confidence = "high"

	// ConfidenceLow means the act was inferred from sentence context or the
	// configured default act
	ConfidenceLow Confidence = "low"
)

// ExtractedTag is one (act, section) reference found in narrative text.
// RawSpan preserves the matched substring for audit.
type ExtractedTag struct {
	Act        Act        `json:"act"`
	Section    string     `json:"section_number"`
	RawSpan    string     `json:"raw_span"`
	Confidence Confidence `json:"confidence"`
}

// Key returns the canonical lookup key for the tag.
func (t ExtractedTag) Key() SectionKey {
	return SectionKey{Act: t.Act, Section: t.Section}
}
