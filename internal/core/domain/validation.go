package domain

import "time"

// ValidationStatus classifies one stored tag against the reference dictionary
type ValidationStatus string

const (
	// StatusValid means the exact (act, section) key exists in the dictionary
	StatusValid ValidationStatus = "valid"

	// StatusUnknownSection means the act is recognized but the section number
	// is absent from that act's entries
	StatusUnknownSection ValidationStatus = "unknown_section"

	// StatusActMismatch means the section exists under the other act's
	// numbering but not the stated act. Surfaced distinctly so code-migration
	// errors can be re-examined by a human.
	StatusActMismatch ValidationStatus = "act_mismatch"

	// StatusUnparseable means the stored tag itself fails normalization
	StatusUnparseable ValidationStatus = "unparseable"
)

// AllValidationStatuses lists every status a result can carry.
var AllValidationStatuses = []ValidationStatus{
	StatusValid,
	StatusUnknownSection,
	StatusActMismatch,
	StatusUnparseable,
}

// ValidationResult is the classification of one (case, tag) pair.
type ValidationResult struct {
	CaseID  string           `json:"case_id"`
	Tag     StoredTag        `json:"tag"`
	Status  ValidationStatus `json:"status"`
	Section string           `json:"normalized_section,omitempty"`
}

// ValidationReport aggregates validation over the whole record set.
type ValidationReport struct {
	RunID       string                   `json:"run_id"`
	GeneratedAt time.Time                `json:"generated_at"`
	TotalCases  int                      `json:"total_cases"`
	TotalTags   int                      `json:"total_tags"`
	Counts      map[ValidationStatus]int `json:"status_counts"`
	Results     []ValidationResult       `json:"results"`

	// PerActTags counts stored tags by recognized act label.
	PerActTags map[Act]int `json:"per_act_tags"`

	// DroppedSections samples distinct normalized sections that appear in
	// stored tags but not in the reference (unknown_section cases).
	DroppedSections []string `json:"dropped_sections_sample,omitempty"`
}
