package domain

// QuestionCategory splits the evaluation set by how ground truth was derived
type QuestionCategory string

const (
	// CategoryStructural questions derive mechanically from exact metadata
	// fields; the expected cases are known by direct filtering
	CategoryStructural QuestionCategory = "structural"

	// CategorySemantic questions are paraphrases of structural ones, testing
	// robustness to phrasing rather than exact keyword match
	CategorySemantic QuestionCategory = "semantic"
)

// QuestionBankEntry is one evaluation query with its expected target cases.
// Persisted as one JSON object per line; stable across runs so longitudinal
// comparisons stay meaningful.
type QuestionBankEntry struct {
	QuestionID      string           `json:"question_id"`
	Text            string           `json:"text"`
	Category        QuestionCategory `json:"category"`
	Intent          string           `json:"intent"`
	ExpectedCaseIDs []string         `json:"expected_case_ids"`
}

// QuestionBank is the full evaluation set, structural entries first.
type QuestionBank struct {
	Entries []QuestionBankEntry `json:"entries"`
}

// CountByCategory tallies entries per category.
func (b *QuestionBank) CountByCategory() map[QuestionCategory]int {
	counts := make(map[QuestionCategory]int)
	for _, entry := range b.Entries {
		counts[entry.Category]++
	}
	return counts
}
