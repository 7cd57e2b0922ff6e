package driving

import (
	"context"

	"github.com/nyaya-labs/firtag-core/internal/core/domain"
)

// TagExtractor finds section references in case narrative text.
// Pure function of the input text plus the reference dictionary.
type TagExtractor interface {
	// Extract scans free text and returns the tags found
	Extract(text string) []domain.ExtractedTag

	// ExtractRecord tags one case record via its sections line, falling back
	// to the full narrative when the record has no sections line
	ExtractRecord(record *domain.CaseRecord) []domain.ExtractedTag
}

// TagValidator checks stored case tags against the reference dictionary
type TagValidator interface {
	// Validate classifies every stored tag of every record and writes the
	// aggregated report artifact. Read-only with respect to case state.
	Validate(ctx context.Context, records []*domain.CaseRecord) (*domain.ValidationReport, error)
}
