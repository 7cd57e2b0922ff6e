package driven

import (
	"context"

	"github.com/nyaya-labs/firtag-core/internal/core/domain"
)

// ArtifactStore persists the report and lookup artifacts of a run.
// Every write is a single atomic replace so re-runs stay idempotent.
type ArtifactStore interface {
	// SaveReference writes the reference dictionary artifact
	SaveReference(ctx context.Context, artifact *domain.ReferenceArtifact) error

	// LoadReference reads the reference dictionary artifact.
	// Returns domain.ErrNotFound when no artifact exists.
	LoadReference(ctx context.Context) (*domain.ReferenceArtifact, error)

	// SaveQuestionBank writes the question bank as line-delimited JSON
	SaveQuestionBank(ctx context.Context, bank *domain.QuestionBank) error

	// LoadQuestionBank reads the question bank.
	// Returns domain.ErrNotFound when no artifact exists.
	LoadQuestionBank(ctx context.Context) (*domain.QuestionBank, error)

	// SaveEvaluationReport writes an evaluation run report
	SaveEvaluationReport(ctx context.Context, report *domain.EvaluationReport) error

	// SaveValidationReport writes a tag validation report
	SaveValidationReport(ctx context.Context, report *domain.ValidationReport) error
}

// ReferenceCache is an optional fast lookup layer in front of the
// ArtifactStore (Redis). A miss is never an error condition for callers.
type ReferenceCache interface {
	// Save caches a built dictionary
	Save(ctx context.Context, dict *domain.ReferenceDictionary) error

	// Load returns the cached dictionary.
	// Returns domain.ErrNotFound on a cache miss.
	Load(ctx context.Context) (*domain.ReferenceDictionary, error)
}
