package driving

import (
	"context"

	"github.com/nyaya-labs/firtag-core/internal/core/domain"
)

// QuestionBankService generates and loads the evaluation question set
type QuestionBankService interface {
	// Generate deterministically produces the question bank from the
	// ingested record set and persists it as the JSONL artifact
	Generate(ctx context.Context) (*domain.QuestionBank, error)

	// Load reads the persisted question bank
	Load(ctx context.Context) (*domain.QuestionBank, error)
}

// EvaluationService scores the external retriever against the question bank
type EvaluationService interface {
	// Run evaluates every question at the configured k and writes the
	// report artifact. A single question's retriever failure is recorded
	// as a failed outcome, never aborting the batch.
	Run(ctx context.Context, bank *domain.QuestionBank) (*domain.EvaluationReport, error)
}

// DedupService detects duplicate case identities in the record set
type DedupService interface {
	// Check derives case signatures and reports every collision group
	Check(ctx context.Context) (*domain.DedupReport, error)
}
