package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nyaya-labs/firtag-core/internal/core/domain"
	"github.com/nyaya-labs/firtag-core/internal/core/ports/driven"
	"github.com/nyaya-labs/firtag-core/internal/core/ports/driving"
	"github.com/nyaya-labs/firtag-core/internal/worker"
)

// Ensure evaluationService implements EvaluationService
var _ driving.EvaluationService = (*evaluationService)(nil)

// EvaluatorConfig configures an evaluation run.
type EvaluatorConfig struct {
	Retriever driven.Retriever
	Artifacts driven.ArtifactStore
	Logger    *slog.Logger

	// K is the retrieval depth scored (default 10)
	K int

	// Concurrency bounds parallel retriever calls (default 4). Questions
	// share no mutable state, so they are safe to evaluate in parallel.
	Concurrency int
}

type evaluationService struct {
	retriever driven.Retriever
	artifacts driven.ArtifactStore
	pool      *worker.Pool
	logger    *slog.Logger
	k         int
}

// NewEvaluationService creates an EvaluationService.
func NewEvaluationService(cfg EvaluatorConfig) driving.EvaluationService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	k := cfg.K
	if k <= 0 {
		k = 10
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	return &evaluationService{
		retriever: cfg.Retriever,
		artifacts: cfg.Artifacts,
		pool:      worker.NewPool(worker.PoolConfig{Logger: logger, Concurrency: concurrency}),
		logger:    logger,
		k:         k,
	}
}

// Run evaluates every question and writes the report artifact. The report
// is only written after the whole batch finishes; a fatal failure leaves no
// partial artifact behind.
func (s *evaluationService) Run(ctx context.Context, bank *domain.QuestionBank) (*domain.EvaluationReport, error) {
	if bank == nil || len(bank.Entries) == 0 {
		return nil, fmt.Errorf("%w: question bank is empty", domain.ErrEmptyDataset)
	}

	outcomes := make([]domain.RetrievalOutcome, len(bank.Entries))
	err := s.pool.Run(ctx, len(bank.Entries), func(ctx context.Context, i int) {
		outcomes[i] = s.evaluateQuestion(ctx, bank.Entries[i])
	})
	if err != nil {
		return nil, fmt.Errorf("evaluation cancelled: %w", err)
	}

	report := &domain.EvaluationReport{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		K:           s.k,
		Summary:     domain.Summarize(outcomes),
		ByCategory:  make(map[domain.QuestionCategory]domain.EvaluationSummary),
		Outcomes:    outcomes,
	}
	for _, category := range []domain.QuestionCategory{domain.CategoryStructural, domain.CategorySemantic} {
		var subset []domain.RetrievalOutcome
		for _, outcome := range outcomes {
			if outcome.Category == category {
				subset = append(subset, outcome)
			}
		}
		report.ByCategory[category] = domain.Summarize(subset)
	}

	if err := s.artifacts.SaveEvaluationReport(ctx, report); err != nil {
		return nil, fmt.Errorf("persist evaluation report: %w", err)
	}

	s.logger.Info("evaluation complete",
		"questions", report.Summary.TotalQuestions,
		"scored", report.Summary.ScoredQuestions,
		"failed", report.Summary.FailedQuestions,
		"mean_precision_at_k", report.Summary.MeanPrecisionAtK,
		"mrr", report.Summary.MeanReciprocalRank,
		"hit_rate", report.Summary.HitRate,
		"k", s.k,
	)
	return report, nil
}

// evaluateQuestion scores one question. Retriever errors are captured in
// the outcome, never propagated: one bad question must not sink the batch.
func (s *evaluationService) evaluateQuestion(ctx context.Context, entry domain.QuestionBankEntry) domain.RetrievalOutcome {
	outcome := domain.RetrievalOutcome{
		QuestionID: entry.QuestionID,
		Category:   entry.Category,
	}

	ranked, err := s.retriever.Retrieve(ctx, entry.Text, s.k)
	if err != nil {
		outcome.Error = err.Error()
		s.logger.Warn("retriever call failed", "question_id", entry.QuestionID, "error", err)
		return outcome
	}
	if len(ranked) > s.k {
		ranked = ranked[:s.k]
	}
	outcome.RankedCaseIDs = ranked

	metrics, empty := domain.ScoreRetrieval(ranked, entry.ExpectedCaseIDs, s.k)
	outcome.Metrics = metrics
	outcome.EmptyExpected = empty
	if empty {
		s.logger.Warn("question has empty expected set", "question_id", entry.QuestionID)
	}
	return outcome
}
