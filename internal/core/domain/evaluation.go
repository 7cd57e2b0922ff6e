package domain

import "time"

// HitRankNotFound is the sentinel for "no expected case appeared in the
// ranked results". Real hit ranks are 1-based, so zero is unambiguous.
const HitRankNotFound = 0

// RetrievalMetrics are the per-question ranking scores.
type RetrievalMetrics struct {
	PrecisionAtK float64 `json:"precision_at_k"`
	RecallAtK    float64 `json:"recall_at_k"`
	HitRank      int     `json:"hit_rank"`
}

// RetrievalOutcome is the scored result of one question.
type RetrievalOutcome struct {
	QuestionID    string           `json:"question_id"`
	Category      QuestionCategory `json:"category"`
	RankedCaseIDs []string         `json:"ranked_case_ids"`
	Metrics       RetrievalMetrics `json:"metrics"`

	// EmptyExpected flags questions with no expected cases; they measure
	// distractor behavior and are excluded from ranking-metric means.
	EmptyExpected bool `json:"empty_expected,omitempty"`

	// Error carries a retriever failure for this question. Failed outcomes
	// never abort the batch.
	Error string `json:"error,omitempty"`
}

// Failed reports whether the retriever call for this question errored.
func (o *RetrievalOutcome) Failed() bool {
	return o.Error != ""
}

// ScoreRetrieval computes the ranking metrics for one question.
// precision@k divides by k (the configured depth, not the returned count);
// recall@k divides by |expected| and is 0 with EmptyExpected set when there
// is nothing to find.
func ScoreRetrieval(ranked []string, expected []string, k int) (RetrievalMetrics, bool) {
	metrics := RetrievalMetrics{HitRank: HitRankNotFound}
	if len(expected) == 0 {
		return metrics, true
	}

	expectedSet := make(map[string]struct{}, len(expected))
	for _, id := range expected {
		expectedSet[id] = struct{}{}
	}

	// Intersection counting: an expected id scores once no matter how many
	// ranks it occupies in the retriever output.
	hits := 0
	for rank, id := range ranked {
		if rank >= k {
			break
		}
		if _, ok := expectedSet[id]; ok {
			delete(expectedSet, id)
			hits++
			if metrics.HitRank == HitRankNotFound {
				metrics.HitRank = rank + 1
			}
		}
	}

	if k > 0 {
		metrics.PrecisionAtK = float64(hits) / float64(k)
	}
	metrics.RecallAtK = float64(hits) / float64(len(expected))
	return metrics, false
}

// EvaluationSummary aggregates ranking metrics over scoreable questions
// (non-empty expected set, retriever call succeeded).
type EvaluationSummary struct {
	TotalQuestions     int     `json:"total_questions"`
	ScoredQuestions    int     `json:"scored_questions"`
	EmptyExpected      int     `json:"empty_expected"`
	FailedQuestions    int     `json:"failed_questions"`
	MeanPrecisionAtK   float64 `json:"mean_precision_at_k"`
	MeanRecallAtK      float64 `json:"mean_recall_at_k"`
	MeanReciprocalRank float64 `json:"mean_reciprocal_rank"`
	HitRate            float64 `json:"hit_rate"`
}

// EvaluationReport is the persisted artifact of one evaluation run.
type EvaluationReport struct {
	RunID       string             `json:"run_id"`
	GeneratedAt time.Time          `json:"generated_at"`
	K           int                `json:"k"`
	Summary     EvaluationSummary  `json:"summary"`
	ByCategory  map[QuestionCategory]EvaluationSummary `json:"by_category"`
	Outcomes    []RetrievalOutcome `json:"outcomes"`
}

// Summarize folds outcomes into aggregate metrics.
func Summarize(outcomes []RetrievalOutcome) EvaluationSummary {
	summary := EvaluationSummary{TotalQuestions: len(outcomes)}

	var precision, recall, reciprocal float64
	hits := 0
	for _, outcome := range outcomes {
		switch {
		case outcome.Failed():
			summary.FailedQuestions++
		case outcome.EmptyExpected:
			summary.EmptyExpected++
		default:
			summary.ScoredQuestions++
			precision += outcome.Metrics.PrecisionAtK
			recall += outcome.Metrics.RecallAtK
			if outcome.Metrics.HitRank != HitRankNotFound {
				hits++
				reciprocal += 1.0 / float64(outcome.Metrics.HitRank)
			}
		}
	}

	if summary.ScoredQuestions > 0 {
		n := float64(summary.ScoredQuestions)
		summary.MeanPrecisionAtK = precision / n
		summary.MeanRecallAtK = recall / n
		summary.MeanReciprocalRank = reciprocal / n
		summary.HitRate = float64(hits) / n
	}
	return summary
}
