package domain

import (
	"math"
	"testing"
)

func TestScoreRetrievalExample(t *testing.T) {
	ranked := []string{"C3", "C1", "C5", "C7", "C8", "C9", "C10", "C11", "C12", "C13"}
	metrics, empty := ScoreRetrieval(ranked, []string{"C1", "C2"}, 10)

	if empty {
		t.Fatal("expected set is not empty")
	}
	if metrics.PrecisionAtK != 0.1 {
		t.Errorf("precision@10 = %v, want 0.1", metrics.PrecisionAtK)
	}
	if metrics.RecallAtK != 0.5 {
		t.Errorf("recall@10 = %v, want 0.5", metrics.RecallAtK)
	}
	if metrics.HitRank != 2 {
		t.Errorf("hit_rank = %d, want 2", metrics.HitRank)
	}
}

func TestScoreRetrievalNotFound(t *testing.T) {
	metrics, _ := ScoreRetrieval([]string{"X", "Y"}, []string{"C1"}, 10)
	if metrics.HitRank != HitRankNotFound {
		t.Errorf("hit_rank = %d, want sentinel %d", metrics.HitRank, HitRankNotFound)
	}
	if metrics.PrecisionAtK != 0 || metrics.RecallAtK != 0 {
		t.Error("expected zero precision and recall")
	}
}

func TestScoreRetrievalEmptyExpected(t *testing.T) {
	metrics, empty := ScoreRetrieval([]string{"C1"}, nil, 10)
	if !empty {
		t.Fatal("expected empty-expected flag")
	}
	if metrics.RecallAtK != 0 {
		t.Error("recall must be defined as 0 for empty expected, not divided by zero")
	}
}

func TestScoreRetrievalIgnoresBeyondK(t *testing.T) {
	ranked := []string{"X", "Y", "Z", "C1"}
	metrics, _ := ScoreRetrieval(ranked, []string{"C1"}, 3)
	if metrics.HitRank != HitRankNotFound {
		t.Error("matches beyond k must not count")
	}
}

func TestScoreRetrievalBounds(t *testing.T) {
	ranked := []string{"C1", "C2", "C3"}
	metrics, _ := ScoreRetrieval(ranked, []string{"C1", "C2", "C3"}, 10)
	if metrics.PrecisionAtK < 0 || metrics.PrecisionAtK > 1 {
		t.Errorf("precision out of bounds: %v", metrics.PrecisionAtK)
	}
	if metrics.RecallAtK < 0 || metrics.RecallAtK > 1 {
		t.Errorf("recall out of bounds: %v", metrics.RecallAtK)
	}
	if metrics.HitRank != 1 {
		t.Errorf("hit_rank = %d, want 1", metrics.HitRank)
	}
}

func TestScoreRetrievalDuplicateRankedIDs(t *testing.T) {
	ranked := []string{"C1", "C1", "C1"}
	metrics, _ := ScoreRetrieval(ranked, []string{"C1"}, 3)

	if metrics.RecallAtK != 1.0 {
		t.Errorf("recall@3 = %v, want 1.0 (duplicate ranks must not re-count)", metrics.RecallAtK)
	}
	if !almostEqual(metrics.PrecisionAtK, 1.0/3.0) {
		t.Errorf("precision@3 = %v, want 1/3", metrics.PrecisionAtK)
	}
	if metrics.HitRank != 1 {
		t.Errorf("hit_rank = %d, want 1", metrics.HitRank)
	}

	ranked = []string{"C2", "C2", "C1", "C1"}
	metrics, _ = ScoreRetrieval(ranked, []string{"C1", "C2"}, 4)
	if metrics.RecallAtK != 1.0 {
		t.Errorf("recall@4 = %v, want 1.0", metrics.RecallAtK)
	}
	if metrics.PrecisionAtK != 0.5 {
		t.Errorf("precision@4 = %v, want 0.5", metrics.PrecisionAtK)
	}
}

func TestSummarize(t *testing.T) {
	outcomes := []RetrievalOutcome{
		{QuestionID: "S001", Metrics: RetrievalMetrics{PrecisionAtK: 0.2, RecallAtK: 1.0, HitRank: 1}},
		{QuestionID: "S002", Metrics: RetrievalMetrics{PrecisionAtK: 0.1, RecallAtK: 0.5, HitRank: 2}},
		{QuestionID: "S003", Metrics: RetrievalMetrics{HitRank: HitRankNotFound}},
		{QuestionID: "S004", EmptyExpected: true},
		{QuestionID: "S005", Error: "retriever timeout"},
	}

	summary := Summarize(outcomes)

	if summary.TotalQuestions != 5 {
		t.Errorf("total = %d, want 5", summary.TotalQuestions)
	}
	if summary.ScoredQuestions != 3 {
		t.Errorf("scored = %d, want 3", summary.ScoredQuestions)
	}
	if summary.EmptyExpected != 1 || summary.FailedQuestions != 1 {
		t.Errorf("empty=%d failed=%d, want 1/1", summary.EmptyExpected, summary.FailedQuestions)
	}

	if !almostEqual(summary.MeanPrecisionAtK, 0.1) {
		t.Errorf("mean precision = %v, want 0.1", summary.MeanPrecisionAtK)
	}
	if !almostEqual(summary.MeanRecallAtK, 0.5) {
		t.Errorf("mean recall = %v, want 0.5", summary.MeanRecallAtK)
	}
	// MRR: (1/1 + 1/2 + 0) / 3
	if !almostEqual(summary.MeanReciprocalRank, 0.5) {
		t.Errorf("MRR = %v, want 0.5", summary.MeanReciprocalRank)
	}
	if !almostEqual(summary.HitRate, 2.0/3.0) {
		t.Errorf("hit rate = %v, want 2/3", summary.HitRate)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)
	if summary.TotalQuestions != 0 || summary.MeanPrecisionAtK != 0 {
		t.Error("empty outcome list should produce a zero summary")
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
