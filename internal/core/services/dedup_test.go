package services

import (
	"context"
	"errors"
	"testing"

	"github.com/nyaya-labs/firtag-core/internal/core/domain"
	"github.com/nyaya-labs/firtag-core/internal/core/ports/driven/mocks"
)

func TestCheckGroupsDuplicateRows(t *testing.T) {
	records := []*domain.CaseRecord{
		{
			CaseID:       "case-a",
			District:     "Ranchi",
			Station:      "Kotwali",
			FIRNumber:    "12",
			Year:         "2020",
			RegisteredAt: "2020-03-14",
		},
		{
			// Same case, re-ingested with different formatting.
			CaseID:       "case-b",
			District:     " ranchi ",
			Station:      "KOTWALI",
			FIRNumber:    "12",
			Year:         "2020",
			RegisteredAt: "14-03-2020",
		},
		{
			CaseID:       "case-c",
			District:     "Patna",
			Station:      "Gandhi Maidan",
			FIRNumber:    "77",
			Year:         "2021",
			RegisteredAt: "2021-07-01",
		},
	}

	s := NewDedupService(mocks.NewMockCaseStore(records...), nil)

	report, err := s.Check(context.Background())
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	if report.TotalRows != 3 {
		t.Errorf("expected 3 rows, got %d", report.TotalRows)
	}
	if report.DuplicateRows != 1 {
		t.Errorf("expected 1 duplicate row, got %d", report.DuplicateRows)
	}
	if len(report.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(report.Groups))
	}

	group := report.Groups[0]
	if group.Size() != 2 {
		t.Fatalf("expected group of 2, got %d", group.Size())
	}
	if group.MemberCaseIDs[0] != "case-a" || group.MemberCaseIDs[1] != "case-b" {
		t.Errorf("expected sorted members [case-a case-b], got %v", group.MemberCaseIDs)
	}
	if group.Signature != records[0].CaseSignature() {
		t.Error("group signature must match the members' derived signature")
	}
}

func TestCheckNoDuplicates(t *testing.T) {
	records := []*domain.CaseRecord{
		{CaseID: "case-a", District: "Ranchi", Station: "Kotwali", FIRNumber: "12", Year: "2020"},
		{CaseID: "case-b", District: "Ranchi", Station: "Kotwali", FIRNumber: "13", Year: "2020"},
	}

	s := NewDedupService(mocks.NewMockCaseStore(records...), nil)

	report, err := s.Check(context.Background())
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if len(report.Groups) != 0 || report.DuplicateRows != 0 {
		t.Errorf("expected no duplicates, got %+v", report)
	}
}

func TestCheckGroupsSortedBySize(t *testing.T) {
	triple := func(id, fir string) *domain.CaseRecord {
		return &domain.CaseRecord{
			CaseID: id, District: "Ranchi", Station: "Kotwali", FIRNumber: fir, Year: "2020",
		}
	}
	records := []*domain.CaseRecord{
		triple("p1", "1"), triple("p2", "1"),
		triple("q1", "2"), triple("q2", "2"), triple("q3", "2"),
	}

	s := NewDedupService(mocks.NewMockCaseStore(records...), nil)

	report, err := s.Check(context.Background())
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if len(report.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(report.Groups))
	}
	if report.Groups[0].Size() != 3 || report.Groups[1].Size() != 2 {
		t.Errorf("groups must be ordered largest first: %+v", report.Groups)
	}
	if report.DuplicateRows != 3 {
		t.Errorf("expected 3 duplicate rows, got %d", report.DuplicateRows)
	}
}

func TestCheckAnonymousRowsGetPositionalIDs(t *testing.T) {
	records := []*domain.CaseRecord{
		{District: "Ranchi", Station: "Kotwali", FIRNumber: "12", Year: "2020"},
		{District: "Ranchi", Station: "Kotwali", FIRNumber: "12", Year: "2020"},
	}

	s := NewDedupService(mocks.NewMockCaseStore(records...), nil)

	report, err := s.Check(context.Background())
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if len(report.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(report.Groups))
	}
	want := []string{"row-0", "row-1"}
	got := report.Groups[0].MemberCaseIDs
	if got[0] != want[0] || got[1] != want[1] {
		t.Errorf("expected positional ids %v, got %v", want, got)
	}
}

func TestCheckEmptyDataset(t *testing.T) {
	s := NewDedupService(mocks.NewMockCaseStore(), nil)

	if _, err := s.Check(context.Background()); !errors.Is(err, domain.ErrEmptyDataset) {
		t.Fatalf("expected ErrEmptyDataset, got %v", err)
	}
}

func TestCheckListFailure(t *testing.T) {
	store := mocks.NewMockCaseStore()
	store.ListErr = errors.New("connection reset")

	s := NewDedupService(store, nil)

	if _, err := s.Check(context.Background()); err == nil {
		t.Fatal("expected list failure to propagate")
	}
}
