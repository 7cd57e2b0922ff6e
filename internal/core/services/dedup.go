package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/nyaya-labs/firtag-core/internal/core/domain"
	"github.com/nyaya-labs/firtag-core/internal/core/ports/driven"
	"github.com/nyaya-labs/firtag-core/internal/core/ports/driving"
)

// Ensure dedupService implements DedupService
var _ driving.DedupService = (*dedupService)(nil)

// dedupService groups case rows whose derived identities collide.
// Detection only; merging or deleting rows is a downstream decision.
type dedupService struct {
	cases  driven.CaseStore
	logger *slog.Logger
}

// NewDedupService creates a DedupService.
func NewDedupService(cases driven.CaseStore, logger *slog.Logger) driving.DedupService {
	if logger == nil {
		logger = slog.Default()
	}
	return &dedupService{cases: cases, logger: logger}
}

// Check derives every row's case signature and reports collision groups.
func (s *dedupService) Check(ctx context.Context) (*domain.DedupReport, error) {
	records, err := s.cases.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load case records: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: nothing to check", domain.ErrEmptyDataset)
	}

	members := make(map[string][]string)
	for i, record := range records {
		memberID := record.CaseID
		if memberID == "" {
			// Rows that never got an id are still identifiable by position.
			memberID = fmt.Sprintf("row-%d", i)
		}
		sig := record.CaseSignature()
		members[sig] = append(members[sig], memberID)
	}

	report := &domain.DedupReport{TotalRows: len(records)}
	for sig, ids := range members {
		if len(ids) < 2 {
			continue
		}
		sort.Strings(ids)
		report.Groups = append(report.Groups, domain.DedupGroup{
			Signature:     sig,
			MemberCaseIDs: ids,
		})
		report.DuplicateRows += len(ids) - 1
	}
	sort.Slice(report.Groups, func(i, j int) bool {
		a, b := report.Groups[i], report.Groups[j]
		if len(a.MemberCaseIDs) != len(b.MemberCaseIDs) {
			return len(a.MemberCaseIDs) > len(b.MemberCaseIDs)
		}
		return a.Signature < b.Signature
	})

	s.logger.Info("dedup check complete",
		"rows", report.TotalRows,
		"duplicate_groups", len(report.Groups),
		"duplicate_rows", report.DuplicateRows,
	)
	return report, nil
}
