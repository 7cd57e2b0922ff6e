package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/nyaya-labs/firtag-core/internal/core/domain"
	"github.com/nyaya-labs/firtag-core/internal/core/ports/driven"
	"github.com/nyaya-labs/firtag-core/internal/core/ports/driving"
)

// Ensure tagValidator implements TagValidator
var _ driving.TagValidator = (*tagValidator)(nil)

// droppedSectionsSampleSize caps the unknown-section sample in the report.
const droppedSectionsSampleSize = 50

// tagValidator classifies stored case tags against the reference dictionary.
// Read-only besides writing the report artifact.
type tagValidator struct {
	ref       *domain.ReferenceDictionary
	artifacts driven.ArtifactStore
	logger    *slog.Logger
}

// NewTagValidator creates a TagValidator bound to a built dictionary.
func NewTagValidator(ref *domain.ReferenceDictionary, artifacts driven.ArtifactStore, logger *slog.Logger) driving.TagValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &tagValidator{ref: ref, artifacts: artifacts, logger: logger}
}

// Validate classifies every stored tag of every record.
func (v *tagValidator) Validate(ctx context.Context, records []*domain.CaseRecord) (*domain.ValidationReport, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no case records to validate", domain.ErrEmptyDataset)
	}

	report := &domain.ValidationReport{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		TotalCases:  len(records),
		Counts:      make(map[domain.ValidationStatus]int),
		PerActTags:  make(map[domain.Act]int),
	}
	dropped := make(map[string]struct{})

	for _, record := range records {
		for _, tag := range record.Tags {
			result := v.classify(record.CaseID, tag)
			report.TotalTags++
			report.Counts[result.Status]++
			report.Results = append(report.Results, result)

			if act, ok := domain.ParseAct(tag.Act); ok {
				report.PerActTags[act]++
			}
			if result.Status == domain.StatusUnknownSection {
				dropped[result.Section] = struct{}{}
			}
		}
	}

	// Aggregation is order-independent; the itemized list is ordered for
	// stable audit diffs.
	sort.Slice(report.Results, func(i, j int) bool {
		a, b := report.Results[i], report.Results[j]
		if a.CaseID != b.CaseID {
			return a.CaseID < b.CaseID
		}
		if a.Tag.Act != b.Tag.Act {
			return a.Tag.Act < b.Tag.Act
		}
		return a.Tag.Section < b.Tag.Section
	})

	report.DroppedSections = make([]string, 0, len(dropped))
	for section := range dropped {
		report.DroppedSections = append(report.DroppedSections, section)
	}
	sort.Strings(report.DroppedSections)
	if len(report.DroppedSections) > droppedSectionsSampleSize {
		report.DroppedSections = report.DroppedSections[:droppedSectionsSampleSize]
	}

	if err := v.artifacts.SaveValidationReport(ctx, report); err != nil {
		return nil, fmt.Errorf("persist validation report: %w", err)
	}

	v.logger.Info("tag validation complete",
		"cases", report.TotalCases,
		"tags", report.TotalTags,
		"valid", report.Counts[domain.StatusValid],
		"unknown_section", report.Counts[domain.StatusUnknownSection],
		"act_mismatch", report.Counts[domain.StatusActMismatch],
		"unparseable", report.Counts[domain.StatusUnparseable],
	)
	return report, nil
}

// classify assigns exactly one status to a stored tag. Uses the same
// normalization as extraction so formatting drift alone can never produce
// unknown_section.
func (v *tagValidator) classify(caseID string, tag domain.StoredTag) domain.ValidationResult {
	result := domain.ValidationResult{CaseID: caseID, Tag: tag}

	act, actOK := domain.ParseAct(tag.Act)
	section := domain.NormalizeSection(tag.Section)
	if !actOK || section == "" {
		result.Status = domain.StatusUnparseable
		return result
	}
	result.Section = section

	base := domain.BaseSection(section)
	switch {
	case v.ref.HasSection(act, section):
		result.Status = domain.StatusValid
	case base != section && v.ref.HasSection(act, base):
		// The reference lists bare sections; a sub-sectioned tag validates
		// against its parent entry.
		result.Status = domain.StatusValid
	case v.ref.HasSection(act.Other(), section):
		// IPC/BNS numbering overlaps; a section present only under the other
		// code usually means a migration error worth human review.
		result.Status = domain.StatusActMismatch
	default:
		result.Status = domain.StatusUnknownSection
	}
	return result
}
