package services

import (
	"context"
	"fmt"
	"strconv"
	"testing"

	"github.com/cucumber/godog"

	"github.com/nyaya-labs/firtag-core/internal/core/domain"
	"github.com/nyaya-labs/firtag-core/internal/core/ports/driven/mocks"
)

// validationFeature holds per-scenario state for the tag validation feature.
type validationFeature struct {
	dict    *domain.ReferenceDictionary
	records map[string]*domain.CaseRecord
	order   []string
	report  *domain.ValidationReport
}

func (f *validationFeature) reset() {
	f.dict = domain.NewReferenceDictionary()
	f.records = make(map[string]*domain.CaseRecord)
	f.order = nil
	f.report = nil
}

func (f *validationFeature) aReferenceDictionaryWithSections(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		act, ok := domain.ParseAct(row.Cells[0].Value)
		if !ok {
			return fmt.Errorf("unknown act %q", row.Cells[0].Value)
		}
		entry := &domain.SectionEntry{
			Act:     act,
			Section: domain.NormalizeSection(row.Cells[1].Value),
			Title:   row.Cells[2].Value,
		}
		if err := f.dict.Add(entry); err != nil {
			return err
		}
	}
	return nil
}

func (f *validationFeature) caseIsTagged(caseID, act, section string) error {
	record, ok := f.records[caseID]
	if !ok {
		record = &domain.CaseRecord{CaseID: caseID}
		f.records[caseID] = record
		f.order = append(f.order, caseID)
	}
	record.Tags = append(record.Tags, domain.StoredTag{Act: act, Section: section})
	return nil
}

func (f *validationFeature) theStoredTagsAreValidated() error {
	records := make([]*domain.CaseRecord, 0, len(f.order))
	for _, caseID := range f.order {
		records = append(records, f.records[caseID])
	}

	v := NewTagValidator(f.dict, mocks.NewMockArtifactStore(), nil)
	report, err := v.Validate(context.Background(), records)
	if err != nil {
		return err
	}
	f.report = report
	return nil
}

func (f *validationFeature) theTagHasStatus(act, section, caseID, status string) error {
	for _, result := range f.report.Results {
		if result.CaseID == caseID && result.Tag.Act == act && result.Tag.Section == section {
			if string(result.Status) != status {
				return fmt.Errorf("tag %s %s of %s: expected %s, got %s", act, section, caseID, status, result.Status)
			}
			return nil
		}
	}
	return fmt.Errorf("no result for tag %s %s of case %s", act, section, caseID)
}

func (f *validationFeature) theValidationCountsAre(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		status := domain.ValidationStatus(row.Cells[0].Value)
		want, err := strconv.Atoi(row.Cells[1].Value)
		if err != nil {
			return err
		}
		if got := f.report.Counts[status]; got != want {
			return fmt.Errorf("status %s: expected %d, got %d", status, want, got)
		}
	}
	return nil
}

func InitializeValidationScenario(sc *godog.ScenarioContext) {
	feature := &validationFeature{}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		feature.reset()
		return ctx, nil
	})

	sc.Given(`^a reference dictionary with the sections:$`, feature.aReferenceDictionaryWithSections)
	sc.Given(`^case "([^"]*)" is tagged "([^"]*)" "([^"]*)"$`, feature.caseIsTagged)
	sc.When(`^the stored tags are validated$`, feature.theStoredTagsAreValidated)
	sc.Then(`^the tag "([^"]*)" "([^"]*)" of case "([^"]*)" has status "([^"]*)"$`, func(act, section, caseID, status string) error {
		return feature.theTagHasStatus(act, section, caseID, status)
	})
	sc.Then(`^the validation counts are:$`, feature.theValidationCountsAre)
}

func TestValidationFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeValidationScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatal("feature suite failed")
	}
}
