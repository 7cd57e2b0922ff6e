package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/nyaya-labs/firtag-core/internal/core/domain"
	"github.com/nyaya-labs/firtag-core/internal/core/ports/driven"
	"github.com/nyaya-labs/firtag-core/internal/core/ports/driving"
)

// Ensure questionBankService implements QuestionBankService
var _ driving.QuestionBankService = (*questionBankService)(nil)

// QuestionBankConfig configures generation targets.
type QuestionBankConfig struct {
	Cases     driven.CaseStore
	Artifacts driven.ArtifactStore
	Extractor driving.TagExtractor
	Logger    *slog.Logger

	// StructuralTarget and SemanticTarget split the bank; MinTotal is the
	// hard floor below which generation fails.
	StructuralTarget int
	SemanticTarget   int
	MinTotal         int
}

type questionBankService struct {
	cases     driven.CaseStore
	artifacts driven.ArtifactStore
	extractor driving.TagExtractor
	logger    *slog.Logger

	structuralTarget int
	semanticTarget   int
	minTotal         int
}

// NewQuestionBankService creates a QuestionBankService.
func NewQuestionBankService(cfg QuestionBankConfig) driving.QuestionBankService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	structural := cfg.StructuralTarget
	if structural <= 0 {
		structural = 70
	}
	semantic := cfg.SemanticTarget
	if semantic <= 0 {
		semantic = 50
	}
	minTotal := cfg.MinTotal
	if minTotal <= 0 {
		minTotal = 100
	}
	return &questionBankService{
		cases:            cfg.Cases,
		artifacts:        cfg.Artifacts,
		extractor:        cfg.Extractor,
		logger:           logger,
		structuralTarget: structural,
		semanticTarget:   semantic,
		minTotal:         minTotal,
	}
}

// caseTemplate is a structural question over one case's exact metadata, with
// an optional semantic paraphrase carrying the identical expected set.
type caseTemplate struct {
	intent     string
	structural string
	paraphrase string
	required   []string
	byTriple   bool // expected set = all cases sharing (ps, fir, year)
}

// Field placeholders: {case_id} {ps} {district} {fir} {year}
var caseTemplates = []caseTemplate{
	{
		intent:     "io_lookup",
		structural: "केस आईडी {case_id} में जांच अधिकारी (IO) कौन है?",
		paraphrase: "केस {case_id} की तफ्तीश कौन से अधिकारी कर रहे हैं?",
		required:   []string{"io"},
	},
	{
		intent:     "complainant_lookup",
		structural: "केस आईडी {case_id} में शिकायतकर्ता (Complainant) का नाम क्या है?",
		paraphrase: "केस {case_id} में रिपोर्ट दर्ज कराने वाला व्यक्ति कौन है?",
		required:   []string{"complainant"},
	},
	{
		intent:     "io_lookup",
		structural: "थाना {ps}, FIR नंबर {fir}, वर्ष {year} वाले केस में IO कौन है?",
		paraphrase: "{year} में {ps} थाने की एफआईआर संख्या {fir} की जांच किसके पास है?",
		required:   []string{"ps", "fir", "year", "io"},
		byTriple:   true,
	},
	{
		intent:     "location_lookup",
		structural: "केस आईडी {case_id} किस थाना और जिले से संबंधित है?",
		paraphrase: "केस {case_id} कहां का मामला है, कौन सा थाना और जिला?",
		required:   []string{"ps", "district"},
	},
	{
		intent:     "sections_lookup",
		structural: "थाना {ps} के FIR नंबर {fir}, वर्ष {year} में कौन-कौन सी धाराएं लगी हैं?",
		paraphrase: "{ps} थाने के {year} के FIR {fir} पर कौन से सेक्शन लगाए गए हैं?",
		required:   []string{"ps", "fir", "year"},
		byTriple:   true,
	},
	{
		intent:     "victim_lookup",
		structural: "FIR नंबर {fir}, वर्ष {year}, थाना {ps} में पीड़ित (Victim) कौन है?",
		paraphrase: "{ps} थाने की {year} की FIR {fir} में किसके साथ घटना हुई?",
		required:   []string{"ps", "fir", "year", "victim"},
		byTriple:   true,
	},
	{
		intent:     "date_lookup",
		structural: "केस आईडी {case_id} की घटना/रजिस्ट्रेशन तिथि क्या है?",
		paraphrase: "केस {case_id} कब दर्ज हुआ था?",
		required:   []string{"date"},
	},
}

// sectionFilterTemplates ask for all cases carrying one section; the first
// phrasing is structural (exact metadata filter), the second its paraphrase.
var sectionFilterTemplates = struct {
	structural string
	paraphrase string
}{
	structural: "धारा {section} वाले FIR मामले दिखाओ।",
	paraphrase: "किन केसों में सेक्शन {section} लगा है?",
}

// pendingSemantic carries a structural question's filter forward so its
// paraphrase reuses the identical expected set.
type pendingSemantic struct {
	intent   string
	text     string
	expected []string
}

// Generate deterministically produces the question bank: same dataset
// snapshot, same (text, expected) pairs. No randomness anywhere.
func (s *questionBankService) Generate(ctx context.Context) (*domain.QuestionBank, error) {
	records, err := s.cases.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load case records: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: cannot generate question bank", domain.ErrEmptyDataset)
	}

	sort.Slice(records, func(i, j int) bool { return caseID(records[i]) < caseID(records[j]) })

	tripleIndex := buildTripleIndex(records)
	sectionIndex := s.buildSectionIndex(records)

	bank := &domain.QuestionBank{}
	var pending []pendingSemantic

	// Structural pass: walk cases in order, templates in order.
	serial := 1
	for _, record := range records {
		if serial > s.structuralTarget {
			break
		}
		fields := questionFields(record)
		for _, tpl := range caseTemplates {
			if serial > s.structuralTarget {
				break
			}
			if !hasRequired(fields, tpl.required) {
				continue
			}

			expected := []string{caseID(record)}
			if tpl.byTriple {
				expected = tripleIndex[tripleKey(record)]
			}

			bank.Entries = append(bank.Entries, domain.QuestionBankEntry{
				QuestionID:      fmt.Sprintf("S%03d", serial),
				Text:            fillTemplate(tpl.structural, fields),
				Category:        domain.CategoryStructural,
				Intent:          tpl.intent,
				ExpectedCaseIDs: expected,
			})
			if tpl.paraphrase != "" {
				pending = append(pending, pendingSemantic{
					intent:   tpl.intent,
					text:     fillTemplate(tpl.paraphrase, fields),
					expected: expected,
				})
			}
			serial++
		}
	}

	// Section-filter questions: most common sections first; structural
	// phrasing counts toward the structural target.
	for _, section := range sectionIndex.order {
		if serial > s.structuralTarget {
			break
		}
		fields := map[string]string{"section": section}
		expected := sectionIndex.cases[section]
		bank.Entries = append(bank.Entries, domain.QuestionBankEntry{
			QuestionID:      fmt.Sprintf("S%03d", serial),
			Text:            fillTemplate(sectionFilterTemplates.structural, fields),
			Category:        domain.CategoryStructural,
			Intent:          "section_filter",
			ExpectedCaseIDs: expected,
		})
		pending = append(pending, pendingSemantic{
			intent:   "section_filter",
			text:     fillTemplate(sectionFilterTemplates.paraphrase, fields),
			expected: expected,
		})
		serial++
	}

	// Semantic pass: paraphrases of the structural questions, same expected
	// sets, different wording.
	for i, p := range pending {
		if i >= s.semanticTarget {
			break
		}
		bank.Entries = append(bank.Entries, domain.QuestionBankEntry{
			QuestionID:      fmt.Sprintf("M%03d", i+1),
			Text:            p.text,
			Category:        domain.CategorySemantic,
			Intent:          p.intent,
			ExpectedCaseIDs: p.expected,
		})
	}

	if len(bank.Entries) < s.minTotal {
		return nil, fmt.Errorf("%w: generated %d, need %d", domain.ErrQuestionBankTooSmall, len(bank.Entries), s.minTotal)
	}

	if err := s.artifacts.SaveQuestionBank(ctx, bank); err != nil {
		return nil, fmt.Errorf("persist question bank: %w", err)
	}

	counts := bank.CountByCategory()
	s.logger.Info("question bank generated",
		"total", len(bank.Entries),
		"structural", counts[domain.CategoryStructural],
		"semantic", counts[domain.CategorySemantic],
	)
	return bank, nil
}

// Load reads the persisted question bank artifact.
func (s *questionBankService) Load(ctx context.Context) (*domain.QuestionBank, error) {
	return s.artifacts.LoadQuestionBank(ctx)
}

func caseID(record *domain.CaseRecord) string {
	if record.CaseID != "" {
		return record.CaseID
	}
	return record.CaseSignature()
}

// cleanValue filters placeholder garbage that would make a question
// unanswerable ("nan" comes from the upstream spreadsheet export).
func cleanValue(value string) string {
	trimmed := strings.TrimSpace(value)
	switch strings.ToLower(trimmed) {
	case "", "nan", "none", "unknown1":
		return ""
	}
	return trimmed
}

func questionFields(record *domain.CaseRecord) map[string]string {
	return map[string]string{
		"case_id":     caseID(record),
		"district":    cleanValue(record.District),
		"ps":          cleanValue(record.Station),
		"fir":         cleanValue(record.FIRNumber),
		"year":        cleanValue(record.Year),
		"date":        cleanValue(record.RegisteredAt),
		"io":          cleanValue(record.Officer),
		"complainant": cleanValue(record.Complainant),
		"victim":      cleanValue(record.Victim),
	}
}

func hasRequired(fields map[string]string, required []string) bool {
	for _, key := range required {
		if fields[key] == "" {
			return false
		}
	}
	return true
}

func fillTemplate(template string, fields map[string]string) string {
	out := template
	for key, value := range fields {
		out = strings.ReplaceAll(out, "{"+key+"}", value)
	}
	return out
}

func tripleKey(record *domain.CaseRecord) string {
	return strings.Join([]string{
		strings.ToLower(cleanValue(record.Station)),
		cleanValue(record.FIRNumber),
		cleanValue(record.Year),
	}, "|")
}

// buildTripleIndex maps (station, fir number, year) to the case ids sharing
// it; the triple usually identifies one case but duplicates do occur.
func buildTripleIndex(records []*domain.CaseRecord) map[string][]string {
	index := make(map[string][]string)
	for _, record := range records {
		if cleanValue(record.Station) == "" || cleanValue(record.FIRNumber) == "" || cleanValue(record.Year) == "" {
			continue
		}
		key := tripleKey(record)
		index[key] = append(index[key], caseID(record))
	}
	for key := range index {
		sort.Strings(index[key])
	}
	return index
}

type sectionIndex struct {
	order []string
	cases map[string][]string
}

// buildSectionIndex maps extracted canonical sections to the cases carrying
// them, ordered most frequent first (ties broken by section for stability).
func (s *questionBankService) buildSectionIndex(records []*domain.CaseRecord) sectionIndex {
	index := sectionIndex{cases: make(map[string][]string)}
	if s.extractor == nil {
		return index
	}

	for _, record := range records {
		seen := make(map[string]struct{})
		for _, tag := range s.extractor.ExtractRecord(record) {
			if _, dup := seen[tag.Section]; dup {
				continue
			}
			seen[tag.Section] = struct{}{}
			index.cases[tag.Section] = append(index.cases[tag.Section], caseID(record))
		}
	}

	for section := range index.cases {
		sort.Strings(index.cases[section])
		index.order = append(index.order, section)
	}
	sort.Slice(index.order, func(i, j int) bool {
		a, b := index.order[i], index.order[j]
		if len(index.cases[a]) != len(index.cases[b]) {
			return len(index.cases[a]) > len(index.cases[b])
		}
		return a < b
	})
	if len(index.order) > 20 {
		index.order = index.order[:20]
	}
	return index
}
