package artifacts

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nyaya-labs/firtag-core/internal/core/domain"
	"github.com/nyaya-labs/firtag-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ArtifactStore = (*Store)(nil)

const (
	referenceFile    = "reference.json"
	questionBankFile = "question_bank.jsonl"
)

// Store implements driven.ArtifactStore on the local filesystem.
// Writes go through a temp file and rename, so readers never observe a
// half-written artifact and a failed run never clobbers the previous one.
type Store struct {
	dir string
}

// NewStore creates the artifact directory if needed
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artifact dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the artifact directory
func (s *Store) Dir() string {
	return s.dir
}

// SaveReference writes the reference dictionary artifact
func (s *Store) SaveReference(_ context.Context, artifact *domain.ReferenceArtifact) error {
	return s.writeJSON(referenceFile, artifact)
}

// LoadReference reads the reference dictionary artifact
func (s *Store) LoadReference(_ context.Context) (*domain.ReferenceArtifact, error) {
	var artifact domain.ReferenceArtifact
	if err := s.readJSON(referenceFile, &artifact); err != nil {
		return nil, err
	}
	return &artifact, nil
}

// SaveQuestionBank writes the bank as one JSON object per line
func (s *Store) SaveQuestionBank(_ context.Context, bank *domain.QuestionBank) error {
	return s.atomicWrite(questionBankFile, func(f *os.File) error {
		w := bufio.NewWriter(f)
		enc := json.NewEncoder(w)
		for i := range bank.Entries {
			if err := enc.Encode(&bank.Entries[i]); err != nil {
				return fmt.Errorf("failed to encode question %s: %w", bank.Entries[i].QuestionID, err)
			}
		}
		return w.Flush()
	})
}

// LoadQuestionBank reads the line-delimited question bank
func (s *Store) LoadQuestionBank(_ context.Context) (*domain.QuestionBank, error) {
	f, err := os.Open(filepath.Join(s.dir, questionBankFile))
	if os.IsNotExist(err) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open question bank: %w", err)
	}
	defer f.Close()

	bank := &domain.QuestionBank{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var entry domain.QuestionBankEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			return nil, fmt.Errorf("question bank line %d: %w", line, err)
		}
		bank.Entries = append(bank.Entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read question bank: %w", err)
	}
	return bank, nil
}

// SaveEvaluationReport writes one evaluation run, named by run id
func (s *Store) SaveEvaluationReport(_ context.Context, report *domain.EvaluationReport) error {
	return s.writeJSON(fmt.Sprintf("evaluation_%s.json", report.RunID), report)
}

// SaveValidationReport writes one validation run, named by run id
func (s *Store) SaveValidationReport(_ context.Context, report *domain.ValidationReport) error {
	return s.writeJSON(fmt.Sprintf("validation_%s.json", report.RunID), report)
}

func (s *Store) writeJSON(name string, v any) error {
	return s.atomicWrite(name, func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode %s: %w", name, err)
		}
		return nil
	})
}

func (s *Store) readJSON(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}

// atomicWrite writes to a temp file in the same directory, then renames
func (s *Store) atomicWrite(name string, write func(*os.File) error) error {
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}
