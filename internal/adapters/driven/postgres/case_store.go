package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/nyaya-labs/firtag-core/internal/core/domain"
	"github.com/nyaya-labs/firtag-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.CaseStore = (*CaseStore)(nil)

// CaseStore implements driven.CaseStore using PostgreSQL
type CaseStore struct {
	db *DB
}

// NewCaseStore creates a new CaseStore
func NewCaseStore(db *DB) *CaseStore {
	return &CaseStore{db: db}
}

const caseColumns = `case_id, district, ps, fir_srno, reg_year, reg_dt,
	complainant, victim, accused, io, act_section, body, tags`

// List returns every ingested case row
func (s *CaseStore) List(ctx context.Context) ([]*domain.CaseRecord, error) {
	query := `SELECT ` + caseColumns + ` FROM fir_cases ORDER BY case_id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}
	defer rows.Close()

	var records []*domain.CaseRecord
	for rows.Next() {
		record, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Get retrieves one case by id
func (s *CaseStore) Get(ctx context.Context, caseID string) (*domain.CaseRecord, error) {
	query := `SELECT ` + caseColumns + ` FROM fir_cases WHERE case_id = $1`

	record, err := scanCase(s.db.QueryRowContext(ctx, query, caseID))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Count returns the number of ingested rows
func (s *CaseStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM fir_cases`).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCase(row rowScanner) (*domain.CaseRecord, error) {
	var record domain.CaseRecord
	var tags []byte

	err := row.Scan(
		&record.CaseID,
		&record.District,
		&record.Station,
		&record.FIRNumber,
		&record.Year,
		&record.RegisteredAt,
		&record.Complainant,
		&record.Victim,
		&record.Accused,
		&record.Officer,
		&record.SectionsLine,
		&record.Narrative,
		&tags,
	)
	if err != nil {
		return nil, err
	}

	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &record.Tags); err != nil {
			return nil, fmt.Errorf("decode tags for case %s: %w", record.CaseID, err)
		}
	}
	return &record, nil
}
