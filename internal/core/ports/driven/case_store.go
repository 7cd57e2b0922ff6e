package driven

import (
	"context"

	"github.com/nyaya-labs/firtag-core/internal/core/domain"
)

// CaseStore reads the ingested FIR record set (PostgreSQL).
// The ingestion pipeline owns the data; this core never writes it.
type CaseStore interface {
	// List returns all case records
	List(ctx context.Context) ([]*domain.CaseRecord, error)

	// Get retrieves one record by case id
	Get(ctx context.Context, caseID string) (*domain.CaseRecord, error)

	// Count returns total record count
	Count(ctx context.Context) (int, error)
}
