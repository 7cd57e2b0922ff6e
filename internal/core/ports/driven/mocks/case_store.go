package mocks

import (
	"context"
	"sync"

	"github.com/nyaya-labs/firtag-core/internal/core/domain"
)

// MockCaseStore is an in-memory CaseStore for testing
type MockCaseStore struct {
	mu      sync.RWMutex
	records []*domain.CaseRecord

	// ListErr is returned by List when set
	ListErr error
}

// NewMockCaseStore creates a MockCaseStore seeded with records
func NewMockCaseStore(records ...*domain.CaseRecord) *MockCaseStore {
	return &MockCaseStore{records: records}
}

func (m *MockCaseStore) List(_ context.Context) ([]*domain.CaseRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]*domain.CaseRecord, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *MockCaseStore) Get(_ context.Context, caseID string) (*domain.CaseRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, record := range m.records {
		if record.CaseID == caseID {
			return record, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockCaseStore) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records), nil
}

// Add appends a record
func (m *MockCaseStore) Add(record *domain.CaseRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record)
}
