package mocks

import (
	"context"
	"sync"

	"github.com/nyaya-labs/firtag-core/internal/core/domain"
)

// MockArtifactStore is an in-memory ArtifactStore for testing
type MockArtifactStore struct {
	mu sync.RWMutex

	Reference         *domain.ReferenceArtifact
	Bank              *domain.QuestionBank
	EvaluationReports []*domain.EvaluationReport
	ValidationReports []*domain.ValidationReport

	// SaveErr is returned by every save method when set
	SaveErr error
}

// NewMockArtifactStore creates an empty MockArtifactStore
func NewMockArtifactStore() *MockArtifactStore {
	return &MockArtifactStore{}
}

func (m *MockArtifactStore) SaveReference(_ context.Context, artifact *domain.ReferenceArtifact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Reference = artifact
	return nil
}

func (m *MockArtifactStore) LoadReference(_ context.Context) (*domain.ReferenceArtifact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Reference == nil {
		return nil, domain.ErrNotFound
	}
	return m.Reference, nil
}

func (m *MockArtifactStore) SaveQuestionBank(_ context.Context, bank *domain.QuestionBank) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Bank = bank
	return nil
}

func (m *MockArtifactStore) LoadQuestionBank(_ context.Context) (*domain.QuestionBank, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Bank == nil {
		return nil, domain.ErrNotFound
	}
	return m.Bank, nil
}

func (m *MockArtifactStore) SaveEvaluationReport(_ context.Context, report *domain.EvaluationReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.EvaluationReports = append(m.EvaluationReports, report)
	return nil
}

func (m *MockArtifactStore) SaveValidationReport(_ context.Context, report *domain.ValidationReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.ValidationReports = append(m.ValidationReports, report)
	return nil
}

// MockReferenceCache is an in-memory ReferenceCache for testing
type MockReferenceCache struct {
	mu   sync.RWMutex
	dict *domain.ReferenceDictionary

	Saves    int
	Loads    int
	CacheErr error
}

// NewMockReferenceCache creates an empty MockReferenceCache
func NewMockReferenceCache() *MockReferenceCache {
	return &MockReferenceCache{}
}

func (m *MockReferenceCache) Save(_ context.Context, dict *domain.ReferenceDictionary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saves++
	if m.CacheErr != nil {
		return m.CacheErr
	}
	m.dict = dict
	return nil
}

func (m *MockReferenceCache) Load(_ context.Context) (*domain.ReferenceDictionary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Loads++
	if m.CacheErr != nil {
		return nil, m.CacheErr
	}
	if m.dict == nil {
		return nil, domain.ErrNotFound
	}
	return m.dict, nil
}
