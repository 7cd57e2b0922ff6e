package mocks

import (
	"context"
	"sync"
)

// MockRetriever is a mock implementation of Retriever for testing
type MockRetriever struct {
	mu sync.RWMutex

	// Results maps query text to the ranked case ids to return
	Results map[string][]string

	// Errors maps query text to an error to return for that query
	Errors map[string]error

	// HealthErr is returned by HealthCheck when set
	HealthErr error

	// Calls records every query in invocation order
	Calls []string
}

// NewMockRetriever creates a new MockRetriever
func NewMockRetriever() *MockRetriever {
	return &MockRetriever{
		Results: make(map[string][]string),
		Errors:  make(map[string]error),
	}
}

func (m *MockRetriever) Retrieve(_ context.Context, query string, k int) ([]string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, query)
	m.mu.Unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()

	if err, ok := m.Errors[query]; ok {
		return nil, err
	}

	ranked := m.Results[query]
	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked, nil
}

func (m *MockRetriever) HealthCheck(_ context.Context) error {
	return m.HealthErr
}

// CallCount returns how many queries were issued
func (m *MockRetriever) CallCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.Calls)
}
