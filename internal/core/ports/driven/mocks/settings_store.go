package mocks

import (
	"context"
	"sync"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
)

// MockSettingsStore is an in-memory SettingsStore for testing.
type MockSettingsStore struct {
	mu        sync.Mutex
	retrieval *domain.RetrievalSettings
	ai        *domain.AISettings

	// Custom behavior hooks (optional)
	SaveRetrievalFn func(settings *domain.RetrievalSettings) error
	SaveAIFn        func(settings *domain.AISettings) error
}

// NewMockSettingsStore creates a new in-memory settings store.
func NewMockSettingsStore() *MockSettingsStore {
	return &MockSettingsStore{}
}

func (m *MockSettingsStore) GetRetrievalSettings(ctx context.Context) (*domain.RetrievalSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.retrieval == nil {
		return nil, domain.ErrNotFound
	}
	cp := *m.retrieval
	return &cp, nil
}

func (m *MockSettingsStore) SaveRetrievalSettings(ctx context.Context, settings *domain.RetrievalSettings) error {
	if m.SaveRetrievalFn != nil {
		return m.SaveRetrievalFn(settings)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *settings
	m.retrieval = &cp
	return nil
}

func (m *MockSettingsStore) GetAISettings(ctx context.Context) (*domain.AISettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ai == nil {
		return nil, domain.ErrNotFound
	}
	cp := *m.ai
	return &cp, nil
}

func (m *MockSettingsStore) SaveAISettings(ctx context.Context, settings *domain.AISettings) error {
	if m.SaveAIFn != nil {
		return m.SaveAIFn(settings)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *settings
	m.ai = &cp
	return nil
}
