package mocks

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
)

// MockAnswerCache is an in-memory AnswerCache for testing.
// TTLs are recorded but never enforced; tests drive expiry explicitly.
type MockAnswerCache struct {
	mu      sync.Mutex
	entries map[string]*domain.AskResult

	// Counters for test assertions
	Hits   int
	Misses int
	Sets   int

	// Custom behavior hooks (optional)
	GetFn func(documentID, normalizedQuestion string) (*domain.AskResult, error)
	SetFn func(documentID, normalizedQuestion string, result *domain.AskResult, ttl time.Duration) error
}

// NewMockAnswerCache creates a new in-memory answer cache.
func NewMockAnswerCache() *MockAnswerCache {
	return &MockAnswerCache{
		entries: make(map[string]*domain.AskResult),
	}
}

func cacheKey(documentID, normalizedQuestion string) string {
	return documentID + "\x00" + normalizedQuestion
}

func (m *MockAnswerCache) Get(ctx context.Context, documentID, normalizedQuestion string) (*domain.AskResult, error) {
	if m.GetFn != nil {
		return m.GetFn(documentID, normalizedQuestion)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	result, ok := m.entries[cacheKey(documentID, normalizedQuestion)]
	if !ok {
		m.Misses++
		return nil, nil
	}
	m.Hits++
	return result, nil
}

func (m *MockAnswerCache) Set(ctx context.Context, documentID, normalizedQuestion string, result *domain.AskResult, ttl time.Duration) error {
	if m.SetFn != nil {
		return m.SetFn(documentID, normalizedQuestion, result, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[cacheKey(documentID, normalizedQuestion)] = result
	m.Sets++
	return nil
}

func (m *MockAnswerCache) InvalidateDocument(ctx context.Context, documentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	prefix := documentID + "\x00"
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
		}
	}
	return nil
}

func (m *MockAnswerCache) Ping(ctx context.Context) error { return nil }

func (m *MockAnswerCache) Close() error { return nil }

// Len returns the number of cached entries (for test assertions).
func (m *MockAnswerCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
