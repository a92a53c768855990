package mocks

import (
	"context"
	"sync"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
	"github.com/lexiqa-labs/lexiqa-core/internal/core/ports/driven"
)

// MockIndexStore is an in-memory IndexStore for testing.
type MockIndexStore struct {
	mu        sync.Mutex
	snapshots map[string]*driven.IndexSnapshot

	// Custom behavior hooks (optional)
	SaveSnapshotFn func(snap *driven.IndexSnapshot) error
	LoadSnapshotFn func(documentID string) (*driven.IndexSnapshot, error)
}

// NewMockIndexStore creates a new in-memory index store.
func NewMockIndexStore() *MockIndexStore {
	return &MockIndexStore{
		snapshots: make(map[string]*driven.IndexSnapshot),
	}
}

func (m *MockIndexStore) SaveSnapshot(ctx context.Context, snap *driven.IndexSnapshot) error {
	if m.SaveSnapshotFn != nil {
		return m.SaveSnapshotFn(snap)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[snap.DocumentID] = snap
	return nil
}

func (m *MockIndexStore) LoadSnapshot(ctx context.Context, documentID string) (*driven.IndexSnapshot, error) {
	if m.LoadSnapshotFn != nil {
		return m.LoadSnapshotFn(documentID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.snapshots[documentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return snap, nil
}

func (m *MockIndexStore) DeleteSnapshot(ctx context.Context, documentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snapshots, documentID)
	return nil
}

// HasSnapshot reports whether a snapshot is stored (for test assertions).
func (m *MockIndexStore) HasSnapshot(documentID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.snapshots[documentID]
	return ok
}
