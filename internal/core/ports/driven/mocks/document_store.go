package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
)

// MockDocumentStore is an in-memory DocumentStore for testing.
// Supports custom behavior injection via the Fn fields.
type MockDocumentStore struct {
	mu       sync.Mutex
	docs     map[string]*domain.Document
	contents map[string]*domain.DocumentContent

	// Custom behavior hooks (optional)
	SaveFn         func(doc *domain.Document) error
	GetFn          func(id string) (*domain.Document, error)
	UpdateStatusFn func(id string, status domain.DocumentStatus, buildErr string) error
	GetContentFn   func(documentID string) (*domain.DocumentContent, error)
}

// NewMockDocumentStore creates a new in-memory document store.
func NewMockDocumentStore() *MockDocumentStore {
	return &MockDocumentStore{
		docs:     make(map[string]*domain.Document),
		contents: make(map[string]*domain.DocumentContent),
	}
}

func (m *MockDocumentStore) Save(ctx context.Context, doc *domain.Document) error {
	if m.SaveFn != nil {
		return m.SaveFn(doc)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *doc
	m.docs[doc.ID] = &cp
	return nil
}

func (m *MockDocumentStore) Get(ctx context.Context, id string) (*domain.Document, error) {
	if m.GetFn != nil {
		return m.GetFn(id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *doc
	return &cp, nil
}

func (m *MockDocumentStore) List(ctx context.Context, limit, offset int) ([]*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := make([]*domain.Document, 0, len(m.docs))
	for _, doc := range m.docs {
		cp := *doc
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return []*domain.Document{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (m *MockDocumentStore) UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, buildErr string) error {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(id, status, buildErr)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return domain.ErrNotFound
	}
	doc.Status = status
	doc.Error = buildErr
	return nil
}

func (m *MockDocumentStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.docs, id)
	delete(m.contents, id)
	return nil
}

func (m *MockDocumentStore) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs), nil
}

func (m *MockDocumentStore) SaveContent(ctx context.Context, content *domain.DocumentContent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *content
	m.contents[content.DocumentID] = &cp
	return nil
}

func (m *MockDocumentStore) GetContent(ctx context.Context, documentID string) (*domain.DocumentContent, error) {
	if m.GetContentFn != nil {
		return m.GetContentFn(documentID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	content, ok := m.contents[documentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *content
	return &cp, nil
}
