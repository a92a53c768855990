package mocks

import (
	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
	"github.com/lexiqa-labs/lexiqa-core/internal/core/ports/driven"
)

// MockAIServiceFactory hands out mock AI services for any configuration
type MockAIServiceFactory struct {
	// Custom behavior hooks (optional)
	CreateEmbeddingFn func(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error)
	CreateRerankerFn  func(settings *domain.RerankerSettings) (driven.Reranker, error)

	// CreateEmbeddingCalls counts embedding factory invocations (for test assertions)
	CreateEmbeddingCalls int
	// CreateRerankerCalls counts reranker factory invocations (for test assertions)
	CreateRerankerCalls int
}

// NewMockAIServiceFactory creates a new MockAIServiceFactory
func NewMockAIServiceFactory() *MockAIServiceFactory {
	return &MockAIServiceFactory{}
}

func (m *MockAIServiceFactory) CreateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	m.CreateEmbeddingCalls++
	if m.CreateEmbeddingFn != nil {
		return m.CreateEmbeddingFn(settings)
	}
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}
	return NewMockEmbeddingService(), nil
}

func (m *MockAIServiceFactory) CreateReranker(settings *domain.RerankerSettings) (driven.Reranker, error) {
	m.CreateRerankerCalls++
	if m.CreateRerankerFn != nil {
		return m.CreateRerankerFn(settings)
	}
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}
	return NewMockReranker(), nil
}

// Ensure mock implements the interface
var _ driven.AIServiceFactory = (*MockAIServiceFactory)(nil)
