package mocks

import (
	"context"
	"hash/fnv"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
)

// MockEmbeddingService produces deterministic pseudo-random embeddings from
// a hash of the input text, so equal texts always embed identically.
type MockEmbeddingService struct {
	dimensions int
	model      string
	failing    bool

	// Custom behavior hooks (optional)
	EmbedFn func(texts []string) ([][]float32, error)

	// EmbedCalls counts batch embedding invocations (for test assertions)
	EmbedCalls int
}

// NewMockEmbeddingService creates a new MockEmbeddingService
func NewMockEmbeddingService() *MockEmbeddingService {
	return &MockEmbeddingService{
		dimensions: 384,
		model:      "mock-embedding-model",
	}
}

func (m *MockEmbeddingService) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	m.EmbedCalls++
	if m.EmbedFn != nil {
		return m.EmbedFn(texts)
	}
	if m.failing {
		return nil, domain.ErrEmbeddingUnavailable
	}

	result := make([][]float32, len(texts))
	for i, text := range texts {
		result[i] = m.generateEmbedding(text)
	}
	return result, nil
}

func (m *MockEmbeddingService) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	if m.failing {
		return nil, domain.ErrEmbeddingUnavailable
	}
	return m.generateEmbedding(query), nil
}

func (m *MockEmbeddingService) Dimensions() int {
	return m.dimensions
}

func (m *MockEmbeddingService) Model() string {
	return m.model
}

func (m *MockEmbeddingService) HealthCheck(ctx context.Context) error {
	if m.failing {
		return domain.ErrEmbeddingUnavailable
	}
	return nil
}

func (m *MockEmbeddingService) Close() error {
	return nil
}

// generateEmbedding generates a deterministic embedding based on text hash
func (m *MockEmbeddingService) generateEmbedding(text string) []float32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	seed := h.Sum32()

	embedding := make([]float32, m.dimensions)
	for i := range embedding {
		// Deterministic pseudo-random values from a linear congruential step
		seed = seed*1103515245 + 12345
		embedding[i] = float32(seed%1000) / 1000.0
	}
	return embedding
}

// SetFailing makes every call fail until cleared (for test setup).
func (m *MockEmbeddingService) SetFailing(failing bool) {
	m.failing = failing
}
