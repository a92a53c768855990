package mocks

import (
	"context"
	"strings"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
	"github.com/lexiqa-labs/lexiqa-core/internal/core/ports/driven"
)

// MockReranker scores candidates by naive term overlap with the question,
// which is deterministic and good enough to verify rerank plumbing.
type MockReranker struct {
	// Custom behavior hooks (optional)
	RerankFn      func(question *domain.Question, candidates []driven.RerankCandidate) ([]driven.RerankScore, error)
	HealthCheckFn func() error

	// Calls counts Rerank invocations (for test assertions)
	Calls int
}

// NewMockReranker creates a new mock reranker.
func NewMockReranker() *MockReranker {
	return &MockReranker{}
}

func (m *MockReranker) Rerank(ctx context.Context, question *domain.Question, candidates []driven.RerankCandidate) ([]driven.RerankScore, error) {
	m.Calls++
	if m.RerankFn != nil {
		return m.RerankFn(question, candidates)
	}

	scores := make([]driven.RerankScore, len(candidates))
	for i, c := range candidates {
		lower := strings.ToLower(c.Content)
		hits := 0
		for _, term := range question.KeyTerms {
			if strings.Contains(lower, term) {
				hits++
			}
		}
		score := 0.0
		if len(question.KeyTerms) > 0 {
			score = float64(hits) / float64(len(question.KeyTerms))
		}
		scores[i] = driven.RerankScore{ChunkID: c.ChunkID, Score: score}
	}
	return scores, nil
}

func (m *MockReranker) Model() string {
	return "mock-cross-encoder"
}

func (m *MockReranker) HealthCheck(ctx context.Context) error {
	if m.HealthCheckFn != nil {
		return m.HealthCheckFn()
	}
	return nil
}

func (m *MockReranker) Close() error { return nil }
