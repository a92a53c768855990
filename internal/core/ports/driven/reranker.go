package driven

import (
	"context"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
)

// RerankCandidate is one passage submitted for cross-encoder scoring
type RerankCandidate struct {
	ChunkID string
	Content string
}

// RerankScore is the reranker's relevance score for one candidate
type RerankScore struct {
	ChunkID string
	Score   float64
}

// Reranker scores query/passage pairs with a cross-encoder model.
// Scores replace the fused ranking key when reranking is enabled.
type Reranker interface {
	// Rerank scores every candidate against the question.
	// The result has one entry per candidate, in no particular order.
	Rerank(ctx context.Context, question *domain.Question, candidates []RerankCandidate) ([]RerankScore, error)

	// Model returns the model name being used
	Model() string

	// HealthCheck verifies the reranker service is available
	HealthCheck(ctx context.Context) error

	// Close releases resources held by the reranker
	Close() error
}
