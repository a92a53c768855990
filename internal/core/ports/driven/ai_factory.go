package driven

import (
	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
)

// AIServiceFactory creates AI services based on configuration
type AIServiceFactory interface {
	// CreateEmbeddingService creates an embedding service from settings
	// Returns nil, nil if settings are not configured
	CreateEmbeddingService(settings *domain.EmbeddingSettings) (EmbeddingService, error)

	// CreateReranker creates a reranker from settings
	// Returns nil, nil if settings are not configured
	CreateReranker(settings *domain.RerankerSettings) (Reranker, error)
}
