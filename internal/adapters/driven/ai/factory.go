package ai

import (
	"fmt"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
	"github.com/lexiqa-labs/lexiqa-core/internal/core/ports/driven"
)

// Ensure Factory implements AIServiceFactory
var _ driven.AIServiceFactory = (*Factory)(nil)

// Factory creates AI services based on configuration
type Factory struct{}

// NewFactory creates a new AI service factory
func NewFactory() *Factory {
	return &Factory{}
}

// CreateEmbeddingService creates an embedding service from settings
func (f *Factory) CreateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOpenAI:
		return NewOpenAIEmbedding(settings.APIKey, settings.Model, settings.BaseURL)
	case domain.AIProviderOllama:
		return NewOllamaEmbedding(settings.BaseURL, settings.Model)
	case domain.AIProviderVoyage:
		return NewVoyageEmbedding(settings.APIKey, settings.Model)
	case domain.AIProviderCohere:
		return NewCohereEmbedding(settings.APIKey, settings.Model)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProvider, settings.Provider)
	}
}

// CreateReranker creates a reranker from settings
func (f *Factory) CreateReranker(settings *domain.RerankerSettings) (driven.Reranker, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}
	return NewHTTPReranker(settings.Endpoint, settings.Model, settings.APIKey)
}

// Placeholder constructors for providers that are accepted in settings but
// do not have adapters yet.

func NewVoyageEmbedding(apiKey, model string) (driven.EmbeddingService, error) {
	// TODO: Implement Voyage embedding adapter
	return nil, fmt.Errorf("Voyage embedding adapter not yet implemented")
}

func NewCohereEmbedding(apiKey, model string) (driven.EmbeddingService, error) {
	// TODO: Implement Cohere embedding adapter
	return nil, fmt.Errorf("Cohere embedding adapter not yet implemented")
}
