package driving

import (
	"context"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
)

// UpdateRetrievalSettingsRequest represents a partial update to retrieval tuning
type UpdateRetrievalSettingsRequest struct {
	ChunkTargetSize    *int                       `json:"chunk_target_size,omitempty"`
	ChunkOverlap       *int                       `json:"chunk_overlap,omitempty"`
	DenseWeight        *float64                   `json:"dense_weight,omitempty"`
	LexicalWeight      *float64                   `json:"lexical_weight,omitempty"`
	TopK               *int                       `json:"top_k,omitempty"`
	RerankEnabled      *bool                      `json:"rerank_enabled,omitempty"`
	RelevanceThreshold *float64                   `json:"relevance_threshold,omitempty"`
	MaxCitations       *int                       `json:"max_citations,omitempty"`
	ConfidenceStrategy *domain.ConfidenceStrategy `json:"confidence_strategy,omitempty"`
}

// UpdateAISettingsRequest represents a request to update AI settings
type UpdateAISettingsRequest struct {
	Embedding *EmbeddingSettingsInput `json:"embedding,omitempty"`
	Reranker  *RerankerSettingsInput  `json:"reranker,omitempty"`
}

// EmbeddingSettingsInput is the input for embedding configuration
type EmbeddingSettingsInput struct {
	Provider domain.AIProvider `json:"provider"`
	Model    string            `json:"model"`
	APIKey   string            `json:"api_key"`
	BaseURL  string            `json:"base_url,omitempty"`
}

// RerankerSettingsInput is the input for reranker configuration
type RerankerSettingsInput struct {
	Endpoint string `json:"endpoint"`
	Model    string `json:"model,omitempty"`
	APIKey   string `json:"api_key,omitempty"`
}

// AIServiceStatus represents the status of a single AI service
type AIServiceStatus struct {
	Available    bool              `json:"available"`
	Provider     domain.AIProvider `json:"provider,omitempty"`
	Model        string            `json:"model,omitempty"`
	EmbeddingDim int               `json:"embedding_dim,omitempty"` // Only for embedding service
}

// AISettingsStatus represents the status of AI services
type AISettingsStatus struct {
	Embedding              AIServiceStatus      `json:"embedding"`
	Reranker               AIServiceStatus      `json:"reranker"`
	EffectiveRetrievalMode domain.RetrievalMode `json:"effective_retrieval_mode"`
}

// SettingsService manages retrieval tuning and AI configuration
type SettingsService interface {
	// GetRetrievalSettings retrieves the effective retrieval settings
	GetRetrievalSettings(ctx context.Context) (*domain.RetrievalSettings, error)

	// UpdateRetrievalSettings applies a partial update.
	// Chunking changes take effect on the next index build.
	UpdateRetrievalSettings(ctx context.Context, req UpdateRetrievalSettingsRequest) (*domain.RetrievalSettings, error)

	// GetAISettings retrieves the current AI configuration
	GetAISettings(ctx context.Context) (*domain.AISettings, error)

	// UpdateAISettings updates AI configuration and hot-reloads services
	UpdateAISettings(ctx context.Context, req UpdateAISettingsRequest) (*AISettingsStatus, error)

	// GetAIStatus returns the current status of AI services
	GetAIStatus(ctx context.Context) (*AISettingsStatus, error)

	// TestConnection tests the configured AI services
	TestConnection(ctx context.Context) error
}
