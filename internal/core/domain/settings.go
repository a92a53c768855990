package domain

import "time"

// AIProvider identifies the AI/embedding provider
type AIProvider string

const (
	AIProviderOpenAI AIProvider = "openai"
	AIProviderOllama AIProvider = "ollama"
	AIProviderVoyage AIProvider = "voyage"
	AIProviderCohere AIProvider = "cohere"
)

// RequiresAPIKey returns true if this provider requires an API key
func (p AIProvider) RequiresAPIKey() bool {
	switch p {
	case AIProviderOllama:
		return false // Self-hosted, no API key needed
	default:
		return true
	}
}

// IsValid returns true if this is a known provider
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOpenAI, AIProviderOllama, AIProviderVoyage, AIProviderCohere:
		return true
	default:
		return false
	}
}

// RetrievalSettings holds the tunable retrieval and answering parameters.
// All values have working defaults; updates take effect on the next query
// and the next index build.
type RetrievalSettings struct {
	// Chunking
	ChunkTargetSize int `json:"chunk_target_size"`
	ChunkOverlap    int `json:"chunk_overlap"`

	// Hybrid fusion
	DenseWeight   float64 `json:"dense_weight"`
	LexicalWeight float64 `json:"lexical_weight"`
	TopK          int     `json:"top_k"`
	RerankEnabled bool    `json:"rerank_enabled"`

	// Answering
	RelevanceThreshold float64 `json:"relevance_threshold"`
	MaxCitations       int     `json:"max_citations"`

	// Confidence
	ConfidenceStrategy ConfidenceStrategy `json:"confidence_strategy"`

	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultRetrievalSettings returns the built-in defaults
func DefaultRetrievalSettings() *RetrievalSettings {
	return &RetrievalSettings{
		ChunkTargetSize:    512,
		ChunkOverlap:       50,
		DenseWeight:        0.7,
		LexicalWeight:      0.3,
		TopK:               10,
		RerankEnabled:      false,
		RelevanceThreshold: 0.35,
		MaxCitations:       5,
		ConfidenceStrategy: ConfidenceStrategyEnsemble,
		UpdatedAt:          time.Now(),
	}
}

// Validate checks settings are usable
func (s *RetrievalSettings) Validate() error {
	if s.ChunkTargetSize <= 0 || s.ChunkOverlap < 0 || s.ChunkOverlap >= s.ChunkTargetSize {
		return ErrInvalidInput
	}
	if s.DenseWeight < 0 || s.LexicalWeight < 0 || s.DenseWeight+s.LexicalWeight == 0 {
		return ErrInvalidInput
	}
	if s.TopK <= 0 || s.MaxCitations <= 0 {
		return ErrInvalidInput
	}
	if s.RelevanceThreshold < 0 || s.RelevanceThreshold > 1 {
		return ErrInvalidInput
	}
	if !s.ConfidenceStrategy.IsValid() {
		return ErrInvalidInput
	}
	return nil
}

// AISettings holds AI service configuration (embedding and reranker).
// This can be updated at runtime via API.
type AISettings struct {
	Embedding EmbeddingSettings `json:"embedding"`
	Reranker  RerankerSettings  `json:"reranker"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// EmbeddingSettings configures the embedding service
type EmbeddingSettings struct {
	Provider AIProvider `json:"provider"`
	Model    string     `json:"model"`
	APIKey   string     `json:"-"` // Never serialize to JSON
	BaseURL  string     `json:"base_url,omitempty"`
}

// IsConfigured returns true if embedding settings are properly configured
func (e *EmbeddingSettings) IsConfigured() bool {
	if e.Provider == "" {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// RerankerSettings configures the optional cross-encoder reranker
type RerankerSettings struct {
	Endpoint string `json:"endpoint"`
	Model    string `json:"model,omitempty"`
	APIKey   string `json:"-"` // Never serialize to JSON
}

// IsConfigured returns true if a reranker endpoint is set
func (r *RerankerSettings) IsConfigured() bool {
	return r.Endpoint != ""
}

// Validate checks if AISettings are valid
func (s *AISettings) Validate() error {
	if s.Embedding.Provider != "" && !s.Embedding.Provider.IsValid() {
		return ErrInvalidProvider
	}
	return nil
}
