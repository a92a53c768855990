package domain

import "sync"

// RuntimeConfig tracks which services are available at runtime.
// This is determined at startup and can be updated dynamically for AI services.
// Thread-safe for concurrent access.
type RuntimeConfig struct {
	mu sync.RWMutex

	// Static (set at startup, read-only)
	CacheBackend string // "redis" or "memory"

	// Dynamic capability flags (updated when AI services change)
	embeddingAvailable bool
	rerankerAvailable  bool
}

// NewRuntimeConfig creates a new RuntimeConfig with initial values
func NewRuntimeConfig(cacheBackend string) *RuntimeConfig {
	return &RuntimeConfig{
		CacheBackend: cacheBackend,
	}
}

// EmbeddingAvailable returns whether the embedding service is available
func (c *RuntimeConfig) EmbeddingAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.embeddingAvailable
}

// RerankerAvailable returns whether the reranker service is available
func (c *RuntimeConfig) RerankerAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rerankerAvailable
}

// SetEmbeddingAvailable updates the embedding availability flag
func (c *RuntimeConfig) SetEmbeddingAvailable(available bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.embeddingAvailable = available
}

// SetRerankerAvailable updates the reranker availability flag
func (c *RuntimeConfig) SetRerankerAvailable(available bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rerankerAvailable = available
}

// CanBuildIndex returns true if full hybrid indexes can be built.
// Index builds require embeddings; queries can degrade, builds cannot.
func (c *RuntimeConfig) CanBuildIndex() bool {
	return c.EmbeddingAvailable()
}

// EffectiveRetrievalMode returns the best available retrieval mode
func (c *RuntimeConfig) EffectiveRetrievalMode() RetrievalMode {
	if c.EmbeddingAvailable() {
		return RetrievalModeHybrid
	}
	return RetrievalModeLexicalOnly
}
