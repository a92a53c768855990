// Package memory provides in-process fallback adapters for deployments
// that run without Redis.
package memory

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
	"github.com/lexiqa-labs/lexiqa-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.AnswerCache = (*AnswerCache)(nil)

// keySep joins document ID and question in cache keys. The NUL byte
// cannot appear in either part, so keys never collide.
const keySep = "\x00"

// AnswerCache implements driven.AnswerCache with an in-process cache.
// Single-instance only: entries are invisible to other processes and
// lost on restart, which is acceptable for a cache.
type AnswerCache struct {
	cache *gocache.Cache
}

// NewAnswerCache creates a new in-process AnswerCache.
// Expired entries are purged every 10 minutes.
func NewAnswerCache() *AnswerCache {
	return &AnswerCache{
		cache: gocache.New(time.Hour, 10*time.Minute),
	}
}

func answerKey(documentID, normalizedQuestion string) string {
	return documentID + keySep + normalizedQuestion
}

// Get retrieves a cached result. Returns nil, nil on a cache miss.
func (c *AnswerCache) Get(_ context.Context, documentID, normalizedQuestion string) (*domain.AskResult, error) {
	if x, found := c.cache.Get(answerKey(documentID, normalizedQuestion)); found {
		return x.(*domain.AskResult), nil
	}
	return nil, nil
}

// Set stores a result with the given TTL
func (c *AnswerCache) Set(_ context.Context, documentID, normalizedQuestion string, result *domain.AskResult, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	c.cache.Set(answerKey(documentID, normalizedQuestion), result, ttl)
	return nil
}

// InvalidateDocument drops all cached results for a document
func (c *AnswerCache) InvalidateDocument(_ context.Context, documentID string) error {
	prefix := documentID + keySep
	for key := range c.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			c.cache.Delete(key)
		}
	}
	return nil
}

// Ping always succeeds for the in-process cache
func (c *AnswerCache) Ping(_ context.Context) error {
	return nil
}

// Close drops all entries
func (c *AnswerCache) Close() error {
	c.cache.Flush()
	return nil
}
