package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
	"github.com/lexiqa-labs/lexiqa-core/internal/core/ports/driven"
	"github.com/redis/go-redis/v9"
)

// Verify interface compliance
var _ driven.AnswerCache = (*AnswerCache)(nil)

const (
	// Key prefixes for Redis
	answerPrefix       = "lexiqa:answer:"
	answerDocSetPrefix = "lexiqa:answers:doc:"
)

// AnswerCache implements driven.AnswerCache using Redis.
// Entries use Redis TTL for automatic expiration; a per-document set
// tracks entry keys so InvalidateDocument can drop them all at once.
type AnswerCache struct {
	client *redis.Client
}

// NewAnswerCache creates a new Redis-backed AnswerCache
func NewAnswerCache(client *redis.Client) *AnswerCache {
	return &AnswerCache{client: client}
}

// answerKey derives the cache key for a document/question pair.
// Questions are hashed so arbitrary text never lands in a Redis key.
func answerKey(documentID, normalizedQuestion string) string {
	sum := sha256.Sum256([]byte(normalizedQuestion))
	return answerPrefix + documentID + ":" + hex.EncodeToString(sum[:16])
}

// Get retrieves a cached result. Returns nil, nil on a cache miss.
func (c *AnswerCache) Get(ctx context.Context, documentID, normalizedQuestion string) (*domain.AskResult, error) {
	data, err := c.client.Get(ctx, answerKey(documentID, normalizedQuestion)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached answer: %w", err)
	}

	var result domain.AskResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached answer: %w", err)
	}

	return &result, nil
}

// Set stores a result with the given TTL
func (c *AnswerCache) Set(ctx context.Context, documentID, normalizedQuestion string, result *domain.AskResult, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}

	key := answerKey(documentID, normalizedQuestion)
	docSet := answerDocSetPrefix + documentID

	// Use pipeline for atomic operations
	pipe := c.client.Pipeline()
	pipe.Set(ctx, key, data, ttl)
	pipe.SAdd(ctx, docSet, key)
	// Keep the set a little longer than its entries so invalidation
	// never misses a live key
	pipe.Expire(ctx, docSet, ttl+time.Minute)

	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to cache answer: %w", err)
	}

	return nil
}

// InvalidateDocument drops all cached results for a document.
// Called after every index rebuild.
func (c *AnswerCache) InvalidateDocument(ctx context.Context, documentID string) error {
	docSet := answerDocSetPrefix + documentID

	keys, err := c.client.SMembers(ctx, docSet).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("failed to list cached answers: %w", err)
	}

	pipe := c.client.Pipeline()
	if len(keys) > 0 {
		pipe.Del(ctx, keys...)
	}
	pipe.Del(ctx, docSet)

	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to invalidate cached answers: %w", err)
	}

	return nil
}

// Ping checks if the cache backend is healthy
func (c *AnswerCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close is a no-op; the Redis client is shared and closed by its owner
func (c *AnswerCache) Close() error {
	return nil
}
