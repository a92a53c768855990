package driven

import (
	"context"
	"time"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
)

// AnswerCache memoizes ask results keyed by (document, normalized question).
// Implementations can use Redis (preferred) or in-process memory (fallback).
type AnswerCache interface {
	// Get retrieves a cached result.
	// Returns nil, nil on a cache miss.
	Get(ctx context.Context, documentID, normalizedQuestion string) (*domain.AskResult, error)

	// Set stores a result with the given TTL
	Set(ctx context.Context, documentID, normalizedQuestion string, result *domain.AskResult, ttl time.Duration) error

	// InvalidateDocument drops all cached results for a document.
	// Called after every index rebuild.
	InvalidateDocument(ctx context.Context, documentID string) error

	// Ping checks if the cache backend is healthy
	Ping(ctx context.Context) error

	// Close cleans up resources
	Close() error
}
