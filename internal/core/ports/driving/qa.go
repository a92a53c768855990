package driving

import (
	"context"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
)

// AskOptions tweaks a single ask request
type AskOptions struct {
	// SkipCache bypasses the answer cache for this request
	SkipCache bool `json:"skip_cache,omitempty"`

	// Rerank forces cross-encoder reranking on or off for this request.
	// Nil means use the configured default.
	Rerank *bool `json:"rerank,omitempty"`
}

// QAService answers questions against a single indexed document
type QAService interface {
	// Ask runs the full pipeline: analyze, retrieve, synthesize, score, recommend.
	// A question the document does not cover is a successful result with a
	// non-grounded answer, never an error.
	Ask(ctx context.Context, documentID, question string, opts AskOptions) (*domain.AskResult, error)

	// RedFlags scans the document for risky clause patterns
	RedFlags(ctx context.Context, documentID string) ([]*domain.RedFlag, error)
}
