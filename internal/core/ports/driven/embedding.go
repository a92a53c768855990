package driven

import (
	"context"
)

// EmbeddingService turns text into dense vectors for retrieval.
// Chunks are embedded in batches at index build time; questions are
// embedded one at a time per ask.
type EmbeddingService interface {
	// Embed generates embeddings for a batch of chunk texts.
	// The result has one vector per input, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery generates an embedding for a question. Providers with
	// separate query and document modes use the query mode here.
	EmbedQuery(ctx context.Context, query string) ([]float32, error)

	// Dimensions returns the embedding dimension size
	Dimensions() int

	// Model returns the model name being used
	Model() string

	// HealthCheck verifies the embedding service is reachable
	HealthCheck(ctx context.Context) error

	// Close releases resources held by the embedding service
	Close() error
}
