package driving

import (
	"context"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
)

// IngestRequest carries a new document's extracted text
type IngestRequest struct {
	Title   string            `json:"title"`
	Text    string            `json:"text"`
	PageMap []domain.PageSpan `json:"page_map,omitempty"`
}

// IndexingService manages document ingestion and index builds
type IndexingService interface {
	// Ingest registers a document, stores its content, and enqueues an index build.
	// Returns domain.ErrEmptyDocument if the text has no usable content.
	Ingest(ctx context.Context, req IngestRequest) (*domain.Document, error)

	// BuildIndex chunks, embeds, and indexes a document synchronously.
	// At most one build runs per document; a concurrent attempt returns
	// domain.ErrBuildInProgress.
	BuildIndex(ctx context.Context, documentID string) error

	// Reindex enqueues a fresh build for an existing document
	Reindex(ctx context.Context, documentID string) error

	// DeleteIndex removes the in-memory index, the snapshot, and cached answers
	DeleteIndex(ctx context.Context, documentID string) error
}
