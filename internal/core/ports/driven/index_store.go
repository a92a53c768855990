package driven

import (
	"context"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
)

// IndexSnapshot is the serializable form of a built document index.
// Chunks carry their embeddings; LexicalModel is the index's own encoding
// of its term statistics. Restoring a snapshot never re-embeds.
type IndexSnapshot struct {
	DocumentID   string          `json:"document_id"`
	EmbeddingDim int             `json:"embedding_dim"`
	Chunks       []*domain.Chunk `json:"chunks"`
	LexicalModel []byte          `json:"lexical_model"`
}

// IndexStore persists index snapshots so restarts never re-embed (PostgreSQL)
type IndexStore interface {
	// SaveSnapshot persists a snapshot, replacing any previous one for the document
	SaveSnapshot(ctx context.Context, snap *IndexSnapshot) error

	// LoadSnapshot retrieves the snapshot for a document.
	// Returns domain.ErrNotFound if no snapshot exists.
	LoadSnapshot(ctx context.Context, documentID string) (*IndexSnapshot, error)

	// DeleteSnapshot removes the snapshot for a document
	DeleteSnapshot(ctx context.Context, documentID string) error
}
