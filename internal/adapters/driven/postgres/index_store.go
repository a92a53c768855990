package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
	"github.com/lexiqa-labs/lexiqa-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.IndexStore = (*IndexStore)(nil)

// IndexStore implements driven.IndexStore using PostgreSQL.
// Snapshots are stored as a single row per document: chunks (with their
// embeddings) as JSONB, the lexical model as an opaque byte blob.
type IndexStore struct {
	db *DB
}

// NewIndexStore creates a new IndexStore
func NewIndexStore(db *DB) *IndexStore {
	return &IndexStore{db: db}
}

// SaveSnapshot persists a snapshot, replacing any previous one for the document
func (s *IndexStore) SaveSnapshot(ctx context.Context, snap *driven.IndexSnapshot) error {
	chunksJSON, err := json.Marshal(snap.Chunks)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO index_snapshots (document_id, embedding_dim, chunks, lexical_model, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (document_id) DO UPDATE SET
			embedding_dim = EXCLUDED.embedding_dim,
			chunks = EXCLUDED.chunks,
			lexical_model = EXCLUDED.lexical_model,
			created_at = EXCLUDED.created_at
	`

	_, err = s.db.ExecContext(ctx, query,
		snap.DocumentID,
		snap.EmbeddingDim,
		chunksJSON,
		snap.LexicalModel,
		time.Now(),
	)
	return err
}

// LoadSnapshot retrieves the snapshot for a document
func (s *IndexStore) LoadSnapshot(ctx context.Context, documentID string) (*driven.IndexSnapshot, error) {
	query := `
		SELECT document_id, embedding_dim, chunks, lexical_model
		FROM index_snapshots
		WHERE document_id = $1
	`

	var snap driven.IndexSnapshot
	var chunksJSON []byte

	err := s.db.QueryRowContext(ctx, query, documentID).Scan(
		&snap.DocumentID,
		&snap.EmbeddingDim,
		&chunksJSON,
		&snap.LexicalModel,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(chunksJSON, &snap.Chunks); err != nil {
		return nil, err
	}

	return &snap, nil
}

// DeleteSnapshot removes the snapshot for a document.
// Deleting a snapshot that does not exist is not an error.
func (s *IndexStore) DeleteSnapshot(ctx context.Context, documentID string) error {
	query := `DELETE FROM index_snapshots WHERE document_id = $1`
	_, err := s.db.ExecContext(ctx, query, documentID)
	return err
}
