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
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore implements driven.DocumentStore using PostgreSQL
type DocumentStore struct {
	db *DB
}

// NewDocumentStore creates a new DocumentStore
func NewDocumentStore(db *DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// Save creates or updates a document
func (s *DocumentStore) Save(ctx context.Context, doc *domain.Document) error {
	query := `
		INSERT INTO documents (id, title, page_count, chunk_count, status, build_error, created_at, updated_at, indexed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			page_count = EXCLUDED.page_count,
			chunk_count = EXCLUDED.chunk_count,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		doc.ID,
		doc.Title,
		doc.PageCount,
		doc.ChunkCount,
		string(doc.Status),
		doc.Error,
		doc.CreatedAt,
		doc.UpdatedAt,
		NullTime(doc.IndexedAt),
	)
	return err
}

// Get retrieves a document by ID
func (s *DocumentStore) Get(ctx context.Context, id string) (*domain.Document, error) {
	query := `
		SELECT id, title, page_count, chunk_count, status, build_error, created_at, updated_at, indexed_at
		FROM documents
		WHERE id = $1
	`

	return scanDocument(s.db.QueryRowContext(ctx, query, id))
}

// List retrieves documents with pagination, newest first
func (s *DocumentStore) List(ctx context.Context, limit, offset int) ([]*domain.Document, error) {
	query := `
		SELECT id, title, page_count, chunk_count, status, build_error, created_at, updated_at, indexed_at
		FROM documents
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*domain.Document
	for rows.Next() {
		doc, err := scanDocumentRow(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return docs, nil
}

// UpdateStatus transitions a document's indexing status.
// The build error is stored for failed builds and cleared otherwise;
// indexed_at is stamped when the document reaches the indexed state.
func (s *DocumentStore) UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, buildErr string) error {
	if status != domain.DocumentStatusFailed {
		buildErr = ""
	}

	query := `
		UPDATE documents
		SET status = $2,
			build_error = $3,
			updated_at = $4,
			indexed_at = CASE WHEN $2 = 'indexed' THEN $4 ELSE indexed_at END
		WHERE id = $1
	`

	result, err := s.db.ExecContext(ctx, query, id, string(status), buildErr, time.Now())
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// Delete deletes a document and its content
func (s *DocumentStore) Delete(ctx context.Context, id string) error {
	// document_content rows cascade via the foreign key
	query := `DELETE FROM documents WHERE id = $1`
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// Count returns total document count
func (s *DocumentStore) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM documents`
	var count int
	err := s.db.QueryRowContext(ctx, query).Scan(&count)
	return count, err
}

// SaveContent stores the extracted text and page map for a document
func (s *DocumentStore) SaveContent(ctx context.Context, content *domain.DocumentContent) error {
	pageMapJSON, err := json.Marshal(content.PageMap)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO document_content (document_id, text, page_map)
		VALUES ($1, $2, $3)
		ON CONFLICT (document_id) DO UPDATE SET
			text = EXCLUDED.text,
			page_map = EXCLUDED.page_map
	`

	_, err = s.db.ExecContext(ctx, query, content.DocumentID, content.Text, pageMapJSON)
	return err
}

// GetContent retrieves the extracted text and page map
func (s *DocumentStore) GetContent(ctx context.Context, documentID string) (*domain.DocumentContent, error) {
	query := `SELECT document_id, text, page_map FROM document_content WHERE document_id = $1`

	var content domain.DocumentContent
	var pageMapJSON []byte

	err := s.db.QueryRowContext(ctx, query, documentID).Scan(
		&content.DocumentID,
		&content.Text,
		&pageMapJSON,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if len(pageMapJSON) > 0 {
		if err := json.Unmarshal(pageMapJSON, &content.PageMap); err != nil {
			return nil, err
		}
	}

	return &content, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDocument(row *sql.Row) (*domain.Document, error) {
	doc, err := scanDocumentRow(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	return doc, err
}

func scanDocumentRow(row rowScanner) (*domain.Document, error) {
	var doc domain.Document
	var status string
	var buildErr sql.NullString
	var indexedAt sql.NullTime

	err := row.Scan(
		&doc.ID,
		&doc.Title,
		&doc.PageCount,
		&doc.ChunkCount,
		&status,
		&buildErr,
		&doc.CreatedAt,
		&doc.UpdatedAt,
		&indexedAt,
	)
	if err != nil {
		return nil, err
	}

	doc.Status = domain.DocumentStatus(status)
	doc.Error = buildErr.String
	doc.IndexedAt = TimePtr(indexedAt)

	return &doc, nil
}
