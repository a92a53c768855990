package driven

import (
	"context"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
)

// DocumentStore handles document persistence (PostgreSQL)
type DocumentStore interface {
	// Save creates or updates a document
	Save(ctx context.Context, doc *domain.Document) error

	// Get retrieves a document by ID
	Get(ctx context.Context, id string) (*domain.Document, error)

	// List retrieves documents with pagination, newest first
	List(ctx context.Context, limit, offset int) ([]*domain.Document, error)

	// UpdateStatus transitions a document's indexing status.
	// buildErr is stored when status is failed, cleared otherwise.
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, buildErr string) error

	// Delete deletes a document and its content
	Delete(ctx context.Context, id string) error

	// Count returns total document count
	Count(ctx context.Context) (int, error)

	// SaveContent stores the extracted text and page map for a document
	SaveContent(ctx context.Context, content *domain.DocumentContent) error

	// GetContent retrieves the extracted text and page map
	GetContent(ctx context.Context, documentID string) (*domain.DocumentContent, error)
}
