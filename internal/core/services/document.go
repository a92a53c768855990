package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
	"github.com/lexiqa-labs/lexiqa-core/internal/core/ports/driven"
	"github.com/lexiqa-labs/lexiqa-core/internal/core/ports/driving"
	"github.com/lexiqa-labs/lexiqa-core/internal/index"
)

// Ensure documentService implements DocumentService
var _ driving.DocumentService = (*documentService)(nil)

// documentService implements the DocumentService interface
type documentService struct {
	documentStore driven.DocumentStore
	indexStore    driven.IndexStore
	cache         driven.AnswerCache
	registry      *index.Registry
	logger        *slog.Logger
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(
	documentStore driven.DocumentStore,
	indexStore driven.IndexStore,
	cache driven.AnswerCache,
	registry *index.Registry,
	logger *slog.Logger,
) driving.DocumentService {
	return &documentService{
		documentStore: documentStore,
		indexStore:    indexStore,
		cache:         cache,
		registry:      registry,
		logger:        logger,
	}
}

// Get retrieves a document by ID
func (s *documentService) Get(ctx context.Context, id string) (*domain.Document, error) {
	return s.documentStore.Get(ctx, id)
}

// GetWithChunks retrieves a document with its indexed chunks.
// A document that has not been indexed yet has no chunks.
func (s *documentService) GetWithChunks(ctx context.Context, id string) (*domain.DocumentWithChunks, error) {
	doc, err := s.documentStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	chunks := []*domain.Chunk{}
	snap, err := s.indexStore.LoadSnapshot(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("load index snapshot: %w", err)
		}
	} else {
		chunks = snap.Chunks
	}

	return &domain.DocumentWithChunks{
		Document: doc,
		Chunks:   chunks,
	}, nil
}

// List retrieves documents with pagination, newest first
func (s *documentService) List(ctx context.Context, limit, offset int) ([]*domain.Document, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.documentStore.List(ctx, limit, offset)
}

// Delete removes a document, its content, its index, and cached answers
func (s *documentService) Delete(ctx context.Context, id string) error {
	if _, err := s.documentStore.Get(ctx, id); err != nil {
		return err
	}

	s.registry.Remove(id)

	if err := s.indexStore.DeleteSnapshot(ctx, id); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("delete index snapshot: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateDocument(ctx, id); err != nil {
			s.logger.Warn("failed to invalidate answer cache", "document_id", id, "error", err)
		}
	}

	if err := s.documentStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	s.logger.Info("document deleted", "document_id", id)
	return nil
}

// Count returns the total number of documents
func (s *documentService) Count(ctx context.Context) (int, error) {
	return s.documentStore.Count(ctx)
}
