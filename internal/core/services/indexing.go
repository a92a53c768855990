package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lexiqa-labs/lexiqa-core/internal/chunker"
	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
	"github.com/lexiqa-labs/lexiqa-core/internal/core/ports/driven"
	"github.com/lexiqa-labs/lexiqa-core/internal/core/ports/driving"
	"github.com/lexiqa-labs/lexiqa-core/internal/index"
	"github.com/lexiqa-labs/lexiqa-core/internal/runtime"
)

const (
	// buildLockTTL must comfortably exceed the longest expected build
	buildLockTTL = 5 * time.Minute

	// embedBatchSize bounds texts per embedding request
	embedBatchSize = 32

	// embedMaxAttempts bounds retries per embedding batch
	embedMaxAttempts = 3
)

// Ensure indexingService implements IndexingService
var _ driving.IndexingService = (*indexingService)(nil)

// indexingService manages document ingestion and index builds
type indexingService struct {
	documentStore driven.DocumentStore
	indexStore    driven.IndexStore
	settingsStore driven.SettingsStore
	cache         driven.AnswerCache
	registry      *index.Registry
	services      *runtime.Services
	lock          driven.DistributedLock
	queue         driven.TaskQueue
	logger        *slog.Logger
}

// NewIndexingService creates a new IndexingService
func NewIndexingService(
	documentStore driven.DocumentStore,
	indexStore driven.IndexStore,
	settingsStore driven.SettingsStore,
	cache driven.AnswerCache,
	registry *index.Registry,
	services *runtime.Services,
	lock driven.DistributedLock,
	queue driven.TaskQueue,
	logger *slog.Logger,
) driving.IndexingService {
	return &indexingService{
		documentStore: documentStore,
		indexStore:    indexStore,
		settingsStore: settingsStore,
		cache:         cache,
		registry:      registry,
		services:      services,
		lock:          lock,
		queue:         queue,
		logger:        logger,
	}
}

// Ingest registers a document, stores its content, and enqueues an index build
func (s *indexingService) Ingest(ctx context.Context, req driving.IngestRequest) (*domain.Document, error) {
	text, pages := chunker.NormalizeContent(req.Text, req.PageMap)
	if chunker.IsBlank(text) {
		return nil, domain.ErrEmptyDocument
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = "Untitled document"
	}

	now := time.Now().UTC()
	doc := &domain.Document{
		ID:        uuid.NewString(),
		Title:     title,
		PageCount: pageCount(pages),
		Status:    domain.DocumentStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.documentStore.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}
	if err := s.documentStore.SaveContent(ctx, &domain.DocumentContent{
		DocumentID: doc.ID,
		Text:       text,
		PageMap:    pages,
	}); err != nil {
		return nil, fmt.Errorf("save document content: %w", err)
	}

	if err := s.queue.Enqueue(ctx, domain.NewBuildIndexTask(doc.ID)); err != nil {
		return nil, fmt.Errorf("enqueue index build: %w", err)
	}

	s.logger.Info("document ingested",
		"document_id", doc.ID,
		"title", doc.Title,
		"pages", doc.PageCount,
		"chars", len(text))

	return doc, nil
}

// BuildIndex chunks, embeds, and indexes a document synchronously
func (s *indexingService) BuildIndex(ctx context.Context, documentID string) error {
	lockName := "build:" + documentID
	acquired, err := s.lock.Acquire(ctx, lockName, buildLockTTL)
	if err != nil {
		return fmt.Errorf("acquire build lock: %w", err)
	}
	if !acquired {
		return domain.ErrBuildInProgress
	}
	defer func() {
		if err := s.lock.Release(context.WithoutCancel(ctx), lockName); err != nil {
			s.logger.Warn("failed to release build lock", "document_id", documentID, "error", err)
		}
	}()

	doc, err := s.documentStore.Get(ctx, documentID)
	if err != nil {
		return fmt.Errorf("get document: %w", err)
	}

	if err := s.documentStore.UpdateStatus(ctx, documentID, domain.DocumentStatusIndexing, ""); err != nil {
		return fmt.Errorf("mark indexing: %w", err)
	}

	ix, chunkCount, err := s.build(ctx, documentID)
	if err != nil {
		if statusErr := s.documentStore.UpdateStatus(context.WithoutCancel(ctx), documentID, domain.DocumentStatusFailed, err.Error()); statusErr != nil {
			s.logger.Error("failed to record build failure", "document_id", documentID, "error", statusErr)
		}
		return err
	}

	snap, err := ix.Snapshot()
	if err != nil {
		return fmt.Errorf("snapshot index: %w", err)
	}
	if err := s.indexStore.SaveSnapshot(ctx, snap); err != nil {
		return fmt.Errorf("save index snapshot: %w", err)
	}

	// Publish after the snapshot is durable so a crash between the two
	// never leaves a served index that restarts cannot restore.
	s.registry.Publish(ix)

	doc.ChunkCount = chunkCount
	doc.UpdatedAt = time.Now().UTC()
	if err := s.documentStore.Save(ctx, doc); err != nil {
		return fmt.Errorf("save chunk count: %w", err)
	}
	if err := s.documentStore.UpdateStatus(ctx, documentID, domain.DocumentStatusIndexed, ""); err != nil {
		return fmt.Errorf("mark indexed: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateDocument(ctx, documentID); err != nil {
			s.logger.Warn("failed to invalidate answer cache", "document_id", documentID, "error", err)
		}
	}

	s.logger.Info("index built", "document_id", documentID, "chunks", chunkCount)
	return nil
}

// Reindex enqueues a fresh build for an existing document
func (s *indexingService) Reindex(ctx context.Context, documentID string) error {
	if _, err := s.documentStore.Get(ctx, documentID); err != nil {
		return fmt.Errorf("get document: %w", err)
	}
	if err := s.documentStore.UpdateStatus(ctx, documentID, domain.DocumentStatusPending, ""); err != nil {
		return fmt.Errorf("mark pending: %w", err)
	}
	if err := s.queue.Enqueue(ctx, domain.NewBuildIndexTask(documentID)); err != nil {
		return fmt.Errorf("enqueue index build: %w", err)
	}
	return nil
}

// DeleteIndex removes the in-memory index, the snapshot, and cached answers
func (s *indexingService) DeleteIndex(ctx context.Context, documentID string) error {
	s.registry.Remove(documentID)

	if err := s.indexStore.DeleteSnapshot(ctx, documentID); err != nil {
		return fmt.Errorf("delete index snapshot: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateDocument(ctx, documentID); err != nil {
			s.logger.Warn("failed to invalidate answer cache", "document_id", documentID, "error", err)
		}
	}

	return nil
}

// build chunks the content, embeds every chunk, and assembles the index
func (s *indexingService) build(ctx context.Context, documentID string) (*index.Index, int, error) {
	content, err := s.documentStore.GetContent(ctx, documentID)
	if err != nil {
		return nil, 0, fmt.Errorf("get document content: %w", err)
	}

	settings := s.retrievalSettings(ctx)
	chunks := chunker.New(chunker.Config{
		TargetSize: settings.ChunkTargetSize,
		Overlap:    settings.ChunkOverlap,
	}).Chunk(content)
	if len(chunks) == 0 {
		return nil, 0, domain.ErrEmptyDocument
	}

	if err := s.embedChunks(ctx, chunks); err != nil {
		return nil, 0, err
	}

	ix, err := index.Build(documentID, chunks)
	if err != nil {
		return nil, 0, fmt.Errorf("build index: %w", err)
	}
	return ix, len(chunks), nil
}

// embedChunks embeds chunk contents in batches. Builds run without
// embeddings when no embedding backend is configured, but a configured
// backend that keeps failing aborts the build.
func (s *indexingService) embedChunks(ctx context.Context, chunks []*domain.Chunk) error {
	embeddingService := s.services.EmbeddingService()
	if embeddingService == nil {
		s.logger.Info("no embedding service configured, building lexical-only index")
		return nil
	}

	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.Content
		}

		vectors, err := s.embedBatch(ctx, embeddingService, texts)
		if err != nil {
			return fmt.Errorf("embed chunks %d..%d: %w", start, end-1, err)
		}
		if len(vectors) != len(batch) {
			return fmt.Errorf("embed chunks %d..%d: got %d vectors for %d texts: %w",
				start, end-1, len(vectors), len(batch), domain.ErrEmbeddingUnavailable)
		}
		for i, vec := range vectors {
			batch[i].Embedding = vec
		}
	}
	return nil
}

func (s *indexingService) embedBatch(ctx context.Context, embeddingService driven.EmbeddingService, texts []string) ([][]float32, error) {
	var lastErr error
	for attempt := 1; attempt <= embedMaxAttempts; attempt++ {
		vectors, err := embeddingService.Embed(ctx, texts)
		if err == nil {
			return vectors, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, lastErr
		}
		s.logger.Warn("embedding batch failed",
			"attempt", attempt,
			"max_attempts", embedMaxAttempts,
			"error", err)
		if attempt < embedMaxAttempts {
			select {
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}

func (s *indexingService) retrievalSettings(ctx context.Context) *domain.RetrievalSettings {
	settings, err := s.settingsStore.GetRetrievalSettings(ctx)
	if err != nil {
		return domain.DefaultRetrievalSettings()
	}
	return settings
}

func pageCount(pages []domain.PageSpan) int {
	max := 1
	for _, span := range pages {
		if span.Page > max {
			max = span.Page
		}
	}
	if len(pages) == 0 {
		return 1
	}
	return max
}
