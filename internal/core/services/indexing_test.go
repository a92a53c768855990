package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
	"github.com/lexiqa-labs/lexiqa-core/internal/core/ports/driving"
)

func TestIndexingService_Ingest(t *testing.T) {
	env := newTestEnv()

	doc, err := env.indexing.Ingest(context.Background(), driving.IngestRequest{
		Title: "Master Services Agreement",
		Text:  leaseText,
		PageMap: []domain.PageSpan{
			{Page: 1, StartChar: 0, EndChar: 80},
			{Page: 2, StartChar: 80, EndChar: len(leaseText)},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ID == "" {
		t.Error("expected a generated document ID")
	}
	if doc.Status != domain.DocumentStatusPending {
		t.Errorf("expected pending status, got %s", doc.Status)
	}
	if doc.PageCount != 2 {
		t.Errorf("expected 2 pages, got %d", doc.PageCount)
	}

	content, err := env.documentStore.GetContent(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("content not saved: %v", err)
	}
	if content.Text == "" {
		t.Error("expected saved content text")
	}

	if env.queue.PendingLen() != 1 {
		t.Errorf("expected 1 enqueued task, got %d", env.queue.PendingLen())
	}
}

func TestIndexingService_Ingest_EmptyDocument(t *testing.T) {
	env := newTestEnv()

	for _, text := range []string{"", "   ", "\n\t \n"} {
		_, err := env.indexing.Ingest(context.Background(), driving.IngestRequest{Title: "Empty", Text: text})
		if !errors.Is(err, domain.ErrEmptyDocument) {
			t.Errorf("text %q: expected ErrEmptyDocument, got %v", text, err)
		}
	}
	if env.queue.PendingLen() != 0 {
		t.Error("no task should be enqueued for an empty document")
	}
}

func TestIndexingService_Ingest_UntitledDefault(t *testing.T) {
	env := newTestEnv()

	doc, err := env.indexing.Ingest(context.Background(), driving.IngestRequest{Title: "  ", Text: leaseText})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "Untitled document" {
		t.Errorf("expected default title, got %q", doc.Title)
	}
}

func TestIndexingService_BuildIndex(t *testing.T) {
	env := newTestEnv()
	doc, err := env.indexing.Ingest(context.Background(), driving.IngestRequest{Title: "Lease", Text: leaseText})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}

	if err := env.indexing.BuildIndex(context.Background(), doc.ID); err != nil {
		t.Fatalf("build: %v", err)
	}

	updated, err := env.documentStore.Get(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if updated.Status != domain.DocumentStatusIndexed {
		t.Errorf("expected indexed status, got %s", updated.Status)
	}
	if updated.ChunkCount == 0 {
		t.Error("expected a recorded chunk count")
	}

	if !env.indexStore.HasSnapshot(doc.ID) {
		t.Error("expected a persisted snapshot")
	}
	ix, ok := env.registry.Get(doc.ID)
	if !ok {
		t.Fatal("expected the index to be published")
	}
	if !ix.HasEmbeddings() {
		t.Error("expected an embedded index")
	}
	if env.embedding.EmbedCalls == 0 {
		t.Error("expected chunk embedding calls")
	}
}

func TestIndexingService_BuildIndex_InvalidatesCache(t *testing.T) {
	env := newTestEnv()
	docID := env.ingestAndBuild(t, "Lease", leaseText)

	if _, err := env.qa.Ask(context.Background(), docID, "How many days notice must the tenant provide?", driving.AskOptions{}); err != nil {
		t.Fatalf("ask: %v", err)
	}
	if env.cache.Len() == 0 {
		t.Fatal("expected a cached answer")
	}

	if err := env.indexing.BuildIndex(context.Background(), docID); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if env.cache.Len() != 0 {
		t.Error("rebuild must invalidate cached answers")
	}
}

func TestIndexingService_BuildIndex_Concurrent(t *testing.T) {
	env := newTestEnv()
	doc, err := env.indexing.Ingest(context.Background(), driving.IngestRequest{Title: "Lease", Text: leaseText})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}

	env.lock.SetLockHeld("build:"+doc.ID, time.Minute)

	if err := env.indexing.BuildIndex(context.Background(), doc.ID); !errors.Is(err, domain.ErrBuildInProgress) {
		t.Errorf("expected ErrBuildInProgress, got %v", err)
	}
}

func TestIndexingService_BuildIndex_ReleasesLock(t *testing.T) {
	env := newTestEnv()
	doc, err := env.indexing.Ingest(context.Background(), driving.IngestRequest{Title: "Lease", Text: leaseText})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}

	if err := env.indexing.BuildIndex(context.Background(), doc.ID); err != nil {
		t.Fatalf("build: %v", err)
	}
	if env.lock.IsHeld("build:" + doc.ID) {
		t.Error("expected the build lock to be released")
	}
}

func TestIndexingService_BuildIndex_EmbeddingFailure(t *testing.T) {
	env := newTestEnv()
	doc, err := env.indexing.Ingest(context.Background(), driving.IngestRequest{Title: "Lease", Text: leaseText})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}

	env.embedding.SetFailing(true)

	err = env.indexing.BuildIndex(context.Background(), doc.ID)
	if !errors.Is(err, domain.ErrEmbeddingUnavailable) {
		t.Fatalf("expected ErrEmbeddingUnavailable, got %v", err)
	}
	if env.embedding.EmbedCalls != embedMaxAttempts {
		t.Errorf("expected %d embed attempts, got %d", embedMaxAttempts, env.embedding.EmbedCalls)
	}

	updated, err := env.documentStore.Get(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if updated.Status != domain.DocumentStatusFailed {
		t.Errorf("expected failed status, got %s", updated.Status)
	}
	if !strings.Contains(updated.Error, "embedding") {
		t.Errorf("expected the build error to be recorded, got %q", updated.Error)
	}
	if env.indexStore.HasSnapshot(doc.ID) {
		t.Error("a failed build must not persist a snapshot")
	}
	if env.lock.IsHeld("build:" + doc.ID) {
		t.Error("expected the build lock to be released after a failure")
	}
}

func TestIndexingService_BuildIndex_LexicalOnly(t *testing.T) {
	env := newTestEnv()
	env.services.SetEmbeddingService(nil)

	doc, err := env.indexing.Ingest(context.Background(), driving.IngestRequest{Title: "Lease", Text: leaseText})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if err := env.indexing.BuildIndex(context.Background(), doc.ID); err != nil {
		t.Fatalf("build without embedding backend must succeed: %v", err)
	}

	ix, ok := env.registry.Get(doc.ID)
	if !ok {
		t.Fatal("expected the index to be published")
	}
	if ix.HasEmbeddings() {
		t.Error("expected a lexical-only index")
	}
}

func TestIndexingService_Reindex(t *testing.T) {
	env := newTestEnv()
	docID := env.ingestAndBuild(t, "Lease", leaseText)
	pendingBefore := env.queue.PendingLen()

	if err := env.indexing.Reindex(context.Background(), docID); err != nil {
		t.Fatalf("reindex: %v", err)
	}

	doc, err := env.documentStore.Get(context.Background(), docID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if doc.Status != domain.DocumentStatusPending {
		t.Errorf("expected pending status, got %s", doc.Status)
	}
	if env.queue.PendingLen() != pendingBefore+1 {
		t.Error("expected a new build task")
	}

	if err := env.indexing.Reindex(context.Background(), "no-such-doc"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestIndexingService_DeleteIndex(t *testing.T) {
	env := newTestEnv()
	docID := env.ingestAndBuild(t, "Lease", leaseText)

	if _, err := env.qa.Ask(context.Background(), docID, "How many days notice must the tenant provide?", driving.AskOptions{}); err != nil {
		t.Fatalf("ask: %v", err)
	}

	if err := env.indexing.DeleteIndex(context.Background(), docID); err != nil {
		t.Fatalf("delete index: %v", err)
	}
	if _, ok := env.registry.Get(docID); ok {
		t.Error("expected the index to be removed from the registry")
	}
	if env.indexStore.HasSnapshot(docID) {
		t.Error("expected the snapshot to be deleted")
	}
	if env.cache.Len() != 0 {
		t.Error("expected cached answers to be invalidated")
	}
}
