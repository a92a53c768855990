package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
)

func setupTestRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return client, func() {
		client.Close()
		mr.Close()
	}
}

func sampleResult(docID string) *domain.AskResult {
	return &domain.AskResult{
		DocumentID: docID,
		Answer: &domain.Answer{
			Text:     "The notice period is sixty days.",
			Grounded: true,
		},
		Took: 40 * time.Millisecond,
	}
}

func TestAnswerCache_SetGet(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewAnswerCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "doc-1", "what is the notice period", sampleResult("doc-1"), time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := cache.Get(ctx, "doc-1", "what is the notice period")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected cache hit")
	}
	if got.Answer == nil || got.Answer.Text != "The notice period is sixty days." {
		t.Errorf("unexpected cached answer: %+v", got.Answer)
	}
	if !got.Answer.Grounded {
		t.Error("expected grounded flag to survive the round trip")
	}
}

func TestAnswerCache_Miss(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewAnswerCache(client)
	ctx := context.Background()

	got, err := cache.Get(ctx, "doc-1", "never asked")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected miss, got %+v", got)
	}
}

func TestAnswerCache_KeysAreScoped(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewAnswerCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "doc-1", "what is the notice period", sampleResult("doc-1"), time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Same question against a different document must miss
	got, err := cache.Get(ctx, "doc-2", "what is the notice period")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Error("expected miss for a different document")
	}

	// Different question against the same document must miss
	got, err = cache.Get(ctx, "doc-1", "what is the rent")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Error("expected miss for a different question")
	}
}

func TestAnswerCache_InvalidateDocument(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewAnswerCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "doc-1", "question one", sampleResult("doc-1"), time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := cache.Set(ctx, "doc-1", "question two", sampleResult("doc-1"), time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := cache.Set(ctx, "doc-2", "question one", sampleResult("doc-2"), time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if err := cache.InvalidateDocument(ctx, "doc-1"); err != nil {
		t.Fatalf("InvalidateDocument failed: %v", err)
	}

	for _, q := range []string{"question one", "question two"} {
		got, err := cache.Get(ctx, "doc-1", q)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got != nil {
			t.Errorf("expected %q to be invalidated", q)
		}
	}

	// Other documents are untouched
	got, err := cache.Get(ctx, "doc-2", "question one")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Error("expected doc-2 entry to survive invalidation of doc-1")
	}
}

func TestAnswerCache_InvalidateUnknownDocument(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewAnswerCache(client)

	if err := cache.InvalidateDocument(context.Background(), "no-such-doc"); err != nil {
		t.Errorf("expected no error for unknown document, got %v", err)
	}
}

func TestAnswerCache_Ping(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewAnswerCache(client)

	if err := cache.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}
