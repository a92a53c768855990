package memory

import (
	"context"
	"testing"
	"time"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
)

func sampleResult() *domain.AskResult {
	return &domain.AskResult{
		DocumentID: "doc-1",
		Answer: &domain.Answer{
			Text:     "Rent is due on the first of each month.",
			Grounded: true,
		},
	}
}

func TestAnswerCache_SetGet(t *testing.T) {
	cache := NewAnswerCache()
	ctx := context.Background()

	if err := cache.Set(ctx, "doc-1", "when is rent due", sampleResult(), time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := cache.Get(ctx, "doc-1", "when is rent due")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected cache hit")
	}
	if got.Answer.Text != "Rent is due on the first of each month." {
		t.Errorf("unexpected answer: %q", got.Answer.Text)
	}
}

func TestAnswerCache_Miss(t *testing.T) {
	cache := NewAnswerCache()

	got, err := cache.Get(context.Background(), "doc-1", "never asked")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected miss, got %+v", got)
	}
}

func TestAnswerCache_InvalidateDocument(t *testing.T) {
	cache := NewAnswerCache()
	ctx := context.Background()

	cache.Set(ctx, "doc-1", "question one", sampleResult(), time.Hour)
	cache.Set(ctx, "doc-1", "question two", sampleResult(), time.Hour)
	cache.Set(ctx, "doc-2", "question one", sampleResult(), time.Hour)

	if err := cache.InvalidateDocument(ctx, "doc-1"); err != nil {
		t.Fatalf("InvalidateDocument failed: %v", err)
	}

	if got, _ := cache.Get(ctx, "doc-1", "question one"); got != nil {
		t.Error("expected doc-1 entries to be invalidated")
	}
	if got, _ := cache.Get(ctx, "doc-1", "question two"); got != nil {
		t.Error("expected doc-1 entries to be invalidated")
	}
	if got, _ := cache.Get(ctx, "doc-2", "question one"); got == nil {
		t.Error("expected doc-2 entry to survive")
	}
}

func TestAnswerCache_ZeroTTLNotStored(t *testing.T) {
	cache := NewAnswerCache()
	ctx := context.Background()

	if err := cache.Set(ctx, "doc-1", "question", sampleResult(), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got, _ := cache.Get(ctx, "doc-1", "question"); got != nil {
		t.Error("expected zero-TTL entry to be dropped")
	}
}

func TestAnswerCache_Close(t *testing.T) {
	cache := NewAnswerCache()
	ctx := context.Background()

	cache.Set(ctx, "doc-1", "question", sampleResult(), time.Hour)

	if err := cache.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if got, _ := cache.Get(ctx, "doc-1", "question"); got != nil {
		t.Error("expected entries to be flushed on close")
	}
}
