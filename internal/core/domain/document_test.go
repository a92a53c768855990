package domain

import (
	"testing"
	"time"
)

func TestDocumentStatusConstants(t *testing.T) {
	tests := []struct {
		status   DocumentStatus
		expected string
	}{
		{DocumentStatusPending, "pending"},
		{DocumentStatusIndexing, "indexing"},
		{DocumentStatusIndexed, "indexed"},
		{DocumentStatusFailed, "failed"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if string(tt.status) != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, string(tt.status))
			}
		})
	}
}

func TestDocument(t *testing.T) {
	now := time.Now()
	doc := &Document{
		ID:        "doc-123",
		Title:     "Commercial Lease Agreement",
		PageCount: 12,
		Status:    DocumentStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if doc.ID != "doc-123" {
		t.Errorf("expected ID doc-123, got %s", doc.ID)
	}
	if doc.Status != DocumentStatusPending {
		t.Errorf("expected status pending, got %s", doc.Status)
	}
	if doc.IndexedAt != nil {
		t.Error("expected IndexedAt to be nil before indexing")
	}
}

func TestDocumentContentPageFor(t *testing.T) {
	content := &DocumentContent{
		DocumentID: "doc-123",
		Text:       "some extracted text",
		PageMap: []PageSpan{
			{Page: 1, StartChar: 0, EndChar: 100},
			{Page: 2, StartChar: 100, EndChar: 250},
			{Page: 3, StartChar: 250, EndChar: 400},
		},
	}

	tests := []struct {
		name   string
		offset int
		page   int
	}{
		{"start of first page", 0, 1},
		{"middle of first page", 50, 1},
		{"boundary goes to next page", 100, 2},
		{"middle of second page", 175, 2},
		{"last page", 300, 3},
		{"past the last span", 500, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := content.PageFor(tt.offset); got != tt.page {
				t.Errorf("PageFor(%d): expected page %d, got %d", tt.offset, tt.page, got)
			}
		})
	}
}

func TestDocumentContentPageForNoPageMap(t *testing.T) {
	content := &DocumentContent{
		DocumentID: "doc-123",
		Text:       "plain text with no page boundaries",
	}

	if got := content.PageFor(0); got != 1 {
		t.Errorf("expected page 1 without a page map, got %d", got)
	}
	if got := content.PageFor(9999); got != 1 {
		t.Errorf("expected page 1 without a page map, got %d", got)
	}
}

func TestChunk(t *testing.T) {
	chunk := &Chunk{
		ID:         "chunk-1",
		DocumentID: "doc-123",
		Content:    "The tenant shall pay rent on the first of each month.",
		PageNumber: 3,
		Position:   7,
		StartChar:  1200,
		EndChar:    1253,
		CreatedAt:  time.Now(),
	}

	if chunk.DocumentID != "doc-123" {
		t.Errorf("expected DocumentID doc-123, got %s", chunk.DocumentID)
	}
	if chunk.EndChar-chunk.StartChar != len(chunk.Content) {
		t.Errorf("expected char range to match content length %d, got %d",
			len(chunk.Content), chunk.EndChar-chunk.StartChar)
	}
	if chunk.Embedding != nil {
		t.Error("expected no embedding before index build")
	}
}
