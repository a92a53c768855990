package domain

import "time"

// DocumentStatus represents the indexing lifecycle of a document
type DocumentStatus string

const (
	DocumentStatusPending  DocumentStatus = "pending"
	DocumentStatusIndexing DocumentStatus = "indexing"
	DocumentStatusIndexed  DocumentStatus = "indexed"
	DocumentStatusFailed   DocumentStatus = "failed"
)

// Document represents an ingested document
type Document struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	PageCount  int            `json:"page_count"`
	ChunkCount int            `json:"chunk_count"`
	Status     DocumentStatus `json:"status"`
	Error      string         `json:"error,omitempty"` // Last build error, if Status is failed
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	IndexedAt  *time.Time     `json:"indexed_at,omitempty"`
}

// PageSpan maps a character range of the extracted text to a page number.
// Spans are non-overlapping and ordered by StartChar.
type PageSpan struct {
	Page      int `json:"page"`
	StartChar int `json:"start_char"`
	EndChar   int `json:"end_char"`
}

// DocumentContent holds the full extracted text of a document
type DocumentContent struct {
	DocumentID string     `json:"document_id"`
	Text       string     `json:"text"`
	PageMap    []PageSpan `json:"page_map,omitempty"`
}

// PageFor returns the page number for a character offset.
// Returns 1 when no page map is available.
func (c *DocumentContent) PageFor(offset int) int {
	for _, span := range c.PageMap {
		if offset >= span.StartChar && offset < span.EndChar {
			return span.Page
		}
	}
	if n := len(c.PageMap); n > 0 && offset >= c.PageMap[n-1].EndChar {
		return c.PageMap[n-1].Page
	}
	return 1
}

// Chunk represents a retrievable passage of a document.
// Chunks are immutable once the index is built.
type Chunk struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	Content    string    `json:"content"`
	PageNumber int       `json:"page_number"`
	Position   int       `json:"position"` // Chunk position within document
	StartChar  int       `json:"start_char"`
	EndChar    int       `json:"end_char"`
	Embedding  []float32 `json:"embedding,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// DocumentWithChunks combines a document with its chunks
type DocumentWithChunks struct {
	Document *Document `json:"document"`
	Chunks   []*Chunk  `json:"chunks"`
}
