// Package index provides the per-document retrieval index: dense vectors
// for semantic similarity and a TF-ICF lexical model for term matching.
// An Index is built once, then read-only and safe for concurrent searches.
package index

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
	"github.com/lexiqa-labs/lexiqa-core/internal/core/ports/driven"
)

// Hit is one scored chunk from a single scoring family
type Hit struct {
	Chunk *domain.Chunk
	Score float64
	Rank  int // 0-based rank within the family
}

// Index is an immutable retrieval index over one document's chunks
type Index struct {
	documentID string
	dim        int
	chunks     []*domain.Chunk
	vectors    [][]float32 // unit-normalized, nil entries when no embedding
	lexical    *lexicalModel
}

// Build constructs an index from chunks in document order.
// Chunk embeddings may be absent (lexical-only index); when present they
// must all share the same dimension.
func Build(documentID string, chunks []*domain.Chunk) (*Index, error) {
	if documentID == "" {
		return nil, fmt.Errorf("%w: document id is required", domain.ErrInvalidInput)
	}

	ix := &Index{
		documentID: documentID,
		chunks:     chunks,
		vectors:    make([][]float32, len(chunks)),
	}

	contents := make([]string, len(chunks))
	for i, chunk := range chunks {
		contents[i] = chunk.Content
		if len(chunk.Embedding) == 0 {
			continue
		}
		if ix.dim == 0 {
			ix.dim = len(chunk.Embedding)
		}
		if len(chunk.Embedding) != ix.dim {
			return nil, fmt.Errorf("%w: chunk %s embedding dimension %d, want %d",
				domain.ErrInvalidInput, chunk.ID, len(chunk.Embedding), ix.dim)
		}
		ix.vectors[i] = unitNormalize(chunk.Embedding)
	}

	ix.lexical = buildLexicalModel(contents)
	return ix, nil
}

// DocumentID returns the document this index covers
func (ix *Index) DocumentID() string {
	return ix.documentID
}

// Len returns the number of chunks in the index
func (ix *Index) Len() int {
	return len(ix.chunks)
}

// Dimensions returns the embedding dimension, 0 for a lexical-only index
func (ix *Index) Dimensions() int {
	return ix.dim
}

// HasEmbeddings returns true if dense search is possible
func (ix *Index) HasEmbeddings() bool {
	return ix.dim > 0
}

// Chunk returns the chunk at a position, nil when out of range
func (ix *Index) Chunk(position int) *domain.Chunk {
	if position < 0 || position >= len(ix.chunks) {
		return nil
	}
	return ix.chunks[position]
}

// SearchDense returns the top k chunks by cosine similarity to the query
// vector. Scores are in [-1, 1]; for typical embeddings effectively [0, 1].
func (ix *Index) SearchDense(queryVec []float32, k int) []Hit {
	if len(queryVec) == 0 || !ix.HasEmbeddings() || k <= 0 {
		return nil
	}
	q := unitNormalize(queryVec)

	hits := make([]Hit, 0, len(ix.chunks))
	for i, vec := range ix.vectors {
		if vec == nil {
			continue
		}
		hits = append(hits, Hit{Chunk: ix.chunks[i], Score: dot(q, vec)})
	}
	return topK(hits, k)
}

// SearchLexical returns the top k chunks by TF-ICF score for the query terms.
// Chunks with zero score are excluded.
func (ix *Index) SearchLexical(queryTerms []string, k int) []Hit {
	if len(queryTerms) == 0 || k <= 0 {
		return nil
	}

	hits := make([]Hit, 0, len(ix.chunks))
	for i, chunk := range ix.chunks {
		score := ix.lexical.score(i, queryTerms)
		if score <= 0 {
			continue
		}
		hits = append(hits, Hit{Chunk: chunk, Score: score})
	}
	return topK(hits, k)
}

// Snapshot serializes the index. Chunks keep their embeddings, so restoring
// never re-embeds.
func (ix *Index) Snapshot() (*driven.IndexSnapshot, error) {
	model, err := json.Marshal(ix.lexical)
	if err != nil {
		return nil, fmt.Errorf("marshal lexical model: %w", err)
	}
	return &driven.IndexSnapshot{
		DocumentID:   ix.documentID,
		EmbeddingDim: ix.dim,
		Chunks:       ix.chunks,
		LexicalModel: model,
	}, nil
}

// FromSnapshot restores an index from its serialized form.
// The stored lexical model is used as-is; vectors are re-normalized from the
// chunk embeddings carried in the snapshot.
func FromSnapshot(snap *driven.IndexSnapshot) (*Index, error) {
	if snap == nil {
		return nil, fmt.Errorf("%w: snapshot is nil", domain.ErrInvalidInput)
	}

	ix, err := Build(snap.DocumentID, snap.Chunks)
	if err != nil {
		return nil, err
	}

	if len(snap.LexicalModel) > 0 {
		var model lexicalModel
		if err := json.Unmarshal(snap.LexicalModel, &model); err != nil {
			return nil, fmt.Errorf("unmarshal lexical model: %w", err)
		}
		ix.lexical = &model
	}

	return ix, nil
}

// topK sorts hits by score descending, position ascending on ties, and
// truncates to k with ranks assigned.
func topK(hits []Hit, k int) []Hit {
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Chunk.Position < hits[j].Chunk.Position
	})
	if len(hits) > k {
		hits = hits[:k]
	}
	for i := range hits {
		hits[i].Rank = i
	}
	return hits
}

func unitNormalize(vec []float32) []float32 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return vec
	}
	out := make([]float32, len(vec))
	for i, v := range vec {
		out[i] = float32(float64(v) / norm)
	}
	return out
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
