// Package retriever fuses dense and lexical search over a document index
// into a single ranking, with optional cross-encoder reranking.
package retriever

import (
	"context"
	"log/slog"
	"sort"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
	"github.com/lexiqa-labs/lexiqa-core/internal/core/ports/driven"
	"github.com/lexiqa-labs/lexiqa-core/internal/index"
)

// overFetchFactor is how many times TopK each family contributes before fusion
const overFetchFactor = 3

// Request is one retrieval pass over a document index
type Request struct {
	Index    *index.Index
	Question *domain.Question

	// QueryVec is the embedded question. Nil means lexical-only retrieval.
	QueryVec []float32

	TopK          int
	DenseWeight   float64
	LexicalWeight float64

	// Reranker rescoring is applied when non-nil. A reranker failure falls
	// back to the fused ranking rather than failing the request.
	Reranker driven.Reranker
}

// candidate accumulates both families' raw scores for one chunk
type candidate struct {
	chunk     *domain.Chunk
	dense     float64
	lexical   float64
	hasDense  bool
	hasLex    bool
	denseRank int // rank within the dense family, used for stable tie-breaks
}

// Retrieve runs hybrid retrieval: over-fetch from each family, normalize
// per family, fuse, optionally rerank, truncate to TopK.
func Retrieve(ctx context.Context, req Request) (*domain.Retrieval, error) {
	if req.Index == nil {
		return nil, domain.ErrIndexNotReady
	}

	k := req.TopK
	if k <= 0 {
		k = domain.DefaultRetrievalOptions().TopK
	}
	fetch := k * overFetchFactor

	dense := req.Index.SearchDense(req.QueryVec, fetch)
	lexical := req.Index.SearchLexical(index.Tokenize(req.Question.Normalized), fetch)

	mode := domain.RetrievalModeHybrid
	degraded := false
	if len(req.QueryVec) == 0 || !req.Index.HasEmbeddings() {
		mode = domain.RetrievalModeLexicalOnly
		degraded = true
	}

	candidates := merge(dense, lexical)
	if len(candidates) == 0 {
		return &domain.Retrieval{Mode: mode, Results: []*domain.RetrievalResult{}, Degraded: degraded}, nil
	}

	results := fuse(candidates, req.DenseWeight, req.LexicalWeight)

	if req.Reranker != nil {
		if err := rerank(ctx, req.Reranker, req.Question, results, candidates); err != nil {
			slog.Warn("rerank failed, keeping fused ranking", "error", err)
		}
	}

	sortResults(results, candidates)
	if len(results) > k {
		results = results[:k]
	}

	return &domain.Retrieval{Mode: mode, Results: results, Degraded: degraded}, nil
}

// merge unions both families' hits keyed by chunk ID
func merge(dense, lexical []index.Hit) map[string]*candidate {
	candidates := make(map[string]*candidate, len(dense)+len(lexical))
	for _, hit := range dense {
		candidates[hit.Chunk.ID] = &candidate{
			chunk:     hit.Chunk,
			dense:     hit.Score,
			hasDense:  true,
			denseRank: hit.Rank,
		}
	}
	for _, hit := range lexical {
		c, ok := candidates[hit.Chunk.ID]
		if !ok {
			c = &candidate{chunk: hit.Chunk, denseRank: len(dense)}
			candidates[hit.Chunk.ID] = c
		}
		c.lexical = hit.Score
		c.hasLex = true
	}
	return candidates
}

// fuse min-max normalizes each family over the candidate set and combines
// them with the configured weights. A family with no hits at all forfeits
// its weight to the other, so lexical-only retrieval still spans [0, 1].
func fuse(candidates map[string]*candidate, denseWeight, lexicalWeight float64) []*domain.RetrievalResult {
	if denseWeight <= 0 && lexicalWeight <= 0 {
		denseWeight = 0.7
		lexicalWeight = 0.3
	}

	var anyDense, anyLex bool
	for _, c := range candidates {
		anyDense = anyDense || c.hasDense
		anyLex = anyLex || c.hasLex
	}
	if !anyDense {
		denseWeight = 0
	}
	if !anyLex {
		lexicalWeight = 0
	}
	if denseWeight <= 0 && lexicalWeight <= 0 {
		denseWeight, lexicalWeight = 1, 1
	}

	total := denseWeight + lexicalWeight
	denseWeight /= total
	lexicalWeight /= total

	denseMin, denseMax := familyRange(candidates, func(c *candidate) (float64, bool) { return c.dense, c.hasDense })
	lexMin, lexMax := familyRange(candidates, func(c *candidate) (float64, bool) { return c.lexical, c.hasLex })

	results := make([]*domain.RetrievalResult, 0, len(candidates))
	for _, c := range candidates {
		var denseNorm, lexNorm float64
		if c.hasDense {
			denseNorm = normalize(c.dense, denseMin, denseMax)
		}
		if c.hasLex {
			lexNorm = normalize(c.lexical, lexMin, lexMax)
		}
		results = append(results, &domain.RetrievalResult{
			Chunk:        c.chunk,
			DenseScore:   denseNorm,
			LexicalScore: lexNorm,
			FusedScore:   denseWeight*denseNorm + lexicalWeight*lexNorm,
		})
	}
	return results
}

func familyRange(candidates map[string]*candidate, get func(*candidate) (float64, bool)) (min, max float64) {
	first := true
	for _, c := range candidates {
		v, ok := get(c)
		if !ok {
			continue
		}
		if first {
			min, max = v, v
			first = false
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// normalize maps a raw score into [0, 1]. A degenerate family where every
// candidate scored the same maps to 1.
func normalize(v, min, max float64) float64 {
	if max <= min {
		return 1
	}
	return (v - min) / (max - min)
}

// rerank rescoring replaces the ranking key with the cross-encoder score
func rerank(ctx context.Context, reranker driven.Reranker, question *domain.Question, results []*domain.RetrievalResult, candidates map[string]*candidate) error {
	passages := make([]driven.RerankCandidate, len(results))
	for i, r := range results {
		passages[i] = driven.RerankCandidate{ChunkID: r.Chunk.ID, Content: r.Chunk.Content}
	}

	scores, err := reranker.Rerank(ctx, question, passages)
	if err != nil {
		return err
	}

	byID := make(map[string]float64, len(scores))
	for _, s := range scores {
		byID[s.ChunkID] = s.Score
	}
	for _, r := range results {
		score, ok := byID[r.Chunk.ID]
		if !ok {
			continue
		}
		r.RerankScore = score
		r.Reranked = true
	}
	return nil
}

// sortResults orders by the effective score descending. Ties break by dense
// family rank ascending, then by chunk position, so ordering is stable.
func sortResults(results []*domain.RetrievalResult, candidates map[string]*candidate) {
	sort.SliceStable(results, func(i, j int) bool {
		si, sj := results[i].Score(), results[j].Score()
		if si != sj {
			return si > sj
		}
		ri, rj := candidates[results[i].Chunk.ID].denseRank, candidates[results[j].Chunk.ID].denseRank
		if ri != rj {
			return ri < rj
		}
		return results[i].Chunk.Position < results[j].Chunk.Position
	})
}
