package domain

// RetrievalMode determines which scoring families contribute to ranking
type RetrievalMode string

const (
	RetrievalModeHybrid      RetrievalMode = "hybrid"  // dense + lexical (default)
	RetrievalModeLexicalOnly RetrievalMode = "lexical" // lexical only (degraded)
	RetrievalModeDenseOnly   RetrievalMode = "dense"   // dense only
)

// RetrievalOptions configures a retrieval request
type RetrievalOptions struct {
	Mode   RetrievalMode `json:"mode"`
	TopK   int           `json:"top_k"`
	Rerank bool          `json:"rerank"`
}

// DefaultRetrievalOptions returns sensible defaults
func DefaultRetrievalOptions() RetrievalOptions {
	return RetrievalOptions{
		Mode: RetrievalModeHybrid,
		TopK: 10,
	}
}

// RetrievalResult represents one ranked chunk with its score breakdown.
// DenseScore and LexicalScore are the normalized per-family scores, FusedScore
// is the weighted combination. When reranking ran, RerankScore is the final
// ranking key and Reranked is true.
type RetrievalResult struct {
	Chunk        *Chunk  `json:"chunk"`
	DenseScore   float64 `json:"dense_score"`
	LexicalScore float64 `json:"lexical_score"`
	FusedScore   float64 `json:"fused_score"`
	RerankScore  float64 `json:"rerank_score,omitempty"`
	Reranked     bool    `json:"reranked,omitempty"`
}

// Score returns the effective ranking score for this result
func (r *RetrievalResult) Score() float64 {
	if r.Reranked {
		return r.RerankScore
	}
	return r.FusedScore
}

// Retrieval is the outcome of a retrieval pass over a document index
type Retrieval struct {
	Mode     RetrievalMode      `json:"mode"`
	Results  []*RetrievalResult `json:"results"`
	Degraded bool               `json:"degraded"` // True when hybrid fell back to lexical-only
}

// RequiresEmbedding returns true if the given mode needs a query embedding
func (m RetrievalMode) RequiresEmbedding() bool {
	return m == RetrievalModeHybrid || m == RetrievalModeDenseOnly
}
