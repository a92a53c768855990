package domain

// ConfidenceStrategy selects the scoring algorithm
type ConfidenceStrategy string

const (
	ConfidenceStrategyWeighted ConfidenceStrategy = "weighted"
	ConfidenceStrategyBayesian ConfidenceStrategy = "bayesian"
	ConfidenceStrategyEnsemble ConfidenceStrategy = "ensemble"
)

// IsValid returns true if this is a known strategy
func (s ConfidenceStrategy) IsValid() bool {
	switch s {
	case ConfidenceStrategyWeighted, ConfidenceStrategyBayesian, ConfidenceStrategyEnsemble:
		return true
	default:
		return false
	}
}

// ConfidenceLevel buckets the numeric score for display
type ConfidenceLevel string

const (
	ConfidenceVeryHigh ConfidenceLevel = "very_high" // >= 0.90
	ConfidenceHigh     ConfidenceLevel = "high"      // >= 0.75
	ConfidenceMedium   ConfidenceLevel = "medium"    // >= 0.60
	ConfidenceLow      ConfidenceLevel = "low"       // >= 0.40
	ConfidenceVeryLow  ConfidenceLevel = "very_low"
)

// LevelForScore maps a 0..1 score to its confidence level
func LevelForScore(score float64) ConfidenceLevel {
	switch {
	case score >= 0.90:
		return ConfidenceVeryHigh
	case score >= 0.75:
		return ConfidenceHigh
	case score >= 0.60:
		return ConfidenceMedium
	case score >= 0.40:
		return ConfidenceLow
	default:
		return ConfidenceVeryLow
	}
}

// ConfidenceSignals are the raw inputs to confidence scoring, gathered from
// the question, the retrieval, and the synthesized answer.
type ConfidenceSignals struct {
	TopSimilarity     float64            // Best retrieval score (0..1)
	AvgSimilarity     float64            // Mean retrieval score (0..1)
	ResultCount       int                // Retrieved chunks above threshold
	Complexity        QuestionComplexity // Question complexity bucket
	HasLegalTerms     bool               // Question contains domain vocabulary
	AnswerLength      int                // Characters in the answer text
	CitationCount     int                // Citations attached to the answer
	AvgCitationScore  float64            // Mean citation relevance (0..1)
	DistinctPages     int                // Pages the citations span
	KeywordOverlap    float64            // Question terms found in the answer (0..1)
	Grounded          bool               // Whether the answer is grounded
	RetrievalDegraded bool               // Retrieval ran lexical-only
}

// ConfidenceResult is the deterministic output of confidence scoring
type ConfidenceResult struct {
	Score          float64            `json:"score"`
	Level          ConfidenceLevel    `json:"level"`
	Strategy       ConfidenceStrategy `json:"strategy"`
	Recommendation string             `json:"recommendation"`
	Factors        map[string]float64 `json:"factors"`
	Strengths      []string           `json:"strengths"`
	Weaknesses     []string           `json:"weaknesses"`
}
