// Package confidence scores how reliable a synthesized answer is.
// Scoring is pure: identical signals always produce identical results.
package confidence

import (
	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
)

// Algorithm scores answer reliability from raw signals, in [0,1]
type Algorithm interface {
	Name() domain.ConfidenceStrategy
	Score(signals domain.ConfidenceSignals) float64
}

// ForStrategy returns the algorithm for the given strategy.
// Unknown strategies get the ensemble, the production default.
func ForStrategy(strategy domain.ConfidenceStrategy) Algorithm {
	switch strategy {
	case domain.ConfidenceStrategyWeighted:
		return NewWeighted()
	case domain.ConfidenceStrategyBayesian:
		return NewBayesian()
	default:
		return NewEnsemble()
	}
}

// Factor names, used as keys in the result breakdown
const (
	FactorSimilarity      = "similarity"
	FactorResultCount     = "result_count"
	FactorComplexity      = "complexity"
	FactorLegalTerms      = "legal_terms"
	FactorAnswerLength    = "answer_length"
	FactorCitationQuality = "citation_quality"
	FactorSourceDiversity = "source_diversity"
	FactorKeywordOverlap  = "keyword_overlap"
)

// factorValues normalizes every signal to [0,1] so the algorithms and the
// strengths/weaknesses breakdown work from the same view of the evidence.
func factorValues(s domain.ConfidenceSignals) map[string]float64 {
	legal := 0.0
	if s.HasLegalTerms {
		legal = 1.0
	}
	return map[string]float64{
		FactorSimilarity:      clamp01(s.TopSimilarity),
		FactorResultCount:     clamp01(float64(s.ResultCount) / 5),
		FactorComplexity:      complexityFactor(s.Complexity),
		FactorLegalTerms:      legal,
		FactorAnswerLength:    lengthFactor(s.AnswerLength),
		FactorCitationQuality: clamp01(s.AvgCitationScore),
		FactorSourceDiversity: clamp01(float64(s.DistinctPages) / 3),
		FactorKeywordOverlap:  clamp01(s.KeywordOverlap),
	}
}

func complexityFactor(c domain.QuestionComplexity) float64 {
	switch c {
	case domain.ComplexitySimple:
		return 1.0
	case domain.ComplexityComplex:
		return 0.70
	default:
		return 0.85
	}
}

// lengthFactor favours answers in a readable range. Very short answers
// rarely carry enough context, very long ones drift off the question.
func lengthFactor(chars int) float64 {
	switch {
	case chars < 50:
		return 0.60
	case chars < 100:
		return 0.80
	case chars < 300:
		return 1.00
	case chars < 500:
		return 0.90
	default:
		return 0.70
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
