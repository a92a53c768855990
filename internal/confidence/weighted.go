package confidence

import "github.com/lexiqa-labs/lexiqa-core/internal/core/domain"

// Per-factor weights for the linear combination. They sum to 1.0 so a
// perfect answer scores 1.0 before the complexity adjustment.
var weightedWeights = map[string]float64{
	FactorSimilarity:      0.40,
	FactorResultCount:     0.10,
	FactorLegalTerms:      0.05,
	FactorAnswerLength:    0.05,
	FactorCitationQuality: 0.20,
	FactorSourceDiversity: 0.05,
	FactorKeywordOverlap:  0.15,
}

// Complexity adjusts the linear score additively rather than as a weighted
// term: a short focused question earns a small boost, a sprawling one a
// small penalty.
const complexityAdjustment = 0.05

// Weighted combines the evidence factors linearly with fixed weights.
// It is the optimistic half of the ensemble.
type Weighted struct{}

func NewWeighted() *Weighted { return &Weighted{} }

func (w *Weighted) Name() domain.ConfidenceStrategy {
	return domain.ConfidenceStrategyWeighted
}

func (w *Weighted) Score(signals domain.ConfidenceSignals) float64 {
	factors := factorValues(signals)

	score := 0.0
	for name, weight := range weightedWeights {
		score += factors[name] * weight
	}

	switch signals.Complexity {
	case domain.ComplexitySimple:
		score += complexityAdjustment
	case domain.ComplexityComplex:
		score -= complexityAdjustment
	}

	return clamp01(score)
}
