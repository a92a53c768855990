package confidence

import "github.com/lexiqa-labs/lexiqa-core/internal/core/domain"

// Priors express how strongly each kind of evidence, when fully present,
// indicates a grounded answer. A prior of 0.5 makes the factor inert.
var bayesianPriors = map[string]float64{
	FactorSimilarity:      0.70,
	FactorResultCount:     0.60,
	FactorLegalTerms:      0.80,
	FactorCitationQuality: 0.75,
	FactorComplexity:      0.50,
}

// Evidence order is fixed so the sequential update is deterministic
var bayesianFactors = []string{
	FactorSimilarity,
	FactorResultCount,
	FactorLegalTerms,
	FactorCitationQuality,
	FactorComplexity,
}

// Bayesian treats each factor as independent evidence updating a prior
// belief that the answer is grounded. Weak evidence pulls the belief below
// the starting point, which makes this the conservative half of the
// ensemble on ambiguous answers.
type Bayesian struct{}

func NewBayesian() *Bayesian { return &Bayesian{} }

func (b *Bayesian) Name() domain.ConfidenceStrategy {
	return domain.ConfidenceStrategyBayesian
}

func (b *Bayesian) Score(signals domain.ConfidenceSignals) float64 {
	factors := factorValues(signals)
	likelihoods := b.likelihoods(signals, factors)

	// Sequential update from an uninformed starting belief. Each factor's
	// likelihood is tempered by its prior so that even perfect evidence of
	// a weakly indicative kind moves the belief only modestly.
	belief := 0.5
	for _, name := range bayesianFactors {
		lik := likelihoods[name]
		prior := bayesianPriors[name]
		tempered := lik*prior + (1-lik)*(1-prior)

		numerator := belief * tempered
		denominator := numerator + (1-belief)*(1-tempered)
		if denominator == 0 {
			continue
		}
		belief = numerator / denominator
	}

	return clamp01(belief)
}

// likelihoods maps signals to P(evidence | grounded) per factor
func (b *Bayesian) likelihoods(signals domain.ConfidenceSignals, factors map[string]float64) map[string]float64 {
	legal := 0.5 // absence of legal vocabulary is neutral, not negative
	if signals.HasLegalTerms {
		legal = 1.0
	}
	return map[string]float64{
		FactorSimilarity:      factors[FactorSimilarity],
		FactorResultCount:     factors[FactorResultCount],
		FactorLegalTerms:      legal,
		FactorCitationQuality: factors[FactorCitationQuality],
		FactorComplexity:      complexityLikelihood(signals.Complexity),
	}
}

func complexityLikelihood(c domain.QuestionComplexity) float64 {
	switch c {
	case domain.ComplexitySimple:
		return 0.9
	case domain.ComplexityComplex:
		return 0.6
	default:
		return 0.8
	}
}
