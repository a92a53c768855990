package confidence

import "github.com/lexiqa-labs/lexiqa-core/internal/core/domain"

// Ensemble averages the weighted and Bayesian scores. The default
// production strategy: the optimism of one offsets the caution of the
// other.
type Ensemble struct {
	weighted *Weighted
	bayesian *Bayesian
}

func NewEnsemble() *Ensemble {
	return &Ensemble{
		weighted: NewWeighted(),
		bayesian: NewBayesian(),
	}
}

func (e *Ensemble) Name() domain.ConfidenceStrategy {
	return domain.ConfidenceStrategyEnsemble
}

func (e *Ensemble) Score(signals domain.ConfidenceSignals) float64 {
	return (e.weighted.Score(signals) + e.bayesian.Score(signals)) / 2
}
