package confidence

import (
	"math"
	"sort"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
)

const (
	// degradedPenalty is subtracted when retrieval ran without embeddings
	degradedPenalty = 0.10

	// ungroundedCeiling caps the score of not-specified answers so they
	// always land in the very_low level
	ungroundedCeiling = 0.35

	maxHighlights = 3
)

var levelRecommendations = map[domain.ConfidenceLevel]string{
	domain.ConfidenceVeryHigh: "Excellent confidence. The answer is strongly supported by the document.",
	domain.ConfidenceHigh:     "High confidence. The answer is well grounded in the cited passages.",
	domain.ConfidenceMedium:   "Good confidence. Review the cited passages before relying on the answer.",
	domain.ConfidenceLow:      "Low confidence. The answer may be incomplete or uncertain.",
	domain.ConfidenceVeryLow:  "Very low confidence. Consult a professional for confirmation.",
}

var strengthMessages = map[string]string{
	FactorSimilarity:      "High semantic similarity between question and passages",
	FactorResultCount:     "Multiple relevant passages found",
	FactorComplexity:      "Simple, focused question",
	FactorLegalTerms:      "Question uses recognizable legal terminology",
	FactorAnswerLength:    "Answer length in the readable range",
	FactorCitationQuality: "High quality citations",
	FactorSourceDiversity: "Citations span multiple pages",
	FactorKeywordOverlap:  "Answer covers the question terms",
}

var weaknessMessages = map[string]string{
	FactorSimilarity:      "Low semantic similarity between question and passages",
	FactorResultCount:     "Limited source material",
	FactorComplexity:      "Complex, multi-part question",
	FactorLegalTerms:      "No legal terminology detected in the question",
	FactorAnswerLength:    "Answer may be too brief or too verbose",
	FactorCitationQuality: "Low quality citations",
	FactorSourceDiversity: "Citations drawn from a single page",
	FactorKeywordOverlap:  "Answer covers few of the question terms",
}

// Analyzer produces the full confidence result: score, level, factor
// breakdown and human-readable strengths and weaknesses.
type Analyzer struct {
	algorithm Algorithm
}

func NewAnalyzer(algorithm Algorithm) *Analyzer {
	if algorithm == nil {
		algorithm = NewEnsemble()
	}
	return &Analyzer{algorithm: algorithm}
}

// Analyze scores the signals and assembles the result. Ungrounded answers
// are capped below the low threshold regardless of what the raw signals
// suggest; a system that found nothing must never sound confident.
func (a *Analyzer) Analyze(signals domain.ConfidenceSignals) *domain.ConfidenceResult {
	score := a.algorithm.Score(signals)

	if signals.RetrievalDegraded {
		score -= degradedPenalty
	}
	if !signals.Grounded {
		score = math.Min(score, ungroundedCeiling)
	}
	score = round4(clamp01(score))

	level := domain.LevelForScore(score)
	factors := factorValues(signals)
	strengths, weaknesses := highlights(factors)

	return &domain.ConfidenceResult{
		Score:          score,
		Level:          level,
		Strategy:       a.algorithm.Name(),
		Recommendation: levelRecommendations[level],
		Factors:        factors,
		Strengths:      strengths,
		Weaknesses:     weaknesses,
	}
}

// highlights picks the strongest factors (>= 0.75) as strengths and the
// weakest (< 0.50) as weaknesses, at most three of each. Ties break on the
// factor name for determinism.
func highlights(factors map[string]float64) ([]string, []string) {
	names := make([]string, 0, len(factors))
	for name := range factors {
		names = append(names, name)
	}
	sort.Strings(names)

	strong := make([]string, len(names))
	copy(strong, names)
	sort.SliceStable(strong, func(i, j int) bool {
		return factors[strong[i]] > factors[strong[j]]
	})

	weak := make([]string, len(names))
	copy(weak, names)
	sort.SliceStable(weak, func(i, j int) bool {
		return factors[weak[i]] < factors[weak[j]]
	})

	strengths := []string{}
	for _, name := range strong {
		if factors[name] < 0.75 || len(strengths) == maxHighlights {
			break
		}
		strengths = append(strengths, strengthMessages[name])
	}

	weaknesses := []string{}
	for _, name := range weak {
		if factors[name] >= 0.50 || len(weaknesses) == maxHighlights {
			break
		}
		weaknesses = append(weaknesses, weaknessMessages[name])
	}

	return strengths, weaknesses
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
