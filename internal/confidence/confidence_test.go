package confidence

import (
	"math"
	"testing"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
)

func strongSignals() domain.ConfidenceSignals {
	return domain.ConfidenceSignals{
		TopSimilarity:    0.95,
		AvgSimilarity:    0.90,
		ResultCount:      5,
		Complexity:       domain.ComplexitySimple,
		HasLegalTerms:    true,
		AnswerLength:     150,
		CitationCount:    3,
		AvgCitationScore: 0.90,
		DistinctPages:    3,
		KeywordOverlap:   0.90,
		Grounded:         true,
	}
}

func weakSignals() domain.ConfidenceSignals {
	return domain.ConfidenceSignals{
		TopSimilarity:    0.30,
		AvgSimilarity:    0.25,
		ResultCount:      1,
		Complexity:       domain.ComplexityComplex,
		HasLegalTerms:    false,
		AnswerLength:     40,
		CitationCount:    1,
		AvgCitationScore: 0.30,
		DistinctPages:    1,
		KeywordOverlap:   0.20,
		Grounded:         true,
	}
}

func TestWeighted_StrongSignalsScoreHigh(t *testing.T) {
	score := NewWeighted().Score(strongSignals())
	if score < 0.90 {
		t.Errorf("strong signals scored %v, want >= 0.90", score)
	}
	if score > 1.0 {
		t.Errorf("score %v exceeds 1.0", score)
	}
}

func TestWeighted_WeakSignalsScoreLow(t *testing.T) {
	score := NewWeighted().Score(weakSignals())
	if score >= 0.40 {
		t.Errorf("weak signals scored %v, want < 0.40", score)
	}
}

func TestWeighted_MonotonicInSimilarity(t *testing.T) {
	signals := weakSignals()
	prev := -1.0
	for sim := 0.0; sim <= 1.0; sim += 0.05 {
		signals.TopSimilarity = sim
		score := NewWeighted().Score(signals)
		if score < prev {
			t.Fatalf("score decreased from %v to %v at similarity %v", prev, score, sim)
		}
		prev = score
	}
}

func TestBayesian_StrongSignalsScoreHigh(t *testing.T) {
	score := NewBayesian().Score(strongSignals())
	if score < 0.90 {
		t.Errorf("strong signals scored %v, want >= 0.90", score)
	}
}

func TestBayesian_WeakSignalsScoreLow(t *testing.T) {
	score := NewBayesian().Score(weakSignals())
	if score >= 0.40 {
		t.Errorf("weak signals scored %v, want < 0.40", score)
	}
}

func TestBayesian_NeutralSignalsStayNearPrior(t *testing.T) {
	// Evidence at exactly 0.5 likelihood should not move the belief much
	signals := domain.ConfidenceSignals{
		TopSimilarity:    0.50,
		ResultCount:      2, // likelihood 0.4
		Complexity:       domain.ComplexityMedium,
		HasLegalTerms:    false,
		AvgCitationScore: 0.50,
		Grounded:         true,
	}
	score := NewBayesian().Score(signals)
	if score < 0.20 || score > 0.60 {
		t.Errorf("neutral signals scored %v, want a mid-range belief", score)
	}
}

func TestEnsemble_AveragesBothAlgorithms(t *testing.T) {
	signals := strongSignals()
	w := NewWeighted().Score(signals)
	b := NewBayesian().Score(signals)
	e := NewEnsemble().Score(signals)
	want := (w + b) / 2
	if math.Abs(e-want) > 1e-9 {
		t.Errorf("ensemble = %v, want %v", e, want)
	}
}

func TestEnsemble_MonotonicInSimilarity(t *testing.T) {
	signals := strongSignals()
	prev := -1.0
	for sim := 0.0; sim <= 1.0; sim += 0.05 {
		signals.TopSimilarity = sim
		score := NewEnsemble().Score(signals)
		if score < prev {
			t.Fatalf("score decreased from %v to %v at similarity %v", prev, score, sim)
		}
		prev = score
	}
}

func TestForStrategy(t *testing.T) {
	cases := []struct {
		strategy domain.ConfidenceStrategy
		want     domain.ConfidenceStrategy
	}{
		{domain.ConfidenceStrategyWeighted, domain.ConfidenceStrategyWeighted},
		{domain.ConfidenceStrategyBayesian, domain.ConfidenceStrategyBayesian},
		{domain.ConfidenceStrategyEnsemble, domain.ConfidenceStrategyEnsemble},
		{domain.ConfidenceStrategy("unknown"), domain.ConfidenceStrategyEnsemble},
	}
	for _, tc := range cases {
		if got := ForStrategy(tc.strategy).Name(); got != tc.want {
			t.Errorf("ForStrategy(%s).Name() = %s, want %s", tc.strategy, got, tc.want)
		}
	}
}

func TestAnalyzer_StrongSignals(t *testing.T) {
	result := NewAnalyzer(nil).Analyze(strongSignals())

	if result.Level != domain.ConfidenceHigh && result.Level != domain.ConfidenceVeryHigh {
		t.Errorf("Level = %s, want high or very_high (score %v)", result.Level, result.Score)
	}
	if result.Strategy != domain.ConfidenceStrategyEnsemble {
		t.Errorf("Strategy = %s, want ensemble", result.Strategy)
	}
	if result.Recommendation == "" {
		t.Error("expected a recommendation string")
	}
	if len(result.Strengths) == 0 {
		t.Error("expected strengths for strong signals")
	}
	if len(result.Strengths) > maxHighlights {
		t.Errorf("got %d strengths, want at most %d", len(result.Strengths), maxHighlights)
	}
	if len(result.Factors) != 8 {
		t.Errorf("expected 8 factors in breakdown, got %d", len(result.Factors))
	}
}

func TestAnalyzer_UngroundedCappedVeryLow(t *testing.T) {
	signals := strongSignals()
	signals.Grounded = false

	result := NewAnalyzer(nil).Analyze(signals)
	if result.Level != domain.ConfidenceVeryLow {
		t.Errorf("Level = %s, want very_low for an ungrounded answer", result.Level)
	}
	if result.Score > ungroundedCeiling {
		t.Errorf("Score = %v, want <= %v", result.Score, ungroundedCeiling)
	}
}

func TestAnalyzer_DegradedRetrievalPenalty(t *testing.T) {
	analyzer := NewAnalyzer(NewWeighted())

	normal := analyzer.Analyze(strongSignals())

	degraded := strongSignals()
	degraded.RetrievalDegraded = true
	penalized := analyzer.Analyze(degraded)

	diff := normal.Score - penalized.Score
	if math.Abs(diff-degradedPenalty) > 1e-9 && penalized.Score != 1.0 {
		t.Errorf("penalty = %v, want %v", diff, degradedPenalty)
	}
	if penalized.Score >= normal.Score {
		t.Errorf("degraded score %v not below normal %v", penalized.Score, normal.Score)
	}
}

func TestAnalyzer_WeakSignalsListWeaknesses(t *testing.T) {
	result := NewAnalyzer(nil).Analyze(weakSignals())

	if len(result.Weaknesses) == 0 {
		t.Error("expected weaknesses for weak signals")
	}
	if len(result.Weaknesses) > maxHighlights {
		t.Errorf("got %d weaknesses, want at most %d", len(result.Weaknesses), maxHighlights)
	}
	for _, w := range result.Weaknesses {
		if w == "" {
			t.Error("empty weakness message")
		}
	}
}

func TestAnalyzer_Deterministic(t *testing.T) {
	analyzer := NewAnalyzer(nil)
	first := analyzer.Analyze(strongSignals())
	for i := 0; i < 5; i++ {
		again := analyzer.Analyze(strongSignals())
		if again.Score != first.Score || again.Level != first.Level {
			t.Fatal("analysis is not deterministic")
		}
		if len(again.Strengths) != len(first.Strengths) {
			t.Fatal("strengths ordering is not deterministic")
		}
		for j := range again.Strengths {
			if again.Strengths[j] != first.Strengths[j] {
				t.Fatal("strengths ordering is not deterministic")
			}
		}
	}
}
