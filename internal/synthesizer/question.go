package synthesizer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
)

const (
	maxKeyTerms = 10

	// maxQuestionLen bounds question size; anything longer is a pasted
	// passage, not a question.
	maxQuestionLen = 500
)

// AnalyzeQuestion validates and classifies a raw question string.
// Analysis is deterministic so the normalized form can serve as a cache key.
func AnalyzeQuestion(text string) (*domain.Question, error) {
	normalized := normalizeQuestion(text)
	if normalized == "" {
		return nil, fmt.Errorf("question is empty: %w", domain.ErrMalformedQuestion)
	}
	if !hasLetter(normalized) {
		return nil, fmt.Errorf("question contains no words: %w", domain.ErrMalformedQuestion)
	}
	if len(normalized) > maxQuestionLen {
		return nil, fmt.Errorf("question exceeds %d characters: %w", maxQuestionLen, domain.ErrMalformedQuestion)
	}

	words := strings.Fields(normalized)
	q := &domain.Question{
		Text:       strings.TrimSpace(text),
		Normalized: normalized,
		Type:       classify(normalized),
		Complexity: complexityFor(len(words)),
		KeyTerms:   extractKeyTerms(words),
		WordCount:  len(words),
	}
	q.HasLegalTerms = containsLegalTerms(normalized)
	return q, nil
}

// normalizeQuestion lowercases, collapses whitespace and strips a trailing
// question mark. Two questions that normalize identically are treated as the
// same question by the answer cache.
func normalizeQuestion(text string) string {
	lower := strings.ToLower(strings.TrimSpace(text))
	lower = strings.TrimRight(lower, "?!. ")
	return strings.Join(strings.Fields(lower), " ")
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// classify picks a question type. Comparison and procedural markers are
// checked before the yes/no openers because phrasings like "does X differ
// from Y" open with an auxiliary verb but want a comparison answer.
func classify(normalized string) domain.QuestionType {
	padded := " " + normalized + " "
	for _, m := range comparisonMarkers {
		if strings.Contains(padded, m) {
			return domain.QuestionTypeComparison
		}
	}
	for _, m := range proceduralMarkers {
		if strings.Contains(normalized, m) {
			return domain.QuestionTypeProcedural
		}
	}
	for _, m := range interpretationMarkers {
		if strings.HasPrefix(normalized, m) {
			return domain.QuestionTypeInterpretation
		}
	}
	if strings.Contains(normalized, " mean") || strings.Contains(normalized, "interpret") ||
		strings.Contains(normalized, "implication") {
		return domain.QuestionTypeInterpretation
	}
	for _, o := range yesNoOpeners {
		if strings.HasPrefix(normalized, o) {
			return domain.QuestionTypeYesNo
		}
	}
	for _, o := range factualOpeners {
		if strings.HasPrefix(normalized, o) {
			return domain.QuestionTypeFactual
		}
	}
	return domain.QuestionTypeUnknown
}

func complexityFor(wordCount int) domain.QuestionComplexity {
	switch {
	case wordCount <= 5:
		return domain.ComplexitySimple
	case wordCount <= 15:
		return domain.ComplexityMedium
	default:
		return domain.ComplexityComplex
	}
}

// extractKeyTerms drops stopwords and punctuation, preserving question order.
// Duplicates are removed and the list is capped.
func extractKeyTerms(words []string) []string {
	terms := make([]string, 0, len(words))
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if len(w) < 2 {
			continue
		}
		if _, stop := stopwords[w]; stop {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		terms = append(terms, w)
		if len(terms) == maxKeyTerms {
			break
		}
	}
	return terms
}

func containsLegalTerms(normalized string) bool {
	for term := range legalTerms {
		if strings.Contains(normalized, term) {
			return true
		}
	}
	return false
}
