// Package recommend derives actionable recommendations from document
// content, detected red flags and the question being asked. It is
// rule-driven and fully deterministic; an empty result is a valid outcome.
package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
)

const (
	ruleConfidence     = 0.8
	questionConfidence = 0.9
)

// Engine merges rule-based, red-flag and question-driven recommendations
type Engine struct{}

func NewEngine() *Engine { return &Engine{} }

// Recommend produces the merged, deduplicated, priority-sorted list.
// Question may be nil when recommendations are requested for a document
// without a specific question.
func (e *Engine) Recommend(documentText string, question *domain.Question, flags []*domain.RedFlag) []*domain.Recommendation {
	recs := e.documentRecommendations(documentText, flags)
	recs = append(recs, e.redFlagRecommendations(flags)...)
	if question != nil {
		recs = append(recs, e.questionRecommendations(question)...)
	}
	return sortRecommendations(dedupeByTitle(recs))
}

// documentRecommendations fires topic rules against the raw text and the
// detected red flags. The reasoning names the matched trigger so the reader
// can see why the rule fired.
func (e *Engine) documentRecommendations(documentText string, flags []*domain.RedFlag) []*domain.Recommendation {
	lower := strings.ToLower(documentText)
	var flagText strings.Builder
	for _, f := range flags {
		flagText.WriteString(strings.ToLower(f.Title))
		flagText.WriteString(" ")
		flagText.WriteString(strings.ToLower(f.Excerpt))
		flagText.WriteString(" ")
	}
	lowerFlags := flagText.String()

	recs := []*domain.Recommendation{}
	for _, rule := range topicRules {
		trigger := firstTrigger(rule.triggers, lower, lowerFlags)
		if trigger == "" {
			continue
		}
		recs = append(recs, &domain.Recommendation{
			Title:            rule.title,
			Description:      rule.description,
			Type:             rule.recType,
			Priority:         rule.priority,
			Reasoning:        fmt.Sprintf("%s Matched on %q.", rule.reasoning, trigger),
			SuggestedActions: rule.suggestedActions,
			Confidence:       ruleConfidence,
		})
	}
	return recs
}

// redFlagRecommendations escalates high and critical flags into their own
// recommendations. Lower-risk flags are surfaced through the red flag
// listing only.
func (e *Engine) redFlagRecommendations(flags []*domain.RedFlag) []*domain.Recommendation {
	recs := []*domain.Recommendation{}
	for _, f := range flags {
		if f.RiskLevel != domain.RiskCritical && f.RiskLevel != domain.RiskHigh {
			continue
		}
		priority := domain.PriorityHigh
		if f.RiskLevel == domain.RiskCritical {
			priority = domain.PriorityCritical
		}
		recs = append(recs, &domain.Recommendation{
			Title:       "Critical Review Required: " + f.Title,
			Description: fmt.Sprintf("This document contains a high-risk issue: %s.", f.Title),
			Type:        domain.RecommendationWarning,
			Priority:    priority,
			Reasoning: fmt.Sprintf("A %s-risk clause was detected on page %d: %s",
				f.RiskLevel, f.PageNumber, f.Description),
			SuggestedActions: []string{
				"Obtain legal review before signing",
				"Consider renegotiating the clause",
				"Evaluate risk mitigation strategies",
			},
			Confidence: f.Confidence,
		})
	}
	return recs
}

func (e *Engine) questionRecommendations(question *domain.Question) []*domain.Recommendation {
	lower := question.Normalized
	recs := []*domain.Recommendation{}
	for _, rule := range questionRules {
		trigger := firstTrigger(rule.triggers, lower, "")
		if trigger == "" {
			continue
		}
		recs = append(recs, &domain.Recommendation{
			Title:            rule.title,
			Description:      rule.description,
			Type:             rule.recType,
			Priority:         rule.priority,
			Reasoning:        fmt.Sprintf("%s Matched on %q in your question.", rule.reasoning, trigger),
			SuggestedActions: rule.suggestedActions,
			Confidence:       questionConfidence,
		})
	}
	return recs
}

func firstTrigger(triggers []string, haystacks ...string) string {
	for _, t := range triggers {
		for _, h := range haystacks {
			if h != "" && strings.Contains(h, t) {
				return t
			}
		}
	}
	return ""
}

// dedupeByTitle keeps the first occurrence, which favours document-level
// rules over question-driven duplicates.
func dedupeByTitle(recs []*domain.Recommendation) []*domain.Recommendation {
	seen := make(map[string]struct{}, len(recs))
	out := recs[:0]
	for _, r := range recs {
		if _, dup := seen[r.Title]; dup {
			continue
		}
		seen[r.Title] = struct{}{}
		out = append(out, r)
	}
	return out
}

func sortRecommendations(recs []*domain.Recommendation) []*domain.Recommendation {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Priority.Rank() != recs[j].Priority.Rank() {
			return recs[i].Priority.Rank() < recs[j].Priority.Rank()
		}
		return recs[i].Title < recs[j].Title
	})
	return recs
}
