package recommend

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
)

// flagPattern is one risky-clause detector
type flagPattern struct {
	re          *regexp.Regexp
	category    string
	riskLevel   domain.RiskLevel
	title       string
	description string
}

// Patterns are anchored on word boundaries and matched case-insensitively.
// Order is fixed so detection output is deterministic.
var flagPatterns = []flagPattern{
	{
		re:          regexp.MustCompile(`(?i)\b(unlimited\s+liability|unlimited\s+damages)\b`),
		category:    "financial",
		riskLevel:   domain.RiskCritical,
		title:       "Unlimited Liability Clause",
		description: "The document contains unlimited liability provisions.",
	},
	{
		re:          regexp.MustCompile(`(?i)\bindemnif(y|ies|ied|ying|ication)\b`),
		category:    "financial",
		riskLevel:   domain.RiskHigh,
		title:       "Indemnification Obligation",
		description: "The document contains indemnification obligations that shift third-party risk.",
	},
	{
		re:          regexp.MustCompile(`(?i)\b(waiver\s+of\s+all\s+rights|waives?\s+all\s+(rights|claims))\b`),
		category:    "legal",
		riskLevel:   domain.RiskCritical,
		title:       "Broad Rights Waiver",
		description: "The document requires a waiver of all legal rights or claims.",
	},
	{
		re:          regexp.MustCompile(`(?i)\b(automatic(ally)?\s+renew\w*|auto-renew\w*)\b`),
		category:    "financial",
		riskLevel:   domain.RiskMedium,
		title:       "Automatic Renewal",
		description: "The agreement renews automatically unless cancelled.",
	},
	{
		re:          regexp.MustCompile(`(?i)\b(change\s+(the\s+)?terms\s+unilaterally|unilateral(ly)?\s+(amend|modif)\w*|modify\s+without\s+consent)\b`),
		category:    "operational",
		riskLevel:   domain.RiskCritical,
		title:       "Unilateral Modification Rights",
		description: "One party can change the terms without the other's consent.",
	},
	{
		re:          regexp.MustCompile(`(?i)\b(immediate\s+termination|terminat\w+\s+without\s+(prior\s+)?notice)\b`),
		category:    "operational",
		riskLevel:   domain.RiskHigh,
		title:       "Termination Without Notice",
		description: "The agreement can be terminated immediately and without notice.",
	},
	{
		re:          regexp.MustCompile(`(?i)\b(assign\w*\s+without\s+(written\s+)?consent|transfer\w*\s+freely)\b`),
		category:    "operational",
		riskLevel:   domain.RiskMedium,
		title:       "Unrestricted Assignment",
		description: "The agreement can be assigned or transferred without consent.",
	},
	{
		re:          regexp.MustCompile(`(?i)\b(perpetual\s+licen[sc]e|irrevocabl\w+\s+(licen[sc]e|transfer\w*|assign\w*))\b`),
		category:    "strategic",
		riskLevel:   domain.RiskCritical,
		title:       "Perpetual or Irrevocable Grant",
		description: "Rights are granted perpetually or irrevocably.",
	},
}

// criticalKeywords in the surrounding context raise detection confidence
var criticalKeywords = []string{
	"unlimited", "irrevocable", "perpetual", "absolute", "waive all",
	"no rights", "no remedies", "no recourse", "without consent", "without notice",
}

const flagContextRadius = 150

// DetectRedFlags scans the document text for risky clause patterns.
// Each match carries a verbatim excerpt and its page for display.
func DetectRedFlags(content *domain.DocumentContent) []*domain.RedFlag {
	if content == nil || content.Text == "" {
		return []*domain.RedFlag{}
	}

	flags := []*domain.RedFlag{}
	seen := make(map[string]struct{})
	for _, p := range flagPatterns {
		for _, loc := range p.re.FindAllStringIndex(content.Text, -1) {
			page := content.PageFor(loc[0])
			// One flag per pattern per page is enough for review purposes
			key := fmt.Sprintf("%s|%d", p.title, page)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			context := flagContext(content.Text, loc[0], loc[1])
			flags = append(flags, &domain.RedFlag{
				Category:    p.category,
				RiskLevel:   p.riskLevel,
				Title:       p.title,
				Description: p.description,
				Excerpt:     context,
				PageNumber:  page,
				Confidence:  flagConfidence(p.riskLevel, context),
			})
		}
	}
	return flags
}

// flagContext returns a verbatim window around the match, trimmed to
// whitespace boundaries.
func flagContext(text string, start, end int) string {
	from := start - flagContextRadius
	if from < 0 {
		from = 0
	} else if idx := strings.IndexAny(text[from:start], " \n\t"); idx >= 0 {
		from += idx + 1
	}
	to := end + flagContextRadius
	if to > len(text) {
		to = len(text)
	} else if idx := strings.LastIndexAny(text[end:to], " \n\t"); idx >= 0 {
		to = end + idx
	}
	return strings.TrimSpace(text[from:to])
}

func flagConfidence(level domain.RiskLevel, context string) float64 {
	var base float64
	switch level {
	case domain.RiskCritical:
		base = 0.90
	case domain.RiskHigh:
		base = 0.80
	case domain.RiskMedium:
		base = 0.65
	default:
		base = 0.50
	}
	lower := strings.ToLower(context)
	for _, kw := range criticalKeywords {
		if strings.Contains(lower, kw) {
			base += 0.05
			break
		}
	}
	if base > 1.0 {
		base = 1.0
	}
	return base
}
