package recommend

import "github.com/lexiqa-labs/lexiqa-core/internal/core/domain"

// questionRule fires on the normalized question text, steering the reader
// to the contract area their question touches.
type questionRule struct {
	triggers         []string
	recType          domain.RecommendationType
	priority         domain.RecommendationPriority
	title            string
	description      string
	reasoning        string
	suggestedActions []string
}

var questionRules = []questionRule{
	{
		triggers:    []string{"liability", "liable", "damages", "indemnify", "indemnification", "hold harmless"},
		recType:     domain.RecommendationWarning,
		priority:    domain.PriorityHigh,
		title:       "Liability Analysis Required",
		description: "Your question relates to liability provisions, which are critical contract terms.",
		reasoning:   "Liability clauses determine financial exposure and legal obligations.",
		suggestedActions: []string{
			"Review all liability-related clauses",
			"Understand the scope of indemnification",
			"Check for liability caps or exclusions",
			"Consider insurance requirements",
		},
	},
	{
		triggers:    []string{"terminate", "termination", "cancel", "breach", "default"},
		recType:     domain.RecommendationAdvice,
		priority:    domain.PriorityMedium,
		title:       "Termination Rights Analysis",
		description: "Your question involves termination provisions, which define exit conditions.",
		reasoning:   "Termination clauses affect how and when parties can end the agreement.",
		suggestedActions: []string{
			"Identify termination triggers",
			"Review notice requirements",
			"Understand post-termination obligations",
			"Check for termination fees",
		},
	},
	{
		triggers:    []string{"payment", "invoice", "due", "fee", "cost"},
		recType:     domain.RecommendationInformation,
		priority:    domain.PriorityMedium,
		title:       "Payment Terms Review",
		description: "Your question relates to payment terms, which affect cash flow.",
		reasoning:   "Payment terms impact financial planning and obligations.",
		suggestedActions: []string{
			"Review payment schedules",
			"Note due dates and penalties",
			"Understand accepted payment methods",
			"Check for advance payment requirements",
		},
	},
	{
		triggers:    []string{"confidential", "secret", "non-disclosure", "proprietary"},
		recType:     domain.RecommendationWarning,
		priority:    domain.PriorityHigh,
		title:       "Confidentiality Obligations Review",
		description: "Your question involves confidentiality provisions.",
		reasoning:   "Confidentiality clauses have long-term implications for information sharing.",
		suggestedActions: []string{
			"Review the confidentiality scope",
			"Understand the duration of obligations",
			"Identify permitted disclosures",
			"Check for return requirements",
		},
	},
}
