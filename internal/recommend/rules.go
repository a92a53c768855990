package recommend

import (
	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
)

// topicRule fires when any of its trigger terms appears in the document
// text or in a detected red flag, and emits its template as a
// recommendation.
type topicRule struct {
	topic            string
	triggers         []string
	recType          domain.RecommendationType
	priority         domain.RecommendationPriority
	title            string
	description      string
	reasoning        string
	suggestedActions []string
}

// The registry covers the recurring contract topics. Rules are evaluated
// in declaration order so output is deterministic.
var topicRules = []topicRule{
	{
		topic:       "liability",
		triggers:    []string{"liability", "liable", "damages", "indemnify", "indemnification", "hold harmless"},
		recType:     domain.RecommendationWarning,
		priority:    domain.PriorityHigh,
		title:       "Liability Clause Review Required",
		description: "This document contains liability provisions that require careful review.",
		reasoning:   "Liability clauses can expose parties to substantial financial risk and legal obligations.",
		suggestedActions: []string{
			"Review liability limits and exclusions",
			"Consider insurance requirements",
			"Evaluate indemnification obligations",
			"Consult with legal counsel",
		},
	},
	{
		topic:       "termination",
		triggers:    []string{"termination", "terminate", "cancellation", "breach", "default"},
		recType:     domain.RecommendationAdvice,
		priority:    domain.PriorityMedium,
		title:       "Termination Provisions Analysis",
		description: "Review termination clauses to understand exit conditions and obligations.",
		reasoning:   "Termination clauses define how and when parties can end the agreement.",
		suggestedActions: []string{
			"Identify termination triggers",
			"Review notice requirements",
			"Understand post-termination obligations",
			"Consider termination fees or penalties",
		},
	},
	{
		topic:       "payment",
		triggers:    []string{"payment", "invoice", "due date", "late fee", "interest"},
		recType:     domain.RecommendationInformation,
		priority:    domain.PriorityMedium,
		title:       "Payment Terms Summary",
		description: "Key payment terms and conditions were identified in the document.",
		reasoning:   "Payment terms affect cash flow and financial planning.",
		suggestedActions: []string{
			"Note payment due dates",
			"Review late payment penalties",
			"Understand accepted payment methods",
			"Check for advance payment requirements",
		},
	},
	{
		topic:       "confidentiality",
		triggers:    []string{"confidential", "non-disclosure", "trade secret", "proprietary"},
		recType:     domain.RecommendationWarning,
		priority:    domain.PriorityHigh,
		title:       "Confidentiality Obligations",
		description: "This document contains confidentiality provisions that require attention.",
		reasoning:   "Confidentiality clauses can have long-term implications for information sharing.",
		suggestedActions: []string{
			"Review the confidentiality scope",
			"Understand the duration of obligations",
			"Identify permitted disclosures",
			"Consider return or destruction requirements",
		},
	},
	{
		topic:       "intellectual_property",
		triggers:    []string{"intellectual property", "copyright", "patent", "trademark", "license"},
		recType:     domain.RecommendationReview,
		priority:    domain.PriorityHigh,
		title:       "Intellectual Property Review",
		description: "Intellectual property provisions require careful analysis.",
		reasoning:   "IP clauses affect ownership and usage rights of creative works and innovations.",
		suggestedActions: []string{
			"Review IP ownership provisions",
			"Understand licensing terms",
			"Check for assignment requirements",
			"Consider infringement protections",
		},
	},
	{
		topic:       "force_majeure",
		triggers:    []string{"force majeure", "act of god", "unforeseen", "beyond control"},
		recType:     domain.RecommendationInformation,
		priority:    domain.PriorityMedium,
		title:       "Force Majeure Provisions",
		description: "Force majeure clauses define circumstances for excused performance.",
		reasoning:   "Force majeure clauses can provide relief from contractual obligations.",
		suggestedActions: []string{
			"Review covered events",
			"Understand notice requirements",
			"Check for mitigation obligations",
			"Consider termination rights",
		},
	},
	{
		topic:       "governing_law",
		triggers:    []string{"governing law", "jurisdiction", "venue", "choice of law"},
		recType:     domain.RecommendationInformation,
		priority:    domain.PriorityMedium,
		title:       "Governing Law and Jurisdiction",
		description: "The legal framework and dispute resolution forum are specified.",
		reasoning:   "Governing law affects how the contract will be interpreted and enforced.",
		suggestedActions: []string{
			"Note the applicable law",
			"Identify the jurisdiction",
			"Understand venue requirements",
			"Consider enforcement implications",
		},
	},
	{
		topic:       "dispute_resolution",
		triggers:    []string{"arbitration", "mediation", "dispute", "litigation", "court"},
		recType:     domain.RecommendationAdvice,
		priority:    domain.PriorityMedium,
		title:       "Dispute Resolution Process",
		description: "Dispute resolution mechanisms and procedures are outlined.",
		reasoning:   "Dispute resolution clauses determine how conflicts will be resolved.",
		suggestedActions: []string{
			"Review dispute resolution steps",
			"Understand the mediation or arbitration process",
			"Check for time limitations",
			"Consider cost implications",
		},
	},
}
