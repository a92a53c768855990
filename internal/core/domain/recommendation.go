package domain

// RecommendationType categorizes what kind of follow-up is being suggested
type RecommendationType string

const (
	RecommendationWarning     RecommendationType = "warning"
	RecommendationAdvice      RecommendationType = "advice"
	RecommendationAction      RecommendationType = "action"
	RecommendationInformation RecommendationType = "information"
	RecommendationReview      RecommendationType = "review"
)

// RecommendationPriority orders recommendations by urgency
type RecommendationPriority string

const (
	PriorityCritical RecommendationPriority = "critical"
	PriorityHigh     RecommendationPriority = "high"
	PriorityMedium   RecommendationPriority = "medium"
	PriorityLow      RecommendationPriority = "low"
)

// Rank returns a sortable rank, lower is more urgent
func (p RecommendationPriority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// Recommendation is an actionable suggestion derived from document analysis
type Recommendation struct {
	Title            string                 `json:"title"`
	Description      string                 `json:"description"`
	Type             RecommendationType     `json:"type"`
	Priority         RecommendationPriority `json:"priority"`
	Reasoning        string                 `json:"reasoning"`
	SuggestedActions []string               `json:"suggested_actions"`
	Confidence       float64                `json:"confidence"`
}

// RiskLevel grades how severe a detected red-flag clause is
type RiskLevel string

const (
	RiskCritical RiskLevel = "critical"
	RiskHigh     RiskLevel = "high"
	RiskMedium   RiskLevel = "medium"
	RiskLow      RiskLevel = "low"
)

// RedFlag marks a clause pattern in the document that warrants attention
type RedFlag struct {
	Category    string    `json:"category"`
	RiskLevel   RiskLevel `json:"risk_level"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Excerpt     string    `json:"excerpt"`
	PageNumber  int       `json:"page_number"`
	Confidence  float64   `json:"confidence"`
}
