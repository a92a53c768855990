package domain

// QuestionType classifies what kind of answer a question expects
type QuestionType string

const (
	QuestionTypeFactual        QuestionType = "factual"
	QuestionTypeComparison     QuestionType = "comparison"
	QuestionTypeProcedural     QuestionType = "procedural"
	QuestionTypeInterpretation QuestionType = "interpretation"
	QuestionTypeYesNo          QuestionType = "yes_no"
	QuestionTypeUnknown        QuestionType = "unknown"
)

// QuestionComplexity buckets questions by length
type QuestionComplexity string

const (
	ComplexitySimple  QuestionComplexity = "simple"  // <= 5 words
	ComplexityMedium  QuestionComplexity = "medium"  // 6-15 words
	ComplexityComplex QuestionComplexity = "complex" // > 15 words
)

// Question holds a user question together with its derived analysis.
// The analysis is deterministic: the same text always yields the same Question.
type Question struct {
	Text          string             `json:"text"`
	Normalized    string             `json:"normalized"`
	Type          QuestionType       `json:"type"`
	Complexity    QuestionComplexity `json:"complexity"`
	KeyTerms      []string           `json:"key_terms"`
	WordCount     int                `json:"word_count"`
	HasLegalTerms bool               `json:"has_legal_terms"`
}
