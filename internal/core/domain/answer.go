package domain

import "time"

// NotSpecifiedAnswer is returned verbatim when the document does not cover
// the question. The wording is fixed so clients can rely on it.
const NotSpecifiedAnswer = "The document does not appear to address this question. " +
	"This point is not specified in the provided text."

// Citation points at the exact passage an answer was drawn from.
// Excerpt is always a verbatim substring of the cited chunk.
type Citation struct {
	ChunkID        string  `json:"chunk_id"`
	PageNumber     int     `json:"page_number"`
	RelevanceScore float64 `json:"relevance_score"`
	Excerpt        string  `json:"excerpt"`
}

// Answer is a grounded answer extracted from document text.
// When Grounded is false, Text is NotSpecifiedAnswer and Citations is empty.
type Answer struct {
	Text      string       `json:"text"`
	Type      QuestionType `json:"type"`
	Citations []Citation   `json:"citations"`
	Grounded  bool         `json:"grounded"`
}

// AskResult is the full response to a question against a document
type AskResult struct {
	DocumentID      string            `json:"document_id"`
	Question        *Question         `json:"question"`
	Answer          *Answer           `json:"answer"`
	Confidence      *ConfidenceResult `json:"confidence"`
	Recommendations []*Recommendation `json:"recommendations"`
	Retrieval       *Retrieval        `json:"-"` // Intermediate, not serialized
	Cached          bool              `json:"cached"`
	Took            time.Duration     `json:"took" swaggertype:"integer" example:"1500000"`
}
