// Package synthesizer turns retrieval results into grounded answers.
// All answer text is extracted from document chunks; nothing is generated.
package synthesizer

import (
	"sort"
	"strings"
	"unicode"

	"github.com/lexiqa-labs/lexiqa-core/internal/chunker"
	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
)

const (
	// maxAnswerSentences caps how many document sentences one answer joins
	maxAnswerSentences = 3

	// maxExcerptLen bounds citation excerpts, cut at a word boundary
	maxExcerptLen = 200
)

// Config controls grounding and citation limits
type Config struct {
	RelevanceThreshold float64
	MaxCitations       int
}

// DefaultConfig matches the default retrieval settings
func DefaultConfig() Config {
	return Config{
		RelevanceThreshold: 0.35,
		MaxCitations:       5,
	}
}

// Synthesizer extracts answers from retrieved passages
type Synthesizer struct {
	cfg Config
}

func New(cfg Config) *Synthesizer {
	if cfg.RelevanceThreshold <= 0 {
		cfg.RelevanceThreshold = DefaultConfig().RelevanceThreshold
	}
	if cfg.MaxCitations <= 0 {
		cfg.MaxCitations = DefaultConfig().MaxCitations
	}
	return &Synthesizer{cfg: cfg}
}

// Synthesize builds an answer for the question from the retrieval results.
// Results below the relevance threshold never contribute. When nothing
// relevant remains the answer is the fixed not-specified text with no
// citations.
func (s *Synthesizer) Synthesize(question *domain.Question, retrieval *domain.Retrieval) *domain.Answer {
	relevant := s.relevantResults(retrieval)
	if len(relevant) == 0 {
		return &domain.Answer{
			Text:      domain.NotSpecifiedAnswer,
			Type:      question.Type,
			Citations: []domain.Citation{},
			Grounded:  false,
		}
	}

	var text string
	switch question.Type {
	case domain.QuestionTypeYesNo:
		text = s.answerYesNo(question, relevant)
	case domain.QuestionTypeComparison:
		text = s.answerComparison(question, relevant)
	case domain.QuestionTypeProcedural:
		text = s.answerProcedural(question, relevant)
	default:
		text = s.answerExtractive(question, relevant)
	}
	if text == "" {
		return &domain.Answer{
			Text:      domain.NotSpecifiedAnswer,
			Type:      question.Type,
			Citations: []domain.Citation{},
			Grounded:  false,
		}
	}

	return &domain.Answer{
		Text:      text,
		Type:      question.Type,
		Citations: s.buildCitations(relevant),
		Grounded:  true,
	}
}

// relevantResults filters by the threshold, preserving ranking order
func (s *Synthesizer) relevantResults(retrieval *domain.Retrieval) []*domain.RetrievalResult {
	if retrieval == nil {
		return nil
	}
	relevant := make([]*domain.RetrievalResult, 0, len(retrieval.Results))
	for _, r := range retrieval.Results {
		if r.Score() >= s.cfg.RelevanceThreshold {
			relevant = append(relevant, r)
		}
	}
	return relevant
}

// answerExtractive joins the document sentences that best cover the key
// terms, keeping them in document order. Used for factual, interpretation
// and unclassified questions.
func (s *Synthesizer) answerExtractive(question *domain.Question, results []*domain.RetrievalResult) string {
	scored := scoreSentences(question, results)
	if len(scored) == 0 {
		return ""
	}
	picked := pickTop(scored, maxAnswerSentences)
	parts := make([]string, len(picked))
	for i, sn := range picked {
		parts[i] = sn.text
	}
	return strings.Join(parts, " ")
}

// answerYesNo scans the most relevant sentence for negation cues first, then
// affirmative cues, and leads with the verdict. Questions the passage does
// not clearly settle fall back to plain extraction.
func (s *Synthesizer) answerYesNo(question *domain.Question, results []*domain.RetrievalResult) string {
	scored := scoreSentences(question, results)
	if len(scored) == 0 {
		return ""
	}
	best := pickTop(scored, 1)[0]
	lower := strings.ToLower(best.text)
	for _, cue := range negativeCues {
		if strings.Contains(lower, cue) {
			return "No. " + best.text
		}
	}
	for _, cue := range affirmativeCues {
		if strings.Contains(lower, cue) {
			return "Yes. " + best.text
		}
	}
	return best.text
}

// answerComparison gathers the best sentence for each side of the comparison
// when the key terms split across chunks, otherwise falls back to extraction.
func (s *Synthesizer) answerComparison(question *domain.Question, results []*domain.RetrievalResult) string {
	scored := scoreSentences(question, results)
	if len(scored) == 0 {
		return ""
	}
	// Prefer sentences from distinct chunks so both sides get covered
	picked := make([]sentence, 0, maxAnswerSentences)
	seen := make(map[string]struct{})
	for _, sn := range rankByHits(scored) {
		if _, dup := seen[sn.chunkID]; dup {
			continue
		}
		seen[sn.chunkID] = struct{}{}
		picked = append(picked, sn)
		if len(picked) == maxAnswerSentences {
			break
		}
	}
	sortByDocumentOrder(picked)
	parts := make([]string, len(picked))
	for i, sn := range picked {
		parts[i] = sn.text
	}
	return strings.Join(parts, " ")
}

// answerProcedural favours sentences carrying ordering or obligation cues
func (s *Synthesizer) answerProcedural(question *domain.Question, results []*domain.RetrievalResult) string {
	scored := scoreSentences(question, results)
	if len(scored) == 0 {
		return ""
	}
	for i := range scored {
		lower := strings.ToLower(scored[i].text)
		for _, cue := range stepCues {
			if strings.Contains(lower, cue) {
				scored[i].hits++
			}
		}
	}
	picked := pickTop(scored, maxAnswerSentences)
	parts := make([]string, len(picked))
	for i, sn := range picked {
		parts[i] = sn.text
	}
	return strings.Join(parts, " ")
}

// buildCitations emits one citation per distinct chunk, most relevant first
func (s *Synthesizer) buildCitations(results []*domain.RetrievalResult) []domain.Citation {
	ordered := make([]*domain.RetrievalResult, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Score() > ordered[j].Score()
	})

	citations := make([]domain.Citation, 0, s.cfg.MaxCitations)
	seen := make(map[string]struct{}, len(ordered))
	for _, r := range ordered {
		if _, dup := seen[r.Chunk.ID]; dup {
			continue
		}
		seen[r.Chunk.ID] = struct{}{}
		citations = append(citations, domain.Citation{
			ChunkID:        r.Chunk.ID,
			PageNumber:     r.Chunk.PageNumber,
			RelevanceScore: r.Score(),
			Excerpt:        excerpt(r.Chunk.Content),
		})
		if len(citations) == s.cfg.MaxCitations {
			break
		}
	}
	return citations
}

// excerpt takes a verbatim prefix of the chunk, cut back to a word boundary
func excerpt(content string) string {
	content = strings.TrimSpace(content)
	if len(content) <= maxExcerptLen {
		return content
	}
	cut := maxExcerptLen
	for cut > 0 && !utf8Boundary(content, cut) {
		cut--
	}
	if idx := strings.LastIndexFunc(content[:cut], unicode.IsSpace); idx > maxExcerptLen/2 {
		cut = idx
	}
	return strings.TrimRight(content[:cut], " \t\n")
}

func utf8Boundary(s string, i int) bool {
	return i >= len(s) || s[i]&0xC0 != 0x80
}

// sentence is a candidate answer sentence with its retrieval provenance
type sentence struct {
	text     string
	chunkID  string
	position int // chunk position in the document
	offset   int // byte offset of the sentence within the chunk
	score    float64
	hits     int
}

// scoreSentences splits the relevant chunks into sentences and counts key
// term hits per sentence. Chunk relevance breaks ties between sentences with
// equal coverage.
func scoreSentences(question *domain.Question, results []*domain.RetrievalResult) []sentence {
	var out []sentence
	for _, r := range results {
		for _, sp := range chunker.SplitSentences(r.Chunk.Content) {
			text := sp.Text
			if text == "" {
				continue
			}
			lower := strings.ToLower(text)
			hits := 0
			for _, term := range question.KeyTerms {
				if strings.Contains(lower, term) {
					hits++
				}
			}
			// A sentence that shares no vocabulary with the question cannot
			// support an extractive answer, however well its chunk scored.
			if hits == 0 && len(question.KeyTerms) > 0 {
				continue
			}
			out = append(out, sentence{
				text:     text,
				chunkID:  r.Chunk.ID,
				position: r.Chunk.Position,
				offset:   sp.Start,
				score:    r.Score(),
				hits:     hits,
			})
		}
	}
	return out
}

// rankByHits orders candidates best first without mutating the input
func rankByHits(scored []sentence) []sentence {
	ranked := make([]sentence, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].hits != ranked[j].hits {
			return ranked[i].hits > ranked[j].hits
		}
		return ranked[i].score > ranked[j].score
	})
	return ranked
}

// pickTop selects the n best sentences and returns them in document order
func pickTop(scored []sentence, n int) []sentence {
	ranked := rankByHits(scored)
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	picked := make([]sentence, len(ranked))
	copy(picked, ranked)
	sortByDocumentOrder(picked)
	return picked
}

func sortByDocumentOrder(picked []sentence) {
	sort.SliceStable(picked, func(i, j int) bool {
		if picked[i].position != picked[j].position {
			return picked[i].position < picked[j].position
		}
		return picked[i].offset < picked[j].offset
	})
}
