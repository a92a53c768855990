// Package chunker splits document text into overlapping, sentence-aligned
// chunks with page provenance.
package chunker

import (
	"fmt"
	"strings"
	"time"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
)

// Config configures the chunker behavior.
type Config struct {
	// TargetSize is the preferred characters per chunk.
	// A chunk may exceed it only when a single sentence does.
	TargetSize int

	// Overlap is the approximate character overlap between adjacent chunks,
	// made of whole trailing sentences.
	Overlap int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		TargetSize: 512,
		Overlap:    50,
	}
}

// Chunker splits content into overlapping chunks at sentence boundaries.
type Chunker struct {
	config Config
}

// New creates a new chunker with the given config.
func New(config Config) *Chunker {
	if config.TargetSize <= 0 {
		config.TargetSize = DefaultConfig().TargetSize
	}
	if config.Overlap < 0 || config.Overlap >= config.TargetSize {
		config.Overlap = DefaultConfig().Overlap
	}
	return &Chunker{config: config}
}

// Chunk splits the document content into chunks. Adjacent chunks overlap by
// whole sentences, every chunk content is a verbatim slice of the text, and
// chunks are returned in document order. Empty or blank content yields an
// empty slice.
func (c *Chunker) Chunk(content *domain.DocumentContent) []*domain.Chunk {
	if content == nil || IsBlank(content.Text) {
		return []*domain.Chunk{}
	}

	sentences := SplitSentences(content.Text)
	if len(sentences) == 0 {
		return []*domain.Chunk{}
	}

	now := time.Now()
	var chunks []*domain.Chunk
	var current []Sentence
	carried := 0 // sentences at the head of current carried over for overlap

	flush := func() {
		if len(current) == 0 {
			return
		}
		start := current[0].Start
		end := current[len(current)-1].End
		position := len(chunks)
		chunks = append(chunks, &domain.Chunk{
			ID:         chunkID(content.DocumentID, position),
			DocumentID: content.DocumentID,
			Content:    content.Text[start:end],
			PageNumber: content.PageFor(start),
			Position:   position,
			StartChar:  start,
			EndChar:    end,
			CreatedAt:  now,
		})
	}

	for _, s := range sentences {
		length := currentLength(current)
		if length > 0 && length+len(s.Text) > c.config.TargetSize && len(current) > carried {
			flush()
			current = c.carryOverlap(current)
			carried = len(current)
		}
		current = append(current, s)
	}
	flush()

	return chunks
}

// carryOverlap returns the trailing sentences of a flushed chunk that seed
// the next one, up to the configured overlap size.
func (c *Chunker) carryOverlap(current []Sentence) []Sentence {
	if c.config.Overlap == 0 {
		return nil
	}
	total := 0
	i := len(current)
	for i > 0 && total+len(current[i-1].Text) <= c.config.Overlap {
		total += len(current[i-1].Text)
		i--
	}
	if i == len(current) {
		return nil
	}
	carry := make([]Sentence, len(current)-i)
	copy(carry, current[i:])
	return carry
}

func currentLength(current []Sentence) int {
	if len(current) == 0 {
		return 0
	}
	return current[len(current)-1].End - current[0].Start
}

func chunkID(documentID string, position int) string {
	return fmt.Sprintf("%s-c%04d", documentID, position)
}

// Sentence is a trimmed span of the source text
type Sentence struct {
	Text  string
	Start int
	End   int
}

// sentenceTerminators end a sentence when followed by whitespace
const sentenceTerminators = ".!?"

// closingTrailers may sit between a terminator and the following whitespace
const closingTrailers = `"')]`

// SplitSentences splits text into sentences by terminal punctuation and
// paragraph breaks, tracking byte offsets into the original text.
func SplitSentences(text string) []Sentence {
	var sentences []Sentence
	start := 0

	emit := func(end int) {
		raw := text[start:end]
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			start = end
			return
		}
		lead := strings.Index(raw, trimmed)
		sentences = append(sentences, Sentence{
			Text:  trimmed,
			Start: start + lead,
			End:   start + lead + len(trimmed),
		})
		start = end
	}

	for i := 0; i < len(text); i++ {
		ch := text[i]

		// Paragraph break always ends the sentence
		if ch == '\n' && i+1 < len(text) && text[i+1] == '\n' {
			emit(i)
			continue
		}

		if !strings.ContainsRune(sentenceTerminators, rune(ch)) {
			continue
		}

		// Swallow runs of terminators and closing quotes/brackets
		j := i + 1
		for j < len(text) && strings.ContainsRune(sentenceTerminators+closingTrailers, rune(text[j])) {
			j++
		}

		// Sentence ends only when followed by whitespace or end of text
		if j >= len(text) || text[j] == ' ' || text[j] == '\n' {
			emit(j)
			i = j - 1
		}
	}
	emit(len(text))

	return sentences
}
