package index

import (
	"math"
	"strings"
)

// stopwords are excluded from lexical scoring
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "for": {}, "from": {}, "has": {}, "have": {}, "in": {}, "is": {},
	"it": {}, "its": {}, "of": {}, "on": {}, "or": {}, "that": {}, "the": {},
	"this": {}, "to": {}, "was": {}, "were": {}, "will": {}, "with": {},
	"shall": {}, "any": {}, "such": {}, "may": {}, "not": {}, "no": {},
	"but": {}, "if": {}, "then": {}, "than": {}, "so": {}, "do": {}, "does": {},
	"what": {}, "which": {}, "who": {}, "when": {}, "where": {}, "how": {},
	"can": {}, "could": {}, "would": {}, "should": {}, "there": {}, "their": {},
	"they": {}, "them": {}, "he": {}, "she": {}, "we": {}, "you": {}, "i": {},
	"been": {}, "being": {}, "other": {}, "into": {}, "under": {}, "upon": {},
}

// Tokenize lowercases text, strips punctuation, drops stopwords, and appends
// bigrams of adjacent surviving tokens. Bigrams let short phrases like
// "governing law" outrank their individual words.
func Tokenize(text string) []string {
	var unigrams []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		token := current.String()
		current.Reset()
		if len(token) < 2 {
			return
		}
		if _, ok := stopwords[token]; ok {
			return
		}
		unigrams = append(unigrams, token)
	}

	for _, r := range strings.ToLower(text) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			current.WriteRune(r)
			continue
		}
		flush()
	}
	flush()

	tokens := make([]string, 0, len(unigrams)*2)
	tokens = append(tokens, unigrams...)
	for i := 0; i+1 < len(unigrams); i++ {
		tokens = append(tokens, unigrams[i]+"_"+unigrams[i+1])
	}
	return tokens
}

// lexicalModel holds per-chunk term frequencies and corpus-wide chunk
// frequencies for TF-ICF scoring. Write-once after build, safe for
// concurrent reads.
type lexicalModel struct {
	// ChunkCount is the number of chunks in the index
	ChunkCount int `json:"chunk_count"`

	// ChunkFreq is the number of chunks each term appears in
	ChunkFreq map[string]int `json:"chunk_freq"`

	// TermFreq holds term counts per chunk, indexed by chunk position
	TermFreq []map[string]int `json:"term_freq"`

	// Norms holds the scoring normalizer per chunk position
	Norms []float64 `json:"norms"`
}

// buildLexicalModel computes term statistics over chunk contents
func buildLexicalModel(contents []string) *lexicalModel {
	m := &lexicalModel{
		ChunkCount: len(contents),
		ChunkFreq:  make(map[string]int),
		TermFreq:   make([]map[string]int, len(contents)),
		Norms:      make([]float64, len(contents)),
	}

	for i, content := range contents {
		tf := make(map[string]int)
		total := 0
		for _, token := range Tokenize(content) {
			tf[token]++
			total++
		}
		m.TermFreq[i] = tf
		m.Norms[i] = math.Sqrt(float64(total) + 1)
		for token := range tf {
			m.ChunkFreq[token]++
		}
	}

	return m
}

// icf is the inverse chunk frequency weight for a term
func (m *lexicalModel) icf(term string) float64 {
	df := m.ChunkFreq[term]
	if df == 0 {
		return 0
	}
	return math.Log(1 + float64(m.ChunkCount)/float64(1+df))
}

// score computes the TF-ICF relevance of query terms against one chunk
func (m *lexicalModel) score(position int, queryTerms []string) float64 {
	if position < 0 || position >= len(m.TermFreq) {
		return 0
	}
	tf := m.TermFreq[position]
	var sum float64
	for _, term := range queryTerms {
		count, ok := tf[term]
		if !ok {
			continue
		}
		sum += float64(count) * m.icf(term)
	}
	if sum == 0 {
		return 0
	}
	return sum / m.Norms[position]
}
