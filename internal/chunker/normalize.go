package chunker

import (
	"sort"
	"strings"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
)

// normalizeReplacements folds typographic characters to their ASCII
// equivalents, one rune for one rune.
var normalizeReplacements = map[rune]rune{
	'\r':     '\n',
	'\t':     ' ',
	' ': ' ', // no-break space
	'‘': '\'',
	'’': '\'',
	'“': '"',
	'”': '"',
	'–': '-',
	'—': '-',
	'•': ' ', // bullet
	'­': ' ', // soft hyphen
}

// Normalize folds typographic punctuation and control characters.
func Normalize(text string) string {
	normalized, _ := NormalizeContent(text, nil)
	return normalized
}

// NormalizeContent folds typographic punctuation and remaps the page map's
// byte offsets onto the normalized text. Folding multibyte punctuation to
// ASCII shifts byte offsets, so a page map built for the raw text must be
// carried through the same pass.
func NormalizeContent(text string, pages []domain.PageSpan) (string, []domain.PageSpan) {
	// Page span boundaries ascend, so they can be remapped in one pass.
	boundaries := make([]int, 0, len(pages)*2)
	for _, p := range pages {
		boundaries = append(boundaries, p.StartChar, p.EndChar)
	}
	sort.Ints(boundaries)
	remapped := make(map[int]int, len(boundaries))

	var b strings.Builder
	b.Grow(len(text))
	next := 0
	for oldIdx, r := range text {
		for next < len(boundaries) && boundaries[next] <= oldIdx {
			remapped[boundaries[next]] = b.Len()
			next++
		}
		if repl, ok := normalizeReplacements[r]; ok {
			b.WriteRune(repl)
			continue
		}
		b.WriteRune(r)
	}
	for next < len(boundaries) {
		remapped[boundaries[next]] = b.Len()
		next++
	}

	if len(pages) == 0 {
		return b.String(), nil
	}

	out := make([]domain.PageSpan, len(pages))
	for i, p := range pages {
		out[i] = domain.PageSpan{
			Page:      p.Page,
			StartChar: remapped[p.StartChar],
			EndChar:   remapped[p.EndChar],
		}
	}
	return b.String(), out
}

// IsBlank reports whether the text contains no printable content
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
