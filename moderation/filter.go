// Package moderation implements the client-side mute-word filter: words the
// user asked never to see are masked at render time. The projection stores
// messages untouched; only the presentation is filtered.
package moderation

import (
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
)

type Filter struct {
	matcher *goahocorasick.Machine
	mask    rune
}

// NewFilter builds the Aho-Corasick automaton over normalized mute words.
func NewFilter(words []string, mask rune) (Filter, error) {
	patterns := make([][]rune, len(words))
	for i, word := range words {
		patterns[i] = normalize([]rune(word), nil)
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return Filter{}, err
	}
	return Filter{matcher: m, mask: mask}, nil
}

// Mask replaces every muted word occurrence with the mask rune, preserving
// length and spacing. Matching ignores case, punctuation, and spacing so
// "b a d" still matches "bad".
func (f Filter) Mask(original string) string {
	origRunes := []rune(original)
	origIdx := make([]int, 0, len(origRunes))
	normalized := normalize(origRunes, &origIdx)
	if len(normalized) == 0 {
		return original
	}

	spans := f.matcher.MultiPatternSearch(normalized, false)
	if len(spans) == 0 {
		return original
	}

	for _, span := range spans {
		start := span.Pos
		end := start + len(span.Word)
		if start < 0 || end > len(origIdx) {
			continue
		}
		// Mask the original range covered by the normalized match.
		for i := origIdx[start]; i <= origIdx[end-1]; i++ {
			origRunes[i] = f.mask
		}
	}

	return string(origRunes)
}

// normalize lowercases and strips noise runes. When idx is non-nil it
// records, per kept rune, its position in the input.
func normalize(input []rune, idx *[]int) []rune {
	out := make([]rune, 0, len(input))
	for i, r := range input {
		if unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r) {
			continue
		}
		out = append(out, unicode.ToLower(r))
		if idx != nil {
			*idx = append(*idx, i)
		}
	}
	return out
}
