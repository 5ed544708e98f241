package textmatch

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Similarity returns 1 - editDistance/maxLength between the canonical forms
// of a and b. It is 0 when either side is empty after canonicalization and
// 1 when both are equal. The score is symmetric and always in [0, 1].
func Similarity(a, b string) float64 {
	return CanonicalSimilarity(Canonical(a), Canonical(b))
}

// CanonicalSimilarity is Similarity for inputs that already went through
// Canonical. The search engine canonicalizes the query once and reuses it
// across every candidate.
func CanonicalSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	// The levenshtein library works on runes, so the length has to be a
	// rune count as well: "قياس" is 4 runes but 8 bytes.
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}

	distance := levenshtein.ComputeDistance(a, b)
	similarity := 1.0 - float64(distance)/float64(maxLen)
	if similarity < 0 {
		similarity = 0
	}
	return similarity
}
