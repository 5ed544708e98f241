package textmatch

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// MinKeywordRunes is the shortest token kept as a keyword.
const MinKeywordRunes = 3

// stopWordList holds common Arabic function words: prepositions, pronouns,
// demonstratives, relatives and verb particles. Entries are normalized at
// init so they compare against normalized tokens; "أن" and "إن" share one
// normalized form, so the 28 entries yield 27 distinct stop words.
var stopWordList = []string{
	"من", "إلى", "في", "على", "عن", "مع",
	"هذا", "هذه", "ذلك", "تلك",
	"الذي", "التي", "الذين",
	"هو", "هي", "هم", "أنت", "نحن",
	"أن", "إن", "كان", "كانت", "يكون",
	"قد", "لقد", "لم", "لن", "ثم",
}

var stopWords = func() map[string]struct{} {
	m := make(map[string]struct{}, len(stopWordList))
	for _, w := range stopWordList {
		m[Normalize(w)] = struct{}{}
	}
	return m
}()

// IsStopWord reports whether the normalized token is a stop word.
func IsStopWord(token string) bool {
	_, ok := stopWords[token]
	return ok
}

// KeywordSet is an unordered set of normalized keywords.
type KeywordSet map[string]struct{}

// Len returns the number of keywords.
func (s KeywordSet) Len() int { return len(s) }

// Sorted returns the keywords in lexical order.
func (s KeywordSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for kw := range s {
		out = append(out, kw)
	}
	slices.Sort(out)
	return out
}

// isArabicLetter reports whether r belongs to the Arabic letter blocks.
// Digits, punctuation, marks and tatweel are excluded.
func isArabicLetter(r rune) bool {
	switch {
	case r >= 0x0620 && r <= 0x063F:
		return true
	case r >= 0x0641 && r <= 0x064A:
		return true
	case r >= 0x066E && r <= 0x066F:
		return true
	case r >= 0x0671 && r <= 0x06D3:
		return true
	case r == 0x06D5:
		return true
	case r >= 0x06FA && r <= 0x06FC:
		return true
	}
	return false
}

// ExtractKeywords normalizes text, drops every non-Arabic-letter rune and
// returns the unique tokens that are at least MinKeywordRunes long and are
// not stop words.
func ExtractKeywords(text string) KeywordSet {
	normalized := Normalize(text)
	if normalized == "" {
		return KeywordSet{}
	}

	cleaned := strings.Map(func(r rune) rune {
		if isArabicLetter(r) {
			return r
		}
		return ' '
	}, normalized)

	set := make(KeywordSet)
	for _, token := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(token) < MinKeywordRunes {
			continue
		}
		if IsStopWord(token) {
			continue
		}
		set[token] = struct{}{}
	}
	return set
}

// NormalizeKeywords canonicalizes pre-tagged keywords and removes blanks
// and duplicates while keeping first-seen order.
func NormalizeKeywords(keywords []string) []string {
	if len(keywords) == 0 {
		return nil
	}
	out := make([]string, 0, len(keywords))
	seen := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		c := Canonical(kw)
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
