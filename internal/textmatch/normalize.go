// Package textmatch provides the Arabic text primitives shared by search and
// recommendation: normalization, edit-distance similarity and keyword
// extraction. Every function is pure and safe for concurrent use.
package textmatch

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// arabicMarks covers the combining marks written over or under Arabic
// letters: Quranic annotation signs, tanween, short vowels, shadda, sukun,
// the superscript alef and the small high/low Quranic marks.
var arabicMarks = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0610, Hi: 0x061A, Stride: 1},
		{Lo: 0x064B, Hi: 0x065F, Stride: 1},
		{Lo: 0x0670, Hi: 0x0670, Stride: 1},
		{Lo: 0x06D6, Hi: 0x06DC, Stride: 1},
		{Lo: 0x06DF, Hi: 0x06E4, Stride: 1},
		{Lo: 0x06E7, Hi: 0x06E8, Stride: 1},
		{Lo: 0x06EA, Hi: 0x06ED, Stride: 1},
	},
}

const (
	alef        = 'ا'
	ya          = 'ي'
	ha          = 'ه'
	alefMaksura = 'ى'
	taMarbuta   = 'ة'
)

// unifyLetter collapses orthographic variants to a single letter form.
// None of the outputs is itself an input, which keeps Normalize idempotent.
func unifyLetter(r rune) rune {
	switch r {
	case 'آ', 'أ', 'إ', 'ٱ': // madda, hamza above, hamza below, wasla
		return alef
	case alefMaksura:
		return ya
	case taMarbuta:
		return ha
	default:
		return r
	}
}

// Normalize canonicalizes Arabic text for comparison: diacritics are
// removed, alef forms become bare alef, alef maksura becomes ya and
// ta marbuta becomes ha. The result is trimmed. Empty input yields "".
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	t := transform.Chain(runes.Remove(runes.In(arabicMarks)), runes.Map(unifyLetter))
	out, _, err := transform.String(t, text)
	if err != nil {
		out = text
	}

	return strings.TrimSpace(out)
}

// Canonical lower-cases and then normalizes. All comparisons in the engine
// go through Canonical so Latin fragments in mixed text compare
// case-insensitively.
func Canonical(text string) string {
	if text == "" {
		return ""
	}
	return Normalize(lowerString(text))
}

// lowerString builds a caser per call; a cases.Caser keeps state and must
// not be shared between goroutines.
func lowerString(s string) string {
	return cases.Lower(language.Und).String(s)
}
