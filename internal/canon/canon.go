// Package canon turns country names and column headers into stable join keys.
//
// Two levels are provided:
//
//   - Clean strips invisible characters and surrounding whitespace. It is
//     applied to display strings at load time.
//   - Key lower-cases a cleaned string and folds punctuation to spaces. Two
//     names refer to the same country when their keys are equal.
//
// Diacritics are not folded by Key. Fold does that on top of Key and is
// meant for approximate suggestions only.
//
// All functions are pure and safe for concurrent use.
package canon

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// invisible runes removed wherever they occur.
var invisible = map[rune]bool{
	'\u200b': true, // zero-width space
	'\u200c': true, // zero-width non-joiner
	'\u200d': true, // zero-width joiner
	'\ufeff': true, // byte-order mark
	'\u2060': true, // word joiner
	'\u00a0': true, // no-break space
}

// punctToSpace runes each become a single space before whitespace collapse.
var punctToSpace = map[rune]bool{
	'.':      true,
	',':      true,
	'\'':     true,
	'"':      true,
	'\u2019': true, // right single quotation mark
	'(':      true,
	')':      true,
	'-':      true,
	'\u2013': true, // en dash
	'\u2014': true, // em dash
}

// Clean removes invisible runes anywhere in s and trims surrounding whitespace.
// Case and punctuation are preserved.
func Clean(s string) string {
	if strings.IndexFunc(s, isInvisible) >= 0 {
		s = strings.Map(func(r rune) rune {
			if invisible[r] {
				return -1
			}
			return r
		}, s)
	}
	return strings.TrimSpace(s)
}

// Key returns the canonical join key for s.
// Key is idempotent: Key(Key(s)) == Key(s).
func Key(s string) string {
	s = strings.ToLower(Clean(s))
	s = strings.Map(func(r rune) rune {
		if punctToSpace[r] {
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// Value canonicalizes v when it is a string. A nil value maps to the empty
// key; any other type is returned unchanged.
func Value(v any) any {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return Key(x)
	default:
		return v
	}
}

// Fold returns Key(s) with combining marks removed ("Côte" -> "cote").
// A chained transformer carries state, so one is built per call.
func Fold(s string) string {
	key := Key(s)
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(stripMarks, key)
	if err != nil {
		return key
	}
	return folded
}

func isInvisible(r rune) bool {
	return invisible[r]
}
