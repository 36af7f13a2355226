package engine

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"wcidash/internal/canon"
)

// minSuggestScore is the lowest similarity reported as a suggestion.
const minSuggestScore = 0.5

type suggestion struct {
	name  string
	score float64
}

// Suggest ranks names by similarity to query on accent-folded keys and
// returns at most n of them. Names with the same canonical key as query
// are skipped; accent variants of it score highest.
func Suggest(names []string, query string, n int) []string {
	q := canon.Fold(query)
	if q == "" || n <= 0 {
		return nil
	}
	qKey := canon.Key(query)

	var found []suggestion
	for _, name := range names {
		k := canon.Fold(name)
		if k == "" || canon.Key(name) == qKey {
			continue
		}

		dist := levenshtein.ComputeDistance(q, k)
		maxLen := utf8.RuneCountInString(q)
		if l := utf8.RuneCountInString(k); l > maxLen {
			maxLen = l
		}
		score := 1.0 - float64(dist)/float64(maxLen)

		// "korea" should surface "korea republic of"
		if len(q) >= 3 && strings.Contains(k, q) && score < 0.9 {
			score = 0.9
		}
		if score >= minSuggestScore {
			found = append(found, suggestion{name: name, score: score})
		}
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].score != found[j].score {
			return found[i].score > found[j].score
		}
		return found[i].name < found[j].name
	})

	out := make([]string, 0, n)
	for _, s := range found {
		if len(out) == n {
			break
		}
		out = append(out, s.name)
	}
	return out
}
