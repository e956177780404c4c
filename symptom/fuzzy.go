package symptom

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// Scorer rates the similarity of two strings on a 0-100 scale.
type Scorer func(a, b string) float64

// Ratio is the normalized indel similarity of a and b, 0-100:
// 100 * 2 * LCS(a, b) / (len(a) + len(b)), counted in runes.
// Two empty strings are identical.
func Ratio(a, b string) float64 {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 100
	}
	if a == b {
		return 100
	}
	return 100 * float64(2*edlib.LCS(a, b)) / float64(total)
}

// TokenSortRatio is Ratio over both strings after sorting their
// whitespace-separated tokens, so word order does not matter.
func TokenSortRatio(a, b string) float64 {
	return Ratio(sortTokens(a), sortTokens(b))
}

func sortTokens(s string) string {
	fields := strings.Fields(s)
	slices.Sort(fields)
	return strings.Join(fields, " ")
}

// Match is the outcome of a best-match search.
type Match struct {
	Term  string
	Index int
	Score float64
}

// BestMatch returns the choice scoring highest against query. The first
// choice wins a tie. ok is false when no choice reaches threshold.
func BestMatch(query string, choices []string, scorer Scorer, threshold float64) (m Match, ok bool) {
	m.Index = -1
	for i, choice := range choices {
		score := scorer(query, choice)
		if m.Index < 0 || score > m.Score {
			m = Match{Term: choice, Index: i, Score: score}
		}
	}
	if m.Index < 0 || m.Score < threshold {
		return Match{Index: -1}, false
	}
	return m, true
}
