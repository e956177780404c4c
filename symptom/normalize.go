package symptom

import (
	"cmp"
	"slices"
	"strings"
)

// SynonymMap maps a surface form to the canonical term it should be read as.
type SynonymMap map[string]string

// DefaultSynonyms returns the built-in synonym map.
func DefaultSynonyms() SynonymMap {
	return SynonymMap{
		"vomited":      "vomiting",
		"dizzy":        "dizziness",
		"dizziness":    "dizziness",
		"nauseous":     "nausea",
		"headaches":    "headache",
		"coughing":     "cough",
		"fevers":       "fever",
		"palpitations": "palpitation",
	}
}

type substitution struct {
	from string
	to   string
}

// Normalizer lowercases text and rewrites synonyms before clause splitting.
type Normalizer struct {
	subs []substitution
}

// NewNormalizer creates a Normalizer for the given synonyms.
//
// Substitution is plain substring replacement, not word-boundary aware, so
// application order matters. Longer surface forms are applied first and
// equal lengths are applied in lexical order.
func NewNormalizer(synonyms SynonymMap) *Normalizer {
	subs := make([]substitution, 0, len(synonyms))
	for from, to := range synonyms {
		from = flatten(strings.ToLower(strings.TrimSpace(from)))
		to = flatten(strings.ToLower(strings.TrimSpace(to)))
		if from == "" || from == to {
			continue
		}
		subs = append(subs, substitution{from: from, to: to})
	}
	slices.SortFunc(subs, func(a, b substitution) int {
		if c := cmp.Compare(len(b.from), len(a.from)); c != 0 {
			return c
		}
		return cmp.Compare(a.from, b.from)
	})
	return &Normalizer{subs: subs}
}

// Normalize lowercases text, turns phrase separators into spaces and applies
// every synonym substitution in order.
func (n *Normalizer) Normalize(text string) string {
	out := flatten(strings.ToLower(text))
	for _, s := range n.subs {
		out = strings.ReplaceAll(out, s.from, s.to)
	}
	return out
}

// Clauses normalizes text and splits it into clauses.
func (n *Normalizer) Clauses(text string) []string {
	return SplitClauses(n.Normalize(text))
}

// SplitClauses splits text on . ; , : ! ? and drops clauses that are empty
// after trimming.
func SplitClauses(text string) []string {
	parts := strings.FieldsFunc(text, isClauseBreak)
	clauses := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			clauses = append(clauses, p)
		}
	}
	return clauses
}

func isClauseBreak(r rune) bool {
	switch r {
	case '.', ';', ',', ':', '!', '?':
		return true
	}
	return false
}

var flattener = strings.NewReplacer(PhraseSeparator, " ", "’", "'", "‘", "'")

// flatten makes canonical phrases read as words and folds typographic
// apostrophes so contractions tokenize as one unit.
func flatten(s string) string {
	return flattener.Replace(s)
}
