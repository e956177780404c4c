package symptom

import (
	"strings"
)

// PhraseSeparator joins the words of a multi-word vocabulary term.
const PhraseSeparator = "_"

// Vocabulary is the fixed list of known canonical symptom terms.
// Terms are lowercase, deduplicated and kept in first-seen order; the order
// decides ties during fuzzy matching.
type Vocabulary struct {
	terms   []string
	words   []string
	phrases []string
	index   map[string]struct{}
}

// NewVocabulary builds a vocabulary from raw terms. Each term is trimmed and
// lowercased, inner whitespace is collapsed into PhraseSeparator, and empty
// or repeated terms are skipped.
func NewVocabulary(terms []string) *Vocabulary {
	v := &Vocabulary{
		index: make(map[string]struct{}, len(terms)),
	}
	for _, raw := range terms {
		term := CanonicalTerm(raw)
		if term == "" {
			continue
		}
		if _, seen := v.index[term]; seen {
			continue
		}
		v.index[term] = struct{}{}
		v.terms = append(v.terms, term)
		if strings.Contains(term, PhraseSeparator) {
			v.phrases = append(v.phrases, term)
		} else {
			v.words = append(v.words, term)
		}
	}
	return v
}

// CanonicalTerm lowercases a term and joins its words with PhraseSeparator.
func CanonicalTerm(raw string) string {
	fields := strings.Fields(strings.ToLower(raw))
	return strings.Join(fields, PhraseSeparator)
}

// Terms returns all terms in vocabulary order.
func (v *Vocabulary) Terms() []string {
	return append([]string(nil), v.terms...)
}

// Words returns the single-word terms in vocabulary order.
func (v *Vocabulary) Words() []string {
	return append([]string(nil), v.words...)
}

// Phrases returns the underscore-joined terms in vocabulary order.
func (v *Vocabulary) Phrases() []string {
	return append([]string(nil), v.phrases...)
}

// Contains reports whether term is in the vocabulary.
func (v *Vocabulary) Contains(term string) bool {
	_, ok := v.index[CanonicalTerm(term)]
	return ok
}

// Len returns the number of terms.
func (v *Vocabulary) Len() int {
	return len(v.terms)
}
