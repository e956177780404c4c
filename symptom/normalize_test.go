package symptom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizer_Normalize(t *testing.T) {
	n := NewNormalizer(DefaultSynonyms())

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "I Have FEVER", "i have fever"},
		{"rewrites synonyms", "I feel dizzy and nauseous", "i feel dizziness and nausea"},
		{"canonical form is untouched", "dizziness", "dizziness"},
		{"substring substitution", "fevers", "fever"},
		{"phrase separator", "chest_pain", "chest pain"},
		{"typographic apostrophe", "don’t", "don't"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.input))
		})
	}
}

func TestNormalizer_Order(t *testing.T) {
	// The longer surface form is applied first regardless of map order.
	n := NewNormalizer(SynonymMap{
		"ache":     "pain",
		"headache": "migraine",
	})
	assert.Equal(t, "migraine and pain", n.Normalize("headache and ache"))

	// Equal lengths apply lexically.
	n = NewNormalizer(SynonymMap{
		"bb": "cc",
		"aa": "bb",
	})
	assert.Equal(t, "cc", n.Normalize("aa"))
}

func TestNormalizer_CanonicalPhraseValues(t *testing.T) {
	n := NewNormalizer(SynonymMap{"tight chest": "chest_pain"})
	assert.Equal(t, "a chest pain", n.Normalize("a tight chest"))
}

func TestSplitClauses(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"fever. headache;; , cough!", []string{"fever", "headache", "cough"}},
		{"what is this?", []string{"what is this"}},
		{"a: b, c", []string{"a", "b", "c"}},
		{"", []string{}},
		{" . , ", []string{}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitClauses(tt.input), "input %q", tt.input)
	}
}

func TestNormalizer_Clauses(t *testing.T) {
	n := NewNormalizer(DefaultSynonyms())
	assert.Equal(t, []string{"vomiting"}, n.Clauses("Vomited"))
	assert.Equal(t, []string{"fever", "cough all night"}, n.Clauses("Fevers, coughing all night."))
}
