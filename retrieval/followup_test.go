package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFollowupBank_QuestionsFor(t *testing.T) {
	bank := NewFollowupBank(map[string][]string{
		"Fever":        {"q1", "q2", "q3", "q4"},
		"chest pain":   {"Where does it hurt?", "  "},
		"joint_pain":   {"Which joints?"},
		"":             {"orphan"},
		"nothing here": {" "},
	})
	assert.Equal(t, 3, bank.Len())

	assert.Equal(t, []string{"q1", "q2", "q3"}, bank.QuestionsFor("fever", 3))
	assert.Equal(t, []string{"q1", "q2", "q3", "q4"}, bank.QuestionsFor(" FEVER ", 0))
	assert.Equal(t, []string{"Where does it hurt?"}, bank.QuestionsFor("chest_pain", 3))
	assert.Equal(t, []string{"Which joints?"}, bank.QuestionsFor("joint pain", 3))
	assert.Empty(t, bank.QuestionsFor("unknown", 3))
	assert.Empty(t, bank.QuestionsFor("nothing here", 3))

	got := bank.QuestionsFor("fever", 1)
	got[0] = "changed"
	assert.Equal(t, "q1", bank.QuestionsFor("fever", 1)[0])
}

func TestFollowupBank_Coverage(t *testing.T) {
	bank := NewFollowupBank(DefaultFollowups())

	assert.InDelta(t, 50.0, bank.Coverage([]string{"fever", "cough", "chest_pain", "itching"}), 1e-9)
	assert.Zero(t, bank.Coverage(nil))

	for symptom := range DefaultFollowups() {
		assert.Len(t, bank.QuestionsFor(symptom, 3), 3, symptom)
	}
}
