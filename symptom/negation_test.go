package symptom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"i", "didn't", "sleep"}, Tokenize("i didn't sleep"))
	assert.Equal(t, []string{"fever", "39"}, Tokenize("fever (39)"))
	assert.Empty(t, Tokenize("?!"))
	assert.Equal(t, []string{"fièvre", "and", "fevér"}, Tokenize("fièvre and fevér"))
}

func TestIsNegated(t *testing.T) {
	tests := []struct {
		clause string
		want   bool
	}{
		{"i have no fever", true},
		{"i haven't been sick", true},
		{"i havent been sick", true},
		{"NEVER had it", true},
		{"nothing hurts", true},
		{"i have a fever", false},
		{"a notable rash", false},
		{"no fièvre", true},
		{"éno fever", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.clause, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNegated(tt.clause))
		})
	}
}
