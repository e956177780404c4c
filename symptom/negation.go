package symptom

import (
	"regexp"
	"strings"
)

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]+(?:'[\p{L}\p{N}_]+)?`)

var negationWords = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "nothing": {},
	"don't": {}, "dont": {}, "didn't": {}, "didnt": {},
	"isn't": {}, "isnt": {}, "wasn't": {}, "wasnt": {},
	"aren't": {}, "arent": {}, "can't": {}, "cant": {},
	"couldn't": {}, "couldnt": {}, "won't": {}, "wont": {},
	"shouldn't": {}, "shouldnt": {}, "wouldn't": {}, "wouldnt": {},
	"haven't": {}, "havent": {}, "hasn't": {}, "hasnt": {},
	"hadn't": {}, "hadnt": {},
}

// Tokenize returns the word-like units of a clause: runs of letters, digits
// and underscores in any script, optionally carrying one embedded apostrophe
// contraction ("didn't").
func Tokenize(clause string) []string {
	return tokenPattern.FindAllString(clause, -1)
}

// IsNegationWord reports whether token is a negation word, ignoring case.
func IsNegationWord(token string) bool {
	_, ok := negationWords[strings.ToLower(token)]
	return ok
}

// IsNegated reports whether any token of clause is a negation word. A negated
// clause contributes no symptoms at all.
func IsNegated(clause string) bool {
	for _, tok := range Tokenize(clause) {
		if IsNegationWord(tok) {
			return true
		}
	}
	return false
}
