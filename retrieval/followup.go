package retrieval

import (
	"strings"
)

// FollowupBank serves clarifying questions per symptom.
type FollowupBank struct {
	questions map[string][]string
}

// DefaultFollowups returns the built-in questions used when no follow-up
// file is supplied.
func DefaultFollowups() map[string][]string {
	return map[string][]string{
		"fever": {
			"How high has your temperature been?",
			"How many days have you had the fever?",
			"Do you also have chills or sweating?",
		},
		"headache": {
			"Where in your head is the pain located?",
			"How long has the headache lasted?",
			"Is the pain sensitive to light or noise?",
		},
		"nausea": {
			"Have you vomited?",
			"Is the nausea worse after eating?",
			"How long have you felt nauseous?",
		},
		"chest_pain": {
			"Is the pain sharp, dull or pressing?",
			"Does the pain spread to your arm, neck or jaw?",
			"Does it get worse with exertion?",
		},
		"rash": {
			"Where on your body is the rash?",
			"Is the rash itchy or painful?",
			"Have you started any new medication or product recently?",
		},
	}
}

// NewFollowupBank builds a bank from symptom name to questions. Keys are
// lowercased and trimmed; blank questions are dropped.
func NewFollowupBank(questions map[string][]string) *FollowupBank {
	bank := make(map[string][]string, len(questions))
	for symptom, qs := range questions {
		key := strings.ToLower(strings.TrimSpace(symptom))
		if key == "" {
			continue
		}
		var kept []string
		for _, q := range qs {
			if q = strings.TrimSpace(q); q != "" {
				kept = append(kept, q)
			}
		}
		if len(kept) > 0 {
			bank[key] = append(bank[key], kept...)
		}
	}
	return &FollowupBank{questions: bank}
}

// QuestionsFor returns up to max questions for symptom (all of them when
// max <= 0). The lookup tries the lowercase key, then its underscore and
// space variants. Unknown symptoms yield nil.
func (b *FollowupBank) QuestionsFor(symptom string, max int) []string {
	qs := b.lookup(symptom)
	if max > 0 && len(qs) > max {
		qs = qs[:max]
	}
	if len(qs) == 0 {
		return nil
	}
	return append([]string(nil), qs...)
}

func (b *FollowupBank) lookup(symptom string) []string {
	key := strings.ToLower(strings.TrimSpace(symptom))
	for _, k := range []string{
		key,
		strings.ReplaceAll(key, "_", " "),
		strings.ReplaceAll(key, " ", "_"),
	} {
		if qs, ok := b.questions[k]; ok {
			return qs
		}
	}
	return nil
}

// Has reports whether symptom has any questions.
func (b *FollowupBank) Has(symptom string) bool {
	return len(b.lookup(symptom)) > 0
}

// Coverage returns the percentage of vocabulary terms that have questions.
func (b *FollowupBank) Coverage(vocabulary []string) float64 {
	if len(vocabulary) == 0 {
		return 0
	}
	covered := 0
	for _, term := range vocabulary {
		if b.Has(term) {
			covered++
		}
	}
	return float64(covered) / float64(len(vocabulary)) * 100
}

// Len returns the number of symptoms with questions.
func (b *FollowupBank) Len() int {
	return len(b.questions)
}
