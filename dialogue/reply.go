package dialogue

import (
	"github.com/poiesic/wellwise/core"
	"github.com/poiesic/wellwise/session"
)

// FollowUp is the clarifying questions about one symptom.
type FollowUp struct {
	Symptom   string   `json:"symptom"`
	Questions []string `json:"questions"`
}

// Reply is the controller's response to one turn. Renderers show its parts
// in this order: Messages, Diagnoses, Severities, Disclaimer, FAQ, FollowUps,
// Choices, Prompt.
type Reply struct {
	// Trace lists every phase entered during the turn. The last element is
	// the phase the session now rests in.
	Trace []session.Phase `json:"trace"`
	Phase session.Phase   `json:"phase"`

	NewSymptoms []string `json:"new_symptoms"`
	Symptoms    []string `json:"symptoms"`

	Messages []string `json:"messages,omitempty"`

	// Diagnosed is true when the turn ran diagnosis, even if it found nothing.
	Diagnosed  bool             `json:"diagnosed"`
	Diagnoses  []core.Diagnosis `json:"diagnoses,omitempty"`
	Severities []core.Severity  `json:"severities,omitempty"`
	Disclaimer string           `json:"disclaimer,omitempty"`

	FAQ       *core.FAQMatch `json:"faq,omitempty"`
	FollowUps []FollowUp     `json:"follow_ups,omitempty"`
	Choices   []string       `json:"choices,omitempty"`
	Prompt    string         `json:"prompt,omitempty"`

	Terminated bool `json:"terminated"`
}

func (r *Reply) say(msg string) {
	r.Messages = append(r.Messages, msg)
}
