package session

import "fmt"

// Phase is a state of the dialogue state machine.
type Phase int

const (
	// AwaitingInput waits for a fresh description or question.
	AwaitingInput Phase = iota
	// Diagnosing queries the diagnosis and severity oracles. Transient.
	Diagnosing
	// AskingFollowup picks the next symptom to ask about. Transient.
	AskingFollowup
	// AwaitingFollowupAnswer waits for the answer to a follow-up batch.
	AwaitingFollowupAnswer
	// ClarifyingIntent waits for the user to pick what to do with unclear input.
	ClarifyingIntent
	// AnsweringFAQ answers the input as a general question. Transient.
	AnsweringFAQ
	// Terminated is final.
	Terminated
)

var phaseNames = [...]string{
	AwaitingInput:          "AwaitingInput",
	Diagnosing:             "Diagnosing",
	AskingFollowup:         "AskingFollowup",
	AwaitingFollowupAnswer: "AwaitingFollowupAnswer",
	ClarifyingIntent:       "ClarifyingIntent",
	AnsweringFAQ:           "AnsweringFAQ",
	Terminated:             "Terminated",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name.
func (p *Phase) UnmarshalText(text []byte) error {
	for i, name := range phaseNames {
		if name == string(text) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownPhase, text)
}

// Persistent reports whether a turn may end in this phase.
func (p Phase) Persistent() bool {
	switch p {
	case AwaitingInput, AwaitingFollowupAnswer, ClarifyingIntent, Terminated:
		return true
	}
	return false
}
