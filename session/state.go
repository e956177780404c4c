package session

// State is everything a conversation carries from one turn to the next.
// The dialogue controller takes a State and returns a new one; callers keep
// whichever value they want to continue from.
type State struct {
	Phase Phase

	// Pending lists the symptoms whose follow-up questions await an answer.
	// Set only in AwaitingFollowupAnswer.
	Pending []string

	// Held is the unclear input kept while the user picks a clarification
	// choice. Set only in ClarifyingIntent.
	Held string

	Tracker *Tracker
}

// NewState returns the state of a fresh conversation.
func NewState() State {
	return State{
		Phase:   AwaitingInput,
		Tracker: NewTracker(),
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	c := s
	c.Pending = append([]string(nil), s.Pending...)
	if s.Tracker != nil {
		c.Tracker = s.Tracker.Clone()
	} else {
		c.Tracker = NewTracker()
	}
	return c
}
