package session

// Tracker accumulates the symptoms of one conversation and remembers which
// of them already received follow-up questions. Both sets only grow until
// Clear is called.
//
// A Tracker is not safe for concurrent use; each conversation owns its own.
type Tracker struct {
	symptoms []string
	present  map[string]struct{}
	asked    []string
	askedSet map[string]struct{}
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		present:  make(map[string]struct{}),
		askedSet: make(map[string]struct{}),
	}
}

// Merge adds extracted symptoms and returns the ones that were not tracked
// before, in input order.
func (t *Tracker) Merge(extracted []string) []string {
	var added []string
	for _, s := range extracted {
		if s == "" {
			continue
		}
		if _, ok := t.present[s]; ok {
			continue
		}
		t.present[s] = struct{}{}
		t.symptoms = append(t.symptoms, s)
		added = append(added, s)
	}
	return added
}

// Symptoms returns every tracked symptom in first-seen order.
func (t *Tracker) Symptoms() []string {
	return append([]string{}, t.symptoms...)
}

// Asked returns the symptoms marked as asked, in marking order.
func (t *Tracker) Asked() []string {
	return append([]string{}, t.asked...)
}

// Unasked returns tracked symptoms that have not been marked as asked, in
// first-seen order.
func (t *Tracker) Unasked() []string {
	var out []string
	for _, s := range t.symptoms {
		if _, ok := t.askedSet[s]; !ok {
			out = append(out, s)
		}
	}
	return out
}

// MarkAsked records that follow-ups for symptom were handled. It returns
// false if the symptom was already marked.
func (t *Tracker) MarkAsked(symptom string) bool {
	if _, ok := t.askedSet[symptom]; ok {
		return false
	}
	t.askedSet[symptom] = struct{}{}
	t.asked = append(t.asked, symptom)
	return true
}

// WasAsked reports whether symptom is marked as asked.
func (t *Tracker) WasAsked(symptom string) bool {
	_, ok := t.askedSet[symptom]
	return ok
}

// Len returns the number of tracked symptoms.
func (t *Tracker) Len() int {
	return len(t.symptoms)
}

// Clear empties both sets.
func (t *Tracker) Clear() {
	t.symptoms = nil
	t.asked = nil
	clear(t.present)
	clear(t.askedSet)
}

// Clone returns an independent copy.
func (t *Tracker) Clone() *Tracker {
	c := NewTracker()
	c.Merge(t.symptoms)
	for _, s := range t.asked {
		c.MarkAsked(s)
	}
	return c
}
