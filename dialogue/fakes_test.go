package dialogue

import (
	"context"
	"strings"
	"sync"

	"github.com/poiesic/wellwise/core"
)

type fakeDiagnosis struct {
	mu      sync.Mutex
	calls   []string
	predict func(ctx context.Context, text string, topK int) ([]core.Diagnosis, error)
}

func (f *fakeDiagnosis) Predict(ctx context.Context, text string, topK int) ([]core.Diagnosis, error) {
	f.mu.Lock()
	f.calls = append(f.calls, text)
	f.mu.Unlock()
	if f.predict != nil {
		return f.predict(ctx, text, topK)
	}
	var out []core.Diagnosis
	for i, s := range strings.Split(text, ", ") {
		score := float32(0.96) - float32(i)*0.1
		out = append(out, diagnosis("Disease of "+s, s, score))
	}
	return out, nil
}

func diagnosis(disease, symptom string, score float32) core.Diagnosis {
	return core.NewDiagnosis(disease, symptom, score)
}

type fakeSeverity struct {
	levels map[string]core.SeverityLevel
}

func (f *fakeSeverity) Classify(symptoms []string) []core.Severity {
	out := make([]core.Severity, 0, len(symptoms))
	for _, s := range symptoms {
		level, ok := f.levels[s]
		if !ok {
			level = core.SeverityUnknown
		}
		out = append(out, core.Severity{Symptom: s, Level: level, Alert: level.Alert()})
	}
	return out
}

type fakeFollowup struct {
	questions map[string][]string
}

// QuestionsFor ignores max so tests can check the controller's own cap.
func (f *fakeFollowup) QuestionsFor(symptom string, max int) []string {
	return f.questions[symptom]
}

type fakeFAQ struct {
	score float32
	err   error
	calls []string
}

func (f *fakeFAQ) BestMatch(ctx context.Context, query string, topK int) ([]core.FAQMatch, error) {
	f.calls = append(f.calls, query)
	if f.err != nil {
		return nil, f.err
	}
	return []core.FAQMatch{{
		Question: "What should I do about " + query,
		Answer:   "Rest and drink fluids.",
		Score:    f.score,
	}}, nil
}
