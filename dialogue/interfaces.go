package dialogue

import (
	"context"

	"github.com/poiesic/wellwise/core"
)

// SymptomExtractor finds canonical symptom terms in free text.
type SymptomExtractor interface {
	Extract(text string) []string
}

// DiagnosisOracle ranks candidate diseases for a comma-separated symptom list.
type DiagnosisOracle interface {
	Predict(ctx context.Context, symptomText string, topK int) ([]core.Diagnosis, error)
}

// SeverityOracle classifies symptoms. It returns exactly one result per
// input symptom and never fails.
type SeverityOracle interface {
	Classify(symptoms []string) []core.Severity
}

// FollowupOracle supplies clarifying questions for a symptom.
type FollowupOracle interface {
	QuestionsFor(symptom string, max int) []string
}

// FAQOracle ranks stored question/answer pairs against a query.
type FAQOracle interface {
	BestMatch(ctx context.Context, query string, topK int) ([]core.FAQMatch, error)
}

// Oracles groups the collaborators the controller consults.
type Oracles struct {
	Diagnosis DiagnosisOracle
	Severity  SeverityOracle
	Followup  FollowupOracle
	FAQ       FAQOracle
}
