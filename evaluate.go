package wellwise

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// EvalCase is a symptom with the diseases a good retrieval should rank in
// its top three.
type EvalCase struct {
	Symptom  string
	Expected []string
}

// DefaultEvalCases returns the built-in retrieval checks.
func DefaultEvalCases() []EvalCase {
	return []EvalCase{
		{"headache", []string{"migraine", "hypertension"}},
		{"vomiting", []string{"gastroenteritis", "peptic ulcer disease"}},
		{"rash", []string{"chickenpox", "measles"}},
		{"nausea", []string{"hepatitis a", "hepatitis b"}},
		{"chills", []string{"malaria", "dengue"}},
		{"fever", []string{"malaria", "flu", "typhoid"}},
		{"cough", []string{"bronchitis", "pneumonia"}},
		{"diarrhoea", []string{"gastroenteritis", "cholera"}},
	}
}

// evalTopK is how many diagnoses are requested per case; the first
// evalHits of them count.
const (
	evalTopK = 5
	evalHits = 3
)

// CaseResult is the outcome of one EvalCase.
type CaseResult struct {
	Symptom  string
	Top      []string
	Hit      bool
	Severity bool
	Latency  time.Duration
}

// Report summarizes an evaluation run. Rates are percentages.
type Report struct {
	Cases []CaseResult

	Top3Accuracy        float64
	MeanLatency         time.Duration
	SeverityMappingRate float64
	FollowupCoverage    float64
}

// Evaluate measures retrieval accuracy and latency on cases, how many case
// symptoms the severity table resolves, and how much of the vocabulary has
// follow-up questions.
func (e *Engine) Evaluate(ctx context.Context, cases []EvalCase) (*Report, error) {
	report := &Report{
		Cases:            make([]CaseResult, 0, len(cases)),
		FollowupCoverage: e.followups.Coverage(e.extractor.Vocabulary().Terms()),
	}
	if len(cases) == 0 {
		return report, nil
	}

	var hits, mapped int
	var total time.Duration
	for _, c := range cases {
		start := time.Now()
		results, err := e.diagnoser.Predict(ctx, c.Symptom, evalTopK)
		latency := time.Since(start)
		if err != nil {
			return nil, fmt.Errorf("evaluating %q: %w", c.Symptom, err)
		}

		res := CaseResult{
			Symptom:  c.Symptom,
			Latency:  latency,
			Severity: e.severity.Covers(c.Symptom),
		}
		for _, d := range results[:min(evalHits, len(results))] {
			res.Top = append(res.Top, strings.ToLower(d.Disease))
		}
		for _, want := range c.Expected {
			for _, got := range res.Top {
				if strings.EqualFold(want, got) {
					res.Hit = true
				}
			}
		}

		if res.Hit {
			hits++
		}
		if res.Severity {
			mapped++
		}
		total += latency
		report.Cases = append(report.Cases, res)
	}

	n := float64(len(cases))
	report.Top3Accuracy = float64(hits) / n * 100
	report.SeverityMappingRate = float64(mapped) / n * 100
	report.MeanLatency = total / time.Duration(len(cases))
	return report, nil
}
