package wellwise

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Evaluate(t *testing.T) {
	e := openTestEngine(t)

	report, err := e.Evaluate(context.Background(), DefaultEvalCases())
	require.NoError(t, err)

	require.Len(t, report.Cases, 8)
	assert.Equal(t, 100.0, report.Top3Accuracy)
	assert.Equal(t, 100.0, report.SeverityMappingRate)
	assert.InDelta(t, 12.0/41.0*100, report.FollowupCoverage, 0.01)
	for _, c := range report.Cases {
		assert.LessOrEqual(t, len(c.Top), 3, c.Symptom)
	}
	assert.Equal(t, "migraine", report.Cases[0].Top[0])
}

func TestEngine_EvaluateMisses(t *testing.T) {
	e := openTestEngine(t)

	report, err := e.Evaluate(context.Background(), []EvalCase{
		{Symptom: "headache", Expected: []string{"migraine"}},
		{Symptom: "qwertyuiop", Expected: []string{"flu"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 50.0, report.Top3Accuracy)
	assert.Equal(t, 50.0, report.SeverityMappingRate)
	assert.False(t, report.Cases[1].Hit)
	assert.Empty(t, report.Cases[1].Top)
}

func TestEngine_EvaluateNoCases(t *testing.T) {
	e := openTestEngine(t)

	report, err := e.Evaluate(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, report.Cases)
	assert.Zero(t, report.Top3Accuracy)
	assert.NotZero(t, report.FollowupCoverage)
}
