package dataset

import (
	"strings"
	"testing"

	"github.com/poiesic/wellwise/core"
	"github.com/poiesic/wellwise/symptom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSymptomDiseases(t *testing.T) {
	t.Run("wide form", func(t *testing.T) {
		in := "Disease,Symptom_1,Symptom_2,Symptom_3\n" +
			"Malaria, chills, High Fever,\n" +
			"Flu,high fever,cough,chills\n" +
			"Malaria,chills,,\n"
		records, err := LoadSymptomDiseases(strings.NewReader(in))
		require.NoError(t, err)

		require.Len(t, records, 3)
		assert.Equal(t, "chills", records[0].Name)
		assert.Equal(t, []string{"malaria", "flu"}, records[0].Diseases)
		assert.Equal(t, "high_fever", records[1].Name)
		assert.Equal(t, []string{"malaria", "flu"}, records[1].Diseases)
		assert.Equal(t, "cough", records[2].Name)
		assert.Equal(t, []string{"flu"}, records[2].Diseases)
	})

	t.Run("long form", func(t *testing.T) {
		in := "Disease,Symptom\nMigraine,headache\nHypertension,headache\n,orphan\n"
		records, err := LoadSymptomDiseases(strings.NewReader(in))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, []string{"migraine", "hypertension"}, records[0].Diseases)
	})

	t.Run("missing columns", func(t *testing.T) {
		_, err := LoadSymptomDiseases(strings.NewReader("Name,Symptom\nx,y\n"))
		assert.ErrorIs(t, err, ErrMissingColumn)
		_, err = LoadSymptomDiseases(strings.NewReader("Disease,Other\nx,y\n"))
		assert.ErrorIs(t, err, ErrMissingColumn)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := LoadSymptomDiseases(strings.NewReader(""))
		assert.ErrorIs(t, err, ErrMalformed)
	})
}

func TestLoadSeverities(t *testing.T) {
	in := "Symptom,weight\nitching,1\nskin rash,3\nchest_pain,7\nmuscle_pain,2\nchest_pain,1\n"
	levels, err := LoadSeverities(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, core.SeverityMild, levels["itching"])
	assert.Equal(t, core.SeverityModerate, levels["skin_rash"])
	assert.Equal(t, core.SeveritySevere, levels["chest_pain"], "first row wins")
	assert.Equal(t, core.SeverityMild, levels["muscle_pain"])

	t.Run("bucket names", func(t *testing.T) {
		in := "Symptom,SeverityLevel\nheadache,Moderate\nfever,severe\n"
		levels, err := LoadSeverities(strings.NewReader(in))
		require.NoError(t, err)
		assert.Equal(t, core.SeverityModerate, levels["headache"])
		assert.Equal(t, core.SeveritySevere, levels["fever"])
	})

	t.Run("invalid severity", func(t *testing.T) {
		_, err := LoadSeverities(strings.NewReader("Symptom,Severity\nfever,terrible\n"))
		assert.ErrorIs(t, err, ErrInvalidSeverity)
		assert.Contains(t, err.Error(), "line 2")
	})
}

func TestLoadFAQs(t *testing.T) {
	in := "Question,Answer\n" +
		"What is a fever?,A high temperature.\n" +
		"\"How much water, roughly?\",About two litres.\n" +
		"What is a fever?,Something else.\n" +
		"No answer,\n"
	records, err := LoadFAQs(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "A high temperature.", records[0].Answer)
	assert.Equal(t, "How much water, roughly?", records[1].Question)
}

func TestLoadFollowups(t *testing.T) {
	questions, err := LoadFollowups(strings.NewReader(`{"fever": ["How high?", "How long?"]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"How high?", "How long?"}, questions["fever"])

	_, err = LoadFollowups(strings.NewReader(`{"fever": `))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestLoadSynonyms(t *testing.T) {
	in := `
synonyms:
  - canonical: Vomiting
    variants: [vomited, " Threw Up ", ""]
  - canonical: ""
    variants: [ignored]
`
	synonyms, err := LoadSynonyms(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, symptom.SynonymMap{"vomited": "vomiting", "threw up": "vomiting"}, synonyms)

	empty, err := LoadSynonyms(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = LoadSynonyms(strings.NewReader("synonyms: [unclosed"))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestLoadVocabulary(t *testing.T) {
	terms, err := LoadVocabulary(strings.NewReader("# symptoms\nfever\n\n  chest pain \n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"fever", "chest pain"}, terms)
}
