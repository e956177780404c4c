package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/wellwise/ai/mock"
	"github.com/poiesic/wellwise/core"
	"github.com/poiesic/wellwise/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSymptoms(t *testing.T) (*badger.Repositories, *mock.MockEmbedder) {
	t.Helper()
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	_, err = repos.Symptoms.PutSymptoms(context.Background(),
		&core.SymptomRecord{Name: "fever", Diseases: []string{"flu", "malaria"}, Vector: []float32{1, 0, 0, 0}},
		&core.SymptomRecord{Name: "chills", Diseases: []string{"malaria"}, Vector: []float32{0.8, 0.6, 0, 0}},
		&core.SymptomRecord{Name: "headache", Diseases: []string{"migraine", "hypertension"}, Vector: []float32{0, 0, 1, 0}},
		&core.SymptomRecord{Name: "cough", Diseases: []string{"bronchitis"}, Vector: []float32{0, 1, 0, 0}},
		&core.SymptomRecord{Name: "skin_rash", Diseases: []string{"chicken pox"}, Vector: []float32{0, 0, 0, 1}},
		&core.SymptomRecord{Name: "nausea", Diseases: []string{"hepatitis a"}},
		&core.SymptomRecord{Name: "anxiety"},
	)
	require.NoError(t, err)
	return repos, mock.NewMockEmbedder()
}

func TestNewDiagnoser_Errors(t *testing.T) {
	repos, embedder := setupSymptoms(t)
	ctx := context.Background()

	_, err := NewDiagnoser(ctx, nil, embedder)
	assert.ErrorIs(t, err, ErrRepositoryRequired)

	_, err = NewDiagnoser(ctx, repos.Symptoms, nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	_, err = NewDiagnoser(ctx, repos.Symptoms, embedder, WithSpellThreshold(0))
	assert.ErrorIs(t, err, ErrInvalidOption)
}

func TestDiagnoser_Predict(t *testing.T) {
	repos, embedder := setupSymptoms(t)
	ctx := context.Background()
	d, err := NewDiagnoser(ctx, repos.Symptoms, embedder)
	require.NoError(t, err)

	t.Run("single symptom", func(t *testing.T) {
		got, err := d.Predict(ctx, "fever", 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Flu", got[0].Disease)
		assert.Equal(t, "Malaria", got[1].Disease)
		assert.Equal(t, "fever", got[1].MatchedSymptom)
		assert.Equal(t, 100, got[0].Confidence)
		assert.Equal(t, core.ConfidenceVeryHigh, got[0].Bucket)
		assert.Zero(t, embedder.CallCount())
	})

	t.Run("spell corrected and averaged", func(t *testing.T) {
		got, err := d.Predict(ctx, "Fevr,\nheadache", 3)
		require.NoError(t, err)
		require.Len(t, got, 3)

		var diseases []string
		for _, g := range got {
			diseases = append(diseases, g.Disease)
			assert.Equal(t, 71, g.Confidence)
			assert.Equal(t, core.ConfidenceModerate, g.Bucket)
		}
		assert.Contains(t, diseases, "Flu")
		assert.Contains(t, diseases, "Migraine")
	})

	t.Run("deduplicated by disease", func(t *testing.T) {
		got, err := d.Predict(ctx, "fever, chills", 5)
		require.NoError(t, err)
		seen := make(map[string]bool)
		for _, g := range got {
			assert.False(t, seen[g.Disease], g.Disease)
			seen[g.Disease] = true
		}
		for i := 1; i < len(got); i++ {
			assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
		}
	})

	t.Run("title cased", func(t *testing.T) {
		got, err := d.Predict(ctx, "skin rash", 1)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Chicken Pox", got[0].Disease)
		assert.Equal(t, "skin_rash", got[0].MatchedSymptom)
	})

	t.Run("nothing recognized", func(t *testing.T) {
		got, err := d.Predict(ctx, "xyz, , qqq", 5)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)

		got, err = d.Predict(ctx, "anxiety", 5)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestDiagnoser_EmbedsMissingVectors(t *testing.T) {
	repos, embedder := setupSymptoms(t)
	embedder.Vectors["nausea"] = []float32{0, 0, 0, 2}
	ctx := context.Background()

	d, err := NewDiagnoser(ctx, repos.Symptoms, embedder)
	require.NoError(t, err)

	got, err := d.Predict(ctx, "nausea", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Chicken Pox", got[0].Disease)
	assert.Equal(t, 1, embedder.CallCount())

	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("service down")
	}
	_, err = d.Predict(ctx, "nausea", 1)
	assert.ErrorIs(t, err, ErrEmbeddingFailed)
}

func TestDiagnoser_Refresh(t *testing.T) {
	repos, embedder := setupSymptoms(t)
	ctx := context.Background()
	d, err := NewDiagnoser(ctx, repos.Symptoms, embedder)
	require.NoError(t, err)

	assert.Empty(t, d.Known("vomiting"))

	_, err = repos.Symptoms.PutSymptoms(ctx, &core.SymptomRecord{
		Name: "vomiting", Diseases: []string{"gastroenteritis"}, Vector: []float32{0, 1, 0, 0},
	})
	require.NoError(t, err)
	require.NoError(t, d.Refresh(ctx))

	assert.Equal(t, []string{"vomiting", "fever"}, d.Known("vomiting, fever, vomitting"))
}

func TestSplitSymptoms(t *testing.T) {
	assert.Equal(t, []string{"fever", "dry cough", "rash"}, SplitSymptoms(" fever ,dry cough\r\n rash,,"))
	assert.Empty(t, SplitSymptoms(" , \n"))
}

func TestCorrector(t *testing.T) {
	c := NewCorrector([]string{"high_fever", "headache", "chest_pain", "headache"}, DefaultSpellThreshold)
	assert.Equal(t, []string{"chest_pain", "headache", "high_fever"}, c.Names())

	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"headache", "headache", true},
		{"Chest Pain", "chest_pain", true},
		{"hedache", "headache", true},
		{"fever", "", false},
		{"   ", "", false},
	}
	for _, tt := range tests {
		got, ok := c.Correct(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
