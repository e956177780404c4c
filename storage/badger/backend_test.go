package badger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/wellwise/core"
	"github.com/poiesic/wellwise/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBackend_InMemory(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestOpenBackend_FileSystem(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "db")
	backend, err := OpenBackend(dir, false)
	require.NoError(t, err)
	defer backend.Close()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestOpenBackend_NotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	_, err := OpenBackend(file, false)
	assert.Error(t, err)
}

func TestBackendClose(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)

	require.NoError(t, backend.Close())
	assert.True(t, backend.IsClosed())

	repo, err := NewSymptomRepository(backend)
	require.NoError(t, err)
	_, err = repo.AllSymptoms(context.Background())
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}

func TestFindSimilar_Symptoms(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()
	_, err = repos.Symptoms.PutSymptoms(ctx,
		&core.SymptomRecord{Name: "fever", Vector: []float32{1, 0, 0}},
		&core.SymptomRecord{Name: "chills", Vector: []float32{0.9, 0.1, 0}},
		&core.SymptomRecord{Name: "rash", Vector: []float32{0, 0, 1}},
		&core.SymptomRecord{Name: "cough"}, // no vector, skipped
	)
	require.NoError(t, err)

	// FAQ records share the backend but never show up in symptom scans.
	_, err = repos.FAQs.PutFAQs(ctx, &core.FAQRecord{
		Question: "What is a fever?", Answer: "A high temperature.", Vector: []float32{1, 0, 0},
	})
	require.NoError(t, err)

	query := []float32{1, 0, 0}

	t.Run("sorted by score", func(t *testing.T) {
		results, err := repos.Symptoms.FindSimilarSymptoms(ctx, query, 0.8, 10)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "fever", results[0].Record.Name)
		assert.InDelta(t, 1.0, results[0].Score, 1e-6)
		assert.Equal(t, "chills", results[1].Record.Name)
	})

	t.Run("threshold", func(t *testing.T) {
		results, err := repos.Symptoms.FindSimilarSymptoms(ctx, query, -1, 10)
		require.NoError(t, err)
		assert.Len(t, results, 3)

		results, err = repos.Symptoms.FindSimilarSymptoms(ctx, query, 0.95, 10)
		require.NoError(t, err)
		assert.Len(t, results, 1)
	})

	t.Run("limit", func(t *testing.T) {
		results, err := repos.Symptoms.FindSimilarSymptoms(ctx, query, -1, 1)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "fever", results[0].Record.Name)

		_, err = repos.Symptoms.FindSimilarSymptoms(ctx, query, -1, 0)
		assert.ErrorIs(t, err, storage.ErrInvalidQuery)
	})

	t.Run("canceled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := repos.Symptoms.FindSimilarSymptoms(cctx, query, -1, 10)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestFindSimilar_FAQs(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()
	_, err = repos.FAQs.PutFAQs(ctx,
		&core.FAQRecord{Question: "What is a fever?", Answer: "A high temperature.", Vector: []float32{0.6, 0.8}},
		&core.FAQRecord{Question: "How do I treat a cold?", Answer: "Rest.", Vector: []float32{0.8, 0.6}},
	)
	require.NoError(t, err)

	results, err := repos.FAQs.FindSimilarFAQs(ctx, []float32{1, 0}, 0, 5)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "How do I treat a cold?", results[0].Record.Question)
	assert.InDelta(t, 0.8, results[0].Score, 1e-6)
	assert.InDelta(t, 0.6, results[1].Score, 1e-6)
}
