package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/wellwise/core"
	"github.com/poiesic/wellwise/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymptomRepository_PutGet(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()
	ctx := context.Background()

	added, err := repos.Symptoms.PutSymptoms(ctx, &core.SymptomRecord{
		Name:     "chest_pain",
		Diseases: []string{"Heart attack", "GERD"},
		Vector:   []float32{0.6, 0.8},
	})
	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.Equal(t, core.IDFromContent("chest_pain"), added[0].Id)
	assert.False(t, added[0].InsertedAt.IsZero())
	assert.Equal(t, added[0].InsertedAt, added[0].UpdatedAt)

	got, err := repos.Symptoms.GetSymptom(ctx, "chest_pain")
	require.NoError(t, err)
	assert.Equal(t, []string{"Heart attack", "GERD"}, got.Diseases)
	assert.Equal(t, []float32{0.6, 0.8}, got.Vector)

	_, err = repos.Symptoms.GetSymptom(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSymptomRepository_ReplaceKeepsInsertedAt(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()
	ctx := context.Background()

	first, err := repos.Symptoms.PutSymptoms(ctx, &core.SymptomRecord{Name: "fever", Diseases: []string{"Flu"}})
	require.NoError(t, err)
	inserted := first[0].InsertedAt

	time.Sleep(2 * time.Millisecond)
	_, err = repos.Symptoms.PutSymptoms(ctx, &core.SymptomRecord{
		Name:     "fever",
		Diseases: []string{"Flu", "Malaria"},
		Vector:   []float32{1, 0},
	})
	require.NoError(t, err)

	got, err := repos.Symptoms.GetSymptom(ctx, "fever")
	require.NoError(t, err)
	assert.Equal(t, inserted, got.InsertedAt)
	assert.True(t, got.UpdatedAt.After(inserted))
	assert.Equal(t, []string{"Flu", "Malaria"}, got.Diseases)

	all, err := repos.Symptoms.AllSymptoms(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSymptomRepository_Validation(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()
	ctx := context.Background()

	_, err = repos.Symptoms.PutSymptoms(ctx,
		&core.SymptomRecord{Name: "fever"},
		&core.SymptomRecord{Name: "High Fever"},
	)
	assert.ErrorIs(t, err, storage.ErrInvalidRecord)
	assert.ErrorIs(t, err, core.ErrUnnormalizedName)

	// The batch is one transaction.
	all, err := repos.Symptoms.AllSymptoms(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSymptomRepository_GetManyAndDelete(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()
	ctx := context.Background()

	_, err = repos.Symptoms.PutSymptoms(ctx,
		&core.SymptomRecord{Name: "fever"},
		&core.SymptomRecord{Name: "cough"},
		&core.SymptomRecord{Name: "rash"},
	)
	require.NoError(t, err)

	got, err := repos.Symptoms.GetSymptoms(ctx, "rash", "missing", "fever")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "rash", got[0].Name)
	assert.Equal(t, "fever", got[1].Name)

	require.NoError(t, repos.Symptoms.DeleteSymptoms(ctx, core.IDFromContent("cough")))
	_, err = repos.Symptoms.GetSymptom(ctx, "cough")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = repos.Symptoms.DeleteSymptoms(ctx, core.IDFromContent("fever"), core.IDFromContent("cough"))
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Failed delete rolled back.
	_, err = repos.Symptoms.GetSymptom(ctx, "fever")
	assert.NoError(t, err)
}
