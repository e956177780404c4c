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

func setupFAQ(t *testing.T) (*FAQIndex, *mock.MockEmbedder) {
	t.Helper()
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	questions := map[string]string{
		"What causes a fever?":             "Usually an infection.",
		"How do I treat a sprained ankle?": "Rest, ice, compression and elevation.",
		"When should I see a doctor?":      "If symptoms are severe or persist.",
	}
	for q, a := range questions {
		_, err := repos.FAQs.PutFAQs(context.Background(), &core.FAQRecord{
			Question: q,
			Answer:   a,
			Vector:   mock.BagOfWords(q, mock.DefaultDimensions),
		})
		require.NoError(t, err)
	}

	embedder := mock.NewMockEmbedder()
	idx, err := NewFAQIndex(repos.FAQs, embedder)
	require.NoError(t, err)
	return idx, embedder
}

func TestFAQIndex_BestMatch(t *testing.T) {
	idx, embedder := setupFAQ(t)
	ctx := context.Background()

	got, err := idx.BestMatch(ctx, "what causes a fever?", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "What causes a fever?", got[0].Question)
	assert.Equal(t, "Usually an infection.", got[0].Answer)
	assert.InDelta(t, 1.0, got[0].Score, 1e-5)

	got, err = idx.BestMatch(ctx, "sprained ankle", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "How do I treat a sprained ankle?", got[0].Question)
	assert.GreaterOrEqual(t, got[0].Score, got[1].Score)

	got, err = idx.BestMatch(ctx, "anything", 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	calls := embedder.CallCount()
	got, err = idx.BestMatch(ctx, "   ", 1)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, calls, embedder.CallCount())
}

func TestFAQIndex_Errors(t *testing.T) {
	idx, embedder := setupFAQ(t)
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("service down")
	}

	_, err := idx.BestMatch(context.Background(), "what causes a fever?", 1)
	assert.ErrorIs(t, err, ErrEmbeddingFailed)

	_, err = NewFAQIndex(nil, embedder)
	assert.ErrorIs(t, err, ErrRepositoryRequired)
}
