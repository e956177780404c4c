package mock

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/wellwise/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockEmbedder_Deterministic(t *testing.T) {
	m := NewMockEmbedder()
	ctx := context.Background()

	a, err := m.EmbedText(ctx, "High Fever")
	require.NoError(t, err)
	b, err := m.EmbedText(ctx, "high_fever")
	require.NoError(t, err)

	assert.Len(t, a, DefaultDimensions)
	assert.Equal(t, a, b)
	assert.InDelta(t, 1.0, core.Dot(a, a), 1e-5)
	assert.Equal(t, 2, m.CallCount())
}

func TestMockEmbedder_SharedWordsScoreHigher(t *testing.T) {
	m := NewMockEmbedder()
	vs, err := m.EmbedTexts(context.Background(), []string{
		"what causes a fever",
		"what causes a high fever",
		"how to treat a sprained ankle",
	})
	require.NoError(t, err)
	require.Len(t, vs, 3)

	assert.Greater(t, core.Dot(vs[0], vs[1]), core.Dot(vs[0], vs[2]))
	assert.Equal(t, 3, m.TextCount())
	assert.Equal(t, 1, m.CallCount())
}

func TestMockEmbedder_PinnedAndInjected(t *testing.T) {
	m := NewMockEmbedder()
	m.Vectors["fever"] = []float32{1, 0}

	v, err := m.EmbedText(context.Background(), "fever")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0}, v)

	v[0] = 9
	assert.Equal(t, []float32{1, 0}, m.Vectors["fever"])

	boom := errors.New("service down")
	m.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, boom
	}
	_, err = m.EmbedTexts(context.Background(), []string{"x"})
	assert.ErrorIs(t, err, boom)

	m.Reset()
	assert.Zero(t, m.CallCount())
	_, err = m.EmbedTexts(context.Background(), []string{"x"})
	assert.NoError(t, err)
}

func TestMockEmbedder_EmptyText(t *testing.T) {
	v := BagOfWords("?!", 8)
	assert.Equal(t, make([]float32, 8), v)
}

func TestMockProvider(t *testing.T) {
	p := NewMockProviderWithEmbedder(NewMockEmbedder(), "test-model")
	assert.Equal(t, "test-model", p.EmbeddingModel())
	assert.NotNil(t, p.Embedder())
	require.NoError(t, p.Close())
	assert.True(t, p.Closed())

	assert.Equal(t, MockModel, NewMockProvider().EmbeddingModel())
}
