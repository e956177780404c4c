package openai

import (
	"testing"

	"github.com/poiesic/wellwise/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	cfg := ai.NewConfig(ai.WithEmbeddingHost("http://localhost:11434"), ai.WithEmbeddingModel("all-minilm"))

	p, err := NewProvider(cfg)
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, "all-minilm", p.EmbeddingModel())
	assert.NotNil(t, p.Embedder())
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
}

func TestNewProvider_InvalidConfig(t *testing.T) {
	_, err := NewProvider(&ai.Config{EmbeddingHost: "http://localhost:11434"})
	assert.ErrorIs(t, err, ai.ErrInvalidConfig)

	_, err = NewEmbedder(&ai.Config{EmbeddingModel: "all-minilm"})
	assert.ErrorIs(t, err, ai.ErrInvalidConfig)
}
