package ai

import "errors"

var (
	// ErrInvalidConfig indicates a missing or malformed configuration value.
	ErrInvalidConfig = errors.New("ai config")

	// ErrEmptyEmbedding indicates the service returned no vector for an input.
	ErrEmptyEmbedding = errors.New("empty embedding")

	// ErrEmbeddingCount indicates the service returned a different number of
	// vectors than texts sent.
	ErrEmbeddingCount = errors.New("embedding count mismatch")
)
