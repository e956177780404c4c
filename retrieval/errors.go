package retrieval

import "errors"

var (
	// ErrRepositoryRequired is returned when an oracle is built without its repository.
	ErrRepositoryRequired = errors.New("repository is required")

	// ErrEmbedderRequired is returned when an oracle is built without an embedder.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrInvalidOption is returned when an option value is out of range.
	ErrInvalidOption = errors.New("invalid option")

	// ErrEmbeddingFailed wraps embedder failures at query time.
	ErrEmbeddingFailed = errors.New("embedding failed")
)
