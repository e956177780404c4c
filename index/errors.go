package index

import "errors"

var (
	// ErrInvalidConfig is returned when an indexer Config fails validation.
	ErrInvalidConfig = errors.New("invalid index config")

	// ErrInvalidAttempts is returned when a Backoff allows no attempts.
	ErrInvalidAttempts = errors.New("attempts must be greater than 0")

	// ErrRepositoryRequired is returned when a repository is not provided.
	ErrRepositoryRequired = errors.New("repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrDuplicateEntry is returned when a corpus names the same record twice.
	ErrDuplicateEntry = errors.New("duplicate corpus entry")
)
