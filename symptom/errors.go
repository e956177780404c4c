package symptom

import "errors"

var (
	// ErrNilVocabulary is returned when an extractor is built without a vocabulary.
	ErrNilVocabulary = errors.New("vocabulary cannot be nil")

	// ErrInvalidThreshold is returned when a match threshold is outside (0, 100].
	ErrInvalidThreshold = errors.New("threshold must be in (0, 100]")

	// ErrNilNormalizer is returned when WithNormalizer is given nil.
	ErrNilNormalizer = errors.New("normalizer cannot be nil")
)
