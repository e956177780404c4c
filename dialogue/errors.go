package dialogue

import "errors"

var (
	// ErrExtractorRequired is returned when no symptom extractor is provided.
	ErrExtractorRequired = errors.New("symptom extractor required")

	// ErrOracleRequired is returned when one of the oracles is missing.
	ErrOracleRequired = errors.New("oracle required")

	// ErrInvalidOption is returned for out-of-range option values.
	ErrInvalidOption = errors.New("invalid option")
)
