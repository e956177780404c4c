package dataset

import "errors"

var (
	// ErrMissingFile is returned when a required data file is absent.
	ErrMissingFile = errors.New("required data file missing")

	// ErrMissingColumn is returned when a CSV header lacks a needed column.
	ErrMissingColumn = errors.New("missing column")

	// ErrMalformed is returned when a data file cannot be parsed.
	ErrMalformed = errors.New("malformed data file")

	// ErrInvalidSeverity is returned for a severity that is neither a
	// known bucket name nor a numeric weight.
	ErrInvalidSeverity = errors.New("invalid severity")
)
