package session

import "errors"

var (
	// ErrSessionNotFound is returned for unknown or expired session IDs.
	ErrSessionNotFound = errors.New("session not found")

	// ErrUnknownPhase is returned when decoding an unrecognized phase name.
	ErrUnknownPhase = errors.New("unknown phase")
)
