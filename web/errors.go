package web

import "errors"

var (
	// ErrHandlerRequired is returned when NewServer gets no dialogue handler.
	ErrHandlerRequired = errors.New("dialogue handler is required")
	// ErrStoreRequired is returned when NewServer gets no session store.
	ErrStoreRequired = errors.New("session store is required")
)
