package domain

import "errors"

// Sentinel errors shared between usecases and the HTTP layer. Handlers map them
// to status codes; anything unrecognized becomes a 500 with a generic body.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("already exists")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)
