package repository

import "errors"

var (
	// ErrNotFound is returned when no driver matches a lookup or update.
	ErrNotFound = errors.New("driver not found")
)
