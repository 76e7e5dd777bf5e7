package repository

import "errors"

var (
	// ErrNotFound is returned when no party matches the lookup
	ErrNotFound = errors.New("party not found")

	// ErrInvalidID is returned when an ID format is invalid
	ErrInvalidID = errors.New("invalid party ID format")
)
