package model

import "errors"

// Domain errors. Storage-level sentinels live in the repository package.
var (
	// ErrInvalidID is returned when an identifier is not a 25-character
	// base36 string or does not fit in 128 bits.
	ErrInvalidID = errors.New("invalid id")

	// ErrInvalidTransition is returned when a status change is not allowed
	// from the card's current status.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrValidation is returned when input fails a domain validation rule.
	ErrValidation = errors.New("validation failed")
)
