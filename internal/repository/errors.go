package repository

import "errors"

// Storage-level sentinel errors.
var (
	ErrCardNotFound    = errors.New("card not found")
	ErrBoardNotFound   = errors.New("board not found")
	ErrColumnNotFound  = errors.New("column not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrAccountNotFound = errors.New("account not found")

	// ErrConcurrentModification is returned when a write transaction finds
	// the row's fingerprint changed since it was read. The other writer is
	// usually the upstream application, which shares this schema.
	ErrConcurrentModification = errors.New("card modified concurrently")

	// ErrNumberExhausted is returned when card-number allocation keeps
	// colliding with an external writer past the retry bound.
	ErrNumberExhausted = errors.New("card number allocation exhausted")
)
