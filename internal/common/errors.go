package common

import "errors"

var (
	// ErrUnknownOrder marks a cancel, delete or execute referencing an id
	// that is not currently resting. Expected during replay when the
	// referenced order was already filled; never fatal.
	ErrUnknownOrder = errors.New("unknown order")

	// ErrInvalidEvent marks an event that cannot be applied at all, such
	// as a non-positive size or a limit order without a price. The event
	// is rejected and the book is left untouched.
	ErrInvalidEvent = errors.New("invalid event")
)
