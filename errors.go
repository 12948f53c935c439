package moda

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrTurnOpen indicates a send was attempted while a turn is open.
	ErrTurnOpen = errors.New("a turn is already in progress")

	// ErrEmptyMessage indicates a send was attempted with no user text.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrStreamClosed indicates an operation on a closed stream.
	ErrStreamClosed = errors.New("stream closed")
)
