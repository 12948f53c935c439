package moda

import "context"

// StreamState indicates the current state of a Stream.
type StreamState int

const (
	StreamStateNew       StreamState = iota // Before Next() is ever called.
	StreamStateStreaming                    // Mid-stream, receiving events.
	StreamStateComplete                     // Next() returned io.EOF.
	StreamStateError                        // Next() returned non-EOF error.
	StreamStateClosed                       // Close() called before terminal state.
)

// Stream uses a pull-based iterator pattern over the backend's event
// stream. Cancellation flows through the context passed to
// Provider.Stream(). Next() returns io.EOF when the backend sends its
// end-of-stream sentinel or the transport ends cleanly; any other error
// is fatal for the stream and repeats on subsequent calls.
type Stream interface {
	Next() (Event, error)
	State() StreamState
	Close() error
}

// Provider opens an event stream for one conversation turn.
type Provider interface {
	Stream(ctx context.Context, req Request) (Stream, error)
}

// Request carries one user submission to the backend.
type Request struct {
	Message   string // user text, must be non-empty
	SessionID string // empty on the first turn; the server issues one
}
