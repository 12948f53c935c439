package moda

import (
	"context"
	"io"
)

// Loop drives one conversation against a Provider: it opens the event
// stream for a turn and applies every event to the Conversation, in
// order, until the stream ends.
type Loop struct {
	provider Provider
	conv     *Conversation
}

// NewLoop creates a new Loop with the given provider and conversation.
func NewLoop(provider Provider, conv *Conversation) *Loop {
	return &Loop{provider: provider, conv: conv}
}

// RunOption configures a single Send invocation.
type RunOption func(*runConfig)

type runConfig struct {
	onUpdate func(Session)
}

// WithSnapshotHandler sets a callback that receives a read-only session
// snapshot after each applied event. If nil or not set, snapshots are not
// taken.
func WithSnapshotHandler(h func(Session)) RunOption {
	return func(c *runConfig) {
		c.onUpdate = h
	}
}

// Send submits one user message and blocks until the backend's event
// stream for that turn ends. A send while a turn is open is rejected with
// ErrTurnOpen and leaves session state untouched. Cancellation flows
// through ctx: aborting the transport read fails the open turn. No retry
// is performed; retry policy belongs to the caller.
func (l *Loop) Send(ctx context.Context, text string, opts ...RunOption) error {
	var cfg runConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	req, err := l.conv.Begin(text)
	if err != nil {
		return err
	}
	notify := func() {
		if cfg.onUpdate != nil {
			cfg.onUpdate(l.conv.Snapshot())
		}
	}
	notify()

	stream, err := l.provider.Stream(ctx, req)
	if err != nil {
		l.conv.Fail(err)
		notify()
		return err
	}
	defer stream.Close()

	for {
		evt, err := stream.Next()
		if err == io.EOF {
			l.conv.EndStream()
			notify()
			return nil
		}
		if err != nil {
			l.conv.Fail(err)
			notify()
			return err
		}
		l.conv.Apply(evt)
		notify()
	}
}
