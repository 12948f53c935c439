// Package mock provides test doubles for moda interfaces using function fields.
package mock

import (
	"context"
	"io"

	"github.com/modachat/moda"
)

// Interface compliance checks.
var (
	_ moda.Provider = (*Provider)(nil)
	_ moda.Stream   = (*Stream)(nil)
)

// Provider is a test double for moda.Provider.
// Set StreamFn before calling Stream.
type Provider struct {
	StreamFn func(ctx context.Context, req moda.Request) (moda.Stream, error)
}

// Stream delegates to StreamFn.
func (p *Provider) Stream(ctx context.Context, req moda.Request) (moda.Stream, error) {
	return p.StreamFn(ctx, req)
}

// Stream is a test double for moda.Stream.
// Set the function fields for the methods you need. NextFn panics when
// nil to catch missing setup. StateFn and CloseFn are nil-safe (zero
// value and no-op) because test code commonly calls defer stream.Close()
// and these methods rarely need custom behavior.
type Stream struct {
	NextFn  func() (moda.Event, error)
	StateFn func() moda.StreamState
	CloseFn func() error
}

// Next delegates to NextFn.
func (s *Stream) Next() (moda.Event, error) {
	return s.NextFn()
}

// State delegates to StateFn. Returns StreamStateNew when StateFn is nil.
func (s *Stream) State() moda.StreamState {
	if s.StateFn == nil {
		return moda.StreamStateNew
	}
	return s.StateFn()
}

// Close delegates to CloseFn. Returns nil when CloseFn is not set.
func (s *Stream) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}

// Script returns a Stream that replays the given events in order and
// then returns io.EOF, or err instead of EOF when err is non-nil.
func Script(events []moda.Event, err error) *Stream {
	i := 0
	return &Stream{
		NextFn: func() (moda.Event, error) {
			if i < len(events) {
				evt := events[i]
				i++
				return evt, nil
			}
			if err != nil {
				return nil, err
			}
			return nil, io.EOF
		},
	}
}
