package shopagent

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/modachat/moda"
)

// stream implements [moda.Stream] by reading newline-delimited frames
// from an HTTP response body and classifying each payload.
//
// The frame reader knows nothing about event semantics: a frame is any
// line starting with the protocol marker, other lines are discarded, and
// a partial line at a chunk boundary is the scanner's buffering concern.
// The classifier drops malformed payloads silently; an explicit error
// field is fatal and surfaces through Next()'s error return.
type stream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	ctx     context.Context
	logger  *zap.Logger
	state   moda.StreamState

	// sessionID is the last correlation id seen; a change queues an
	// EventSessionID ahead of the frame's semantic event.
	sessionID string
	pending   []moda.Event

	err error // terminal error, if any
}

// Interface compliance check.
var _ moda.Stream = (*stream)(nil)

func newStream(ctx context.Context, body io.ReadCloser, logger *zap.Logger) *stream {
	return &stream{
		body:    body,
		scanner: bufio.NewScanner(body),
		ctx:     ctx,
		logger:  logger,
	}
}

// Next returns the next semantic event. It returns io.EOF when the
// backend sends the [DONE] sentinel or the transport ends cleanly.
func (s *stream) Next() (moda.Event, error) {
	switch s.state {
	case moda.StreamStateComplete:
		return nil, io.EOF
	case moda.StreamStateError:
		return nil, s.err
	case moda.StreamStateClosed:
		return nil, fmt.Errorf("shopagent: %w", moda.ErrStreamClosed)
	}

	for {
		if len(s.pending) > 0 {
			evt := s.pending[0]
			s.pending = s.pending[1:]
			return evt, nil
		}

		payload, err := s.readFrame()
		if err != nil {
			s.terminate(err)
			if s.state == moda.StreamStateComplete {
				return nil, io.EOF
			}
			return nil, s.err
		}
		s.state = moda.StreamStateStreaming

		if err := s.classify(payload); err != nil {
			s.terminate(err)
			return nil, s.err
		}
		// Dropped or empty frames queue nothing; keep reading.
	}
}

// State returns the current stream state.
func (s *stream) State() moda.StreamState {
	return s.state
}

// Close closes the underlying HTTP response body.
func (s *stream) Close() error {
	if s.state != moda.StreamStateComplete && s.state != moda.StreamStateError {
		s.state = moda.StreamStateClosed
	}
	return s.body.Close()
}

// readFrame reads lines until the next frame payload. It returns io.EOF
// for the [DONE] sentinel and for clean transport end.
func (s *stream) readFrame() (string, error) {
	for s.scanner.Scan() {
		line := s.scanner.Text()
		if !strings.HasPrefix(line, frameMarker) {
			// Not a frame: blank keep-alive lines, comments, garbage.
			continue
		}
		payload := strings.TrimPrefix(line, frameMarker)
		if payload == doneSentinel {
			return "", io.EOF
		}
		return payload, nil
	}

	if err := s.scanner.Err(); err != nil {
		return "", fmt.Errorf("shopagent: %w", err)
	}
	// Scanner exhausted without error = transport ended cleanly.
	return "", io.EOF
}

// classify decodes one frame payload and queues its events. Malformed
// payloads and unknown types are dropped; an error field is fatal.
func (s *stream) classify(payload string) error {
	var p wirePayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		s.logger.Debug("dropping malformed frame", zap.Error(err))
		return nil
	}

	// A present error field overrides type handling.
	if p.Error != "" {
		return fmt.Errorf("shopagent: backend error: %s", p.Error)
	}
	if p.Type == "" {
		s.logger.Debug("dropping frame without type")
		return nil
	}

	if p.SessionID != "" && p.SessionID != s.sessionID {
		s.sessionID = p.SessionID
		s.pending = append(s.pending, moda.EventSessionID{ID: p.SessionID})
	}

	if evt := p.semanticEvent(); evt != nil {
		s.pending = append(s.pending, evt)
	} else {
		s.logger.Debug("dropping frame", zap.String("type", p.Type))
	}
	return nil
}

// terminate records a terminal condition and sets the stream state.
func (s *stream) terminate(err error) {
	if err == io.EOF {
		s.state = moda.StreamStateComplete
		return
	}
	s.state = moda.StreamStateError
	if s.ctx.Err() != nil {
		s.err = fmt.Errorf("shopagent: %w", s.ctx.Err())
		return
	}
	s.err = err
}
