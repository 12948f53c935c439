package shopagent_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/modachat/moda"
	"github.com/modachat/moda/shopagent"
)

// frameStream builds a stream over an in-memory body.
func frameStream(t *testing.T, body string) moda.Stream {
	t.Helper()
	return shopagent.NewStream(context.Background(), io.NopCloser(strings.NewReader(body)), zap.NewNop())
}

// drain reads events until the stream ends, returning them and the
// terminal error.
func drain(t *testing.T, s moda.Stream) ([]moda.Event, error) {
	t.Helper()
	var events []moda.Event
	for {
		evt, err := s.Next()
		if err != nil {
			return events, err
		}
		events = append(events, evt)
	}
}

func TestStream_Next(t *testing.T) {
	t.Parallel()

	t.Run("maps every frame type", func(t *testing.T) {
		t.Parallel()
		body := strings.Join([]string{
			`data: {"type": "step", "current_step": "analyze_query", "is_llm_node": true}`,
			`data: {"type": "step_complete", "completed_step": "search_products"}`,
			`data: {"type": "search_metadata", "metadata": {"search_query": "와이드 데님", "results_count": 12}}`,
			`data: {"type": "generating_start"}`,
			`data: {"type": "token", "content": "추천"}`,
			`data: {"type": "tool_start", "tool_name": "search_products", "tool_input": {"query": "데님"}}`,
			`data: {"type": "tool_end", "tool_name": "search_products", "tool_output": "10 results"}`,
			`data: {"type": "complete", "response": "추천합니다", "suggested_questions": ["Q1"]}`,
			`data: [DONE]`,
		}, "\n")

		s := frameStream(t, body)
		events, err := drain(t, s)
		require.Equal(t, io.EOF, err)
		require.Len(t, events, 8)

		assert.Equal(t, moda.EventStep{Signal: "analyze_query", LLMNode: true}, events[0])
		assert.Equal(t, moda.EventStepComplete{StageID: "search_products"}, events[1])
		meta, ok := events[2].(moda.EventSearchMetadata)
		require.True(t, ok)
		assert.Equal(t, "와이드 데님", meta.Metadata.SearchQuery)
		assert.Equal(t, 12, meta.Metadata.ResultsCount)
		assert.Equal(t, moda.EventGeneratingStart{}, events[3])
		assert.Equal(t, moda.EventToken{Text: "추천"}, events[4])
		assert.Equal(t, moda.EventToolStart{Name: "search_products", Input: `{"query": "데님"}`}, events[5])
		assert.Equal(t, moda.EventToolEnd{Name: "search_products", Output: "10 results"}, events[6])
		assert.Equal(t, moda.EventComplete{FinalText: "추천합니다", Followups: []string{"Q1"}}, events[7])

		assert.Equal(t, moda.StreamStateComplete, s.State())
	})

	t.Run("emits session id once", func(t *testing.T) {
		t.Parallel()
		body := strings.Join([]string{
			`data: {"type": "step", "current_step": "start", "session_id": "sess-1"}`,
			`data: {"type": "token", "content": "a", "session_id": "sess-1"}`,
			`data: [DONE]`,
		}, "\n")

		events, err := drain(t, frameStream(t, body))
		require.Equal(t, io.EOF, err)
		require.Len(t, events, 3)
		assert.Equal(t, moda.EventSessionID{ID: "sess-1"}, events[0])
		assert.Equal(t, moda.EventStep{Signal: "start"}, events[1])
		assert.Equal(t, moda.EventToken{Text: "a"}, events[2])
	})

	t.Run("skips garbage and non-frame lines", func(t *testing.T) {
		t.Parallel()
		body := strings.Join([]string{
			`data: {"type": "step", "current_step": "analyze_query"}`,
			``,
			`: keep-alive comment`,
			`data: {not json at all`,
			`data: {"type": "mystery_event"}`,
			`data: {"content": "typeless"}`,
			`data: {"type": "token", "content": "hi"}`,
			`data: [DONE]`,
		}, "\n")

		events, err := drain(t, frameStream(t, body))
		require.Equal(t, io.EOF, err)
		require.Len(t, events, 2)
		assert.Equal(t, moda.EventStep{Signal: "analyze_query"}, events[0])
		assert.Equal(t, moda.EventToken{Text: "hi"}, events[1])
	})

	t.Run("error frame is fatal", func(t *testing.T) {
		t.Parallel()
		body := strings.Join([]string{
			`data: {"type": "token", "content": "partial"}`,
			`data: {"type": "error", "error": "LLM timeout"}`,
			`data: {"type": "token", "content": "never"}`,
		}, "\n")

		s := frameStream(t, body)
		events, err := drain(t, s)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "LLM timeout")
		require.Len(t, events, 1)
		assert.Equal(t, moda.EventToken{Text: "partial"}, events[0])
		assert.Equal(t, moda.StreamStateError, s.State())

		// The error is sticky.
		_, again := s.Next()
		assert.Equal(t, err, again)
	})

	t.Run("clean transport end without sentinel is EOF", func(t *testing.T) {
		t.Parallel()
		body := `data: {"type": "token", "content": "partial"}` + "\n"

		s := frameStream(t, body)
		events, err := drain(t, s)
		require.Equal(t, io.EOF, err)
		require.Len(t, events, 1)
		assert.Equal(t, moda.StreamStateComplete, s.State())
	})

	t.Run("frames split across chunk boundaries reassemble", func(t *testing.T) {
		t.Parallel()
		body := `data: {"type": "token", "content": "안녕하세요"}` + "\n" +
			`data: [DONE]` + "\n"

		// One byte per Read forces the scanner to buffer partial lines.
		s := shopagent.NewStream(context.Background(),
			io.NopCloser(iotest.OneByteReader(strings.NewReader(body))), zap.NewNop())

		events, err := drain(t, s)
		require.Equal(t, io.EOF, err)
		require.Len(t, events, 1)
		assert.Equal(t, moda.EventToken{Text: "안녕하세요"}, events[0])
	})

	t.Run("next after close returns ErrStreamClosed", func(t *testing.T) {
		t.Parallel()
		s := frameStream(t, `data: {"type": "token", "content": "a"}`+"\n")
		require.NoError(t, s.Close())

		_, err := s.Next()
		assert.ErrorIs(t, err, moda.ErrStreamClosed)
		assert.Equal(t, moda.StreamStateClosed, s.State())
	})

	t.Run("cancellation surfaces the context error", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		s := shopagent.NewStream(ctx, io.NopCloser(&failReader{err: errors.New("read aborted")}), zap.NewNop())
		_, err := s.Next()
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, moda.StreamStateError, s.State())
	})
}

// failReader always fails with its error.
type failReader struct{ err error }

func (r *failReader) Read([]byte) (int, error) { return 0, r.err }
