package moda

// Event is a sealed interface representing a streaming event.
// Events are purely semantic. Transport/protocol errors, including an
// explicit error field on an otherwise well-formed frame, come from
// Next()'s error return, not from events. The stream-end sentinel
// surfaces as io.EOF. The unexported marker method prevents external
// implementations.
type Event interface {
	event()
}

// EventSessionID carries a changed server correlation id. Every frame
// repeats the session id; the classifier emits this event only when the
// value differs from the last one seen.
type EventSessionID struct {
	ID string
}

func (EventSessionID) event() {}

// EventStep is a pipeline progress signal. Signal is either a stage id,
// a sub-step alias, or a completion token; the stage table decides.
type EventStep struct {
	Signal  string
	LLMNode bool
}

func (EventStep) event() {}

// EventStepComplete explicitly marks a stage completed. It is the
// backend's correction channel and applies regardless of stage order.
type EventStepComplete struct {
	StageID string
}

func (EventStepComplete) event() {}

// EventSearchMetadata carries the search summary for the current turn.
type EventSearchMetadata struct {
	Metadata SearchMetadata
}

func (EventSearchMetadata) event() {}

// EventGeneratingStart signals that response generation began.
// Informational only; it produces no visible entry.
type EventGeneratingStart struct{}

func (EventGeneratingStart) event() {}

// EventToken is a streamed fragment of the assistant reply.
type EventToken struct {
	Text string
}

func (EventToken) event() {}

// EventToolStart signals that a backend tool invocation began.
type EventToolStart struct {
	Name  string
	Input string
}

func (EventToolStart) event() {}

// EventToolEnd signals that a backend tool invocation finished.
type EventToolEnd struct {
	Name   string
	Output string
}

func (EventToolEnd) event() {}

// EventComplete finalizes the turn. FinalText is the full reply for the
// non-streamed fallback case; it is ignored when tokens were streamed.
type EventComplete struct {
	FinalText string
	Followups []string
}

func (EventComplete) event() {}

// Interface compliance checks.
var (
	_ Event = EventSessionID{}
	_ Event = EventStep{}
	_ Event = EventStepComplete{}
	_ Event = EventSearchMetadata{}
	_ Event = EventGeneratingStart{}
	_ Event = EventToken{}
	_ Event = EventToolStart{}
	_ Event = EventToolEnd{}
	_ Event = EventComplete{}
)
