package moda

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// errorReply is the fixed user-facing apology appended when a turn fails.
const errorReply = "죄송합니다. 응답 생성 중 오류가 발생했습니다. 다시 시도해 주세요."

// toolSummaryMax bounds the length of a tool output summary in grapheme
// clusters.
const toolSummaryMax = 100

// Conversation owns a Session and reconciles it against the backend's
// event stream. It is the single consumer of one ordered event sequence:
// every event-to-state transition is atomic with respect to Snapshot(),
// events are never reordered, and at most one turn is open at a time.
type Conversation struct {
	mu      sync.Mutex
	table   StageTable
	session Session

	turn     *Turn  // open turn, nil between turns
	progress *Entry // system progress-indicator entry for the open turn
	stream   *Entry // active streaming assistant entry for the open turn
	loading  bool

	// tools holds running tool entries stacked per tool name. ToolEnd
	// pops the most recently started match (LIFO).
	tools map[string][]*Entry
}

// ConversationOption configures a Conversation.
type ConversationOption func(*Conversation)

// WithStageTable overrides the default pipeline stage table.
func WithStageTable(t StageTable) ConversationOption {
	return func(c *Conversation) { c.table = t }
}

// WithSessionID resumes an existing server session. Without it the id is
// adopted from the first streamed event that carries one.
func WithSessionID(id string) ConversationOption {
	return func(c *Conversation) { c.session.ID = id }
}

// NewConversation creates an empty conversation with no server session id.
// The id is adopted from the first streamed event that carries one.
func NewConversation(opts ...ConversationOption) *Conversation {
	now := time.Now()
	c := &Conversation{
		table:   DefaultStageTable(),
		session: Session{CreatedAt: now, UpdatedAt: now},
		tools:   make(map[string][]*Entry),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Loading reports whether a turn is currently awaiting backend events.
func (c *Conversation) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// SessionID returns the server correlation id, empty before the first turn
// streams one back.
func (c *Conversation) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.ID
}

// Snapshot returns a deep copy of the session for a rendering layer.
func (c *Conversation) Snapshot() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.clone()
}

// Begin opens a new turn for the given user text. It appends the user
// entry and a system progress-indicator entry, and returns the request to
// hand to a Provider. While a turn is open further sends are rejected
// with ErrTurnOpen.
func (c *Conversation) Begin(text string) (Request, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if text == "" {
		return Request{}, ErrEmptyMessage
	}
	if c.loading || c.turn != nil {
		return Request{}, ErrTurnOpen
	}

	now := time.Now()
	turn := &Turn{
		RequestID: uuid.NewString(),
		UserText:  text,
		Stages:    c.table.statuses(),
		Variant:   VariantUnknown,
		CreatedAt: now,
		Open:      true,
	}
	c.session.Turns = append(c.session.Turns, turn)
	c.turn = turn
	c.loading = true
	c.stream = nil
	c.tools = make(map[string][]*Entry)

	c.session.Entries = append(c.session.Entries, &Entry{
		ID:        uuid.NewString(),
		TurnID:    turn.RequestID,
		Role:      RoleUser,
		Content:   text,
		CreatedAt: now,
	})

	c.progress = &Entry{
		ID:        uuid.NewString(),
		TurnID:    turn.RequestID,
		Role:      RoleSystem,
		Stages:    append([]StageStatus(nil), turn.Stages...),
		CreatedAt: now,
	}
	c.session.Entries = append(c.session.Entries, c.progress)

	c.session.UpdatedAt = now
	return Request{Message: text, SessionID: c.session.ID}, nil
}

// Apply routes one streamed event to the open turn. Events arriving with
// no open turn are dropped.
func (c *Conversation) Apply(evt Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := evt.(EventSessionID); ok {
		// Created lazily on the first turn, immutable for the session's life.
		if c.session.ID == "" {
			c.session.ID = e.ID
		}
		return
	}

	if c.turn == nil {
		return
	}
	c.session.UpdatedAt = time.Now()

	switch e := evt.(type) {
	case EventStep:
		c.table.ApplyStep(c.turn, e.Signal)
		c.mirrorStages()

	case EventStepComplete:
		c.table.ApplyStepComplete(c.turn, e.StageID)
		c.mirrorStages()

	case EventSearchMetadata:
		md := e.Metadata
		c.turn.Search = &md

	case EventGeneratingStart:
		// Informational only.

	case EventToken:
		c.appendToken(e.Text)

	case EventToolStart:
		entry := &Entry{
			ID:        uuid.NewString(),
			TurnID:    c.turn.RequestID,
			Role:      RoleTool,
			ToolName:  e.Name,
			ToolState: StageRunning,
			CreatedAt: time.Now(),
		}
		c.session.Entries = append(c.session.Entries, entry)
		c.tools[e.Name] = append(c.tools[e.Name], entry)

	case EventToolEnd:
		stack := c.tools[e.Name]
		if len(stack) == 0 {
			return // unmatched end, no-op
		}
		entry := stack[len(stack)-1]
		c.tools[e.Name] = stack[:len(stack)-1]
		entry.ToolState = StageCompleted
		entry.ToolSummary = truncateSummary(e.Output, toolSummaryMax)

	case EventComplete:
		c.finalize(e)
	}
}

// EndStream handles the stream-end sentinel or a clean transport end.
// It clears only the loading flag: tokens already accumulated are
// authoritative and must not be discarded.
func (c *Conversation) EndStream() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.loading = false
	if c.stream != nil {
		c.stream.Streaming = false
		c.stream = nil
	}
	if c.turn != nil {
		c.turn.Open = false
		c.turn = nil
	}
	c.session.UpdatedAt = time.Now()
}

// Fail transitions the open turn to a terminal error state: one synthetic
// assistant entry with a fixed apology, loading and the active-streaming
// pointer cleared, prior turns untouched.
func (c *Conversation) Fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	c.removeSystemEntries()
	if c.stream != nil {
		c.stream.Streaming = false
		c.stream = nil
	}

	var turnID string
	if c.turn != nil {
		turnID = c.turn.RequestID
		c.turn.Open = false
		c.turn = nil
	}

	c.session.Entries = append(c.session.Entries, &Entry{
		ID:        uuid.NewString(),
		TurnID:    turnID,
		Role:      RoleAssistant,
		Content:   errorReply,
		CreatedAt: now,
	})
	c.loading = false
	c.session.UpdatedAt = now
}

// appendToken extends the active streaming entry, creating it on the
// first token of the turn. Creation removes the progress indicator and
// snapshots every stage as completed: token flow proves the pipeline got
// to response generation regardless of which progress events survived.
func (c *Conversation) appendToken(text string) {
	if c.stream != nil {
		c.stream.Content += text
		return
	}

	c.removeSystemEntries()
	for i := range c.turn.Stages {
		c.turn.Stages[i].State = StageCompleted
	}

	entry := &Entry{
		ID:        uuid.NewString(),
		TurnID:    c.turn.RequestID,
		Role:      RoleAssistant,
		Content:   text,
		Streaming: true,
		CreatedAt: time.Now(),
	}
	c.session.Entries = append(c.session.Entries, entry)
	c.stream = entry
}

// finalize closes the turn on an explicit completion event.
func (c *Conversation) finalize(e EventComplete) {
	c.removeSystemEntries()

	entry := c.stream
	if entry == nil {
		// Nothing was streamed; synthesize the reply from the event.
		entry = &Entry{
			ID:        uuid.NewString(),
			TurnID:    c.turn.RequestID,
			Role:      RoleAssistant,
			Content:   e.FinalText,
			CreatedAt: time.Now(),
		}
		c.session.Entries = append(c.session.Entries, entry)
	}
	entry.Streaming = false
	if len(e.Followups) > 0 {
		entry.Followups = append([]string(nil), e.Followups...)
	}

	for i := range c.turn.Stages {
		c.turn.Stages[i].State = StageCompleted
	}

	c.turn.Open = false
	c.turn = nil
	c.stream = nil
	c.loading = false
}

// mirrorStages keeps the progress-indicator entry in sync with the turn.
func (c *Conversation) mirrorStages() {
	if c.progress != nil {
		c.progress.Stages = append(c.progress.Stages[:0], c.turn.Stages...)
	}
}

// removeSystemEntries drops outstanding progress-indicator entries.
func (c *Conversation) removeSystemEntries() {
	kept := c.session.Entries[:0]
	for _, e := range c.session.Entries {
		if e.Role != RoleSystem {
			kept = append(kept, e)
		}
	}
	c.session.Entries = kept
	c.progress = nil
}
