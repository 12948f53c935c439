package moda

import "time"

// Entry is one rendered element of the conversation: a user message, an
// assistant reply (possibly still streaming), a tool invocation, or a
// transient system progress indicator.
type Entry struct {
	ID     string
	TurnID string // RequestID of the turn that produced this entry
	Role   Role

	// Content is an append-only text buffer. For assistant entries it
	// grows one token delta at a time while Streaming is true.
	Content   string
	Streaming bool

	// Tool invocation fields, set only for RoleTool entries.
	ToolName    string
	ToolState   StageState
	ToolSummary string

	// Stages is a progress-indicator snapshot, set only for RoleSystem
	// entries created when a turn opens.
	Stages []StageStatus

	// Followups are the suggested next questions attached on completion.
	Followups []string

	CreatedAt time.Time
}
