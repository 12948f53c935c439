package shopagent

import (
	"encoding/json"
	"strings"

	"github.com/modachat/moda"
)

// doneSentinel is the literal frame payload that ends a stream.
const doneSentinel = "[DONE]"

// frameMarker prefixes every protocol frame; other lines are discarded.
const frameMarker = "data: "

// wirePayload is the weakly-typed JSON object carried by a frame. The
// backend reuses one envelope for every event type, so most fields are
// empty on any given frame. Only Type is required; Error and SessionID
// are meaningful on any type.
type wirePayload struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
	Error     string `json:"error"`

	// step / step_complete
	CurrentStep   string `json:"current_step"`
	IsLLMNode     bool   `json:"is_llm_node"`
	CompletedStep string `json:"completed_step"`

	// search_metadata
	Metadata *moda.SearchMetadata `json:"metadata"`

	// token
	Content string `json:"content"`

	// tool_start / tool_end
	ToolName   string          `json:"tool_name"`
	ToolInput  json.RawMessage `json:"tool_input"`
	ToolOutput json.RawMessage `json:"tool_output"`

	// complete
	Response           string   `json:"response"`
	SuggestedQuestions []string `json:"suggested_questions"`
}

// semanticEvent maps a decoded payload to a typed event. A nil return
// means the frame carries nothing actionable (unknown type, or a
// required companion field is missing) and is dropped.
func (p *wirePayload) semanticEvent() moda.Event {
	switch p.Type {
	case "step":
		if p.CurrentStep == "" {
			return nil
		}
		return moda.EventStep{Signal: p.CurrentStep, LLMNode: p.IsLLMNode}
	case "step_complete":
		if p.CompletedStep == "" {
			return nil
		}
		return moda.EventStepComplete{StageID: p.CompletedStep}
	case "search_metadata":
		if p.Metadata == nil {
			return nil
		}
		return moda.EventSearchMetadata{Metadata: *p.Metadata}
	case "generating_start":
		return moda.EventGeneratingStart{}
	case "token":
		if p.Content == "" {
			return nil
		}
		return moda.EventToken{Text: p.Content}
	case "tool_start":
		if p.ToolName == "" {
			return nil
		}
		return moda.EventToolStart{Name: p.ToolName, Input: rawText(p.ToolInput)}
	case "tool_end":
		if p.ToolName == "" {
			return nil
		}
		return moda.EventToolEnd{Name: p.ToolName, Output: rawText(p.ToolOutput)}
	case "complete":
		return moda.EventComplete{FinalText: p.Response, Followups: p.SuggestedQuestions}
	default:
		return nil
	}
}

// rawText renders a raw JSON value as text: JSON strings are unquoted,
// anything else is kept as its compact JSON form.
func rawText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}
