package chat

import (
	"github.com/lbianche/chatwire/internal/jsonschema"
)

// Tool declares a function-calling capability offered to the model.
type Tool struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	InputSchema *jsonschema.Schema `json:"input_schema,omitempty"`
}

// ToolCall is a finalized tool invocation issued by the assistant.
// Arguments always hold the parsed structured value; a tool call is never
// exposed while its argument fragments are still being streamed.
type ToolCall struct {
	ToolCallID string         `json:"tool_call_id,omitempty"`
	Name       string         `json:"name"`
	Arguments  map[string]any `json:"arguments"`
}

// ToolResult carries the output of a previously dispatched tool call,
// supplied by the caller for inclusion in the next outbound message set.
type ToolResult struct {
	ToolCallID string `json:"tool_call_id"`
	Output     string `json:"output"`
}

// Prompt is the current turn's input.
type Prompt struct {
	// System is the optional system text for this turn.
	System string
	// Prompt is the optional user text for this turn.
	Prompt string
	// Attachments are the media items accompanying the user text.
	Attachments []*Attachment
	// ToolResults are outputs of tool calls issued on the previous turn.
	ToolResults []ToolResult
	// Schema, when set, constrains the output to the given JSON schema.
	Schema *jsonschema.Schema
	// Tools are the function-calling capabilities offered to the model.
	Tools []Tool
	// Options is the generic per-call options bag.
	Options Options
}

// ConversationTurn is one finalized prompt/response pair. Turns are created
// only after their ResponseRecord is finalized and are immutable history for
// subsequent calls.
type ConversationTurn struct {
	// System is the system text that was active for this turn, if any.
	System string
	// Prompt is the user text of this turn, if any.
	Prompt string
	// Attachments are the media items that accompanied the user text.
	Attachments []*Attachment
	// ToolResults are the tool outputs that were supplied with this turn.
	ToolResults []ToolResult
	// Text is the assistant's final text. Empty when the assistant produced
	// only tool calls.
	Text string
	// ToolCalls are the finalized tool calls issued by the assistant.
	ToolCalls []ToolCall
}
