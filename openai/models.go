package openai

import (
	"strings"

	"github.com/lbianche/chatwire/chat"
	"github.com/lbianche/chatwire/internal/utils"
)

// chatCompletionResponse is the decoded body of a blocking call. Usage is
// kept as a raw map because providers disagree on which nested counter
// groups they report; normalization happens in setUsage.
type chatCompletionResponse struct {
	ID      string         `json:"id"`
	Object  string         `json:"object"`
	Created int64          `json:"created"`
	Model   string         `json:"model"`
	Choices []chatChoice   `json:"choices"`
	Usage   map[string]any `json:"usage"`
}

type chatChoice struct {
	Index        int                 `json:"index"`
	Message      chatResponseMessage `json:"message"`
	Text         *string             `json:"text"`
	FinishReason string              `json:"finish_reason"`
	Logprobs     map[string]any      `json:"logprobs"`
}

type chatResponseMessage struct {
	Role      string             `json:"role"`
	Content   *string            `json:"content"`
	ToolCalls []responseToolCall `json:"tool_calls"`
}

// responseToolCall is a tool call as the endpoint reports it, with arguments
// still in serialized form.
type responseToolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Function chatToolFunction `json:"function"`
}

// finalizeToolCall parses a tool call's accumulated argument text into its
// structured form. Malformed arguments are first run through JSON repair;
// when even that fails the call degrades to an empty argument map rather
// than failing the whole response, so the host can still dispatch the tool
// or surface the call to the user.
func finalizeToolCall(id, name, rawArguments string) chat.ToolCall {
	arguments := map[string]any{}
	if strings.TrimSpace(rawArguments) != "" {
		if parsed, err := utils.ParseJSON[map[string]any](rawArguments); err == nil && parsed != nil {
			arguments = parsed
		}
	}
	return chat.ToolCall{ToolCallID: id, Name: name, Arguments: arguments}
}
