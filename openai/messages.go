package openai

import (
	"strings"

	"github.com/lbianche/chatwire/chat"
	"github.com/lbianche/chatwire/internal/utils"
)

// chatMessage is one role-tagged entry of the outbound message list.
// Content is either a plain string or a []contentPart when attachments are
// present; it is omitted entirely for assistant messages that carry only
// tool calls.
type chatMessage struct {
	Role       string         `json:"role"`
	Content    any            `json:"content,omitempty"`
	ToolCallID string         `json:"tool_call_id,omitempty"`
	ToolCalls  []chatToolCall `json:"tool_calls,omitempty"`
}

// contentPart is one element of a multimodal user message.
type contentPart struct {
	Type       string            `json:"type"`
	Text       string            `json:"text,omitempty"`
	ImageURL   *contentPartImage `json:"image_url,omitempty"`
	InputAudio *contentPartAudio `json:"input_audio,omitempty"`
	File       *contentPartFile  `json:"file,omitempty"`
}

type contentPartImage struct {
	URL string `json:"url"`
}

type contentPartAudio struct {
	Data   string `json:"data"`
	Format string `json:"format"`
}

type contentPartFile struct {
	Filename string `json:"filename"`
	FileData string `json:"file_data"`
}

// chatToolCall is the wire form of an assistant-issued tool call echoed back
// in conversation history.
type chatToolCall struct {
	ID       string           `json:"id,omitempty"`
	Type     string           `json:"type"`
	Function chatToolFunction `json:"function"`
}

type chatToolFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// buildMessages converts the conversation history plus the current prompt
// into the ordered wire message list.
//
// System text is deduplicated against the most recently emitted system
// message: a turn whose system text equals the previous one contributes no
// new system message, while any change (including reverting to an earlier
// value) emits one. Historical tool calls are replayed with their arguments
// re-serialized to JSON so the remote endpoint sees the same structure it
// originally produced.
func buildMessages(prompt chat.Prompt, conversation []chat.ConversationTurn, allowsSystemPrompt bool) ([]chatMessage, error) {
	if prompt.System != "" && !allowsSystemPrompt {
		return nil, &chat.UnsupportedFeatureError{Feature: "system prompts"}
	}

	var messages []chatMessage
	currentSystem := ""

	for _, turn := range conversation {
		if turn.System != "" && turn.System != currentSystem {
			messages = append(messages, chatMessage{Role: "system", Content: turn.System})
			currentSystem = turn.System
		}
		if len(turn.Attachments) > 0 {
			messages = append(messages, userMessageWithAttachments(turn.Prompt, turn.Attachments))
		} else if turn.Prompt != "" {
			messages = append(messages, chatMessage{Role: "user", Content: turn.Prompt})
		}
		for _, toolResult := range turn.ToolResults {
			messages = append(messages, chatMessage{
				Role:       "tool",
				ToolCallID: toolResult.ToolCallID,
				Content:    toolResult.Output,
			})
		}
		if turn.Text != "" {
			messages = append(messages, chatMessage{Role: "assistant", Content: turn.Text})
		}
		if len(turn.ToolCalls) > 0 {
			toolCalls := make([]chatToolCall, 0, len(turn.ToolCalls))
			for _, toolCall := range turn.ToolCalls {
				toolCalls = append(toolCalls, chatToolCall{
					ID:   toolCall.ToolCallID,
					Type: "function",
					Function: chatToolFunction{
						Name:      toolCall.Name,
						Arguments: utils.ToString(toolCall.Arguments),
					},
				})
			}
			messages = append(messages, chatMessage{Role: "assistant", ToolCalls: toolCalls})
		}
	}

	if prompt.System != "" && prompt.System != currentSystem {
		messages = append(messages, chatMessage{Role: "system", Content: prompt.System})
	}
	for _, toolResult := range prompt.ToolResults {
		messages = append(messages, chatMessage{
			Role:       "tool",
			ToolCallID: toolResult.ToolCallID,
			Content:    toolResult.Output,
		})
	}
	if len(prompt.Attachments) > 0 {
		messages = append(messages, userMessageWithAttachments(prompt.Prompt, prompt.Attachments))
	} else if prompt.Prompt != "" {
		messages = append(messages, chatMessage{Role: "user", Content: prompt.Prompt})
	}

	return messages, nil
}

// userMessageWithAttachments builds a multi-part user message: the text part
// first when present, then one part per attachment.
func userMessageWithAttachments(text string, attachments []*chat.Attachment) chatMessage {
	parts := make([]contentPart, 0, len(attachments)+1)
	if text != "" {
		parts = append(parts, contentPart{Type: "text", Text: text})
	}
	for _, attachment := range attachments {
		parts = append(parts, encodeAttachment(attachment))
	}
	return chatMessage{Role: "user", Content: parts}
}

// encodeAttachment maps one attachment to its wire content part. PDFs become
// file parts with a synthesized filename and a data URL; images become
// image_url parts, passed by reference when a URL is available and inlined
// as a data URL otherwise; audio is always inlined as base64 with its format
// tag. Audio URLs are fetched by the host before reaching this layer, so an
// audio attachment always carries inline content.
func encodeAttachment(attachment *chat.Attachment) contentPart {
	mimeType := attachment.ResolveType()
	url := attachment.URL
	base64Content := ""
	if url == "" || strings.HasPrefix(mimeType, "audio/") {
		base64Content = attachment.Base64Content()
		url = "data:" + mimeType + ";base64," + base64Content
	}

	if mimeType == "application/pdf" {
		if base64Content == "" {
			base64Content = attachment.Base64Content()
		}
		return contentPart{
			Type: "file",
			File: &contentPartFile{
				Filename: attachment.ID() + ".pdf",
				FileData: "data:application/pdf;base64," + base64Content,
			},
		}
	}

	if strings.HasPrefix(mimeType, "audio/") {
		format := "mp3"
		if mimeType == "audio/wav" {
			format = "wav"
		}
		return contentPart{
			Type:       "input_audio",
			InputAudio: &contentPartAudio{Data: base64Content, Format: format},
		}
	}

	return contentPart{
		Type:     "image_url",
		ImageURL: &contentPartImage{URL: url},
	}
}
