package openai

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/lbianche/chatwire/chat"
)

func messageRoles(messages []chatMessage) []string {
	roles := make([]string, len(messages))
	for i, message := range messages {
		roles[i] = message.Role
	}
	return roles
}

func TestBuildMessages_SimplePrompt(t *testing.T) {
	messages, err := buildMessages(chat.Prompt{Prompt: "Hi"}, nil, true)
	if err != nil {
		t.Fatalf("buildMessages returned error: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(messages))
	}
	if messages[0].Role != "user" || messages[0].Content != "Hi" {
		t.Errorf("unexpected message: %+v", messages[0])
	}
}

func TestBuildMessages_SystemThenPrompt(t *testing.T) {
	messages, err := buildMessages(chat.Prompt{System: "Be terse.", Prompt: "Hi"}, nil, true)
	if err != nil {
		t.Fatalf("buildMessages returned error: %v", err)
	}
	got := messageRoles(messages)
	want := []string{"system", "user"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("expected roles %v, got %v", want, got)
	}
	if messages[0].Content != "Be terse." {
		t.Errorf("expected system content 'Be terse.', got %v", messages[0].Content)
	}
}

func TestBuildMessages_SystemDeduplication(t *testing.T) {
	conversation := []chat.ConversationTurn{
		{System: "Be terse.", Prompt: "one", Text: "1"},
		{System: "Be terse.", Prompt: "two", Text: "2"},
		{System: "Be verbose.", Prompt: "three", Text: "3"},
	}
	// Current system reverts to an earlier value: it still differs from the
	// last emitted one, so it must be emitted again.
	messages, err := buildMessages(chat.Prompt{System: "Be terse.", Prompt: "four"}, conversation, true)
	if err != nil {
		t.Fatalf("buildMessages returned error: %v", err)
	}

	var systems []string
	for _, message := range messages {
		if message.Role == "system" {
			systems = append(systems, message.Content.(string))
		}
	}
	want := []string{"Be terse.", "Be verbose.", "Be terse."}
	if len(systems) != len(want) {
		t.Fatalf("expected %d system messages, got %d: %v", len(want), len(systems), systems)
	}
	for i := range want {
		if systems[i] != want[i] {
			t.Errorf("system message %d: expected %q, got %q", i, want[i], systems[i])
		}
	}
}

func TestBuildMessages_SystemRejectedWhenNotAllowed(t *testing.T) {
	_, err := buildMessages(chat.Prompt{System: "Be terse.", Prompt: "Hi"}, nil, false)
	if err == nil {
		t.Fatal("expected error for system prompt on a model that forbids it")
	}
	var unsupported *chat.UnsupportedFeatureError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedFeatureError, got %T: %v", err, err)
	}
}

func TestBuildMessages_ToolCallsAndResults(t *testing.T) {
	conversation := []chat.ConversationTurn{
		{
			Prompt: "What is the weather in Boston?",
			ToolCalls: []chat.ToolCall{
				{ToolCallID: "call_1", Name: "get_weather", Arguments: map[string]any{"city": "Boston"}},
			},
		},
	}
	prompt := chat.Prompt{
		ToolResults: []chat.ToolResult{{ToolCallID: "call_1", Output: "72F, sunny"}},
	}
	messages, err := buildMessages(prompt, conversation, true)
	if err != nil {
		t.Fatalf("buildMessages returned error: %v", err)
	}

	got := messageRoles(messages)
	want := []string{"user", "assistant", "tool"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected roles %v, got %v", want, got)
	}

	assistant := messages[1]
	if assistant.Content != nil {
		t.Errorf("tool-call assistant message must not carry content, got %v", assistant.Content)
	}
	if len(assistant.ToolCalls) != 1 {
		t.Fatalf("expected 1 replayed tool call, got %d", len(assistant.ToolCalls))
	}
	replayed := assistant.ToolCalls[0]
	if replayed.ID != "call_1" || replayed.Type != "function" || replayed.Function.Name != "get_weather" {
		t.Errorf("unexpected replayed tool call: %+v", replayed)
	}
	if replayed.Function.Arguments != `{"city":"Boston"}` {
		t.Errorf("expected re-serialized arguments, got %q", replayed.Function.Arguments)
	}

	toolMessage := messages[2]
	if toolMessage.ToolCallID != "call_1" || toolMessage.Content != "72F, sunny" {
		t.Errorf("unexpected tool message: %+v", toolMessage)
	}
}

func TestEncodeAttachment_InlineImage(t *testing.T) {
	raw := []byte{0x89, 0x50, 0x4e, 0x47}
	part := encodeAttachment(&chat.Attachment{MimeType: "image/png", Content: raw})

	if part.Type != "image_url" {
		t.Fatalf("expected image_url part, got %q", part.Type)
	}
	wantURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)
	if part.ImageURL.URL != wantURL {
		t.Errorf("expected synthesized data URL %q, got %q", wantURL, part.ImageURL.URL)
	}
}

func TestEncodeAttachment_RemoteImagePassedByReference(t *testing.T) {
	part := encodeAttachment(&chat.Attachment{MimeType: "image/jpeg", URL: "https://example.com/cat.jpg"})
	if part.Type != "image_url" {
		t.Fatalf("expected image_url part, got %q", part.Type)
	}
	if part.ImageURL.URL != "https://example.com/cat.jpg" {
		t.Errorf("remote URL must be passed verbatim, got %q", part.ImageURL.URL)
	}
}

func TestEncodeAttachment_PDF(t *testing.T) {
	attachment := &chat.Attachment{MimeType: "application/pdf", Content: []byte("%PDF-1.4")}
	part := encodeAttachment(attachment)

	if part.Type != "file" {
		t.Fatalf("expected file part, got %q", part.Type)
	}
	if part.File.Filename != attachment.ID()+".pdf" {
		t.Errorf("expected content-derived filename, got %q", part.File.Filename)
	}
	wantData := "data:application/pdf;base64," + attachment.Base64Content()
	if part.File.FileData != wantData {
		t.Errorf("expected data URL %q, got %q", wantData, part.File.FileData)
	}
}

func TestEncodeAttachment_Audio(t *testing.T) {
	tests := []struct {
		mimeType string
		format   string
	}{
		{"audio/wav", "wav"},
		{"audio/mpeg", "mp3"},
	}
	for _, test := range tests {
		attachment := &chat.Attachment{MimeType: test.mimeType, Content: []byte("RIFF")}
		part := encodeAttachment(attachment)
		if part.Type != "input_audio" {
			t.Fatalf("%s: expected input_audio part, got %q", test.mimeType, part.Type)
		}
		if part.InputAudio.Format != test.format {
			t.Errorf("%s: expected format %q, got %q", test.mimeType, test.format, part.InputAudio.Format)
		}
		if part.InputAudio.Data != attachment.Base64Content() {
			t.Errorf("%s: expected raw base64 audio data", test.mimeType)
		}
	}
}

func TestUserMessageWithAttachments_TextPartFirst(t *testing.T) {
	message := userMessageWithAttachments("look at this", []*chat.Attachment{
		{MimeType: "image/png", Content: []byte{1, 2, 3}},
	})
	parts, ok := message.Content.([]contentPart)
	if !ok {
		t.Fatalf("expected multi-part content, got %T", message.Content)
	}
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	if parts[0].Type != "text" || parts[0].Text != "look at this" {
		t.Errorf("expected leading text part, got %+v", parts[0])
	}
	if parts[1].Type != "image_url" {
		t.Errorf("expected trailing image part, got %+v", parts[1])
	}
}
