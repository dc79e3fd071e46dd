package openai

import (
	"strings"
	"testing"

	"github.com/lbianche/chatwire/chat"
)

func TestRedactData_ImageDataURL(t *testing.T) {
	payload := map[string]any{
		"messages": []any{
			map[string]any{
				"role": "user",
				"content": []any{
					map[string]any{"type": "text", "text": "look"},
					map[string]any{
						"type":      "image_url",
						"image_url": map[string]any{"url": "data:image/png;base64,iVBORw0KGgo="},
					},
				},
			},
		},
	}
	redactData(payload)

	parts := payload["messages"].([]any)[0].(map[string]any)["content"].([]any)
	imageURL := parts[1].(map[string]any)["image_url"].(map[string]any)
	if imageURL["url"] != "data:..." {
		t.Errorf("expected data URL to be redacted, got %v", imageURL["url"])
	}
	if parts[0].(map[string]any)["text"] != "look" {
		t.Error("text part must not be touched")
	}
}

func TestRedactData_RemoteImageURLKept(t *testing.T) {
	imageURL := map[string]any{"url": "https://example.com/cat.jpg"}
	redactData(map[string]any{"image_url": imageURL})
	if imageURL["url"] != "https://example.com/cat.jpg" {
		t.Errorf("remote URL must be kept verbatim, got %v", imageURL["url"])
	}
}

func TestRedactData_InputAudio(t *testing.T) {
	inputAudio := map[string]any{"data": "UklGRg==", "format": "wav"}
	redactData(map[string]any{"input_audio": inputAudio})
	if inputAudio["data"] != "..." {
		t.Errorf("expected audio data to be redacted, got %v", inputAudio["data"])
	}
	if inputAudio["format"] != "wav" {
		t.Errorf("format must be kept, got %v", inputAudio["format"])
	}
}

func TestRedactData_Idempotent(t *testing.T) {
	payload := map[string]any{
		"image_url":   map[string]any{"url": "data:image/png;base64,AAAA"},
		"input_audio": map[string]any{"data": "BBBB"},
	}
	redactData(payload)
	redactData(payload)

	if payload["image_url"].(map[string]any)["url"] != "data:..." {
		t.Errorf("double redaction changed image value: %v", payload["image_url"])
	}
	if payload["input_audio"].(map[string]any)["data"] != "..." {
		t.Errorf("double redaction changed audio value: %v", payload["input_audio"])
	}
}

func TestRedactedRequest_DeepCopiesMessages(t *testing.T) {
	attachment := &chat.Attachment{MimeType: "image/png", Content: []byte{1, 2, 3}}
	messages := []chatMessage{
		userMessageWithAttachments("hi", []*chat.Attachment{attachment}),
	}

	redacted := redactedRequest(messages)

	redactedParts := redacted["messages"].([]any)[0].(map[string]any)["content"].([]any)
	redactedURL := redactedParts[1].(map[string]any)["image_url"].(map[string]any)["url"]
	if redactedURL != "data:..." {
		t.Errorf("expected redacted copy, got %v", redactedURL)
	}

	// The live message list must still carry the full data URL.
	liveParts := messages[0].Content.([]contentPart)
	if !strings.HasPrefix(liveParts[1].ImageURL.URL, "data:image/png;base64,") {
		t.Errorf("live message was mutated: %v", liveParts[1].ImageURL.URL)
	}
}
