package openai

import (
	"encoding/json"
	"strings"
)

const (
	redactedDataURL   = "data:..."
	redactedAudioData = "..."
)

// redactData walks a request payload and rewrites embedded base64 media in
// place: image_url parts whose url is a data URL are reduced to "data:...",
// and input_audio parts have their data field reduced to "...". Remote image
// URLs are kept verbatim. The operation is idempotent, so payloads that were
// already redacted pass through unchanged.
func redactData(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		for key, entry := range typed {
			if key == "image_url" {
				if imageURL, ok := entry.(map[string]any); ok {
					if url, ok := imageURL["url"].(string); ok && strings.HasPrefix(url, "data:") {
						imageURL["url"] = redactedDataURL
						continue
					}
				}
			} else if key == "input_audio" {
				if inputAudio, ok := entry.(map[string]any); ok {
					if _, hasData := inputAudio["data"]; hasData {
						inputAudio["data"] = redactedAudioData
						continue
					}
				}
			}
			redactData(entry)
		}
	case []any:
		for _, element := range typed {
			redactData(element)
		}
	}
	return value
}

// redactedRequest produces the audit copy of the outbound request: the
// message payload is deep-copied through JSON and then redacted, so the live
// messages (and their cached attachment encodings) are never modified.
func redactedRequest(promptPayload any) map[string]any {
	encoded, err := json.Marshal(map[string]any{"messages": promptPayload})
	if err != nil {
		return map[string]any{"messages": []any{}}
	}
	var payloadCopy map[string]any
	if err := json.Unmarshal(encoded, &payloadCopy); err != nil {
		return map[string]any{"messages": []any{}}
	}
	redactData(payloadCopy)
	return payloadCopy
}
