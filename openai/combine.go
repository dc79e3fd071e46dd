package openai

// combineChunks collapses the chunks of one streamed call into a single
// response-shaped map: concatenated content, the last role and finish_reason
// seen, the final usage snapshot, per-chunk logprobs when present, and the
// stream identity fields (id, object, model, created) taken from the first
// chunk. The result still contains nulls and is passed through
// removeNullValues before being stored.
func combineChunks(chunks []*chatCompletionStreamChunk) map[string]any {
	content := ""
	role := ""
	var finishReason any
	var logprobs []map[string]any
	usage := map[string]any{}

	for _, chunk := range chunks {
		if chunk.Usage != nil {
			usage = chunk.Usage
		}
		for _, choice := range chunk.Choices {
			if choice.Logprobs != nil {
				if topLogprobs, ok := choice.Logprobs["top_logprobs"]; ok {
					entry := map[string]any{"top_logprobs": topLogprobs}
					if choice.Text != nil {
						entry["text"] = *choice.Text
					}
					logprobs = append(logprobs, entry)
				}
			}
			if choice.Delta == nil {
				if choice.Text != nil {
					content += *choice.Text
				}
				continue
			}
			role = choice.Delta.Role
			if choice.Delta.Content != nil {
				content += *choice.Delta.Content
			}
			if choice.FinishReason != nil {
				finishReason = *choice.FinishReason
			}
		}
	}

	combined := map[string]any{
		"content":       content,
		"finish_reason": finishReason,
		"usage":         usage,
	}
	if role != "" {
		combined["role"] = role
	}
	if len(logprobs) > 0 {
		combined["logprobs"] = logprobs
	}
	if len(chunks) > 0 {
		first := chunks[0]
		if first.ID != "" {
			combined["id"] = first.ID
		}
		if first.Object != "" {
			combined["object"] = first.Object
		}
		if first.Model != "" {
			combined["model"] = first.Model
		}
		if first.Created != 0 {
			combined["created"] = first.Created
		}
	}
	return combined
}

// removeNullValues returns a copy of the payload with all null-valued map
// entries removed, recursing through nested maps and through maps inside
// lists. List elements themselves are never removed.
func removeNullValues(payload map[string]any) map[string]any {
	cleaned := make(map[string]any, len(payload))
	for key, value := range payload {
		if value == nil {
			continue
		}
		cleaned[key] = removeNullsFromValue(value)
	}
	return cleaned
}

func removeNullsFromValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return removeNullValues(typed)
	case []any:
		cleaned := make([]any, len(typed))
		for i, element := range typed {
			cleaned[i] = removeNullsFromValue(element)
		}
		return cleaned
	default:
		return value
	}
}
