package chat

// CapabilitySet holds the static per-model feature flags the adapter needs
// from its host: whether streaming is allowed, which attachment families are
// accepted, and whether schema-constrained output, tool calling, reasoning
// options, and system prompts are supported. The host is responsible for
// only admitting attachments whose MIME type appears in AttachmentTypes.
type CapabilitySet struct {
	// CanStream reports whether the model may be called in streaming mode.
	CanStream bool
	// Vision enables image and PDF attachments.
	Vision bool
	// Audio enables wav and mp3 audio attachments.
	Audio bool
	// SupportsSchema enables JSON-schema constrained output.
	SupportsSchema bool
	// SupportsTools enables function tool declarations.
	SupportsTools bool
	// Reasoning selects the reasoning option schema at model construction.
	Reasoning bool
	// AllowsSystemPrompt reports whether a system prompt is permitted at all.
	AllowsSystemPrompt bool
}

// AttachmentTypes returns the set of MIME types this model accepts, derived
// from the Vision and Audio flags.
func (capabilities CapabilitySet) AttachmentTypes() map[string]bool {
	types := map[string]bool{}
	if capabilities.Vision {
		for _, mimeType := range []string{
			"image/png",
			"image/jpeg",
			"image/webp",
			"image/gif",
			"application/pdf",
		} {
			types[mimeType] = true
		}
	}
	if capabilities.Audio {
		types["audio/wav"] = true
		types["audio/mpeg"] = true
	}
	return types
}

// OptionSchema returns the option variant implied by the capability flags.
func (capabilities CapabilitySet) OptionSchema() OptionSchema {
	if capabilities.Reasoning {
		return OptionSchemaReasoning
	}
	return OptionSchemaChat
}
