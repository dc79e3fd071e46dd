package chat

// Usage is the stable cross-provider token accounting schema. Details
// carries any extra counters the provider reported beyond the three
// well-known ones, already simplified (zero and empty counters removed).
type Usage struct {
	InputTokens  int            `json:"input_tokens"`
	OutputTokens int            `json:"output_tokens"`
	Details      map[string]any `json:"details"`
}

// ResponseRecord is the adapter's output for one call. The executor
// populates it as a side effect of draining the returned text sequence; an
// abandoned stream leaves the record unfinalized.
type ResponseRecord struct {
	// ResponseJSON is the normalized provider-shape payload with all
	// null-valued fields stripped.
	ResponseJSON map[string]any
	// Usage holds the normalized token counters, or nil when the provider
	// reported no usage.
	Usage *Usage
	// ToolCalls are the finalized tool calls the model issued, with
	// arguments fully parsed.
	ToolCalls []ToolCall
	// PromptJSON is the redacted copy of the outbound request, safe to
	// persist for audit. The live request is never redacted.
	PromptJSON map[string]any
	// Fragments is the ordered sequence of text fragments emitted to the
	// caller. Populated for streamed calls only.
	Fragments []string
}

// AddToolCall appends a finalized tool call to the record.
func (record *ResponseRecord) AddToolCall(call ToolCall) {
	record.ToolCalls = append(record.ToolCalls, call)
}

// SetUsage stores the normalized usage counters on the record.
func (record *ResponseRecord) SetUsage(input, output int, details map[string]any) {
	record.Usage = &Usage{InputTokens: input, OutputTokens: output, Details: details}
}
