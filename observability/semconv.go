package observability

// Semantic conventions for observability attributes. These constants define
// standard attribute names so log entries and span events stay consistent
// across the adapter's components.

// --- Model call attributes ---

const (
	// AttrModel is the model identifier (e.g. "gpt-4o").
	AttrModel = "chat.model"

	// AttrEndpoint is the API endpoint URL.
	AttrEndpoint = "chat.endpoint"

	// AttrStreaming reports whether the call runs in streaming mode.
	AttrStreaming = "chat.streaming"

	// AttrMessageCount is the number of outbound messages.
	AttrMessageCount = "chat.request.messages"

	// AttrToolCount is the number of declared tools.
	AttrToolCount = "chat.request.tools"

	// AttrFinishReason is the reason the generation finished.
	AttrFinishReason = "chat.finish_reason"
)

// --- HTTP attributes ---

const (
	AttrHTTPMethod           = "http.method"
	AttrHTTPURL              = "http.url"
	AttrHTTPStatusCode       = "http.status_code"
	AttrHTTPRequestBodySize  = "http.request.body_size"
	AttrHTTPResponseBodySize = "http.response.body_size"
)

// --- Span event names ---

const (
	// EventRequestStart marks the moment the outbound call begins.
	EventRequestStart = "chat.request.start"

	// EventStreamFinished marks normal exhaustion of a streamed response.
	EventStreamFinished = "chat.stream.finished"
)
