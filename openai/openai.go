package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/lbianche/chatwire/chat"
	"github.com/lbianche/chatwire/internal/utils"
	"github.com/lbianche/chatwire/observability"
)

const (
	defaultBaseURL          = "https://api.openai.com/v1"
	chatCompletionsEndpoint = "/chat/completions"
	completionsEndpoint     = "/completions"

	// showResponsesEnvVar enables the wire-dumping HTTP transport for every
	// model in the process, matching the per-model WithShowResponses option.
	showResponsesEnvVar = "CHATWIRE_SHOW_RESPONSES"
)

type variant int

const (
	variantChat variant = iota
	variantCompletion
)

// Model is a configured handle on one remote model behind an
// OpenAI-compatible endpoint. It is immutable after construction and safe
// for concurrent use; all per-call state lives in the Request and the
// ResponseRecord.
type Model struct {
	modelID   string
	modelName string
	variant   variant

	capabilities chat.CapabilitySet
	optionSchema chat.OptionSchema

	apiBase    string
	apiType    string
	apiVersion string
	apiEngine  string
	headers    map[string]string

	needsKey bool
	apiKey   string

	defaultMaxTokens *int
	showResponses    bool
	client           *http.Client
}

// Option configures a Model at construction time.
type Option func(*Model)

// NewChat builds a chat-variant model. By default it targets the public
// OpenAI endpoint, requires an API key, allows system prompts, and supports
// streaming; everything else is opt-in through options.
func NewChat(modelID string, options ...Option) *Model {
	model := &Model{
		modelID: modelID,
		variant: variantChat,
		capabilities: chat.CapabilitySet{
			CanStream:          true,
			AllowsSystemPrompt: true,
		},
		needsKey: true,
	}
	return model.configure(options)
}

// NewCompletion builds a model for the legacy text-completion endpoint.
// The legacy endpoint has no role structure: system prompts, attachments,
// tools, and schema constraints are rejected at call time.
func NewCompletion(modelID string, options ...Option) *Model {
	model := &Model{
		modelID: modelID,
		variant: variantCompletion,
		capabilities: chat.CapabilitySet{
			CanStream: true,
		},
		needsKey: true,
	}
	return model.configure(options)
}

func (model *Model) configure(options []Option) *Model {
	for _, option := range options {
		option(model)
	}
	if model.variant == variantCompletion {
		model.optionSchema = chat.OptionSchemaCompletion
	} else {
		model.optionSchema = model.capabilities.OptionSchema()
	}
	if model.showResponses || os.Getenv(showResponsesEnvVar) != "" {
		if model.client == nil {
			model.client = utils.NewLoggingClient(nil)
		} else {
			model.client = &http.Client{Transport: &utils.LoggingTransport{Base: model.client.Transport}}
		}
	}
	return model
}

// WithModelName sets the model name sent on the wire when it differs from
// the local model ID, as with Azure deployments and aliased proxies.
func WithModelName(name string) Option {
	return func(model *Model) { model.modelName = name }
}

// WithAPIKey sets the default API key. A per-call key in the Request takes
// precedence.
func WithAPIKey(key string) Option {
	return func(model *Model) { model.apiKey = key }
}

// WithAPIBase points the model at a custom OpenAI-compatible endpoint.
// Custom endpoints frequently run without authentication, so this also
// waives the key requirement; combine with WithKeyRequired for hosted
// compatible services that do authenticate.
func WithAPIBase(base string) Option {
	return func(model *Model) {
		model.apiBase = base
		model.needsKey = false
	}
}

// WithKeyRequired re-enables the API key requirement after WithAPIBase.
func WithKeyRequired() Option {
	return func(model *Model) { model.needsKey = true }
}

// WithAzure configures Azure-style routing: requests go to
// {base}/openai/deployments/{engine}{endpoint}?api-version={version} and
// authenticate with an api-key header instead of a bearer token.
func WithAzure(version, engine string) Option {
	return func(model *Model) {
		model.apiType = "azure"
		model.apiVersion = version
		model.apiEngine = engine
	}
}

// WithHeaders sets extra headers applied to every request, after the
// defaults so they may override them.
func WithHeaders(headers map[string]string) Option {
	return func(model *Model) { model.headers = headers }
}

// WithCapabilities replaces the whole capability set.
func WithCapabilities(capabilities chat.CapabilitySet) Option {
	return func(model *Model) { model.capabilities = capabilities }
}

// WithVision enables image and PDF attachments.
func WithVision() Option {
	return func(model *Model) { model.capabilities.Vision = true }
}

// WithAudio enables wav and mp3 attachments.
func WithAudio() Option {
	return func(model *Model) { model.capabilities.Audio = true }
}

// WithTools enables function tool declarations.
func WithTools() Option {
	return func(model *Model) { model.capabilities.SupportsTools = true }
}

// WithSchemas enables JSON-schema constrained output.
func WithSchemas() Option {
	return func(model *Model) { model.capabilities.SupportsSchema = true }
}

// WithReasoning marks the model as a reasoning model, enabling the
// reasoning_effort option.
func WithReasoning() Option {
	return func(model *Model) { model.capabilities.Reasoning = true }
}

// WithoutStreaming marks the model as non-streamable; streaming requests
// fail before any I/O.
func WithoutStreaming() Option {
	return func(model *Model) { model.capabilities.CanStream = false }
}

// WithoutSystemPrompt rejects system prompts for this model.
func WithoutSystemPrompt() Option {
	return func(model *Model) { model.capabilities.AllowsSystemPrompt = false }
}

// WithDefaultMaxTokens sets the token limit applied when the caller leaves
// MaxTokens unset.
func WithDefaultMaxTokens(limit int) Option {
	return func(model *Model) { model.defaultMaxTokens = utils.Ptr(limit) }
}

// WithHTTPClient replaces the HTTP client, e.g. to set timeouts or a proxy.
func WithHTTPClient(client *http.Client) Option {
	return func(model *Model) { model.client = client }
}

// WithShowResponses wraps the transport so full request and response bodies
// are dumped through slog at debug level.
func WithShowResponses() Option {
	return func(model *Model) { model.showResponses = true }
}

// ModelID returns the local model identifier.
func (model *Model) ModelID() string { return model.modelID }

// Capabilities returns the model's declared capability set.
func (model *Model) Capabilities() chat.CapabilitySet { return model.capabilities }

func (model *Model) String() string {
	if model.variant == variantCompletion {
		return "OpenAI Completion: " + model.modelID
	}
	return "OpenAI Chat: " + model.modelID
}

// remoteModel returns the model name to send on the wire.
func (model *Model) remoteModel() string {
	if model.modelName != "" {
		return model.modelName
	}
	return model.modelID
}

// endpointURL resolves the full request URL, including Azure deployment
// routing and api-version query when configured.
func (model *Model) endpointURL() string {
	base := model.apiBase
	if base == "" {
		base = defaultBaseURL
	}
	base = strings.TrimRight(base, "/")

	endpoint := chatCompletionsEndpoint
	if model.variant == variantCompletion {
		endpoint = completionsEndpoint
	}

	if strings.EqualFold(model.apiType, "azure") {
		url := base
		if model.apiEngine != "" {
			url += "/openai/deployments/" + model.apiEngine
		}
		url += endpoint
		if model.apiVersion != "" {
			url += "?api-version=" + model.apiVersion
		}
		return url
	}
	return base + endpoint
}

// authorization splits the resolved key between the standard bearer token
// and provider-specific schemes, and materializes the extra headers in a
// stable order. Azure-style endpoints authenticate with an api-key header
// instead of a bearer token.
func (model *Model) authorization(key string) (string, []utils.HeaderOption) {
	headerKeys := make([]string, 0, len(model.headers))
	for headerKey := range model.headers {
		headerKeys = append(headerKeys, headerKey)
	}
	sort.Strings(headerKeys)

	headerOptions := make([]utils.HeaderOption, 0, len(headerKeys)+1)
	for _, headerKey := range headerKeys {
		headerOptions = append(headerOptions, utils.HeaderOption{Key: headerKey, Value: model.headers[headerKey]})
	}

	if strings.EqualFold(model.apiType, "azure") && key != "" {
		headerOptions = append(headerOptions, utils.HeaderOption{Key: "api-key", Value: key})
		return "", headerOptions
	}
	return key, headerOptions
}

// resolveKey picks the API key for one call: the per-call override wins,
// then the configured default. A model that requires a key but has none
// fails before any I/O; key-less endpoints simply send no credentials.
func (model *Model) resolveKey(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if model.apiKey != "" {
		return model.apiKey, nil
	}
	if model.needsKey {
		return "", &chat.ConfigurationError{Option: "api_key", Reason: "model requires an API key and none was provided"}
	}
	return "", nil
}

// Request bundles the inputs of one adapter call.
type Request struct {
	// Prompt is the current turn's input.
	Prompt chat.Prompt
	// Conversation is the finalized history preceding this turn.
	Conversation []chat.ConversationTurn
	// Stream selects streaming execution.
	Stream bool
	// Key overrides the model's configured API key for this call only.
	Key string
}

// Execute performs one call against the remote endpoint. It validates the
// request against the model's capability set and option schema, builds the
// wire payload, and returns the response as a lazy text stream. The record
// is finalized (normalized payload, parsed tool calls, usage, redacted
// request copy) as a side effect of draining the stream; for blocking calls
// the stream holds the already-received text.
func (model *Model) Execute(ctx context.Context, request Request, record *chat.ResponseRecord) (*chat.TextStream, error) {
	if err := model.checkRequest(request); err != nil {
		return nil, err
	}
	if err := request.Prompt.Options.Validate(model.optionSchema); err != nil {
		return nil, err
	}

	params, promptPayload, err := model.buildRequest(request)
	if err != nil {
		return nil, err
	}

	key, err := model.resolveKey(request.Key)
	if err != nil {
		return nil, err
	}

	if observer := observability.ObserverFromContext(ctx); observer != nil {
		observer.Debug(ctx, "executing chat request",
			observability.String(observability.AttrModel, model.remoteModel()),
			observability.String(observability.AttrEndpoint, model.endpointURL()),
			observability.Bool(observability.AttrStreaming, request.Stream),
			observability.Int(observability.AttrMessageCount, len(params.Messages)),
			observability.Int(observability.AttrToolCount, len(params.Tools)),
		)
	}
	if span := observability.SpanFromContext(ctx); span != nil {
		span.AddEvent(observability.EventRequestStart,
			observability.String(observability.AttrModel, model.remoteModel()),
			observability.Bool(observability.AttrStreaming, request.Stream),
		)
	}

	if request.Stream {
		return model.executeStream(ctx, model.client, key, params, promptPayload, record)
	}
	return model.executeSync(ctx, model.client, key, params, promptPayload, record)
}

// checkRequest rejects feature requests the model's capability set rules
// out. All checks run before any message building or I/O.
func (model *Model) checkRequest(request Request) error {
	if request.Stream && !model.capabilities.CanStream {
		return &chat.UnsupportedFeatureError{Feature: "streaming"}
	}
	if model.variant == variantCompletion {
		if request.Prompt.System != "" {
			return &chat.UnsupportedFeatureError{Feature: "system prompts"}
		}
		if len(request.Prompt.Attachments) > 0 {
			return &chat.UnsupportedFeatureError{Feature: "attachments"}
		}
		if len(request.Prompt.Tools) > 0 {
			return &chat.UnsupportedFeatureError{Feature: "tools"}
		}
		if request.Prompt.Schema != nil {
			return &chat.UnsupportedFeatureError{Feature: "schemas"}
		}
		return nil
	}
	if len(request.Prompt.Tools) > 0 && !model.capabilities.SupportsTools {
		return &chat.UnsupportedFeatureError{Feature: "tools"}
	}
	if request.Prompt.Schema != nil && !model.capabilities.SupportsSchema {
		return &chat.UnsupportedFeatureError{Feature: "schemas"}
	}
	accepted := model.capabilities.AttachmentTypes()
	for _, attachment := range request.Prompt.Attachments {
		if !accepted[attachment.ResolveType()] {
			return &chat.UnsupportedFeatureError{Feature: "attachments of type " + attachment.ResolveType()}
		}
	}
	return nil
}

// buildRequest assembles the wire payload and returns alongside it the
// prompt payload kept for the record: the message list for chat models, the
// unjoined prompt segments for completion models.
func (model *Model) buildRequest(request Request) (*chatCompletionRequest, any, error) {
	params, err := model.buildParams(request.Prompt, request.Stream)
	if err != nil {
		return nil, nil, err
	}

	if model.variant == variantCompletion {
		segments := buildCompletionPrompt(request.Prompt, request.Conversation)
		params.Prompt = utils.Ptr(strings.Join(segments, "\n"))
		return params, segments, nil
	}

	messages, err := buildMessages(request.Prompt, request.Conversation, model.capabilities.AllowsSystemPrompt)
	if err != nil {
		return nil, nil, err
	}
	params.Messages = messages
	return params, messages, nil
}

// executeSync performs a blocking call and wraps the response text in a
// single-fragment stream. The record is fully finalized before returning.
func (model *Model) executeSync(ctx context.Context, client *http.Client, key string, params *chatCompletionRequest, promptPayload any, record *chat.ResponseRecord) (*chat.TextStream, error) {
	authKey, headerOptions := model.authorization(key)
	response, body, err := utils.DoPostRaw(ctx, client, model.endpointURL(), authKey, params, headerOptions...)
	if err != nil {
		return nil, &chat.TransportFailureError{Err: err}
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, &chat.TransportFailureError{StatusCode: response.StatusCode, Body: string(body)}
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return nil, &chat.MalformedPayloadError{Reason: "decoding completion response", Err: err}
	}
	if len(completion.Choices) == 0 {
		return nil, &chat.MalformedPayloadError{Reason: "response carried no choices"}
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &chat.MalformedPayloadError{Reason: "decoding response payload", Err: err}
	}
	record.ResponseJSON = removeNullValues(payload)

	choice := completion.Choices[0]
	for _, toolCall := range choice.Message.ToolCalls {
		record.AddToolCall(finalizeToolCall(toolCall.ID, toolCall.Function.Name, toolCall.Function.Arguments))
	}

	content := ""
	if model.variant == variantCompletion {
		if choice.Text != nil {
			content = *choice.Text
		}
	} else if choice.Message.Content != nil {
		content = *choice.Message.Content
	}

	setUsage(record, completion.Usage)
	record.PromptJSON = redactedRequest(promptPayload)

	iterator := func(yield func(string, error) bool) {
		if content != "" {
			yield(content, nil)
		}
	}
	return chat.NewTextStream(iterator), nil
}
