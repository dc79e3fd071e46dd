package openai

import (
	"github.com/lbianche/chatwire/chat"
	"github.com/lbianche/chatwire/internal/jsonschema"
	"github.com/lbianche/chatwire/internal/utils"
)

// chatCompletionRequest is the outbound request payload. The same shape
// serves both endpoints: chat models populate Messages, legacy completion
// models populate Prompt. Nil pointer fields are omitted so unset options
// never appear on the wire.
type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages,omitempty"`
	Prompt   *string       `json:"prompt,omitempty"`

	Temperature      *float64            `json:"temperature,omitempty"`
	MaxTokens        *int                `json:"max_tokens,omitempty"`
	TopP             *float64            `json:"top_p,omitempty"`
	FrequencyPenalty *float64            `json:"frequency_penalty,omitempty"`
	PresencePenalty  *float64            `json:"presence_penalty,omitempty"`
	Stop             *string             `json:"stop,omitempty"`
	LogitBias        map[string]int      `json:"logit_bias,omitempty"`
	Seed             *int                `json:"seed,omitempty"`
	ReasoningEffort  string              `json:"reasoning_effort,omitempty"`
	Logprobs         *int                `json:"logprobs,omitempty"`
	ResponseFormat   *chatResponseFormat `json:"response_format,omitempty"`
	Tools            []chatTool          `json:"tools,omitempty"`

	Stream        *bool          `json:"stream,omitempty"`
	StreamOptions *streamOptions `json:"stream_options,omitempty"`
}

// streamOptions asks the endpoint to append a final usage-bearing chunk to
// the event stream.
type streamOptions struct {
	IncludeUsage bool `json:"include_usage"`
}

// chatResponseFormat constrains the output shape. Type is either
// "json_object" or "json_schema"; JSONSchema is set for the latter.
type chatResponseFormat struct {
	Type       string          `json:"type"`
	JSONSchema *chatJSONSchema `json:"json_schema,omitempty"`
}

type chatJSONSchema struct {
	Name   string             `json:"name"`
	Schema *jsonschema.Schema `json:"schema"`
}

// chatTool is the wire form of a function tool declaration.
type chatTool struct {
	Type     string          `json:"type"`
	Function chatToolPayload `json:"function"`
}

type chatToolPayload struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Parameters  *jsonschema.Schema `json:"parameters,omitempty"`
}

// buildParams maps the validated option bag and the prompt's structural
// inputs (schema constraint, tool declarations) onto the request payload.
//
// A schema constraint takes precedence over the json_object option when both
// are present. The model's default max token limit applies only when the
// caller left MaxTokens unset.
func (model *Model) buildParams(prompt chat.Prompt, stream bool) (*chatCompletionRequest, error) {
	options := prompt.Options

	params := &chatCompletionRequest{
		Model:            model.remoteModel(),
		Temperature:      options.Temperature,
		MaxTokens:        options.MaxTokens,
		TopP:             options.TopP,
		FrequencyPenalty: options.FrequencyPenalty,
		PresencePenalty:  options.PresencePenalty,
		Stop:             options.Stop,
		Seed:             options.Seed,
		Logprobs:         options.Logprobs,
	}
	if options.ReasoningEffort != nil {
		params.ReasoningEffort = string(*options.ReasoningEffort)
	}

	logitBias, err := options.NormalizedLogitBias()
	if err != nil {
		return nil, err
	}
	params.LogitBias = logitBias

	if params.MaxTokens == nil && model.defaultMaxTokens != nil {
		params.MaxTokens = utils.Ptr(*model.defaultMaxTokens)
	}

	if options.JSONObject != nil && *options.JSONObject {
		params.ResponseFormat = &chatResponseFormat{Type: "json_object"}
	}
	if prompt.Schema != nil {
		params.ResponseFormat = &chatResponseFormat{
			Type:       "json_schema",
			JSONSchema: &chatJSONSchema{Name: "output", Schema: prompt.Schema},
		}
	}

	for _, tool := range prompt.Tools {
		params.Tools = append(params.Tools, chatTool{
			Type: "function",
			Function: chatToolPayload{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  tool.InputSchema,
			},
		})
	}

	if stream {
		params.Stream = utils.Ptr(true)
		params.StreamOptions = &streamOptions{IncludeUsage: true}
	}

	return params, nil
}
