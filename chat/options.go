package chat

import (
	"encoding/json"
	"strconv"
)

// OptionSchema selects which option fields a model variant accepts. The set
// is closed and chosen once at model construction time: plain chat models
// accept JSONObject, reasoning models additionally accept ReasoningEffort,
// and legacy completion models accept Logprobs instead of JSONObject.
type OptionSchema string

const (
	// OptionSchemaChat is the default option set for chat models.
	OptionSchemaChat OptionSchema = "chat"
	// OptionSchemaReasoning extends the chat set with ReasoningEffort.
	OptionSchemaReasoning OptionSchema = "reasoning"
	// OptionSchemaCompletion is the legacy completion option set.
	OptionSchemaCompletion OptionSchema = "completion"
)

// ReasoningEffort constrains effort on reasoning for reasoning models.
type ReasoningEffort string

const (
	ReasoningEffortLow    ReasoningEffort = "low"
	ReasoningEffortMedium ReasoningEffort = "medium"
	ReasoningEffortHigh   ReasoningEffort = "high"
)

// Options is the generic per-call options bag. Nil fields are omitted from
// the outbound request entirely; only non-nil fields are copied into the
// provider parameters.
type Options struct {
	// Temperature is the sampling temperature, between 0 and 2.
	Temperature *float64
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens *int
	// TopP is the nucleus sampling probability mass, between 0 and 1.
	TopP *float64
	// FrequencyPenalty is between -2 and 2. Positive values penalize
	// frequent tokens, reducing verbatim repetition.
	FrequencyPenalty *float64
	// PresencePenalty is between -2 and 2. Positive values penalize tokens
	// that already appeared, encouraging new topics.
	PresencePenalty *float64
	// Stop is a string where the API will stop generating further tokens.
	Stop *string
	// LogitBias modifies the likelihood of specified tokens appearing.
	// Accepts either a map of token ID to bias or a JSON string such as
	// `{"1712":-100, "892":-100}`. Values must be between -100 and 100.
	LogitBias any
	// Seed attempts deterministic sampling.
	Seed *int
	// JSONObject forces output of a valid JSON object. The prompt must
	// mention JSON. Not available on the completion variant.
	JSONObject *bool
	// ReasoningEffort is accepted only by reasoning-variant models.
	ReasoningEffort *ReasoningEffort
	// Logprobs includes log probabilities of the most likely N tokens.
	// Accepted only by the completion variant, maximum 5.
	Logprobs *int
}

// Validate eagerly checks every set option against its declared bounds and
// against the model's option schema. It returns a *ConfigurationError on the
// first violation and is always called before any message building or I/O.
func (options Options) Validate(schema OptionSchema) error {
	if options.Temperature != nil && (*options.Temperature < 0 || *options.Temperature > 2) {
		return &ConfigurationError{Option: "temperature", Reason: "must be between 0 and 2"}
	}
	if options.TopP != nil && (*options.TopP < 0 || *options.TopP > 1) {
		return &ConfigurationError{Option: "top_p", Reason: "must be between 0 and 1"}
	}
	if options.FrequencyPenalty != nil && (*options.FrequencyPenalty < -2 || *options.FrequencyPenalty > 2) {
		return &ConfigurationError{Option: "frequency_penalty", Reason: "must be between -2 and 2"}
	}
	if options.PresencePenalty != nil && (*options.PresencePenalty < -2 || *options.PresencePenalty > 2) {
		return &ConfigurationError{Option: "presence_penalty", Reason: "must be between -2 and 2"}
	}
	if options.LogitBias != nil {
		if _, err := options.NormalizedLogitBias(); err != nil {
			return err
		}
	}
	if options.ReasoningEffort != nil {
		if schema != OptionSchemaReasoning {
			return &ConfigurationError{Option: "reasoning_effort", Reason: "only supported by reasoning models"}
		}
		switch *options.ReasoningEffort {
		case ReasoningEffortLow, ReasoningEffortMedium, ReasoningEffortHigh:
		default:
			return &ConfigurationError{Option: "reasoning_effort", Reason: "must be low, medium, or high"}
		}
	}
	if options.JSONObject != nil && schema == OptionSchemaCompletion {
		return &ConfigurationError{Option: "json_object", Reason: "not supported by completion models"}
	}
	if options.Logprobs != nil {
		if schema != OptionSchemaCompletion {
			return &ConfigurationError{Option: "logprobs", Reason: "only supported by completion models"}
		}
		if *options.Logprobs > 5 {
			return &ConfigurationError{Option: "logprobs", Reason: "must be at most 5"}
		}
	}
	return nil
}

// NormalizedLogitBias converts the LogitBias field into its canonical
// map form, parsing JSON strings and validating that keys are integer token
// IDs and values fall within [-100, 100]. A nil LogitBias yields a nil map.
func (options Options) NormalizedLogitBias() (map[string]int, error) {
	if options.LogitBias == nil {
		return nil, nil
	}

	raw := map[string]any{}
	switch value := options.LogitBias.(type) {
	case string:
		if err := json.Unmarshal([]byte(value), &raw); err != nil {
			return nil, &ConfigurationError{Option: "logit_bias", Reason: "invalid JSON string"}
		}
	case map[string]int:
		normalized := make(map[string]int, len(value))
		for key, bias := range value {
			if err := checkLogitBiasEntry(key, bias); err != nil {
				return nil, err
			}
			normalized[key] = bias
		}
		return normalized, nil
	case map[string]any:
		raw = value
	default:
		return nil, &ConfigurationError{Option: "logit_bias", Reason: "must be a map or a JSON string"}
	}

	normalized := make(map[string]int, len(raw))
	for key, entry := range raw {
		bias, ok := numericBias(entry)
		if !ok {
			return nil, &ConfigurationError{Option: "logit_bias", Reason: "bias values must be integers"}
		}
		if err := checkLogitBiasEntry(key, bias); err != nil {
			return nil, err
		}
		normalized[key] = bias
	}
	return normalized, nil
}

// checkLogitBiasEntry validates one token/bias pair.
func checkLogitBiasEntry(key string, bias int) error {
	if _, err := strconv.Atoi(key); err != nil {
		return &ConfigurationError{Option: "logit_bias", Reason: "keys must be integer token IDs"}
	}
	if bias < -100 || bias > 100 {
		return &ConfigurationError{Option: "logit_bias", Reason: "bias values must be between -100 and 100"}
	}
	return nil
}

// numericBias converts a JSON-decoded bias value to an int, rejecting
// non-integral floats.
func numericBias(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}
