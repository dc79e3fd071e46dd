package chat

import (
	"errors"
	"testing"
)

func ptr[T any](v T) *T { return &v }

func TestOptionsValidate_Bounds(t *testing.T) {
	tests := []struct {
		name    string
		options Options
		valid   bool
	}{
		{"empty", Options{}, true},
		{"temperature in range", Options{Temperature: ptr(1.5)}, true},
		{"temperature too high", Options{Temperature: ptr(2.5)}, false},
		{"temperature negative", Options{Temperature: ptr(-0.1)}, false},
		{"top_p in range", Options{TopP: ptr(0.9)}, true},
		{"top_p too high", Options{TopP: ptr(1.1)}, false},
		{"frequency penalty in range", Options{FrequencyPenalty: ptr(-2.0)}, true},
		{"frequency penalty too low", Options{FrequencyPenalty: ptr(-2.1)}, false},
		{"presence penalty too high", Options{PresencePenalty: ptr(2.1)}, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.options.Validate(OptionSchemaChat)
			if test.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !test.valid {
				var configuration *ConfigurationError
				if !errors.As(err, &configuration) {
					t.Errorf("expected ConfigurationError, got %T: %v", err, err)
				}
			}
		})
	}
}

func TestOptionsValidate_SchemaVariants(t *testing.T) {
	reasoning := Options{ReasoningEffort: ptr(ReasoningEffortLow)}
	if err := reasoning.Validate(OptionSchemaReasoning); err != nil {
		t.Errorf("reasoning_effort must be accepted on reasoning schema: %v", err)
	}
	if err := reasoning.Validate(OptionSchemaChat); err == nil {
		t.Error("reasoning_effort must be rejected on chat schema")
	}

	invalid := Options{ReasoningEffort: ptr(ReasoningEffort("extreme"))}
	if err := invalid.Validate(OptionSchemaReasoning); err == nil {
		t.Error("unknown reasoning effort must be rejected")
	}

	logprobs := Options{Logprobs: ptr(3)}
	if err := logprobs.Validate(OptionSchemaCompletion); err != nil {
		t.Errorf("logprobs must be accepted on completion schema: %v", err)
	}
	if err := logprobs.Validate(OptionSchemaChat); err == nil {
		t.Error("logprobs must be rejected on chat schema")
	}
	tooMany := Options{Logprobs: ptr(6)}
	if err := tooMany.Validate(OptionSchemaCompletion); err == nil {
		t.Error("logprobs above 5 must be rejected")
	}

	jsonObject := Options{JSONObject: ptr(true)}
	if err := jsonObject.Validate(OptionSchemaChat); err != nil {
		t.Errorf("json_object must be accepted on chat schema: %v", err)
	}
	if err := jsonObject.Validate(OptionSchemaCompletion); err == nil {
		t.Error("json_object must be rejected on completion schema")
	}
}

func TestNormalizedLogitBias(t *testing.T) {
	tests := []struct {
		name  string
		bias  any
		valid bool
	}{
		{"nil", nil, true},
		{"int map", map[string]int{"1712": -100}, true},
		{"json string", `{"1712":-100, "892":50}`, true},
		{"invalid json string", `{1712:-100`, false},
		{"non-integer key", map[string]int{"token": 1}, false},
		{"value too low", map[string]int{"1712": -101}, false},
		{"value too high", map[string]int{"1712": 101}, false},
		{"float map from json", map[string]any{"1712": float64(-100)}, true},
		{"non-integral float value", map[string]any{"1712": 1.5}, false},
		{"wrong type", 42, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			options := Options{LogitBias: test.bias}
			normalized, err := options.NormalizedLogitBias()
			if test.valid && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !test.valid && err == nil {
				t.Fatalf("expected error, got %v", normalized)
			}
		})
	}

	options := Options{LogitBias: `{"1712":-100, "892":50}`}
	normalized, err := options.NormalizedLogitBias()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if normalized["1712"] != -100 || normalized["892"] != 50 {
		t.Errorf("unexpected normalized map: %v", normalized)
	}
}
