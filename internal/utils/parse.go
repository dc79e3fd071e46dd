package utils

import (
	"encoding/json"
	"fmt"

	"github.com/kaptinlin/jsonrepair"
)

// ParseJSON attempts to parse a JSON string into the specified type T.
// If standard unmarshaling fails, it attempts to repair the JSON string
// using jsonrepair and retries, which recovers the malformed argument
// payloads some models emit (single quotes, trailing commas, unbalanced
// braces from truncated streams).
//
// Example usage:
//
//	// Valid JSON
//	args, err := ParseJSON[map[string]any](`{"city":"Boston"}`)
//
//	// Malformed JSON (auto-repaired)
//	args, err := ParseJSON[map[string]any](`{city: 'Boston'}`)
func ParseJSON[T any](content string) (T, error) {
	var result T

	err := json.Unmarshal([]byte(content), &result)
	if err == nil {
		return result, nil
	}

	repairedJSON, repairErr := jsonrepair.JSONRepair(content)
	if repairErr != nil {
		return result, fmt.Errorf("failed to unmarshal content as %T and failed to repair JSON: unmarshal error: %w, repair error: %v", result, err, repairErr)
	}

	err = json.Unmarshal([]byte(repairedJSON), &result)
	if err != nil {
		return result, fmt.Errorf("failed to unmarshal repaired JSON as %T: %w (original content: %s, repaired: %s)", result, err, content, repairedJSON)
	}
	return result, nil
}
