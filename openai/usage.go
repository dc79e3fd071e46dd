package openai

import "github.com/lbianche/chatwire/chat"

// setUsage normalizes a provider usage payload onto the record: the
// prompt/completion counters become the stable input/output pair, the
// redundant total is dropped, and whatever remains is simplified into the
// details map. A call whose response carried no usage leaves the record's
// Usage unset.
func setUsage(record *chat.ResponseRecord, usage map[string]any) {
	if len(usage) == 0 {
		return
	}
	remainder := make(map[string]any, len(usage))
	for key, value := range usage {
		remainder[key] = value
	}
	input := popCounter(remainder, "prompt_tokens")
	output := popCounter(remainder, "completion_tokens")
	delete(remainder, "total_tokens")
	record.SetUsage(input, output, simplifyUsage(remainder))
}

// popCounter removes a counter from the usage map and returns its integer
// value, treating absent or non-numeric entries as zero.
func popCounter(usage map[string]any, key string) int {
	value, ok := usage[key]
	delete(usage, key)
	if !ok {
		return 0
	}
	switch typed := value.(type) {
	case float64:
		return int(typed)
	case int:
		return typed
	}
	return 0
}

// simplifyUsage recursively drops zero counters, nulls, and nested groups
// that end up empty, so details carries only counters that actually say
// something. An all-zero payload simplifies to an empty map, which is still
// recorded: the provider did report usage, it was just all zeros.
func simplifyUsage(usage map[string]any) map[string]any {
	simplified := map[string]any{}
	for key, value := range usage {
		switch typed := value.(type) {
		case nil:
		case map[string]any:
			nested := simplifyUsage(typed)
			if len(nested) > 0 {
				simplified[key] = nested
			}
		case float64:
			if typed != 0 {
				simplified[key] = typed
			}
		case int:
			if typed != 0 {
				simplified[key] = typed
			}
		default:
			simplified[key] = typed
		}
	}
	return simplified
}
