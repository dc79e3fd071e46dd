package utils

import "testing"

func TestParseJSON_Valid(t *testing.T) {
	parsed, err := ParseJSON[map[string]any](`{"city":"Boston"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed["city"] != "Boston" {
		t.Errorf("expected city Boston, got %v", parsed)
	}
}

func TestParseJSON_RepairsMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"single quotes", `{'city': 'Boston'}`},
		{"trailing comma", `{"city":"Boston",}`},
		{"unquoted key", `{city: "Boston"}`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			parsed, err := ParseJSON[map[string]any](test.content)
			if err != nil {
				t.Fatalf("expected repair to succeed: %v", err)
			}
			if parsed["city"] != "Boston" {
				t.Errorf("expected city Boston, got %v", parsed)
			}
		})
	}
}

func TestParseJSON_UnrepairableFails(t *testing.T) {
	if _, err := ParseJSON[map[string]any](`42`); err == nil {
		t.Error("expected type mismatch to fail")
	}
}
