package utils

import (
	"io"
	"strings"
	"testing"
)

func TestSSEScanner_BasicEvents(t *testing.T) {
	input := "data: {\"a\":1}\n\ndata: {\"b\":2}\n\ndata: [DONE]\n\n"
	scanner := NewSSEScanner(strings.NewReader(input))

	first, err := scanner.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != `{"a":1}` {
		t.Errorf("expected first payload, got %q", first)
	}

	second, err := scanner.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second != `{"b":2}` {
		t.Errorf("expected second payload, got %q", second)
	}

	if _, err := scanner.Next(); err != io.EOF {
		t.Errorf("expected io.EOF at [DONE], got %v", err)
	}
}

func TestSSEScanner_SkipsCommentsAndEmptyLines(t *testing.T) {
	input := ": keep-alive\n\n\ndata: payload\n\n"
	scanner := NewSSEScanner(strings.NewReader(input))

	payload, err := scanner.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload != "payload" {
		t.Errorf("expected 'payload', got %q", payload)
	}
}

func TestSSEScanner_MultiLineData(t *testing.T) {
	input := "data: line one\ndata: line two\n\n"
	scanner := NewSSEScanner(strings.NewReader(input))

	payload, err := scanner.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload != "line one\nline two" {
		t.Errorf("expected joined payload, got %q", payload)
	}
}

func TestSSEScanner_TrailingDataWithoutBlankLine(t *testing.T) {
	scanner := NewSSEScanner(strings.NewReader("data: final"))

	payload, err := scanner.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload != "final" {
		t.Errorf("expected 'final', got %q", payload)
	}

	if _, err := scanner.Next(); err != io.EOF {
		t.Errorf("expected io.EOF after stream end, got %v", err)
	}
}
