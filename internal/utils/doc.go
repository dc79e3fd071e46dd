// Package utils contains internal plumbing shared by the wire adapters:
// JSON-over-HTTP POST helpers for blocking and SSE-streamed calls, a
// Server-Sent Events scanner, JSON parsing with automatic repair, and small
// pointer/string conveniences.
package utils
