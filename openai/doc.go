// Package openai adapts the provider-agnostic chat abstraction to the
// OpenAI-compatible chat-completion wire format. It builds the outbound
// role-tagged message list from conversation history, attachments and tool
// results, executes the call in blocking or streaming mode, folds streamed
// fragments (including partially-delivered tool-call arguments) into one
// normalized response record, reshapes token usage into a stable schema, and
// redacts embedded base64 media from the request copy kept for audit.
//
// The package works against any endpoint speaking the published
// chat-completion schema: the real OpenAI API, Azure deployments, and
// self-hosted compatible servers reached through a custom base URL.
package openai
