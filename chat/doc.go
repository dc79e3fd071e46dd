// Package chat defines the provider-agnostic conversation abstraction
// consumed by the wire adapters: prompts, conversation history, attachments,
// tool declarations and results, per-model capability flags, and the
// normalized response record populated by an executed call.
//
// Types in this package carry no provider-specific wire shapes. The openai
// package translates them to and from the remote API format.
package chat
