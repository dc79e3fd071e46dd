package openai

import "github.com/lbianche/chatwire/chat"

// buildCompletionPrompt flattens a conversation into the legacy completion
// endpoint's single text prompt: each prior turn contributes its user text
// and the assistant's response, and the current prompt comes last. The
// segments are newline-joined by the caller; the unjoined list is what gets
// recorded for audit, mirroring the message list of the chat variant.
//
// The legacy endpoint has no role structure, so system prompts, attachments,
// and tools are rejected before this function is reached.
func buildCompletionPrompt(prompt chat.Prompt, conversation []chat.ConversationTurn) []string {
	segments := make([]string, 0, len(conversation)*2+1)
	for _, turn := range conversation {
		segments = append(segments, turn.Prompt)
		segments = append(segments, turn.Text)
	}
	return append(segments, prompt.Prompt)
}
