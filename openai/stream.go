package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/lbianche/chatwire/chat"
	"github.com/lbianche/chatwire/internal/utils"
	"github.com/lbianche/chatwire/observability"
)

// chatCompletionStreamChunk is one decoded SSE event of a streamed call.
type chatCompletionStreamChunk struct {
	ID      string         `json:"id"`
	Object  string         `json:"object"`
	Created int64          `json:"created"`
	Model   string         `json:"model"`
	Choices []streamChoice `json:"choices"`
	Usage   map[string]any `json:"usage"`
}

// streamChoice carries either a chat delta or, for the legacy completion
// endpoint, a raw text fragment.
type streamChoice struct {
	Index        int            `json:"index"`
	Delta        *streamDelta   `json:"delta"`
	Text         *string        `json:"text"`
	FinishReason *string        `json:"finish_reason"`
	Logprobs     map[string]any `json:"logprobs"`
}

type streamDelta struct {
	Role      string               `json:"role"`
	Content   *string              `json:"content"`
	ToolCalls []streamToolCallPart `json:"tool_calls"`
}

// streamToolCallPart is one fragment of a tool call spread across chunks.
// Index identifies which in-flight call the fragment belongs to; ID and the
// function name typically arrive on the first fragment only, while argument
// text is split across many.
type streamToolCallPart struct {
	Index    int    `json:"index"`
	ID       string `json:"id"`
	Type     string `json:"type"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

// chunkAccumulator folds the chunks of one streamed call into the state
// needed to finalize its ResponseRecord: the full chunk list for the
// combined payload, in-flight tool calls keyed by choice index, the latest
// usage snapshot, and the fragments actually handed to the caller.
type chunkAccumulator struct {
	chunks     []*chatCompletionStreamChunk
	toolCalls  map[int]*partialToolCall
	indexOrder []int
	usage      map[string]any
	emitted    []string
}

// partialToolCall holds one in-flight tool call while its fragments arrive.
// Argument fragments are concatenated in arrival order; the result is parsed
// only at finalization.
type partialToolCall struct {
	id        string
	name      string
	arguments strings.Builder
}

func newChunkAccumulator() *chunkAccumulator {
	return &chunkAccumulator{toolCalls: map[int]*partialToolCall{}}
}

// fold absorbs one chunk and returns the text fragment it contributed, if
// any. A chunk without choices (such as the trailing usage-only chunk) is
// recorded but contributes no fragment.
func (accumulator *chunkAccumulator) fold(chunk *chatCompletionStreamChunk) (string, bool) {
	accumulator.chunks = append(accumulator.chunks, chunk)
	if chunk.Usage != nil {
		accumulator.usage = chunk.Usage
	}
	if len(chunk.Choices) == 0 {
		return "", false
	}

	choice := chunk.Choices[0]
	if choice.Delta == nil {
		if choice.Text != nil {
			return *choice.Text, true
		}
		return "", false
	}

	for _, part := range choice.Delta.ToolCalls {
		partial, exists := accumulator.toolCalls[part.Index]
		if !exists {
			partial = &partialToolCall{}
			accumulator.toolCalls[part.Index] = partial
			accumulator.indexOrder = append(accumulator.indexOrder, part.Index)
		}
		if part.ID != "" {
			partial.id = part.ID
		}
		if part.Function.Name != "" {
			partial.name = part.Function.Name
		}
		partial.arguments.WriteString(part.Function.Arguments)
	}

	if choice.Delta.Content != nil {
		return *choice.Delta.Content, true
	}
	return "", false
}

// finalize writes the accumulated state onto the record: the combined
// null-stripped payload, finalized tool calls in first-seen index order,
// normalized usage, and the emitted fragment sequence.
func (accumulator *chunkAccumulator) finalize(record *chat.ResponseRecord) {
	record.ResponseJSON = removeNullValues(combineChunks(accumulator.chunks))
	for _, index := range accumulator.indexOrder {
		partial := accumulator.toolCalls[index]
		record.AddToolCall(finalizeToolCall(partial.id, partial.name, partial.arguments.String()))
	}
	setUsage(record, accumulator.usage)
	record.Fragments = accumulator.emitted
}

// executeStream performs the streaming variant of a call. The returned
// TextStream lazily reads the SSE body; the record is finalized only when
// the caller drains the stream to completion. Breaking out of the iterator
// closes the transport and leaves the record untouched, as does a context
// cancellation observed between chunks.
func (model *Model) executeStream(ctx context.Context, client *http.Client, key string, params *chatCompletionRequest, promptPayload any, record *chat.ResponseRecord) (*chat.TextStream, error) {
	span := observability.SpanFromContext(ctx)

	authKey, headerOptions := model.authorization(key)
	response, err := utils.DoPostStream(ctx, client, model.endpointURL(), authKey, params, headerOptions...)
	if err != nil {
		return nil, &chat.TransportFailureError{Err: err}
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, &chat.TransportFailureError{
			StatusCode: response.StatusCode,
			Body:       utils.ReadErrorBody(response.Body),
		}
	}

	scanner := utils.NewSSEScanner(response.Body)
	iterator := func(yield func(string, error) bool) {
		defer utils.CloseWithLog(response.Body)
		accumulator := newChunkAccumulator()

		for {
			if ctx.Err() != nil {
				yield("", ctx.Err())
				return
			}

			payload, scanErr := scanner.Next()
			if scanErr == io.EOF {
				break
			}
			if scanErr != nil {
				yield("", &chat.TransportFailureError{Err: scanErr})
				return
			}

			var chunk chatCompletionStreamChunk
			if unmarshalErr := json.Unmarshal([]byte(payload), &chunk); unmarshalErr != nil {
				yield("", &chat.MalformedPayloadError{Reason: "decoding stream chunk", Err: unmarshalErr})
				return
			}

			fragment, hasFragment := accumulator.fold(&chunk)
			if hasFragment && fragment != "" {
				if !yield(fragment, nil) {
					return
				}
				accumulator.emitted = append(accumulator.emitted, fragment)
			}
		}

		accumulator.finalize(record)
		record.PromptJSON = redactedRequest(promptPayload)
		if span != nil {
			finishReason, _ := record.ResponseJSON["finish_reason"].(string)
			span.AddEvent(observability.EventStreamFinished,
				observability.Int("chat.fragment_count", len(record.Fragments)),
				observability.Int(observability.AttrToolCount, len(record.ToolCalls)),
				observability.String(observability.AttrFinishReason, finishReason),
			)
		}
	}

	return chat.NewTextStream(iterator), nil
}
