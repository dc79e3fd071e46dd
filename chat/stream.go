package chat

import (
	"iter"
	"strings"
)

// TextStream wraps the lazy, ordered, finite sequence of text fragments
// produced by one executed call. Fragments arrive in emission order with no
// buffering delay.
//
// The sequence is not restartable; consuming it a second time is undefined.
// Callers must consume the stream, either by iterating Iter() (breaking out
// early is allowed) or by calling Collect(). The executor holds the
// underlying transport stream open until the iterator completes or is
// abandoned via a loop break; abandoning the stream releases the transport
// and leaves the call's ResponseRecord unfinalized.
type TextStream struct {
	iterator iter.Seq2[string, error]
}

// NewTextStream creates a TextStream from a raw fragment iterator. The
// iterator yields text fragments with a nil error, and may yield a non-nil
// error to signal a mid-stream failure.
func NewTextStream(iterator iter.Seq2[string, error]) *TextStream {
	return &TextStream{iterator: iterator}
}

// Iter returns the underlying iterator for use with range-over-func loops.
//
// Example:
//
//	for fragment, err := range stream.Iter() {
//	    if err != nil { handle error }
//	    fmt.Print(fragment)
//	}
func (stream *TextStream) Iter() iter.Seq2[string, error] {
	return stream.iterator
}

// Collect drains the entire stream and returns the concatenated text. A
// mid-stream error terminates collection and returns the text accumulated
// so far together with the error.
func (stream *TextStream) Collect() (string, error) {
	var builder strings.Builder
	for fragment, err := range stream.iterator {
		if err != nil {
			return builder.String(), err
		}
		builder.WriteString(fragment)
	}
	return builder.String(), nil
}
