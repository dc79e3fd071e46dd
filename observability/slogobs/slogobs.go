// Package slogobs implements the observability contracts on top of Go's
// standard library slog, making it suitable for lightweight observability
// without external dependencies.
package slogobs

import (
	"context"
	"log/slog"

	"github.com/lbianche/chatwire/observability"
)

// LevelTrace sits below slog.LevelDebug so trace chatter can be filtered
// out independently of debug output.
const LevelTrace = slog.LevelDebug - 4

// Observer routes structured adapter events through a slog.Logger.
type Observer struct {
	logger *slog.Logger
}

// New creates a slog-backed observer. A nil logger falls back to
// slog.Default().
func New(logger *slog.Logger) *Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Observer{logger: logger}
}

func (observer *Observer) Trace(ctx context.Context, msg string, attrs ...observability.Attribute) {
	observer.log(ctx, LevelTrace, msg, attrs)
}

func (observer *Observer) Debug(ctx context.Context, msg string, attrs ...observability.Attribute) {
	observer.log(ctx, slog.LevelDebug, msg, attrs)
}

func (observer *Observer) Info(ctx context.Context, msg string, attrs ...observability.Attribute) {
	observer.log(ctx, slog.LevelInfo, msg, attrs)
}

func (observer *Observer) Warn(ctx context.Context, msg string, attrs ...observability.Attribute) {
	observer.log(ctx, slog.LevelWarn, msg, attrs)
}

func (observer *Observer) Error(ctx context.Context, msg string, attrs ...observability.Attribute) {
	observer.log(ctx, slog.LevelError, msg, attrs)
}

func (observer *Observer) log(ctx context.Context, level slog.Level, msg string, attrs []observability.Attribute) {
	args := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		args = append(args, slog.Any(attr.Key, attr.Value))
	}
	observer.logger.Log(ctx, level, msg, args...)
}

// Span is a slog-backed span that logs its events at trace level. It
// satisfies observability.Span for hosts that want span events in their
// logs without a tracing backend.
type Span struct {
	observer *Observer
	name     string
}

// StartSpan creates a span and returns a context carrying it.
func (observer *Observer) StartSpan(ctx context.Context, name string, attrs ...observability.Attribute) (context.Context, *Span) {
	span := &Span{observer: observer, name: name}
	observer.log(ctx, LevelTrace, "span start: "+name, attrs)
	return observability.ContextWithSpan(ctx, span), span
}

func (span *Span) End() {
	span.observer.log(context.Background(), LevelTrace, "span end: "+span.name, nil)
}

func (span *Span) SetAttributes(attrs ...observability.Attribute) {
	span.observer.log(context.Background(), LevelTrace, "span attrs: "+span.name, attrs)
}

func (span *Span) RecordError(err error) {
	span.observer.log(context.Background(), slog.LevelError, "span error: "+span.name,
		[]observability.Attribute{observability.Error(err)})
}

func (span *Span) AddEvent(name string, attrs ...observability.Attribute) {
	span.observer.log(context.Background(), LevelTrace, span.name+": "+name, attrs)
}
