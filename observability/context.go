package observability

import "context"

// contextKey is a private type for context keys to avoid collisions.
type contextKey string

const (
	observerContextKey contextKey = "chatwire-observer"
	spanContextKey     contextKey = "chatwire-span"
)

// ContextWithObserver returns a new context with the given observer attached.
func ContextWithObserver(ctx context.Context, observer Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, observerContextKey, observer)
}

// ObserverFromContext extracts the observer from the context.
// Returns nil if no observer is present.
func ObserverFromContext(ctx context.Context) Logger {
	if ctx == nil {
		return nil
	}
	observer, _ := ctx.Value(observerContextKey).(Logger)
	return observer
}

// ContextWithSpan returns a new context with the given span attached.
func ContextWithSpan(ctx context.Context, span Span) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, spanContextKey, span)
}

// SpanFromContext extracts the current span from the context.
// Returns nil if no span is present.
func SpanFromContext(ctx context.Context) Span {
	if ctx == nil {
		return nil
	}
	span, _ := ctx.Value(spanContextKey).(Span)
	return span
}
