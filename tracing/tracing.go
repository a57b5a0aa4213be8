// Package tracing defines the narrow span/tracer contract the executor
// uses to instrument one call attempt, independent of any particular
// tracing backend. Grounded on aws-smithy-go's own tracing/tracing
// package split (interfaces here, an OpenTelemetry-backed implementation
// in the sibling otel.go).
package tracing

import "context"

// SpanKind classifies the role a span plays in a trace.
type SpanKind int

const (
	SpanKindInternal SpanKind = iota
	SpanKindClient
	SpanKindServer
	SpanKindProducer
	SpanKindConsumer
)

// SpanStatus reports the outcome recorded on a span when it ends.
type SpanStatus int

const (
	SpanStatusUnset SpanStatus = iota
	SpanStatusOK
	SpanStatusError
)

// Span represents one traced unit of work: a single call attempt, a
// credential retrieval, a signing step.
type Span interface {
	// SetAttribute attaches a key/value pair describing the span.
	SetAttribute(key string, value any)
	// SetStatus records the span's outcome.
	SetStatus(status SpanStatus)
	// End completes the span.
	End()
}

// Tracer starts spans, propagating the active span through ctx.
type Tracer interface {
	StartSpan(ctx context.Context, name string, kind SpanKind) (context.Context, Span)
}

// NoopSpan is a Span that discards everything written to it.
type NoopSpan struct{}

func (NoopSpan) SetAttribute(string, any) {}
func (NoopSpan) SetStatus(SpanStatus)     {}
func (NoopSpan) End()                     {}

// NoopTracer is a Tracer that produces only NoopSpans.
type NoopTracer struct{}

// StartSpan implements Tracer.
func (NoopTracer) StartSpan(ctx context.Context, _ string, _ SpanKind) (context.Context, Span) {
	return ctx, NoopSpan{}
}
