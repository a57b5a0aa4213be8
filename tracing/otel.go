package tracing

import (
	"context"

	otelcodes "go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// OTELTracer adapts an OpenTelemetry TracerProvider to the Tracer
// interface, so the executor can emit spans without depending on the
// OpenTelemetry API directly.
type OTELTracer struct {
	tracer oteltrace.Tracer
}

var _ Tracer = (*OTELTracer)(nil)

// NewOTELTracer wraps an OpenTelemetry tracer obtained from a
// TracerProvider, e.g. provider.Tracer("aws-request-core").
func NewOTELTracer(t oteltrace.Tracer) *OTELTracer {
	return &OTELTracer{tracer: t}
}

// StartSpan implements Tracer.
func (t *OTELTracer) StartSpan(ctx context.Context, name string, kind SpanKind) (context.Context, Span) {
	ctx, span := t.tracer.Start(ctx, name, oteltrace.WithSpanKind(toOTELSpanKind(kind)))
	return ctx, &otelSpan{span: span}
}

type otelSpan struct {
	span oteltrace.Span
}

var _ Span = (*otelSpan)(nil)

// SetAttribute implements Span.
func (s *otelSpan) SetAttribute(key string, value any) {
	s.span.SetAttributes(toOTELKeyValue(key, value))
}

// SetStatus implements Span.
func (s *otelSpan) SetStatus(status SpanStatus) {
	s.span.SetStatus(toOTELSpanStatus(status), "")
}

// End implements Span.
func (s *otelSpan) End() {
	s.span.End()
}

func toOTELSpanKind(kind SpanKind) oteltrace.SpanKind {
	switch kind {
	case SpanKindClient:
		return oteltrace.SpanKindClient
	case SpanKindServer:
		return oteltrace.SpanKindServer
	case SpanKindProducer:
		return oteltrace.SpanKindProducer
	case SpanKindConsumer:
		return oteltrace.SpanKindConsumer
	case SpanKindInternal:
		return oteltrace.SpanKindInternal
	default:
		return oteltrace.SpanKindInternal
	}
}

func toOTELSpanStatus(status SpanStatus) otelcodes.Code {
	switch status {
	case SpanStatusOK:
		return otelcodes.Ok
	case SpanStatusError:
		return otelcodes.Error
	case SpanStatusUnset:
		return otelcodes.Unset
	default:
		return otelcodes.Unset
	}
}
