package metrics

import (
	"context"

	otelattribute "go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
)

// OTELRecorder adapts OpenTelemetry instruments to the Recorder
// interface: a counter for aws_requests_total and a histogram for
// aws_request_duration, one pair shared across every call the executor
// makes.
type OTELRecorder struct {
	requests otelmetric.Int64Counter
	duration otelmetric.Float64Histogram
}

var _ Recorder = (*OTELRecorder)(nil)

// NewOTELRecorder builds the two instruments from the given Meter,
// e.g. provider.Meter("aws-request-core").
func NewOTELRecorder(meter otelmetric.Meter) (*OTELRecorder, error) {
	requests, err := meter.Int64Counter(
		"aws_requests_total",
		otelmetric.WithDescription("Number of requests attempted against an AWS operation."),
		otelmetric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"aws_request_duration",
		otelmetric.WithDescription("Duration of a single request attempt."),
		otelmetric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &OTELRecorder{requests: requests, duration: duration}, nil
}

// AddRequest implements Recorder.
func (r *OTELRecorder) AddRequest(ctx context.Context, attrs ...Attribute) {
	r.requests.Add(ctx, 1, otelmetric.WithAttributes(toOTELAttributes(attrs)...))
}

// RecordDuration implements Recorder.
func (r *OTELRecorder) RecordDuration(ctx context.Context, seconds float64, attrs ...Attribute) {
	r.duration.Record(ctx, seconds, otelmetric.WithAttributes(toOTELAttributes(attrs)...))
}

func toOTELAttributes(attrs []Attribute) []otelattribute.KeyValue {
	if len(attrs) == 0 {
		return nil
	}
	kvs := make([]otelattribute.KeyValue, len(attrs))
	for i, a := range attrs {
		kvs[i] = otelattribute.String(a.Key, a.Value)
	}
	return kvs
}
