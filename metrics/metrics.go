// Package metrics defines the narrow instrument contract the executor
// uses to record call counts and durations, independent of any
// particular metrics backend. Mirrors the split used by the tracing
// package: interfaces here, an OpenTelemetry-backed implementation in
// the sibling otel.go.
package metrics

import "context"

// Recorder records the instruments the executor emits around one
// execute call: a monotonic count of requests attempted, and the
// wall-clock duration of each attempt.
type Recorder interface {
	// AddRequest increments the request counter by one, labeled with
	// the given attributes (service, operation, outcome, and similar
	// low-cardinality dimensions).
	AddRequest(ctx context.Context, attrs ...Attribute)
	// RecordDuration records one attempt's duration in seconds.
	RecordDuration(ctx context.Context, seconds float64, attrs ...Attribute)
}

// Attribute is a single metric label.
type Attribute struct {
	Key   string
	Value string
}

// NoopRecorder is a Recorder that discards everything recorded to it.
type NoopRecorder struct{}

var _ Recorder = NoopRecorder{}

// AddRequest implements Recorder.
func (NoopRecorder) AddRequest(context.Context, ...Attribute) {}

// RecordDuration implements Recorder.
func (NoopRecorder) RecordDuration(context.Context, float64, ...Attribute) {}
