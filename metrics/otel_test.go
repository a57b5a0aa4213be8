package metrics

import (
	"context"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestOTELRecorderRecordsCounterAndHistogram(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	meter := provider.Meter("aws-request-core-test")

	r, err := NewOTELRecorder(meter)
	if err != nil {
		t.Fatalf("NewOTELRecorder: %v", err)
	}

	ctx := context.Background()
	r.AddRequest(ctx, Attribute{Key: "operation", Value: "GetObject"})
	r.RecordDuration(ctx, 0.125, Attribute{Key: "operation", Value: "GetObject"})

	var data metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &data); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	names := map[string]bool{}
	for _, sm := range data.ScopeMetrics {
		for _, m := range sm.Metrics {
			names[m.Name] = true
		}
	}

	if !names["aws_requests_total"] {
		t.Errorf("expected aws_requests_total to be recorded, got %v", names)
	}
	if !names["aws_request_duration"] {
		t.Errorf("expected aws_request_duration to be recorded, got %v", names)
	}
}
