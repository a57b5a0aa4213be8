package tracing

import (
	"testing"

	otelattribute "go.opentelemetry.io/otel/attribute"
)

type notstringer struct{}

type stringer struct{}

func (stringer) String() string { return "asdf" }

func TestToOTELKeyValue(t *testing.T) {
	cases := []struct {
		name string
		key  any
		val  any
		want otelattribute.KeyValue
	}{
		{"non-string key", 1, "asdf", otelattribute.String("1", "asdf")},
		{"bool", "k", true, otelattribute.Bool("k", true)},
		{"bool slice", "k", []bool{true, false}, otelattribute.BoolSlice("k", []bool{true, false})},
		{"int", "k", 1, otelattribute.Int("k", 1)},
		{"int slice", "k", []int{1, 2}, otelattribute.IntSlice("k", []int{1, 2})},
		{"int64", "k", int64(1), otelattribute.Int64("k", 1)},
		{"int64 slice", "k", []int64{1, 2}, otelattribute.Int64Slice("k", []int64{1, 2})},
		{"float64", "k", 1.5, otelattribute.Float64("k", 1.5)},
		{"float64 slice", "k", []float64{1.5, 2.5}, otelattribute.Float64Slice("k", []float64{1.5, 2.5})},
		{"string", "k", "v", otelattribute.String("k", "v")},
		{"string slice", "k", []string{"a", "b"}, otelattribute.StringSlice("k", []string{"a", "b"})},
		{"stringer", "k", stringer{}, otelattribute.String("k", "asdf")},
		{"unsupported", "k", notstringer{}, otelattribute.String("k", "tracing.notstringer{}")},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := toOTELKeyValue(c.key, c.val)
			if got.Key != c.want.Key || got.Value.Emit() != c.want.Value.Emit() {
				t.Errorf("toOTELKeyValue(%v, %v) = %v, want %v", c.key, c.val, got, c.want)
			}
		})
	}
}
