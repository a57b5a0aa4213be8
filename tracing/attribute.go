package tracing

import (
	"fmt"

	otelattribute "go.opentelemetry.io/otel/attribute"
)

// toOTELKeyValue converts an arbitrary span attribute key/value pair into
// an OpenTelemetry attribute.KeyValue. Keys that are not already strings
// are stringified with fmt.Sprintf. Values are mapped onto the matching
// typed OpenTelemetry constructor; a fmt.Stringer falls back to its
// String() text, and anything else falls back to a Go-syntax
// representation via %#v so no attribute is ever silently dropped.
func toOTELKeyValue(key, value any) otelattribute.KeyValue {
	k, ok := key.(string)
	if !ok {
		k = fmt.Sprintf("%v", key)
	}

	switch v := value.(type) {
	case bool:
		return otelattribute.Bool(k, v)
	case []bool:
		return otelattribute.BoolSlice(k, v)
	case int:
		return otelattribute.Int(k, v)
	case []int:
		return otelattribute.IntSlice(k, v)
	case int64:
		return otelattribute.Int64(k, v)
	case []int64:
		return otelattribute.Int64Slice(k, v)
	case float64:
		return otelattribute.Float64(k, v)
	case []float64:
		return otelattribute.Float64Slice(k, v)
	case string:
		return otelattribute.String(k, v)
	case []string:
		return otelattribute.StringSlice(k, v)
	case fmt.Stringer:
		return otelattribute.String(k, v.String())
	default:
		return otelattribute.String(k, fmt.Sprintf("%#v", v))
	}
}
