// Package awsjson builds and decodes the bodies of json and rest-json
// protocol operations, using goccy/go-json as a drop-in, allocation-
// lighter replacement for encoding/json.
package awsjson

import (
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
)

// emptyBody is the literal body rest-json/json send for an operation with
// no body members but a method that requires one (PUT/POST).
var emptyBody = []byte("{}")

// EmptyBody returns the literal "{}" body for bodiless PUT/POST operations.
func EmptyBody() []byte { return emptyBody }

// Marshal renders v as a JSON request body.
func Marshal(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode json request body: %w", err)
	}
	return b, nil
}

// Unmarshal decodes a JSON response body into v. An empty body is a no-op,
// matching operations whose output has no body members.
func Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode json response body: %w", err)
	}
	return nil
}

// errorEnvelope is the shape of the two error envelopes json/rest-json
// protocols use: a smithy "__type" shape id, or an explicit "code" field.
type errorEnvelope struct {
	Type    string `json:"__type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DecodeError extracts the error code and message from a json/rest-json
// error response body. The code prefers an explicit "code" field and
// falls back to the "__type" shape id, stripped of any "namespace#"
// qualifier.
func DecodeError(r io.Reader) (code, message string, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", "", fmt.Errorf("failed to read json error response: %w", err)
	}
	if len(data) == 0 {
		return "", "", nil
	}

	var env errorEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", "", fmt.Errorf("failed to decode json error response: %w", err)
	}

	code = env.Code
	if code == "" {
		code = env.Type
	}
	if idx := strings.LastIndexByte(code, '#'); idx >= 0 {
		code = code[idx+1:]
	}
	return code, env.Message, nil
}
