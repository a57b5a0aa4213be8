package core

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-request-core/awserr"
	"github.com/aws/aws-request-core/protocol/awsjson"
	"github.com/aws/aws-request-core/protocol/query"
	"github.com/aws/aws-request-core/protocol/restxml"
	smithyhttp "github.com/aws/aws-request-core/transport/http"
)

// JSONBodyUnmarshaler is implemented by an output shape that decodes its
// own json/rest-json response body, overriding the response decoder's
// default of decoding the body straight into the shape with
// github.com/goccy/go-json.
type JSONBodyUnmarshaler interface {
	UnmarshalAWSJSONBody(data []byte) error
}

// XMLBodyUnmarshaler re-states restxml.BodyUnmarshaler under this package
// so an output shape's author need only look here. Rest-xml and the query
// family both decode their response bodies through it, since AWS's query
// and ec2-query protocols wrap their results in an XML document just as
// rest-xml does.
type XMLBodyUnmarshaler = restxml.BodyUnmarshaler

// RequestIDSetter is implemented by an output shape that records the
// service's request id alongside its typed fields.
type RequestIDSetter interface {
	SetRequestID(id string)
}

// ResponseDecoder implements component C5: mapping an HTTP response to
// either a typed output value or a typed error, per the operation's
// protocol.
type ResponseDecoder struct{}

// Decode reads resp and populates output, or returns a typed error drawn
// from the awserr hierarchy. Decode never closes resp.Body itself: a
// caller driving this through the executor's middleware stack gets body
// closing for free from transport/http's close-response-body middlewares,
// keyed off whether this call errored; a caller invoking Decode directly
// owns resp.Body unless output implements RawPayloadSetter, in which case
// the returned Payload.Stream (a bodyChunkReader) owns it instead.
func (ResponseDecoder) Decode(resp *smithyhttp.Response, op OperationDescriptor, cfg ServiceConfig, output interface{}) error {
	requestID := requestIDFromHeaders(resp.Header)

	if resp.StatusCode >= 300 {
		return decodeErrorResponse(resp, op, cfg, requestID)
	}

	if err := bindResponseHeaders(output, resp.Header); err != nil {
		return err
	}

	if rp, ok := output.(RawPayloadSetter); ok {
		rp.SetAWSPayload(Payload{Stream: &bodyChunkReader{body: resp.Body}})
	} else {
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return &awserr.DecodeError{Err: err}
		}
		if err := decodeBody(data, cfg, output); err != nil {
			return &awserr.DecodeError{Err: err}
		}
	}

	if setter, ok := output.(RequestIDSetter); ok {
		setter.SetRequestID(requestID)
	}
	return nil
}

func decodeBody(data []byte, cfg ServiceConfig, output interface{}) error {
	switch cfg.Protocol {
	case ProtocolJSON, ProtocolRESTJSON:
		if m, ok := output.(JSONBodyUnmarshaler); ok {
			return m.UnmarshalAWSJSONBody(data)
		}
		return awsjson.Unmarshal(data, output)
	case ProtocolRESTXML, ProtocolQuery, ProtocolEC2Query:
		if m, ok := output.(XMLBodyUnmarshaler); ok {
			if len(data) == 0 {
				return nil
			}
			return restxml.DecodeBody(bytes.NewReader(data), m)
		}
		return nil
	default:
		return fmt.Errorf("unsupported protocol %q", cfg.Protocol)
	}
}

// decodeErrorResponse parses the protocol's error envelope, classifies
// throttling, and gives the operation's ErrorMapper (if any) first refusal
// at producing a service-specific typed error before falling back to the
// generic awserr.HTTPError.
func decodeErrorResponse(resp *smithyhttp.Response, op OperationDescriptor, cfg ServiceConfig, requestID string) error {
	data, _ := io.ReadAll(resp.Body)

	var code, message string
	switch cfg.Protocol {
	case ProtocolJSON, ProtocolRESTJSON:
		code, message, _ = awsjson.DecodeError(bytes.NewReader(data))
		if code == "" {
			code = stripErrorTypeNamespace(resp.Header.Get("x-amzn-errortype"))
		}
	case ProtocolRESTXML:
		code, message, _ = restxml.DecodeError(bytes.NewReader(data), true)
	case ProtocolQuery, ProtocolEC2Query:
		var rid string
		code, message, rid, _ = query.DecodeError(bytes.NewReader(data))
		if requestID == "" {
			requestID = rid
		}
	}

	httpErr := &awserr.HTTPError{
		Status:    resp.StatusCode,
		Code:      code,
		Message:   message,
		RequestID: requestID,
	}

	if isThrottlingResponse(resp.StatusCode, code) {
		return &awserr.Throttle{RetryAfterSeconds: retryAfterSeconds(resp.Header), Cause: httpErr}
	}

	if op.ErrorMapper != nil {
		if mapped := op.ErrorMapper(httpErr); mapped != nil {
			return mapped
		}
	}
	return httpErr
}

// throttlingCodes are the error codes AWS services are known to return for
// request throttling, independent of status code.
var throttlingCodes = map[string]bool{
	"Throttling":                             true,
	"ThrottlingException":                    true,
	"ThrottledException":                     true,
	"RequestThrottled":                       true,
	"RequestThrottledException":              true,
	"TooManyRequestsException":               true,
	"ProvisionedThroughputExceededException": true,
	"RequestLimitExceeded":                   true,
	"BandwidthLimitExceeded":                 true,
	"SlowDown":                               true,
}

func isThrottlingResponse(status int, code string) bool {
	if status == 429 {
		return true
	}
	if status == 503 && throttlingCodes[code] {
		return true
	}
	return throttlingCodes[code]
}

func retryAfterSeconds(h http.Header) int {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

// stripErrorTypeNamespace drops a "namespace#" qualifier from the
// x-amzn-errortype header, matching awsjson.DecodeError's handling of the
// same qualifier when it appears in the body's "__type" field instead.
func stripErrorTypeNamespace(code string) string {
	if idx := strings.LastIndexByte(code, '#'); idx >= 0 {
		return code[idx+1:]
	}
	return code
}

// requestIDFromHeaders extracts the service's request id, preferring the
// EC2/Query family's x-amzn-RequestId over the REST family's
// x-amz-request-id.
func requestIDFromHeaders(h http.Header) string {
	if v := h.Get("x-amzn-requestid"); v != "" {
		return v
	}
	return h.Get("x-amz-request-id")
}

// bindResponseHeaders reflects over output's fields tagged
// location:"header"/"headers", parsing the named response header into
// each, mirroring distributeMembers' request-side handling in reverse.
func bindResponseHeaders(output interface{}, header http.Header) error {
	v := reflect.ValueOf(output)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue
		}
		loc := field.Tag.Get("location")
		name := field.Tag.Get("locationName")
		if name == "" {
			name = field.Name
		}

		switch loc {
		case locationHeader:
			raw := header.Get(name)
			if raw == "" {
				continue
			}
			if err := parseHeaderValue(v.Field(i), raw); err != nil {
				return &awserr.DecodeError{Err: fmt.Errorf("header %s: %w", name, err)}
			}
		case locationHeaders:
			if err := parseHeaderPrefix(v.Field(i), header, name); err != nil {
				return &awserr.DecodeError{Err: fmt.Errorf("header prefix %s: %w", name, err)}
			}
		}
	}
	return nil
}

func parseHeaderValue(fv reflect.Value, raw string) error {
	switch fv.Kind() {
	case reflect.String:
		fv.SetString(raw)
		return nil
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		fv.SetBool(b)
		return nil
	case reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return err
		}
		fv.SetInt(n)
		return nil
	case reflect.Float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return err
		}
		fv.SetFloat(f)
		return nil
	}
	if fv.Type() == reflect.TypeOf(time.Time{}) {
		t, err := http.ParseTime(raw)
		if err != nil {
			return err
		}
		fv.Set(reflect.ValueOf(t))
		return nil
	}
	return fmt.Errorf("unsupported header value type %s", fv.Type())
}

func parseHeaderPrefix(fv reflect.Value, header http.Header, prefix string) error {
	if fv.Kind() != reflect.Map {
		return fmt.Errorf("headerPrefix member must be a map, got %s", fv.Type())
	}
	if fv.IsNil() {
		fv.Set(reflect.MakeMap(fv.Type()))
	}
	for k, vs := range header {
		if len(vs) == 0 {
			continue
		}
		lk := http.CanonicalHeaderKey(k)
		lp := http.CanonicalHeaderKey(prefix)
		if len(lk) <= len(lp) || !hasPrefixFold(lk, lp) {
			continue
		}
		key := k[len(prefix):]
		fv.SetMapIndex(reflect.ValueOf(key), reflect.ValueOf(vs[0]))
	}
	return nil
}

func hasPrefixFold(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		a, b := s[i], prefix[i]
		if 'A' <= a && a <= 'Z' {
			a += 'a' - 'A'
		}
		if 'A' <= b && b <= 'Z' {
			b += 'a' - 'A'
		}
		if a != b {
			return false
		}
	}
	return true
}
