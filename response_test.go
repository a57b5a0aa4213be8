package core

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/aws/aws-request-core/awserr"
	smithyhttp "github.com/aws/aws-request-core/transport/http"
)

type decodeOutput struct {
	Message   string `json:"Message"`
	Trace     string `location:"header" locationName:"x-trace-id"`
	requestID string
}

func (o *decodeOutput) SetRequestID(id string) { o.requestID = id }

func newTestResponse(status int, header http.Header, body string) *smithyhttp.Response {
	if header == nil {
		header = http.Header{}
	}
	return &smithyhttp.Response{Response: &http.Response{
		StatusCode: status,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(body)),
	}}
}

func TestDecodeSuccessBindsBodyHeaderAndRequestID(t *testing.T) {
	resp := newTestResponse(200, http.Header{
		"X-Amzn-Requestid": {"req-123"},
		"X-Trace-Id":       {"trace-1"},
	}, `{"Message":"ok"}`)

	out := &decodeOutput{}
	if err := (ResponseDecoder{}).Decode(resp, OperationDescriptor{Name: "Get"}, buildTestConfig(), out); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if out.Message != "ok" {
		t.Fatalf("Message = %q, want ok", out.Message)
	}
	if out.Trace != "trace-1" {
		t.Fatalf("Trace = %q, want trace-1", out.Trace)
	}
	if out.requestID != "req-123" {
		t.Fatalf("requestID = %q, want req-123", out.requestID)
	}
}

func TestDecodeThrottleStatusIsClassifiedAsThrottle(t *testing.T) {
	resp := newTestResponse(429, nil, `{"message":"slow down"}`)

	err := ResponseDecoder{}.Decode(resp, OperationDescriptor{Name: "Get"}, buildTestConfig(), &decodeOutput{})
	var throttle *awserr.Throttle
	if !asThrottle(err, &throttle) {
		t.Fatalf("err = %v, want *awserr.Throttle", err)
	}
}

func asThrottle(err error, target **awserr.Throttle) bool {
	t, ok := err.(*awserr.Throttle)
	if !ok {
		return false
	}
	*target = t
	return true
}

func TestDecodeThrottleHonorsRetryAfter(t *testing.T) {
	resp := newTestResponse(429, http.Header{"Retry-After": {"7"}}, `{"message":"slow down"}`)

	err := ResponseDecoder{}.Decode(resp, OperationDescriptor{Name: "Get"}, buildTestConfig(), &decodeOutput{})
	throttle, ok := err.(*awserr.Throttle)
	if !ok {
		t.Fatalf("err = %v, want *awserr.Throttle", err)
	}
	if throttle.RetryAfterSeconds != 7 {
		t.Fatalf("RetryAfterSeconds = %d, want 7", throttle.RetryAfterSeconds)
	}
}

func TestDecodeFatalStatusReturnsHTTPError(t *testing.T) {
	resp := newTestResponse(400, nil, `{"message":"bad request","code":"ValidationException"}`)

	err := ResponseDecoder{}.Decode(resp, OperationDescriptor{Name: "Get"}, buildTestConfig(), &decodeOutput{})
	httpErr, ok := err.(*awserr.HTTPError)
	if !ok {
		t.Fatalf("err = %v, want *awserr.HTTPError", err)
	}
	if httpErr.Code != "ValidationException" {
		t.Fatalf("Code = %q, want ValidationException", httpErr.Code)
	}
	if httpErr.Status != 400 {
		t.Fatalf("Status = %d, want 400", httpErr.Status)
	}
}

func TestDecodeErrorTypeHeaderStripsNamespace(t *testing.T) {
	resp := newTestResponse(400, http.Header{"X-Amzn-Errortype": {"com.example#ValidationException"}}, `{}`)

	err := ResponseDecoder{}.Decode(resp, OperationDescriptor{Name: "Get"}, buildTestConfig(), &decodeOutput{})
	httpErr, ok := err.(*awserr.HTTPError)
	if !ok {
		t.Fatalf("err = %v, want *awserr.HTTPError", err)
	}
	if httpErr.Code != "ValidationException" {
		t.Fatalf("Code = %q, want ValidationException (namespace qualifier must be stripped)", httpErr.Code)
	}
}

func TestDecodeErrorMapperTakesFirstRefusal(t *testing.T) {
	sentinel := &staticErr{"mapped"}
	op := OperationDescriptor{Name: "Get", ErrorMapper: func(*awserr.HTTPError) error {
		return sentinel
	}}
	resp := newTestResponse(404, nil, `{"message":"missing","code":"NotFoundException"}`)

	err := ResponseDecoder{}.Decode(resp, op, buildTestConfig(), &decodeOutput{})
	if err != sentinel {
		t.Fatalf("err = %v, want the ErrorMapper's sentinel", err)
	}
}

func TestDecodeStreamingOutputHandsBodyThrough(t *testing.T) {
	out := &streamingOutputHolder{}
	resp := newTestResponse(200, nil, "raw bytes")

	if err := (ResponseDecoder{}).Decode(resp, OperationDescriptor{Name: "Get"}, buildTestConfig(), out); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if out.payload.Stream == nil {
		t.Fatalf("expected a stream payload")
	}
	data, _, err := out.payload.Stream.Read(nil, 1024)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(data) != "raw bytes" {
		t.Fatalf("data = %q, want %q", data, "raw bytes")
	}
}

type streamingOutputHolder struct {
	payload Payload
}

func (o *streamingOutputHolder) SetAWSPayload(p Payload) { o.payload = p }
