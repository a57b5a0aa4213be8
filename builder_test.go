package core

import (
	"io"
	"net/http"
	"strings"
	"testing"
)

type buildInput struct {
	ID     string `location:"uri" locationName:"id"`
	Marker string `location:"querystring" locationName:"marker"`
	Trace  string `location:"header" locationName:"x-trace-id"`
	Name   string `json:"Name"`
}

func buildTestConfig() ServiceConfig {
	return NewServiceConfig("test", "testservice", "us-east-1", "https://example.amazonaws.com", ProtocolJSON)
}

func TestBuildDistributesMembersAndEncodesJSONBody(t *testing.T) {
	op := OperationDescriptor{Name: "Get", HTTPMethod: http.MethodPost, PathTemplate: "/widgets/{id}"}
	req, err := RequestBuilder{}.Build(op, &buildInput{ID: "42", Marker: "m1", Trace: "abc", Name: "widget"}, buildTestConfig())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if req.URL.Path != "/widgets/42" {
		t.Fatalf("Path = %q, want /widgets/42", req.URL.Path)
	}
	if req.URL.Query().Get("marker") != "m1" {
		t.Fatalf("query marker = %q, want m1", req.URL.Query().Get("marker"))
	}
	if req.Header.Get("x-trace-id") != "abc" {
		t.Fatalf("header x-trace-id = %q, want abc (a location:\"header\" member must survive onto the built request)", req.Header.Get("x-trace-id"))
	}
	if req.Header.Get("user-agent") == "" {
		t.Fatalf("expected a user-agent header to be set")
	}

	stream := req.GetStream()
	if stream == nil {
		t.Fatalf("expected a request body stream")
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !strings.Contains(string(data), `"widget"`) {
		t.Fatalf("body = %q, want it to contain the Name field", data)
	}
}

func TestBuildFailsValidation(t *testing.T) {
	op := OperationDescriptor{Name: "Get", HTTPMethod: http.MethodPost, PathTemplate: "/"}

	_, err := RequestBuilder{}.Build(op, &validatingErrorInput{}, buildTestConfig())
	if err == nil {
		t.Fatalf("expected a validation error")
	}
}

type validatingErrorInput struct{}

func (validatingErrorInput) Validate() error { return &staticErr{"invalid input"} }

type staticErr struct{ msg string }

func (e *staticErr) Error() string { return e.msg }

func TestBuildAmzTargetHeader(t *testing.T) {
	op := OperationDescriptor{Name: "DoThing", HTTPMethod: http.MethodPost, PathTemplate: "/"}
	cfg := NewServiceConfig("test", "testservice", "us-east-1", "https://example.amazonaws.com", ProtocolJSON, WithAmzTarget("TestService_20200101"))

	req, err := RequestBuilder{}.Build(op, &buildInput{}, cfg)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	want := "TestService_20200101.DoThing"
	if got := req.Header.Get("x-amz-target"); got != want {
		t.Fatalf("x-amz-target = %q, want %q", got, want)
	}
}

func TestBuildRejectsMissingHost(t *testing.T) {
	op := OperationDescriptor{Name: "Get", HTTPMethod: http.MethodPost, PathTemplate: "/"}
	cfg := NewServiceConfig("test", "testservice", "us-east-1", "not-a-url", ProtocolJSON)

	_, err := RequestBuilder{}.Build(op, &buildInput{}, cfg)
	if err == nil {
		t.Fatalf("expected an error for a host-less endpoint")
	}
}

type payloadInput struct {
	Body *payloadMember `location:"body" locationName:"body"`
}

type payloadMember struct{ Data []byte }

func (m *payloadMember) AWSPayload() Payload { return Payload{Bytes: m.Data} }

func TestBuildPayloadMemberBypassesWholeBodyEncoding(t *testing.T) {
	op := OperationDescriptor{Name: "PutRaw", HTTPMethod: http.MethodPut, PathTemplate: "/", PayloadMember: "Body"}
	req, err := RequestBuilder{}.Build(op, &payloadInput{Body: &payloadMember{Data: []byte("raw bytes")}}, buildTestConfig())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	data, err := io.ReadAll(req.GetStream())
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(data) != "raw bytes" {
		t.Fatalf("body = %q, want %q", data, "raw bytes")
	}
	if req.Header.Get("content-type") != "binary/octet-stream" {
		t.Fatalf("content-type = %q, want binary/octet-stream", req.Header.Get("content-type"))
	}
}
