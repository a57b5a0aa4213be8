package query

import (
	"net/url"
	"strings"
	"testing"
)

func TestEncoderFlattensListWithMemberInfix(t *testing.T) {
	e := NewEncoder("CreateQueue", "2012-11-05", false)
	e.Set("QueueName", "widgets")
	e.SetList("Attribute.AttributeName", []string{"VisibilityTimeout", "DelaySeconds"})

	got, err := url.ParseQuery(string(e.Encode()))
	if err != nil {
		t.Fatalf("ParseQuery: %v", err)
	}

	want := map[string]string{
		"Action":                         "CreateQueue",
		"Version":                        "2012-11-05",
		"QueueName":                      "widgets",
		"Attribute.AttributeName.member.1": "VisibilityTimeout",
		"Attribute.AttributeName.member.2": "DelaySeconds",
	}
	for k, v := range want {
		if got.Get(k) != v {
			t.Fatalf("field %s = %q, want %q", k, got.Get(k), v)
		}
	}
}

func TestEncoderEC2ListOmitsMemberInfix(t *testing.T) {
	e := NewEncoder("DescribeInstances", "2016-11-15", true)
	e.SetList("InstanceId", []string{"i-1", "i-2"})

	got, err := url.ParseQuery(string(e.Encode()))
	if err != nil {
		t.Fatalf("ParseQuery: %v", err)
	}

	if got.Get("InstanceId.1") != "i-1" || got.Get("InstanceId.2") != "i-2" {
		t.Fatalf("unexpected ec2 list encoding: %v", got)
	}
	if got.Get("InstanceId.member.1") != "" {
		t.Fatalf("ec2-query must not emit a .member infix")
	}
}

func TestEncoderMapEntry(t *testing.T) {
	e := NewEncoder("TagResource", "2012-11-05", false)
	e.SetMapEntry("Tags", 1, "env", "prod")

	got, err := url.ParseQuery(string(e.Encode()))
	if err != nil {
		t.Fatalf("ParseQuery: %v", err)
	}
	if got.Get("Tags.entry.1.key") != "env" || got.Get("Tags.entry.1.value") != "prod" {
		t.Fatalf("unexpected map entry encoding: %v", got)
	}
}

func TestEncoderSQSCreateQueueKnownAnswer(t *testing.T) {
	e := NewEncoder("CreateQueue", "2012-11-05", false)
	e.Set("QueueName", "q")
	e.SetMapEntryNamed("Attribute", 1, "Name", "Value", "DelaySeconds", "5")

	want := "Action=CreateQueue&Attribute.1.Name=DelaySeconds&Attribute.1.Value=5&QueueName=q&Version=2012-11-05"
	if got := string(e.Encode()); got != want {
		t.Fatalf("body = %q, want %q", got, want)
	}
}

func TestDecodeErrorCode(t *testing.T) {
	r := strings.NewReader(`<ErrorResponse><Error><Code>QueueDoesNotExist</Code><Message>missing</Message></Error></ErrorResponse>`)
	code, err := DecodeErrorCode(r)
	if err != nil {
		t.Fatalf("DecodeErrorCode: %v", err)
	}
	if code != "QueueDoesNotExist" {
		t.Fatalf("code = %q, want QueueDoesNotExist", code)
	}
}
