package restxml

import (
	"encoding/xml"
	"strings"
	"testing"

	smithyxml "github.com/aws/aws-request-core/xml"
)

type createBucketConfiguration struct {
	LocationConstraint string
}

func (c *createBucketConfiguration) MarshalAWSXML(root *smithyxml.Object) error {
	root.Key("LocationConstraint").String(c.LocationConstraint)
	return nil
}

func (c *createBucketConfiguration) UnmarshalAWSXML(decoder *xml.Decoder, start xml.StartElement) error {
	type wire struct {
		LocationConstraint string `xml:"LocationConstraint"`
	}
	var w wire
	if err := decoder.DecodeElement(&w, &start); err != nil {
		return err
	}
	c.LocationConstraint = w.LocationConstraint
	return nil
}

func TestBuildBodyWithNamespace(t *testing.T) {
	in := &createBucketConfiguration{LocationConstraint: "us-west-2"}

	body, err := BuildBody(in, "CreateBucketConfiguration", "http://s3.amazonaws.com/doc/2006-03-01/")
	if err != nil {
		t.Fatalf("BuildBody: %v", err)
	}

	want := `<CreateBucketConfiguration xmlns="http://s3.amazonaws.com/doc/2006-03-01/"><LocationConstraint>us-west-2</LocationConstraint></CreateBucketConfiguration>`
	if got := string(body); got != want {
		t.Fatalf("body = %q, want %q", got, want)
	}
}

func TestBuildBodyNilMarshaler(t *testing.T) {
	body, err := BuildBody(nil, "Unused", "")
	if err != nil {
		t.Fatalf("BuildBody: %v", err)
	}
	if body != nil {
		t.Fatalf("expected nil body, got %q", body)
	}
}

func TestDecodeBodyRoundTrip(t *testing.T) {
	var out createBucketConfiguration
	r := strings.NewReader(`<CreateBucketConfiguration><LocationConstraint>eu-west-1</LocationConstraint></CreateBucketConfiguration>`)

	if err := DecodeBody(r, &out); err != nil {
		t.Fatalf("DecodeBody: %v", err)
	}
	if out.LocationConstraint != "eu-west-1" {
		t.Fatalf("LocationConstraint = %q, want eu-west-1", out.LocationConstraint)
	}
}

func TestDecodeErrorCode(t *testing.T) {
	r := strings.NewReader(`<Error><Code>NoSuchBucket</Code><Message>missing</Message></Error>`)
	code, err := DecodeErrorCode(r, true)
	if err != nil {
		t.Fatalf("DecodeErrorCode: %v", err)
	}
	if code != "NoSuchBucket" {
		t.Fatalf("code = %q, want NoSuchBucket", code)
	}
}
