// Package restxml builds and decodes the bodies of rest-xml protocol
// operations: Amazon S3 and a handful of other services that bind
// un-annotated shape members to an XML document body alongside header,
// query, and URI bindings handled by httpbinding.
package restxml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	smithyxml "github.com/aws/aws-request-core/xml"
)

// BodyMarshaler is implemented by rest-xml input shapes that carry body
// members. The request builder calls MarshalAWSXML after opening the
// operation's root element, so the shape only has to stream its own
// members into root.
type BodyMarshaler interface {
	MarshalAWSXML(root *smithyxml.Object) error
}

// BodyUnmarshaler is implemented by rest-xml output shapes that carry
// body members, decoded with the standard library's reflective decoder
// against the shape's `xml:"..."` struct tags — the hand-rolled encoder
// in the xml package has no decoding counterpart, so response bodies are
// decoded the way the teacher decodes them, through encoding/xml.
type BodyUnmarshaler interface {
	UnmarshalAWSXML(decoder *xml.Decoder, start xml.StartElement) error
}

// BuildBody renders m's body members into a rest-xml document wrapped in
// a root element named rootName, carrying namespaceURI as its xmlns
// attribute when non-empty. A nil m produces a nil body.
func BuildBody(m BodyMarshaler, rootName, namespaceURI string) ([]byte, error) {
	if m == nil {
		return nil, nil
	}

	enc := smithyxml.NewEncoder()
	root, closeFn := enc.RootElementNamed(rootName, namespaceURI)
	if err := m.MarshalAWSXML(root); err != nil {
		return nil, fmt.Errorf("failed to encode rest-xml request body: %w", err)
	}
	if closeFn != nil {
		closeFn()
	}
	return enc.Bytes(), nil
}

// DecodeBody decodes a rest-xml response body into m.
func DecodeBody(r io.Reader, m BodyUnmarshaler) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read rest-xml response body: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	start, err := nextStartElement(decoder)
	if err != nil {
		return fmt.Errorf("failed to find rest-xml root element: %w", err)
	}
	return m.UnmarshalAWSXML(decoder, start)
}

func nextStartElement(decoder *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := decoder.Token()
		if err != nil {
			return xml.StartElement{}, err
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se, nil
		}
	}
}

// DecodeErrorCode extracts the error code from a rest-xml error response
// envelope (`<Error><Code>...</Code></Error>`, optionally wrapped in
// `<ErrorResponse>`).
func DecodeErrorCode(r io.Reader, noErrorWrapping bool) (string, error) {
	return smithyxml.GetResponseErrorCode(r, noErrorWrapping)
}

// DecodeError extracts the error code and message from a rest-xml error
// response envelope. Rest-xml services (S3 foremost among them) carry no
// request id in the envelope itself; callers read x-amz-request-id off
// the response headers instead.
func DecodeError(r io.Reader, noErrorWrapping bool) (code, message string, err error) {
	code, message, _, err = smithyxml.GetResponseError(r, noErrorWrapping)
	return code, message, err
}
