package xml

import (
	"bytes"
)

// General usage: Value is responsible for writing start tag, close tag for an xml element.
// * If a certain value operation returns a close function,
//   the close function must ideally be called with defer.
//
// * This utility is written in accordance to our design to delegate to shape serializer function
// 	 in which a xml.Value will be passed around.
//
// * Resources followed: https://awslabs.github.io/smithy/1.0/spec/core/xml-traits.html#

// writer is the minimal buffer interface the encoder writes through.
type writer interface {
	Write(p []byte) (int, error)
	WriteString(s string) (int, error)
	WriteRune(r rune) (int, error)
}

// Encoder is an XML encoder that supports construction of XML values
// using methods.
type Encoder struct {
	w *bytes.Buffer
	Value
}

// NewEncoder returns an XML encoder.
func NewEncoder() *Encoder {
	w := bytes.NewBuffer(nil)
	scratch := make([]byte, 64)

	return &Encoder{w: w, Value: newValue(w, &scratch, nil, nil)}
}

// RootElementNamed opens a named root element carrying the given XML
// namespace URI (pass "" to omit the namespace attribute), and returns the
// nested Object for encoding the root shape's members plus the close
// function that writes the matching end tag.
func (e *Encoder) RootElementNamed(name, namespaceURI string) (*Object, func()) {
	v := newValue(e.w, e.Value.scratch, func() {
		writeOpenTag(e.w, name)
		if len(namespaceURI) != 0 {
			e.w.WriteString(` xmlns="` + namespaceURI + `"`)
		}
		e.w.WriteRune(rightAngleBracket)
	}, func() {
		writeCloseTag(e.w, name)
	})
	return v.NestedElement()
}

// String returns the string output of the XML encoder.
func (e *Encoder) String() string {
	return e.w.String()
}

// Bytes returns the []byte slice of the XML encoder.
func (e *Encoder) Bytes() []byte {
	return e.w.Bytes()
}
