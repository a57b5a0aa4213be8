// Package query builds the form-urlencoded bodies of the query and
// ec2-query protocols, and decodes their XML error envelopes.
package query

import (
	"io"
	"net/url"
	"strconv"

	smithyxml "github.com/aws/aws-request-core/xml"
)

// Encoder accumulates the flattened Action/Version/member form fields of
// a query or ec2-query request body.
type Encoder struct {
	values url.Values
	ec2    bool
}

// NewEncoder returns an Encoder seeded with the operation's Action and the
// service's API Version. ec2 selects ec2-query's list/map flattening,
// which omits the ".member"/".entry" infix the query protocol uses.
func NewEncoder(action, version string, ec2 bool) *Encoder {
	v := url.Values{}
	v.Set("Action", action)
	v.Set("Version", version)
	return &Encoder{values: v, ec2: ec2}
}

// Set assigns a scalar member.
func (e *Encoder) Set(name, value string) {
	e.values.Set(name, value)
}

// SetList assigns an ordered list member, flattened as
// "name.member.1", "name.member.2", ... for the query protocol, or
// "name.1", "name.2", ... for ec2-query.
func (e *Encoder) SetList(name string, values []string) {
	prefix := name + "."
	if !e.ec2 {
		prefix = name + ".member."
	}
	for i, v := range values {
		e.values.Set(prefix+strconv.Itoa(i+1), v)
	}
}

// SetMapEntry assigns the key and value of one entry (1-indexed) of a map
// member, flattened as "name.entry.N.key"/"name.entry.N.value" for the
// query protocol, or "name.N.key"/"name.N.value" for ec2-query.
func (e *Encoder) SetMapEntry(name string, index int, key, value string) {
	prefix := name + "." + strconv.Itoa(index) + "."
	if !e.ec2 {
		prefix = name + ".entry." + strconv.Itoa(index) + "."
	}
	e.values.Set(prefix+"key", key)
	e.values.Set(prefix+"value", value)
}

// SetMapEntryNamed assigns one entry (1-indexed) of a flattened member whose
// key/value fields carry non-default names, e.g. SQS's Attribute list,
// whose entries serialize as "Attribute.N.Name"/"Attribute.N.Value" with no
// "entry" infix in either protocol, unlike the default-named SetMapEntry.
func (e *Encoder) SetMapEntryNamed(name string, index int, keyName, valueName, key, value string) {
	prefix := name + "." + strconv.Itoa(index) + "."
	e.values.Set(prefix+keyName, key)
	e.values.Set(prefix+valueName, value)
}

// Encode renders the accumulated fields as a form-urlencoded body.
func (e *Encoder) Encode() []byte {
	return []byte(e.values.Encode())
}

// DecodeErrorCode extracts the error code from a query protocol's
// <ErrorResponse><Error><Code>...</Code></Error></ErrorResponse> envelope.
func DecodeErrorCode(r io.Reader) (string, error) {
	return smithyxml.GetResponseErrorCode(r, false)
}

// DecodeError extracts the error code, message, and request id from a
// query protocol's ErrorResponse envelope.
func DecodeError(r io.Reader) (code, message, requestID string, err error) {
	return smithyxml.GetResponseError(r, false)
}
