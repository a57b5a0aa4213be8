package core

import "github.com/aws/aws-request-core/awserr"

// OperationOptions is a bitmask of operation-declared behaviors that
// influence request building, checksums, and streaming.
type OperationOptions uint32

const (
	// OptAllowStreaming marks an operation whose payload member may be a
	// caller-supplied stream rather than a buffered byte slice.
	OptAllowStreaming OperationOptions = 1 << iota
	// OptAllowChunkedStreaming marks an operation whose stream payload
	// is sent as a SigV4 chunked upload (unless the service config
	// disables chunked uploads); the stream must report a known size.
	OptAllowChunkedStreaming
	// OptChecksumRequired marks an operation that must always carry an
	// integrity digest.
	OptChecksumRequired
	// OptChecksumHeader marks an operation that accepts a caller-chosen
	// x-amz-sdk-checksum-algorithm header. The request builder does not
	// read this flag: checksum selection honors that header only for
	// operations that also set OptChecksumRequired or OptMD5ChecksumHeader.
	OptChecksumHeader
	// OptMD5ChecksumHeader marks an operation that supports, but does
	// not require, an MD5 digest, gated by ServiceConfig's CalculateMD5.
	OptMD5ChecksumHeader
)

// Has reports whether every bit set in want is also set in o.
func (o OperationOptions) Has(want OperationOptions) bool {
	return o&want == want
}

// OperationDescriptor describes one API call: its name, HTTP binding, and
// the option flags that influence request building.
type OperationDescriptor struct {
	Name       string
	HTTPMethod string

	// PathTemplate may contain "{name}" and "{name+}" placeholders; the
	// "+" form permits literal "/" through its escaping.
	PathTemplate string

	// HostPrefixTemplate, if non-empty, is substituted with hostname-bound
	// members and prepended to the endpoint's host.
	HostPrefixTemplate string

	// PayloadMember, if non-empty, names the single input member that is
	// the entire body (a raw Payload or a nested encodable shape),
	// instead of the default of gathering all unbound members into the
	// body.
	PayloadMember string

	// XMLRootName overrides the root element name rest-xml uses when
	// building this operation's body. Defaults to Name.
	XMLRootName string

	Options OperationOptions

	// ErrorMapper, if set, is given first refusal at turning a decoded
	// HTTPError into a service-specific typed error. Returning nil falls
	// back to the HTTPError itself. A real implementation's code
	// generator would install one of these per operation, keyed off the
	// shape's modeled error list; this module has no generator, so
	// callers that need typed errors supply the mapping themselves.
	ErrorMapper func(*awserr.HTTPError) error
}

// xmlRootName returns XMLRootName if set, else Name.
func (op OperationDescriptor) xmlRootName() string {
	if op.XMLRootName != "" {
		return op.XMLRootName
	}
	return op.Name
}
