// Package core ties together the signer, checksum engine, request builder,
// middleware chain, response decoder, executor, paginator, and streaming
// body adapters in the sibling packages of this module into the request
// construction, signing, and dispatch core of an AWS-family client.
//
// A generated (or hand-written) service package depends on this one: it
// supplies a ServiceConfig and, per call, an OperationDescriptor plus a
// typed input/output pair, and this package does the rest.
package core

import (
	"time"

	"github.com/aws/aws-request-core/logging"
	"github.com/aws/aws-request-core/middleware"
)

// Protocol identifies the wire protocol an operation's request and
// response are encoded with.
type Protocol string

const (
	ProtocolJSON      Protocol = "json"
	ProtocolRESTJSON   Protocol = "rest-json"
	ProtocolRESTXML    Protocol = "rest-xml"
	ProtocolQuery      Protocol = "query"
	ProtocolEC2Query   Protocol = "ec2-query"
)

// ConfigOptions is a bitmask of optional, service-declared behaviors.
// Mirrors the teacher's pattern of passing a closed set of boolean knobs
// as named bits rather than a sprawl of *bool fields.
type ConfigOptions uint32

const (
	// OptS3DisableChunkedUploads disables SigV4 chunked-signing streaming
	// uploads, falling back to a single buffered, fully-signed body.
	OptS3DisableChunkedUploads ConfigOptions = 1 << iota
	// OptCalculateMD5 enables MD5 checksum computation for operations
	// that declare MD5ChecksumHeader but do not require a checksum
	// outright.
	OptCalculateMD5
)

// Has reports whether every bit set in want is also set in o.
func (o ConfigOptions) Has(want ConfigOptions) bool {
	return o&want == want
}

// ServiceConfig is the process-wide, per-service descriptor every call
// against that service shares. It is immutable after construction;
// concurrent calls read it without synchronization.
type ServiceConfig struct {
	ServiceID   string
	SigningName string
	Region      string
	EndpointURL string
	APIVersion  string
	Protocol    Protocol

	// AmzTarget, if non-empty, is the prefix used to build the
	// x-amz-target header for JSON-RPC-style protocols:
	// "<AmzTarget>.<OperationName>".
	AmzTarget string

	// XMLNamespace, if non-empty, is written as the root element's
	// namespace for rest-xml bodies.
	XMLNamespace string

	Timeout time.Duration
	Options ConfigOptions

	// Middlewares are appended to the stack, after service-declared
	// middlewares registered by the Request builder, in the order
	// given, following the "service order then client order" rule.
	Middlewares []StackMiddleware

	// ErrorLogLevel and RequestLogLevel select the logging.Classification
	// used for error versus request/response trace lines.
	ErrorLogLevel   logging.Classification
	RequestLogLevel logging.Classification

	// Logger is attached to the context of every call this config is
	// used with. Defaults to logging.Noop when unset.
	Logger logging.Logger
}

// StackMiddleware is a middleware together with the step and relative
// position it should be installed at, letting ServiceConfig describe
// service-level middleware without depending on which concrete step type
// it belongs to.
type StackMiddleware struct {
	Step     StackStep
	Position middleware.RelativePosition
	Install  func(*middleware.Stack, middleware.RelativePosition) error
}

// StackStep names one of the five middleware.Stack steps, for use in
// diagnostics and in StackMiddleware's documentation of intent. The actual
// placement happens through StackMiddleware.Install, which closes over the
// concrete step-specific Add call.
type StackStep int

const (
	StepInitialize StackStep = iota
	StepSerialize
	StepBuild
	StepFinalize
	StepDeserialize
)

// ServiceOption configures a ServiceConfig. Applied in order by NewServiceConfig.
type ServiceOption func(*ServiceConfig)

// NewServiceConfig builds an immutable ServiceConfig from the given
// required fields and options.
func NewServiceConfig(serviceID, signingName, region, endpoint string, protocol Protocol, optFns ...ServiceOption) ServiceConfig {
	c := ServiceConfig{
		ServiceID:   serviceID,
		SigningName: signingName,
		Region:      region,
		EndpointURL: endpoint,
		Protocol:    protocol,
		Timeout:     30 * time.Second,
		Logger:      logging.Noop{},
	}
	for _, fn := range optFns {
		fn(&c)
	}
	return c
}

// WithAPIVersion sets the API version placed on query/ec2-query bodies.
func WithAPIVersion(v string) ServiceOption {
	return func(c *ServiceConfig) { c.APIVersion = v }
}

// WithAmzTarget sets the JSON-RPC target prefix.
func WithAmzTarget(v string) ServiceOption {
	return func(c *ServiceConfig) { c.AmzTarget = v }
}

// WithXMLNamespace sets the REST-XML root element namespace.
func WithXMLNamespace(v string) ServiceOption {
	return func(c *ServiceConfig) { c.XMLNamespace = v }
}

// WithTimeout overrides the default per-call timeout.
func WithTimeout(d time.Duration) ServiceOption {
	return func(c *ServiceConfig) { c.Timeout = d }
}

// WithOptions sets the ConfigOptions bitmask.
func WithOptions(o ConfigOptions) ServiceOption {
	return func(c *ServiceConfig) { c.Options = o }
}

// WithLogger sets the logger attached to every call's context.
func WithLogger(l logging.Logger) ServiceOption {
	return func(c *ServiceConfig) { c.Logger = l }
}

// WithLogLevels sets the classification used for error and
// request/response trace log lines.
func WithLogLevels(errorLevel, requestLevel logging.Classification) ServiceOption {
	return func(c *ServiceConfig) {
		c.ErrorLogLevel = errorLevel
		c.RequestLogLevel = requestLevel
	}
}

// WithMiddleware appends a service-declared middleware installed at the
// given step and relative position.
func WithMiddleware(m StackMiddleware) ServiceOption {
	return func(c *ServiceConfig) { c.Middlewares = append(c.Middlewares, m) }
}
