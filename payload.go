package core

import (
	"context"
	"io"

	"github.com/aws/aws-request-core/protocol/query"
	smithyxml "github.com/aws/aws-request-core/xml"
)

// streamReadSize is the chunk size chunkReaderAdapter requests from a
// ChunkReader on each call, matching the default SigV4 chunk size the
// streaming adapters in streaming.go frame around.
const streamReadSize = 64 * 1024

// chunkReaderAdapter presents a ChunkReader as an io.Reader so it can be
// attached to a transport/http.Request with SetStream. It buffers any
// excess a caller's short Read() leaves unread between calls.
type chunkReaderAdapter struct {
	ChunkReader
	ctx  context.Context
	buf  []byte
	done bool
}

// bodyChunkReader presents a response body io.ReadCloser as a ChunkReader,
// for streamable outputs the response decoder hands through unread. Its
// size is never known in advance; the caller reads it to EOF and closes it.
type bodyChunkReader struct {
	body io.ReadCloser
}

func (r *bodyChunkReader) Read(_ context.Context, requestedBytes int) ([]byte, bool, error) {
	buf := make([]byte, requestedBytes)
	n, err := r.body.Read(buf)
	if err == io.EOF {
		return buf[:n], true, nil
	}
	if err != nil {
		return nil, false, err
	}
	return buf[:n], false, nil
}

func (r *bodyChunkReader) KnownSize() (int64, bool) { return 0, false }

// Close releases the underlying response body. Callers that obtain a
// streamable output's Payload.Stream must Close it when done reading.
func (r *bodyChunkReader) Close() error { return r.body.Close() }

// Unwrap returns the ChunkReader a was built from, for the signing
// middleware's chunked-upload path, which needs the typed Read(ctx, n)
// form rather than the io.Reader Read(p) this adapter itself presents.
func (a *chunkReaderAdapter) Unwrap() ChunkReader { return a.ChunkReader }

func (a *chunkReaderAdapter) Read(p []byte) (int, error) {
	if len(a.buf) == 0 {
		if a.done {
			return 0, io.EOF
		}
		ctx := a.ctx
		if ctx == nil {
			ctx = context.Background()
		}
		chunk, isLast, err := a.ChunkReader.Read(ctx, streamReadSize)
		if err != nil {
			return 0, err
		}
		a.buf = chunk
		a.done = isLast
		if len(chunk) == 0 {
			if isLast {
				return 0, io.EOF
			}
			return 0, nil
		}
	}
	n := copy(p, a.buf)
	a.buf = a.buf[n:]
	if n == 0 && a.done {
		return 0, io.EOF
	}
	return n, nil
}

// ChunkReader is a single-owner, mutable stream of body bytes. It is
// invoked repeatedly during dispatch and cannot be restarted, per the
// "chunked stream ownership" design note — retries over a streaming body
// are disallowed by the executor.
type ChunkReader interface {
	// Read returns the next chunk of up to the requested size, whether
	// this is the final chunk, and any error. A short read (fewer bytes
	// than requested) signals end of stream even without isLast set.
	Read(ctx context.Context, requestedBytes int) (chunk []byte, isLast bool, err error)
	// KnownSize reports the stream's total size, if known in advance.
	// Operations sent as chunked uploads require a known size; any other
	// stream is read in full to hash it when the request is signed.
	KnownSize() (size int64, ok bool)
}

// Payload is the realized form of an input's body: nothing, a buffered
// byte slice, or a caller-owned stream.
type Payload struct {
	Bytes  []byte
	Stream ChunkReader
}

// IsEmpty reports whether the payload carries neither bytes nor a stream.
func (p Payload) IsEmpty() bool { return p.Bytes == nil && p.Stream == nil }

// RawPayloadSetter is implemented by an output shape's designated payload
// member when the response decoder should hand it the response body
// unread, rather than decoding it as a structured shape — the output-side
// counterpart to RawPayloader.
type RawPayloadSetter interface {
	SetAWSPayload(Payload)
}

// RawPayloader is implemented by a shape's designated payload member when
// that member is a raw, pre-encoded payload rather than a structured
// shape — the "Raw(Payload)" arm of the payload member's tagged variant.
// A member not implementing this interface is treated as the "Shape"
// arm: a nested, protocol-encodable value.
type RawPayloader interface {
	AWSPayload() Payload
}

// JSONBodyMarshaler is implemented by an input shape that renders its own
// json/rest-json body, overriding the request builder's default of
// reflecting over body-location members with github.com/goccy/go-json.
// Shapes with unusual body shapes (a payload member that is itself the
// entire body, for instance) use this to take full control.
type JSONBodyMarshaler interface {
	MarshalAWSJSONBody() ([]byte, error)
}

// QueryBodyMarshaler is implemented by an input shape that renders its
// own query/ec2-query body members onto an already Action/Version-seeded
// query.Encoder. There is no generic reflection fallback for this
// protocol family: the member/entry flattening names (e.g. SQS's
// "Attribute" map using "Name"/"Value" instead of the default
// "key"/"value") are per-shape conventions a real implementation would
// carry from its schema, which this module has no codegen stage to
// supply.
type QueryBodyMarshaler interface {
	MarshalAWSQuery(e *query.Encoder) error
}

// XMLBodyMarshaler is implemented by an input shape that renders its own
// rest-xml body onto the root element the builder opens for it. Re-states
// protocol/restxml.BodyMarshaler under this package so callers authoring
// input shapes need only look at this package's docs.
type XMLBodyMarshaler = interface {
	MarshalAWSXML(root *smithyxml.Object) error
}
