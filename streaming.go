package core

import (
	"context"
	"io"
	"time"

	"github.com/aws/aws-request-core/sigv4"
)

// chunkedStreamSigner wraps a ChunkReader as an io.Reader that frames and
// signs each chunk per SigV4's streaming upload scheme: fixed-size reads
// from the caller's stream, a per-chunk signature chained from the one
// before it, and a final zero-length terminating chunk.
type chunkedStreamSigner struct {
	inner     ChunkReader
	signer    *sigv4.ChunkSigner
	chunkSize int

	buf        []byte
	sourceDone bool
	terminated bool
}

func (c *chunkedStreamSigner) Read(p []byte) (int, error) {
	if len(c.buf) == 0 {
		if c.terminated {
			return 0, io.EOF
		}
		if c.sourceDone {
			sig := c.signer.SignChunk(nil)
			c.buf = sigv4.FrameChunk(nil, sig)
			c.terminated = true
		} else {
			chunk, isLast, err := c.inner.Read(context.Background(), c.chunkSize)
			if err != nil {
				return 0, err
			}
			if isLast || len(chunk) < c.chunkSize {
				c.sourceDone = true
			}
			sig := c.signer.SignChunk(chunk)
			c.buf = sigv4.FrameChunk(chunk, sig)
			if len(chunk) == 0 {
				// The source ended without producing any bytes: this
				// frame is itself the zero-length terminator, so no
				// second one should follow.
				c.terminated = true
			}
		}
	}

	n := copy(p, c.buf)
	c.buf = c.buf[n:]
	return n, nil
}

// newChunkedStreamSigner seeds a ChunkSigner from seedSignature (the
// signature computed over the enclosing request's headers) and wraps
// stream to produce the framed, per-chunk-signed body SigV4's streaming
// upload scheme expects.
func newChunkedStreamSigner(stream ChunkReader, secret, region, service string, now time.Time, seedSignature string) *chunkedStreamSigner {
	return &chunkedStreamSigner{
		inner:     stream,
		signer:    sigv4.NewChunkSigner(secret, region, service, now, seedSignature),
		chunkSize: streamReadSize,
	}
}
