package sigv4

import (
	"time"
)

// ChunkSigner advances the per-chunk signature for a streaming, chunked
// SigV4 upload. The seed signature is the signature of the request that
// carries the stream; each subsequent chunk's signature is a function of
// the previous chunk's signature, forming a hash chain that lets the
// receiving service verify the stream incrementally.
type ChunkSigner struct {
	key       []byte
	scope     string
	date      string
	prevSig   string
}

// NewChunkSigner seeds a ChunkSigner from the signature produced for the
// enclosing request's headers. secret/region/service/signingTime must
// match the values used for that header signature.
func NewChunkSigner(secret, region, service string, signingTime time.Time, seedSignature string) *ChunkSigner {
	shortDate := signingTime.UTC().Format(shortDateFormat)
	return &ChunkSigner{
		key:     deriveSigningKey(secret, shortDate, region, service),
		scope:   credentialScope(shortDate, region, service),
		date:    signingTime.UTC().Format(dateFormat),
		prevSig: seedSignature,
	}
}

// SignChunk computes the signature for the next chunk of chunkBytes,
// advances the chain, and returns the signature to embed in the chunk's
// frame header. Call with an empty slice for the final, zero-length
// terminating chunk.
func (c *ChunkSigner) SignChunk(chunkBytes []byte) string {
	sts := chunkStringToSign(c.date, c.scope, c.prevSig, chunkBytes)
	sig := signString(c.key, sts)
	c.prevSig = sig
	return sig
}

// chunkStringToSign renders the chunk string-to-sign:
//
//	"AWS4-HMAC-SHA256-PAYLOAD\n" + date + "\n" + scope + "\n" +
//	  prevSignature + "\n" + hex(sha256("")) + "\n" + hex(sha256(chunkBytes))
func chunkStringToSign(date, scope, prevSig string, chunkBytes []byte) string {
	return chunkAlgorithm + "\n" +
		date + "\n" +
		scope + "\n" +
		prevSig + "\n" +
		EmptyPayloadHash + "\n" +
		hashHex(chunkBytes)
}

// FrameChunk renders the wire framing for one signed chunk:
//
//	hex(len(chunkBytes)) + ";chunk-signature=" + signature + "\r\n" + chunkBytes + "\r\n"
//
// The final, zero-length terminating chunk uses the same framing with an
// empty body.
func FrameChunk(chunkBytes []byte, signature string) []byte {
	hexLen := formatHexLen(len(chunkBytes))

	out := make([]byte, 0, len(hexLen)+len(";chunk-signature=")+len(signature)+2+len(chunkBytes)+2)
	out = append(out, hexLen...)
	out = append(out, ";chunk-signature="...)
	out = append(out, signature...)
	out = append(out, '\r', '\n')
	out = append(out, chunkBytes...)
	out = append(out, '\r', '\n')
	return out
}

func formatHexLen(n int) string {
	if n == 0 {
		return "0"
	}
	const hextable = "0123456789abcdef"
	var buf [16]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = hextable[n&0xf]
		n >>= 4
	}
	return string(buf[i:])
}
