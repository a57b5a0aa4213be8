// Package sigv4 implements AWS Signature Version 4 request and URL signing,
// including the chunked-upload variant used by streaming operations. The
// canonicalization rules follow the algorithm this module's signer is
// grounded on (aws-http-auth/internal/v4); header signing and query
// signing share the canonicalization helpers in this file.
package sigv4

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

const (
	algorithm   = "AWS4-HMAC-SHA256"
	chunkAlgorithm = "AWS4-HMAC-SHA256-PAYLOAD"
	dateFormat  = "20060102T150405Z"
	shortDateFormat = "20060102"
	terminator  = "aws4_request"

	// EmptyPayloadHash is the hex SHA-256 of a zero-length body. Computed
	// once since it is referenced constantly (GET requests, chunk seeds).
	EmptyPayloadHash = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

	// UnsignedPayload is the literal placed in x-amz-content-sha256 for
	// requests that opt out of payload signing.
	UnsignedPayload = "UNSIGNED-PAYLOAD"

	// StreamingPayload is the literal placed in x-amz-content-sha256 for
	// chunked, signature-per-chunk streaming uploads.
	StreamingPayload = "STREAMING-AWS4-HMAC-SHA256-PAYLOAD"
)

// hashHex returns the lowercase hex SHA-256 digest of b.
func hashHex(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}

// HashPayload returns the lowercase hex SHA-256 digest of b, for callers
// outside this package that need to compute x-amz-content-sha256
// themselves (the executor, for a buffered request body).
func HashPayload(b []byte) string {
	return hashHex(b)
}

// sigv4UnreservedChar reports whether r is in AWS's strict unreserved set
// (A-Za-z0-9-._~), the allowed set for both query and per-segment path
// encoding.
func sigv4UnreservedChar(r byte) bool {
	switch {
	case r >= 'A' && r <= 'Z':
		return true
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '-' || r == '.' || r == '_' || r == '~':
		return true
	default:
		return false
	}
}

// escapeComponent percent-encodes every byte of s not in the unreserved
// set. Used for both canonical query values and per-path-segment encoding;
// "+" is never preserved for a space, unlike url.QueryEscape.
func escapeComponent(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if sigv4UnreservedChar(c) {
			buf.WriteByte(c)
		} else {
			buf.WriteByte('%')
			buf.WriteString(strings.ToUpper(hex.EncodeToString([]byte{c})))
		}
	}
	return buf.String()
}

// encodeURIPath returns the canonical URI for the given absolute path.
// When doubleEncode is true (every service except S3) each path segment is
// percent-encoded twice; S3 encodes once and otherwise uses the path
// verbatim.
func encodeURIPath(path string, doubleEncode bool) string {
	if path == "" {
		return "/"
	}

	segments := strings.Split(path, "/")
	for i, seg := range segments {
		enc := escapeComponent(seg)
		if doubleEncode {
			enc = escapeComponent(enc)
		}
		segments[i] = enc
	}
	return strings.Join(segments, "/")
}

// queryPair is a single decoded (key, value) query parameter, kept
// unencoded until canonicalQuery renders it so that sorting is over the
// decoded value as the spec requires.
type queryPair struct {
	Key, Value string
}

// canonicalQuery renders query pairs sorted by (key, value), each
// percent-encoded with the strict unreserved set, joined with "&" and "=".
func canonicalQuery(pairs []queryPair) string {
	sorted := make([]queryPair, len(pairs))
	copy(sorted, pairs)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Key != sorted[j].Key {
			return sorted[i].Key < sorted[j].Key
		}
		return sorted[i].Value < sorted[j].Value
	})

	var buf strings.Builder
	for i, p := range sorted {
		if i > 0 {
			buf.WriteByte('&')
		}
		buf.WriteString(escapeComponent(p.Key))
		buf.WriteByte('=')
		buf.WriteString(escapeComponent(p.Value))
	}
	return buf.String()
}

// trimHeaderValue collapses runs of whitespace outside quoted sections to a
// single space, and trims leading/trailing whitespace, per the canonical
// header value rule.
func trimHeaderValue(v string) string {
	var buf strings.Builder
	inQuotes := false
	lastWasSpace := false

	trimmed := strings.TrimSpace(v)
	for i := 0; i < len(trimmed); i++ {
		c := trimmed[i]
		if c == '"' {
			inQuotes = !inQuotes
		}

		isSpace := (c == ' ' || c == '\t') && !inQuotes
		if isSpace {
			if lastWasSpace {
				continue
			}
			lastWasSpace = true
			buf.WriteByte(' ')
			continue
		}
		lastWasSpace = false
		buf.WriteByte(c)
	}
	return buf.String()
}

// canonicalHeaders renders the canonical headers block and the
// corresponding SignedHeaders value for the given header set. The map's
// iteration order does not matter; canonicalHeaders sorts the lowercased
// names internally.
func canonicalHeaders(headers map[string][]string) (canonical, signedHeaders string) {
	names := make([]string, 0, len(headers))
	lower := make(map[string]string, len(headers))
	for name := range headers {
		l := strings.ToLower(name)
		names = append(names, l)
		lower[l] = name
	}
	sort.Strings(names)

	var headerBuf, signedBuf strings.Builder
	for i, name := range names {
		values := headers[lower[name]]
		trimmedValues := make([]string, len(values))
		for j, v := range values {
			trimmedValues[j] = trimHeaderValue(v)
		}

		headerBuf.WriteString(name)
		headerBuf.WriteByte(':')
		headerBuf.WriteString(strings.Join(trimmedValues, ","))
		headerBuf.WriteByte('\n')

		if i > 0 {
			signedBuf.WriteByte(';')
		}
		signedBuf.WriteString(name)
	}

	return headerBuf.String(), signedBuf.String()
}

// canonicalRequest assembles the full canonical request string per
// spec step 5's input, returning it alongside the SignedHeaders value
// that must also appear in the Authorization header / query string.
func canonicalRequest(method, canonicalURI, canonicalQS string, headers map[string][]string, payloadHash string) (request, signedHeaders string) {
	headerBlock, signedHeaders := canonicalHeaders(headers)

	request = strings.Join([]string{
		method,
		canonicalURI,
		canonicalQS,
		headerBlock,
		signedHeaders,
		payloadHash,
	}, "\n")

	return request, signedHeaders
}

// credentialScope renders "date/region/service/aws4_request".
func credentialScope(shortDate, region, service string) string {
	return strings.Join([]string{shortDate, region, service, terminator}, "/")
}

// stringToSign renders the string-to-sign for header/query signing.
func stringToSign(amzDate, scope, canonicalReq string) string {
	return strings.Join([]string{
		algorithm,
		amzDate,
		scope,
		hashHex([]byte(canonicalReq)),
	}, "\n")
}
