package sigv4

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-request-core/credentials"
)

// SigningOptions controls optional behaviors of Signer's signing methods.
type SigningOptions struct {
	// DisableDoubleEncoding turns off the double percent-encoding that
	// every service except S3 applies to canonical URI path segments.
	// Set this for S3 requests.
	DisableDoubleEncoding bool

	// DisableSessionToken omits the X-Amz-Security-Token / credential
	// session token header from the signed set, used by a small number
	// of legacy operations that cannot accept it.
	DisableSessionToken bool
}

// Signer computes AWS Signature Version 4 signatures for HTTP requests,
// presigned URLs, and streaming chunk bodies.
type Signer struct {
	Options SigningOptions
}

// NewSigner returns a Signer with the given options applied.
func NewSigner(optFns ...func(*SigningOptions)) *Signer {
	o := SigningOptions{}
	for _, fn := range optFns {
		fn(&o)
	}
	return &Signer{Options: o}
}

// hmacSHA256 returns the HMAC-SHA256 of data keyed by key.
func hmacSHA256(key, data []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

// deriveSigningKey computes the date -> region -> service -> request
// chained HMAC signing key per the spec's derivation algorithm.
func deriveSigningKey(secret, shortDate, region, service string) []byte {
	kDate := hmacSHA256([]byte("AWS4"+secret), []byte(shortDate))
	kRegion := hmacSHA256(kDate, []byte(region))
	kService := hmacSHA256(kRegion, []byte(service))
	return hmacSHA256(kService, []byte(terminator))
}

// signString returns the lowercase hex HMAC-SHA256 signature of toSign
// under the derived key.
func signString(key []byte, toSign string) string {
	mac := hmacSHA256(key, []byte(toSign))
	return hex.EncodeToString(mac)
}

func headerMap(h http.Header) map[string][]string {
	m := make(map[string][]string, len(h))
	for k, v := range h {
		m[k] = v
	}
	return m
}

func queryPairs(q url.Values) []queryPair {
	pairs := make([]queryPair, 0, len(q))
	for k, values := range q {
		for _, v := range values {
			pairs = append(pairs, queryPair{Key: k, Value: v})
		}
	}
	return pairs
}

// SignHTTP signs req in place by attaching an Authorization header computed
// over its method, URI, query, signed headers, and payloadHash (the hex
// SHA-256 digest of the body, or one of UnsignedPayload/StreamingPayload).
// service and region identify the credential scope; signingTime is usually
// time.Now but is explicit for reproducibility.
func (s *Signer) SignHTTP(cred credentials.Credential, req *http.Request, payloadHash, service, region string, signingTime time.Time) error {
	amzDate := signingTime.UTC().Format(dateFormat)
	shortDate := signingTime.UTC().Format(shortDateFormat)

	req.Header.Set("X-Amz-Date", amzDate)
	req.Header.Set("X-Amz-Content-Sha256", payloadHash)
	if cred.SessionToken != "" && !s.Options.DisableSessionToken {
		req.Header.Set("X-Amz-Security-Token", cred.SessionToken)
	}

	canonicalURI := encodeURIPath(req.URL.Path, !s.Options.DisableDoubleEncoding)
	canonicalQS := canonicalQuery(queryPairs(req.URL.Query()))

	creq, signedHeaders := canonicalRequest(req.Method, canonicalURI, canonicalQS, headerMap(req.Header), payloadHash)

	scope := credentialScope(shortDate, region, service)
	sts := stringToSign(amzDate, scope, creq)

	key := deriveSigningKey(cred.SecretAccessKey, shortDate, region, service)
	signature := signString(key, sts)

	authHeader := strings.Join([]string{
		algorithm + " Credential=" + cred.AccessKeyID + "/" + scope,
		"SignedHeaders=" + signedHeaders,
		"Signature=" + signature,
	}, ", ")
	req.Header.Set("Authorization", authHeader)

	return nil
}

// PresignHTTP computes a presigned URL for req valid for the given
// duration, returning the signed URL and the signed headers map that the
// caller must still attach to any actual request made with this URL (most
// callers need only the "host" header). The request itself is not
// mutated; payloadHash is typically UnsignedPayload for presigned GETs.
func (s *Signer) PresignHTTP(cred credentials.Credential, req *http.Request, payloadHash, service, region string, signingTime time.Time, expires time.Duration) (signedURL string, signedHeaders http.Header, err error) {
	amzDate := signingTime.UTC().Format(dateFormat)
	shortDate := signingTime.UTC().Format(shortDateFormat)
	scope := credentialScope(shortDate, region, service)

	query := req.URL.Query()
	query.Set("X-Amz-Algorithm", algorithm)
	query.Set("X-Amz-Credential", cred.AccessKeyID+"/"+scope)
	query.Set("X-Amz-Date", amzDate)
	query.Set("X-Amz-Expires", formatSeconds(expires))
	if cred.SessionToken != "" && !s.Options.DisableSessionToken {
		query.Set("X-Amz-Security-Token", cred.SessionToken)
	}

	headers := http.Header{"Host": []string{req.Host}}
	if req.Host == "" {
		headers.Set("Host", req.URL.Host)
	}

	_, signedHeaderNames := canonicalHeaders(headerMap(headers))
	query.Set("X-Amz-SignedHeaders", signedHeaderNames)

	canonicalURI := encodeURIPath(req.URL.Path, !s.Options.DisableDoubleEncoding)
	canonicalQS := canonicalQuery(queryPairs(query))

	creq, _ := canonicalRequest(req.Method, canonicalURI, canonicalQS, headerMap(headers), payloadHash)
	sts := stringToSign(amzDate, scope, creq)

	key := deriveSigningKey(cred.SecretAccessKey, shortDate, region, service)
	signature := signString(key, sts)

	out := *req.URL
	out.RawQuery = canonicalQuery(queryPairs(query)) + "&X-Amz-Signature=" + escapeComponent(signature)

	return out.String(), headers, nil
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatInt(int64(d/time.Second), 10)
}
