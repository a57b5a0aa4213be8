package httpbinding

import (
	"bytes"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// HeaderValue enables setting or appending a single HTTP header's string
// representation of a scalar value.
type HeaderValue struct {
	header http.Header
	key    string
	append bool
}

func newHeaderValue(header http.Header, key string, appendValue bool) HeaderValue {
	return HeaderValue{header: header, key: key, append: appendValue}
}

func (h HeaderValue) modify(value string) {
	if h.append {
		h.header.Add(h.key, value)
		return
	}
	h.header.Set(h.key, value)
}

// String sets the header to the given string value.
func (h HeaderValue) String(v string) { h.modify(v) }

// Boolean sets the header to the string representation of v.
func (h HeaderValue) Boolean(v bool) { h.modify(strconv.FormatBool(v)) }

// Byte sets the header to the string representation of v.
func (h HeaderValue) Byte(v int8) { h.modify(strconv.FormatInt(int64(v), 10)) }

// Short sets the header to the string representation of v.
func (h HeaderValue) Short(v int16) { h.modify(strconv.FormatInt(int64(v), 10)) }

// Integer sets the header to the string representation of v.
func (h HeaderValue) Integer(v int32) { h.modify(strconv.FormatInt(int64(v), 10)) }

// Long sets the header to the string representation of v.
func (h HeaderValue) Long(v int64) { h.modify(strconv.FormatInt(v, 10)) }

// Float sets the header to the string representation of v.
func (h HeaderValue) Float(v float32) { h.modify(strconv.FormatFloat(float64(v), 'f', -1, 32)) }

// Double sets the header to the string representation of v.
func (h HeaderValue) Double(v float64) { h.modify(strconv.FormatFloat(v, 'f', -1, 64)) }

// UnixTime sets the header to the epoch-seconds representation of t.
func (h HeaderValue) UnixTime(t time.Time) {
	h.modify(strconv.FormatInt(t.Unix(), 10))
}

// Headers groups a set of header values that share a common prefix, used for
// encoding httpPrefixHeaders style map members.
type Headers struct {
	header http.Header
	prefix string
}

// AddHeader returns a HeaderValue for appending to the prefixed header name.
func (h Headers) AddHeader(key string) HeaderValue {
	return newHeaderValue(h.header, h.prefix+key, true)
}

// SetHeader returns a HeaderValue for setting the prefixed header name.
func (h Headers) SetHeader(key string) HeaderValue {
	return newHeaderValue(h.header, h.prefix+key, false)
}

// QueryValue enables setting or appending a single query string value.
type QueryValue struct {
	query  url.Values
	key    string
	append bool
}

func newQueryValue(query url.Values, key string, appendValue bool) QueryValue {
	return QueryValue{query: query, key: key, append: appendValue}
}

func (q QueryValue) modify(value string) {
	if q.append {
		q.query.Add(q.key, value)
		return
	}
	q.query.Set(q.key, value)
}

// String sets the query parameter to the given string value.
func (q QueryValue) String(v string) { q.modify(v) }

// Boolean sets the query parameter to the string representation of v.
func (q QueryValue) Boolean(v bool) { q.modify(strconv.FormatBool(v)) }

// Integer sets the query parameter to the string representation of v.
func (q QueryValue) Integer(v int32) { q.modify(strconv.FormatInt(int64(v), 10)) }

// Long sets the query parameter to the string representation of v.
func (q QueryValue) Long(v int64) { q.modify(strconv.FormatInt(v, 10)) }

// Double sets the query parameter to the string representation of v.
func (q QueryValue) Double(v float64) { q.modify(strconv.FormatFloat(v, 'f', -1, 64)) }

// URIValue enables substituting a single {label} placeholder in a request's
// URI path with the encoded value of a member bound to the uri location.
type URIValue struct {
	path, rawPath *[]byte
	buffer        *[]byte
	key           string
}

func newURIValue(path, rawPath, buffer *[]byte, key string) URIValue {
	return URIValue{path: path, rawPath: rawPath, buffer: buffer, key: key}
}

// String replaces the {key} placeholder in the URI with v, escaping it for
// the raw path while leaving the decoded path human readable.
func (u URIValue) String(v string) error {
	return u.modify(v, false)
}

// GreedyString replaces the {key+} greedy placeholder in the URI with v,
// preserving literal "/" characters in the escaped raw path.
func (u URIValue) GreedyString(v string) error {
	return u.modify(v, true)
}

func (u URIValue) modify(v string, greedy bool) error {
	placeholder := "{" + u.key + "}"
	if greedy {
		placeholder = "{" + u.key + "+}"
	}

	escaped := url.PathEscape(v)
	if greedy {
		escaped = escapeGreedyPathSegment(v)
	}

	*u.path = bytes.Replace(*u.path, []byte(placeholder), []byte(v), 1)
	*u.rawPath = bytes.Replace(*u.rawPath, []byte(placeholder), []byte(escaped), 1)

	return nil
}

func escapeGreedyPathSegment(v string) string {
	var buf bytes.Buffer
	for _, segment := range bytes.Split([]byte(v), []byte("/")) {
		if buf.Len() > 0 {
			buf.WriteByte('/')
		}
		buf.WriteString(url.PathEscape(string(segment)))
	}
	return buf.String()
}
