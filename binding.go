package core

import (
	"fmt"
	"reflect"
	"time"

	"github.com/aws/aws-request-core/awserr"
	"github.com/aws/aws-request-core/httpbinding"
)

// Location values recognized in a member's `location` struct tag. A member
// with no `location` tag defaults to "body", following the encoding map
// rule that unlisted members default to the body when the protocol has a
// structured body.
const (
	locationHeader = "header"
	locationHeaders = "headers" // prefix map, locationName carries the prefix
	locationQuery   = "querystring"
	locationURI     = "uri"
	locationHostname = "hostname"
	locationBody    = "body"
)

// Validator is implemented by input shapes that need to check declared
// constraints (ranges, lengths, patterns) before a request is built.
type Validator interface {
	Validate() error
}

// TokenSetter, re-exported for callers wiring the idempotency middleware
// against this package's request builder, matches
// middleware/idempotency.TokenSetter.
type TokenSetter interface {
	GetIdempotencyToken() string
	SetIdempotencyToken(token string)
}

// distributeMembers walks input's fields once, dispatching every member
// tagged header/headers/querystring/uri/hostname to the httpbinding
// encoder or the host prefix builder. It returns the fields it did not
// consume (location "body" or untagged) together with their values, for
// the protocol-specific body builder.
func distributeMembers(opName string, input interface{}, enc *httpbinding.Encoder, hostPrefix *string) (bodyFields []reflect.StructField, bodyValues []reflect.Value, err error) {
	v := reflect.ValueOf(input)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, nil, nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, nil, nil
	}
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" { // unexported
			continue
		}
		fv := v.Field(i)
		loc := field.Tag.Get("location")
		name := field.Tag.Get("locationName")
		if name == "" {
			name = field.Name
		}

		switch loc {
		case locationHeader:
			if isZero(fv) {
				continue
			}
			if err := setHeaderValue(enc.SetHeader(name), fv); err != nil {
				return nil, nil, &awserr.Unencodable{Member: field.Name, Location: loc, Reason: err.Error()}
			}
		case locationHeaders:
			if err := setHeaderPrefix(enc.Headers(name), fv); err != nil {
				return nil, nil, &awserr.Unencodable{Member: field.Name, Location: loc, Reason: err.Error()}
			}
		case locationQuery:
			if isZero(fv) {
				continue
			}
			if err := setQueryValue(enc.SetQuery(name), enc.AddQuery(name), fv); err != nil {
				return nil, nil, &awserr.Unencodable{Member: field.Name, Location: loc, Reason: err.Error()}
			}
		case locationURI:
			if isZero(fv) {
				continue
			}
			greedy := field.Tag.Get("greedy") == "true"
			if err := setURIValue(enc.SetURI(name), fv, greedy); err != nil {
				return nil, nil, &awserr.Unencodable{Member: field.Name, Location: loc, Reason: err.Error()}
			}
		case locationHostname:
			if isZero(fv) {
				continue
			}
			s, ok := stringify(fv)
			if !ok {
				return nil, nil, &awserr.Unencodable{Member: field.Name, Location: loc, Reason: "not a scalar value"}
			}
			if hostPrefix != nil {
				*hostPrefix = replacePlaceholder(*hostPrefix, name, s, false)
			}
		default:
			// locationBody, or no tag: defer to the body builder.
			bodyFields = append(bodyFields, field)
			bodyValues = append(bodyValues, fv)
		}
	}

	return bodyFields, bodyValues, nil
}

func isZero(v reflect.Value) bool {
	return v.IsZero()
}

func stringify(v reflect.Value) (string, bool) {
	switch v.Kind() {
	case reflect.String:
		return v.String(), true
	case reflect.Bool:
		if v.Bool() {
			return "true", true
		}
		return "false", true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fmt.Sprintf("%d", v.Int()), true
	case reflect.Float32, reflect.Float64:
		return fmt.Sprintf("%g", v.Float()), true
	}
	if t, ok := v.Interface().(time.Time); ok {
		return t.UTC().Format(time.RFC3339), true
	}
	return "", false
}

func setHeaderValue(h httpbinding.HeaderValue, v reflect.Value) error {
	switch v.Kind() {
	case reflect.String:
		h.String(v.String())
		return nil
	case reflect.Bool:
		h.Boolean(v.Bool())
		return nil
	case reflect.Int32:
		h.Integer(int32(v.Int()))
		return nil
	case reflect.Int64:
		h.Long(v.Int())
		return nil
	case reflect.Float64:
		h.Double(v.Float())
		return nil
	}
	if t, ok := v.Interface().(time.Time); ok {
		h.String(t.UTC().Format(time.RFC1123))
		return nil
	}
	return fmt.Errorf("unsupported header value type %s", v.Type())
}

func setHeaderPrefix(h httpbinding.Headers, v reflect.Value) error {
	if v.Kind() != reflect.Map {
		return fmt.Errorf("headerPrefix member must be a map, got %s", v.Type())
	}
	iter := v.MapRange()
	for iter.Next() {
		s, ok := stringify(iter.Value())
		if !ok {
			return fmt.Errorf("unsupported header prefix value type %s", iter.Value().Type())
		}
		h.SetHeader(iter.Key().String()).String(s)
	}
	return nil
}

func setQueryValue(set, add httpbinding.QueryValue, v reflect.Value) error {
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			s, ok := stringify(v.Index(i))
			if !ok {
				return fmt.Errorf("unsupported query list element type %s", v.Index(i).Type())
			}
			add.String(s)
		}
		return nil
	default:
		s, ok := stringify(v)
		if !ok {
			return fmt.Errorf("unsupported query value type %s", v.Type())
		}
		set.String(s)
		return nil
	}
}

func setURIValue(u httpbinding.URIValue, v reflect.Value, greedy bool) error {
	s, ok := stringify(v)
	if !ok {
		return fmt.Errorf("unsupported uri value type %s", v.Type())
	}
	if greedy {
		return u.GreedyString(s)
	}
	return u.String(s)
}

func replacePlaceholder(template, name, value string, greedy bool) string {
	placeholder := "{" + name + "}"
	if greedy {
		placeholder = "{" + name + "+}"
	}
	out := ""
	for {
		idx := indexOf(template, placeholder)
		if idx < 0 {
			out += template
			break
		}
		out += template[:idx] + value
		template = template[idx+len(placeholder):]
	}
	return out
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
