package core

import (
	"context"
	"fmt"
	"reflect"

	"github.com/aws/aws-request-core/awserr"
)

// defaultMaxPages bounds Paginator.Pages when MaxPages is left at zero.
const defaultMaxPages = 1000

// WithToken is implemented by an operation's input shape to derive a new
// input carrying the previous page's continuation token, the input-side
// counterpart to the output's tokenKey field.
type WithToken interface {
	WithToken(token string) interface{}
}

// PageCall executes one page of a paginated operation, the shape an
// Executor.Execute call closes over for a particular operation and output
// type.
type PageCall func(ctx context.Context, input interface{}) (interface{}, error)

// Paginator implements component C7: repeatedly invoking an operation,
// threading its continuation token from one page's output to the next
// page's input, until the token field is absent or empty or the page count
// exceeds MaxPages. A failed page call is terminal; pages already
// delivered to the caller are not retried or rolled back.
type Paginator struct {
	// MaxPages bounds the number of pages fetched. Zero selects
	// defaultMaxPages.
	MaxPages int
}

func (p Paginator) maxPages() int {
	if p.MaxPages <= 0 {
		return defaultMaxPages
	}
	return p.MaxPages
}

// Pages calls call starting from input, passing each page's decoded output
// to onPage, until the output's tokenKey field is absent or empty, the
// input does not implement WithToken, or onPage/call returns an error.
func (p Paginator) Pages(ctx context.Context, input interface{}, call PageCall, tokenKey string, onPage func(page interface{}) error) error {
	for page := 1; ; page++ {
		if page > p.maxPages() {
			return &awserr.PaginationLimit{MaxPages: p.maxPages()}
		}
		if err := ctx.Err(); err != nil {
			return &awserr.Cancelled{Err: err}
		}

		output, err := call(ctx, input)
		if err != nil {
			return err
		}
		if err := onPage(output); err != nil {
			return err
		}

		token, ok := stringField(output, tokenKey)
		if !ok || token == "" {
			return nil
		}

		wt, ok := input.(WithToken)
		if !ok {
			return nil
		}
		input = wt.WithToken(token)
	}
}

// List is Pages' common case: concatenate contentsKey's list field across
// every page into one flattened slice.
func (p Paginator) List(ctx context.Context, input interface{}, call PageCall, contentsKey, tokenKey string) ([]interface{}, error) {
	var all []interface{}
	err := p.Pages(ctx, input, call, tokenKey, func(page interface{}) error {
		items, err := sliceField(page, contentsKey)
		if err != nil {
			return err
		}
		all = append(all, items...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return all, nil
}

// stringField reads a named string field off output, following pointers to
// the underlying struct. ok is false if output is nil, not a struct, or
// the named field is not a string.
func stringField(output interface{}, name string) (string, bool) {
	v := reflect.ValueOf(output)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return "", false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return "", false
	}
	field := v.FieldByName(name)
	if !field.IsValid() || field.Kind() != reflect.String {
		return "", false
	}
	return field.String(), true
}

// sliceField reads a named slice field off output, returning its elements
// boxed as interface{}.
func sliceField(output interface{}, name string) ([]interface{}, error) {
	v := reflect.ValueOf(output)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("paginator: page output is not a struct")
	}
	field := v.FieldByName(name)
	if !field.IsValid() || field.Kind() != reflect.Slice {
		return nil, fmt.Errorf("paginator: field %q is not a slice", name)
	}
	items := make([]interface{}, field.Len())
	for i := range items {
		items[i] = field.Index(i).Interface()
	}
	return items, nil
}
