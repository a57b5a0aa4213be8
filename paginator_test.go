package core

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-request-core/awserr"
)

type listInput struct {
	Token string
}

func (in listInput) WithToken(token string) interface{} {
	in.Token = token
	return in
}

type listOutput struct {
	Items     []string
	NextToken string
}

func TestPaginatorListFlattensPages(t *testing.T) {
	pages := [][]string{{"a", "b"}, {"c"}, {"d", "e"}}
	tokens := []string{"t1", "t2", ""}
	seenTokens := []string{}

	idx := 0
	call := func(_ context.Context, input interface{}) (interface{}, error) {
		in := input.(listInput)
		seenTokens = append(seenTokens, in.Token)
		out := listOutput{Items: pages[idx], NextToken: tokens[idx]}
		idx++
		return out, nil
	}

	p := Paginator{}
	got, err := p.List(context.Background(), listInput{}, call, "Items", "NextToken")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	var flat []string
	for _, v := range got {
		flat = append(flat, v.(string))
	}
	want := []string{"a", "b", "c", "d", "e"}
	if len(flat) != len(want) {
		t.Fatalf("got %v, want %v", flat, want)
	}
	for i := range want {
		if flat[i] != want[i] {
			t.Fatalf("got %v, want %v", flat, want)
		}
	}

	wantTokens := []string{"", "t1", "t2"}
	for i := range wantTokens {
		if seenTokens[i] != wantTokens[i] {
			t.Fatalf("seenTokens = %v, want %v", seenTokens, wantTokens)
		}
	}
}

func TestPaginatorStopsWhenTokenEmpty(t *testing.T) {
	calls := 0
	call := func(_ context.Context, input interface{}) (interface{}, error) {
		calls++
		return listOutput{Items: []string{"x"}, NextToken: ""}, nil
	}

	p := Paginator{}
	got, err := p.List(context.Background(), listInput{}, call, "Items", "NextToken")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	if len(got) != 1 {
		t.Fatalf("got %v, want one item", got)
	}
}

func TestPaginatorStopsWhenInputHasNoToken(t *testing.T) {
	type noTokenInput struct{ Marker string }

	calls := 0
	call := func(_ context.Context, input interface{}) (interface{}, error) {
		calls++
		return listOutput{Items: []string{"x"}, NextToken: "more"}, nil
	}

	p := Paginator{}
	_, err := p.List(context.Background(), noTokenInput{}, call, "Items", "NextToken")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1 (no WithToken implementation means no further pages)", calls)
	}
}

func TestPaginatorStopsOnCallError(t *testing.T) {
	boom := errors.New("boom")
	call := func(_ context.Context, input interface{}) (interface{}, error) {
		return nil, boom
	}

	p := Paginator{}
	_, err := p.List(context.Background(), listInput{}, call, "Items", "NextToken")
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestPaginatorEnforcesMaxPages(t *testing.T) {
	call := func(_ context.Context, input interface{}) (interface{}, error) {
		return listOutput{Items: []string{"x"}, NextToken: "more"}, nil
	}

	p := Paginator{MaxPages: 3}
	_, err := p.List(context.Background(), listInput{}, call, "Items", "NextToken")

	var limit *awserr.PaginationLimit
	if !errors.As(err, &limit) {
		t.Fatalf("err = %v, want *awserr.PaginationLimit", err)
	}
	if limit.MaxPages != 3 {
		t.Fatalf("MaxPages = %d, want 3", limit.MaxPages)
	}
}
