package middleware

import "context"

// DeserializeInput provides the input parameters for the deserialize step of
// a middleware stack.
type DeserializeInput struct {
	Request interface{}
}

// DeserializeOutput provides the result of the deserialize handler
// middleware stack.
type DeserializeOutput struct {
	RawResponse interface{}
	Result      interface{}
}

// DeserializeHandler provides the interface for handling the deserialize
// step of a middleware stack. Wraps the underlying handler.
type DeserializeHandler interface {
	HandleDeserialize(ctx context.Context, in DeserializeInput) (
		out DeserializeOutput, metadata Metadata, err error,
	)
}

// DeserializeMiddleware provides the interface for middleware specific to
// the deserialize step.
type DeserializeMiddleware interface {
	ID() string
	HandleDeserialize(ctx context.Context, in DeserializeInput, next DeserializeHandler) (
		out DeserializeOutput, metadata Metadata, err error,
	)
}

// DeserializeMiddlewareFunc wraps a function to satisfy the
// DeserializeMiddleware interface.
type DeserializeMiddlewareFunc struct {
	id string
	fn func(ctx context.Context, in DeserializeInput, next DeserializeHandler) (
		out DeserializeOutput, metadata Metadata, err error,
	)
}

// NewDeserializeMiddlewareFunc returns a DeserializeMiddleware backed by fn.
func NewDeserializeMiddlewareFunc(id string, fn func(ctx context.Context, in DeserializeInput, next DeserializeHandler) (
	out DeserializeOutput, metadata Metadata, err error,
)) DeserializeMiddlewareFunc {
	return DeserializeMiddlewareFunc{id: id, fn: fn}
}

var _ DeserializeMiddleware = (DeserializeMiddlewareFunc{})

// ID returns the identifier of the wrapped function.
func (f DeserializeMiddlewareFunc) ID() string { return f.id }

// HandleDeserialize invokes the wrapped function.
func (f DeserializeMiddlewareFunc) HandleDeserialize(ctx context.Context, in DeserializeInput, next DeserializeHandler) (
	out DeserializeOutput, metadata Metadata, err error,
) {
	return f.fn(ctx, in, next)
}

// DeserializeStep provides the ordered grouping of DeserializeMiddleware to
// be invoked on a handler.
type DeserializeStep struct {
	group orderedGroup
}

var _ Middleware = (*DeserializeStep)(nil)

// ID returns the name of the deserialize step.
func (s *DeserializeStep) ID() string { return "Deserialize stack step" }

// HandleMiddleware invokes the middleware by decorating the next handler
// provided. Returns the result of the middleware and handler being invoked.
//
// Implements Middleware interface.
func (s *DeserializeStep) HandleMiddleware(ctx context.Context, in interface{}, next Handler) (
	out interface{}, metadata Metadata, err error,
) {
	order := s.group.GetOrder()

	var h DeserializeHandler = deserializeWrapHandler{Next: next}
	for i := len(order) - 1; i >= 0; i-- {
		h = decorateDeserializeHandler{
			Next: h,
			With: order[i].(DeserializeMiddleware),
		}
	}

	res, metadata, err := h.HandleDeserialize(ctx, DeserializeInput{Request: in})
	if err != nil {
		return nil, metadata, err
	}

	return res.Result, metadata, nil
}

// Add injects the middleware to the relative position of the middleware
// group. Returns an error if the middleware already exists.
func (s *DeserializeStep) Add(m DeserializeMiddleware, pos RelativePosition) error {
	return s.group.Add(m, pos)
}

// Insert injects the middleware relative to an existing middleware name.
// Returns an error if the original middleware does not exist, or the
// middleware being added already exists.
func (s *DeserializeStep) Insert(m DeserializeMiddleware, relativeTo string, pos RelativePosition) error {
	return s.group.Insert(m, relativeTo, pos)
}

// Swap removes the middleware by name, replacing it with the new middleware.
// Returns an error if the original middleware doesn't exist.
func (s *DeserializeStep) Swap(name string, m DeserializeMiddleware) error {
	return s.group.Swap(name, m)
}

// Remove removes the middleware by name. Returns an error if the middleware
// doesn't exist.
func (s *DeserializeStep) Remove(name string) error {
	return s.group.Remove(name)
}

type deserializeWrapHandler struct {
	Next Handler
}

var _ DeserializeHandler = (deserializeWrapHandler{})

func (w deserializeWrapHandler) HandleDeserialize(ctx context.Context, in DeserializeInput) (
	out DeserializeOutput, metadata Metadata, err error,
) {
	res, metadata, err := w.Next.Handle(ctx, in.Request)
	if err != nil {
		return DeserializeOutput{}, metadata, err
	}

	return DeserializeOutput{Result: res}, metadata, nil
}

type decorateDeserializeHandler struct {
	Next DeserializeHandler
	With DeserializeMiddleware
}

var _ DeserializeHandler = (decorateDeserializeHandler{})

func (h decorateDeserializeHandler) HandleDeserialize(ctx context.Context, in DeserializeInput) (
	out DeserializeOutput, metadata Metadata, err error,
) {
	return h.With.HandleDeserialize(ctx, in, h.Next)
}
