package middleware

import "context"

// SerializeInput provides the input parameters for the serialize step of a
// middleware stack.
type SerializeInput struct {
	Parameters interface{}
	Request    interface{}
}

// SerializeOutput provides the result of the serialize handler middleware
// stack.
type SerializeOutput struct {
	Result interface{}
}

// SerializeHandler provides the interface for handling the serialize step of
// a middleware stack. Wraps the underlying handler.
type SerializeHandler interface {
	HandleSerialize(ctx context.Context, in SerializeInput) (
		out SerializeOutput, metadata Metadata, err error,
	)
}

// SerializeMiddleware provides the interface for middleware specific to the
// serialize step.
type SerializeMiddleware interface {
	ID() string
	HandleSerialize(ctx context.Context, in SerializeInput, next SerializeHandler) (
		out SerializeOutput, metadata Metadata, err error,
	)
}

// SerializeMiddlewareFunc wraps a function to satisfy the
// SerializeMiddleware interface.
type SerializeMiddlewareFunc struct {
	id string
	fn func(ctx context.Context, in SerializeInput, next SerializeHandler) (
		out SerializeOutput, metadata Metadata, err error,
	)
}

// NewSerializeMiddlewareFunc returns a SerializeMiddleware backed by fn.
func NewSerializeMiddlewareFunc(id string, fn func(ctx context.Context, in SerializeInput, next SerializeHandler) (
	out SerializeOutput, metadata Metadata, err error,
)) SerializeMiddlewareFunc {
	return SerializeMiddlewareFunc{id: id, fn: fn}
}

var _ SerializeMiddleware = (SerializeMiddlewareFunc{})

// ID returns the identifier of the wrapped function.
func (f SerializeMiddlewareFunc) ID() string { return f.id }

// HandleSerialize invokes the wrapped function.
func (f SerializeMiddlewareFunc) HandleSerialize(ctx context.Context, in SerializeInput, next SerializeHandler) (
	out SerializeOutput, metadata Metadata, err error,
) {
	return f.fn(ctx, in, next)
}

// SerializeStep provides the ordered grouping of SerializeMiddleware to be
// invoked on a handler.
type SerializeStep struct {
	group orderedGroup
}

var _ Middleware = (*SerializeStep)(nil)

// ID returns the name of the serialize step.
func (s *SerializeStep) ID() string { return "Serialize stack step" }

// HandleMiddleware invokes the middleware by decorating the next handler
// provided. Returns the result of the middleware and handler being invoked.
//
// Implements Middleware interface.
func (s *SerializeStep) HandleMiddleware(ctx context.Context, in interface{}, next Handler) (
	out interface{}, metadata Metadata, err error,
) {
	order := s.group.GetOrder()

	var h SerializeHandler = serializeWrapHandler{Next: next}
	for i := len(order) - 1; i >= 0; i-- {
		h = decorateSerializeHandler{
			Next: h,
			With: order[i].(SerializeMiddleware),
		}
	}

	res, metadata, err := h.HandleSerialize(ctx, SerializeInput{Parameters: in})
	if err != nil {
		return nil, metadata, err
	}

	return res.Result, metadata, nil
}

// Add injects the middleware to the relative position of the middleware
// group. Returns an error if the middleware already exists.
func (s *SerializeStep) Add(m SerializeMiddleware, pos RelativePosition) error {
	return s.group.Add(m, pos)
}

// Insert injects the middleware relative to an existing middleware name.
// Returns an error if the original middleware does not exist, or the
// middleware being added already exists.
func (s *SerializeStep) Insert(m SerializeMiddleware, relativeTo string, pos RelativePosition) error {
	return s.group.Insert(m, relativeTo, pos)
}

// Swap removes the middleware by name, replacing it with the new middleware.
// Returns an error if the original middleware doesn't exist.
func (s *SerializeStep) Swap(name string, m SerializeMiddleware) error {
	return s.group.Swap(name, m)
}

// Remove removes the middleware by name. Returns an error if the middleware
// doesn't exist.
func (s *SerializeStep) Remove(name string) error {
	return s.group.Remove(name)
}

type serializeWrapHandler struct {
	Next Handler
}

var _ SerializeHandler = (serializeWrapHandler{})

func (w serializeWrapHandler) HandleSerialize(ctx context.Context, in SerializeInput) (
	out SerializeOutput, metadata Metadata, err error,
) {
	res, metadata, err := w.Next.Handle(ctx, in.Request)
	if err != nil {
		return SerializeOutput{}, metadata, err
	}

	return SerializeOutput{Result: res}, metadata, nil
}

type decorateSerializeHandler struct {
	Next SerializeHandler
	With SerializeMiddleware
}

var _ SerializeHandler = (decorateSerializeHandler{})

func (h decorateSerializeHandler) HandleSerialize(ctx context.Context, in SerializeInput) (
	out SerializeOutput, metadata Metadata, err error,
) {
	return h.With.HandleSerialize(ctx, in, h.Next)
}
