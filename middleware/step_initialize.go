package middleware

import "context"

// InitializeInput provides the input parameters for the initialize step of a
// middleware stack.
type InitializeInput struct {
	Parameters interface{}
}

// InitializeOutput provides the result of the initialize handler middleware
// stack.
type InitializeOutput struct {
	Result interface{}
}

// InitializeHandler provides the interface for handling the initialize step
// of a middleware stack. Wraps the underlying handler.
type InitializeHandler interface {
	HandleInitialize(ctx context.Context, in InitializeInput) (
		out InitializeOutput, metadata Metadata, err error,
	)
}

// InitializeHandlerFunc wraps a function to satisfy the InitializeHandler
// interface.
type InitializeHandlerFunc func(ctx context.Context, in InitializeInput) (
	out InitializeOutput, metadata Metadata, err error,
)

// HandleInitialize invokes the wrapped function.
func (f InitializeHandlerFunc) HandleInitialize(ctx context.Context, in InitializeInput) (
	out InitializeOutput, metadata Metadata, err error,
) {
	return f(ctx, in)
}

// InitializeMiddleware provides the interface for middleware specific to the
// initialize step.
type InitializeMiddleware interface {
	ID() string
	HandleInitialize(ctx context.Context, in InitializeInput, next InitializeHandler) (
		out InitializeOutput, metadata Metadata, err error,
	)
}

// InitializeMiddlewareFunc wraps a function to satisfy the
// InitializeMiddleware interface.
type InitializeMiddlewareFunc struct {
	id string
	fn func(ctx context.Context, in InitializeInput, next InitializeHandler) (
		out InitializeOutput, metadata Metadata, err error,
	)
}

// NewInitializeMiddlewareFunc returns an InitializeMiddleware backed by fn.
func NewInitializeMiddlewareFunc(id string, fn func(ctx context.Context, in InitializeInput, next InitializeHandler) (
	out InitializeOutput, metadata Metadata, err error,
)) InitializeMiddlewareFunc {
	return InitializeMiddlewareFunc{id: id, fn: fn}
}

var _ InitializeMiddleware = (InitializeMiddlewareFunc{})

// ID returns the identifier of the wrapped function.
func (f InitializeMiddlewareFunc) ID() string { return f.id }

// HandleInitialize invokes the wrapped function.
func (f InitializeMiddlewareFunc) HandleInitialize(ctx context.Context, in InitializeInput, next InitializeHandler) (
	out InitializeOutput, metadata Metadata, err error,
) {
	return f.fn(ctx, in, next)
}

// InitializeStep provides the ordered grouping of InitializeMiddleware to be
// invoked on a handler.
type InitializeStep struct {
	group orderedGroup
}

var _ Middleware = (*InitializeStep)(nil)

// ID returns the name of the initialize step.
func (s *InitializeStep) ID() string { return "Initialize stack step" }

// HandleMiddleware invokes the middleware by decorating the next handler
// provided. Returns the result of the middleware and handler being invoked.
//
// Implements Middleware interface.
func (s *InitializeStep) HandleMiddleware(ctx context.Context, in interface{}, next Handler) (
	out interface{}, metadata Metadata, err error,
) {
	order := s.group.GetOrder()

	var h InitializeHandler = initializeWrapHandler{Next: next}
	for i := len(order) - 1; i >= 0; i-- {
		h = decorateInitializeHandler{
			Next: h,
			With: order[i].(InitializeMiddleware),
		}
	}

	res, metadata, err := h.HandleInitialize(ctx, InitializeInput{Parameters: in})
	if err != nil {
		return nil, metadata, err
	}

	return res.Result, metadata, nil
}

// Add injects the middleware to the relative position of the middleware
// group. Returns an error if the middleware already exists.
func (s *InitializeStep) Add(m InitializeMiddleware, pos RelativePosition) error {
	return s.group.Add(m, pos)
}

// Insert injects the middleware relative to an existing middleware name.
// Returns an error if the original middleware does not exist, or the
// middleware being added already exists.
func (s *InitializeStep) Insert(m InitializeMiddleware, relativeTo string, pos RelativePosition) error {
	return s.group.Insert(m, relativeTo, pos)
}

// Swap removes the middleware by name, replacing it with the new middleware.
// Returns an error if the original middleware doesn't exist.
func (s *InitializeStep) Swap(name string, m InitializeMiddleware) error {
	return s.group.Swap(name, m)
}

// Remove removes the middleware by name. Returns an error if the middleware
// doesn't exist.
func (s *InitializeStep) Remove(name string) error {
	return s.group.Remove(name)
}

type initializeWrapHandler struct {
	Next Handler
}

var _ InitializeHandler = (initializeWrapHandler{})

func (w initializeWrapHandler) HandleInitialize(ctx context.Context, in InitializeInput) (
	out InitializeOutput, metadata Metadata, err error,
) {
	res, metadata, err := w.Next.Handle(ctx, in.Parameters)
	if err != nil {
		return InitializeOutput{}, metadata, err
	}

	return InitializeOutput{Result: res}, metadata, nil
}

type decorateInitializeHandler struct {
	Next InitializeHandler
	With InitializeMiddleware
}

var _ InitializeHandler = (decorateInitializeHandler{})

func (h decorateInitializeHandler) HandleInitialize(ctx context.Context, in InitializeInput) (
	out InitializeOutput, metadata Metadata, err error,
) {
	return h.With.HandleInitialize(ctx, in, h.Next)
}
