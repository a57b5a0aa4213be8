package middleware

import "context"

// FinalizeInput provides the input parameters for the finalize step of a
// middleware stack.
type FinalizeInput struct {
	Request interface{}
}

// FinalizeOutput provides the result of the finalize handler middleware
// stack.
type FinalizeOutput struct {
	Result interface{}
}

// FinalizeHandler provides the interface for handling the finalize step of a
// middleware stack. Wraps the underlying handler.
type FinalizeHandler interface {
	HandleFinalize(ctx context.Context, in FinalizeInput) (
		out FinalizeOutput, metadata Metadata, err error,
	)
}

// FinalizeMiddleware provides the interface for middleware specific to the
// finalize step. The signer and retry logic live here so that any header
// mutation made by earlier steps is covered by the signature.
type FinalizeMiddleware interface {
	ID() string
	HandleFinalize(ctx context.Context, in FinalizeInput, next FinalizeHandler) (
		out FinalizeOutput, metadata Metadata, err error,
	)
}

// FinalizeMiddlewareFunc wraps a function to satisfy the FinalizeMiddleware
// interface.
type FinalizeMiddlewareFunc struct {
	id string
	fn func(ctx context.Context, in FinalizeInput, next FinalizeHandler) (
		out FinalizeOutput, metadata Metadata, err error,
	)
}

// NewFinalizeMiddlewareFunc returns a FinalizeMiddleware backed by fn.
func NewFinalizeMiddlewareFunc(id string, fn func(ctx context.Context, in FinalizeInput, next FinalizeHandler) (
	out FinalizeOutput, metadata Metadata, err error,
)) FinalizeMiddlewareFunc {
	return FinalizeMiddlewareFunc{id: id, fn: fn}
}

var _ FinalizeMiddleware = (FinalizeMiddlewareFunc{})

// ID returns the identifier of the wrapped function.
func (f FinalizeMiddlewareFunc) ID() string { return f.id }

// HandleFinalize invokes the wrapped function.
func (f FinalizeMiddlewareFunc) HandleFinalize(ctx context.Context, in FinalizeInput, next FinalizeHandler) (
	out FinalizeOutput, metadata Metadata, err error,
) {
	return f.fn(ctx, in, next)
}

// FinalizeStep provides the ordered grouping of FinalizeMiddleware to be
// invoked on a handler.
type FinalizeStep struct {
	group orderedGroup
}

var _ Middleware = (*FinalizeStep)(nil)

// ID returns the name of the finalize step.
func (s *FinalizeStep) ID() string { return "Finalize stack step" }

// HandleMiddleware invokes the middleware by decorating the next handler
// provided. Returns the result of the middleware and handler being invoked.
//
// Implements Middleware interface.
func (s *FinalizeStep) HandleMiddleware(ctx context.Context, in interface{}, next Handler) (
	out interface{}, metadata Metadata, err error,
) {
	order := s.group.GetOrder()

	var h FinalizeHandler = finalizeWrapHandler{Next: next}
	for i := len(order) - 1; i >= 0; i-- {
		h = decorateFinalizeHandler{
			Next: h,
			With: order[i].(FinalizeMiddleware),
		}
	}

	res, metadata, err := h.HandleFinalize(ctx, FinalizeInput{Request: in})
	if err != nil {
		return nil, metadata, err
	}

	return res.Result, metadata, nil
}

// Add injects the middleware to the relative position of the middleware
// group. Returns an error if the middleware already exists.
func (s *FinalizeStep) Add(m FinalizeMiddleware, pos RelativePosition) error {
	return s.group.Add(m, pos)
}

// Insert injects the middleware relative to an existing middleware name.
// Returns an error if the original middleware does not exist, or the
// middleware being added already exists.
func (s *FinalizeStep) Insert(m FinalizeMiddleware, relativeTo string, pos RelativePosition) error {
	return s.group.Insert(m, relativeTo, pos)
}

// Swap removes the middleware by name, replacing it with the new middleware.
// Returns an error if the original middleware doesn't exist.
func (s *FinalizeStep) Swap(name string, m FinalizeMiddleware) error {
	return s.group.Swap(name, m)
}

// Remove removes the middleware by name. Returns an error if the middleware
// doesn't exist.
func (s *FinalizeStep) Remove(name string) error {
	return s.group.Remove(name)
}

type finalizeWrapHandler struct {
	Next Handler
}

var _ FinalizeHandler = (finalizeWrapHandler{})

func (w finalizeWrapHandler) HandleFinalize(ctx context.Context, in FinalizeInput) (
	out FinalizeOutput, metadata Metadata, err error,
) {
	res, metadata, err := w.Next.Handle(ctx, in.Request)
	if err != nil {
		return FinalizeOutput{}, metadata, err
	}

	return FinalizeOutput{Result: res}, metadata, nil
}

type decorateFinalizeHandler struct {
	Next FinalizeHandler
	With FinalizeMiddleware
}

var _ FinalizeHandler = (decorateFinalizeHandler{})

func (h decorateFinalizeHandler) HandleFinalize(ctx context.Context, in FinalizeInput) (
	out FinalizeOutput, metadata Metadata, err error,
) {
	return h.With.HandleFinalize(ctx, in, h.Next)
}
