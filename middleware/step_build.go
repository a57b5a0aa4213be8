package middleware

import "context"

// BuildInput provides the input parameters for the build step of a
// middleware stack.
type BuildInput struct {
	Request interface{}
}

// BuildOutput provides the result of the build handler middleware stack.
type BuildOutput struct {
	Result interface{}
}

// BuildHandler provides the interface for handling the build step of a
// middleware stack. Wraps the underlying handler.
type BuildHandler interface {
	HandleBuild(ctx context.Context, in BuildInput) (
		out BuildOutput, metadata Metadata, err error,
	)
}

// BuildMiddleware provides the interface for middleware specific to the
// build step.
type BuildMiddleware interface {
	ID() string
	HandleBuild(ctx context.Context, in BuildInput, next BuildHandler) (
		out BuildOutput, metadata Metadata, err error,
	)
}

// BuildMiddlewareFunc wraps a function to satisfy the BuildMiddleware
// interface.
type BuildMiddlewareFunc struct {
	id string
	fn func(ctx context.Context, in BuildInput, next BuildHandler) (
		out BuildOutput, metadata Metadata, err error,
	)
}

// NewBuildMiddlewareFunc returns a BuildMiddleware backed by fn, identified
// by id for ordering purposes.
func NewBuildMiddlewareFunc(id string, fn func(ctx context.Context, in BuildInput, next BuildHandler) (
	out BuildOutput, metadata Metadata, err error,
)) BuildMiddlewareFunc {
	return BuildMiddlewareFunc{id: id, fn: fn}
}

var _ BuildMiddleware = (BuildMiddlewareFunc{})

// ID returns the identifier of the wrapped function.
func (f BuildMiddlewareFunc) ID() string { return f.id }

// HandleBuild invokes the wrapped function.
func (f BuildMiddlewareFunc) HandleBuild(ctx context.Context, in BuildInput, next BuildHandler) (
	out BuildOutput, metadata Metadata, err error,
) {
	return f.fn(ctx, in, next)
}

// BuildStep provides the ordered grouping of BuildMiddleware to be invoked
// on a handler.
type BuildStep struct {
	group orderedGroup
}

var _ Middleware = (*BuildStep)(nil)

// ID returns the name of the build step.
func (s *BuildStep) ID() string { return "Build stack step" }

// HandleMiddleware invokes the middleware by decorating the next handler
// provided. Returns the result of the middleware and handler being invoked.
//
// Implements Middleware interface.
func (s *BuildStep) HandleMiddleware(ctx context.Context, in interface{}, next Handler) (
	out interface{}, metadata Metadata, err error,
) {
	order := s.group.GetOrder()

	var h BuildHandler = buildWrapHandler{Next: next}
	for i := len(order) - 1; i >= 0; i-- {
		h = decorateBuildHandler{
			Next: h,
			With: order[i].(BuildMiddleware),
		}
	}

	res, metadata, err := h.HandleBuild(ctx, BuildInput{Request: in})
	if err != nil {
		return nil, metadata, err
	}

	return res.Result, metadata, nil
}

// Add injects the middleware to the relative position of the middleware
// group. Returns an error if the middleware already exists.
func (s *BuildStep) Add(m BuildMiddleware, pos RelativePosition) error {
	return s.group.Add(m, pos)
}

// Insert injects the middleware relative to an existing middleware name.
// Returns an error if the original middleware does not exist, or the
// middleware being added already exists.
func (s *BuildStep) Insert(m BuildMiddleware, relativeTo string, pos RelativePosition) error {
	return s.group.Insert(m, relativeTo, pos)
}

// Swap removes the middleware by name, replacing it with the new middleware.
// Returns an error if the original middleware doesn't exist.
func (s *BuildStep) Swap(name string, m BuildMiddleware) error {
	return s.group.Swap(name, m)
}

// Remove removes the middleware by name. Returns an error if the middleware
// doesn't exist.
func (s *BuildStep) Remove(name string) error {
	return s.group.Remove(name)
}

type buildWrapHandler struct {
	Next Handler
}

var _ BuildHandler = (buildWrapHandler{})

func (w buildWrapHandler) HandleBuild(ctx context.Context, in BuildInput) (
	out BuildOutput, metadata Metadata, err error,
) {
	res, metadata, err := w.Next.Handle(ctx, in.Request)
	if err != nil {
		return BuildOutput{}, metadata, err
	}

	return BuildOutput{Result: res}, metadata, nil
}

type decorateBuildHandler struct {
	Next BuildHandler
	With BuildMiddleware
}

var _ BuildHandler = (decorateBuildHandler{})

func (h decorateBuildHandler) HandleBuild(ctx context.Context, in BuildInput) (
	out BuildOutput, metadata Metadata, err error,
) {
	return h.With.HandleBuild(ctx, in, h.Next)
}
