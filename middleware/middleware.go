package middleware

import "context"

// Handler provides the interface for performing the logic to obtain an
// output, or error, for the given input. Handler should be decorated with
// middleware to perform input specific behavior.
type Handler interface {
	Handle(ctx context.Context, input interface{}) (
		output interface{}, metadata Metadata, err error,
	)
}

// HandlerFunc provides a wrapper around a function to satisfy the Handler
// interface.
type HandlerFunc func(ctx context.Context, input interface{}) (
	output interface{}, metadata Metadata, err error,
)

// Handle invokes the underlying function.
func (f HandlerFunc) Handle(ctx context.Context, input interface{}) (
	output interface{}, metadata Metadata, err error,
) {
	return f(ctx, input)
}

// Middleware provides the interface to call handlers in a chain.
type Middleware interface {
	// HandleMiddleware performs the middleware's handling of the input,
	// returning the output, or error. The middleware can invoke the next
	// Handler if handling should continue.
	HandleMiddleware(ctx context.Context, input interface{}, next Handler) (
		output interface{}, metadata Metadata, err error,
	)
}

// MiddlewareHandler wraps a middleware in order to call the next handler in
// the chain.
type MiddlewareHandler struct {
	Next Handler
	With Middleware
}

// Handle implements the Handler interface to handle an operation invocation.
func (m MiddlewareHandler) Handle(ctx context.Context, input interface{}) (
	output interface{}, metadata Metadata, err error,
) {
	return m.With.HandleMiddleware(ctx, input, m.Next)
}

// DecorateHandler decorates a handler with middleware, wrapping the handler
// with each middleware value in turn, outermost first.
func DecorateHandler(h Handler, with ...Middleware) Handler {
	for i := len(with) - 1; i >= 0; i-- {
		h = MiddlewareHandler{
			Next: h,
			With: with[i],
		}
	}

	return h
}

// Middlewares provides a collection of middleware that can be invoked as a
// stack on a handler.
type Middlewares []Middleware

// HandleMiddleware invokes the middleware, decorating the handler.
func (ms Middlewares) HandleMiddleware(ctx context.Context, input interface{}, next Handler) (
	output interface{}, metadata Metadata, err error,
) {
	next = DecorateHandler(next, ms...)
	return next.Handle(ctx, input)
}
