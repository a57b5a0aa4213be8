// Package idempotency provides the initialize-step middleware that
// auto-fills an operation's idempotencyToken member when the caller left
// it blank, so retries of the same logical call reuse one token rather
// than minting a new one on every attempt.
package idempotency

import (
	"context"

	"github.com/google/uuid"

	"github.com/aws/aws-request-core/middleware"
	"github.com/aws/aws-request-core/middleware/id"
)

// TokenSetter is implemented by input shapes with a member marked with the
// idempotencyToken trait. GetIdempotencyToken reports the caller-supplied
// value, if any; the middleware only overwrites it with SetIdempotencyToken
// when it is blank.
type TokenSetter interface {
	GetIdempotencyToken() string
	SetIdempotencyToken(token string)
}

// AutoFillMiddleware fills a blank idempotency token with a random UUID
// before the request reaches serialization.
type AutoFillMiddleware struct {
	// NewToken generates a token value. Defaults to uuid.NewString when nil.
	NewToken func() string
}

var _ middleware.InitializeMiddleware = AutoFillMiddleware{}

// ID implements middleware.InitializeMiddleware.
func (AutoFillMiddleware) ID() string { return id.OperationIdempotencyTokenAutoFill }

// HandleInitialize implements middleware.InitializeMiddleware.
func (m AutoFillMiddleware) HandleInitialize(ctx context.Context, in middleware.InitializeInput, next middleware.InitializeHandler) (
	out middleware.InitializeOutput, metadata middleware.Metadata, err error,
) {
	if setter, ok := in.Parameters.(TokenSetter); ok && len(setter.GetIdempotencyToken()) == 0 {
		newToken := m.NewToken
		if newToken == nil {
			newToken = uuid.NewString
		}
		setter.SetIdempotencyToken(newToken())
	}

	return next.HandleInitialize(ctx, in)
}
