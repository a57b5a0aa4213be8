// Package credentials defines the Credential value and the provider
// interface the executor uses to obtain one. Discovery mechanics
// (environment, instance metadata, STS chains) are external collaborators;
// this package only specifies the contract, following the same
// narrow-interface shape aws-smithy-go uses for its auth.IdentityResolver.
package credentials

import (
	"context"
	"time"
)

// Credential is a resolved set of AWS-style access keys.
type Credential struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string

	// Expires is the time after which the credential should no longer be
	// used. The zero value means the credential does not expire.
	Expires time.Time
}

// IsEmpty reports whether both the access key ID and secret access key are
// blank. An empty credential disables request signing entirely.
func (c Credential) IsEmpty() bool {
	return len(c.AccessKeyID) == 0 && len(c.SecretAccessKey) == 0
}

// Expired reports whether the credential has an expiration in the past.
func (c Credential) Expired(now time.Time) bool {
	return !c.Expires.IsZero() && now.After(c.Expires)
}

// Provider resolves a Credential, optionally caching it across calls.
// Implementations must be safe for concurrent use; the executor may call
// Retrieve from many in-flight operations at once.
type Provider interface {
	Retrieve(ctx context.Context) (Credential, error)
}

// Shutdowner is implemented by providers that hold resources (background
// refresh goroutines, STS clients) needing an explicit release.
type Shutdowner interface {
	Shutdown(ctx context.Context) error
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context) (Credential, error)

// Retrieve implements Provider.
func (f ProviderFunc) Retrieve(ctx context.Context) (Credential, error) { return f(ctx) }

// StaticProvider returns a Provider that always resolves to the same
// Credential value. Useful for tests and for callers that manage their own
// key rotation outside this library.
func StaticProvider(c Credential) Provider {
	return ProviderFunc(func(context.Context) (Credential, error) { return c, nil })
}

// Anonymous is the empty Credential that disables signing, used by
// operations that must be sent unsigned (e.g. public S3 objects).
var Anonymous = Credential{}
