// Package retry implements the executor's bounded-attempt, exponential
// backoff with jitter retry policy. The delay computation is adapted from
// the teacher's waiter backoff helper (ComputeDelay/SleepWithContext),
// generalized from a min/max/remaining-time waiter loop into a per-attempt
// exponential-backoff-with-jitter policy keyed only on attempt count and a
// configurable base delay, and taught to honor a server's Retry-After.
package retry

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/aws/aws-request-core/awserr"
)

// DefaultMaxAttempts is the default bound on attempts per the executor
// contract (one initial attempt plus up to three retries).
const DefaultMaxAttempts = 4

// Policy controls the executor's retry behavior for one operation.
type Policy struct {
	// MaxAttempts bounds the total number of attempts, including the
	// first. Zero selects DefaultMaxAttempts.
	MaxAttempts int

	// BaseDelay is the starting backoff delay, doubled per retry and
	// capped at MaxDelay. Zero selects a 100ms base.
	BaseDelay time.Duration

	// MaxDelay caps the computed backoff delay before jitter is applied.
	// Zero selects a 20s cap.
	MaxDelay time.Duration
}

func (p Policy) maxAttempts() int {
	if p.MaxAttempts <= 0 {
		return DefaultMaxAttempts
	}
	return p.MaxAttempts
}

func (p Policy) baseDelay() time.Duration {
	if p.BaseDelay <= 0 {
		return 100 * time.Millisecond
	}
	return p.BaseDelay
}

func (p Policy) maxDelay() time.Duration {
	if p.MaxDelay <= 0 {
		return 20 * time.Second
	}
	return p.MaxDelay
}

// IsRetryable reports whether err, as classified by awserr.Classification,
// should be retried under this policy. Only Throttle and Transient errors
// are retried; everything else fails the call outright.
func (p Policy) IsRetryable(err error) bool {
	switch awserr.Classification(err) {
	case awserr.ClassifyThrottle, awserr.ClassifyTransient:
		return true
	default:
		return false
	}
}

// ShouldAttempt reports whether attempt (1-indexed) is still within the
// policy's bound.
func (p Policy) ShouldAttempt(attempt int) bool {
	return attempt <= p.maxAttempts()
}

// ComputeDelay returns the backoff delay before the given retry attempt
// (the attempt number of the retry about to be made, 1-indexed), doubling
// the base delay per attempt and capping at MaxDelay, then applying full
// jitter: a uniformly random duration between zero and the capped value.
// If retryAfter is non-zero it is honored exactly, without jitter, since
// it reflects an explicit server directive.
func (p Policy) ComputeDelay(attempt int, retryAfter time.Duration) time.Duration {
	if retryAfter > 0 {
		return retryAfter
	}

	capped := time.Duration(math.Min(
		float64(p.maxDelay()),
		float64(p.baseDelay())*math.Pow(2, float64(attempt-1)),
	))

	if capped <= 0 {
		return 0
	}
	return time.Duration(rand.Int63n(int64(capped)))
}

// SleepWithContext waits for dur to elapse or ctx to be cancelled,
// whichever happens first, returning ctx.Err() in the latter case.
func SleepWithContext(ctx context.Context, dur time.Duration) error {
	if dur <= 0 {
		return nil
	}

	t := time.NewTimer(dur)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
