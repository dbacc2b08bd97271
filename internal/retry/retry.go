// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package retry provides a policy-driven retry primitive with bounded
// exponential backoff. The policy is a plain value so callers can test
// backoff behavior without real sleeps.
package retry

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// Policy describes how an operation is retried.
type Policy struct {
	// MaxAttempts is the total number of tries, including the first.
	MaxAttempts int

	// BaseDelay is the wait before the second attempt.
	BaseDelay time.Duration

	// MaxDelay caps the backoff growth.
	MaxDelay time.Duration

	// Multiplier is the backoff growth factor.
	Multiplier float64
}

// DefaultPolicy is used when a zero Policy is passed to Do.
var DefaultPolicy = Policy{
	MaxAttempts: 3,
	BaseDelay:   2 * time.Second,
	MaxDelay:    30 * time.Second,
	Multiplier:  2.0,
}

// FromConfig converts a RetryConfig into a Policy, filling zero fields
// from DefaultPolicy.
func FromConfig(cfg types.RetryConfig) Policy {
	p := Policy{
		MaxAttempts: cfg.MaxAttempts,
		BaseDelay:   cfg.BaseDelay,
		MaxDelay:    cfg.MaxDelay,
		Multiplier:  cfg.Multiplier,
	}
	return p.normalized()
}

func (p Policy) normalized() Policy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultPolicy.MaxAttempts
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = DefaultPolicy.BaseDelay
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = DefaultPolicy.MaxDelay
	}
	if p.Multiplier < 1 {
		p.Multiplier = DefaultPolicy.Multiplier
	}
	return p
}

// Backoff returns the wait before the given attempt (attempt 2 waits
// BaseDelay, attempt 3 waits BaseDelay*Multiplier, and so on), capped at
// MaxDelay.
func (p Policy) Backoff(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}
	d := time.Duration(float64(p.BaseDelay) * math.Pow(p.Multiplier, float64(attempt-2)))
	if d > p.MaxDelay || d <= 0 {
		return p.MaxDelay
	}
	return d
}

// permanentError marks an error that must not be retried.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }

func (e *permanentError) Unwrap() error { return e.err }

// Permanent wraps err so Do gives up immediately. A nil err returns nil.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var pe *permanentError
	return errors.As(err, &pe)
}

// Do runs op until it succeeds, fails permanently, exhausts the policy, or
// the context is cancelled during a backoff wait. It returns the number of
// attempts actually made and the last error. Context errors are returned
// as-is so callers can distinguish deadline aborts from operation failures.
func Do(ctx context.Context, p Policy, op func(ctx context.Context) error) (int, error) {
	p = p.normalized()

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return attempt - 1, ctx.Err()
			case <-time.After(p.Backoff(attempt)):
			}
		}

		err := op(ctx)
		if err == nil {
			return attempt, nil
		}
		if IsPermanent(err) {
			return attempt, err
		}
		if ctx.Err() != nil {
			return attempt, ctx.Err()
		}
		lastErr = err
	}
	return p.MaxAttempts, lastErr
}
