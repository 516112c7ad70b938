// Package retry runs an operation with exponential backoff, letting the caller
// decide per error whether another attempt makes sense.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Action tells Do how to proceed after a failed attempt.
type Action int

const (
	Stop  Action = iota // permanent error, abort immediately
	Retry               // transient error, use normal backoff
	After               // rate-limited, use longer backoff
)

// Policy bounds the attempts and the waits between them.
type Policy struct {
	MaxAttempts      int
	InitialBackoff   time.Duration
	RateLimitBackoff time.Duration
	OnRetry          func(attempt int, err error, backoff time.Duration)
}

// DefaultPolicy suits calls to payment gateways from inside a request.
var DefaultPolicy = Policy{
	MaxAttempts:      3,
	InitialBackoff:   200 * time.Millisecond,
	RateLimitBackoff: time.Second,
}

type Classify func(err error) Action
type Operation[T any] func() (T, error)
type VoidOperation func() error

// Do runs op until it succeeds, classify returns Stop, the attempts are
// exhausted or ctx is done.
func Do[T any](ctx context.Context, p Policy, classify Classify, op Operation[T]) (T, error) {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	backoff := p.InitialBackoff

	for attempt := 1; ; attempt++ {
		val, err := op()
		if err == nil {
			return val, nil
		}

		action := classify(err)
		if action == Stop {
			var zero T
			return zero, &PermanentError{Err: err}
		}

		if attempt == p.MaxAttempts {
			var zero T
			return zero, fmt.Errorf("failed after %d attempts: %w", p.MaxAttempts, err)
		}

		if action == After {
			backoff = p.RateLimitBackoff
		}

		if p.OnRetry != nil {
			p.OnRetry(attempt, err, backoff)
		}

		select {
		case <-time.After(backoff):
			backoff *= 2
		case <-ctx.Done():
			var zero T
			return zero, fmt.Errorf("context cancelled during retry: %w", ctx.Err())
		}
	}
}

// DoVoid is Do for operations without a result.
func DoVoid(ctx context.Context, p Policy, classify Classify, op VoidOperation) error {
	_, err := Do(ctx, p, classify, func() (struct{}, error) { return struct{}{}, op() })
	return err
}

// PermanentError marks an error classified as not worth retrying.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }
