package generation

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Default retry parameters shared by all generator adapters.
const (
	// DefaultMaxAttempts is the total number of attempts per upstream call.
	DefaultMaxAttempts = 3

	// DefaultBaseDelay is the backoff unit: attempt n (1-based) waits
	// BaseDelay * 2^(n-2) before running, so the sequence is 0, 1s, 2s.
	DefaultBaseDelay = time.Second
)

// RetryPolicy describes how a failed upstream call is retried: a fixed
// maximum number of attempts with exponential backoff between them.
//
// Every failure is retried identically up to the cap; the policy does not
// distinguish transient from permanent provider errors. On exhaustion the
// last observed error is returned unchanged (wrapped for errors.Is matching
// but preserving its message).
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, including the first.
	// If zero or negative, DefaultMaxAttempts is used.
	MaxAttempts int

	// BaseDelay is the backoff unit. If zero or negative, DefaultBaseDelay
	// is used. Tests shrink this to keep backoff measurable but fast.
	BaseDelay time.Duration
}

// DefaultRetryPolicy returns the policy applied to every provider call:
// 3 attempts with 0s, 1s, 2s delays.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
	}
}

// backoff returns the delay to wait before the given 0-based attempt.
// Attempt 0 runs immediately; attempt n waits BaseDelay * 2^(n-1).
func (p RetryPolicy) backoff(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	return p.BaseDelay << (attempt - 1)
}

// Retry executes op under the policy, returning the first successful result.
// Each failed attempt is logged; the wait between attempts respects context
// cancellation. On exhaustion the last error is returned wrapped in
// ErrUpstream so callers can match the failure class while the original
// message is preserved.
func Retry[T any](ctx context.Context, logger *slog.Logger, policy RetryPolicy, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	maxAttempts := policy.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if policy.BaseDelay <= 0 {
		policy.BaseDelay = DefaultBaseDelay
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if delay := policy.backoff(attempt); delay > 0 {
			logger.InfoContext(ctx, "retrying after delay",
				"attempt", attempt+1,
				"max_attempts", maxAttempts,
				"delay", delay)

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return zero, fmt.Errorf("%w: %w", ErrUpstream, ctx.Err())
			}
		}

		result, err := op(ctx)
		if err == nil {
			return result, nil
		}

		lastErr = err
		logger.ErrorContext(ctx, "generation attempt failed",
			"attempt", attempt+1,
			"max_attempts", maxAttempts,
			"error", err)
	}

	return zero, fmt.Errorf("%w: %w", ErrUpstream, lastErr)
}
