// Package retry provides bounded retry with exponential backoff for
// outbound HTTP calls.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// ErrMaxRetriesExceeded indicates all attempts were exhausted.
var ErrMaxRetriesExceeded = errors.New("max retries exceeded")

// Policy controls retry behaviour.
type Policy struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Jitter         bool
	// RetryableFunc classifies errors; nil retries everything.
	RetryableFunc func(error) bool
}

// Validate checks the policy for obvious misconfiguration.
func (p Policy) Validate() error {
	if p.MaxRetries < 0 {
		return fmt.Errorf("max retries must be >= 0, got %d", p.MaxRetries)
	}
	if p.InitialBackoff <= 0 {
		return fmt.Errorf("initial backoff must be > 0, got %s", p.InitialBackoff)
	}
	return nil
}

// DefaultPolicy is suitable for idempotent GET-style requests.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:     3,
		InitialBackoff: 500 * time.Millisecond,
		MaxBackoff:     10 * time.Second,
		Jitter:         true,
	}
}

// Retrier executes operations under a Policy.
type Retrier struct {
	policy Policy
	logger *zap.Logger
}

// NewRetrier creates a new retrier. Panics on an invalid policy, since that
// is a programming error rather than a runtime condition.
func NewRetrier(policy Policy, logger *zap.Logger) *Retrier {
	if err := policy.Validate(); err != nil {
		panic(fmt.Sprintf("invalid retry policy: %v", err))
	}
	return &Retrier{policy: policy, logger: logger}
}

// Do executes a function with retry logic.
func (r *Retrier) Do(ctx context.Context, operation func() error) error {
	var lastErr error

	for attempt := 0; attempt <= r.policy.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		lastErr = operation()
		if lastErr == nil {
			if attempt > 0 {
				r.logger.Info("Operation succeeded after retries",
					zap.Int("attempt", attempt),
					zap.Int("max_retries", r.policy.MaxRetries))
			}
			return nil
		}

		if !r.isRetryable(lastErr) {
			return lastErr
		}

		if attempt >= r.policy.MaxRetries {
			break
		}

		backoff := r.backoff(attempt + 1)
		r.logger.Debug("Retrying operation",
			zap.Error(lastErr),
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", backoff))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}

	return fmt.Errorf("%w: %v", ErrMaxRetriesExceeded, lastErr)
}

func (r *Retrier) backoff(attempt int) time.Duration {
	d := r.policy.InitialBackoff << (attempt - 1)
	if r.policy.MaxBackoff > 0 && d > r.policy.MaxBackoff {
		d = r.policy.MaxBackoff
	}
	if r.policy.Jitter {
		d = d/2 + time.Duration(rand.Int63n(int64(d/2)+1))
	}
	return d
}

func (r *Retrier) isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if r.policy.RetryableFunc != nil {
		return r.policy.RetryableFunc(err)
	}
	return true
}

// Do is a package-level helper for one-off retries.
func Do(ctx context.Context, policy Policy, logger *zap.Logger, operation func() error) error {
	return NewRetrier(policy, logger).Do(ctx, operation)
}
