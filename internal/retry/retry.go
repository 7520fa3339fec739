// Package retry provides a bounded retry policy with a fixed backoff,
// shared by every operation that repeats on transient failure.
package retry

import (
	"context"
	"errors"
	"time"
)

// Retryable is implemented by errors that are worth another attempt.
// Errors without it are treated as terminal.
type Retryable interface {
	Retryable() bool
}

// Policy bounds how many times an operation runs and how long it waits
// between attempts. The zero value makes exactly one attempt.
type Policy struct {
	MaxAttempts int
	Backoff     time.Duration

	// Sleep is overridable in tests; nil means a context-aware
	// time.Sleep.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Default is the pipeline-wide policy: 3 attempts with a 2s pause
// before the 2nd and 3rd.
var Default = Policy{MaxAttempts: 3, Backoff: 2 * time.Second}

// Do runs op until it succeeds, returns a terminal error, or attempts
// are exhausted. The last error is returned unwrapped so callers can
// classify it.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if err := p.sleep(ctx); err != nil {
				return err
			}
		}

		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}

		var r Retryable
		if !errors.As(lastErr, &r) || !r.Retryable() {
			return lastErr
		}
	}
	return lastErr
}

func (p Policy) sleep(ctx context.Context) error {
	if p.Sleep != nil {
		return p.Sleep(ctx, p.Backoff)
	}
	timer := time.NewTimer(p.Backoff)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
