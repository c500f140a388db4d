package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/suykerbuyk/voice-vault/internal/summary"
)

// Retrier wraps engine calls with exponential backoff. An operation gets
// MaxRetries+1 total attempts; the wait before retry n is 2^n seconds.
type Retrier struct {
	MaxRetries int

	// Sleep is overridable for tests. nil means real sleeping that honors
	// context cancellation.
	Sleep func(ctx context.Context, d time.Duration) error
}

// NewRetrier returns a Retrier with the given retry count and real sleeps.
func NewRetrier(maxRetries int) *Retrier {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Retrier{MaxRetries: maxRetries}
}

// Complete calls eng.Complete, retrying transient failures with backoff.
// When every attempt fails the last error is wrapped in ErrProcessingFailed.
func (r *Retrier) Complete(ctx context.Context, eng Engine, req Request) (*summary.Result, error) {
	sleep := r.Sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	attempts := r.MaxRetries + 1
	var lastErr error

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			if err := sleep(ctx, backoff); err != nil {
				return nil, err
			}
		}

		result, err := eng.Complete(ctx, req)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("%w after %d attempts: %w", ErrProcessingFailed, attempts, lastErr)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
