// Package retry implements bounded retry with exponential backoff,
// expressed as an explicit policy value so callers can test retry
// behaviour deterministically with zero delays.
package retry

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Policy bounds retries for a transient operation.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Multiplier  float64
}

// DefaultPolicy retries twice after the initial attempt with a doubling
// delay capped at 30s.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: 3, BaseDelay: 2 * time.Second, MaxDelay: 30 * time.Second, Multiplier: 2}
}

func (p Policy) normalized() Policy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	if p.Multiplier <= 0 {
		p.Multiplier = 2
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = 30 * time.Second
	}
	return p
}

// Delay returns the backoff before the given attempt number (1-based;
// Delay(1) is the wait after the first failure).
func (p Policy) Delay(attempt int) time.Duration {
	p = p.normalized()
	d := float64(p.BaseDelay) * math.Pow(p.Multiplier, float64(attempt-1))
	if d > float64(p.MaxDelay) {
		d = float64(p.MaxDelay)
	}
	return time.Duration(d)
}

// Do runs op until it succeeds, the attempt budget is exhausted, or the
// context is cancelled. The wait between attempts is context-cancellable;
// no resource is held across the wait.
func Do(ctx context.Context, p Policy, op func(ctx context.Context) error) error {
	p = p.normalized()

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if attempt == p.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-time.After(p.Delay(attempt)):
		}
	}
	return fmt.Errorf("failed after %d attempts: %w", p.MaxAttempts, lastErr)
}
