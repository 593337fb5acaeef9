package lifecycle

import (
	"context"
	"time"
)

// Delayer suspends the orchestrator between polls. Implementations must
// return promptly when the context is cancelled; the returned error is the
// context's error in that case and nil when the full duration elapsed.
type Delayer interface {
	Delay(ctx context.Context, d time.Duration) error
}

// TimerDelayer blocks the calling goroutine on a timer.
type TimerDelayer struct{}

func (TimerDelayer) Delay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// DelayerFunc adapts a function to the Delayer interface.
type DelayerFunc func(ctx context.Context, d time.Duration) error

func (f DelayerFunc) Delay(ctx context.Context, d time.Duration) error {
	return f(ctx, d)
}
