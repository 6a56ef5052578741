package server

import (
	"context"

	"golang.org/x/time/rate"
)

// Ticker advances a simulation by one tick.
type Ticker interface {
	OnTick()
}

// RunLoop calls t.OnTick at most ticksPerSecond times per second until ctx
// is cancelled or maxTicks ticks have run. A non-positive maxTicks runs
// forever. Cancellation is not an error.
func RunLoop(ctx context.Context, t Ticker, ticksPerSecond float64, maxTicks int) error {
	limiter := rate.NewLimiter(rate.Limit(ticksPerSecond), 1)
	for n := 0; maxTicks <= 0 || n < maxTicks; n++ {
		if err := limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		t.OnTick()
	}
	return nil
}
