package ports

import (
	"context"
	"time"
)

// Clock abstracts wall-clock time for the frame-pacing loop so that tests
// can drive the capture schedule with a simulated clock instead of real
// sleeps.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Sleep suspends the caller for the given duration. It returns early
	// with ctx.Err() if the context is cancelled. Non-positive durations
	// return immediately.
	Sleep(ctx context.Context, d time.Duration) error
}
