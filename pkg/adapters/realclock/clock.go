// Package realclock provides the wall-clock implementation of ports.Clock.
package realclock

import (
	"context"
	"time"

	"github.com/user/promoreel/pkg/ports"
)

// Clock implements ports.Clock with the real wall clock.
type Clock struct{}

// New creates a new Clock.
func New() *Clock {
	return &Clock{}
}

// Ensure Clock implements ports.Clock
var _ ports.Clock = (*Clock)(nil)

// Now returns the current time.
func (c *Clock) Now() time.Time {
	return time.Now()
}

// Sleep suspends the caller for d, returning early if ctx is cancelled.
func (c *Clock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
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
