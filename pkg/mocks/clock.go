package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/user/promoreel/pkg/ports"
)

// Clock is a manual implementation of ports.Clock. Time only moves when
// the test advances it or when Sleep is called, so pacing behavior can
// be asserted without real delays.
type Clock struct {
	mu      sync.Mutex
	current time.Time

	SleepFunc func(ctx context.Context, d time.Duration) error

	// Recorded calls for verification
	Sleeps []time.Duration
}

// NewClock creates a Clock starting at the given instant.
func NewClock(start time.Time) *Clock {
	return &Clock{current: start}
}

func (m *Clock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Advance moves the simulated time forward. Tests use it to model work
// taking wall-clock time between Now calls.
func (m *Clock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.current.Add(d)
}

func (m *Clock) Sleep(ctx context.Context, d time.Duration) error {
	m.mu.Lock()
	m.Sleeps = append(m.Sleeps, d)
	if d > 0 {
		m.current = m.current.Add(d)
	}
	m.mu.Unlock()

	if m.SleepFunc != nil {
		return m.SleepFunc(ctx, d)
	}
	return ctx.Err()
}

var _ ports.Clock = (*Clock)(nil)
