package game

import "time"

// Clock reports monotonic elapsed time since an arbitrary origin.
type Clock interface {
	Now() time.Duration
}

// MonotonicClock reads the runtime's monotonic clock.
type MonotonicClock struct {
	start time.Time
}

// NewMonotonicClock creates a clock whose origin is now.
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{start: time.Now()}
}

// Now returns the time elapsed since the clock was created.
func (c *MonotonicClock) Now() time.Duration { return time.Since(c.start) }

// ManualClock only moves when told to.
type ManualClock struct {
	now time.Duration
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Duration { return c.now }

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) { c.now += d }

// SteppedClock advances by a fixed Tick on every Now call, so every loop
// iteration observes the same delta. Used for deterministic headless and
// replay runs.
type SteppedClock struct {
	Tick time.Duration
	now  time.Duration
}

// Now advances the clock by Tick and returns the new time.
func (c *SteppedClock) Now() time.Duration {
	c.now += c.Tick
	return c.now
}
