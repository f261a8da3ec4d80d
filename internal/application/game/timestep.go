package game

import "time"

// Timestep is a fixed-step accumulator. Frame deltas are clamped to
// MaxDelta before accumulation; the excess is dropped, not deferred.
type Timestep struct {
	step     time.Duration
	maxDelta time.Duration
	acc      time.Duration
	dropped  time.Duration
}

// NewTimestep creates an accumulator draining in units of step.
func NewTimestep(step, maxDelta time.Duration) *Timestep {
	return &Timestep{step: step, maxDelta: maxDelta}
}

// Add accumulates one frame delta and returns the amount actually added.
// Negative deltas count as zero.
func (t *Timestep) Add(delta time.Duration) time.Duration {
	if delta < 0 {
		delta = 0
	}
	if t.maxDelta > 0 && delta > t.maxDelta {
		t.dropped += delta - t.maxDelta
		delta = t.maxDelta
	}
	t.acc += delta
	return delta
}

// Ready reports whether at least one full step is pending.
func (t *Timestep) Ready() bool { return t.acc >= t.step }

// Consume removes one step from the accumulator.
func (t *Timestep) Consume() { t.acc -= t.step }

// Alpha returns accumulator / step clamped to [0, 1].
func (t *Timestep) Alpha() float64 {
	a := float64(t.acc) / float64(t.step)
	return min(max(a, 0), 1)
}

// Step returns the fixed step.
func (t *Timestep) Step() time.Duration { return t.step }

// Accumulated returns the unconsumed time.
func (t *Timestep) Accumulated() time.Duration { return t.acc }

// Dropped returns the total time discarded by the clamp.
func (t *Timestep) Dropped() time.Duration { return t.dropped }
