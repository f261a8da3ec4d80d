// Package state holds the lifecycle states of the game loop.
package state

// LoopState represents the lifecycle state of the game loop
type LoopState int

const (
	Idle LoopState = iota
	Running
	Stopping
	Stopped
)

// String returns the string representation of the loop state
func (s LoopState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Running:
		return "Running"
	case Stopping:
		return "Stopping"
	case Stopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// Done reports whether the loop will run no further iterations.
func (s LoopState) Done() bool {
	return s == Stopping || s == Stopped
}
