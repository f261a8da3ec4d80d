package replay

import (
	"time"

	"github.com/younwookim/framecore/internal/application/input"
)

// FormatVersion is written into every recording.
const FormatVersion = "2.0"

// IterationInput records what one loop iteration observed.
type IterationInput struct {
	I      int           `json:"i"`           // Iteration number
	At     int64         `json:"at"`          // Clock reading in nanoseconds
	Events []input.Event `json:"e,omitempty"` // Events in poll order
}

// Time returns the clock reading as a duration.
func (it IterationInput) Time() time.Duration { return time.Duration(it.At) }

// ReplayData contains all data needed to replay a session
type ReplayData struct {
	Version    string           `json:"version"`
	Stage      string           `json:"stage"`
	StartTime  string           `json:"startTime"`
	Step       int64            `json:"stepNs"`
	Iterations []IterationInput `json:"iterations"`
}
