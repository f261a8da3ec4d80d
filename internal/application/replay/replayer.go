package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/framecore/internal/application/input"
)

// Replayer plays a recording back. It is both the loop's event source and
// its clock: Now reports the recorded reading of the iteration about to
// poll, so the loop sees the original deltas and events in order. Once the
// recording is exhausted Poll yields a single Quit.
type Replayer struct {
	data ReplayData
	next int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var data ReplayData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}

	return &data, nil
}

// Now implements the loop clock.
func (r *Replayer) Now() time.Duration {
	n := len(r.data.Iterations)
	if n == 0 {
		return 0
	}
	return r.data.Iterations[min(r.next, n-1)].Time()
}

// Poll implements input.Source.
func (r *Replayer) Poll(dst []input.Event) []input.Event {
	if r.next >= len(r.data.Iterations) {
		r.next++
		return append(dst, input.Event{Kind: input.Quit})
	}
	it := r.data.Iterations[r.next]
	r.next++
	return append(dst, it.Events...)
}

// Done reports whether every recorded iteration has been polled.
func (r *Replayer) Done() bool {
	return r.next >= len(r.data.Iterations)
}

// CurrentIteration returns the index of the next iteration to play.
func (r *Replayer) CurrentIteration() int {
	return r.next
}

// TotalIterations returns the number of recorded iterations
func (r *Replayer) TotalIterations() int {
	return len(r.data.Iterations)
}

// Step returns the fixed step the recording ran at, or zero if unknown.
func (r *Replayer) Step() time.Duration {
	return time.Duration(r.data.Step)
}

// Stage returns the stage the recording was made on.
func (r *Replayer) Stage() string {
	return r.data.Stage
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.next = 0
}
