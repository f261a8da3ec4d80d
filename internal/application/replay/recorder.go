package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/framecore/internal/application/input"
)

// ErrEmpty is returned when saving a recording without iterations.
var ErrEmpty = errors.New("replay: no iterations to save")

// Recorder captures per-iteration events for replay. Observe matches the
// loop's event observer signature.
type Recorder struct {
	data      ReplayData
	recording bool
}

// NewRecorder creates a recorder for a session on stage running at step.
func NewRecorder(stage string, step time.Duration) *Recorder {
	return &Recorder{
		data: ReplayData{
			Version:    FormatVersion,
			Stage:      stage,
			StartTime:  time.Now().Format(time.RFC3339),
			Step:       int64(step),
			Iterations: make([]IterationInput, 0, 3600), // ~1 minute at 60 iterations/s
		},
		recording: true,
	}
}

// Observe records one iteration. The events slice is copied.
func (r *Recorder) Observe(now time.Duration, events []input.Event) {
	if !r.recording {
		return
	}
	it := IterationInput{I: len(r.data.Iterations), At: int64(now)}
	if len(events) > 0 {
		it.Events = append([]input.Event(nil), events...)
	}
	r.data.Iterations = append(r.data.Iterations, it)
}

// Save writes the replay data to a file
func (r *Recorder) Save(filename string) error {
	if len(r.data.Iterations) == 0 {
		return ErrEmpty
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}

	return nil
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// IterationCount returns the number of recorded iterations
func (r *Recorder) IterationCount() int {
	return len(r.data.Iterations)
}

// Data returns the recording so far.
func (r *Recorder) Data() ReplayData {
	return r.data
}

// AutoFilename is the -record value that asks for a generated name.
const AutoFilename = "auto"

// GenerateFilename creates a filename from the stage and the given time
func GenerateFilename(stage string, at time.Time) string {
	return fmt.Sprintf("replay_%s_%s.json", stage, at.Format("20060102_150405"))
}
