// Package rendertest provides helpers for exercising render.Backend
// implementations in tests.
package rendertest

import (
	"fmt"

	"github.com/younwookim/framecore/internal/render"
)

// Call is one recorded backend invocation.
type Call struct {
	Method string
	Args   string
	Err    string
}

// Recorder wraps a backend and records every call made through it.
type Recorder struct {
	render.Backend
	Calls []Call
}

var _ render.Backend = (*Recorder)(nil)

// Wrap returns a Recorder delegating to b.
func Wrap(b render.Backend) *Recorder {
	return &Recorder{Backend: b}
}

func (r *Recorder) record(method, args string, err error) error {
	c := Call{Method: method, Args: args}
	if err != nil {
		c.Err = err.Error()
	}
	r.Calls = append(r.Calls, c)
	return err
}

func (r *Recorder) Init(width, height int) error {
	return r.record("Init", fmt.Sprintf("%dx%d", width, height), r.Backend.Init(width, height))
}

func (r *Recorder) BeginFrame() error {
	return r.record("BeginFrame", "", r.Backend.BeginFrame())
}

func (r *Recorder) Submit(cb *render.CommandBuffer) error {
	args := fmt.Sprintf("draw=%d ui=%d post=%d", len(cb.DrawItems()), len(cb.UIItems()), len(cb.PostEffects()))
	return r.record("Submit", args, r.Backend.Submit(cb))
}

func (r *Recorder) Present() error {
	return r.record("Present", "", r.Backend.Present())
}

func (r *Recorder) Resize(width, height int) error {
	return r.record("Resize", fmt.Sprintf("%dx%d", width, height), r.Backend.Resize(width, height))
}

func (r *Recorder) Shutdown() {
	r.Backend.Shutdown()
	r.record("Shutdown", "", nil)
}

// Methods returns the recorded method names in call order.
func (r *Recorder) Methods() []string {
	out := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = c.Method
	}
	return out
}

// Reset forgets every recorded call.
func (r *Recorder) Reset() { r.Calls = r.Calls[:0] }
