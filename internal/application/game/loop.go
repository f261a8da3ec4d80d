// Package game provides the fixed-timestep loop that drives input, the scene
// stack and the render backend.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/younwookim/framecore/internal/application/input"
	"github.com/younwookim/framecore/internal/application/scene"
	"github.com/younwookim/framecore/internal/application/state"
	"github.com/younwookim/framecore/internal/infrastructure/config"
	"github.com/younwookim/framecore/internal/render"
)

// Construction errors.
var (
	ErrNoScenes  = errors.New("game: no scene manager")
	ErrNoBackend = errors.New("game: no render backend")
)

// DiagSource is the Diagnostic.Source used by the loop.
const DiagSource = "loop"

// Config holds loop timing.
type Config struct {
	Step          time.Duration // fixed simulation step
	MaxDelta      time.Duration // per-iteration clamp on wall delta
	Yield         time.Duration // sleep between iterations in Run
	StatsInterval time.Duration // period of the debug stats line; zero disables it
}

// DefaultConfig returns 60 Hz with a 50 ms clamp.
func DefaultConfig() Config {
	return Config{
		Step:          time.Second / 60,
		MaxDelta:      50 * time.Millisecond,
		Yield:         time.Millisecond,
		StatsInterval: time.Second,
	}
}

// NewConfig converts engine timing settings. Zero values keep the defaults.
func NewConfig(t config.TimingConfig) Config {
	cfg := DefaultConfig()
	if t.TickRate > 0 {
		cfg.Step = time.Second / time.Duration(t.TickRate)
	}
	if t.MaxFrameDeltaMs > 0 {
		cfg.MaxDelta = time.Duration(t.MaxFrameDeltaMs) * time.Millisecond
	}
	if t.YieldMs > 0 {
		cfg.Yield = time.Duration(t.YieldMs) * time.Millisecond
	}
	if t.StatsIntervalMs > 0 {
		cfg.StatsInterval = time.Duration(t.StatsIntervalMs) * time.Millisecond
	}
	return cfg
}

// Window is the surface collaborator queried on resize.
type Window interface {
	Size() (width, height int)
}

// Stats counts loop activity since start.
type Stats struct {
	Iterations     uint64
	Steps          uint64
	Frames         uint64
	SkippedRenders uint64
	FailedFrames   uint64
	Dropped        time.Duration
	LastAlpha      float64
}

// Option configures a Loop.
type Option func(*Loop)

// WithClock replaces the monotonic clock.
func WithClock(c Clock) Option { return func(l *Loop) { l.clock = c } }

// WithWindow sets the window queried on resize events without a size.
func WithWindow(w Window) Option { return func(l *Loop) { l.window = w } }

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option { return func(l *Loop) { l.logger = logger } }

// WithDiagnostics sets where per-frame anomalies are reported.
func WithDiagnostics(d render.Diagnostics) Option { return func(l *Loop) { l.diag = d } }

// WithEventObserver registers fn to see every iteration's clock reading and
// events before the events are dispatched.
func WithEventObserver(fn func(now time.Duration, events []input.Event)) Option {
	return func(l *Loop) { l.observer = fn }
}

// WithSleep replaces time.Sleep for the end-of-iteration yield.
func WithSleep(fn func(time.Duration)) Option { return func(l *Loop) { l.sleep = fn } }

// Loop runs the simulation at a fixed step and renders at a variable rate.
//
// Each iteration measures the clamped wall delta, polls and dispatches all
// pending events, runs zero or more fixed steps, then renders once with the
// interpolation factor if at least one step ran. A Quit event ends the loop
// after the iteration that received it.
//
// Once a resize has reached the backend, every frame's command buffer
// starts with that size as its render target, so scenes that missed the
// event because they were not on top still render at the surface size.
type Loop struct {
	cfg     Config
	scenes  *scene.Manager
	backend render.Backend
	events  input.Source

	clock    Clock
	window   Window
	logger   *slog.Logger
	diag     render.Diagnostics
	observer func(time.Duration, []input.Event)
	sleep    func(time.Duration)

	ts      *Timestep
	buf     *render.CommandBuffer
	pending []input.Event

	// surface is the backbuffer size after the last successful resize.
	surface    render.RenderTarget
	hasSurface bool

	state     state.LoopState
	last      time.Duration
	stats     Stats
	lastStats time.Duration
	lastSnap  Stats
}

// NewLoop wires a loop. events may be nil for a loop without input.
func NewLoop(cfg Config, scenes *scene.Manager, backend render.Backend, events input.Source, opts ...Option) (*Loop, error) {
	if scenes == nil {
		return nil, ErrNoScenes
	}
	if backend == nil {
		return nil, ErrNoBackend
	}
	if cfg.Step <= 0 {
		return nil, fmt.Errorf("game: invalid step %v", cfg.Step)
	}
	if events == nil {
		events = input.SourceFunc(func(dst []input.Event) []input.Event { return dst })
	}

	l := &Loop{
		cfg:     cfg,
		scenes:  scenes,
		backend: backend,
		events:  events,
		clock:   NewMonotonicClock(),
		logger:  slog.Default(),
		sleep:   time.Sleep,
		ts:      NewTimestep(cfg.Step, cfg.MaxDelta),
		buf:     render.NewCommandBuffer(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.diag == nil {
		l.diag = render.LogDiagnostics{Logger: l.logger}
	}
	return l, nil
}

// State returns the loop lifecycle state.
func (l *Loop) State() state.LoopState { return l.state }

// Stats returns a snapshot of the counters.
func (l *Loop) Stats() Stats {
	s := l.stats
	s.Dropped = l.ts.Dropped()
	return s
}

// Timestep exposes the accumulator.
func (l *Loop) Timestep() *Timestep { return l.ts }

// Stop asks the loop to end before its next iteration.
func (l *Loop) Stop() {
	if l.state == state.Idle || l.state == state.Running {
		l.state = state.Stopping
	}
}

// Tick runs one iteration. It returns false once the loop has ended, either
// by a Quit event, Stop, or a scene error, which is returned.
func (l *Loop) Tick() (bool, error) {
	switch l.state {
	case state.Stopped:
		return false, nil
	case state.Stopping:
		l.state = state.Stopped
		return false, nil
	}

	now := l.clock.Now()
	if l.state == state.Idle {
		l.state = state.Running
		l.last = now
		l.lastStats = now
	}
	l.ts.Add(now - l.last)
	l.last = now
	l.stats.Iterations++

	quit := l.dispatch(now)

	dt := l.cfg.Step.Seconds()
	steps := 0
	for l.ts.Ready() {
		if err := l.scenes.Update(dt); err != nil {
			l.state = state.Stopped
			return false, err
		}
		l.ts.Consume()
		steps++
	}
	l.stats.Steps += uint64(steps)

	if steps > 0 {
		alpha := l.ts.Alpha()
		l.stats.LastAlpha = alpha
		l.render(alpha)
	}

	l.logStats(now)

	if quit {
		l.state = state.Stopped
		l.logger.Info("quit received", "iterations", l.stats.Iterations, "steps", l.stats.Steps)
		return false, nil
	}
	return true, nil
}

// dispatch drains the event source. It reports whether a Quit arrived.
func (l *Loop) dispatch(now time.Duration) bool {
	l.pending = l.events.Poll(l.pending[:0])
	if l.observer != nil {
		l.observer(now, l.pending)
	}

	quit := false
	for _, e := range l.pending {
		switch e.Kind {
		case input.Quit:
			quit = true
			continue
		case input.Resize:
			l.resize(e)
		}
		l.scenes.HandleEvent(e)
	}
	return quit
}

func (l *Loop) resize(e input.Event) {
	w, h := e.Width, e.Height
	if (w <= 0 || h <= 0) && l.window != nil {
		w, h = l.window.Size()
	}
	if err := l.backend.Resize(w, h); err != nil {
		l.logger.Error("resize failed", "backend", l.backend.Name(), "width", w, "height", h, "error", err)
		return
	}
	l.surface = render.Backbuffer(w, h)
	l.hasSurface = true
}

// render produces one command buffer and submits it. Failures are reported
// and skip the frame.
func (l *Loop) render(alpha float64) {
	l.buf.Clear()
	if l.hasSurface {
		l.buf.SetRenderTarget(l.surface)
	}
	if !l.scenes.Render(l.buf, alpha) {
		l.stats.SkippedRenders++
		l.diag.Report(render.Diagnostic{Source: DiagSource, Kind: render.DiagNoActiveScene})
		return
	}

	if err := l.present(); err != nil {
		l.stats.FailedFrames++
		l.diag.Report(render.Diagnostic{
			Source: l.backend.Name(),
			Kind:   render.DiagFrameSkipped,
			Detail: err.Error(),
		})
		return
	}
	l.stats.Frames++
}

func (l *Loop) present() error {
	if err := l.backend.BeginFrame(); err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}
	if err := l.backend.Submit(l.buf); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	if err := l.backend.Present(); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	return nil
}

func (l *Loop) logStats(now time.Duration) {
	if l.cfg.StatsInterval <= 0 || now-l.lastStats < l.cfg.StatsInterval {
		return
	}
	elapsed := (now - l.lastStats).Seconds()
	cur := l.stats
	l.logger.Debug("loop stats",
		"fps", float64(cur.Frames-l.lastSnap.Frames)/elapsed,
		"tps", float64(cur.Steps-l.lastSnap.Steps)/elapsed,
		"skipped", cur.SkippedRenders-l.lastSnap.SkippedRenders,
		"dropped", l.ts.Dropped(),
		"scenes", l.scenes.Names(),
	)
	l.lastStats = now
	l.lastSnap = cur
}

// Run ticks until the loop ends or ctx is cancelled, yielding between
// iterations. Cancellation is a clean stop and returns nil.
func (l *Loop) Run(ctx context.Context) error {
	l.logger.Info("loop started", "step", l.cfg.Step, "maxDelta", l.cfg.MaxDelta, "backend", l.backend.Name())
	defer l.logger.Info("loop stopped", "iterations", l.stats.Iterations, "frames", l.stats.Frames)

	for {
		if ctx.Err() != nil {
			l.Stop()
		}
		more, err := l.Tick()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		if l.cfg.Yield > 0 {
			l.sleep(l.cfg.Yield)
		}
	}
}
