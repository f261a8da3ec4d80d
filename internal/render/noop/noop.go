// Package noop provides a render backend that validates call sequencing and
// counts submitted work without touching a GPU. It backs headless runs and
// tests.
package noop

import (
	"log/slog"

	"github.com/younwookim/framecore/internal/render"
)

// Name is the backend identifier.
const Name = "noop"

// FrameStats counts the items consumed by one Submit.
type FrameStats struct {
	DrawItems   int
	UIItems     int
	PostEffects int
	HasCamera   bool
}

// Backend implements render.Backend without drawing anything.
type Backend struct {
	logger *slog.Logger

	width, height int
	initialized   bool
	inFrame       bool

	frames    int
	last      FrameStats
	shutdowns int
}

var _ render.Backend = (*Backend)(nil)

// New creates a no-op backend. A nil logger uses slog.Default().
func New(logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{logger: logger}
}

// Name implements render.Backend.
func (b *Backend) Name() string { return Name }

// Init records the surface size.
func (b *Backend) Init(width, height int) error {
	if err := render.CheckSize(width, height); err != nil {
		return err
	}
	b.width, b.height = width, height
	b.initialized = true
	b.logger.Debug("backend initialized", "backend", Name, "width", width, "height", height)
	return nil
}

// BeginFrame opens a frame.
func (b *Backend) BeginFrame() error {
	if !b.initialized {
		return render.ErrNotInitialized
	}
	b.inFrame = true
	return nil
}

// Submit records the buffer's item counts for LastFrame without drawing.
func (b *Backend) Submit(cb *render.CommandBuffer) error {
	if !b.initialized {
		return render.ErrNotInitialized
	}
	if !b.inFrame {
		return render.ErrFrameNotBegun
	}
	_, hasCamera := cb.Camera()
	b.last = FrameStats{
		DrawItems:   len(cb.DrawItems()),
		UIItems:     len(cb.UIItems()),
		PostEffects: len(cb.PostEffects()),
		HasCamera:   hasCamera,
	}
	return nil
}

// Present closes the frame and counts it.
func (b *Backend) Present() error {
	if !b.initialized {
		return render.ErrNotInitialized
	}
	if !b.inFrame {
		return render.ErrFrameNotBegun
	}
	b.inFrame = false
	b.frames++
	return nil
}

// Resize records the new surface size.
func (b *Backend) Resize(width, height int) error {
	if !b.initialized {
		return render.ErrNotInitialized
	}
	if err := render.CheckSize(width, height); err != nil {
		return err
	}
	b.width, b.height = width, height
	return nil
}

// Shutdown is idempotent.
func (b *Backend) Shutdown() {
	if !b.initialized {
		return
	}
	b.initialized = false
	b.inFrame = false
	b.shutdowns++
	b.logger.Debug("backend shut down", "backend", Name, "frames", b.frames)
}

// IsInitialized implements render.Backend.
func (b *Backend) IsInitialized() bool { return b.initialized }

// Frames returns the number of presented frames.
func (b *Backend) Frames() int { return b.frames }

// LastFrame returns the counts of the most recent Submit.
func (b *Backend) LastFrame() FrameStats { return b.last }

// Size returns the current surface size.
func (b *Backend) Size() (int, int) { return b.width, b.height }
