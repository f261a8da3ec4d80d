// Package ebitenhost runs the game loop inside ebiten. It implements
// ebiten.Game, turns keyboard and window changes into input events, ticks
// the loop once per ebiten update and shows the backend's last frame.
package ebitenhost

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/framecore/internal/application/game"
	"github.com/younwookim/framecore/internal/application/input"
)

// ErrNoLoop is returned by Update when Attach was never called.
var ErrNoLoop = errors.New("ebitenhost: no loop attached")

// Framer exposes the image to show on screen.
type Framer interface {
	Frame() *ebiten.Image
}

// Host adapts a game.Loop to ebiten.Game. It is also the loop's event
// source and window.
type Host struct {
	ctx    context.Context
	loop   *game.Loop
	frames Framer
	logger *slog.Logger

	scale         int
	width, height int

	keys  []ebiten.Key
	queue []input.Event
}

var (
	_ ebiten.Game  = (*Host)(nil)
	_ input.Source = (*Host)(nil)
	_ game.Window  = (*Host)(nil)
)

// New creates a host for a width by height logical screen shown at scale.
func New(frames Framer, width, height, scale int, logger *slog.Logger) *Host {
	if logger == nil {
		logger = slog.Default()
	}
	return &Host{
		frames: frames,
		logger: logger,
		scale:  max(1, scale),
		width:  width,
		height: height,
	}
}

// Attach sets the loop ticked by Update. Cancelling ctx stops the loop at
// the next update.
func (h *Host) Attach(ctx context.Context, l *game.Loop) {
	h.ctx = ctx
	h.loop = l
}

// Size implements game.Window.
func (h *Host) Size() (int, int) { return h.width, h.height }

// Poll implements input.Source.
func (h *Host) Poll(dst []input.Event) []input.Event {
	dst = append(dst, h.queue...)
	h.queue = h.queue[:0]
	return dst
}

func (h *Host) push(e input.Event) { h.queue = append(h.queue, e) }

// collect queues key transitions since the previous update and a Quit when
// the window is closing.
func (h *Host) collect() {
	h.keys = inpututil.AppendJustPressedKeys(h.keys[:0])
	for _, k := range h.keys {
		h.push(input.Press(k))
	}
	h.keys = inpututil.AppendJustReleasedKeys(h.keys[:0])
	for _, k := range h.keys {
		h.push(input.Release(k))
	}
	if ebiten.IsWindowBeingClosed() {
		h.push(input.Event{Kind: input.Quit})
	}
}

// Update implements ebiten.Game. It returns ebiten.Termination once the
// loop has ended cleanly.
func (h *Host) Update() error {
	if h.loop == nil {
		return ErrNoLoop
	}
	if h.ctx != nil && h.ctx.Err() != nil {
		h.loop.Stop()
	} else {
		h.collect()
	}
	more, err := h.loop.Tick()
	if err != nil {
		return err
	}
	if !more {
		h.logger.Info("loop ended, terminating host")
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	if f := h.frames.Frame(); f != nil {
		screen.DrawImage(f, nil)
	}
}

// Layout implements ebiten.Game. A window size change becomes a Resize
// event for the next loop iteration.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := max(1, outsideWidth/h.scale)
	hh := max(1, outsideHeight/h.scale)
	if w != h.width || hh != h.height {
		h.width, h.height = w, hh
		h.push(input.Event{Kind: input.Resize, Width: w, Height: hh})
	}
	return h.width, h.height
}
