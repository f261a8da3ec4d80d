// Package menu provides the title scene shown before play starts.
package menu

import (
	"image/color"
	"log/slog"

	"github.com/younwookim/framecore/internal/application/input"
	"github.com/younwookim/framecore/internal/application/scene"
	"github.com/younwookim/framecore/internal/render"
)

// Name is the scene's registry name.
const Name = "menu"

// blinkPeriod is the prompt's on/off cycle in seconds.
const blinkPeriod = 1.0

var (
	colorBackdrop = color.RGBA{16, 16, 28, 255}
	colorTitle    = color.RGBA{100, 200, 100, 255}
	colorPrompt   = color.RGBA{220, 220, 220, 255}
)

// Menu waits for Confirm or Jump and then switches to Next.
type Menu struct {
	scene.Base

	// Next is the scene started on confirm.
	Next string

	bindings *input.Bindings
	logger   *slog.Logger
	elapsed  float64
	width    int
	height   int
}

// New creates a menu of the given surface size.
func New(bindings *input.Bindings, width, height int, logger *slog.Logger) *Menu {
	if bindings == nil {
		bindings = input.DefaultBindings()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Menu{
		Base:     scene.Base{SceneName: Name},
		Next:     "playing",
		bindings: bindings,
		logger:   logger,
		width:    width,
		height:   height,
	}
}

// OnActivate restarts the prompt blink (implements scene.Scene)
func (m *Menu) OnActivate() {
	m.elapsed = 0
}

// HandleEvent starts the game on Confirm or Jump (implements scene.Scene)
func (m *Menu) HandleEvent(e input.Event) {
	if e.Kind == input.Resize && e.Width > 0 && e.Height > 0 {
		m.width, m.height = e.Width, e.Height
		return
	}
	switch m.bindings.Resolve(e) {
	case input.Confirm, input.Jump:
		if err := m.Nav.SwitchNamed(m.Next); err != nil {
			m.logger.Error("start failed", "scene", m.Next, "error", err)
		}
	}
}

// Update advances the blink timer (implements scene.Scene)
func (m *Menu) Update(dt float64) error {
	m.elapsed += dt
	return nil
}

// PromptVisible reports whether the blinking prompt is lit.
func (m *Menu) PromptVisible() bool {
	phase := m.elapsed - float64(int(m.elapsed/blinkPeriod))*blinkPeriod
	return phase < blinkPeriod/2
}

// Render draws the title and prompt (implements scene.Scene)
func (m *Menu) Render(cb *render.CommandBuffer, _ float64) {
	t := cb.TargetOr(m.width, m.height)
	if _, ok := cb.RenderTarget(); !ok {
		cb.SetRenderTarget(t)
	}
	w, h := float32(t.Width), float32(t.Height)

	cb.AddUIItem(render.UIItem{W: w, H: h, Color: colorBackdrop})
	cb.AddUIItem(render.UIItem{X: w / 4, Y: h / 4, W: w / 2, H: h / 8, Color: colorTitle, Layer: 1})
	if m.PromptVisible() {
		cb.AddUIItem(render.UIItem{X: w * 3 / 8, Y: h * 5 / 8, W: w / 4, H: h / 24, Color: colorPrompt, Layer: 1})
	}
}
