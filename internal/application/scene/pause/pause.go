// Package pause provides the overlay pushed over gameplay. It freezes the
// scenes below it and dims the frame.
package pause

import (
	"image/color"

	"github.com/younwookim/framecore/internal/application/input"
	"github.com/younwookim/framecore/internal/application/scene"
	"github.com/younwookim/framecore/internal/render"
)

// Name is the scene's registry name.
const Name = "pause"

// DimFactor is the brightness kept under the overlay.
const DimFactor = 0.5

var colorPanel = color.RGBA{40, 40, 60, 220}

// Pause pops itself on Pause or Confirm.
type Pause struct {
	scene.Base

	bindings *input.Bindings
	width    int
	height   int
}

// New creates the overlay. width and height size the panel when no scene
// below has set a render target.
func New(bindings *input.Bindings, width, height int) *Pause {
	if bindings == nil {
		bindings = input.DefaultBindings()
	}
	return &Pause{
		Base:     scene.Base{SceneName: Name, Pauses: true},
		bindings: bindings,
		width:    width,
		height:   height,
	}
}

// HandleEvent resumes on Pause or Confirm (implements scene.Scene).
func (p *Pause) HandleEvent(e input.Event) {
	if e.Kind == input.Resize && e.Width > 0 && e.Height > 0 {
		p.width, p.height = e.Width, e.Height
		return
	}
	switch p.bindings.Resolve(e) {
	case input.Pause, input.Confirm:
		p.Nav.Pop()
	}
}

// Render dims the frame and draws the panel (implements scene.Scene).
func (p *Pause) Render(cb *render.CommandBuffer, _ float64) {
	t := cb.TargetOr(p.width, p.height)
	w, h := float32(t.Width), float32(t.Height)

	cb.AddPostEffect(render.PostEffect{Effect: render.EffectDim, Params: []float32{DimFactor}, Enabled: true})
	cb.AddUIItem(render.UIItem{X: w / 4, Y: h / 3, W: w / 2, H: h / 3, Color: colorPanel, Layer: 10})
}
