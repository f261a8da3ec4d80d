package soft

import (
	"image"

	"github.com/younwookim/framecore/internal/render"
)

// Built-in effect ids.
const (
	EffectDim  = render.EffectDim
	EffectTint = render.EffectTint
)

// Dim scales RGB by params[0].
func Dim(img *image.RGBA, params []float32) {
	f := clamp01(params[0])
	pix := img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i] = uint8(float32(pix[i]) * f)
		pix[i+1] = uint8(float32(pix[i+1]) * f)
		pix[i+2] = uint8(float32(pix[i+2]) * f)
	}
}

// Tint multiplies RGB by params[0..2].
func Tint(img *image.RGBA, params []float32) {
	r, g, b := clamp01(params[0]), clamp01(params[1]), clamp01(params[2])
	pix := img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i] = uint8(float32(pix[i]) * r)
		pix[i+1] = uint8(float32(pix[i+1]) * g)
		pix[i+2] = uint8(float32(pix[i+2]) * b)
	}
}

func clamp01(v float32) float32 {
	return min(max(v, 0), 1)
}
