package ebitenrender

import (
	"github.com/younwookim/framecore/internal/render"
)

// program is a Kage post-effect, the number of item params it reads and
// the mapping from those params to its uniforms.
type program struct {
	src      []byte
	params   int
	uniforms func(params []float32) map[string]any
}

func noUniforms([]float32) map[string]any { return nil }

const dimSrc = `//kage:unit pixels
package main

var Factor float

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	c := imageSrc0At(srcPos)
	return vec4(c.rgb*clamp(Factor, 0, 1), c.a)
}
`

const tintSrc = `//kage:unit pixels
package main

var Tint vec3

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	c := imageSrc0At(srcPos)
	return vec4(c.rgb*clamp(Tint, 0, 1), c.a)
}
`

// builtinPrograms returns the effects every Backend can run.
func builtinPrograms() map[render.EffectID]program {
	return map[render.EffectID]program{
		render.EffectDim: {
			src:      []byte(dimSrc),
			params:   1,
			uniforms: func(p []float32) map[string]any {
				return map[string]any{"Factor": p[0]}
			},
		},
		render.EffectTint: {
			src:      []byte(tintSrc),
			params:   3,
			uniforms: func(p []float32) map[string]any {
				return map[string]any{"Tint": []float32{p[0], p[1], p[2]}}
			},
		},
	}
}
