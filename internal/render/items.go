// Package render defines the backend-agnostic description of a frame
// (CommandBuffer and its items) and the Backend contract that turns it
// into pixels.
package render

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// MeshID names a mesh registered in a Library.
type MeshID string

// MaterialID names a material registered in a Library.
type MaterialID string

// TextureID names a texture registered in a Library.
type TextureID string

// EffectID names a post-processing pass.
type EffectID string

// DrawItem is one renderable instance.
// Items are grouped by Layer; lower layers are drawn first.
type DrawItem struct {
	Model    mgl32.Mat4
	Material MaterialID
	Mesh     MeshID
	Layer    int
	Depth    float32 // hint only, never used for ordering across layers
}

// UIItem is one 2D overlay element in target pixel coordinates.
// An empty Texture draws a solid rectangle in Color.
type UIItem struct {
	X, Y    float32
	W, H    float32
	Texture TextureID
	Color   color.RGBA
	Layer   int
}

// PostEffect is a named full-target pass applied after UI.
type PostEffect struct {
	Effect  EffectID
	Params  []float32
	Enabled bool
}

// CameraParams is the view/projection state for one frame.
type CameraParams struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Position   mgl32.Vec3
	Forward    mgl32.Vec3
	Up         mgl32.Vec3
	Near, Far  float32
	FOV        float32 // degrees; zero for orthographic cameras
}

// ViewProjection returns Projection * View.
func (c CameraParams) ViewProjection() mgl32.Mat4 {
	return c.Projection.Mul4(c.View)
}

// OrthoCamera builds a y-down pixel-space camera whose top-left corner
// sits at (x, y) and covers w by h pixels.
func OrthoCamera(x, y, w, h float32) CameraParams {
	return CameraParams{
		View:       mgl32.Translate3D(-x, -y, 0),
		Projection: mgl32.Ortho2D(0, w, h, 0),
		Position:   mgl32.Vec3{x, y, 0},
		Forward:    mgl32.Vec3{0, 0, -1},
		Up:         mgl32.Vec3{0, -1, 0},
		Near:       -1,
		Far:        1,
	}
}

// PerspectiveCamera builds a camera at eye looking at center.
func PerspectiveCamera(eye, center, up mgl32.Vec3, fovDeg, aspect, near, far float32) CameraParams {
	return CameraParams{
		View:       mgl32.LookAtV(eye, center, up),
		Projection: mgl32.Perspective(mgl32.DegToRad(fovDeg), aspect, near, far),
		Position:   eye,
		Forward:    center.Sub(eye).Normalize(),
		Up:         up,
		Near:       near,
		Far:        far,
		FOV:        fovDeg,
	}
}

// RenderTarget describes the destination surface of a frame.
type RenderTarget struct {
	Width, Height int
	ID            string
	Backbuffer    bool
}

// Backbuffer returns the descriptor of the full visible surface.
func Backbuffer(width, height int) RenderTarget {
	return RenderTarget{Width: width, Height: height, ID: "backbuffer", Backbuffer: true}
}

// Project maps a model-space point through mvp into target pixel
// coordinates (origin top-left, y down).
func Project(mvp mgl32.Mat4, p mgl32.Vec3, width, height int) (x, y float32) {
	clip := mvp.Mul4x1(p.Vec4(1))
	ndc := clip.Vec3()
	if w := clip.W(); w != 0 {
		ndc = ndc.Mul(1 / w)
	}
	x = (ndc.X() + 1) * 0.5 * float32(width)
	y = (1 - ndc.Y()) * 0.5 * float32(height)
	return x, y
}
