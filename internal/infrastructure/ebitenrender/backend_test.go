package ebitenrender

import (
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/framecore/internal/render"
)

// These tests stay off the GPU: ebiten images need a running game.

func TestBackend_FrameBeforeInitFails(t *testing.T) {
	b := New(render.NewLibrary())

	assert.ErrorIs(t, b.BeginFrame(), render.ErrNotInitialized)
	assert.ErrorIs(t, b.Submit(render.NewCommandBuffer()), render.ErrNotInitialized)
	assert.ErrorIs(t, b.Present(), render.ErrNotInitialized)
	assert.ErrorIs(t, b.Resize(10, 10), render.ErrNotInitialized)
	assert.Nil(t, b.Frame())
	b.Shutdown()
}

func TestBackend_InitRejectsInvalidSize(t *testing.T) {
	b := New(render.NewLibrary())
	assert.ErrorIs(t, b.Init(320, 0), render.ErrInvalidSize)
	assert.False(t, b.IsInitialized())
}

func TestBackend_EffectWithoutProgramIsFatal(t *testing.T) {
	lib := render.NewLibrary()
	lib.RegisterEffect(render.EffectSpec{ID: "bloom", Params: 2})

	b := New(lib)
	err := b.Init(320, 240)

	assert.ErrorIs(t, err, render.ErrShaderCompile)
	assert.ErrorContains(t, err, "bloom")
	assert.False(t, b.IsInitialized())
}

func TestBuiltinPrograms(t *testing.T) {
	progs := builtinPrograms()
	require.Contains(t, progs, render.EffectDim)
	require.Contains(t, progs, render.EffectTint)

	assert.Equal(t, map[string]any{"Factor": float32(0.5)}, progs[render.EffectDim].uniforms([]float32{0.5}))
	assert.Equal(t, map[string]any{"Tint": []float32{1, 0.5, 0}}, progs[render.EffectTint].uniforms([]float32{1, 0.5, 0}))
}

func TestBackend_UnderdeclaredEffectIsFatal(t *testing.T) {
	lib := render.NewLibrary()
	lib.RegisterEffect(render.EffectSpec{ID: render.EffectTint, Params: 1})

	b := New(lib)
	err := b.Init(320, 240)

	assert.ErrorIs(t, err, render.ErrShaderCompile)
	assert.ErrorContains(t, err, "program reads 3")
	assert.False(t, b.IsInitialized())
}

func TestWithShader_AddsProgram(t *testing.T) {
	b := New(render.NewLibrary(), WithShader("bloom", []byte("package main"), 2, nil))
	require.Contains(t, b.programs, render.EffectID("bloom"))
	assert.Contains(t, b.programs, render.EffectDim, "built-ins are kept")

	prog := b.programs["bloom"]
	assert.Equal(t, 2, prog.params)
	require.NotNil(t, prog.uniforms)
	assert.Nil(t, prog.uniforms([]float32{1, 2}), "no mapper means no uniforms")
}

func TestMeshDiagnostic(t *testing.T) {
	_, ok := meshDiagnostic(render.MeshQuad, render.QuadMesh(), true)
	assert.True(t, ok)

	d, ok := meshDiagnostic("gone", render.Mesh{}, false)
	assert.False(t, ok)
	assert.Equal(t, render.Diagnostic{Source: Name, Kind: render.DiagUnknownMesh, ID: "gone"}, d)

	d, ok = meshDiagnostic("broken", render.Mesh{Vertices: make([]mgl32.Vec3, 2), Indices: []uint16{0, 1, 2}}, true)
	assert.False(t, ok)
	assert.Equal(t, "index out of range", d.Detail)

	d, ok = meshDiagnostic("huge", render.Mesh{Vertices: make([]mgl32.Vec3, maxBatchVertices+1)}, true)
	assert.False(t, ok)
	assert.Equal(t, "too many vertices", d.Detail)
}

func TestTriangles_ProjectsQuad(t *testing.T) {
	var tris triangles
	cam := render.OrthoCamera(0, 0, 100, 100)
	model := mgl32.Translate3D(10, 20, 0).Mul4(mgl32.Scale3D(30, 40, 1))

	tris.add(render.QuadMesh(), cam.ViewProjection().Mul4(model), 100, 100, color.RGBA{255, 0, 0, 255})
	tris.add(render.QuadMesh(), cam.ViewProjection().Mul4(model), 100, 100, color.RGBA{255, 0, 0, 255})

	require.Len(t, tris.vertices, 8)
	assert.Equal(t, []uint16{0, 1, 2, 0, 2, 3, 4, 5, 6, 4, 6, 7}, tris.indices)

	v := tris.vertices[2]
	assert.InDelta(t, 40, v.DstX, 1e-4)
	assert.InDelta(t, 60, v.DstY, 1e-4)
	assert.Equal(t, float32(1), v.ColorR)
	assert.Equal(t, float32(0), v.ColorG)

	tris.reset()
	assert.Empty(t, tris.vertices)
	assert.True(t, tris.fits(maxBatchVertices))
	assert.False(t, tris.fits(maxBatchVertices+1))
}
