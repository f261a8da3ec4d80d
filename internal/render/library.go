package render

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// MeshQuad is the built-in unit quad spanning (0,0)-(1,1).
const MeshQuad MeshID = "quad"

// Post effects every backend ships a program for.
const (
	EffectDim  EffectID = "dim"  // params: factor
	EffectTint EffectID = "tint" // params: r, g, b
)

// Mesh is an indexed triangle list in model space.
type Mesh struct {
	Vertices []mgl32.Vec3
	Indices  []uint16
}

// Triangles returns the number of triangles in the mesh.
func (m Mesh) Triangles() int {
	return len(m.Indices) / 3
}

// Valid reports whether every index addresses a vertex.
func (m Mesh) Valid() bool {
	for _, i := range m.Indices {
		if int(i) >= len(m.Vertices) {
			return false
		}
	}
	return true
}

// Material is a flat-shaded surface description.
type Material struct {
	Color   color.RGBA
	Texture TextureID
}

// EffectSpec declares a post effect and the number of parameters its
// program reads.
type EffectSpec struct {
	ID     EffectID
	Params int
}

// Library holds the resources draw/UI/post items may reference by id.
// Backends resolve ids against it during Submit.
type Library struct {
	meshes    map[MeshID]Mesh
	materials map[MaterialID]Material
	textures  map[TextureID]image.Image
	effects   map[EffectID]EffectSpec
}

// NewLibrary creates a library preloaded with MeshQuad.
func NewLibrary() *Library {
	l := &Library{
		meshes:    make(map[MeshID]Mesh),
		materials: make(map[MaterialID]Material),
		textures:  make(map[TextureID]image.Image),
		effects:   make(map[EffectID]EffectSpec),
	}
	l.RegisterMesh(MeshQuad, QuadMesh())
	return l
}

// QuadMesh returns a unit quad made of two triangles.
func QuadMesh() Mesh {
	return Mesh{
		Vertices: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		Indices:  []uint16{0, 1, 2, 0, 2, 3},
	}
}

// RegisterMesh adds or replaces a mesh.
func (l *Library) RegisterMesh(id MeshID, m Mesh) { l.meshes[id] = m }

// RegisterMaterial adds or replaces a material.
func (l *Library) RegisterMaterial(id MaterialID, m Material) { l.materials[id] = m }

// RegisterTexture adds or replaces a texture.
func (l *Library) RegisterTexture(id TextureID, img image.Image) { l.textures[id] = img }

// RegisterEffect adds or replaces an effect declaration.
func (l *Library) RegisterEffect(spec EffectSpec) { l.effects[spec.ID] = spec }

// Mesh looks up a mesh.
func (l *Library) Mesh(id MeshID) (Mesh, bool) {
	m, ok := l.meshes[id]
	return m, ok
}

// Material looks up a material.
func (l *Library) Material(id MaterialID) (Material, bool) {
	m, ok := l.materials[id]
	return m, ok
}

// Texture looks up a texture.
func (l *Library) Texture(id TextureID) (image.Image, bool) {
	t, ok := l.textures[id]
	return t, ok
}

// Effect looks up an effect declaration.
func (l *Library) Effect(id EffectID) (EffectSpec, bool) {
	e, ok := l.effects[id]
	return e, ok
}

// Effects returns every declared effect.
func (l *Library) Effects() []EffectSpec {
	out := make([]EffectSpec, 0, len(l.effects))
	for _, e := range l.effects {
		out = append(out, e)
	}
	return out
}

// CheckEffect validates a post effect against its declaration.
// It returns the diagnostic to report and false when the pass must be
// skipped.
func (l *Library) CheckEffect(source string, fx PostEffect) (Diagnostic, bool) {
	spec, ok := l.effects[fx.Effect]
	if !ok {
		return Diagnostic{Source: source, Kind: DiagUnknownEffect, ID: string(fx.Effect)}, false
	}
	if len(fx.Params) < spec.Params {
		return Diagnostic{
			Source: source,
			Kind:   DiagMissingUniform,
			ID:     string(fx.Effect),
			Detail: "not enough parameters",
		}, false
	}
	return Diagnostic{}, true
}
