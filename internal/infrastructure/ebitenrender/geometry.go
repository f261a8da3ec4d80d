package ebitenrender

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/framecore/internal/render"
)

// maxBatchVertices keeps one DrawTriangles call within uint16 indices.
const maxBatchVertices = 1 << 16

// triangles accumulates projected geometry for one DrawTriangles call.
type triangles struct {
	vertices []ebiten.Vertex
	indices  []uint16
}

func (t *triangles) reset() {
	t.vertices = t.vertices[:0]
	t.indices = t.indices[:0]
}

// meshDiagnostic reports why a mesh cannot be drawn. A mesh is drawable
// when it exists, its indices address its vertices and it fits one batch.
func meshDiagnostic(id render.MeshID, mesh render.Mesh, found bool) (render.Diagnostic, bool) {
	d := render.Diagnostic{Source: Name, Kind: render.DiagUnknownMesh, ID: string(id)}
	switch {
	case !found:
		return d, false
	case !mesh.Valid():
		d.Detail = "index out of range"
		return d, false
	case len(mesh.Vertices) > maxBatchVertices:
		d.Detail = "too many vertices"
		return d, false
	}
	return render.Diagnostic{}, true
}

// fits reports whether n more vertices still fit in the batch.
func (t *triangles) fits(n int) bool {
	return len(t.vertices)+n <= maxBatchVertices
}

// add projects mesh through mvp into target pixels and appends it with a
// flat color. Source coordinates point at the center of the white pixel.
func (t *triangles) add(mesh render.Mesh, mvp mgl32.Mat4, w, h int, c color.RGBA) {
	base := uint16(len(t.vertices))
	r, g, b, a := float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255
	for _, v := range mesh.Vertices {
		x, y := render.Project(mvp, v, w, h)
		t.vertices = append(t.vertices, ebiten.Vertex{
			DstX: x, DstY: y,
			SrcX: 1, SrcY: 1,
			ColorR: r, ColorG: g, ColorB: b, ColorA: a,
		})
	}
	for _, i := range mesh.Indices {
		t.indices = append(t.indices, base+i)
	}
}
