// Package soft implements render.Backend as a CPU rasterizer into an
// image.RGBA. It produces real pixels without a GPU, which makes it the
// reference backend for headless screenshots and backend contract tests.
package soft

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"

	"github.com/younwookim/framecore/internal/render"
)

// Name is the backend identifier.
const Name = "soft"

// Kernel is a post-effect program operating on the whole target in place.
type Kernel func(img *image.RGBA, params []float32)

// program is a kernel and the number of params it reads.
type program struct {
	kernel Kernel
	params int
}

// Option configures a Backend.
type Option func(*Backend)

// WithDiagnostics sets the diagnostic sink.
func WithDiagnostics(d render.Diagnostics) Option {
	return func(b *Backend) { b.diag = d }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Backend) { b.logger = l }
}

// WithClearColor sets the color BeginFrame fills the target with.
func WithClearColor(c color.RGBA) Option {
	return func(b *Backend) { b.clear = c }
}

// WithKernel registers a post-effect program for id that reads the first
// params values of each item's parameters.
func WithKernel(id render.EffectID, params int, k Kernel) Option {
	return func(b *Backend) { b.kernels[id] = program{kernel: k, params: params} }
}

// Backend rasterizes command buffers on the CPU.
type Backend struct {
	lib     *render.Library
	diag    render.Diagnostics
	logger  *slog.Logger
	clear   color.RGBA
	kernels map[render.EffectID]program

	back, front *image.RGBA
	initialized bool
	inFrame     bool
}

var _ render.Backend = (*Backend)(nil)

// New creates a software backend resolving ids against lib.
// The "dim" and "tint" kernels are registered by default.
func New(lib *render.Library, opts ...Option) *Backend {
	b := &Backend{
		lib:    lib,
		diag:   render.Discard,
		logger: slog.Default(),
		clear:  color.RGBA{A: 255},
		kernels: map[render.EffectID]program{
			EffectDim:  {kernel: Dim, params: 1},
			EffectTint: {kernel: Tint, params: 3},
		},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name implements render.Backend.
func (b *Backend) Name() string { return Name }

// Init allocates the back and front images. Every effect declared in the
// library must have a kernel reading no more params than declared; anything
// else is fatal.
func (b *Backend) Init(width, height int) error {
	if err := render.CheckSize(width, height); err != nil {
		return err
	}
	for _, spec := range b.lib.Effects() {
		prog, ok := b.kernels[spec.ID]
		if !ok {
			return fmt.Errorf("%w: no program for effect %q", render.ErrShaderCompile, spec.ID)
		}
		if spec.Params < prog.params {
			return fmt.Errorf("%w: effect %q declares %d params, program reads %d",
				render.ErrShaderCompile, spec.ID, spec.Params, prog.params)
		}
	}
	b.allocate(width, height)
	b.initialized = true
	b.logger.Debug("backend initialized", "backend", Name, "width", width, "height", height)
	return nil
}

func (b *Backend) allocate(width, height int) {
	r := image.Rect(0, 0, width, height)
	b.back = image.NewRGBA(r)
	b.front = image.NewRGBA(r)
}

// BeginFrame fills the back image with the clear color.
func (b *Backend) BeginFrame() error {
	if !b.initialized {
		return render.ErrNotInitialized
	}
	draw.Draw(b.back, b.back.Bounds(), &image.Uniform{C: b.clear}, image.Point{}, draw.Src)
	b.inFrame = true
	return nil
}

// Submit rasterizes draw items batch by batch, then UI items, then runs
// enabled post effects over the result. Unknown ids are reported and
// skipped.
func (b *Backend) Submit(cb *render.CommandBuffer) error {
	if !b.initialized {
		return render.ErrNotInitialized
	}
	if !b.inFrame {
		return render.ErrFrameNotBegun
	}

	w, h := b.back.Bounds().Dx(), b.back.Bounds().Dy()
	cam, ok := cb.Camera()
	if !ok {
		cam = render.OrthoCamera(0, 0, float32(w), float32(h))
	}
	vp := cam.ViewProjection()

	for _, batch := range render.Batches(cb.OrderedDrawItems()) {
		b.drawBatch(batch, vp, w, h)
	}
	for _, item := range cb.OrderedUIItems() {
		b.drawUI(item)
	}
	for _, fx := range cb.PostEffects() {
		if !fx.Enabled {
			continue
		}
		if d, ok := b.lib.CheckEffect(Name, fx); !ok {
			b.diag.Report(d)
			continue
		}
		prog, ok := b.kernels[fx.Effect]
		if !ok {
			b.diag.Report(render.Diagnostic{Source: Name, Kind: render.DiagUnknownEffect, ID: string(fx.Effect)})
			continue
		}
		prog.kernel(b.back, fx.Params)
	}
	return nil
}

func (b *Backend) drawBatch(batch render.Batch, vp mgl32.Mat4, w, h int) {
	mesh, ok := b.lib.Mesh(batch.Mesh)
	if !ok || !mesh.Valid() {
		d := render.Diagnostic{Source: Name, Kind: render.DiagUnknownMesh, ID: string(batch.Mesh)}
		if ok {
			d.Detail = "index out of range"
		}
		for range batch.Items {
			b.diag.Report(d)
		}
		return
	}
	mat, ok := b.lib.Material(batch.Material)
	if !ok {
		for range batch.Items {
			b.diag.Report(render.Diagnostic{Source: Name, Kind: render.DiagUnknownMaterial, ID: string(batch.Material)})
		}
		return
	}

	pts := make([][2]float32, len(mesh.Vertices))
	for _, item := range batch.Items {
		mvp := vp.Mul4(item.Model)
		for i, v := range mesh.Vertices {
			x, y := render.Project(mvp, v, w, h)
			pts[i] = [2]float32{x, y}
		}
		for i := 0; i+2 < len(mesh.Indices); i += 3 {
			fillTriangle(b.back, pts[mesh.Indices[i]], pts[mesh.Indices[i+1]], pts[mesh.Indices[i+2]], mat.Color)
		}
	}
}

func (b *Backend) drawUI(item render.UIItem) {
	dr := image.Rect(
		int(math.Round(float64(item.X))),
		int(math.Round(float64(item.Y))),
		int(math.Round(float64(item.X+item.W))),
		int(math.Round(float64(item.Y+item.H))),
	)
	if item.Texture == "" {
		draw.Draw(b.back, dr, &image.Uniform{C: item.Color}, image.Point{}, draw.Over)
		return
	}
	tex, ok := b.lib.Texture(item.Texture)
	if !ok {
		b.diag.Report(render.Diagnostic{Source: Name, Kind: render.DiagUnknownTexture, ID: string(item.Texture)})
		return
	}
	draw.ApproxBiLinear.Scale(b.back, dr, tex, tex.Bounds(), draw.Over, nil)
}

// Present swaps the back and front images.
func (b *Backend) Present() error {
	if !b.initialized {
		return render.ErrNotInitialized
	}
	if !b.inFrame {
		return render.ErrFrameNotBegun
	}
	b.back, b.front = b.front, b.back
	b.inFrame = false
	return nil
}

// Resize reallocates both images and abandons any frame in progress.
func (b *Backend) Resize(width, height int) error {
	if !b.initialized {
		return render.ErrNotInitialized
	}
	if err := render.CheckSize(width, height); err != nil {
		return err
	}
	b.allocate(width, height)
	b.inFrame = false
	return nil
}

// Shutdown releases the images. It is safe to call twice.
func (b *Backend) Shutdown() {
	if !b.initialized {
		return
	}
	b.back, b.front = nil, nil
	b.initialized = false
	b.inFrame = false
	b.logger.Debug("backend shut down", "backend", Name)
}

// IsInitialized implements render.Backend.
func (b *Backend) IsInitialized() bool { return b.initialized }

// Frame returns the most recently presented image, or nil before the
// first Present.
func (b *Backend) Frame() *image.RGBA {
	return b.front
}

// fillTriangle rasterizes a flat-colored triangle using edge functions over
// its bounding box. Pixel centers are sampled at +0.5.
func fillTriangle(img *image.RGBA, p0, p1, p2 [2]float32, c color.RGBA) {
	area := edge(p0, p1, p2)
	if area == 0 {
		return
	}
	bounds := img.Bounds()
	minX := max(bounds.Min.X, int(math.Floor(float64(min(p0[0], p1[0], p2[0])))))
	maxX := min(bounds.Max.X-1, int(math.Ceil(float64(max(p0[0], p1[0], p2[0])))))
	minY := max(bounds.Min.Y, int(math.Floor(float64(min(p0[1], p1[1], p2[1])))))
	maxY := min(bounds.Max.Y-1, int(math.Ceil(float64(max(p0[1], p1[1], p2[1])))))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := [2]float32{float32(x) + 0.5, float32(y) + 0.5}
			w0 := edge(p1, p2, p)
			w1 := edge(p2, p0, p)
			w2 := edge(p0, p1, p)
			if area < 0 {
				w0, w1, w2 = -w0, -w1, -w2
			}
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				blend(img, x, y, c)
			}
		}
	}
}

func edge(a, b, p [2]float32) float32 {
	return (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
}

// blend composites c over the pixel at (x, y).
func blend(img *image.RGBA, x, y int, c color.RGBA) {
	if c.A == 255 {
		img.SetRGBA(x, y, c)
		return
	}
	dst := img.RGBAAt(x, y)
	a := uint32(c.A)
	inv := 255 - a
	img.SetRGBA(x, y, color.RGBA{
		R: uint8((uint32(c.R)*a + uint32(dst.R)*inv) / 255),
		G: uint8((uint32(c.G)*a + uint32(dst.G)*inv) / 255),
		B: uint8((uint32(c.B)*a + uint32(dst.B)*inv) / 255),
		A: uint8(min(255, uint32(dst.A)+a)),
	})
}
