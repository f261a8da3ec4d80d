// Package ebitenrender implements render.Backend on top of ebiten. Frames are
// rendered into an offscreen image during the loop's update and shown by the
// host's Draw through Frame.
package ebitenrender

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/younwookim/framecore/internal/render"
)

// Name is the backend identifier.
const Name = "ebiten"

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

// WithShader registers Kage source for an effect reading params item
// parameters. uniforms maps them to the shader's uniform variables; nil
// means the shader has none.
func WithShader(id render.EffectID, src []byte, params int, uniforms func([]float32) map[string]any) Option {
	if uniforms == nil {
		uniforms = noUniforms
	}
	return func(b *Backend) { b.programs[id] = program{src: src, params: params, uniforms: uniforms} }
}

// Backend draws command buffers with ebiten.
type Backend struct {
	lib      *render.Library
	diag     render.Diagnostics
	logger   *slog.Logger
	clear    color.RGBA
	programs map[render.EffectID]program

	shaders  map[render.EffectID]*ebiten.Shader
	textures map[render.TextureID]*ebiten.Image
	white    *ebiten.Image

	back, front, scratch *ebiten.Image
	tris                 triangles

	initialized bool
	inFrame     bool
}

var _ render.Backend = (*Backend)(nil)

// New creates an ebiten backend resolving ids against lib.
func New(lib *render.Library, opts ...Option) *Backend {
	b := &Backend{
		lib:      lib,
		diag:     render.Discard,
		logger:   slog.Default(),
		clear:    color.RGBA{A: 255},
		programs: builtinPrograms(),
		textures: make(map[render.TextureID]*ebiten.Image),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Backend) Name() string { return Name }

// Init compiles a shader for every effect declared in the library and
// allocates the frame images. Any compile failure is fatal.
func (b *Backend) Init(width, height int) error {
	if err := render.CheckSize(width, height); err != nil {
		return err
	}

	shaders := make(map[render.EffectID]*ebiten.Shader)
	for _, spec := range b.lib.Effects() {
		prog, ok := b.programs[spec.ID]
		if !ok {
			deallocate(shaders)
			return fmt.Errorf("%w: no program for effect %q", render.ErrShaderCompile, spec.ID)
		}
		if spec.Params < prog.params {
			deallocate(shaders)
			return fmt.Errorf("%w: effect %q declares %d params, program reads %d",
				render.ErrShaderCompile, spec.ID, spec.Params, prog.params)
		}
		s, err := ebiten.NewShader(prog.src)
		if err != nil {
			deallocate(shaders)
			return fmt.Errorf("%w: effect %q: %v", render.ErrShaderCompile, spec.ID, err)
		}
		shaders[spec.ID] = s
	}
	b.shaders = shaders

	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	b.white = white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)

	b.allocate(width, height)
	b.initialized = true
	b.logger.Info("backend initialized", "backend", Name, "width", width, "height", height, "shaders", len(shaders))
	return nil
}

func deallocate(shaders map[render.EffectID]*ebiten.Shader) {
	for _, s := range shaders {
		s.Deallocate()
	}
}

func (b *Backend) allocate(width, height int) {
	for _, img := range []*ebiten.Image{b.back, b.front, b.scratch} {
		if img != nil {
			img.Deallocate()
		}
	}
	b.back = ebiten.NewImage(width, height)
	b.front = ebiten.NewImage(width, height)
	b.scratch = ebiten.NewImage(width, height)
}

func (b *Backend) BeginFrame() error {
	if !b.initialized {
		return render.ErrNotInitialized
	}
	b.back.Fill(b.clear)
	b.inFrame = true
	return nil
}

func (b *Backend) Submit(cb *render.CommandBuffer) error {
	if !b.initialized {
		return render.ErrNotInitialized
	}
	if !b.inFrame {
		return render.ErrFrameNotBegun
	}

	bounds := b.back.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
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
		if fx.Enabled {
			b.applyEffect(fx, w, h)
		}
	}
	return nil
}

// drawBatch issues one DrawTriangles call per batch, splitting only when the
// vertex count would overflow uint16 indices.
func (b *Backend) drawBatch(batch render.Batch, vp mgl32.Mat4, w, h int) {
	mesh, ok := b.lib.Mesh(batch.Mesh)
	if d, drawable := meshDiagnostic(batch.Mesh, mesh, ok); !drawable {
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

	b.tris.reset()
	for _, item := range batch.Items {
		if !b.tris.fits(len(mesh.Vertices)) {
			b.flush()
		}
		b.tris.add(mesh, vp.Mul4(item.Model), w, h, mat.Color)
	}
	b.flush()
}

func (b *Backend) flush() {
	if len(b.tris.indices) == 0 {
		return
	}
	b.back.DrawTriangles(b.tris.vertices, b.tris.indices, b.white, &ebiten.DrawTrianglesOptions{AntiAlias: false})
	b.tris.reset()
}

func (b *Backend) drawUI(item render.UIItem) {
	if item.Texture == "" {
		vector.DrawFilledRect(b.back, item.X, item.Y, item.W, item.H, item.Color, false)
		return
	}
	tex, ok := b.texture(item.Texture)
	if !ok {
		b.diag.Report(render.Diagnostic{Source: Name, Kind: render.DiagUnknownTexture, ID: string(item.Texture)})
		return
	}
	sw, sh := tex.Bounds().Dx(), tex.Bounds().Dy()
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Scale(float64(item.W)/float64(sw), float64(item.H)/float64(sh))
	op.GeoM.Translate(float64(item.X), float64(item.Y))
	b.back.DrawImage(tex, op)
}

// texture uploads library textures on first use.
func (b *Backend) texture(id render.TextureID) (*ebiten.Image, bool) {
	if img, ok := b.textures[id]; ok {
		return img, true
	}
	src, ok := b.lib.Texture(id)
	if !ok {
		return nil, false
	}
	img := ebiten.NewImageFromImage(src)
	b.textures[id] = img
	return img, true
}

// applyEffect runs one full-target pass from back into scratch and swaps.
func (b *Backend) applyEffect(fx render.PostEffect, w, h int) {
	if d, ok := b.lib.CheckEffect(Name, fx); !ok {
		b.diag.Report(d)
		return
	}
	shader, ok := b.shaders[fx.Effect]
	if !ok {
		b.diag.Report(render.Diagnostic{Source: Name, Kind: render.DiagUnknownEffect, ID: string(fx.Effect)})
		return
	}
	op := &ebiten.DrawRectShaderOptions{Uniforms: b.programs[fx.Effect].uniforms(fx.Params)}
	op.Images[0] = b.back
	b.scratch.Clear()
	b.scratch.DrawRectShader(w, h, shader, op)
	b.back, b.scratch = b.scratch, b.back
}

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

func (b *Backend) Resize(width, height int) error {
	if !b.initialized {
		return render.ErrNotInitialized
	}
	if err := render.CheckSize(width, height); err != nil {
		return err
	}
	b.allocate(width, height)
	b.inFrame = false
	b.logger.Debug("backend resized", "backend", Name, "width", width, "height", height)
	return nil
}

func (b *Backend) Shutdown() {
	if !b.initialized {
		return
	}
	for _, img := range []*ebiten.Image{b.back, b.front, b.scratch} {
		img.Deallocate()
	}
	for _, img := range b.textures {
		img.Deallocate()
	}
	deallocate(b.shaders)
	clear(b.textures)
	b.shaders = nil
	b.back, b.front, b.scratch = nil, nil, nil
	b.initialized = false
	b.inFrame = false
	b.logger.Info("backend shut down", "backend", Name)
}

func (b *Backend) IsInitialized() bool { return b.initialized }

// Frame returns the most recently presented image, or nil when not
// initialized. Hosts draw it onto the screen.
func (b *Backend) Frame() *ebiten.Image {
	return b.front
}
