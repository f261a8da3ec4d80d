package render

import (
	"cmp"
	"slices"
)

// CommandBuffer is the complete description of one frame's rendering work.
//
// It is write-only while a scene produces it and read-only while a backend
// consumes it. The buffer is not safe for concurrent use: the producer owns
// it until Submit returns, after which it may be cleared and reused.
type CommandBuffer struct {
	draws []DrawItem
	ui    []UIItem
	post  []PostEffect

	camera    CameraParams
	hasCamera bool

	target    RenderTarget
	hasTarget bool
}

// NewCommandBuffer creates an empty buffer.
func NewCommandBuffer() *CommandBuffer {
	return &CommandBuffer{
		draws: make([]DrawItem, 0, 256),
		ui:    make([]UIItem, 0, 32),
		post:  make([]PostEffect, 0, 4),
	}
}

// AddDrawItem appends a draw item.
func (b *CommandBuffer) AddDrawItem(item DrawItem) {
	b.draws = append(b.draws, item)
}

// AddUIItem appends a UI item.
func (b *CommandBuffer) AddUIItem(item UIItem) {
	b.ui = append(b.ui, item)
}

// AddPostEffect appends a post effect. The params slice is copied.
func (b *CommandBuffer) AddPostEffect(effect PostEffect) {
	effect.Params = slices.Clone(effect.Params)
	b.post = append(b.post, effect)
}

// SetCamera replaces the frame camera.
func (b *CommandBuffer) SetCamera(camera CameraParams) {
	b.camera = camera
	b.hasCamera = true
}

// SetRenderTarget replaces the frame render target.
func (b *CommandBuffer) SetRenderTarget(target RenderTarget) {
	b.target = target
	b.hasTarget = true
}

// Clear resets every collection so the buffer can be repopulated.
// Backing storage is retained.
func (b *CommandBuffer) Clear() {
	clear(b.draws)
	b.draws = b.draws[:0]
	clear(b.ui)
	b.ui = b.ui[:0]
	clear(b.post)
	b.post = b.post[:0]
	b.camera = CameraParams{}
	b.hasCamera = false
	b.target = RenderTarget{}
	b.hasTarget = false
}

// DrawItems returns draw items in submission order.
// The returned slice must not be modified.
func (b *CommandBuffer) DrawItems() []DrawItem {
	return b.draws[:len(b.draws):len(b.draws)]
}

// UIItems returns UI items in submission order.
func (b *CommandBuffer) UIItems() []UIItem {
	return b.ui[:len(b.ui):len(b.ui)]
}

// PostEffects returns post effects in submission order.
func (b *CommandBuffer) PostEffects() []PostEffect {
	return b.post[:len(b.post):len(b.post)]
}

// Camera returns the frame camera and whether one was set.
func (b *CommandBuffer) Camera() (CameraParams, bool) {
	return b.camera, b.hasCamera
}

// RenderTarget returns the frame target and whether one was set.
func (b *CommandBuffer) RenderTarget() (RenderTarget, bool) {
	return b.target, b.hasTarget
}

// TargetOr returns the frame target, or the full backbuffer of the given
// size when none was set.
func (b *CommandBuffer) TargetOr(width, height int) RenderTarget {
	if b.hasTarget {
		return b.target
	}
	return Backbuffer(width, height)
}

// Len reports the number of queued draw, UI and post items.
func (b *CommandBuffer) Len() int {
	return len(b.draws) + len(b.ui) + len(b.post)
}

// OrderedDrawItems returns a copy of the draw items stably sorted by layer.
// Items sharing a layer keep their submission order.
func (b *CommandBuffer) OrderedDrawItems() []DrawItem {
	items := slices.Clone(b.draws)
	slices.SortStableFunc(items, func(x, y DrawItem) int {
		return cmp.Compare(x.Layer, y.Layer)
	})
	return items
}

// OrderedUIItems returns a copy of the UI items stably sorted by layer.
func (b *CommandBuffer) OrderedUIItems() []UIItem {
	items := slices.Clone(b.ui)
	slices.SortStableFunc(items, func(x, y UIItem) int {
		return cmp.Compare(x.Layer, y.Layer)
	})
	return items
}

// Batch is a run of consecutive draw items sharing mesh and material.
type Batch struct {
	Mesh     MeshID
	Material MaterialID
	Items    []DrawItem
}

// Batches splits already-ordered items into runs of identical
// mesh/material. Batching never reorders items.
func Batches(items []DrawItem) []Batch {
	var batches []Batch
	start := 0
	for i := 1; i <= len(items); i++ {
		if i < len(items) && items[i].Mesh == items[start].Mesh && items[i].Material == items[start].Material {
			continue
		}
		batches = append(batches, Batch{
			Mesh:     items[start].Mesh,
			Material: items[start].Material,
			Items:    items[start:i:i],
		})
		start = i
	}
	return batches
}
