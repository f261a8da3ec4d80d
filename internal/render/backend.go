package render

import "errors"

// Common backend errors.
var (
	// ErrNotInitialized is returned when a frame operation is called before Init.
	ErrNotInitialized = errors.New("render: backend not initialized")

	// ErrFrameNotBegun is returned by Submit or Present outside BeginFrame.
	ErrFrameNotBegun = errors.New("render: frame not begun")

	// ErrShaderCompile wraps shader/program compilation failures during Init.
	ErrShaderCompile = errors.New("render: shader compile failed")

	// ErrInvalidSize is returned for non-positive surface dimensions.
	ErrInvalidSize = errors.New("render: invalid surface size")
)

// Backend turns command buffers into pixels on a specific graphics API.
//
// Callers drive every backend with the same sequence:
//
//	Init -> (BeginFrame -> Submit -> Present)* -> Shutdown
//
// and never branch on the concrete type. Submit applies the camera, then
// draw items (layer order, batched by mesh/material), then UI items, then
// post effects. Unknown ids inside a buffer are reported through
// Diagnostics and skipped; they never fail the frame.
type Backend interface {
	// Name returns the backend identifier used in diagnostics.
	Name() string

	// Init prepares GPU resources for a width by height surface.
	// Shader compilation failures are fatal and wrap ErrShaderCompile.
	Init(width, height int) error

	// BeginFrame clears and prepares the target.
	BeginFrame() error

	// Submit consumes one fully populated buffer.
	Submit(cb *CommandBuffer) error

	// Present flushes the frame to the visible surface.
	Present() error

	// Resize reconfigures the backend for a new surface size.
	Resize(width, height int) error

	// Shutdown releases resources. It is safe to call more than once.
	Shutdown()

	// IsInitialized reports whether Init succeeded and Shutdown has not run.
	IsInitialized() bool
}

// CheckSize validates surface dimensions.
func CheckSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidSize
	}
	return nil
}
