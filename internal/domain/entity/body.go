package entity

// PositionScale is the internal position scale factor.
// 1 pixel = 100 internal units. This provides 0.01 pixel precision.
const PositionScale = 100

// Body represents the physical body of an entity
// Position is stored at 100x scale for sub-pixel precision without floats.
// Velocity is stored as float in 100x scale units per second.
type Body struct {
	X, Y   int     // 100x scaled position (divide by PositionScale for pixels)
	VX, VY float64 // 100x scaled velocity (units per second)

	// Size of the collision box in pixels.
	Width, Height int

	// Position at the start of the last fixed step, for render interpolation.
	PrevX, PrevY int

	OnGround    bool
	OnCeiling   bool
	OnWallLeft  bool
	OnWallRight bool
	FacingRight bool
	WasOnGround bool
}

// NewBody creates a body at pixel position (x, y) facing right.
func NewBody(x, y, width, height int) Body {
	b := Body{Width: width, Height: height, FacingRight: true}
	b.SetPixelPos(x, y)
	return b
}

// PixelX returns the pixel X position (internal X / PositionScale)
func (b *Body) PixelX() int {
	return b.X / PositionScale
}

// PixelY returns the pixel Y position (internal Y / PositionScale)
func (b *Body) PixelY() int {
	return b.Y / PositionScale
}

// SetPixelPos sets the position from pixel coordinates (converts to 100x scale)
// and resets the interpolation origin.
func (b *Body) SetPixelPos(x, y int) {
	b.X = x * PositionScale
	b.Y = y * PositionScale
	b.PrevX, b.PrevY = b.X, b.Y
}

// ApplyVelocity applies velocity to position, returning integer units to move.
// With 100x scale, no remainder accumulation is needed as precision is built-in.
func (b *Body) ApplyVelocity(dt float64) (dx, dy int) {
	dx = int(b.VX * dt)
	dy = int(b.VY * dt)
	return dx, dy
}

// BeginStep records the current position as the interpolation origin.
func (b *Body) BeginStep() {
	b.PrevX, b.PrevY = b.X, b.Y
}

// Lerp returns the pixel position blended between the previous and current
// step by alpha in [0, 1].
func (b *Body) Lerp(alpha float64) (float64, float64) {
	x := float64(b.PrevX) + (float64(b.X-b.PrevX) * alpha)
	y := float64(b.PrevY) + (float64(b.Y-b.PrevY) * alpha)
	return x / PositionScale, y / PositionScale
}
