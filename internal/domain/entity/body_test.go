package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBody_ApplyVelocity(t *testing.T) {
	// With 100x scale, velocities are in 100x units.
	tests := []struct {
		name   string
		vx, vy float64
		dt     float64
		wantDX int
		wantDY int
	}{
		{
			name:   "positive velocity (100 units/sec = 1 pixel/sec)",
			vx:     100,
			vy:     50,
			dt:     0.016,
			wantDX: 1, // 100 * 0.016 = 1.6 → 1
			wantDY: 0, // 50 * 0.016 = 0.8 → 0
		},
		{
			name:   "negative velocity",
			vx:     -100,
			vy:     -50,
			dt:     0.016,
			wantDX: -1,
			wantDY: 0,
		},
		{
			name:   "high velocity (12000 units/sec = 120 pixels/sec)",
			vx:     12000,
			vy:     12000,
			dt:     1.0 / 60.0,
			wantDX: 200,
			wantDY: 200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Body{VX: tt.vx, VY: tt.vy}

			dx, dy := b.ApplyVelocity(tt.dt)

			assert.Equal(t, tt.wantDX, dx, "dx mismatch")
			assert.Equal(t, tt.wantDY, dy, "dy mismatch")
		})
	}
}

func TestNewBody(t *testing.T) {
	b := NewBody(100, 200, 12, 24)

	assert.Equal(t, 10000, b.X, "X should be 100x scaled")
	assert.Equal(t, 20000, b.Y, "Y should be 100x scaled")
	assert.Equal(t, 100, b.PixelX())
	assert.Equal(t, 200, b.PixelY())
	assert.Equal(t, b.X, b.PrevX)
	assert.True(t, b.FacingRight)
}

func TestBody_Lerp(t *testing.T) {
	b := NewBody(10, 20, 8, 8)
	b.BeginStep()
	b.X += 4 * PositionScale
	b.Y -= 2 * PositionScale

	x, y := b.Lerp(0)
	assert.InDelta(t, 10.0, x, 1e-9)
	assert.InDelta(t, 20.0, y, 1e-9)

	x, y = b.Lerp(0.5)
	assert.InDelta(t, 12.0, x, 1e-9)
	assert.InDelta(t, 19.0, y, 1e-9)

	x, y = b.Lerp(1)
	assert.InDelta(t, 14.0, x, 1e-9)
	assert.InDelta(t, 18.0, y, 1e-9)
}
