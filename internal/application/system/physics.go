package system

import (
	"github.com/younwookim/framecore/internal/domain/entity"
	"github.com/younwookim/framecore/internal/infrastructure/config"
)

// PhysicsSystem integrates gravity and resolves tile collisions for a body.
type PhysicsSystem struct {
	config *config.PhysicsConfig
	stage  *entity.Stage
}

// NewPhysicsSystem creates a new physics system
func NewPhysicsSystem(cfg *config.PhysicsConfig, stage *entity.Stage) *PhysicsSystem {
	return &PhysicsSystem{
		config: cfg,
		stage:  stage,
	}
}

// Stage returns the stage the system collides against.
func (s *PhysicsSystem) Stage() *entity.Stage { return s.stage }

// Update advances body by dt seconds and reports whether it touched ground
// this step after being off it. The caller turns that into a landed event.
func (s *PhysicsSystem) Update(body *entity.Body, dt float64) (landed bool) {
	body.WasOnGround = body.OnGround

	s.applyGravity(body, dt)

	dx, dy := body.ApplyVelocity(dt)

	body.OnGround = false
	body.OnCeiling = false
	body.OnWallLeft = false
	body.OnWallRight = false

	s.moveX(body, dx)
	s.moveY(body, dy)

	// Resting on ground without crossing a pixel boundary this step.
	if !body.OnGround && body.VY >= 0 && s.touching(body, 0, 1) {
		body.OnGround = true
		body.VY = 0
	}

	return body.OnGround && !body.WasOnGround
}

// applyGravity applies gravity acceleration to the body
func (s *PhysicsSystem) applyGravity(body *entity.Body, dt float64) {
	gravity := s.config.Physics.Gravity * entity.PositionScale

	// Fall faster than rise
	if body.VY > 0 && s.config.Jump.FallMultiplier > 0 {
		gravity *= s.config.Jump.FallMultiplier
	}

	body.VY += gravity * dt

	maxFall := s.config.Physics.MaxFallSpeed * entity.PositionScale
	if maxFall > 0 && body.VY > maxFall {
		body.VY = maxFall
	}
}

// moveX moves the body horizontally one internal unit at a time, testing
// for collision whenever the pixel position would change.
func (s *PhysicsSystem) moveX(body *entity.Body, dx int) {
	step := sign(dx)
	for i := 0; i < abs(dx); i++ {
		nx := body.X + step
		if toPixel(nx) != toPixel(body.X) && s.solidAt(nx, body.Y, body) {
			body.VX = 0
			if step > 0 {
				body.OnWallRight = true
			} else {
				body.OnWallLeft = true
			}
			return
		}
		body.X = nx
	}
}

// moveY moves the body vertically with the same per-unit scheme as moveX.
func (s *PhysicsSystem) moveY(body *entity.Body, dy int) {
	step := sign(dy)
	for i := 0; i < abs(dy); i++ {
		ny := body.Y + step
		if toPixel(ny) != toPixel(body.Y) && s.solidAt(body.X, ny, body) {
			body.VY = 0
			if step > 0 {
				body.OnGround = true
			} else {
				body.OnCeiling = true
			}
			return
		}
		body.Y = ny
	}
}

func (s *PhysicsSystem) solidAt(x, y int, body *entity.Body) bool {
	return s.stage.RectSolid(toPixel(x), toPixel(y), body.Width, body.Height)
}

// touching reports whether the body would overlap a solid tile if offset
// by (dx, dy) pixels.
func (s *PhysicsSystem) touching(body *entity.Body, dx, dy int) bool {
	return s.stage.RectSolid(toPixel(body.X)+dx, toPixel(body.Y)+dy, body.Width, body.Height)
}

// toPixel converts internal units to pixels, rounding toward negative
// infinity.
func toPixel(v int) int {
	p := v / entity.PositionScale
	if v < 0 && v%entity.PositionScale != 0 {
		p--
	}
	return p
}

// Helper functions
func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
