package avatar

import (
	"github.com/younwookim/framecore/internal/domain/entity"
)

// Tuning holds movement constants in pixels and seconds.
type Tuning struct {
	MoveSpeed      float64 // ground speed, px/s
	AirControl     float64 // fraction of MoveSpeed available in the air
	JumpForce      float64 // initial upward speed, px/s
	Friction       float64 // horizontal decay per second while standing
	DuckFriction   float64 // horizontal decay per second while ducking
	AttackDuration float64 // seconds an attack stays active
}

// DefaultTuning returns the stock movement constants.
func DefaultTuning() Tuning {
	return Tuning{
		MoveSpeed:      120,
		AirControl:     0.8,
		JumpForce:      300,
		Friction:       12,
		DuckFriction:   20,
		AttackDuration: 0.2,
	}
}

// Avatar is the player character. It always holds exactly one State.
type Avatar struct {
	entity.Body

	tuning Tuning
	state  State

	moved       bool
	attackTimer float64
	attacks     int

	// OnTransition, if set, is called after every state change.
	OnTransition func(from, to State, t Trigger)
}

// New creates an avatar standing in body.
func New(body entity.Body, tuning Tuning) *Avatar {
	return &Avatar{
		Body:   body,
		tuning: tuning,
		state:  Standing,
	}
}

// State returns the current state.
func (a *Avatar) State() State { return a.state }

// Attacks returns the number of attacks started.
func (a *Avatar) Attacks() int { return a.attacks }

// Attacking reports whether an attack is in progress.
func (a *Avatar) Attacking() bool { return a.attackTimer > 0 }

// Handle delivers t, applies the resulting effects, and returns the new
// state. The transition completes within the call.
func (a *Avatar) Handle(t Trigger) State {
	from := a.state
	to, effects := Transition(from, t)
	for _, e := range effects {
		a.apply(e)
	}
	a.state = to
	if to != from && a.OnTransition != nil {
		a.OnTransition(from, to, t)
	}
	return to
}

func (a *Avatar) MoveLeft() State  { return a.Handle(TriggerMoveLeft) }
func (a *Avatar) MoveRight() State { return a.Handle(TriggerMoveRight) }
func (a *Avatar) Jump() State      { return a.Handle(TriggerJump) }
func (a *Avatar) Attack() State    { return a.Handle(TriggerAttack) }
func (a *Avatar) Duck() State      { return a.Handle(TriggerDuck) }
func (a *Avatar) StandUp() State   { return a.Handle(TriggerStandUp) }
func (a *Avatar) Landed() State    { return a.Handle(TriggerLanded) }

func (a *Avatar) apply(e Effect) {
	switch e.Kind {
	case EffectImpulse:
		a.VY = -a.tuning.JumpForce * entity.PositionScale
		a.OnGround = false
	case EffectVelocity:
		a.VX = float64(e.Dir) * a.tuning.MoveSpeed * entity.PositionScale
		a.FacingRight = e.Dir > 0
		a.moved = true
	case EffectAirVelocity:
		a.VX = float64(e.Dir) * a.tuning.MoveSpeed * a.tuning.AirControl * entity.PositionScale
		a.FacingRight = e.Dir > 0
		a.moved = true
	case EffectAttack:
		a.attackTimer = a.tuning.AttackDuration
		a.attacks++
	}
}

// Update is the per-step hook. Horizontal velocity decays on the ground
// when no move intent arrived this step; airborne momentum is kept.
func (a *Avatar) Update(dt float64) {
	if a.attackTimer > 0 {
		a.attackTimer -= dt
	}

	if !a.moved {
		switch a.state {
		case Standing:
			a.decay(a.tuning.Friction, dt)
		case Ducking:
			a.decay(a.tuning.DuckFriction, dt)
		}
	}
	a.moved = false
}

func (a *Avatar) decay(rate, dt float64) {
	k := 1 - rate*dt
	if k < 0 {
		k = 0
	}
	a.VX *= k
	if a.VX > -1 && a.VX < 1 {
		a.VX = 0
	}
}
