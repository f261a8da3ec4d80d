// Package avatar models the player character's behavioral modes as a
// tagged state over {Standing, Ducking, Airborne} with a pure transition
// table.
package avatar

// State is the avatar's current behavioral mode.
type State uint8

const (
	Standing State = iota
	Ducking
	Airborne
)

// States lists every defined state.
var States = []State{Standing, Ducking, Airborne}

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case Standing:
		return "Standing"
	case Ducking:
		return "Ducking"
	case Airborne:
		return "Airborne"
	default:
		return "Unknown"
	}
}

// Valid reports whether s is one of the defined states.
func (s State) Valid() bool {
	return s <= Airborne
}

// Trigger is an intent or physical event delivered to the state machine.
type Trigger uint8

const (
	TriggerMoveLeft Trigger = iota
	TriggerMoveRight
	TriggerJump
	TriggerAttack
	TriggerDuck
	TriggerStandUp
	TriggerLanded
)

// Triggers lists every trigger.
var Triggers = []Trigger{
	TriggerMoveLeft,
	TriggerMoveRight,
	TriggerJump,
	TriggerAttack,
	TriggerDuck,
	TriggerStandUp,
	TriggerLanded,
}

// String returns the string representation of the trigger
func (t Trigger) String() string {
	switch t {
	case TriggerMoveLeft:
		return "MoveLeft"
	case TriggerMoveRight:
		return "MoveRight"
	case TriggerJump:
		return "Jump"
	case TriggerAttack:
		return "Attack"
	case TriggerDuck:
		return "Duck"
	case TriggerStandUp:
		return "StandUp"
	case TriggerLanded:
		return "Landed"
	default:
		return "Unknown"
	}
}

// EffectKind is a side effect requested by a transition.
type EffectKind uint8

const (
	// EffectImpulse applies the upward jump impulse.
	EffectImpulse EffectKind = iota
	// EffectVelocity sets ground horizontal velocity in Dir.
	EffectVelocity
	// EffectAirVelocity sets horizontal velocity in Dir scaled by air control.
	EffectAirVelocity
	// EffectAttack starts an attack.
	EffectAttack
)

// Effect is one side effect. Dir is -1 (left) or +1 (right) for velocity
// effects and zero otherwise.
type Effect struct {
	Kind EffectKind
	Dir  int
}

type edge struct {
	from    State
	trigger Trigger
}

type outcome struct {
	to      State
	effects []Effect
}

var (
	left  = Effect{Kind: EffectVelocity, Dir: -1}
	right = Effect{Kind: EffectVelocity, Dir: 1}
)

// table holds every handled (state, trigger) pair. Pairs not listed are
// no-ops that keep the current state.
var table = map[edge]outcome{
	{Standing, TriggerJump}:      {Airborne, []Effect{{Kind: EffectImpulse}}},
	{Standing, TriggerDuck}:      {Ducking, nil},
	{Standing, TriggerMoveLeft}:  {Standing, []Effect{left}},
	{Standing, TriggerMoveRight}: {Standing, []Effect{right}},
	{Standing, TriggerAttack}:    {Standing, []Effect{{Kind: EffectAttack}}},

	{Ducking, TriggerStandUp}: {Standing, nil},

	{Airborne, TriggerLanded}:    {Standing, nil},
	{Airborne, TriggerMoveLeft}:  {Airborne, []Effect{{Kind: EffectAirVelocity, Dir: -1}}},
	{Airborne, TriggerMoveRight}: {Airborne, []Effect{{Kind: EffectAirVelocity, Dir: 1}}},
	{Airborne, TriggerAttack}:    {Airborne, []Effect{{Kind: EffectAttack}}},
}

// Transition returns the state reached from s on t and the side effects to
// apply. Unhandled pairs return s unchanged with no effects.
func Transition(s State, t Trigger) (State, []Effect) {
	out, ok := table[edge{s, t}]
	if !ok {
		return s, nil
	}
	if len(out.effects) == 0 {
		return out.to, nil
	}
	effects := make([]Effect, len(out.effects))
	copy(effects, out.effects)
	return out.to, effects
}
