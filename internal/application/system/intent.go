package system

import (
	"github.com/younwookim/framecore/internal/application/input"
	"github.com/younwookim/framecore/internal/domain/avatar"
	"github.com/younwookim/framecore/internal/domain/entity"
)

// Intent represents an action that an entity wants to perform
type Intent interface {
	isIntent()
}

// MoveIntent represents a horizontal movement intention
type MoveIntent struct {
	EntityID entity.EntityID
	Dir      int // -1 for left, 1 for right
}

func (MoveIntent) isIntent() {}

// JumpIntent represents a jump intention
type JumpIntent struct {
	EntityID entity.EntityID
}

func (JumpIntent) isIntent() {}

// AttackIntent represents an attack intention
type AttackIntent struct {
	EntityID entity.EntityID
}

func (AttackIntent) isIntent() {}

// DuckIntent represents crouching (Down) or standing back up (!Down).
type DuckIntent struct {
	EntityID entity.EntityID
	Down     bool
}

func (DuckIntent) isIntent() {}

// IntentFor translates a one-shot action into an intent for id. Actions that
// do not drive an actor (pause, confirm) return false. Movement is issued
// per step from held keys rather than from here.
func IntentFor(id entity.EntityID, a input.Action) (Intent, bool) {
	switch a {
	case input.Jump:
		return JumpIntent{EntityID: id}, true
	case input.Attack:
		return AttackIntent{EntityID: id}, true
	case input.Duck:
		return DuckIntent{EntityID: id, Down: true}, true
	case input.StandUp:
		return DuckIntent{EntityID: id, Down: false}, true
	case input.MoveLeft:
		return MoveIntent{EntityID: id, Dir: -1}, true
	case input.MoveRight:
		return MoveIntent{EntityID: id, Dir: 1}, true
	default:
		return nil, false
	}
}

// ApplyIntent delivers intent to the avatar's state machine and returns the
// resulting state.
func ApplyIntent(a *avatar.Avatar, intent Intent) avatar.State {
	switch it := intent.(type) {
	case MoveIntent:
		if it.Dir < 0 {
			return a.MoveLeft()
		}
		return a.MoveRight()
	case JumpIntent:
		return a.Jump()
	case AttackIntent:
		return a.Attack()
	case DuckIntent:
		if it.Down {
			return a.Duck()
		}
		return a.StandUp()
	default:
		return a.State()
	}
}
