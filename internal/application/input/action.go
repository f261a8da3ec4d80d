// Package input maps raw key events to named actions. Actions are a closed
// enum dispatched through a single switch by the consumer.
package input

import (
	"fmt"
)

// Action is a logical command a key can be bound to.
type Action int

const (
	ActionNone Action = iota
	MoveLeft
	MoveRight
	Jump
	Pause
	Attack
	Duck
	StandUp
	Confirm
)

var actionNames = map[Action]string{
	MoveLeft:  "move_left",
	MoveRight: "move_right",
	Jump:      "jump",
	Pause:     "pause",
	Attack:    "attack",
	Duck:      "duck",
	StandUp:   "stand_up",
	Confirm:   "confirm",
}

// Actions returns every bindable action in declaration order.
func Actions() []Action {
	return []Action{MoveLeft, MoveRight, Jump, Pause, Attack, Duck, StandUp, Confirm}
}

// String returns the bindings-file name of the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "none"
}

// ParseAction resolves a bindings-file action name.
func ParseAction(name string) (Action, error) {
	for a, n := range actionNames {
		if n == name {
			return a, nil
		}
	}
	return ActionNone, fmt.Errorf("unknown action %q", name)
}
