package input

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrDuplicateKey is returned when one key is bound to two actions.
var ErrDuplicateKey = errors.New("key bound to more than one action")

// Bindings maps keys to actions. A key has at most one action; an action
// may have several keys.
type Bindings struct {
	byKey map[ebiten.Key]Action
}

// NewBindings creates an empty binding set.
func NewBindings() *Bindings {
	return &Bindings{byKey: make(map[ebiten.Key]Action)}
}

// Bind maps k to a.
func (b *Bindings) Bind(k ebiten.Key, a Action) error {
	if prev, ok := b.byKey[k]; ok && prev != a {
		return fmt.Errorf("%w: %s is bound to %s and %s", ErrDuplicateKey, k, prev, a)
	}
	b.byKey[k] = a
	return nil
}

// Lookup returns the action bound to k.
func (b *Bindings) Lookup(k ebiten.Key) (Action, bool) {
	a, ok := b.byKey[k]
	return a, ok
}

// Keys returns the keys bound to a in ascending order.
func (b *Bindings) Keys(a Action) []ebiten.Key {
	var keys []ebiten.Key
	for k, bound := range b.byKey {
		if bound == a {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Len returns the number of bound keys.
func (b *Bindings) Len() int { return len(b.byKey) }

// Resolve interprets an event against the bindings. KeyDown yields the bound
// action. Releasing a duck key yields StandUp. Every other event yields
// ActionNone.
func (b *Bindings) Resolve(e Event) Action {
	a, ok := b.Lookup(e.Key)
	if !ok {
		return ActionNone
	}
	switch e.Kind {
	case KeyDown:
		return a
	case KeyUp:
		if a == Duck {
			return StandUp
		}
	}
	return ActionNone
}

// ParseKey resolves a human-readable key name such as "Space", "A" or
// "ArrowLeft" case-insensitively against ebiten's key names.
func ParseKey(name string) (ebiten.Key, error) {
	name = strings.TrimSpace(name)
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		if strings.EqualFold(k.String(), name) {
			return k, nil
		}
	}
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(name)); err == nil {
		return k, nil
	}
	return 0, fmt.Errorf("unknown key %q", name)
}

// DefaultBindings returns the stock keyboard layout.
func DefaultBindings() *Bindings {
	b := NewBindings()
	for k, a := range map[ebiten.Key]Action{
		ebiten.KeyA:          MoveLeft,
		ebiten.KeyArrowLeft:  MoveLeft,
		ebiten.KeyD:          MoveRight,
		ebiten.KeyArrowRight: MoveRight,
		ebiten.KeyW:          Jump,
		ebiten.KeySpace:      Jump,
		ebiten.KeyEscape:     Pause,
		ebiten.KeyJ:          Attack,
		ebiten.KeyS:          Duck,
		ebiten.KeyArrowDown:  Duck,
		ebiten.KeyEnter:      Confirm,
	} {
		_ = b.Bind(k, a)
	}
	return b
}
