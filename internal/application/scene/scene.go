// Package scene defines the Scene interface for game screens and the
// Manager that stacks them.
//
// Each game screen (menu, playing, pause overlay, etc.) implements the Scene
// interface to handle its own input, fixed-step update and rendering. Scenes
// change the stack through the Navigator they receive on attach.
package scene

import (
	"github.com/younwookim/framecore/internal/application/input"
	"github.com/younwookim/framecore/internal/render"
)

// Scene represents one layer of interactive state on the stack.
//
// Lifecycle: OnAttach -> OnActivate -> (OnDeactivate -> OnActivate)* ->
// OnDeactivate -> OnDetach. A scene only receives Update while active.
type Scene interface {
	// Name identifies the scene in logs.
	Name() string

	// PausesUnderlying reports whether scenes below this one stop updating
	// while it is on the stack.
	PausesUnderlying() bool

	// OnAttach is called once when the scene is placed on the stack.
	OnAttach(nav Navigator)

	// OnDetach is called once when the scene leaves the stack.
	// Use this for cleanup, saving state, or resource release.
	OnDetach()

	// OnActivate is called whenever the scene starts receiving updates.
	OnActivate()

	// OnDeactivate is called whenever a pausing scene covers this one.
	OnDeactivate()

	// HandleEvent receives input while the scene is on top of the stack.
	HandleEvent(e input.Event)

	// Update advances the scene by one fixed step of dt seconds.
	// Returns an error to terminate the game.
	Update(dt float64) error

	// Render appends this scene's frame contribution to cb. alpha is the
	// interpolation factor in [0, 1] between the previous and current step.
	Render(cb *render.CommandBuffer, alpha float64)
}

// Navigator lets a scene change the stack it lives on.
type Navigator interface {
	PushNamed(name string) error
	SwitchNamed(name string) error
	Pop() bool
}

// Factory creates a fresh scene instance.
type Factory func() (Scene, error)

// Base provides no-op lifecycle hooks and keeps the Navigator.
// Embed it and override what the scene needs.
type Base struct {
	SceneName string
	Pauses    bool
	Nav       Navigator
}

func (b *Base) Name() string { return b.SceneName }
func (b *Base) PausesUnderlying() bool { return b.Pauses }
func (b *Base) OnAttach(nav Navigator) { b.Nav = nav }
func (b *Base) OnDetach() {}
func (b *Base) OnActivate() {}
func (b *Base) OnDeactivate() {}
func (b *Base) HandleEvent(input.Event) {}
func (b *Base) Update(float64) error { return nil }
func (b *Base) Render(*render.CommandBuffer, float64) {}
