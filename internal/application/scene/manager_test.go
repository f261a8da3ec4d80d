package scene

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/framecore/internal/application/input"
	"github.com/younwookim/framecore/internal/render"
)

// mockScene records lifecycle calls into a shared log.
type mockScene struct {
	Base
	log *[]string

	updateCalled   int
	renderCalled   int
	eventsReceived int
	activateCalled int
	updateErr      error
	onUpdate       func()
}

func newMock(log *[]string, name string, pauses bool) *mockScene {
	return &mockScene{Base: Base{SceneName: name, Pauses: pauses}, log: log}
}

func (m *mockScene) record(call string) {
	if m.log != nil {
		*m.log = append(*m.log, m.SceneName+"."+call)
	}
}

func (m *mockScene) OnAttach(nav Navigator) {
	m.Base.OnAttach(nav)
	m.record("attach")
}

func (m *mockScene) OnDetach() { m.record("detach") }

func (m *mockScene) OnActivate() {
	m.activateCalled++
	m.record("activate")
}

func (m *mockScene) OnDeactivate() { m.record("deactivate") }

func (m *mockScene) HandleEvent(input.Event) { m.eventsReceived++ }

func (m *mockScene) Update(float64) error {
	m.updateCalled++
	m.record("update")
	if m.onUpdate != nil {
		m.onUpdate()
	}
	return m.updateErr
}

func (m *mockScene) Render(cb *render.CommandBuffer, _ float64) {
	m.renderCalled++
	m.record("render")
	cb.AddUIItem(render.UIItem{})
}

func TestManager_PushActivates(t *testing.T) {
	var log []string
	m := NewManager(nil)

	h := m.Push(newMock(&log, "menu", false))

	assert.True(t, m.Active(h))
	assert.Equal(t, []string{"menu.attach", "menu.activate"}, log)
}

func TestManager_PausingOverlayLifecycle(t *testing.T) {
	var log []string
	m := NewManager(nil)
	menu := newMock(&log, "menu", false)
	m.Push(menu)

	overlay := newMock(&log, "pause", true)
	m.Push(overlay)

	require.NoError(t, m.Update(1.0/60.0))
	require.NoError(t, m.Update(1.0/60.0))
	assert.Equal(t, 0, menu.updateCalled, "menu must not update under a pausing overlay")
	assert.Equal(t, 2, overlay.updateCalled)

	activationsBeforePop := menu.activateCalled
	require.True(t, m.Pop())
	require.NoError(t, m.Update(1.0/60.0))

	assert.Equal(t, 1, menu.activateCalled-activationsBeforePop, "activate fires exactly once on pop")
	assert.Equal(t, 1, menu.updateCalled, "menu resumes updating")

	want := []string{
		"menu.attach", "menu.activate",
		"pause.attach", "menu.deactivate", "pause.activate",
		"pause.update", "pause.update",
		"pause.deactivate", "pause.detach", "menu.activate",
		"menu.update",
	}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("lifecycle mismatch (-want +got):\n%s", diff)
	}
}

func TestManager_NonPausingOverlayKeepsUnderlyingUpdating(t *testing.T) {
	m := NewManager(nil)
	game := newMock(nil, "playing", false)
	hud := newMock(nil, "hud", false)
	m.Push(game)
	m.Push(hud)

	require.NoError(t, m.Update(1.0/60.0))

	assert.Equal(t, 1, game.updateCalled)
	assert.Equal(t, 1, hud.updateCalled)
	assert.Equal(t, 1, game.activateCalled, "no deactivate/activate churn")
}

func TestManager_UpdateAndRenderBottomToTop(t *testing.T) {
	var log []string
	m := NewManager(nil)
	m.Push(newMock(&log, "a", false))
	m.Push(newMock(&log, "b", false))
	m.Push(newMock(&log, "c", true))
	log = nil

	cb := render.NewCommandBuffer()
	require.NoError(t, m.Update(0.1))
	assert.True(t, m.Render(cb, 0.5))

	assert.Equal(t, []string{
		"c.update",
		"a.render", "b.render", "c.render",
	}, log)
	assert.Len(t, cb.UIItems(), 3, "paused scenes still render")
}

func TestManager_InputGoesToTopOnly(t *testing.T) {
	m := NewManager(nil)
	bottom := newMock(nil, "bottom", false)
	top := newMock(nil, "top", false)
	m.Push(bottom)
	m.Push(top)

	assert.True(t, m.HandleEvent(input.Event{Kind: input.KeyDown}))

	assert.Equal(t, 0, bottom.eventsReceived)
	assert.Equal(t, 1, top.eventsReceived)
}

func TestManager_PopLastSceneLeavesEmptyStack(t *testing.T) {
	m := NewManager(nil)
	m.Push(newMock(nil, "only", false))

	assert.True(t, m.Pop())
	assert.True(t, m.Empty())
	assert.False(t, m.Pop())

	_, ok := m.Top()
	assert.False(t, ok)
	assert.False(t, m.HandleEvent(input.Event{}))
	assert.False(t, m.Render(render.NewCommandBuffer(), 0))
	assert.NoError(t, m.Update(1.0/60.0))
}

func TestManager_SwitchReplacesStack(t *testing.T) {
	var log []string
	m := NewManager(nil)
	m.Push(newMock(&log, "a", false))
	m.Push(newMock(&log, "b", true))
	log = nil

	m.Switch(newMock(&log, "c", false))

	assert.Equal(t, []string{"c"}, m.Names())
	assert.Equal(t, []string{
		"b.deactivate", "b.detach",
		"a.detach",
		"c.attach", "c.activate",
	}, log)
}

func TestManager_HandlesGoStale(t *testing.T) {
	m := NewManager(nil)
	first := m.Push(newMock(nil, "first", false))
	m.Pop()

	second := m.Push(newMock(nil, "second", false))

	_, ok := m.Get(first)
	assert.False(t, ok, "stale handle must not resolve to the reused slot")
	assert.False(t, m.Active(first))

	s, ok := m.Get(second)
	require.True(t, ok)
	assert.Equal(t, "second", s.Name())
	assert.Equal(t, first.index, second.index, "slot is reused")
}

func TestManager_NamedScenes(t *testing.T) {
	m := NewManager(nil)
	m.Register("menu", func() (Scene, error) { return newMock(nil, "menu", false), nil })
	m.Register("broken", func() (Scene, error) { return nil, errors.New("no assets") })

	require.NoError(t, m.SwitchNamed("menu"))
	require.NoError(t, m.PushNamed("menu"))
	assert.Equal(t, []string{"menu", "menu"}, m.Names())

	err := m.PushNamed("credits")
	assert.ErrorIs(t, err, ErrUnknownScene)

	err = m.SwitchNamed("broken")
	assert.Error(t, err)
	assert.Equal(t, 2, m.Len(), "failed switch keeps the current stack")
}

func TestManager_SceneNavigatesDuringUpdate(t *testing.T) {
	m := NewManager(nil)
	m.Register("pause", func() (Scene, error) { return newMock(nil, "pause", true), nil })

	game := newMock(nil, "playing", false)
	game.onUpdate = func() {
		if game.updateCalled == 1 {
			require.NoError(t, game.Nav.PushNamed("pause"))
		}
	}
	m.Push(game)

	require.NoError(t, m.Update(1.0/60.0))
	assert.Equal(t, []string{"playing", "pause"}, m.Names())

	require.NoError(t, m.Update(1.0/60.0))
	assert.Equal(t, 1, game.updateCalled, "paused after pushing the overlay")

	top, _ := m.Top()
	assert.Equal(t, 1, top.(*mockScene).updateCalled)
}

func TestManager_UpdateErrorStops(t *testing.T) {
	m := NewManager(nil)
	failing := newMock(nil, "failing", false)
	failing.updateErr = assert.AnError
	after := newMock(nil, "after", false)
	m.Push(failing)
	m.Push(after)

	err := m.Update(1.0 / 60.0)

	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 0, after.updateCalled)
}
