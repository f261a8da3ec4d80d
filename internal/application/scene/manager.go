package scene

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/younwookim/framecore/internal/application/input"
	"github.com/younwookim/framecore/internal/render"
)

// ErrUnknownScene is returned when no factory is registered under a name.
var ErrUnknownScene = errors.New("unknown scene")

// Handle addresses a scene in the manager's arena. A handle goes stale when
// its scene is detached; the slot may then be reused under a new generation.
type Handle struct {
	index uint32
	gen   uint32
}

type slot struct {
	scene  Scene
	gen    uint32
	live   bool
	active bool
}

// Manager owns a stack of scenes stored in an arena.
//
// Update and Render walk the stack bottom-to-top. A scene is active (updates)
// unless some scene above it pauses underlying scenes. Only the top scene
// receives input.
type Manager struct {
	slots     []slot
	free      []uint32
	stack     []Handle
	factories map[string]Factory
	logger    *slog.Logger
}

var _ Navigator = (*Manager)(nil)

// NewManager creates an empty manager. A nil logger uses slog.Default().
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		factories: make(map[string]Factory),
		logger:    logger,
	}
}

// Register adds a named scene factory for PushNamed and SwitchNamed.
func (m *Manager) Register(name string, f Factory) {
	m.factories[name] = f
}

func (m *Manager) create(name string) (Scene, error) {
	f, ok := m.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	s, err := f()
	if err != nil {
		return nil, fmt.Errorf("failed to create scene %q: %w", name, err)
	}
	return s, nil
}

// Get resolves a handle. It returns false for stale handles.
func (m *Manager) Get(h Handle) (Scene, bool) {
	if int(h.index) >= len(m.slots) {
		return nil, false
	}
	sl := &m.slots[h.index]
	if !sl.live || sl.gen != h.gen {
		return nil, false
	}
	return sl.scene, true
}

func (m *Manager) alloc(s Scene) Handle {
	if n := len(m.free); n > 0 {
		idx := m.free[n-1]
		m.free = m.free[:n-1]
		sl := &m.slots[idx]
		sl.scene, sl.live, sl.active = s, true, false
		return Handle{index: idx, gen: sl.gen}
	}
	m.slots = append(m.slots, slot{scene: s, live: true})
	return Handle{index: uint32(len(m.slots) - 1)}
}

func (m *Manager) release(h Handle) {
	sl := &m.slots[h.index]
	sl.scene = nil
	sl.live = false
	sl.active = false
	sl.gen++
	m.free = append(m.free, h.index)
}

// Push places s on top of the stack.
func (m *Manager) Push(s Scene) Handle {
	h := m.alloc(s)
	m.stack = append(m.stack, h)
	m.logger.Debug("scene pushed", "scene", s.Name(), "depth", len(m.stack))
	s.OnAttach(m)
	m.refresh()
	return h
}

// PushNamed creates the named scene and pushes it.
func (m *Manager) PushNamed(name string) error {
	s, err := m.create(name)
	if err != nil {
		return err
	}
	m.Push(s)
	return nil
}

// Pop removes the top scene. It returns false if the stack was empty.
// Popping the last scene leaves the stack empty.
func (m *Manager) Pop() bool {
	if len(m.stack) == 0 {
		return false
	}
	h := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	m.detach(h)
	m.refresh()
	return true
}

// Switch replaces the whole stack with s.
func (m *Manager) Switch(s Scene) Handle {
	for len(m.stack) > 0 {
		h := m.stack[len(m.stack)-1]
		m.stack = m.stack[:len(m.stack)-1]
		m.detach(h)
	}
	return m.Push(s)
}

// SwitchNamed creates the named scene and switches to it. The current stack
// is left untouched if creation fails.
func (m *Manager) SwitchNamed(name string) error {
	s, err := m.create(name)
	if err != nil {
		return err
	}
	m.Switch(s)
	return nil
}

func (m *Manager) detach(h Handle) {
	sl := &m.slots[h.index]
	s := sl.scene
	if sl.active {
		sl.active = false
		s.OnDeactivate()
	}
	s.OnDetach()
	m.release(h)
	m.logger.Debug("scene popped", "scene", s.Name(), "depth", len(m.stack))
}

// refresh recomputes which scenes are active and fires the matching hooks.
func (m *Manager) refresh() {
	paused := false
	want := make([]bool, len(m.stack))
	for i := len(m.stack) - 1; i >= 0; i-- {
		want[i] = !paused
		if m.slots[m.stack[i].index].scene.PausesUnderlying() {
			paused = true
		}
	}
	for i, h := range m.stack {
		sl := &m.slots[h.index]
		switch {
		case want[i] && !sl.active:
			sl.active = true
			sl.scene.OnActivate()
		case !want[i] && sl.active:
			sl.active = false
			sl.scene.OnDeactivate()
		}
	}
}

// Top returns the focused scene.
func (m *Manager) Top() (Scene, bool) {
	if len(m.stack) == 0 {
		return nil, false
	}
	return m.Get(m.stack[len(m.stack)-1])
}

// Len returns the stack depth.
func (m *Manager) Len() int { return len(m.stack) }

// Empty reports whether there is no active scene.
func (m *Manager) Empty() bool { return len(m.stack) == 0 }

// Names returns the scene names bottom-to-top.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.stack))
	for _, h := range m.stack {
		names = append(names, m.slots[h.index].scene.Name())
	}
	return names
}

// Active reports whether the scene behind h currently receives updates.
func (m *Manager) Active(h Handle) bool {
	if _, ok := m.Get(h); !ok {
		return false
	}
	return m.slots[h.index].active
}

// HandleEvent forwards e to the top scene. It returns false if the stack is
// empty.
func (m *Manager) HandleEvent(e input.Event) bool {
	top, ok := m.Top()
	if !ok {
		return false
	}
	top.HandleEvent(e)
	return true
}

// Update advances every active scene bottom-to-top. Scenes pushed during the
// walk start updating next step; scenes removed during the walk are skipped.
func (m *Manager) Update(dt float64) error {
	snapshot := append([]Handle(nil), m.stack...)
	for _, h := range snapshot {
		s, ok := m.Get(h)
		if !ok || !m.slots[h.index].active {
			continue
		}
		if err := s.Update(dt); err != nil {
			return fmt.Errorf("scene %s: %w", s.Name(), err)
		}
	}
	return nil
}

// Render lets every scene on the stack contribute to cb, bottom-to-top, so
// higher scenes composite over lower ones. Paused scenes still render.
// It returns false if the stack is empty.
func (m *Manager) Render(cb *render.CommandBuffer, alpha float64) bool {
	if len(m.stack) == 0 {
		return false
	}
	for _, h := range m.stack {
		m.slots[h.index].scene.Render(cb, alpha)
	}
	return true
}
