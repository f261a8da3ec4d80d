package input

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// EventKind classifies a host event.
type EventKind int

const (
	KeyDown EventKind = iota
	KeyUp
	Resize
	Quit
)

// String returns the string representation of the kind
func (k EventKind) String() string {
	switch k {
	case KeyDown:
		return "KeyDown"
	case KeyUp:
		return "KeyUp"
	case Resize:
		return "Resize"
	case Quit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Event is one host input or window event.
// Key is set for KeyDown/KeyUp; Width and Height for Resize.
type Event struct {
	Kind   EventKind  `json:"kind"`
	Key    ebiten.Key `json:"key,omitempty"`
	Width  int        `json:"width,omitempty"`
	Height int        `json:"height,omitempty"`
}

func (e Event) String() string {
	switch e.Kind {
	case KeyDown, KeyUp:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Key)
	case Resize:
		return fmt.Sprintf("Resize(%dx%d)", e.Width, e.Height)
	default:
		return e.Kind.String()
	}
}

// Press returns a KeyDown event.
func Press(k ebiten.Key) Event { return Event{Kind: KeyDown, Key: k} }

// Release returns a KeyUp event.
func Release(k ebiten.Key) Event { return Event{Kind: KeyUp, Key: k} }

// Source yields pending host events without blocking.
type Source interface {
	// Poll appends every event queued since the last call to dst.
	Poll(dst []Event) []Event
}

// SourceFunc adapts a function to Source.
type SourceFunc func(dst []Event) []Event

// Poll calls f(dst).
func (f SourceFunc) Poll(dst []Event) []Event { return f(dst) }

// ScriptedSource replays a fixed list of per-poll batches. Once the script
// is exhausted it returns nothing, or a single Quit if QuitWhenDone is set.
type ScriptedSource struct {
	batches      [][]Event
	next         int
	QuitWhenDone bool
}

// NewScriptedSource creates a source returning batches[i] on the i-th Poll.
func NewScriptedSource(batches ...[]Event) *ScriptedSource {
	return &ScriptedSource{batches: batches}
}

// Poll implements Source.
func (s *ScriptedSource) Poll(dst []Event) []Event {
	if s.next >= len(s.batches) {
		s.next++
		if s.QuitWhenDone {
			return append(dst, Event{Kind: Quit})
		}
		return dst
	}
	batch := s.batches[s.next]
	s.next++
	return append(dst, batch...)
}

// Remaining returns how many scripted batches are left.
func (s *ScriptedSource) Remaining() int {
	return max(0, len(s.batches)-s.next)
}
