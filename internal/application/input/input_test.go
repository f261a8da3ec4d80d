package input

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	for _, a := range Actions() {
		got, err := ParseAction(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}

	_, err := ParseAction("fly")
	assert.Error(t, err)
	assert.Equal(t, "none", ActionNone.String())
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		name string
		want ebiten.Key
	}{
		{"Space", ebiten.KeySpace},
		{"space", ebiten.KeySpace},
		{"A", ebiten.KeyA},
		{"ArrowLeft", ebiten.KeyArrowLeft},
		{" Escape ", ebiten.KeyEscape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKey(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseKey("Hyper")
	assert.Error(t, err)
}

func TestBindings_BindAndLookup(t *testing.T) {
	b := NewBindings()
	require.NoError(t, b.Bind(ebiten.KeyA, MoveLeft))
	require.NoError(t, b.Bind(ebiten.KeyArrowLeft, MoveLeft))
	require.NoError(t, b.Bind(ebiten.KeyA, MoveLeft), "rebinding the same pair is fine")

	a, ok := b.Lookup(ebiten.KeyA)
	assert.True(t, ok)
	assert.Equal(t, MoveLeft, a)

	_, ok = b.Lookup(ebiten.KeyZ)
	assert.False(t, ok)

	assert.Equal(t, []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}, b.Keys(MoveLeft))
	assert.Equal(t, 2, b.Len())

	err := b.Bind(ebiten.KeyA, Jump)
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestBindings_Resolve(t *testing.T) {
	b := DefaultBindings()

	tests := []struct {
		name  string
		event Event
		want  Action
	}{
		{"press jump", Press(ebiten.KeySpace), Jump},
		{"release jump", Release(ebiten.KeySpace), ActionNone},
		{"press duck", Press(ebiten.KeyS), Duck},
		{"release duck stands up", Release(ebiten.KeyS), StandUp},
		{"unbound key", Press(ebiten.KeyF12), ActionNone},
		{"resize", Event{Kind: Resize, Width: 10, Height: 10}, ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Resolve(tt.event))
		})
	}
}

func TestDefaultBindings_CoverGameplayActions(t *testing.T) {
	b := DefaultBindings()
	for _, a := range []Action{MoveLeft, MoveRight, Jump, Pause, Attack, Duck, Confirm} {
		assert.NotEmpty(t, b.Keys(a), a.String())
	}
}

func TestScriptedSource(t *testing.T) {
	src := NewScriptedSource(
		[]Event{Press(ebiten.KeyA)},
		nil,
		[]Event{Release(ebiten.KeyA), {Kind: Resize, Width: 640, Height: 480}},
	)
	assert.Equal(t, 3, src.Remaining())

	assert.Equal(t, []Event{Press(ebiten.KeyA)}, src.Poll(nil))
	assert.Empty(t, src.Poll(nil))
	assert.Len(t, src.Poll(nil), 2)
	assert.Empty(t, src.Poll(nil))
	assert.Equal(t, 0, src.Remaining())

	src.QuitWhenDone = true
	assert.Equal(t, []Event{{Kind: Quit}}, src.Poll(nil))
}

func TestEvent_String(t *testing.T) {
	assert.Equal(t, "KeyDown(Space)", Press(ebiten.KeySpace).String())
	assert.Equal(t, "Resize(2x3)", Event{Kind: Resize, Width: 2, Height: 3}.String())
	assert.Equal(t, "Quit", Event{Kind: Quit}.String())
}
