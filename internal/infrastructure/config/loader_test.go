package config

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/framecore/internal/application/input"
)

func TestLoader_LoadEngine(t *testing.T) {
	loader := NewLoader("../../../cmd/game/configs")

	cfg, err := loader.LoadEngine()
	require.NoError(t, err)

	assert.Equal(t, 320, cfg.Display.ScreenWidth)
	assert.Equal(t, 240, cfg.Display.ScreenHeight)
	assert.Equal(t, 60, cfg.Timing.TickRate)
	assert.Equal(t, 50, cfg.Timing.MaxFrameDeltaMs)
	assert.Equal(t, "menu", cfg.InitialScene)
	assert.Equal(t, "demo", cfg.Stage)
}

func TestLoader_LoadPhysics(t *testing.T) {
	loader := NewLoader("../../../cmd/game/configs")

	cfg, err := loader.LoadPhysics()
	require.NoError(t, err)

	assert.Equal(t, 900.0, cfg.Physics.Gravity)
	assert.Equal(t, 120.0, cfg.Movement.MaxSpeed)
	assert.Equal(t, 300.0, cfg.Jump.Force)
	assert.Equal(t, 24, cfg.Avatar.Height)
}

func TestLoader_LoadStage(t *testing.T) {
	loader := NewLoader("../../../cmd/game/configs")

	cfg, err := loader.LoadStage("demo")
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.ID)
	assert.Equal(t, 640, cfg.Size.Width)
	assert.Equal(t, 480, cfg.Size.Height)
	assert.Equal(t, 16, cfg.Size.TileSize)
	assert.Equal(t, 48, cfg.PlayerSpawn.X)
	assert.Equal(t, 400, cfg.PlayerSpawn.Y)
	assert.Len(t, cfg.Layers.Collision, 30)

	wall, ok := cfg.TileMapping["#"]
	require.True(t, ok)
	assert.True(t, wall.Solid)
	assert.Equal(t, "wall", wall.Type)
}

func TestLoader_LoadBindings(t *testing.T) {
	loader := NewLoader("../../../cmd/game/configs")

	b, err := loader.LoadBindings()
	require.NoError(t, err)

	a, ok := b.Lookup(ebiten.KeySpace)
	require.True(t, ok)
	assert.Equal(t, input.Jump, a)
	assert.Equal(t, []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}, b.Keys(input.MoveLeft))
	assert.Equal(t, []ebiten.Key{ebiten.KeyEscape}, b.Keys(input.Pause))
}

func TestLoader_LoadBindingsJSON(t *testing.T) {
	fsys := fstest.MapFS{
		"bindings.json": {Data: []byte(`{"jump": "Space", "move_left": ["A", "arrowleft"]}`)},
	}

	b, err := NewFSLoader(fsys, ".").LoadBindings()
	require.NoError(t, err)

	assert.Equal(t, []ebiten.Key{ebiten.KeySpace}, b.Keys(input.Jump))
	assert.Equal(t, []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}, b.Keys(input.MoveLeft))
}

func TestLoader_LoadBindingsRejectsUnknownNames(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		wantErr error
	}{
		{"unknown action", `fly = "Space"`, ErrUnknownAction},
		{"unknown key", `jump = "Hyperspace"`, ErrUnknownKey},
		{"duplicate key", "jump = \"Space\"\nattack = \"Space\"", input.ErrDuplicateKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{"bindings.hcl": {Data: []byte(tt.file)}}

			b, err := NewFSLoader(fsys, ".").LoadBindings()
			assert.Nil(t, b)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseBindings_ReportsEveryProblem(t *testing.T) {
	raw, err := ParseBindings([]byte("fly = \"Space\"\njump = \"Nope\"\n"), "bindings.hcl")
	require.NoError(t, err)

	_, err = raw.Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownAction)
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestParseBindings_RejectsNonStringValues(t *testing.T) {
	_, err := ParseBindings([]byte(`jump = 42`), "bindings.hcl")
	assert.Error(t, err)

	_, err = ParseBindings([]byte(`jump = ["Space", 1]`), "bindings.hcl")
	assert.Error(t, err)

	_, err = ParseBindings([]byte(`jump = `), "bindings.hcl")
	assert.Error(t, err)
}

func TestLoader_LoadAllFallsBackToDefaults(t *testing.T) {
	cfg, err := NewFSLoader(fstest.MapFS{}, ".").LoadAll(nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultEngine(), cfg.Engine)
	assert.Equal(t, DefaultPhysics(), cfg.Physics)
	assert.Equal(t, DefaultStage(), cfg.Stage)
	assert.Positive(t, cfg.Bindings.Len())
}

func TestLoader_LoadAllFailsOnMalformedFile(t *testing.T) {
	fsys := fstest.MapFS{"physics.json": {Data: []byte(`{"physics": `)}}

	_, err := NewFSLoader(fsys, ".").LoadAll(nil)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, fs.ErrNotExist)
}

func TestLoader_LoadAll(t *testing.T) {
	loader := NewLoader("../../../cmd/game/configs")

	cfg, err := loader.LoadAll(nil)
	require.NoError(t, err)

	assert.NotNil(t, cfg.Engine)
	assert.NotNil(t, cfg.Physics)
	assert.NotNil(t, cfg.Bindings)
	assert.Equal(t, "demo", cfg.Stage.ID)
}

func TestEngineConfig_Defaults(t *testing.T) {
	fsys := fstest.MapFS{"engine.json": {Data: []byte(`{"backend": "noop"}`)}}

	cfg, err := NewFSLoader(fsys, ".").LoadEngine()
	require.NoError(t, err)

	assert.Equal(t, "noop", cfg.Backend)
	assert.Equal(t, 60, cfg.Timing.TickRate)
	assert.Equal(t, "menu", cfg.InitialScene)
}

func TestEngineConfig_Level(t *testing.T) {
	cfg := DefaultEngine()
	cfg.LogLevel = "debug"
	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, "DEBUG", lvl.String())

	cfg.LogLevel = "loud"
	_, err = cfg.Level()
	assert.Error(t, err)
}

func TestDefaultStage_RowsMatchSize(t *testing.T) {
	s := DefaultStage()
	assert.Len(t, s.Layers.Collision, s.Size.Height/s.Size.TileSize)
	for _, row := range s.Layers.Collision {
		assert.Len(t, row, s.Size.Width/s.Size.TileSize)
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#1d1f2b")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x1d), c.R)
	assert.Equal(t, uint8(0x1f), c.G)
	assert.Equal(t, uint8(0x2b), c.B)
	assert.Equal(t, uint8(0xff), c.A)

	c, err = ParseColor("00000080")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x80), c.A)

	_, err = ParseColor("#12")
	assert.Error(t, err)
	_, err = ParseColor("#zzzzzz")
	assert.Error(t, err)
}
