package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/younwookim/framecore/internal/application/input"
)

// GameConfig holds all loaded configurations
type GameConfig struct {
	Engine   *EngineConfig
	Physics  *PhysicsConfig
	Bindings *input.Bindings
	Stage    *StageConfig
}

// Loader loads game configuration from JSON files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

func (l *Loader) readJSON(name string, v any) error {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// LoadEngine loads engine.json. Zero fields take their defaults.
func (l *Loader) LoadEngine() (*EngineConfig, error) {
	var cfg EngineConfig
	if err := l.readJSON("engine.json", &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// LoadPhysics loads physics.json
func (l *Loader) LoadPhysics() (*PhysicsConfig, error) {
	var cfg PhysicsConfig
	if err := l.readJSON("physics.json", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadStage loads a stage JSON file
func (l *Loader) LoadStage(name string) (*StageConfig, error) {
	var cfg StageConfig
	if err := l.readJSON("stages/"+name+".json", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load stage %s: %w", name, err)
	}
	return &cfg, nil
}

// LoadBindings loads bindings.hcl, or bindings.json if there is no HCL file.
// Unknown action or key names fail the load.
func (l *Loader) LoadBindings() (*input.Bindings, error) {
	var lastErr error
	for _, name := range []string{"bindings.hcl", "bindings.json"} {
		data, err := fs.ReadFile(l.fsys, name)
		if err != nil {
			lastErr = fmt.Errorf("failed to read %s: %w", name, err)
			continue
		}
		raw, err := ParseBindings(data, name)
		if err != nil {
			return nil, err
		}
		b, err := raw.Build()
		if err != nil {
			return nil, fmt.Errorf("invalid bindings in %s: %w", name, err)
		}
		return b, nil
	}
	return nil, lastErr
}

// LoadAll loads every configuration file. Missing files fall back to the
// built-in defaults and are logged; malformed files are errors.
func (l *Loader) LoadAll(logger *slog.Logger) (*GameConfig, error) {
	if logger == nil {
		logger = slog.Default()
	}

	engine, err := l.LoadEngine()
	if missing(err) {
		logger.Info("engine.json not found, using defaults", "dir", l.basePath)
		engine, err = DefaultEngine(), nil
	}
	if err != nil {
		return nil, err
	}

	physics, err := l.LoadPhysics()
	if missing(err) {
		logger.Info("physics.json not found, using defaults", "dir", l.basePath)
		physics, err = DefaultPhysics(), nil
	}
	if err != nil {
		return nil, err
	}

	bindings, err := l.LoadBindings()
	if missing(err) {
		logger.Info("no bindings file found, using defaults", "dir", l.basePath)
		bindings, err = input.DefaultBindings(), nil
	}
	if err != nil {
		return nil, err
	}

	stage, err := l.LoadStage(engine.Stage)
	if missing(err) {
		logger.Info("stage not found, using built-in stage", "stage", engine.Stage)
		stage, err = DefaultStage(), nil
	}
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Engine:   engine,
		Physics:  physics,
		Bindings: bindings,
		Stage:    stage,
	}, nil
}

func missing(err error) bool {
	return err != nil && errors.Is(err, fs.ErrNotExist)
}

// DefaultStage returns a small walled room.
func DefaultStage() *StageConfig {
	return &StageConfig{
		ID:          "default",
		Name:        "Default",
		Size:        StageSizeConfig{Width: 320, Height: 240, TileSize: 16},
		Background:  BackgroundConfig{Color: "#1d1f2b"},
		PlayerSpawn: PositionConfig{X: 48, Y: 160},
		Layers: LayersConfig{Collision: []string{
			"####################",
			"#..................#",
			"#..................#",
			"#..................#",
			"#..................#",
			"#..................#",
			"#..................#",
			"#..................#",
			"#..........===.....#",
			"#..................#",
			"#....===...........#",
			"#..................#",
			"#..................#",
			"#..................#",
			"####################",
		}},
		TileMapping: map[string]TileMappingConfig{
			"#": {Type: "wall", Solid: true, Color: "#5a6988"},
			"=": {Type: "platform", Solid: true, Color: "#8b9bb4"},
		},
	}
}

// Level parses LogLevel ("debug", "info", "warn", "error").
func (c *EngineConfig) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}
