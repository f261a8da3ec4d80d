package config

// EngineConfig is the root config for engine.json
type EngineConfig struct {
	Display      DisplayConfig `json:"display"`
	Timing       TimingConfig  `json:"timing"`
	Backend      string        `json:"backend"`
	LogLevel     string        `json:"logLevel"`
	InitialScene string        `json:"initialScene"`
	Stage        string        `json:"stage"`
}

type DisplayConfig struct {
	ScreenWidth  int    `json:"screenWidth"`
	ScreenHeight int    `json:"screenHeight"`
	Scale        int    `json:"scale"`
	Title        string `json:"title"`
}

type TimingConfig struct {
	TickRate        int `json:"tickRate"`
	MaxFrameDeltaMs int `json:"maxFrameDeltaMs"`
	YieldMs         int `json:"yieldMs"`
	StatsIntervalMs int `json:"statsIntervalMs"`
}

// PhysicsConfig is the root config for physics.json.
// Speeds are in pixels per second.
type PhysicsConfig struct {
	Physics  PhysicsSettings `json:"physics"`
	Movement MovementConfig  `json:"movement"`
	Jump     JumpConfig      `json:"jump"`
	Avatar   AvatarConfig    `json:"avatar"`
}

type PhysicsSettings struct {
	Gravity      float64 `json:"gravity"`
	MaxFallSpeed float64 `json:"maxFallSpeed"`
}

type MovementConfig struct {
	MaxSpeed     float64 `json:"maxSpeed"`
	AirControl   float64 `json:"airControl"`
	Friction     float64 `json:"friction"`
	DuckFriction float64 `json:"duckFriction"`
}

type JumpConfig struct {
	Force          float64 `json:"force"`
	FallMultiplier float64 `json:"fallMultiplier"`
}

type AvatarConfig struct {
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	AttackDuration float64 `json:"attackDuration"`
}

// DefaultEngine returns the settings used when engine.json is absent.
func DefaultEngine() *EngineConfig {
	return &EngineConfig{
		Display: DisplayConfig{
			ScreenWidth:  320,
			ScreenHeight: 240,
			Scale:        2,
			Title:        "framecore",
		},
		Timing: TimingConfig{
			TickRate:        60,
			MaxFrameDeltaMs: 50,
			YieldMs:         1,
			StatsIntervalMs: 1000,
		},
		Backend:      "ebiten",
		LogLevel:     "info",
		InitialScene: "menu",
		Stage:        "demo",
	}
}

// DefaultPhysics returns the settings used when physics.json is absent.
func DefaultPhysics() *PhysicsConfig {
	return &PhysicsConfig{
		Physics:  PhysicsSettings{Gravity: 900, MaxFallSpeed: 400},
		Movement: MovementConfig{MaxSpeed: 120, AirControl: 0.8, Friction: 12, DuckFriction: 20},
		Jump:     JumpConfig{Force: 300, FallMultiplier: 1.5},
		Avatar:   AvatarConfig{Width: 12, Height: 24, AttackDuration: 0.2},
	}
}

// applyDefaults fills zero fields from the defaults.
func (c *EngineConfig) applyDefaults() {
	d := DefaultEngine()
	if c.Display.ScreenWidth == 0 {
		c.Display.ScreenWidth = d.Display.ScreenWidth
	}
	if c.Display.ScreenHeight == 0 {
		c.Display.ScreenHeight = d.Display.ScreenHeight
	}
	if c.Display.Scale == 0 {
		c.Display.Scale = d.Display.Scale
	}
	if c.Display.Title == "" {
		c.Display.Title = d.Display.Title
	}
	if c.Timing.TickRate == 0 {
		c.Timing.TickRate = d.Timing.TickRate
	}
	if c.Timing.MaxFrameDeltaMs == 0 {
		c.Timing.MaxFrameDeltaMs = d.Timing.MaxFrameDeltaMs
	}
	if c.Timing.StatsIntervalMs == 0 {
		c.Timing.StatsIntervalMs = d.Timing.StatsIntervalMs
	}
	if c.Backend == "" {
		c.Backend = d.Backend
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.InitialScene == "" {
		c.InitialScene = d.InitialScene
	}
	if c.Stage == "" {
		c.Stage = d.Stage
	}
}
