package main

import (
	"context"
	"fmt"
	"image/png"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/framecore/internal/application/game"
	"github.com/younwookim/framecore/internal/application/input"
	"github.com/younwookim/framecore/internal/application/replay"
	"github.com/younwookim/framecore/internal/application/scene"
	"github.com/younwookim/framecore/internal/application/scene/menu"
	"github.com/younwookim/framecore/internal/application/scene/pause"
	"github.com/younwookim/framecore/internal/application/scene/playing"
	"github.com/younwookim/framecore/internal/infrastructure/config"
	"github.com/younwookim/framecore/internal/infrastructure/ebitenhost"
	"github.com/younwookim/framecore/internal/infrastructure/ebitenrender"
	"github.com/younwookim/framecore/internal/render"
	"github.com/younwookim/framecore/internal/render/noop"
	"github.com/younwookim/framecore/internal/render/soft"
)

// options are the command line settings.
type options struct {
	configDir  string
	backend    string
	scene      string
	headless   bool
	iterations int
	record     string
	replay     string
	screenshot string
}

// app wires configuration, scenes, a backend and the loop for one run.
type app struct {
	opts   options
	logger *slog.Logger
	level  *slog.LevelVar

	cfg      *config.GameConfig
	lib      *render.Library
	scenes   *scene.Manager
	backend  render.Backend
	recorder *replay.Recorder

	closed bool
}

func newApp(opts options, logger *slog.Logger, level *slog.LevelVar) (*app, error) {
	cfg, err := loadConfig(opts.configDir, logger)
	if err != nil {
		return nil, err
	}
	if level != nil {
		lvl, err := cfg.Engine.Level()
		if err != nil {
			logger.Warn("keeping default log level", "error", err)
		} else {
			level.Set(lvl)
		}
	}

	a := &app{
		opts:   opts,
		logger: logger,
		level:  level,
		cfg:    cfg,
		lib:    newLibrary(),
	}
	a.scenes = a.buildScenes()
	return a, nil
}

func loadConfig(dir string, logger *slog.Logger) (*config.GameConfig, error) {
	if dir != "" {
		return config.NewLoader(dir).LoadAll(logger)
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("embedded configs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs").LoadAll(logger)
}

// newLibrary declares the post effects every backend compiles at init.
func newLibrary() *render.Library {
	lib := render.NewLibrary()
	lib.RegisterEffect(render.EffectSpec{ID: render.EffectDim, Params: 1})
	lib.RegisterEffect(render.EffectSpec{ID: render.EffectTint, Params: 3})
	return lib
}

func (a *app) buildScenes() *scene.Manager {
	d := a.cfg.Engine.Display
	m := scene.NewManager(a.logger)
	m.Register(menu.Name, func() (scene.Scene, error) {
		return menu.New(a.cfg.Bindings, d.ScreenWidth, d.ScreenHeight, a.logger), nil
	})
	m.Register(playing.Name, func() (scene.Scene, error) {
		p, err := playing.New(a.cfg, a.lib, a.logger)
		if err != nil {
			return nil, err
		}
		return p, nil
	})
	m.Register(pause.Name, func() (scene.Scene, error) {
		return pause.New(a.cfg.Bindings, d.ScreenWidth, d.ScreenHeight), nil
	})
	return m
}

func (a *app) initialScene() string {
	if a.opts.scene != "" {
		return a.opts.scene
	}
	return a.cfg.Engine.InitialScene
}

func (a *app) backendName() string {
	if a.opts.backend != "" {
		return a.opts.backend
	}
	return a.cfg.Engine.Backend
}

func (a *app) diagnostics() render.Diagnostics {
	return render.LogDiagnostics{Logger: a.logger}
}

// newHeadlessBackend returns the software rasterizer when asked for it and
// the no-op backend otherwise.
func (a *app) newHeadlessBackend() render.Backend {
	if a.backendName() == soft.Name {
		return soft.New(a.lib, soft.WithDiagnostics(a.diagnostics()), soft.WithLogger(a.logger))
	}
	return noop.New(a.logger)
}

// loopOptions returns the recording and replay wiring shared by both modes.
// A replay supplies both the clock and the events.
func (a *app) loopOptions(src input.Source) (input.Source, []game.Option, error) {
	opts := []game.Option{game.WithLogger(a.logger), game.WithDiagnostics(a.diagnostics())}

	step := game.NewConfig(a.cfg.Engine.Timing).Step

	if a.opts.replay != "" {
		data, err := replay.LoadReplay(a.opts.replay)
		if err != nil {
			return nil, nil, err
		}
		player := replay.NewReplayer(*data)
		if player.Stage() != a.cfg.Engine.Stage {
			a.logger.Warn("replay recorded on another stage", "replay", player.Stage(), "stage", a.cfg.Engine.Stage)
		}
		if player.Step() != step {
			a.logger.Warn("replay recorded at another tick rate", "replay", player.Step(), "step", step)
		}
		a.logger.Info("replaying", "file", a.opts.replay, "iterations", player.TotalIterations())
		src = player
		opts = append(opts, game.WithClock(player))
	}

	if a.opts.record != "" {
		if a.opts.record == replay.AutoFilename {
			a.opts.record = replay.GenerateFilename(a.cfg.Engine.Stage, time.Now())
		}
		a.recorder = replay.NewRecorder(a.cfg.Engine.Stage, step)
		opts = append(opts, game.WithEventObserver(a.recorder.Observe))
	}
	return src, opts, nil
}

func (a *app) start() error {
	if err := a.scenes.SwitchNamed(a.initialScene()); err != nil {
		return fmt.Errorf("initial scene: %w", err)
	}
	return nil
}

// runHeadless drives the loop without a window on a stepped clock, so a run
// is reproducible and never sleeps.
func (a *app) runHeadless(ctx context.Context) error {
	d := a.cfg.Engine.Display
	a.backend = a.newHeadlessBackend()
	if err := a.backend.Init(d.ScreenWidth, d.ScreenHeight); err != nil {
		return fmt.Errorf("backend init: %w", err)
	}

	loopCfg := game.NewConfig(a.cfg.Engine.Timing)
	loopCfg.Yield = 0

	var src input.Source = input.NewScriptedSource()
	if a.opts.iterations > 0 {
		src = &limitSource{Source: src, left: a.opts.iterations - 1}
	}
	src, opts, err := a.loopOptions(src)
	if err != nil {
		return err
	}
	if a.opts.replay == "" {
		opts = append(opts, game.WithClock(&game.SteppedClock{Tick: loopCfg.Step}))
	}

	if err := a.start(); err != nil {
		return err
	}
	loop, err := game.NewLoop(loopCfg, a.scenes, a.backend, src, opts...)
	if err != nil {
		return err
	}
	if err := loop.Run(ctx); err != nil {
		return err
	}
	return a.writeScreenshot()
}

// runWindowed opens an ebiten window. If the ebiten backend cannot
// initialize the run degrades to headless. Cancelling ctx closes the window
// after the current iteration.
func (a *app) runWindowed(ctx context.Context) error {
	d := a.cfg.Engine.Display
	backend := ebitenrender.New(a.lib,
		ebitenrender.WithDiagnostics(a.diagnostics()),
		ebitenrender.WithLogger(a.logger),
	)
	if err := backend.Init(d.ScreenWidth, d.ScreenHeight); err != nil {
		a.logger.Error("ebiten backend unavailable, running headless", "error", err)
		return a.runHeadless(ctx)
	}
	a.backend = backend

	host := ebitenhost.New(backend, d.ScreenWidth, d.ScreenHeight, d.Scale, a.logger)
	src, opts, err := a.loopOptions(host)
	if err != nil {
		return err
	}
	opts = append(opts, game.WithWindow(host))

	if err := a.start(); err != nil {
		return err
	}
	loop, err := game.NewLoop(game.NewConfig(a.cfg.Engine.Timing), a.scenes, backend, src, opts...)
	if err != nil {
		return err
	}
	host.Attach(ctx, loop)

	ebiten.SetWindowSize(d.ScreenWidth*d.Scale, d.ScreenHeight*d.Scale)
	ebiten.SetWindowTitle(d.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	if rate := a.cfg.Engine.Timing.TickRate; rate > 0 {
		ebiten.SetTPS(rate)
	}

	return ebiten.RunGame(host)
}

func (a *app) writeScreenshot() error {
	if a.opts.screenshot == "" {
		return nil
	}
	sb, ok := a.backend.(*soft.Backend)
	if !ok || sb.Frame() == nil {
		a.logger.Warn("screenshot needs the soft backend and at least one frame", "backend", a.backend.Name())
		return nil
	}
	f, err := os.Create(a.opts.screenshot)
	if err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, sb.Frame()); err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}
	a.logger.Info("screenshot saved", "file", a.opts.screenshot)
	return nil
}

// shutdown saves the recording and releases the backend. It runs once.
func (a *app) shutdown() {
	if a.closed {
		return
	}
	a.closed = true

	if a.recorder != nil {
		a.recorder.Stop()
		if err := a.recorder.Save(a.opts.record); err != nil {
			a.logger.Error("failed to save recording", "file", a.opts.record, "error", err)
		} else {
			a.logger.Info("recording saved", "file", a.opts.record, "iterations", a.recorder.IterationCount())
		}
	}
	if a.backend != nil {
		a.backend.Shutdown()
	}
}

// limitSource passes left polls through and then yields Quit.
type limitSource struct {
	input.Source
	left int
}

func (s *limitSource) Poll(dst []input.Event) []input.Event {
	if s.left <= 0 {
		return append(dst, input.Event{Kind: input.Quit})
	}
	s.left--
	return s.Source.Poll(dst)
}
