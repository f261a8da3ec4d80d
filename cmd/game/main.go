package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xlab/closer"
)

func main() {
	var opts options
	flag.StringVar(&opts.configDir, "config", "", "Config directory (default: embedded configs)")
	flag.StringVar(&opts.backend, "backend", "", "Render backend: ebiten, soft or noop (default: engine.json)")
	flag.StringVar(&opts.scene, "scene", "", "Initial scene (default: engine.json)")
	flag.BoolVar(&opts.headless, "headless", false, "Run without a window")
	flag.IntVar(&opts.iterations, "iterations", 0, "Stop a headless run after N loop iterations")
	flag.StringVar(&opts.record, "record", "", "Record input to file (e.g., -record replay.json, or -record auto)")
	flag.StringVar(&opts.replay, "replay", "", "Play back a recorded input file")
	flag.StringVar(&opts.screenshot, "screenshot", "", "Write the last soft-backend frame as PNG")
	flag.Parse()

	// The loop owns SIGINT/SIGTERM/SIGHUP so it stops between iterations.
	// closer would run teardown on its own goroutine mid-iteration.
	closer.Init(closer.Config{ExitCodeOK: 0, ExitCodeErr: 1, ExitSignals: []os.Signal{syscall.SIGABRT}})
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	a, err := newApp(opts, logger, level)
	if err != nil {
		closer.Fatalln("failed to load config:", err)
	}
	closer.Bind(a.shutdown)

	start := time.Now()
	if opts.headless || a.backendName() != "ebiten" {
		err = a.runHeadless(ctx)
	} else {
		err = a.runWindowed(ctx)
	}
	if err != nil {
		closer.Fatalln("run failed:", err)
	}
	logger.Info("run finished", "elapsed", time.Since(start).Round(time.Millisecond))
	closer.Close()
}
