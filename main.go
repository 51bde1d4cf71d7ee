package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/acrosstheroom/internal/app"
	"github.com/rook-computer/acrosstheroom/internal/config"
	"github.com/rook-computer/acrosstheroom/internal/input"
	"github.com/rook-computer/acrosstheroom/internal/render"
	"github.com/rook-computer/acrosstheroom/internal/state"
	"github.com/rook-computer/acrosstheroom/internal/system"
)

func main() {
	defaults, err := config.LoadFromEnv(config.Defaults())
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	cfg := defaults
	flag.StringVar(&cfg.FBDevice, "fb", defaults.FBDevice, "framebuffer device; also configurable via "+config.EnvFBDevice)
	flag.IntVar(&cfg.FPS, "fps", defaults.FPS, "frames per second; also configurable via "+config.EnvFPS)
	flag.IntVar(&cfg.CanvasMaxSide, "canvas-max", defaults.CanvasMaxSide, "longest side of the offscreen canvas; also configurable via "+config.EnvCanvasMax)
	flag.DurationVar(&cfg.Splash, "splash", defaults.Splash, "splash duration, 0 to skip; also configurable via "+config.EnvSplash)
	flag.IntVar(&cfg.SwipeThreshold, "swipe-threshold", defaults.SwipeThreshold, "pixels per scroll speed step; also configurable via "+config.EnvSwipeThreshold)
	flag.BoolVar(&cfg.Debug, "debug", defaults.Debug, "enable debug logging to ./acrosstheroom-debug.log; also configurable via "+config.EnvDebug)
	flag.StringVar(&cfg.StdioLog, "stdio-log", defaults.StdioLog, "redirect stdout+stderr (including panics) to this file; also configurable via "+config.EnvStdioLog)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	// Best-effort: panics stay diagnosable while the console is in graphics mode.
	if cfg.StdioLog != "" {
		if err := system.RedirectStdIO(cfg.StdioLog); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	var logger app.Logger = app.ErrorsOnly{Logger: app.NewFileLogger(os.Stderr)}
	if cfg.Debug {
		f, err := os.OpenFile("./acrosstheroom-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := state.NewStore()

	renderer := render.NewFBRenderer()
	renderer.Device = cfg.FBDevice
	renderer.FPS = cfg.FPS
	renderer.CanvasMaxSide = cfg.CanvasMaxSide
	renderer.Debug = cfg.Debug

	touch := input.NewEvdevSource(renderer.Size)
	touch.Logger = logger

	console := system.NewConsole()

	a := app.New(store, renderer, touch)
	a.Logger = logger
	a.Console = console
	a.KeepAwake = system.NewConsoleKeepAwake(console, logger)
	a.Splash = cfg.Splash
	a.SwipeThreshold = cfg.SwipeThreshold

	if err := a.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println("app error:", err)
		os.Exit(1)
	}
}
