package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/rook-computer/acrosstheroom/internal/app"
	"github.com/rook-computer/acrosstheroom/internal/config"
	"github.com/rook-computer/acrosstheroom/internal/input"
	"github.com/rook-computer/acrosstheroom/internal/render"
	"github.com/rook-computer/acrosstheroom/internal/state"
)

func main() {
	defaults, err := config.LoadFromEnv(config.Defaults())
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	cfg := defaults
	width := flag.Int("width", 960, "initial window width")
	height := flag.Int("height", 540, "initial window height")
	scenario := flag.String("scenario", "default", "startup scenario, reapplied with F5: "+scenarioNames())
	flag.IntVar(&cfg.FPS, "fps", defaults.FPS, "frames per second; also configurable via "+config.EnvFPS)
	flag.IntVar(&cfg.CanvasMaxSide, "canvas-max", defaults.CanvasMaxSide, "longest side of the logical canvas; also configurable via "+config.EnvCanvasMax)
	flag.DurationVar(&cfg.Splash, "splash", defaults.Splash, "splash duration, 0 to skip; also configurable via "+config.EnvSplash)
	flag.IntVar(&cfg.SwipeThreshold, "swipe-threshold", defaults.SwipeThreshold, "pixels per scroll speed step; also configurable via "+config.EnvSwipeThreshold)
	flag.BoolVar(&cfg.Debug, "debug", defaults.Debug, "log to stdout; also configurable via "+config.EnvDebug)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	var logger app.Logger = app.ErrorsOnly{Logger: app.NewFileLogger(os.Stdout)}
	if cfg.Debug {
		logger = app.NewFileLogger(os.Stdout)
	}

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := state.NewStore()
	control := NewSimControl(store, *scenario)
	if err := control.ApplyScenario(); err != nil {
		fmt.Println("scenario init error:", err)
		os.Exit(2)
	}

	w, h := render.CanvasSize(*width, *height, cfg.CanvasMaxSide)
	store.SetViewport(w, h)
	renderer := &windowRenderer{compositor: render.NewCompositor(w, h, render.NewFontBook(logger))}
	events := input.NewChanSource(64)

	a := app.New(store, renderer, events)
	a.Logger = logger
	a.Dialogs = zenityDialogs{}
	a.Splash = cfg.Splash
	a.SwipeThreshold = cfg.SwipeThreshold

	var done atomic.Bool
	appErr := make(chan error, 1)
	go func() {
		appErr <- a.Start(processCtx)
		done.Store(true)
	}()

	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("Across the Room - F4: quit, F5: reset scenario")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.FPS)

	g := &game{
		store:    store,
		renderer: renderer,
		events:   events,
		control:  control,
		maxSide:  cfg.CanvasMaxSide,
		done:     &done,
	}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		fmt.Println("window error:", err)
		os.Exit(1)
	}

	// Closing the window stops the app the same way F4 does.
	a.Exit(nil)
	if err := <-appErr; err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println("app error:", err)
		os.Exit(1)
	}
}
