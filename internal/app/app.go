package app

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rook-computer/acrosstheroom/internal/app/screens"
	"github.com/rook-computer/acrosstheroom/internal/input"
	"github.com/rook-computer/acrosstheroom/internal/render"
	"github.com/rook-computer/acrosstheroom/internal/state"
	"github.com/rook-computer/acrosstheroom/internal/system"
)

// Console is the text console the framebuffer shares the screen with. It is
// nil in the simulator.
type Console interface {
	SetGraphicsMode() error
	RestoreTextMode() error
	HideCursor() error
	ShowCursor() error
}

type App struct {
	Store     *state.Store
	Render    render.Renderer
	Input     input.Source
	KeepAwake system.KeepAwake
	Console   Console
	Dialogs   screens.Dialogs
	Logger    Logger

	// Splash is how long the title shows before the fade; zero skips it.
	Splash         time.Duration
	SwipeThreshold int

	mu       sync.Mutex
	ctx      context.Context
	current  screens.Screen
	settings *screens.SettingsScreen
	display  *screens.DisplayScreen

	exitOnce atomic.Bool
	exitCh   chan error
}

func New(store *state.Store, renderer render.Renderer, source input.Source) *App {
	return &App{
		Store:          store,
		Render:         renderer,
		Input:          source,
		KeepAwake:      system.NoopKeepAwake{},
		Logger:         NoopLogger{},
		Splash:         screens.DefaultSplashDuration,
		SwipeThreshold: input.DefaultSwipeThreshold,
		exitCh:         make(chan error, 1),
	}
}

// Exit requests the app to stop running.
// Any screen can call this to terminate the process via the generic codepath.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

func (app *App) ShowSettings() {
	app.mu.Lock()
	screen := app.settings
	app.mu.Unlock()
	if screen != nil {
		app.navigate(screen)
	}
}

func (app *App) ShowDisplay() {
	app.mu.Lock()
	screen := app.display
	app.mu.Unlock()
	if screen != nil {
		app.navigate(screen)
	}
}

func (app *App) navigate(screen screens.Screen) {
	app.mu.Lock()
	ctx := app.ctx
	app.mu.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := app.setScreen(ctx, screen); err != nil {
		app.Logger.Errorf("app", "screen start failed: %v", err)
		app.Exit(err)
	}
}

// Current returns the screen receiving input.
func (app *App) Current() screens.Screen {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.current
}

func (app *App) setScreen(ctx context.Context, screen screens.Screen) error {
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.current == screen {
		return nil
	}
	if app.current != nil {
		_ = app.current.Stop()
	}
	app.current = screen
	app.Render.SetScreen(screen)
	return screen.Start(ctx)
}

func (app *App) Start(ctx context.Context) error {
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	app.exitOnce.Store(false)
	if app.Logger == nil {
		app.Logger = NoopLogger{}
	}
	if app.KeepAwake == nil {
		app.KeepAwake = system.NoopKeepAwake{}
	}
	if app.Input == nil {
		app.Input = input.NewNoopSource()
	}

	if fb, ok := app.Render.(*render.FBRenderer); ok {
		fb.Logger = app.Logger
	}
	if err := app.Render.Start(ctx); err != nil {
		app.Logger.Errorf("app", "renderer start error: %v", err)
		return err
	}
	defer app.Render.Stop()

	if app.Console != nil {
		// Switch console to KD_GRAPHICS to suppress the text console and cursor.
		if err := app.Console.SetGraphicsMode(); err != nil {
			app.Logger.Errorf("tty", "set graphics mode failed: %v", err)
		}
		if err := app.Console.HideCursor(); err != nil {
			app.Logger.Errorf("tty", "hide cursor failed: %v", err)
		}
		defer func() {
			if err := app.Console.ShowCursor(); err != nil {
				app.Logger.Errorf("tty", "show cursor failed: %v", err)
			}
			if err := app.Console.RestoreTextMode(); err != nil {
				app.Logger.Errorf("tty", "restore text mode failed: %v", err)
			}
		}()
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	app.mu.Lock()
	app.ctx = runCtx
	app.settings = screens.NewSettingsScreen(app.Store, app, app.Dialogs, app.Logger)
	app.display = screens.NewDisplayScreen(app.Store, app, app.KeepAwake, app.SwipeThreshold, app.Logger)
	app.mu.Unlock()

	if err := app.Input.Start(runCtx); err != nil {
		app.Logger.Errorf("app", "input start error: %v", err)
		return err
	}

	var first screens.Screen = app.settings
	if app.Splash > 0 {
		first = screens.NewSplashScreen(app.Splash, app, app.Logger)
	}
	if err := app.setScreen(runCtx, first); err != nil {
		_ = app.Input.Stop()
		return err
	}

	// Force immediate first redraw so nothing of the console shows through.
	app.Render.RedrawWithState(app.Store.Snapshot())

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		app.Render.RunLoop(runCtx, app.Store)
	}()
	go func() {
		defer wg.Done()
		app.dispatch(runCtx, app.Input.Events())
	}()

	// Wait for completion (requested by a screen or F4), then exit.
	var err error
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case err = <-app.exitCh:
	}
	cancel()
	_ = app.Input.Stop()
	wg.Wait()

	app.mu.Lock()
	if app.current != nil {
		_ = app.current.Stop()
		app.current = nil
	}
	app.mu.Unlock()
	app.Logger.Infof("app", "stopped")
	return err
}

// dispatch delivers input to the current screen. It is the only goroutine
// that handles input, so store writes from widgets are serialized.
func (app *App) dispatch(ctx context.Context, events <-chan input.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Kind == input.KindKey && ev.Key == input.KeyF4 {
				app.Logger.Infof("input", "F4 pressed: exiting")
				app.Exit(nil)
				continue
			}
			if screen := app.Current(); screen != nil {
				screen.HandleInput(ev)
			}
		}
	}
}

func (app *App) Stop() error {
	app.Exit(nil)
	return nil
}
