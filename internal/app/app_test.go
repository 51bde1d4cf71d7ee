package app

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rook-computer/acrosstheroom/internal/app/screens"
	"github.com/rook-computer/acrosstheroom/internal/input"
	"github.com/rook-computer/acrosstheroom/internal/render"
	"github.com/rook-computer/acrosstheroom/internal/state"
)

type fakeRenderer struct {
	mu       sync.Mutex
	screens  []render.Screen
	redraws  int
	startErr error
	stopped  bool
}

func (r *fakeRenderer) Start(ctx context.Context) error { return r.startErr }

func (r *fakeRenderer) Stop() error {
	r.mu.Lock()
	r.stopped = true
	r.mu.Unlock()
	return nil
}

func (r *fakeRenderer) SetScreen(screen render.Screen) {
	r.mu.Lock()
	r.screens = append(r.screens, screen)
	r.mu.Unlock()
}

func (r *fakeRenderer) RunLoop(ctx context.Context, store *state.Store) { <-ctx.Done() }

func (r *fakeRenderer) RedrawWithState(snap state.Settings) {
	r.mu.Lock()
	r.redraws++
	r.mu.Unlock()
}

type fakeConsole struct {
	mu    sync.Mutex
	calls []string
}

func (c *fakeConsole) record(name string) error {
	c.mu.Lock()
	c.calls = append(c.calls, name)
	c.mu.Unlock()
	return nil
}

func (c *fakeConsole) SetGraphicsMode() error { return c.record("graphics") }
func (c *fakeConsole) RestoreTextMode() error { return c.record("text") }
func (c *fakeConsole) HideCursor() error      { return c.record("hide") }
func (c *fakeConsole) ShowCursor() error      { return c.record("show") }

func startApp(t *testing.T, a *App) <-chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- a.Start(context.Background()) }()
	return done
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func waitDone(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatalf("app did not stop")
		return nil
	}
}

func TestAppF4Exits(t *testing.T) {
	t.Parallel()

	src := input.NewChanSource(4)
	renderer := &fakeRenderer{}
	console := &fakeConsole{}
	a := New(state.NewStore(), renderer, src)
	a.Splash = 0
	a.Console = console
	done := startApp(t, a)

	waitFor(t, "settings screen", func() bool {
		_, ok := a.Current().(*screens.SettingsScreen)
		return ok
	})
	src.Send(input.KeyEvent(input.KeyF4))
	if err := waitDone(t, done); err != nil {
		t.Fatalf("Start returned %v", err)
	}
	if a.Current() != nil {
		t.Fatalf("current screen not cleared")
	}
	renderer.mu.Lock()
	defer renderer.mu.Unlock()
	if !renderer.stopped || renderer.redraws == 0 {
		t.Fatalf("renderer stopped=%v redraws=%d", renderer.stopped, renderer.redraws)
	}
	want := "graphics,hide,show,text"
	if got := strings.Join(console.calls, ","); got != want {
		t.Fatalf("console calls=%s want %s", got, want)
	}
}

func TestAppNavigationKeepsState(t *testing.T) {
	t.Parallel()

	store := state.NewStore()
	src := input.NewChanSource(8)
	a := New(store, &fakeRenderer{}, src)
	a.Splash = 0
	done := startApp(t, a)
	defer func() { a.Exit(nil); waitDone(t, done) }()

	waitFor(t, "settings screen", func() bool { return a.Current() != nil })
	store.SetMessage("go team")
	a.ShowDisplay()
	if _, ok := a.Current().(*screens.DisplayScreen); !ok {
		t.Fatalf("current=%T want display", a.Current())
	}

	src.Send(input.KeyEvent(input.KeyRight))
	waitFor(t, "speed change", func() bool { return store.Snapshot().ScrollSpeed == state.DefaultScrollSpeed+1 })

	src.Send(input.KeyEvent(input.KeyEscape))
	waitFor(t, "settings screen", func() bool {
		_, ok := a.Current().(*screens.SettingsScreen)
		return ok
	})
	if got := store.Snapshot().Message; got != "go team" {
		t.Fatalf("message=%q after navigation", got)
	}
}

func TestAppSplashSkipsToSettings(t *testing.T) {
	t.Parallel()

	src := input.NewChanSource(4)
	a := New(state.NewStore(), &fakeRenderer{}, src)
	a.Splash = time.Hour
	done := startApp(t, a)
	defer func() { a.Exit(nil); waitDone(t, done) }()

	waitFor(t, "splash screen", func() bool {
		_, ok := a.Current().(*screens.SplashScreen)
		return ok
	})
	src.Send(input.KeyEvent(input.KeyEnter))
	waitFor(t, "settings screen", func() bool {
		_, ok := a.Current().(*screens.SettingsScreen)
		return ok
	})
}

func TestAppRendererStartFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("no framebuffer")
	a := New(state.NewStore(), &fakeRenderer{startErr: boom}, input.NewChanSource(1))
	if err := a.Start(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("Start err=%v want %v", err, boom)
	}
}

func TestAppContextCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	a := New(state.NewStore(), &fakeRenderer{}, input.NewChanSource(1))
	a.Splash = 0
	done := make(chan error, 1)
	go func() { done <- a.Start(ctx) }()
	waitFor(t, "settings screen", func() bool { return a.Current() != nil })
	cancel()
	if err := waitDone(t, done); !errors.Is(err, context.Canceled) {
		t.Fatalf("Start err=%v", err)
	}
}

func TestExitIsIdempotent(t *testing.T) {
	t.Parallel()

	a := New(state.NewStore(), &fakeRenderer{}, nil)
	first := errors.New("first")
	a.Exit(first)
	a.Exit(errors.New("second"))
	if got := <-a.exitCh; got != first {
		t.Fatalf("exit err=%v want first", got)
	}
}

func TestWriteLogFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	at := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	writeLog(&buf, at, "INFO", "display", "speed %d", 7)
	want := "2024-05-01T12:30:00Z [INFO] display: speed 7\n"
	if got := buf.String(); got != want {
		t.Fatalf("line=%q want %q", got, want)
	}
}

func TestErrorsOnlyDropsInfo(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := ErrorsOnly{NewFileLogger(&buf)}
	logger.Infof("app", "hidden")
	logger.Errorf("app", "shown %s", "here")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "[ERROR] app: shown here") {
		t.Fatalf("output=%q", out)
	}
}
