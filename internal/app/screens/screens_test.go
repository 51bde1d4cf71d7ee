package screens

import (
	"errors"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/rook-computer/acrosstheroom/internal/input"
	"github.com/rook-computer/acrosstheroom/internal/render"
	"github.com/rook-computer/acrosstheroom/internal/state"
)

var testFonts = render.NewFontBook(nil)

type fakeNav struct {
	mu       sync.Mutex
	settings int
	display  int
	exits    []error
	shown    chan string
}

func newFakeNav() *fakeNav { return &fakeNav{shown: make(chan string, 16)} }

func (n *fakeNav) ShowSettings() {
	n.mu.Lock()
	n.settings++
	n.mu.Unlock()
	n.shown <- "settings"
}

func (n *fakeNav) ShowDisplay() {
	n.mu.Lock()
	n.display++
	n.mu.Unlock()
	n.shown <- "display"
}

func (n *fakeNav) Exit(err error) {
	n.mu.Lock()
	n.exits = append(n.exits, err)
	n.mu.Unlock()
}

func (n *fakeNav) counts() (settings, display int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.settings, n.display
}

type fakeDialogs struct {
	color state.Color
	text  string
	ok    bool
	err   error
}

func (f fakeDialogs) PickColor(string, state.Color) (state.Color, bool, error) {
	return f.color, f.ok, f.err
}

func (f fakeDialogs) EnterText(string, string) (string, bool, error) {
	return f.text, f.ok, f.err
}

type fakeKeepAwake struct {
	mu       sync.Mutex
	acquired int
	released int
	err      error
}

func (k *fakeKeepAwake) Acquire() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.acquired++
	return k.err
}

func (k *fakeKeepAwake) Release() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.released++
	return nil
}

type captureLogger struct {
	mu     sync.Mutex
	errors []string
}

func (l *captureLogger) Infof(string, string, ...interface{}) {}
func (l *captureLogger) Errorf(component string, format string, args ...interface{}) {
	l.mu.Lock()
	l.errors = append(l.errors, component)
	l.mu.Unlock()
}

func press(s Screen, keys ...input.Key) {
	for _, k := range keys {
		s.HandleInput(input.KeyEvent(k))
	}
}

func typeText(s Screen, text string) {
	for _, r := range text {
		if r == ' ' {
			s.HandleInput(input.KeyEvent(input.KeySpace))
			continue
		}
		s.HandleInput(input.CharEvent(r))
	}
}

func tap(s Screen, p image.Point) {
	s.HandleInput(input.PointerEvent(input.PointerDown, p.X, p.Y))
	s.HandleInput(input.PointerEvent(input.PointerUp, p.X, p.Y))
}

func center(r image.Rectangle) image.Point {
	return image.Pt(r.Min.X+r.Dx()/2, r.Min.Y+r.Dy()/2)
}

func focusRow(s *SettingsScreen, row rowKind) {
	for s.Focus() != row {
		press(s, input.KeyDown)
	}
}

func TestSettingsTypingEditsMessage(t *testing.T) {
	t.Parallel()

	store := state.NewStore()
	screen := NewSettingsScreen(store, newFakeNav(), nil, nil)
	store.SetMessage("")

	typeText(screen, "hi there")
	if got := store.Snapshot().Message; got != "hi there" {
		t.Fatalf("message=%q", got)
	}
	press(screen, input.KeyBackspace, input.KeyBackspace)
	if got := store.Snapshot().Message; got != "hi the" {
		t.Fatalf("after backspace=%q", got)
	}
	if got := store.Snapshot().EffectiveText(); got != "HI THE" {
		t.Fatalf("effective=%q", got)
	}

	store.SetMessage("é")
	press(screen, input.KeyBackspace)
	if got := store.Snapshot().Message; got != "" {
		t.Fatalf("multi-byte backspace left %q", got)
	}
	press(screen, input.KeyBackspace)
}

func TestSettingsFocusWraps(t *testing.T) {
	t.Parallel()

	screen := NewSettingsScreen(state.NewStore(), newFakeNav(), nil, nil)
	press(screen, input.KeyUp)
	if got := screen.Focus(); got != rowDisplay {
		t.Fatalf("focus after up from top=%v", got)
	}
	screen.HandleInput(input.Event{Kind: input.KindKey, Key: input.KeyTab})
	if got := screen.Focus(); got != rowMessage {
		t.Fatalf("focus after tab=%v", got)
	}
	screen.HandleInput(input.Event{Kind: input.KindKey, Key: input.KeyTab, Shift: true})
	if got := screen.Focus(); got != rowDisplay {
		t.Fatalf("focus after shift-tab=%v", got)
	}
}

func TestSettingsRowsCallStoreSetters(t *testing.T) {
	t.Parallel()

	store := state.NewStore()
	nav := newFakeNav()
	screen := NewSettingsScreen(store, nav, nil, nil)

	focusRow(screen, rowCapitalize)
	press(screen, input.KeyEnter)
	if store.Snapshot().Capitalized {
		t.Fatalf("capitalize not toggled off")
	}

	focusRow(screen, rowSpeed)
	press(screen, input.KeyRight, input.KeyRight)
	if got := store.Snapshot().ScrollSpeed; got != 7 {
		t.Fatalf("speed=%d want 7", got)
	}
	screen.HandleInput(input.CharEvent('2'))
	if got := store.Snapshot().ScrollSpeed; got != 2 {
		t.Fatalf("speed=%d want 2", got)
	}
	press(screen, input.KeyLeft, input.KeyLeft, input.KeyLeft)
	if got := store.Snapshot().ScrollSpeed; got != state.MinScrollSpeed {
		t.Fatalf("speed=%d want clamp at min", got)
	}

	focusRow(screen, rowFont)
	press(screen, input.KeyRight)
	if got := store.Snapshot().Font; got != state.FontHandwriting {
		t.Fatalf("font=%v", got)
	}
	press(screen, input.KeyLeft, input.KeyLeft)
	if got := store.Snapshot().Font; got != state.FontSerif {
		t.Fatalf("font after wrap=%v", got)
	}

	focusRow(screen, rowPreset)
	press(screen, input.KeyRight, input.KeyRight)
	snap := store.Snapshot()
	if snap.Preset != state.PresetEmergency || snap.BackgroundColor != state.Red {
		t.Fatalf("preset=%v bg=%s", snap.Preset, snap.BackgroundColor)
	}

	focusRow(screen, rowDualText)
	press(screen, input.KeySpace)
	focusRow(screen, rowDarkMode)
	press(screen, input.KeySpace)
	snap = store.Snapshot()
	if snap.DualText || !snap.DarkMode {
		t.Fatalf("dual=%v dark=%v", snap.DualText, snap.DarkMode)
	}

	focusRow(screen, rowDisplay)
	press(screen, input.KeyEnter)
	if _, display := nav.counts(); display != 1 {
		t.Fatalf("display shown %d times", display)
	}
}

func TestSettingsSwatches(t *testing.T) {
	t.Parallel()

	store := state.NewStore()
	screen := NewSettingsScreen(store, newFakeNav(), nil, nil)

	focusRow(screen, rowTextColor)
	// Palette index 2 is red.
	press(screen, input.KeyRight, input.KeyRight, input.KeyEnter)
	if got := store.Snapshot().TextColor; got != state.Red {
		t.Fatalf("text color=%s", got)
	}
	// After the ten palette colors comes rainbow text.
	for i := 0; i < 8; i++ {
		press(screen, input.KeyRight)
	}
	press(screen, input.KeyEnter)
	if !store.Snapshot().IsRainbowText() {
		t.Fatalf("rainbow text not enabled")
	}

	focusRow(screen, rowBackground)
	// Background novelty order: rainbow, lightning, siren, heartbeat.
	for i := 0; i < len(state.Palette)+2; i++ {
		press(screen, input.KeyRight)
	}
	press(screen, input.KeyEnter)
	snap := store.Snapshot()
	if !snap.IsSirenMode() {
		t.Fatalf("effect=%v want siren", snap.Effect)
	}
	if snap.IsRainbowText() {
		t.Fatalf("rainbow text survived a background effect")
	}

	press(screen, input.KeyLeft, input.KeyLeft, input.KeyLeft, input.KeyEnter)
	if got := store.Snapshot().Effect; got != state.EffectNone || store.Snapshot().BackgroundColor != state.Lavender {
		t.Fatalf("palette pick left effect=%v bg=%s", got, store.Snapshot().BackgroundColor)
	}
}

func TestSettingsCustomSwatchStepsHueWithoutDialogs(t *testing.T) {
	t.Parallel()

	store := state.NewStore()
	screen := NewSettingsScreen(store, newFakeNav(), nil, nil)
	focusRow(screen, rowTextColor)
	press(screen, input.KeyLeft, input.KeyEnter)
	first := store.Snapshot().TextColor
	if first != state.FromHSV(230, 1, 1) {
		t.Fatalf("first custom color=%s", first)
	}
	press(screen, input.KeyEnter)
	if second := store.Snapshot().TextColor; second == first {
		t.Fatalf("hue did not advance")
	}
}

func TestSettingsDialogs(t *testing.T) {
	t.Parallel()

	store := state.NewStore()
	picked := state.MustParseColor("#123456")
	screen := NewSettingsScreen(store, newFakeNav(), fakeDialogs{color: picked, text: "from dialog", ok: true}, nil)

	press(screen, input.KeyEnter)
	screen.dialogs.Wait()
	if got := store.Snapshot().Message; got != "from dialog" {
		t.Fatalf("message=%q", got)
	}

	focusRow(screen, rowBackground)
	press(screen, input.KeyLeft, input.KeyEnter)
	screen.dialogs.Wait()
	if got := store.Snapshot().BackgroundColor; got != picked {
		t.Fatalf("background=%s want %s", got, picked)
	}
}

func TestSettingsDialogFailureIsLogged(t *testing.T) {
	t.Parallel()

	store := state.NewStore()
	logger := &captureLogger{}
	screen := NewSettingsScreen(store, newFakeNav(), fakeDialogs{err: errors.New("no display")}, logger)
	press(screen, input.KeyEnter)
	screen.dialogs.Wait()
	if got := store.Snapshot().Message; got != state.PlaceholderText {
		t.Fatalf("message changed to %q", got)
	}
	logger.mu.Lock()
	defer logger.mu.Unlock()
	if len(logger.errors) != 1 {
		t.Fatalf("errors logged=%v", logger.errors)
	}
}

func TestSettingsDrawAndTap(t *testing.T) {
	t.Parallel()

	store := state.NewStore()
	store.SetViewport(800, 480)
	nav := newFakeNav()
	screen := NewSettingsScreen(store, nav, nil, nil)
	canvas := render.NewCanvas(800, 480, testFonts)
	screen.Draw(canvas, store.Snapshot(), 0)

	find := func(row rowKind, index int) image.Rectangle {
		t.Helper()
		screen.mu.Lock()
		defer screen.mu.Unlock()
		for _, r := range screen.regions {
			if r.row == row && r.index == index {
				return r.rect
			}
		}
		t.Fatalf("no region for row %d index %d", row, index)
		return image.Rectangle{}
	}

	tap(screen, center(find(rowDisplay, 0)))
	if _, display := nav.counts(); display != 1 {
		t.Fatalf("DISPLAY tap shown display %d times", display)
	}

	tap(screen, center(find(rowBackground, len(state.Palette)+3)))
	if !store.Snapshot().IsHeartbeatMode() {
		t.Fatalf("heartbeat swatch tap gave effect %v", store.Snapshot().Effect)
	}
	if screen.Focus() != rowBackground {
		t.Fatalf("tap did not move focus")
	}

	// The heartbeat swatch switched the preset to custom; the next preset
	// wraps around to day.
	tap(screen, center(find(rowPreset, 1)))
	if got := store.Snapshot().Preset; got != state.PresetDay {
		t.Fatalf("preset=%v want day", got)
	}
	tap(screen, center(find(rowPreset, 1)))
	if got := store.Snapshot().Preset; got != state.PresetNight {
		t.Fatalf("preset=%v want night", got)
	}

	speed := find(rowSpeed, 0)
	tap(screen, image.Pt(speed.Max.X-1, center(speed).Y))
	if got := store.Snapshot().ScrollSpeed; got != state.MaxScrollSpeed {
		t.Fatalf("speed=%d want max", got)
	}

	tap(screen, center(find(previewRow, 0)))
	if _, display := nav.counts(); display != 2 {
		t.Fatalf("preview tap did not open display")
	}
}

func TestSettingsDrawPortraitDark(t *testing.T) {
	t.Parallel()

	store := state.NewStore()
	store.SetViewport(480, 800)
	store.SetDarkMode(true)
	store.SetMessage("a message much longer than the field can possibly show at once")
	screen := NewSettingsScreen(store, newFakeNav(), nil, nil)
	canvas := render.NewCanvas(480, 800, testFonts)
	screen.Draw(canvas, store.Snapshot(), 250*time.Millisecond)

	if got := canvas.Image().RGBAAt(1, 1); got != DarkTheme.Background {
		t.Fatalf("corner=%v want dark background", got)
	}
}

func TestComputeLayout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		w, h int
		vw   int
		vh   int
	}{
		{"landscape", 1280, 720, 1280, 720},
		{"portrait", 720, 1280, 720, 1280},
		{"unknown viewport", 800, 480, 0, 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			snap := state.DefaultSettings()
			snap.ViewportWidth, snap.ViewportHeight = tt.vw, tt.vh
			l := computeLayout(tt.w, tt.h, snap)
			canvas := image.Rect(0, 0, tt.w, tt.h)
			for i, r := range l.rows {
				if r.Empty() || !r.In(canvas) {
					t.Fatalf("row %d=%v", i, r)
				}
				if i > 0 && r.Min.Y < l.rows[i-1].Max.Y {
					t.Fatalf("row %d overlaps previous", i)
				}
			}
			if l.preview.Empty() || l.qr.Empty() {
				t.Fatalf("preview=%v qr=%v", l.preview, l.qr)
			}
			if tt.vw > 0 {
				want := float64(tt.vw) / float64(tt.vh)
				got := float64(l.preview.Dx()) / float64(l.preview.Dy())
				if got < want*0.95 || got > want*1.05 {
					t.Fatalf("preview aspect=%.2f want %.2f", got, want)
				}
			}
		})
	}
}

func TestSpeedAt(t *testing.T) {
	t.Parallel()

	track := image.Rect(100, 0, 180, 10)
	tests := []struct {
		x    int
		want int
	}{
		{100, 1}, {104, 1}, {106, 2}, {140, 5}, {180, 9}, {0, 1}, {500, 9},
	}
	for _, tt := range tests {
		if got := speedAt(track, tt.x); got != tt.want {
			t.Fatalf("speedAt(%d)=%d want %d", tt.x, got, tt.want)
		}
	}
}
