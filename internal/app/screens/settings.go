package screens

import (
	"context"
	"image"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/rook-computer/acrosstheroom/internal/input"
	"github.com/rook-computer/acrosstheroom/internal/render"
	"github.com/rook-computer/acrosstheroom/internal/state"
	"github.com/rook-computer/acrosstheroom/internal/surface"
)

// hueStep is how far the custom swatch advances per press when no native
// color dialog is available.
const hueStep = 30.0

// region is a tappable area recorded during the last Draw.
type region struct {
	rect  image.Rectangle
	row   rowKind
	index int
	track image.Rectangle
}

// SettingsScreen is the control panel: every widget writes straight to the
// store, and the preview shows the result live.
type SettingsScreen struct {
	Store   *state.Store
	Nav     Navigator
	Dialogs Dialogs
	Logger  Logger

	preview    *surface.Surface
	qr         render.QRCache
	qrFailed   bool
	recognizer *input.Recognizer
	dialogOpen atomic.Bool
	dialogs    sync.WaitGroup

	mu        sync.Mutex
	focus     rowKind
	cursor    [2]int
	customHue [2]float64
	regions   []region
}

func NewSettingsScreen(store *state.Store, nav Navigator, dialogs Dialogs, logger Logger) *SettingsScreen {
	return &SettingsScreen{
		Store:      store,
		Nav:        nav,
		Dialogs:    dialogs,
		Logger:     logger,
		preview:    surface.NewPreview(LightTheme.Border),
		recognizer: input.NewRecognizer(0),
		customHue:  [2]float64{200, 40},
	}
}

func (screen *SettingsScreen) Start(ctx context.Context) error {
	screen.mu.Lock()
	screen.recognizer.Reset()
	screen.mu.Unlock()
	return nil
}

func (screen *SettingsScreen) Stop() error { return nil }

func (screen *SettingsScreen) Focus() rowKind {
	screen.mu.Lock()
	defer screen.mu.Unlock()
	return screen.focus
}

func (screen *SettingsScreen) setFocus(row rowKind) {
	screen.mu.Lock()
	screen.focus = row
	screen.mu.Unlock()
}

func (screen *SettingsScreen) moveFocus(delta int) {
	screen.mu.Lock()
	screen.focus = rowKind(wrap(int(screen.focus)+delta, int(rowCount)))
	screen.mu.Unlock()
}

func (screen *SettingsScreen) HandleInput(ev input.Event) {
	if ev.Kind == input.KindPointer {
		screen.handlePointer(ev)
		return
	}
	switch ev.Key {
	case input.KeyUp:
		screen.moveFocus(-1)
		return
	case input.KeyDown:
		screen.moveFocus(1)
		return
	case input.KeyTab:
		if ev.Shift {
			screen.moveFocus(-1)
		} else {
			screen.moveFocus(1)
		}
		return
	}

	focus := screen.Focus()
	snap := screen.Store.Snapshot()
	switch focus {
	case rowMessage:
		screen.editMessage(ev, snap)
	case rowCapitalize:
		if isToggleKey(ev) {
			screen.Store.SetCapitalized(!snap.Capitalized)
		}
	case rowTextColor:
		screen.swatchKey(targetText, ev)
	case rowBackground:
		screen.swatchKey(targetBackground, ev)
	case rowSpeed:
		switch {
		case ev.Key == input.KeyLeft:
			screen.Store.AdjustScrollSpeed(-1)
		case ev.Key == input.KeyRight:
			screen.Store.AdjustScrollSpeed(1)
		case ev.Key == input.KeyChar && ev.Rune >= '1' && ev.Rune <= '9':
			screen.Store.SetScrollSpeed(int(ev.Rune - '0'))
		}
	case rowFont:
		if d := direction(ev); d != 0 {
			screen.Store.SetFont(cycleFont(snap.Font, d))
		}
	case rowPreset:
		if d := direction(ev); d != 0 {
			screen.Store.ApplyPreset(cyclePreset(snap.Preset, d))
		} else if ev.Key == input.KeyEnter {
			screen.Store.ApplyPreset(snap.Preset)
		}
	case rowDualText:
		if isToggleKey(ev) {
			screen.Store.SetDualText(!snap.DualText)
		}
	case rowDarkMode:
		if isToggleKey(ev) {
			screen.Store.SetDarkMode(!snap.DarkMode)
		}
	case rowDisplay:
		if ev.Key == input.KeyEnter || ev.Key == input.KeySpace {
			screen.Nav.ShowDisplay()
		}
	}
}

func isToggleKey(ev input.Event) bool {
	switch ev.Key {
	case input.KeyEnter, input.KeySpace, input.KeyLeft, input.KeyRight:
		return true
	}
	return false
}

func direction(ev input.Event) int {
	switch ev.Key {
	case input.KeyLeft:
		return -1
	case input.KeyRight:
		return 1
	}
	return 0
}

func (screen *SettingsScreen) editMessage(ev input.Event, snap state.Settings) {
	switch ev.Key {
	case input.KeyChar:
		screen.Store.SetMessage(snap.Message + string(ev.Rune))
	case input.KeySpace:
		screen.Store.SetMessage(snap.Message + " ")
	case input.KeyBackspace:
		if snap.Message == "" {
			return
		}
		_, size := utf8.DecodeLastRuneInString(snap.Message)
		screen.Store.SetMessage(snap.Message[:len(snap.Message)-size])
	case input.KeyEnter:
		if screen.Dialogs != nil {
			screen.openMessageDialog(snap.Message)
			return
		}
		screen.moveFocus(1)
	}
}

func (screen *SettingsScreen) swatchKey(target colorTarget, ev input.Event) {
	items := swatchesFor(target)
	switch ev.Key {
	case input.KeyLeft, input.KeyRight:
		screen.mu.Lock()
		screen.cursor[target] = wrap(screen.cursor[target]+direction(ev), len(items))
		screen.mu.Unlock()
	case input.KeyEnter, input.KeySpace:
		screen.mu.Lock()
		index := screen.cursor[target]
		screen.mu.Unlock()
		screen.applySwatch(target, index)
	}
}

func (screen *SettingsScreen) applySwatch(target colorTarget, index int) {
	items := swatchesFor(target)
	if index < 0 || index >= len(items) {
		return
	}
	sw := items[index]
	switch sw.kind {
	case swatchColor:
		screen.setColor(target, sw.color)
	case swatchRainbowText:
		screen.Store.EnableRainbowText()
	case swatchEffect:
		if err := screen.Store.EnableBackgroundEffect(sw.effect); err != nil {
			screen.errorf("enable %s: %v", sw.effect, err)
		}
	case swatchCustom:
		screen.pickCustom(target)
	}
}

func (screen *SettingsScreen) setColor(target colorTarget, c state.Color) {
	if target == targetText {
		screen.Store.SetTextColor(c)
	} else {
		screen.Store.SetBackgroundColor(c)
	}
}

// pickCustom opens the native picker when there is one and otherwise steps
// the custom hue around the color wheel.
func (screen *SettingsScreen) pickCustom(target colorTarget) {
	snap := screen.Store.Snapshot()
	initial := snap.TextColor
	if target == targetBackground {
		initial = snap.BackgroundColor
	}
	if screen.Dialogs != nil {
		screen.runDialog(func() {
			c, ok, err := screen.Dialogs.PickColor(target.String(), initial)
			if err != nil {
				screen.errorf("color dialog: %v", err)
				return
			}
			if ok {
				screen.setColor(target, c)
			}
		})
		return
	}
	screen.mu.Lock()
	screen.customHue[target] += hueStep
	hue := screen.customHue[target]
	screen.mu.Unlock()
	screen.setColor(target, state.FromHSV(hue, 1, 1))
}

func (screen *SettingsScreen) openMessageDialog(current string) {
	screen.runDialog(func() {
		text, ok, err := screen.Dialogs.EnterText("Message", current)
		if err != nil {
			screen.errorf("message dialog: %v", err)
			return
		}
		if ok {
			screen.Store.SetMessage(text)
		}
	})
}

// runDialog runs fn off the input goroutine. Only one dialog is open at a
// time; requests while one is up are dropped.
func (screen *SettingsScreen) runDialog(fn func()) {
	if !screen.dialogOpen.CompareAndSwap(false, true) {
		return
	}
	screen.dialogs.Add(1)
	go func() {
		defer screen.dialogs.Done()
		defer screen.dialogOpen.Store(false)
		fn()
	}()
}

func (screen *SettingsScreen) handlePointer(ev input.Event) {
	screen.mu.Lock()
	gestures := screen.recognizer.Feed(ev)
	screen.mu.Unlock()
	for _, g := range gestures {
		if g.Kind != input.GestureTap {
			continue
		}
		if r, ok := screen.hit(image.Pt(g.X, g.Y)); ok {
			screen.activate(r, image.Pt(g.X, g.Y))
		}
	}
}

func (screen *SettingsScreen) hit(p image.Point) (region, bool) {
	screen.mu.Lock()
	defer screen.mu.Unlock()
	// Later regions are drawn on top.
	for i := len(screen.regions) - 1; i >= 0; i-- {
		if p.In(screen.regions[i].rect) {
			return screen.regions[i], true
		}
	}
	return region{}, false
}

// previewRow marks the preview box region; tapping it opens the display.
const previewRow = rowCount

func (screen *SettingsScreen) activate(r region, p image.Point) {
	if r.row == previewRow {
		screen.Nav.ShowDisplay()
		return
	}
	screen.setFocus(r.row)
	snap := screen.Store.Snapshot()
	switch r.row {
	case rowMessage:
		if screen.Dialogs != nil {
			screen.openMessageDialog(snap.Message)
		}
	case rowCapitalize:
		screen.Store.SetCapitalized(!snap.Capitalized)
	case rowTextColor, rowBackground:
		target := targetText
		if r.row == rowBackground {
			target = targetBackground
		}
		screen.mu.Lock()
		screen.cursor[target] = r.index
		screen.mu.Unlock()
		screen.applySwatch(target, r.index)
	case rowSpeed:
		screen.Store.SetScrollSpeed(speedAt(r.track, p.X))
	case rowFont:
		screen.Store.SetFont(cycleFont(snap.Font, r.index))
	case rowPreset:
		screen.Store.ApplyPreset(cyclePreset(snap.Preset, r.index))
	case rowDualText:
		screen.Store.SetDualText(!snap.DualText)
	case rowDarkMode:
		screen.Store.SetDarkMode(!snap.DarkMode)
	case rowDisplay:
		screen.Nav.ShowDisplay()
	}
}

// speedAt maps an x position on the slider track to the nearest speed.
func speedAt(track image.Rectangle, x int) int {
	if track.Dx() <= 0 {
		return state.DefaultScrollSpeed
	}
	steps := state.MaxScrollSpeed - state.MinScrollSpeed
	offset := x - track.Min.X
	speed := state.MinScrollSpeed + (offset*steps*2+track.Dx())/(track.Dx()*2)
	return state.ClampScrollSpeed(speed)
}

func (screen *SettingsScreen) errorf(format string, args ...interface{}) {
	if screen.Logger != nil {
		screen.Logger.Errorf("settings", format, args...)
	}
}
