package screens

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"sync"
	"time"

	"github.com/rook-computer/acrosstheroom/internal/input"
	"github.com/rook-computer/acrosstheroom/internal/render"
	"github.com/rook-computer/acrosstheroom/internal/state"
	"github.com/rook-computer/acrosstheroom/internal/surface"
	"github.com/rook-computer/acrosstheroom/internal/system"
)

// SpeedIndicatorDuration is how long the speed badge stays up after a change.
const SpeedIndicatorDuration = 1500 * time.Millisecond

// DisplayScreen shows the message full screen. A tap returns to settings and
// horizontal swipes change the scroll speed.
type DisplayScreen struct {
	Store     *state.Store
	Nav       Navigator
	KeepAwake system.KeepAwake
	Logger    Logger

	surface    *surface.Surface
	recognizer *input.Recognizer
	now        func() time.Time

	mu          sync.Mutex
	indicatorAt time.Time
	awake       bool
}

func NewDisplayScreen(store *state.Store, nav Navigator, keepAwake system.KeepAwake, swipeThreshold int, logger Logger) *DisplayScreen {
	if keepAwake == nil {
		keepAwake = system.NoopKeepAwake{}
	}
	return &DisplayScreen{
		Store:      store,
		Nav:        nav,
		KeepAwake:  keepAwake,
		Logger:     logger,
		surface:    surface.NewDisplay(),
		recognizer: input.NewRecognizer(swipeThreshold),
		now:        time.Now,
	}
}

func (screen *DisplayScreen) Start(ctx context.Context) error {
	screen.mu.Lock()
	screen.indicatorAt = time.Time{}
	screen.recognizer.Reset()
	screen.mu.Unlock()

	if err := screen.KeepAwake.Acquire(); err != nil {
		screen.errorf("keep-awake unavailable: %v", err)
		return nil
	}
	screen.mu.Lock()
	screen.awake = true
	screen.mu.Unlock()
	return nil
}

func (screen *DisplayScreen) Stop() error {
	screen.mu.Lock()
	held := screen.awake
	screen.awake = false
	screen.mu.Unlock()
	if held {
		if err := screen.KeepAwake.Release(); err != nil {
			screen.errorf("keep-awake release failed: %v", err)
		}
	}
	return nil
}

func (screen *DisplayScreen) HandleInput(ev input.Event) {
	if ev.Kind == input.KindKey {
		switch ev.Key {
		case input.KeyLeft:
			screen.adjust(-1)
		case input.KeyRight:
			screen.adjust(1)
		case input.KeyEscape, input.KeyEnter, input.KeySpace:
			screen.Nav.ShowSettings()
		}
		return
	}

	screen.mu.Lock()
	gestures := screen.recognizer.Feed(ev)
	screen.mu.Unlock()
	for _, g := range gestures {
		switch g.Kind {
		case input.GestureTap:
			screen.Nav.ShowSettings()
			return
		case input.GestureSwipeStep:
			screen.adjust(g.Step)
		}
	}
}

func (screen *DisplayScreen) adjust(delta int) {
	speed := screen.Store.AdjustScrollSpeed(delta)
	screen.mu.Lock()
	screen.indicatorAt = screen.now()
	screen.mu.Unlock()
	if screen.Logger != nil {
		screen.Logger.Infof("display", "scroll speed %d", speed)
	}
}

// indicatorVisible reports whether the speed badge should be drawn.
func (screen *DisplayScreen) indicatorVisible() bool {
	screen.mu.Lock()
	defer screen.mu.Unlock()
	if screen.indicatorAt.IsZero() {
		return false
	}
	return screen.now().Sub(screen.indicatorAt) < SpeedIndicatorDuration
}

func (screen *DisplayScreen) Draw(d render.Drawer, snap state.Settings, elapsed time.Duration) {
	w, h := d.Size()
	screen.surface.Render(d, image.Rect(0, 0, w, h), snap, elapsed)
	if !screen.indicatorVisible() {
		return
	}

	short := w
	if h < short {
		short = h
	}
	size := short / 10
	label := fmt.Sprintf("SPEED %d", snap.ScrollSpeed)
	style := render.TextStyle{Color: color.White, Size: size, Align: render.TextAlignCenter}
	tm := d.MeasureText(label, style)
	pad := size / 2
	box := image.Rect(w/2-tm.Width/2-pad, h-tm.Height-pad*3, w/2+tm.Width/2+pad, h-pad)
	d.Fill(box, color.RGBA{A: 0xB0})
	d.DrawText(label, w/2, box.Min.Y+pad, style)
}

func (screen *DisplayScreen) errorf(format string, args ...interface{}) {
	if screen.Logger != nil {
		screen.Logger.Errorf("display", format, args...)
	}
}
