package screens

import (
	"context"
	"image"
	"image/color"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rook-computer/acrosstheroom/internal/input"
	"github.com/rook-computer/acrosstheroom/internal/render"
	"github.com/rook-computer/acrosstheroom/internal/state"
)

const (
	DefaultSplashDuration = 3 * time.Second
	SplashFade            = 500 * time.Millisecond

	splashTitle = "ACROSS THE ROOM"
	dotCount    = 3
	dotBounce   = 1200 * time.Millisecond
	dotStagger  = 0.15
)

// SplashScreen shows the title with bouncing dots, then fades into settings.
// Any input skips it.
type SplashScreen struct {
	Duration time.Duration
	Nav      Navigator
	Logger   Logger

	now    func() time.Time
	cancel context.CancelFunc
	done   atomic.Bool

	mu    sync.Mutex
	start time.Time
}

func NewSplashScreen(duration time.Duration, nav Navigator, logger Logger) *SplashScreen {
	return &SplashScreen{Duration: duration, Nav: nav, Logger: logger, now: time.Now}
}

func (screen *SplashScreen) Start(ctx context.Context) error {
	screen.mu.Lock()
	screen.start = screen.now()
	screen.mu.Unlock()
	screen.done.Store(false)

	screenCtx, cancel := context.WithCancel(ctx)
	screen.cancel = cancel
	go func() {
		timer := time.NewTimer(screen.Duration + SplashFade)
		defer timer.Stop()
		select {
		case <-screenCtx.Done():
		case <-timer.C:
			screen.finish("timeout")
		}
	}()
	return nil
}

func (screen *SplashScreen) Stop() error {
	if screen.cancel != nil {
		screen.cancel()
	}
	return nil
}

func (screen *SplashScreen) HandleInput(ev input.Event) {
	if ev.Kind == input.KindPointer && ev.Phase != input.PointerDown {
		return
	}
	screen.finish("skipped")
}

func (screen *SplashScreen) finish(reason string) {
	if !screen.done.CompareAndSwap(false, true) {
		return
	}
	if screen.Logger != nil {
		screen.Logger.Infof("splash", "done (%s)", reason)
	}
	if screen.Nav != nil {
		screen.Nav.ShowSettings()
	}
}

func (screen *SplashScreen) since() time.Duration {
	screen.mu.Lock()
	defer screen.mu.Unlock()
	if screen.start.IsZero() {
		return 0
	}
	return screen.now().Sub(screen.start)
}

// fadeAlpha is the opacity of the black overlay after t.
func (screen *SplashScreen) fadeAlpha(t time.Duration) uint8 {
	if t <= screen.Duration {
		return 0
	}
	p := float64(t-screen.Duration) / float64(SplashFade)
	if p >= 1 {
		return 0xFF
	}
	return uint8(p * 0xFF)
}

// dotOffset is how far dot i is lifted, as a fraction of the bounce height.
func dotOffset(t time.Duration, i int) float64 {
	p := float64(t%dotBounce)/float64(dotBounce) - float64(i)*dotStagger
	return math.Abs(math.Sin(p * 2 * math.Pi))
}

func (screen *SplashScreen) Draw(d render.Drawer, snap state.Settings, elapsed time.Duration) {
	t := screen.since()
	theme := ThemeFor(snap.DarkMode)
	w, h := d.Size()
	d.Fill(image.Rect(0, 0, w, h), theme.Background)

	short := w
	if h < short {
		short = h
	}
	titleSize := short / 9
	if titleSize < 12 {
		titleSize = 12
	}
	style := render.TextStyle{Color: theme.Text, Size: titleSize, Font: state.FontDisplay}
	tm := d.MeasureMarquee(splashTitle, style)
	d.DrawMarquee(splashTitle, float64(w-tm.Width)/2, float64(h)*0.42, style, image.Rect(0, 0, w, h))

	radius := short / 40
	if radius < 3 {
		radius = 3
	}
	gap := radius * 4
	baseY := int(float64(h)*0.42) + titleSize
	startX := w/2 - gap
	for i := 0; i < dotCount; i++ {
		lift := int(dotOffset(t, i) * float64(radius*3))
		d.FillCircle(image.Pt(startX+i*gap, baseY-lift), radius, theme.Accent)
	}

	if a := screen.fadeAlpha(t); a > 0 {
		d.Fill(image.Rect(0, 0, w, h), color.RGBA{A: a})
	}
}
