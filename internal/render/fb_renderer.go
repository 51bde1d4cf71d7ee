package render

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"sync/atomic"
	"time"

	fb "github.com/gonutz/framebuffer"
	xdraw "golang.org/x/image/draw"

	"github.com/rook-computer/acrosstheroom/internal/state"
)

// FBRenderer renders to the Linux framebuffer using an offscreen logical canvas.
type FBRenderer struct {
	Device        string
	FPS           int
	CanvasMaxSide int
	Logger        interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}
	Debug bool

	fbDev      *fb.Device
	compositor *Compositor
	pending    atomic.Value // Screen set before Start
	running    atomic.Bool
	frames     atomic.Int64
}

func NewFBRenderer() *FBRenderer {
	return &FBRenderer{Device: "/dev/fb0", FPS: DefaultFPS, CanvasMaxSide: DefaultCanvasMaxSide}
}

func (r *FBRenderer) Start(ctx context.Context) error {
	dev, err := fb.Open(r.Device)
	if err != nil {
		return fmt.Errorf("open framebuffer %s: %w", r.Device, err)
	}
	r.fbDev = dev
	bounds := dev.Bounds()
	width, height := CanvasSize(bounds.Dx(), bounds.Dy(), r.CanvasMaxSide)
	if r.Logger != nil {
		r.Logger.Infof("fb", "framebuffer %s open, bounds=%dx%d canvas=%dx%d", r.Device, bounds.Dx(), bounds.Dy(), width, height)
	}
	r.compositor = NewCompositor(width, height, NewFontBook(r.Logger))
	if s, ok := r.pending.Load().(screenBox); ok && s.screen != nil {
		r.compositor.SetScreen(s.screen)
	}
	r.running.Store(true)
	return nil
}

func (r *FBRenderer) Stop() error {
	r.running.Store(false)
	if r.fbDev != nil {
		r.fbDev.Close()
	}
	return nil
}

type screenBox struct{ screen Screen }

// SetScreen sets the current logical screen to be drawn.
func (r *FBRenderer) SetScreen(screen Screen) {
	r.pending.Store(screenBox{screen: screen})
	if r.compositor != nil {
		r.compositor.SetScreen(screen)
	}
}

// Size reports the logical canvas size, or zero before Start.
func (r *FBRenderer) Size() (int, int) {
	if r.compositor == nil {
		return 0, 0
	}
	return r.compositor.Size()
}

func (r *FBRenderer) RedrawWithState(snap state.Settings) {
	if !r.running.Load() || r.compositor == nil || r.fbDev == nil {
		return
	}
	frame := r.compositor.Compose(snap)
	if frame == nil {
		return
	}
	blitToFB(r.fbDev, frame)
	r.frames.Add(1)
}

// RunLoop publishes the canvas size to the store and redraws at the configured
// frame rate until the context is done.
func (r *FBRenderer) RunLoop(ctx context.Context, store *state.Store) {
	if w, h := r.Size(); w > 0 && h > 0 {
		store.SetViewport(w, h)
	}
	fps := r.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	lastLog := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap := store.Snapshot()
			r.RedrawWithState(snap)
			if r.Debug && r.Logger != nil && time.Since(lastLog) > 5*time.Second {
				r.Logger.Infof("fb", "frames=%d preset=%s effect=%s", r.frames.Load(), snap.Preset, snap.Effect)
				lastLog = time.Now()
			}
		}
	}
}

// blitToFB scales the canvas up to the framebuffer with nearest-neighbor
// sampling.
func blitToFB(dev draw.Image, canvas *image.RGBA) {
	if dev == nil || canvas == nil {
		return
	}
	xdraw.NearestNeighbor.Scale(dev, dev.Bounds(), canvas, canvas.Bounds(), draw.Src, nil)
}
