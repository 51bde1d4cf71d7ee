package render

import (
	"image"
	"image/color"
	"sync"
	"time"

	"github.com/rook-computer/acrosstheroom/internal/state"
)

// Compositor owns the logical canvas and the current screen. Backends call
// Compose once per frame and present the returned image.
type Compositor struct {
	mu      sync.Mutex
	canvas  *Canvas
	current Screen
	start   time.Time
	now     func() time.Time
}

func NewCompositor(width, height int, fonts *FontBook) *Compositor {
	return &Compositor{
		canvas: NewCanvas(width, height, fonts),
		start:  time.Now(),
		now:    time.Now,
	}
}

func (c *Compositor) SetScreen(screen Screen) {
	c.mu.Lock()
	c.current = screen
	c.mu.Unlock()
}

func (c *Compositor) Size() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canvas.Size()
}

// Resize changes the logical canvas size and reports whether it changed.
func (c *Compositor) Resize(width, height int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canvas.Resize(width, height)
}

// Elapsed is the animation clock shared by every screen.
func (c *Compositor) Elapsed() time.Duration { return c.now().Sub(c.start) }

// Compose clears the canvas and draws the current screen. It returns nil when
// no screen is set.
func (c *Compositor) Compose(snap state.Settings) *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	c.canvas.Clear(color.Black)
	c.current.Draw(c.canvas, snap, c.now().Sub(c.start))
	return c.canvas.Image()
}
