package render

import (
	"context"
	"image"
	"image/color"
	"time"

	"github.com/rook-computer/acrosstheroom/internal/state"
)

type Renderer interface {
	Start(ctx context.Context) error
	Stop() error
	SetScreen(screen Screen)
	RunLoop(ctx context.Context, store *state.Store)
	RedrawWithState(snap state.Settings)
}

// Screen is a logical view drawn once per frame. elapsed is the time since
// the renderer started and drives every animation.
type Screen interface {
	Start(ctx context.Context) error
	Stop() error
	Draw(d Drawer, s state.Settings, elapsed time.Duration)
}

type NoopRenderer struct{}

func (n *NoopRenderer) Start(ctx context.Context) error                 { return nil }
func (n *NoopRenderer) Stop() error                                     { return nil }
func (n *NoopRenderer) SetScreen(screen Screen)                         {}
func (n *NoopRenderer) RunLoop(ctx context.Context, store *state.Store) {}
func (n *NoopRenderer) RedrawWithState(snap state.Settings)             {}

// Drawer is an abstraction the renderer provides to screens to draw primitives
// without exposing the backing image.
type Drawer interface {
	// Size returns the logical canvas size (in pixels) that screens draw into.
	Size() (width int, height int)

	Fill(rect image.Rectangle, c color.Color)
	StrokeRect(rect image.Rectangle, thickness int, c color.Color)
	FillCircle(center image.Point, radius int, c color.Color)

	// UI text. Coordinates use a top-left anchor for Y; Align controls X.
	MeasureText(text string, style TextStyle) TextMetrics
	DrawText(text string, x, y int, style TextStyle) TextMetrics

	// Marquee text is laid out on one line from x and vertically centered on
	// centerY by cap height. Glyphs outside clip are skipped.
	MeasureMarquee(text string, style TextStyle) TextMetrics
	DrawMarquee(text string, x, centerY float64, style TextStyle, clip image.Rectangle)

	ImageSize(img image.Image) (width int, height int)
	DrawImageInRect(img image.Image, rect image.Rectangle, mode ScaleMode)

	// ScaleRegion magnifies the current contents of rect around its center.
	ScaleRegion(rect image.Rectangle, scale float64)
}

type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

// TextStyle describes how to render text.
type TextStyle struct {
	Color color.Color
	Size  int // pixels; 0 means renderer default
	Align TextAlign
	Font  state.Font
}

type TextMetrics struct {
	Width      int
	Height     int
	Ascent     int
	Descent    int
	LineHeight int
	// CapHeight is only filled in for marquee text.
	CapHeight int
}

type ScaleMode int

const (
	ScaleModeFit ScaleMode = iota
	ScaleModeFill
	ScaleModeStretch
)
