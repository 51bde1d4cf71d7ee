// Package surface draws the scrolling message. The settings preview and the
// full-screen display are both Surfaces; they differ only in framing.
package surface

import (
	"image"
	"image/color"
	"math"
	"time"

	"github.com/rook-computer/acrosstheroom/internal/animation"
	"github.com/rook-computer/acrosstheroom/internal/render"
	"github.com/rook-computer/acrosstheroom/internal/render/layout"
	"github.com/rook-computer/acrosstheroom/internal/state"
)

type Kind int

const (
	KindPreview Kind = iota
	KindDisplay
)

func (k Kind) String() string {
	if k == KindPreview {
		return "preview"
	}
	return "display"
}

type Surface struct {
	Kind Kind
	// Border frames the preview box. The display has none.
	Border      color.Color
	BorderWidth int
}

func NewPreview(border color.Color) *Surface {
	return &Surface{Kind: KindPreview, Border: border, BorderWidth: 2}
}

func NewDisplay() *Surface {
	return &Surface{Kind: KindDisplay}
}

// Composition describes what Render drew, in surface coordinates.
type Composition struct {
	Frame     animation.Frame
	Params    animation.Params
	Content   image.Rectangle
	Text      string
	TextWidth int
	// TextX is the leading edge of every row relative to Content.Min.X.
	TextX float64
}

// Render draws snap into rect after elapsed.
func (s *Surface) Render(d render.Drawer, rect image.Rectangle, snap state.Settings, elapsed time.Duration) Composition {
	content := rect
	if s.Kind == KindPreview && s.BorderWidth > 0 {
		content = layout.Inset(rect, s.BorderWidth)
	}
	c := Composition{
		Frame:   animation.FrameAt(snap, elapsed),
		Content: content,
		Text:    snap.EffectiveText(),
	}
	defer s.drawBorder(d, rect)

	if c.Frame.Blank {
		d.Fill(content, color.Black)
		return c
	}
	d.Fill(content, c.Frame.Background)

	c.Params = animation.Calculate(animation.InputFor(snap, content.Size()))
	if len(c.Params.Rows) == 0 {
		return c
	}
	style := render.TextStyle{
		Color: c.Frame.Text,
		Size:  int(math.Round(c.Params.FontSizePx)),
		Font:  snap.Font,
	}
	c.TextWidth = d.MeasureMarquee(c.Text, style).Width
	c.TextX = c.Params.TextX(elapsed, float64(c.TextWidth))
	for _, row := range c.Params.Rows {
		d.DrawMarquee(c.Text, float64(content.Min.X)+c.TextX, float64(content.Min.Y)+row.CenterY, style, content)
	}
	if c.Frame.Scale > 1 {
		d.ScaleRegion(content, c.Frame.Scale)
	}
	return c
}

func (s *Surface) drawBorder(d render.Drawer, rect image.Rectangle) {
	if s.Kind != KindPreview || s.BorderWidth <= 0 || s.Border == nil {
		return
	}
	d.StrokeRect(rect, s.BorderWidth, s.Border)
}
