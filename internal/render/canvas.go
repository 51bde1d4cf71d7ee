package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Canvas is the offscreen logical image every screen draws into. It
// implements Drawer.
type Canvas struct {
	img     *image.RGBA
	fonts   *FontBook
	scratch *image.RGBA
}

func NewCanvas(width, height int, fonts *FontBook) *Canvas {
	if fonts == nil {
		fonts = NewFontBook(nil)
	}
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, width, height)), fonts: fonts}
}

// Image exposes the backing image for blitting.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Resize reallocates the canvas when the size changes. It reports whether a
// new image was allocated.
func (c *Canvas) Resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	if b := c.img.Bounds(); b.Dx() == width && b.Dy() == height {
		return false
	}
	c.img = image.NewRGBA(image.Rect(0, 0, width, height))
	return true
}

func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

func (c *Canvas) Clear(col color.Color) {
	draw.Draw(c.img, c.img.Bounds(), &image.Uniform{C: col}, image.Point{}, draw.Src)
}

func (c *Canvas) Fill(rect image.Rectangle, col color.Color) {
	rect = rect.Intersect(c.img.Bounds())
	if rect.Empty() {
		return
	}
	op := draw.Over
	if _, _, _, a := col.RGBA(); a == 0xffff {
		op = draw.Src
	}
	draw.Draw(c.img, rect, &image.Uniform{C: col}, image.Point{}, op)
}

func (c *Canvas) StrokeRect(rect image.Rectangle, thickness int, col color.Color) {
	if thickness <= 0 {
		return
	}
	rect = rect.Canon()
	if thickness*2 >= rect.Dx() || thickness*2 >= rect.Dy() {
		c.Fill(rect, col)
		return
	}
	c.Fill(image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+thickness), col)
	c.Fill(image.Rect(rect.Min.X, rect.Max.Y-thickness, rect.Max.X, rect.Max.Y), col)
	c.Fill(image.Rect(rect.Min.X, rect.Min.Y+thickness, rect.Min.X+thickness, rect.Max.Y-thickness), col)
	c.Fill(image.Rect(rect.Max.X-thickness, rect.Min.Y+thickness, rect.Max.X, rect.Max.Y-thickness), col)
}

func (c *Canvas) FillCircle(center image.Point, radius int, col color.Color) {
	if radius <= 0 {
		return
	}
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		span := int(math.Sqrt(float64(r2 - dy*dy)))
		c.Fill(image.Rect(center.X-span, center.Y+dy, center.X+span+1, center.Y+dy+1), col)
	}
}

func (c *Canvas) MeasureText(text string, style TextStyle) TextMetrics {
	face := c.fonts.UIFace(style.Size)
	return measureFace(face, font.MeasureString(face, text))
}

func (c *Canvas) DrawText(text string, x, y int, style TextStyle) TextMetrics {
	face := c.fonts.UIFace(style.Size)
	tm := measureFace(face, font.MeasureString(face, text))
	switch style.Align {
	case TextAlignCenter:
		x -= tm.Width / 2
	case TextAlignRight:
		x -= tm.Width
	}
	col := style.Color
	if col == nil {
		col = color.White
	}
	d := &font.Drawer{Dst: c.img, Src: &image.Uniform{C: col}, Face: face}
	d.Dot = fixed.P(x, y+tm.Ascent)
	d.DrawString(text)
	return tm
}

func measureFace(face font.Face, advance fixed.Int26_6) TextMetrics {
	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	descent := m.Descent.Ceil()
	return TextMetrics{
		Width:      advance.Ceil(),
		Height:     ascent + descent,
		Ascent:     ascent,
		Descent:    descent,
		LineHeight: m.Height.Ceil(),
	}
}

func (c *Canvas) MeasureMarquee(text string, style TextStyle) TextMetrics {
	set := c.fonts.Glyphs(style.Font, style.Size)
	return TextMetrics{
		Width:      set.measure(text).Ceil(),
		Height:     set.ascent + set.descent,
		Ascent:     set.ascent,
		Descent:    set.descent,
		LineHeight: set.ascent + set.descent,
		CapHeight:  set.capHeight,
	}
}

func (c *Canvas) DrawMarquee(text string, x, centerY float64, style TextStyle, clip image.Rectangle) {
	clip = clip.Intersect(c.img.Bounds())
	if clip.Empty() || text == "" {
		return
	}
	set := c.fonts.Glyphs(style.Font, style.Size)
	col := style.Color
	if col == nil {
		col = color.White
	}
	baseline := int(math.Round(centerY + float64(set.capHeight)/2))
	set.draw(c.img, text, fixed.Int26_6(math.Round(x*64)), baseline, &image.Uniform{C: col}, clip)
}

func (c *Canvas) ImageSize(img image.Image) (int, int) {
	if img == nil {
		return 0, 0
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func (c *Canvas) DrawImageInRect(img image.Image, rect image.Rectangle, mode ScaleMode) {
	if img == nil || rect.Empty() {
		return
	}
	src := img.Bounds()
	if src.Empty() {
		return
	}
	dst := rect
	switch mode {
	case ScaleModeFit:
		dst = fitRect(src.Size(), rect)
	case ScaleModeFill:
		src = coverCrop(src, rect.Size())
	}
	xdraw.NearestNeighbor.Scale(c.img, dst, img, src, xdraw.Over, nil)
}

// ScaleRegion magnifies rect around its center. Scales at or below 1 are a
// no-op.
func (c *Canvas) ScaleRegion(rect image.Rectangle, scale float64) {
	rect = rect.Intersect(c.img.Bounds())
	if rect.Empty() || scale <= 1.0001 {
		return
	}
	w := int(math.Round(float64(rect.Dx()) / scale))
	h := int(math.Round(float64(rect.Dy()) / scale))
	if w < 1 || h < 1 {
		return
	}
	src := image.Rect(0, 0, w, h).Add(rect.Min).Add(image.Pt((rect.Dx()-w)/2, (rect.Dy()-h)/2))
	if c.scratch == nil || c.scratch.Bounds().Dx() < w || c.scratch.Bounds().Dy() < h {
		c.scratch = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	tmp := image.Rect(0, 0, w, h)
	draw.Draw(c.scratch, tmp, c.img, src.Min, draw.Src)
	xdraw.ApproxBiLinear.Scale(c.img, rect, c.scratch, tmp, xdraw.Src, nil)
}

func fitRect(size image.Point, rect image.Rectangle) image.Rectangle {
	if size.X <= 0 || size.Y <= 0 {
		return image.Rectangle{}
	}
	scale := math.Min(float64(rect.Dx())/float64(size.X), float64(rect.Dy())/float64(size.Y))
	w := int(float64(size.X) * scale)
	h := int(float64(size.Y) * scale)
	x := rect.Min.X + (rect.Dx()-w)/2
	y := rect.Min.Y + (rect.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}

func coverCrop(src image.Rectangle, target image.Point) image.Rectangle {
	if target.X <= 0 || target.Y <= 0 {
		return src
	}
	scale := math.Max(float64(target.X)/float64(src.Dx()), float64(target.Y)/float64(src.Dy()))
	w := int(float64(target.X) / scale)
	h := int(float64(target.Y) / scale)
	x := src.Min.X + (src.Dx()-w)/2
	y := src.Min.Y + (src.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}
