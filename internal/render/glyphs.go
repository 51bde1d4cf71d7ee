package render

import (
	"image"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

type glyph struct {
	mask    *image.Alpha
	bounds  image.Rectangle // relative to the dot at (0,0)
	advance fixed.Int26_6
	ok      bool
}

// glyphSet rasterizes each rune once per face. Faces reuse their mask buffer
// between calls, so masks are copied before caching.
type glyphSet struct {
	mu        sync.Mutex
	face      font.Face
	glyphs    map[rune]*glyph
	ascent    int
	descent   int
	capHeight int
}

func newGlyphSet(face font.Face) *glyphSet {
	m := face.Metrics()
	set := &glyphSet{
		face:    face,
		glyphs:  make(map[rune]*glyph),
		ascent:  m.Ascent.Ceil(),
		descent: m.Descent.Ceil(),
	}
	set.capHeight = m.CapHeight.Ceil()
	if set.capHeight <= 0 {
		if b, _, ok := face.GlyphBounds('H'); ok {
			set.capHeight = (-b.Min.Y).Ceil()
		} else {
			set.capHeight = set.ascent
		}
	}
	return set
}

func (s *glyphSet) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.face.Close()
	s.glyphs = nil
}

func (s *glyphSet) lookup(r rune) *glyph {
	if g, ok := s.glyphs[r]; ok {
		return g
	}
	g := &glyph{}
	dr, mask, maskp, advance, ok := s.face.Glyph(fixed.Point26_6{}, r)
	if ok {
		g.ok = true
		g.advance = advance
		g.bounds = dr
		alpha := image.NewAlpha(image.Rect(0, 0, dr.Dx(), dr.Dy()))
		draw.Draw(alpha, alpha.Bounds(), mask, maskp, draw.Src)
		g.mask = alpha
	} else if adv, aok := s.face.GlyphAdvance(r); aok {
		g.advance = adv
	}
	s.glyphs[r] = g
	return g
}

// measure returns the advance width of text including kerning.
func (s *glyphSet) measure(text string) fixed.Int26_6 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.glyphs == nil {
		return 0
	}
	var width fixed.Int26_6
	prev := rune(-1)
	for _, r := range text {
		if prev >= 0 {
			width += s.face.Kern(prev, r)
		}
		width += s.lookup(r).advance
		prev = r
	}
	return width
}

// draw paints text starting at pen x with the given baseline, skipping glyphs
// that fall entirely outside clip.
func (s *glyphSet) draw(dst draw.Image, text string, x fixed.Int26_6, baseline int, src image.Image, clip image.Rectangle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.glyphs == nil {
		return
	}
	pen := x
	prev := rune(-1)
	for _, r := range text {
		if prev >= 0 {
			pen += s.face.Kern(prev, r)
		}
		prev = r
		g := s.lookup(r)
		if pen.Floor() > clip.Max.X {
			return
		}
		if g.ok && g.mask != nil {
			origin := image.Pt(pen.Round(), baseline)
			target := g.bounds.Add(origin)
			visible := target.Intersect(clip)
			if !visible.Empty() {
				mp := visible.Min.Sub(target.Min)
				draw.DrawMask(dst, visible, src, image.Point{}, g.mask, mp, draw.Over)
			}
		}
		pen += g.advance
	}
}
