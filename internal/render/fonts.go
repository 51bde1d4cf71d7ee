package render

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"

	"github.com/rook-computer/acrosstheroom/internal/assets"
	"github.com/rook-computer/acrosstheroom/internal/state"
)

type faceKey struct {
	family state.Font
	size   int
}

// FontBook parses the embedded fonts once and hands out faces by family and
// pixel size. UI faces come from freetype; marquee text goes through the
// opentype glyph cache.
type FontBook struct {
	mu        sync.Mutex
	ui        *truetype.Font
	marquee   map[state.Font]*opentype.Font
	uiFaces   map[int]font.Face
	glyphSets map[faceKey]*glyphSet
	lru       []faceKey
	Logger    interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}
}

func NewFontBook(logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}) *FontBook {
	b := &FontBook{
		marquee:   make(map[state.Font]*opentype.Font),
		uiFaces:   make(map[int]font.Face),
		glyphSets: make(map[faceKey]*glyphSet),
		Logger:    logger,
	}
	if tt, err := truetype.Parse(assets.UIFontTTF); err != nil {
		b.errorf("truetype parse failed, UI text uses basicfont: %v", err)
	} else {
		b.ui = tt
	}
	for _, f := range state.Fonts {
		parsed, err := opentype.Parse(assets.FontTTF(f))
		if err != nil {
			b.errorf("font %s parse failed, using basicfont: %v", f, err)
			continue
		}
		b.marquee[f] = parsed
	}
	return b
}

func (b *FontBook) errorf(format string, args ...interface{}) {
	if b.Logger != nil {
		b.Logger.Errorf("fonts", format, args...)
	}
}

// UIFace returns the settings-screen face at sizePx pixels.
func (b *FontBook) UIFace(sizePx int) font.Face {
	if sizePx <= 0 {
		sizePx = DefaultTextSize
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if face, ok := b.uiFaces[sizePx]; ok {
		return face
	}
	if b.ui == nil {
		return basicfont.Face7x13
	}
	// At 72 DPI one point is one pixel.
	face := truetype.NewFace(b.ui, &truetype.Options{Size: float64(sizePx), DPI: 72, Hinting: font.HintingFull})
	b.uiFaces[sizePx] = face
	return face
}

// Glyphs returns the cached glyph set for family at sizePx pixels. Only the
// most recently used sets are kept.
func (b *FontBook) Glyphs(family state.Font, sizePx int) *glyphSet {
	if sizePx <= 0 {
		sizePx = DefaultTextSize
	}
	if !family.Valid() {
		family = state.FontDisplay
	}
	key := faceKey{family: family, size: sizePx}

	b.mu.Lock()
	defer b.mu.Unlock()
	if set, ok := b.glyphSets[key]; ok {
		b.touch(key)
		return set
	}

	var face font.Face = basicfont.Face7x13
	if parsed := b.marquee[family]; parsed != nil {
		f, err := opentype.NewFace(parsed, &opentype.FaceOptions{Size: float64(sizePx), DPI: 72, Hinting: font.HintingNone})
		if err != nil {
			b.errorf("face %s@%dpx failed, using basicfont: %v", family, sizePx, err)
		} else {
			face = f
		}
	}
	set := newGlyphSet(face)
	b.glyphSets[key] = set
	b.touch(key)
	for len(b.lru) > maxMarqueeFaces {
		oldest := b.lru[0]
		b.lru = b.lru[1:]
		if old := b.glyphSets[oldest]; old != nil {
			old.close()
		}
		delete(b.glyphSets, oldest)
	}
	return set
}

func (b *FontBook) touch(key faceKey) {
	for i, k := range b.lru {
		if k == key {
			b.lru = append(b.lru[:i], b.lru[i+1:]...)
			break
		}
	}
	b.lru = append(b.lru, key)
}
