// Package assets holds the embedded font data for the marquee families and
// the settings UI.
package assets

import (
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"

	"github.com/rook-computer/acrosstheroom/internal/state"
)

// UIFontTTF is used for labels and controls on the settings screen.
var UIFontTTF = goregular.TTF

// UIBoldFontTTF is used for headings.
var UIBoldFontTTF = gomedium.TTF

// FontTTF returns the TrueType data used to render marquee text in family f.
// Unknown families use the display face.
func FontTTF(f state.Font) []byte {
	switch f {
	case state.FontHandwriting:
		return goitalic.TTF
	case state.FontMonospace:
		return gomono.TTF
	case state.FontSerif:
		return gosmallcaps.TTF
	default:
		return gobold.TTF
	}
}
