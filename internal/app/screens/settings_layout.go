package screens

import (
	"image"

	"github.com/rook-computer/acrosstheroom/internal/render/layout"
	"github.com/rook-computer/acrosstheroom/internal/state"
)

type settingsLayout struct {
	header  image.Rectangle
	preview image.Rectangle
	qr      image.Rectangle
	rows    [rowCount]image.Rectangle
}

// computeLayout places the header, control rows, preview box and QR code for
// a w x h canvas. The preview keeps the viewport's aspect ratio.
func computeLayout(w, h int, snap state.Settings) settingsLayout {
	var l settingsLayout
	full := image.Rect(0, 0, w, h)
	short := w
	if h < short {
		short = h
	}
	margin := short / 30
	if margin < 4 {
		margin = 4
	}
	inner := layout.Inset(full, margin)
	l.header, inner = layout.SplitHorizontal(inner, h/12)

	var controls, side image.Rectangle
	if w > h {
		controls, side = layout.SplitVertical(inner, inner.Dx()*58/100)
		controls = image.Rect(controls.Min.X, controls.Min.Y, controls.Max.X-margin, controls.Max.Y)
		previewArea, qrArea := layout.SplitHorizontal(side, side.Dy()*45/100)
		l.preview = fitAspect(previewArea, snap)
		l.qr = squareBelow(qrArea, margin)
	} else {
		previewArea, rest := layout.SplitHorizontal(inner, inner.Dy()*24/100)
		l.preview = fitAspect(previewArea, snap)
		rest = image.Rect(rest.Min.X, rest.Min.Y+margin, rest.Max.X, rest.Max.Y)
		controls, side = layout.SplitVertical(rest, rest.Dx()*72/100)
		controls = image.Rect(controls.Min.X, controls.Min.Y, controls.Max.X-margin, controls.Max.Y)
		l.qr = layout.FitSquare(side)
	}

	gap := margin / 3
	rowHeight := (controls.Dy() - gap*(int(rowCount)-1)) / int(rowCount)
	rows := layout.Stack(controls, rowHeight, gap)
	for i := range l.rows {
		if i < len(rows) {
			l.rows[i] = rows[i]
		}
	}
	return l
}

func fitAspect(area image.Rectangle, snap state.Settings) image.Rectangle {
	vw, vh := snap.ViewportWidth, snap.ViewportHeight
	if vw <= 0 || vh <= 0 {
		vw, vh = 16, 9
	}
	w := area.Dx()
	h := w * vh / vw
	if h > area.Dy() {
		h = area.Dy()
		w = h * vw / vh
	}
	return layout.Center(area, w, h)
}

func squareBelow(area image.Rectangle, margin int) image.Rectangle {
	area = image.Rect(area.Min.X, area.Min.Y+margin, area.Max.X, area.Max.Y)
	sq := layout.FitSquare(area)
	return layout.Center(area, sq.Dx(), sq.Dy())
}
