package screens

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/rook-computer/acrosstheroom/internal/render"
	"github.com/rook-computer/acrosstheroom/internal/render/layout"
	"github.com/rook-computer/acrosstheroom/internal/state"
)

var rainbowStripes = []state.Color{state.Red, state.Yellow, state.Green, state.Cyan, state.Blue, state.Magenta}

// painter carries per-frame drawing context for the settings screen.
type painter struct {
	d       render.Drawer
	theme   Theme
	snap    state.Settings
	elapsed time.Duration
	focus   rowKind
	cursor  [2]int
	regions []region
}

func (p *painter) add(r region) { p.regions = append(p.regions, r) }

func (screen *SettingsScreen) Draw(d render.Drawer, snap state.Settings, elapsed time.Duration) {
	w, h := d.Size()
	theme := ThemeFor(snap.DarkMode)
	d.Fill(image.Rect(0, 0, w, h), theme.Background)

	screen.mu.Lock()
	p := &painter{d: d, theme: theme, snap: snap, elapsed: elapsed, focus: screen.focus, cursor: screen.cursor}
	screen.mu.Unlock()

	l := computeLayout(w, h, snap)
	p.header(l.header)
	for i := rowKind(0); i < rowCount; i++ {
		p.row(i, l.rows[i])
	}

	screen.preview.Border = theme.Border
	screen.preview.Render(d, l.preview, snap, elapsed)
	p.add(region{rect: l.preview, row: previewRow})

	screen.drawQR(p, l.qr)

	screen.mu.Lock()
	screen.regions = p.regions
	screen.mu.Unlock()
}

func (p *painter) textSize(rect image.Rectangle, percent int) int {
	size := rect.Dy() * percent / 100
	if size < 8 {
		size = 8
	}
	return size
}

// centerText draws text vertically centered in rect starting at x.
func (p *painter) centerText(text string, x int, rect image.Rectangle, style render.TextStyle) render.TextMetrics {
	tm := p.d.MeasureText(text, style)
	return p.d.DrawText(text, x, rect.Min.Y+(rect.Dy()-tm.Height)/2, style)
}

func (p *painter) header(rect image.Rectangle) {
	if rect.Empty() {
		return
	}
	size := p.textSize(rect, 60)
	p.centerText("Across the Room", rect.Min.X, rect, render.TextStyle{Color: p.theme.Text, Size: size})
	hint := render.TextStyle{Color: p.theme.Muted, Size: size / 2, Align: render.TextAlignRight}
	p.centerText("arrows move, enter selects", rect.Max.X, rect, hint)
}

func (p *painter) row(kind rowKind, rect image.Rectangle) {
	if rect.Empty() {
		return
	}
	focused := kind == p.focus
	if focused {
		p.d.Fill(rect, p.theme.Panel)
		p.d.Fill(image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+4, rect.Max.Y), p.theme.Focus)
	}
	if kind == rowDisplay {
		p.displayButton(rect, focused)
		return
	}

	labelRect, widget := layout.SplitVertical(rect, rect.Dx()*30/100)
	p.centerText(rowLabels[kind], labelRect.Min.X+12, labelRect, render.TextStyle{Color: p.theme.Muted, Size: p.textSize(rect, 40)})
	pad := rect.Dy() / 8
	widget = image.Rect(widget.Min.X, widget.Min.Y+pad, widget.Max.X-pad, widget.Max.Y-pad)

	switch kind {
	case rowMessage:
		p.messageField(widget, focused)
	case rowCapitalize:
		p.toggle(kind, widget, p.snap.Capitalized)
	case rowTextColor:
		p.swatchRow(targetText, widget, focused)
	case rowBackground:
		p.swatchRow(targetBackground, widget, focused)
	case rowSpeed:
		p.slider(widget)
	case rowFont:
		p.selector(kind, widget, fontTitles[p.snap.Font], p.snap.Font)
	case rowPreset:
		p.selector(kind, widget, presetTitle(p.snap.Preset), state.FontDisplay)
	case rowDualText:
		p.toggle(kind, widget, p.snap.DualText)
	case rowDarkMode:
		p.toggle(kind, widget, p.snap.DarkMode)
	}
}

func (p *painter) messageField(rect image.Rectangle, focused bool) {
	border := p.theme.Border
	if focused {
		border = p.theme.Focus
	}
	p.d.Fill(rect, p.theme.Panel)
	p.d.StrokeRect(rect, 2, border)
	p.add(region{rect: rect, row: rowMessage})

	style := render.TextStyle{Color: p.theme.Text, Size: p.textSize(rect, 60)}
	text := []rune(p.snap.Message)
	if len(text) == 0 {
		style.Color = p.theme.Muted
		text = []rune(state.PlaceholderText)
	}
	pad := rect.Dy() / 4
	avail := rect.Dx() - pad*2
	// Show the tail of long messages so the caret stays visible.
	for len(text) > 0 && p.d.MeasureText(string(text), style).Width > avail {
		text = text[1:]
	}
	tm := p.centerText(string(text), rect.Min.X+pad, rect, style)
	if focused && p.elapsed%time.Second < 500*time.Millisecond {
		x := rect.Min.X + pad
		if p.snap.Message != "" {
			x += tm.Width
		}
		p.d.Fill(image.Rect(x+1, rect.Min.Y+pad, x+3, rect.Max.Y-pad), p.theme.Text)
	}
}

func (p *painter) toggle(kind rowKind, rect image.Rectangle, on bool) {
	h := rect.Dy()
	pill := image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+h*2, rect.Max.Y)
	p.add(region{rect: pill, row: kind})
	track := p.theme.Border
	knobX := pill.Min.X + h/2
	if on {
		track = p.theme.Accent
		knobX = pill.Max.X - h/2
	}
	p.d.Fill(pill, track)
	p.d.FillCircle(image.Pt(knobX, pill.Min.Y+h/2), h/2-3, p.theme.OnAccent)
	label := "off"
	if on {
		label = "on"
	}
	p.centerText(label, pill.Max.X+h/2, rect, render.TextStyle{Color: p.theme.Text, Size: p.textSize(rect, 60)})
}

func (p *painter) swatchRow(target colorTarget, rect image.Rectangle, focused bool) {
	items := swatchesFor(target)
	row := rowTextColor
	if target == targetBackground {
		row = rowBackground
	}
	gap := 4
	size := (rect.Dx() - gap*(len(items)-1)) / len(items)
	if size > rect.Dy() {
		size = rect.Dy()
	}
	if size < 4 {
		return
	}
	y := rect.Min.Y + (rect.Dy()-size)/2
	for i, sw := range items {
		x := rect.Min.X + i*(size+gap)
		cell := image.Rect(x, y, x+size, y+size)
		p.drawSwatch(sw, cell)
		if sw.selected(target, p.snap) {
			p.d.StrokeRect(cell, 3, p.theme.Text)
		} else {
			p.d.StrokeRect(cell, 1, p.theme.Border)
		}
		if focused && p.cursor[target] == i {
			p.d.StrokeRect(cell.Inset(-3), 2, p.theme.Focus)
		}
		p.add(region{rect: cell, row: row, index: i})
	}
}

func (p *painter) drawSwatch(sw swatch, cell image.Rectangle) {
	switch sw.kind {
	case swatchColor:
		p.d.Fill(cell, sw.color.RGBA())
	case swatchRainbowText:
		p.stripes(cell)
	case swatchEffect:
		switch sw.effect {
		case state.EffectRainbowBackground:
			p.stripes(cell)
			p.d.Fill(cell.Inset(cell.Dx()/4), color.Black)
		case state.EffectLightning:
			p.d.Fill(cell, color.Black)
			s := cell.Dx() / 6
			cx, cy := cell.Min.X+cell.Dx()/2, cell.Min.Y+cell.Dy()/2
			p.d.Fill(image.Rect(cx, cell.Min.Y+s, cx+s, cy), color.White)
			p.d.Fill(image.Rect(cx-s, cy-s/2, cx+s, cy+s/2), color.White)
			p.d.Fill(image.Rect(cx-s, cy, cx, cell.Max.Y-s), color.White)
		case state.EffectSiren:
			left, right := layout.SplitVertical(cell, cell.Dx()/2)
			p.d.Fill(left, state.Blue.RGBA())
			p.d.Fill(right, state.Red.RGBA())
		case state.EffectHeartbeat:
			p.d.Fill(cell, state.DarkRed.RGBA())
			p.d.FillCircle(image.Pt(cell.Min.X+cell.Dx()/2, cell.Min.Y+cell.Dy()/2), cell.Dx()/4, state.Red.RGBA())
		}
	case swatchCustom:
		p.d.Fill(cell, p.theme.Panel)
		p.d.DrawText("+", cell.Min.X+cell.Dx()/2, cell.Min.Y+cell.Dy()/8, render.TextStyle{Color: p.theme.Text, Size: cell.Dy() * 3 / 4, Align: render.TextAlignCenter})
	}
}

func (p *painter) stripes(cell image.Rectangle) {
	for i, col := range layout.Columns(cell, len(rainbowStripes), 0) {
		p.d.Fill(col, rainbowStripes[i].RGBA())
	}
}

func (p *painter) slider(rect image.Rectangle) {
	valueWidth := rect.Dy() * 3 / 2
	area, value := layout.SplitVertical(rect, rect.Dx()-valueWidth)
	knob := rect.Dy() / 3
	track := image.Rect(area.Min.X+knob, area.Min.Y, area.Max.X-knob, area.Max.Y)
	p.add(region{rect: area, row: rowSpeed, track: track})

	thickness := rect.Dy() / 6
	if thickness < 2 {
		thickness = 2
	}
	midY := track.Min.Y + track.Dy()/2
	p.d.Fill(image.Rect(track.Min.X, midY-thickness/2, track.Max.X, midY+thickness/2+1), p.theme.Border)
	steps := state.MaxScrollSpeed - state.MinScrollSpeed
	for i := 0; i <= steps; i++ {
		x := track.Min.X + i*track.Dx()/steps
		p.d.Fill(image.Rect(x-1, midY-thickness, x+1, midY+thickness), p.theme.Muted)
	}
	x := track.Min.X + (p.snap.ScrollSpeed-state.MinScrollSpeed)*track.Dx()/steps
	p.d.FillCircle(image.Pt(x, midY), knob, p.theme.Accent)
	p.centerText(fmt.Sprintf("%d", p.snap.ScrollSpeed), value.Min.X+value.Dx()/2, value, render.TextStyle{Color: p.theme.Text, Size: p.textSize(rect, 60), Align: render.TextAlignCenter})
}

// selector draws "<  name  >" with tappable arrows. The name is set in family.
func (p *painter) selector(kind rowKind, rect image.Rectangle, name string, family state.Font) {
	cols := layout.Columns(rect, 3, 0)
	left := image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+rect.Dy(), rect.Max.Y)
	right := image.Rect(rect.Max.X-rect.Dy(), rect.Min.Y, rect.Max.X, rect.Max.Y)
	p.add(region{rect: cols[0], row: kind, index: -1})
	p.add(region{rect: cols[2], row: kind, index: 1})

	arrow := render.TextStyle{Color: p.theme.Accent, Size: p.textSize(rect, 70), Align: render.TextAlignCenter}
	p.centerText("<", left.Min.X+left.Dx()/2, left, arrow)
	p.centerText(">", right.Min.X+right.Dx()/2, right, arrow)

	middle := image.Rect(left.Max.X, rect.Min.Y, right.Min.X, rect.Max.Y)
	style := render.TextStyle{Color: p.theme.Text, Size: p.textSize(rect, 55), Font: family}
	tm := p.d.MeasureMarquee(name, style)
	x := float64(middle.Min.X) + float64(middle.Dx()-tm.Width)/2
	p.d.DrawMarquee(name, x, float64(middle.Min.Y)+float64(middle.Dy())/2, style, middle)
}

func (p *painter) displayButton(rect image.Rectangle, focused bool) {
	button := layout.Inset(rect, rect.Dy()/10)
	p.d.Fill(button, p.theme.Accent)
	if focused {
		p.d.StrokeRect(button, 3, p.theme.Focus)
	}
	p.add(region{rect: button, row: rowDisplay})
	style := render.TextStyle{Color: p.theme.OnAccent, Size: p.textSize(button, 50), Align: render.TextAlignCenter}
	p.centerText("DISPLAY", button.Min.X+button.Dx()/2, button, style)
}

func (screen *SettingsScreen) drawQR(p *painter, rect image.Rectangle) {
	if rect.Dx() < 32 || rect.Dy() < 32 {
		return
	}
	caption := rect.Dy() / 8
	square := layout.FitSquare(image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Max.Y-caption))
	square = layout.Center(image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Max.Y-caption), square.Dx(), square.Dy())
	img, err := screen.qr.Get(p.snap.EffectiveText(), square.Dx())
	if err != nil {
		if !screen.qrFailed {
			screen.errorf("qr code: %v", err)
			screen.qrFailed = true
		}
		return
	}
	screen.qrFailed = false
	p.d.Fill(square, color.White)
	p.d.DrawImageInRect(img, layout.Inset(square, square.Dx()/16), render.ScaleModeFit)
	captionRect := image.Rect(rect.Min.X, square.Max.Y, rect.Max.X, rect.Max.Y)
	style := render.TextStyle{Color: p.theme.Muted, Size: p.textSize(captionRect, 60), Align: render.TextAlignCenter}
	p.centerText("scan to take the text with you", captionRect.Min.X+captionRect.Dx()/2, captionRect, style)
}
