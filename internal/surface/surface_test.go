package surface

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/rook-computer/acrosstheroom/internal/animation"
	"github.com/rook-computer/acrosstheroom/internal/render"
	"github.com/rook-computer/acrosstheroom/internal/state"
)

type marqueeCall struct {
	text  string
	x, y  float64
	style render.TextStyle
	clip  image.Rectangle
}

type fill struct {
	rect image.Rectangle
	c    color.Color
}

// recorder is a Drawer that remembers calls. Marquee text measures 10px per
// rune.
type recorder struct {
	fills    []fill
	strokes  []image.Rectangle
	marquees []marqueeCall
	scales   []float64
}

func (r *recorder) Size() (int, int) { return 800, 480 }

func (r *recorder) Fill(rect image.Rectangle, c color.Color) {
	r.fills = append(r.fills, fill{rect, c})
}

func (r *recorder) StrokeRect(rect image.Rectangle, _ int, _ color.Color) {
	r.strokes = append(r.strokes, rect)
}

func (r *recorder) FillCircle(image.Point, int, color.Color) {}

func (r *recorder) MeasureText(string, render.TextStyle) render.TextMetrics {
	return render.TextMetrics{}
}

func (r *recorder) DrawText(string, int, int, render.TextStyle) render.TextMetrics {
	return render.TextMetrics{}
}

func (r *recorder) MeasureMarquee(text string, _ render.TextStyle) render.TextMetrics {
	return render.TextMetrics{Width: 10 * len([]rune(text))}
}

func (r *recorder) DrawMarquee(text string, x, y float64, style render.TextStyle, clip image.Rectangle) {
	r.marquees = append(r.marquees, marqueeCall{text, x, y, style, clip})
}

func (r *recorder) ImageSize(image.Image) (int, int) { return 0, 0 }

func (r *recorder) DrawImageInRect(image.Image, image.Rectangle, render.ScaleMode) {}

func (r *recorder) ScaleRegion(_ image.Rectangle, scale float64) {
	r.scales = append(r.scales, scale)
}

func landscape() state.Settings {
	s := state.DefaultSettings()
	s.ViewportWidth, s.ViewportHeight = 800, 480
	s.Orientation = state.Landscape
	return s
}

func TestDisplayDrawsBackgroundAndOneRow(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	snap := landscape()
	rect := image.Rect(0, 0, 800, 480)
	c := NewDisplay().Render(rec, rect, snap, 0)

	if len(rec.fills) != 1 || rec.fills[0].rect != rect || rec.fills[0].c != snap.BackgroundColor.RGBA() {
		t.Fatalf("fills=%+v", rec.fills)
	}
	if len(rec.marquees) != 1 {
		t.Fatalf("marquees=%d want 1", len(rec.marquees))
	}
	m := rec.marquees[0]
	if m.text != "HELLO" || m.y != 240 || m.x != 800 {
		t.Fatalf("marquee=%+v", m)
	}
	if m.style.Size != 576 || m.style.Color != snap.TextColor.RGBA() || m.style.Font != state.FontDisplay {
		t.Fatalf("style=%+v", m.style)
	}
	if len(rec.strokes) != 0 {
		t.Fatalf("display drew a border")
	}
	if c.TextWidth != 50 {
		t.Fatalf("TextWidth=%d", c.TextWidth)
	}
}

func TestTextScrollsAcrossContainer(t *testing.T) {
	t.Parallel()

	snap := landscape()
	duration := animation.ScrollDuration(snap.ScrollSpeed)
	rect := image.Rect(0, 0, 800, 480)

	half := NewDisplay().Render(&recorder{}, rect, snap, duration/2)
	want := 800 - 0.5*(800+50)
	if half.TextX != want {
		t.Fatalf("TextX at half=%v want %v", half.TextX, want)
	}
	wrapped := NewDisplay().Render(&recorder{}, rect, snap, duration)
	if wrapped.TextX != 800 {
		t.Fatalf("TextX after one loop=%v want 800", wrapped.TextX)
	}
}

func TestPortraitDualTextDrawsTwoRows(t *testing.T) {
	t.Parallel()

	snap := state.DefaultSettings()
	snap.Orientation = state.Portrait
	rec := &recorder{}
	NewDisplay().Render(rec, image.Rect(0, 0, 400, 800), snap, 0)
	if len(rec.marquees) != 2 {
		t.Fatalf("marquees=%d want 2", len(rec.marquees))
	}
	if rec.marquees[0].y != 200 || rec.marquees[1].y != 600 {
		t.Fatalf("row centers=%v,%v", rec.marquees[0].y, rec.marquees[1].y)
	}
	if rec.marquees[0].style.Size != 480 {
		t.Fatalf("font size=%d want 480", rec.marquees[0].style.Size)
	}

	snap.DualText = false
	rec = &recorder{}
	NewDisplay().Render(rec, image.Rect(0, 0, 400, 800), snap, 0)
	if len(rec.marquees) != 1 {
		t.Fatalf("single text drew %d rows", len(rec.marquees))
	}
}

func TestPreviewAndDisplayAgree(t *testing.T) {
	t.Parallel()

	store := state.NewStore()
	store.SetViewport(800, 480)
	store.SetMessage("across the room")
	store.ApplyPreset(state.PresetParty)
	snap := store.Snapshot()

	for _, at := range []time.Duration{0, 333 * time.Millisecond, 1700 * time.Millisecond, 9 * time.Second} {
		display := NewDisplay().Render(&recorder{}, image.Rect(0, 0, 800, 480), snap, at)
		preview := NewPreview(color.White).Render(&recorder{}, image.Rect(10, 10, 214, 134), snap, at)
		if display.Frame != preview.Frame {
			t.Fatalf("at %v frames differ: display=%+v preview=%+v", at, display.Frame, preview.Frame)
		}
		if display.Params.Phase(at) != preview.Params.Phase(at) {
			t.Fatalf("at %v phases differ", at)
		}
		if display.Text != preview.Text || display.Text != "ACROSS THE ROOM" {
			t.Fatalf("text display=%q preview=%q", display.Text, preview.Text)
		}
	}
}

func TestPreviewClipsToBorderedBox(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	rect := image.Rect(100, 50, 300, 170)
	c := NewPreview(color.White).Render(rec, rect, landscape(), 0)
	inner := image.Rect(102, 52, 298, 168)
	if c.Content != inner {
		t.Fatalf("content=%v want %v", c.Content, inner)
	}
	if len(rec.strokes) != 1 || rec.strokes[0] != rect {
		t.Fatalf("strokes=%v", rec.strokes)
	}
	for _, m := range rec.marquees {
		if m.clip != inner {
			t.Fatalf("clip=%v want %v", m.clip, inner)
		}
		if m.x != float64(inner.Max.X) {
			t.Fatalf("text starts at %v want %d", m.x, inner.Max.X)
		}
	}
}

func TestEmergencyFlashBlanksSurface(t *testing.T) {
	t.Parallel()

	snap := landscape()
	snap.Preset = state.PresetEmergency
	snap.BackgroundColor = state.Red

	on := &recorder{}
	NewDisplay().Render(on, image.Rect(0, 0, 800, 480), snap, 100*time.Millisecond)
	if len(on.marquees) != 1 || on.fills[0].c != state.Red.RGBA() {
		t.Fatalf("lit half: fills=%+v marquees=%d", on.fills, len(on.marquees))
	}

	off := &recorder{}
	NewDisplay().Render(off, image.Rect(0, 0, 800, 480), snap, 600*time.Millisecond)
	if len(off.marquees) != 0 {
		t.Fatalf("blank half drew text")
	}
	if len(off.fills) != 1 || off.fills[0].c != color.Black {
		t.Fatalf("blank half fills=%+v", off.fills)
	}
}

func TestCustomColorsAfterEmergencyStopFlashing(t *testing.T) {
	t.Parallel()

	store := state.NewStore()
	store.SetViewport(800, 480)
	store.ApplyPreset(state.PresetEmergency)
	store.SetTextColor(state.Yellow)
	store.SetBackgroundColor(state.Blue)
	snap := store.Snapshot()

	for at := time.Duration(0); at < 3*time.Second; at += 100 * time.Millisecond {
		if animation.FrameAt(snap, at).Blank {
			t.Fatalf("frame at %v is blank after custom colors", at)
		}
		rec := &recorder{}
		NewDisplay().Render(rec, image.Rect(0, 0, 800, 480), snap, at)
		if len(rec.fills) == 0 || rec.fills[0].c != state.Blue.RGBA() {
			t.Fatalf("at %v fills=%+v want blue background", at, rec.fills)
		}
	}
}

func TestHeartbeatScalesContent(t *testing.T) {
	t.Parallel()

	snap := landscape()
	snap.Effect = state.EffectHeartbeat
	rec := &recorder{}
	// The first pulse peaks 14% into the cycle.
	NewDisplay().Render(rec, image.Rect(0, 0, 800, 480), snap, 210*time.Millisecond)
	if len(rec.scales) != 1 || rec.scales[0] <= 1 {
		t.Fatalf("scales=%v", rec.scales)
	}

	rec = &recorder{}
	NewDisplay().Render(rec, image.Rect(0, 0, 800, 480), snap, 0)
	if len(rec.scales) != 0 {
		t.Fatalf("scaled at rest: %v", rec.scales)
	}
}

func TestZeroSizedContainerDrawsNoText(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	NewDisplay().Render(rec, image.Rectangle{}, landscape(), 0)
	if len(rec.marquees) != 0 {
		t.Fatalf("drew text into an empty rect")
	}
}
