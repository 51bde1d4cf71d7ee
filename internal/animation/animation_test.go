package animation

import (
	"image"
	"math"
	"testing"
	"time"

	"github.com/rook-computer/acrosstheroom/internal/state"
)

func TestScrollDurationEndpoints(t *testing.T) {
	t.Parallel()

	if got := ScrollDuration(1); got != 16200*time.Millisecond {
		t.Fatalf("ScrollDuration(1) = %v, want 16.2s", got)
	}
	if got := ScrollDuration(9); got != 1800*time.Millisecond {
		t.Fatalf("ScrollDuration(9) = %v, want 1.8s", got)
	}
	if got := ScrollDuration(5); got != 9*time.Second {
		t.Fatalf("ScrollDuration(5) = %v, want 9s", got)
	}
}

func TestScrollDurationStrictlyDecreasing(t *testing.T) {
	t.Parallel()

	prev := ScrollDuration(state.MinScrollSpeed)
	for speed := state.MinScrollSpeed + 1; speed <= state.MaxScrollSpeed; speed++ {
		got := ScrollDuration(speed)
		if got >= prev {
			t.Fatalf("ScrollDuration(%d) = %v, not below %v", speed, got, prev)
		}
		prev = got
	}
}

func TestScrollDurationClampsSpeed(t *testing.T) {
	t.Parallel()

	if ScrollDuration(-3) != ScrollDuration(1) || ScrollDuration(42) != ScrollDuration(9) {
		t.Fatalf("out-of-range speeds are not clamped")
	}
}

func TestCalculateRows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       Input
		rows     []float64
		fontSize float64
	}{
		{
			name:     "landscape single",
			in:       Input{Speed: 5, Orientation: state.Landscape, DualText: true, Text: "HI", Container: image.Pt(1920, 1080)},
			rows:     []float64{540},
			fontSize: 1080 * FontScale,
		},
		{
			name:     "portrait dual",
			in:       Input{Speed: 5, Orientation: state.Portrait, DualText: true, Text: "HI", Container: image.Pt(1080, 1920)},
			rows:     []float64{480, 1440},
			fontSize: 960 * FontScale,
		},
		{
			name:     "portrait single",
			in:       Input{Speed: 5, Orientation: state.Portrait, DualText: false, Text: "HI", Container: image.Pt(1080, 1920)},
			rows:     []float64{960},
			fontSize: 1920 * FontScale,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := Calculate(tt.in)
			if len(p.Rows) != len(tt.rows) {
				t.Fatalf("got %d rows, want %d", len(p.Rows), len(tt.rows))
			}
			for i, want := range tt.rows {
				if math.Abs(p.Rows[i].CenterY-want) > 1e-9 {
					t.Fatalf("row %d center = %v, want %v", i, p.Rows[i].CenterY, want)
				}
			}
			if math.Abs(p.FontSizePx-tt.fontSize) > 1e-9 {
				t.Fatalf("font size = %v, want %v", p.FontSizePx, tt.fontSize)
			}
			if p.ScrollDuration != ScrollDuration(5) {
				t.Fatalf("duration = %v", p.ScrollDuration)
			}
		})
	}
}

func TestCalculateFontSizeIndependentOfText(t *testing.T) {
	t.Parallel()

	short := Calculate(Input{Speed: 3, Text: "A", Container: image.Pt(800, 120)})
	long := Calculate(Input{Speed: 3, Text: "A MUCH LONGER MESSAGE FOR THE ROOM", Container: image.Pt(800, 120)})
	if short.FontSizePx != long.FontSizePx {
		t.Fatalf("font size depends on text length: %v vs %v", short.FontSizePx, long.FontSizePx)
	}
}

func TestCalculateEmptyTextHasNoRows(t *testing.T) {
	t.Parallel()

	p := Calculate(Input{Speed: 5, Text: "", Container: image.Pt(640, 480)})
	if len(p.Rows) != 0 {
		t.Fatalf("expected no rows for empty text, got %d", len(p.Rows))
	}
	if p.ScrollDuration != ScrollDuration(5) {
		t.Fatalf("duration should still be derived, got %v", p.ScrollDuration)
	}
}

func TestTextXLoopGeometry(t *testing.T) {
	t.Parallel()

	p := Calculate(Input{Speed: 9, Text: "HELLO", Container: image.Pt(1000, 200)})
	textWidth := 2500.0

	if got := p.TextX(0, textWidth); got != 1000 {
		t.Fatalf("TextX at start = %v, want container width", got)
	}
	almostEnd := p.ScrollDuration - time.Millisecond
	end := p.TextX(almostEnd, textWidth)
	if end+textWidth > 5 {
		t.Fatalf("text trailing edge at %v before loop restart, want <= ~0", end+textWidth)
	}
	if got := p.TextX(p.ScrollDuration, textWidth); got != 1000 {
		t.Fatalf("TextX after one period = %v, want restart at container width", got)
	}
	half := p.TextX(p.ScrollDuration/2, textWidth)
	if want := 1000 - 0.5*(1000+textWidth); math.Abs(half-want) > 1e-6 {
		t.Fatalf("TextX at half = %v, want %v (linear timing)", half, want)
	}
}

func TestInputForUsesEffectiveText(t *testing.T) {
	t.Parallel()

	s := state.DefaultSettings()
	s.Message = "hi there"
	in := InputFor(s, image.Pt(10, 10))
	if in.Text != "HI THERE" || in.Speed != 5 {
		t.Fatalf("unexpected input %+v", in)
	}
}
