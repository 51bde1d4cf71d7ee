// Package animation derives render-ready timing and geometry from settings.
//
// Everything here is a pure function of its inputs and the elapsed time, so
// the preview and the full-screen display compute identical values when
// given identical settings.
package animation

import (
	"image"
	"math"
	"time"

	"github.com/rook-computer/acrosstheroom/internal/state"
)

const (
	durationBase = 18.0
	durationStep = 1.8

	// FontScale is the font size relative to the height of a text band.
	FontScale = 1.2
)

// ScrollDuration is the time one pass of the text takes at speed.
// Speed is clamped to [1,9]: 16.2s at 1, 1.8s at 9.
func ScrollDuration(speed int) time.Duration {
	speed = state.ClampScrollSpeed(speed)
	seconds := durationBase - float64(speed)*durationStep
	return time.Duration(math.Round(seconds*1000)) * time.Millisecond
}

// Input is everything the calculator looks at.
type Input struct {
	Speed       int
	Orientation state.Orientation
	DualText    bool
	Text        string
	Container   image.Point
}

// InputFor builds the calculator input for a settings snapshot shown in a
// container of the given size.
func InputFor(s state.Settings, container image.Point) Input {
	return Input{
		Speed:       s.ScrollSpeed,
		Orientation: s.Orientation,
		DualText:    s.DualText,
		Text:        s.EffectiveText(),
		Container:   container,
	}
}

// Row is one scrolling copy of the text.
type Row struct {
	// CenterY is the vertical center of the row, in container pixels.
	CenterY float64
}

// Params is the render-ready result of Calculate.
type Params struct {
	ScrollDuration time.Duration
	FontSizePx     float64
	Rows           []Row
	Container      image.Point
}

// Calculate derives the parameters for in.
func Calculate(in Input) Params {
	p := Params{
		ScrollDuration: ScrollDuration(in.Speed),
		Container:      in.Container,
	}
	if in.Text == "" || in.Container.X <= 0 || in.Container.Y <= 0 {
		return p
	}

	height := float64(in.Container.Y)
	fractions := []float64{0.5}
	if in.DualText && in.Orientation == state.Portrait {
		fractions = []float64{0.25, 0.75}
	}
	band := height / float64(len(fractions))
	p.FontSizePx = band * FontScale
	p.Rows = make([]Row, len(fractions))
	for i, f := range fractions {
		p.Rows[i] = Row{CenterY: height * f}
	}
	return p
}

// Phase returns the loop progress in [0,1) after elapsed time.
func (p Params) Phase(elapsed time.Duration) float64 {
	return phase(elapsed, p.ScrollDuration)
}

// TextX returns the x position of the text's leading edge. At phase 0 the
// text sits just past the trailing edge of the container; as the phase nears
// 1 its trailing edge reaches the container's leading edge.
func (p Params) TextX(elapsed time.Duration, textWidth float64) float64 {
	width := float64(p.Container.X)
	return width - p.Phase(elapsed)*(width+textWidth)
}

func phase(elapsed, period time.Duration) float64 {
	if period <= 0 {
		return 0
	}
	if elapsed < 0 {
		elapsed = -elapsed
	}
	return float64(elapsed%period) / float64(period)
}
