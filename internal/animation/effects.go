package animation

import (
	"image/color"
	"time"

	"github.com/rook-computer/acrosstheroom/internal/state"
)

const (
	RainbowPeriod   = 2 * time.Second
	FlashPeriod     = time.Second
	LightningPeriod = 3 * time.Second
	SirenPeriod     = 600 * time.Millisecond
	HeartbeatPeriod = 1500 * time.Millisecond

	// HeartbeatScale is the peak scale of the heartbeat pulse.
	HeartbeatScale = 1.08
)

type keyframe struct {
	at    float64
	color state.Color
	scale float64
}

var rainbowFrames = []keyframe{
	{at: 0, color: state.Red},
	{at: 1.0 / 6, color: state.Yellow},
	{at: 2.0 / 6, color: state.Green},
	{at: 3.0 / 6, color: state.Cyan},
	{at: 4.0 / 6, color: state.Blue},
	{at: 5.0 / 6, color: state.Magenta},
	{at: 1, color: state.Red},
}

var heartbeatFrames = []keyframe{
	{at: 0, color: state.DarkRed, scale: 1},
	{at: 0.14, color: state.Red, scale: HeartbeatScale},
	{at: 0.28, color: state.DarkRed, scale: 1},
	{at: 0.42, color: state.Red, scale: HeartbeatScale},
	{at: 0.70, color: state.DarkRed, scale: 1},
	{at: 1, color: state.DarkRed, scale: 1},
}

// lightning strikes as [start,end) phase windows within the 3s cycle.
var lightningStrikes = [][2]float64{
	{0.10, 0.13},
	{0.16, 0.18},
	{0.52, 0.55},
	{0.81, 0.83},
}

var sirenSteps = []state.Color{state.Blue, state.White, state.Black, state.Red, state.White, state.Black}

// sample linearly interpolates color and scale between the keyframes around p.
func sample(frames []keyframe, p float64) (state.Color, float64) {
	for i := 1; i < len(frames); i++ {
		next := frames[i]
		if p > next.at {
			continue
		}
		if p == next.at {
			return next.color, next.scale
		}
		prev := frames[i-1]
		span := next.at - prev.at
		t := 0.0
		if span > 0 {
			t = (p - prev.at) / span
		}
		return lerpColor(prev.color, next.color, t), prev.scale + (next.scale-prev.scale)*t
	}
	last := frames[len(frames)-1]
	return last.color, last.scale
}

func lerpColor(a, b state.Color, t float64) state.Color {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return state.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B)}
}

// Rainbow returns the hue-cycle color after elapsed time.
func Rainbow(elapsed time.Duration) state.Color {
	c, _ := sample(rainbowFrames, phase(elapsed, RainbowPeriod))
	return c
}

// EmergencyFlash reports whether the surface is lit: on for the first half
// of every second, off for the second half.
func EmergencyFlash(elapsed time.Duration) bool {
	return phase(elapsed, FlashPeriod) < 0.5
}

// Lightning returns black with brief white strikes.
func Lightning(elapsed time.Duration) state.Color {
	p := phase(elapsed, LightningPeriod)
	for _, strike := range lightningStrikes {
		if p >= strike[0] && p < strike[1] {
			return state.White
		}
	}
	return state.Black
}

// Siren steps through a police-light pattern.
func Siren(elapsed time.Duration) state.Color {
	p := phase(elapsed, SirenPeriod)
	i := int(p * float64(len(sirenSteps)))
	if i >= len(sirenSteps) {
		i = len(sirenSteps) - 1
	}
	return sirenSteps[i]
}

// Heartbeat returns the pulse color and scale.
func Heartbeat(elapsed time.Duration) (state.Color, float64) {
	return sample(heartbeatFrames, phase(elapsed, HeartbeatPeriod))
}

// Frame is the resolved look of a surface at one instant.
type Frame struct {
	Background color.RGBA
	Text       color.RGBA
	// Scale is applied around the surface center; 1 means none.
	Scale float64
	// Blank is true during the dark half of the emergency flash.
	Blank bool
}

// FrameAt resolves colors and effects of s after elapsed time.
func FrameAt(s state.Settings, elapsed time.Duration) Frame {
	f := Frame{
		Background: s.BackgroundColor.RGBA(),
		Text:       s.TextColor.RGBA(),
		Scale:      1,
	}
	switch s.Effect {
	case state.EffectRainbowText:
		f.Text = Rainbow(elapsed).RGBA()
	case state.EffectRainbowBackground:
		f.Background = Rainbow(elapsed).RGBA()
	case state.EffectLightning:
		f.Background = Lightning(elapsed).RGBA()
	case state.EffectSiren:
		f.Background = Siren(elapsed).RGBA()
	case state.EffectHeartbeat:
		c, scale := Heartbeat(elapsed)
		f.Background = c.RGBA()
		f.Scale = scale
	}
	if s.IsEmergency() && !EmergencyFlash(elapsed) {
		f.Blank = true
	}
	return f
}
