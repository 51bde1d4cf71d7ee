package screens

import (
	"strings"

	"github.com/rook-computer/acrosstheroom/internal/state"
)

type rowKind int

const (
	rowMessage rowKind = iota
	rowCapitalize
	rowTextColor
	rowBackground
	rowSpeed
	rowFont
	rowPreset
	rowDualText
	rowDarkMode
	rowDisplay
	rowCount
)

var rowLabels = [rowCount]string{
	rowMessage:    "Message",
	rowCapitalize: "Capitalize",
	rowTextColor:  "Text color",
	rowBackground: "Background",
	rowSpeed:      "Speed",
	rowFont:       "Font",
	rowPreset:     "Preset",
	rowDualText:   "Dual text",
	rowDarkMode:   "Dark mode",
}

type swatchKind int

const (
	swatchColor swatchKind = iota
	swatchRainbowText
	swatchEffect
	swatchCustom
)

type swatch struct {
	kind   swatchKind
	color  state.Color
	effect state.Effect
}

// colorTarget selects which of the two color rows a swatch applies to.
type colorTarget int

const (
	targetText colorTarget = iota
	targetBackground
)

func (t colorTarget) String() string {
	if t == targetText {
		return "Text color"
	}
	return "Background color"
}

var (
	textSwatches       = buildSwatches(swatch{kind: swatchRainbowText})
	backgroundSwatches = buildSwatches(
		swatch{kind: swatchEffect, effect: state.EffectRainbowBackground},
		swatch{kind: swatchEffect, effect: state.EffectLightning},
		swatch{kind: swatchEffect, effect: state.EffectSiren},
		swatch{kind: swatchEffect, effect: state.EffectHeartbeat},
	)
)

func buildSwatches(novelty ...swatch) []swatch {
	out := make([]swatch, 0, len(state.Palette)+len(novelty)+1)
	for _, c := range state.Palette {
		out = append(out, swatch{kind: swatchColor, color: c})
	}
	out = append(out, novelty...)
	return append(out, swatch{kind: swatchCustom})
}

func swatchesFor(target colorTarget) []swatch {
	if target == targetText {
		return textSwatches
	}
	return backgroundSwatches
}

func inPalette(c state.Color) bool {
	for _, p := range state.Palette {
		if p == c {
			return true
		}
	}
	return false
}

// selected reports whether sw reflects the current settings.
func (sw swatch) selected(target colorTarget, s state.Settings) bool {
	if target == targetText {
		switch sw.kind {
		case swatchColor:
			return !s.IsRainbowText() && s.TextColor == sw.color
		case swatchRainbowText:
			return s.IsRainbowText()
		case swatchCustom:
			return !s.IsRainbowText() && !inPalette(s.TextColor)
		}
		return false
	}
	switch sw.kind {
	case swatchColor:
		return !s.Effect.IsBackground() && s.BackgroundColor == sw.color
	case swatchEffect:
		return s.Effect == sw.effect
	case swatchCustom:
		return !s.Effect.IsBackground() && !inPalette(s.BackgroundColor)
	}
	return false
}

var fontTitles = map[state.Font]string{
	state.FontDisplay:     "Display",
	state.FontHandwriting: "Handwriting",
	state.FontMonospace:   "Monospace",
	state.FontSerif:       "Serif",
}

func presetTitle(p state.Preset) string {
	name := p.String()
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func cycleFont(f state.Font, delta int) state.Font {
	return state.Fonts[wrap(int(f)+delta, len(state.Fonts))]
}

func cyclePreset(p state.Preset, delta int) state.Preset {
	for i, candidate := range state.Presets {
		if candidate == p {
			return state.Presets[wrap(i+delta, len(state.Presets))]
		}
	}
	return state.Presets[0]
}

func wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
