package state

import "strings"

type Font int

const (
	FontDisplay Font = iota
	FontHandwriting
	FontMonospace
	FontSerif
)

var Fonts = [...]Font{FontDisplay, FontHandwriting, FontMonospace, FontSerif}

func (f Font) String() string {
	switch f {
	case FontHandwriting:
		return "handwriting"
	case FontMonospace:
		return "monospace"
	case FontSerif:
		return "serif"
	default:
		return "display"
	}
}

// ParseFont maps a name to a Font; unknown names fall back to FontDisplay.
func ParseFont(name string) Font {
	for _, f := range Fonts {
		if strings.EqualFold(strings.TrimSpace(name), f.String()) {
			return f
		}
	}
	return FontDisplay
}

// Valid reports whether f is one of the known families.
func (f Font) Valid() bool { return f >= FontDisplay && f <= FontSerif }

type Orientation int

const (
	Landscape Orientation = iota
	Portrait
)

func (o Orientation) String() string {
	if o == Portrait {
		return "portrait"
	}
	return "landscape"
}

// OrientationOf derives the orientation from a viewport size.
// A square viewport counts as portrait.
func OrientationOf(width, height int) Orientation {
	if width > height {
		return Landscape
	}
	return Portrait
}

type Preset int

const (
	PresetDay Preset = iota
	PresetNight
	PresetEmergency
	PresetParty
	PresetDisco
	PresetLightning
	PresetSiren
	PresetHeartbeat
	PresetCustom
)

var Presets = [...]Preset{
	PresetDay, PresetNight, PresetEmergency, PresetParty, PresetDisco,
	PresetLightning, PresetSiren, PresetHeartbeat, PresetCustom,
}

var presetNames = map[Preset]string{
	PresetDay:       "day",
	PresetNight:     "night",
	PresetEmergency: "emergency",
	PresetParty:     "party",
	PresetDisco:     "disco",
	PresetLightning: "lightning",
	PresetSiren:     "siren",
	PresetHeartbeat: "heartbeat",
	PresetCustom:    "custom",
}

func (p Preset) String() string {
	if name, ok := presetNames[p]; ok {
		return name
	}
	return presetNames[PresetCustom]
}

// ParsePreset maps a name to a Preset; unknown names fall back to PresetCustom.
func ParsePreset(name string) Preset {
	name = strings.ToLower(strings.TrimSpace(name))
	for p, n := range presetNames {
		if n == name {
			return p
		}
	}
	return PresetCustom
}

// Effect is the single active novelty mode. Holding one value instead of a
// flag per mode makes two simultaneous modes unrepresentable.
type Effect int

const (
	EffectNone Effect = iota
	EffectRainbowText
	EffectRainbowBackground
	EffectLightning
	EffectSiren
	EffectHeartbeat
)

func (e Effect) String() string {
	switch e {
	case EffectRainbowText:
		return "rainbow-text"
	case EffectRainbowBackground:
		return "rainbow-background"
	case EffectLightning:
		return "lightning"
	case EffectSiren:
		return "siren"
	case EffectHeartbeat:
		return "heartbeat"
	default:
		return "none"
	}
}

// IsBackground reports whether e animates the background.
func (e Effect) IsBackground() bool {
	switch e {
	case EffectRainbowBackground, EffectLightning, EffectSiren, EffectHeartbeat:
		return true
	}
	return false
}

// BackgroundEffects lists the effects accepted by EnableBackgroundEffect.
var BackgroundEffects = [...]Effect{EffectRainbowBackground, EffectLightning, EffectSiren, EffectHeartbeat}
