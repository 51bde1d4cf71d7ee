package state

import "strings"

const (
	MinScrollSpeed     = 1
	MaxScrollSpeed     = 9
	DefaultScrollSpeed = 5

	// PlaceholderText is shown when the message is empty.
	PlaceholderText = "HELLO"
)

// Settings is everything the user can adjust plus the viewport it is shown on.
// Values are copied out of the Store; mutating a copy has no effect.
type Settings struct {
	Message         string
	Capitalized     bool
	TextColor       Color
	BackgroundColor Color
	Font            Font
	ScrollSpeed     int
	Orientation     Orientation
	Preset          Preset
	Effect          Effect
	DualText        bool
	DarkMode        bool

	ViewportWidth  int
	ViewportHeight int
}

// DefaultSettings returns the state the application starts with.
func DefaultSettings() Settings {
	return Settings{
		Message:         PlaceholderText,
		Capitalized:     true,
		TextColor:       White,
		BackgroundColor: Black,
		Font:            FontDisplay,
		ScrollSpeed:     DefaultScrollSpeed,
		Orientation:     Landscape,
		Preset:          PresetDay,
		Effect:          EffectNone,
		DualText:        true,
	}
}

// EffectiveText is the text actually handed to rendering.
func (s Settings) EffectiveText() string {
	text := s.Message
	if text == "" {
		text = PlaceholderText
	}
	if s.Capitalized {
		text = strings.ToUpper(text)
	}
	return text
}

func (s Settings) IsRainbowText() bool       { return s.Effect == EffectRainbowText }
func (s Settings) IsRainbowBackground() bool { return s.Effect == EffectRainbowBackground }
func (s Settings) IsLightningMode() bool     { return s.Effect == EffectLightning }
func (s Settings) IsSirenMode() bool         { return s.Effect == EffectSiren }
func (s Settings) IsHeartbeatMode() bool     { return s.Effect == EffectHeartbeat }

// IsEmergency reports whether the emergency flash treatment is active.
func (s Settings) IsEmergency() bool { return s.Preset == PresetEmergency }

// DualRows reports whether the text is rendered twice.
func (s Settings) DualRows() bool { return s.DualText && s.Orientation == Portrait }

// ClampScrollSpeed limits speed to [MinScrollSpeed, MaxScrollSpeed].
func ClampScrollSpeed(speed int) int {
	if speed < MinScrollSpeed {
		return MinScrollSpeed
	}
	if speed > MaxScrollSpeed {
		return MaxScrollSpeed
	}
	return speed
}
