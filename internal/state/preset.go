package state

// PresetBundle is the set of assignments that make up a preset. Nil colors
// are left unchanged.
type PresetBundle struct {
	Preset          Preset
	TextColor       *Color
	BackgroundColor *Color
	Effect          Effect
	// KeepsState is true for the custom preset, which only records the name.
	KeepsState bool
}

func colorPtr(c Color) *Color { return &c }

// ResolvePreset returns the bundle for p. Unknown values resolve to custom.
func ResolvePreset(p Preset) PresetBundle {
	switch p {
	case PresetDay:
		return PresetBundle{Preset: p, TextColor: colorPtr(Black), BackgroundColor: colorPtr(White)}
	case PresetNight:
		return PresetBundle{Preset: p, TextColor: colorPtr(White), BackgroundColor: colorPtr(Black)}
	case PresetEmergency:
		return PresetBundle{Preset: p, TextColor: colorPtr(White), BackgroundColor: colorPtr(Red)}
	case PresetParty:
		return PresetBundle{Preset: p, BackgroundColor: colorPtr(Black), Effect: EffectRainbowText}
	case PresetDisco:
		return PresetBundle{Preset: p, TextColor: colorPtr(White), BackgroundColor: colorPtr(Black), Effect: EffectRainbowBackground}
	case PresetLightning:
		return PresetBundle{Preset: p, TextColor: colorPtr(White), BackgroundColor: colorPtr(Black), Effect: EffectLightning}
	case PresetSiren:
		return PresetBundle{Preset: p, TextColor: colorPtr(White), BackgroundColor: colorPtr(Black), Effect: EffectSiren}
	case PresetHeartbeat:
		return PresetBundle{Preset: p, TextColor: colorPtr(White), BackgroundColor: colorPtr(DarkRed), Effect: EffectHeartbeat}
	default:
		return PresetBundle{Preset: PresetCustom, KeepsState: true}
	}
}

// Apply writes the bundle into s. Scroll speed is never touched.
func (b PresetBundle) Apply(s *Settings) {
	s.Preset = b.Preset
	if b.KeepsState {
		return
	}
	s.Effect = EffectNone
	if b.TextColor != nil {
		s.TextColor = *b.TextColor
	}
	if b.BackgroundColor != nil {
		s.BackgroundColor = *b.BackgroundColor
	}
	s.Effect = b.Effect
}
