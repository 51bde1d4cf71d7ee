package state

import (
	"errors"
	"sync"
)

// ErrNotBackgroundEffect is returned by EnableBackgroundEffect for effects that
// do not animate the background.
var ErrNotBackgroundEffect = errors.New("not a background effect")

// Store owns the Settings. All mutation goes through its methods; readers take
// value snapshots.
type Store struct {
	mu       sync.RWMutex
	settings Settings

	subMu  sync.Mutex
	subs   map[int]func(Settings)
	nextID int
}

func NewStore() *Store {
	return &Store{settings: DefaultSettings(), subs: map[int]func(Settings){}}
}

func (store *Store) Snapshot() Settings {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.settings
}

// Subscribe registers fn to receive the new snapshot after every mutation.
// The returned function removes the subscription.
func (store *Store) Subscribe(fn func(Settings)) (cancel func()) {
	store.subMu.Lock()
	id := store.nextID
	store.nextID++
	store.subs[id] = fn
	store.subMu.Unlock()
	return func() {
		store.subMu.Lock()
		delete(store.subs, id)
		store.subMu.Unlock()
	}
}

// update applies mutate under the write lock, then notifies subscribers.
func (store *Store) update(mutate func(s *Settings)) Settings {
	store.mu.Lock()
	mutate(&store.settings)
	snap := store.settings
	store.mu.Unlock()

	store.subMu.Lock()
	subs := make([]func(Settings), 0, len(store.subs))
	for _, fn := range store.subs {
		subs = append(subs, fn)
	}
	store.subMu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}
	return snap
}

func (store *Store) SetMessage(message string) {
	store.update(func(s *Settings) { s.Message = message })
}

func (store *Store) SetCapitalized(capitalized bool) {
	store.update(func(s *Settings) { s.Capitalized = capitalized })
}

// SetFont stores font; values outside the known families become FontDisplay.
func (store *Store) SetFont(font Font) {
	if !font.Valid() {
		font = FontDisplay
	}
	store.update(func(s *Settings) { s.Font = font })
}

// SetScrollSpeed clamps speed to [1,9] and returns the stored value.
func (store *Store) SetScrollSpeed(speed int) int {
	speed = ClampScrollSpeed(speed)
	store.update(func(s *Settings) { s.ScrollSpeed = speed })
	return speed
}

// AdjustScrollSpeed adds delta to the current speed, clamped, and returns the
// stored value.
func (store *Store) AdjustScrollSpeed(delta int) int {
	snap := store.update(func(s *Settings) { s.ScrollSpeed = ClampScrollSpeed(s.ScrollSpeed + delta) })
	return snap.ScrollSpeed
}

func (store *Store) SetDualText(dual bool) {
	store.update(func(s *Settings) { s.DualText = dual })
}

func (store *Store) SetDarkMode(dark bool) {
	store.update(func(s *Settings) { s.DarkMode = dark })
}

// SetViewport records the surface size and recomputes the orientation.
// Non-positive sizes are ignored.
func (store *Store) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	store.mu.RLock()
	same := store.settings.ViewportWidth == width && store.settings.ViewportHeight == height
	store.mu.RUnlock()
	if same {
		return
	}
	store.update(func(s *Settings) {
		s.ViewportWidth = width
		s.ViewportHeight = height
		s.Orientation = OrientationOf(width, height)
	})
}

// SetTextColor sets a literal text color, turns rainbow text off and switches
// the preset to custom.
func (store *Store) SetTextColor(c Color) {
	store.update(func(s *Settings) {
		s.TextColor = c
		s.Preset = PresetCustom
		if s.Effect == EffectRainbowText {
			s.Effect = EffectNone
		}
	})
}

// SetBackgroundColor sets a literal background, turns every background
// effect off and switches the preset to custom.
func (store *Store) SetBackgroundColor(c Color) {
	store.update(func(s *Settings) {
		s.BackgroundColor = c
		s.Preset = PresetCustom
		if s.Effect.IsBackground() {
			s.Effect = EffectNone
		}
	})
}

// SetEffect makes e the only active novelty mode. Enabling a mode switches the
// preset to custom; EffectNone leaves the preset alone.
func (store *Store) SetEffect(e Effect) {
	if e < EffectNone || e > EffectHeartbeat {
		e = EffectNone
	}
	store.update(func(s *Settings) {
		s.Effect = e
		if e != EffectNone {
			s.Preset = PresetCustom
		}
	})
}

func (store *Store) EnableRainbowText() {
	store.SetEffect(EffectRainbowText)
}

// EnableBackgroundEffect activates one of BackgroundEffects.
func (store *Store) EnableBackgroundEffect(e Effect) error {
	if !e.IsBackground() {
		return ErrNotBackgroundEffect
	}
	store.SetEffect(e)
	return nil
}

// Reset restores DefaultSettings while keeping the reported viewport.
func (store *Store) Reset() {
	store.update(func(s *Settings) {
		width, height := s.ViewportWidth, s.ViewportHeight
		*s = DefaultSettings()
		if width > 0 && height > 0 {
			s.ViewportWidth = width
			s.ViewportHeight = height
			s.Orientation = OrientationOf(width, height)
		}
	})
}

// ApplyPreset resolves p and applies it in a single critical section so no
// reader observes a partially applied preset.
func (store *Store) ApplyPreset(p Preset) {
	bundle := ResolvePreset(p)
	store.update(bundle.Apply)
}
