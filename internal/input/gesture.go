package input

const (
	DefaultSwipeThreshold = 60
	DefaultTapSlop        = 12
)

type GestureKind int

const (
	GestureTap GestureKind = iota
	// GestureSwipeStep is emitted once per threshold crossing; Step is +1 for
	// rightward movement and -1 for leftward.
	GestureSwipeStep
)

type Gesture struct {
	Kind GestureKind
	Step int
	X, Y int
}

// Recognizer turns pointer events into taps and discrete horizontal swipe
// steps. It is not safe for concurrent use.
type Recognizer struct {
	Threshold int
	TapSlop   int

	down    bool
	moved   bool
	stepped bool
	startX  int
	startY  int
	anchor  int
}

func NewRecognizer(threshold int) *Recognizer {
	if threshold <= 0 {
		threshold = DefaultSwipeThreshold
	}
	return &Recognizer{Threshold: threshold, TapSlop: DefaultTapSlop}
}

// Feed consumes one event and returns any gestures it completes. Key events
// are ignored.
func (r *Recognizer) Feed(ev Event) []Gesture {
	if ev.Kind != KindPointer {
		return nil
	}
	switch ev.Phase {
	case PointerDown:
		r.down = true
		r.moved = false
		r.stepped = false
		r.startX, r.startY = ev.X, ev.Y
		r.anchor = ev.X
		return nil
	case PointerMove:
		if !r.down {
			return nil
		}
		return r.track(ev)
	case PointerUp:
		if !r.down {
			return nil
		}
		out := r.track(ev)
		r.down = false
		if !r.moved && !r.stepped {
			out = append(out, Gesture{Kind: GestureTap, X: ev.X, Y: ev.Y})
		}
		return out
	}
	return nil
}

// Reset drops any gesture in progress.
func (r *Recognizer) Reset() {
	r.down = false
	r.moved = false
	r.stepped = false
}

func (r *Recognizer) track(ev Event) []Gesture {
	slop := r.TapSlop
	if slop <= 0 {
		slop = DefaultTapSlop
	}
	if abs(ev.X-r.startX) > slop || abs(ev.Y-r.startY) > slop {
		r.moved = true
	}
	threshold := r.Threshold
	if threshold <= 0 {
		threshold = DefaultSwipeThreshold
	}
	var out []Gesture
	for dx := ev.X - r.anchor; dx >= threshold; dx = ev.X - r.anchor {
		r.anchor += threshold
		r.stepped = true
		out = append(out, Gesture{Kind: GestureSwipeStep, Step: 1, X: ev.X, Y: ev.Y})
	}
	for dx := ev.X - r.anchor; dx <= -threshold; dx = ev.X - r.anchor {
		r.anchor -= threshold
		r.stepped = true
		out = append(out, Gesture{Kind: GestureSwipeStep, Step: -1, X: ev.X, Y: ev.Y})
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
