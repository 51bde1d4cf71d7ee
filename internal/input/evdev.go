package input

// Linux input-event-codes.h
const (
	evSyn = 0x00
	evKey = 0x01
	evAbs = 0x03

	synReport = 0

	absX          = 0x00
	absY          = 0x01
	absMTPosX     = 0x35
	absMTPosY     = 0x36

	keyEsc        = 1
	keyBackspace  = 14
	keyTab        = 15
	keyEnter      = 28
	keyLeftShift  = 42
	keyRightShift = 54
	keySpace      = 57
	keyF4         = 62
	keyKPEnter    = 96
	keyUp         = 103
	keyLeft       = 105
	keyRight      = 106
	keyDown       = 108
	btnLeft       = 0x110
	btnTouch      = 0x14a
)

var namedKeys = map[uint16]Key{
	keyEsc:       KeyEscape,
	keyBackspace: KeyBackspace,
	keyTab:       KeyTab,
	keyEnter:     KeyEnter,
	keyKPEnter:   KeyEnter,
	keySpace:     KeySpace,
	keyF4:        KeyF4,
	keyUp:        KeyUp,
	keyLeft:      KeyLeft,
	keyRight:     KeyRight,
	keyDown:      KeyDown,
}

type runePair struct{ plain, shifted rune }

var charKeys = func() map[uint16]runePair {
	m := make(map[uint16]runePair)
	add := func(first uint16, plain, shifted string) {
		s := []rune(shifted)
		for i, r := range []rune(plain) {
			m[first+uint16(i)] = runePair{plain: r, shifted: s[i]}
		}
	}
	add(2, "1234567890-=", "!@#$%^&*()_+")
	add(16, "qwertyuiop[]", "QWERTYUIOP{}")
	add(30, "asdfghjkl;'`", "ASDFGHJKL:\"~")
	add(43, "\\zxcvbnm,./", "|ZXCVBNM<>?")
	return m
}()

// absRange is the reported range of one absolute axis.
type absRange struct {
	min, max int32
}

func (r absRange) scale(v int32, size int) int {
	if size <= 0 {
		return 0
	}
	span := r.max - r.min
	if span <= 0 {
		return int(v)
	}
	out := int(int64(v-r.min) * int64(size-1) / int64(span))
	if out < 0 {
		return 0
	}
	if out > size-1 {
		return size - 1
	}
	return out
}

// decoder assembles raw input_event records from one device into Events.
// Pointer changes are flushed on SYN_REPORT so a touch-down carries its
// coordinates.
type decoder struct {
	xRange, yRange absRange
	canvas         func() (int, int)

	shift    bool
	x, y     int32
	touching bool
	down     bool
	up       bool
	moved    bool
}

func (d *decoder) decode(typ, code uint16, value int32) []Event {
	switch typ {
	case evKey:
		return d.key(code, value)
	case evAbs:
		switch code {
		case absX, absMTPosX:
			d.x = value
			d.moved = true
		case absY, absMTPosY:
			d.y = value
			d.moved = true
		}
	case evSyn:
		if code == synReport {
			return d.flush()
		}
	}
	return nil
}

func (d *decoder) key(code uint16, value int32) []Event {
	switch code {
	case keyLeftShift, keyRightShift:
		d.shift = value != 0
		return nil
	case btnTouch, btnLeft:
		if value == 1 && !d.touching {
			d.touching = true
			d.down = true
		} else if value == 0 && d.touching {
			d.touching = false
			d.up = true
		}
		return nil
	}
	// 1 is press, 2 is autorepeat, 0 is release.
	if value == 0 {
		return nil
	}
	if k, ok := namedKeys[code]; ok {
		if k == KeyF4 && value != 1 {
			return nil
		}
		ev := KeyEvent(k)
		ev.Shift = d.shift
		if k == KeySpace {
			ev.Rune = ' '
		}
		return []Event{ev}
	}
	if pair, ok := charKeys[code]; ok {
		r := pair.plain
		if d.shift {
			r = pair.shifted
		}
		ev := CharEvent(r)
		ev.Shift = d.shift
		return []Event{ev}
	}
	return nil
}

func (d *decoder) flush() []Event {
	var width, height int
	if d.canvas != nil {
		width, height = d.canvas()
	}
	x := d.xRange.scale(d.x, width)
	y := d.yRange.scale(d.y, height)

	var out []Event
	if d.down {
		out = append(out, PointerEvent(PointerDown, x, y))
	} else if d.moved && d.touching {
		out = append(out, PointerEvent(PointerMove, x, y))
	}
	if d.up {
		out = append(out, PointerEvent(PointerUp, x, y))
	}
	d.down, d.up, d.moved = false, false, false
	return out
}
