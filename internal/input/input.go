// Package input turns keyboard, mouse and touchscreen activity into a single
// event stream and recognizes taps and swipe steps on it.
package input

import (
	"context"
	"sync"
)

type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeySpace
	KeyBackspace
	KeyTab
	KeyF4
	// KeyChar carries a printable rune in Event.Rune.
	KeyChar
)

var keyNames = map[Key]string{
	KeyNone:      "none",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyEnter:     "enter",
	KeyEscape:    "escape",
	KeySpace:     "space",
	KeyBackspace: "backspace",
	KeyTab:       "tab",
	KeyF4:        "f4",
	KeyChar:      "char",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

type Kind int

const (
	KindKey Kind = iota
	KindPointer
)

type Phase int

const (
	PointerDown Phase = iota
	PointerMove
	PointerUp
)

// Event is a key press or a pointer sample in logical canvas coordinates.
type Event struct {
	Kind  Kind
	Key   Key
	Rune  rune
	Shift bool
	Phase Phase
	X, Y  int
}

func KeyEvent(k Key) Event   { return Event{Kind: KindKey, Key: k} }
func CharEvent(r rune) Event { return Event{Kind: KindKey, Key: KeyChar, Rune: r} }
func PointerEvent(p Phase, x, y int) Event {
	return Event{Kind: KindPointer, Phase: p, X: x, Y: y}
}

// Source delivers input events until stopped.
type Source interface {
	Start(ctx context.Context) error
	Stop() error
	Events() <-chan Event
}

type NoopSource struct{ ch chan Event }

func NewNoopSource() *NoopSource { return &NoopSource{ch: make(chan Event)} }

func (n *NoopSource) Start(ctx context.Context) error { return nil }
func (n *NoopSource) Stop() error                     { close(n.ch); return nil }
func (n *NoopSource) Events() <-chan Event            { return n.ch }

// ChanSource is fed by a host loop such as the simulator window.
type ChanSource struct {
	mu     sync.Mutex
	ch     chan Event
	closed bool
}

func NewChanSource(buffer int) *ChanSource {
	if buffer < 0 {
		buffer = 0
	}
	return &ChanSource{ch: make(chan Event, buffer)}
}

func (c *ChanSource) Start(ctx context.Context) error { return nil }

func (c *ChanSource) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.ch)
	}
	return nil
}

func (c *ChanSource) Events() <-chan Event { return c.ch }

// Send queues ev without blocking. It reports false when the buffer is full
// or the source is stopped.
func (c *ChanSource) Send(ev Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.ch <- ev:
		return true
	default:
		return false
	}
}

// Merge fans several sources into one. Stopping the merged source stops all
// of them.
type Merge struct {
	sources []Source
	out     chan Event
	wg      sync.WaitGroup
	once    sync.Once
}

func NewMerge(sources ...Source) *Merge {
	return &Merge{sources: sources, out: make(chan Event, 64)}
}

func (m *Merge) Start(ctx context.Context) error {
	for _, s := range m.sources {
		if err := s.Start(ctx); err != nil {
			return err
		}
	}
	for _, s := range m.sources {
		m.wg.Add(1)
		go func(s Source) {
			defer m.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case ev, ok := <-s.Events():
					if !ok {
						return
					}
					select {
					case m.out <- ev:
					case <-ctx.Done():
						return
					}
				}
			}
		}(s)
	}
	go func() {
		m.wg.Wait()
		m.once.Do(func() { close(m.out) })
	}()
	return nil
}

func (m *Merge) Stop() error {
	var first error
	for _, s := range m.sources {
		if err := s.Stop(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m *Merge) Events() <-chan Event { return m.out }
