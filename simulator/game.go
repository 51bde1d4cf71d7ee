package main

import (
	"context"
	"image"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/rook-computer/acrosstheroom/internal/input"
	"github.com/rook-computer/acrosstheroom/internal/render"
	"github.com/rook-computer/acrosstheroom/internal/state"
)

// windowRenderer hands composed frames to ebiten. Frames are pulled by
// game.Draw, so RunLoop only waits for shutdown.
type windowRenderer struct {
	compositor *render.Compositor
}

func (r *windowRenderer) Start(ctx context.Context) error                 { return nil }
func (r *windowRenderer) Stop() error                                     { return nil }
func (r *windowRenderer) SetScreen(screen render.Screen)                  { r.compositor.SetScreen(screen) }
func (r *windowRenderer) RunLoop(ctx context.Context, store *state.Store) { <-ctx.Done() }
func (r *windowRenderer) RedrawWithState(snap state.Settings)             {}

var keyMap = map[ebiten.Key]input.Key{
	ebiten.KeyArrowUp:    input.KeyUp,
	ebiten.KeyArrowDown:  input.KeyDown,
	ebiten.KeyArrowLeft:  input.KeyLeft,
	ebiten.KeyArrowRight: input.KeyRight,
	ebiten.KeyEnter:      input.KeyEnter,
	ebiten.KeyEscape:     input.KeyEscape,
	ebiten.KeySpace:      input.KeySpace,
	ebiten.KeyBackspace:  input.KeyBackspace,
	ebiten.KeyTab:        input.KeyTab,
	ebiten.KeyF4:         input.KeyF4,
}

const (
	repeatDelay    = 30
	repeatInterval = 4
)

// game adapts ebiten's callbacks: Layout feeds the viewport, Update turns
// keyboard, mouse and touch into input events, Draw presents the compositor.
type game struct {
	store    *state.Store
	renderer *windowRenderer
	events   *input.ChanSource
	control  *SimControl
	maxSide  int
	done     *atomic.Bool

	runes     []rune
	mouseDown bool
	lastMouse image.Point
	touchID   ebiten.TouchID
	touching  bool
	lastTouch image.Point
	touchIDs  []ebiten.TouchID
}

func (g *game) Update() error {
	if g.done.Load() {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) && g.control != nil {
		_ = g.control.ApplyScenario()
	}
	g.updateKeys()
	g.updateMouse()
	g.updateTouch()
	return nil
}

func (g *game) updateKeys() {
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	for k, key := range keyMap {
		if !repeating(k) {
			continue
		}
		ev := input.KeyEvent(key)
		ev.Shift = shift
		g.events.Send(ev)
	}
	g.runes = ebiten.AppendInputChars(g.runes[:0])
	for _, r := range g.runes {
		// Space arrives as a key press above.
		if r == ' ' {
			continue
		}
		g.events.Send(input.CharEvent(r))
	}
}

func repeating(k ebiten.Key) bool {
	if inpututil.IsKeyJustPressed(k) {
		return true
	}
	if k == ebiten.KeyF4 || k == ebiten.KeyEnter || k == ebiten.KeyEscape {
		return false
	}
	d := inpututil.KeyPressDuration(k)
	return d >= repeatDelay && (d-repeatDelay)%repeatInterval == 0
}

func (g *game) updateMouse() {
	x, y := ebiten.CursorPosition()
	p := image.Pt(x, y)
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.mouseDown = true
		g.events.Send(input.PointerEvent(input.PointerDown, x, y))
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		if g.mouseDown {
			g.events.Send(input.PointerEvent(input.PointerUp, x, y))
		}
		g.mouseDown = false
	case g.mouseDown && p != g.lastMouse:
		g.events.Send(input.PointerEvent(input.PointerMove, x, y))
	}
	g.lastMouse = p
}

// updateTouch follows the first finger only.
func (g *game) updateTouch() {
	if !g.touching {
		g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
		if len(g.touchIDs) == 0 {
			return
		}
		g.touchID = g.touchIDs[0]
		g.touching = true
		x, y := ebiten.TouchPosition(g.touchID)
		g.lastTouch = image.Pt(x, y)
		g.events.Send(input.PointerEvent(input.PointerDown, x, y))
		return
	}
	if inpututil.IsTouchJustReleased(g.touchID) {
		x, y := inpututil.TouchPositionInPreviousTick(g.touchID)
		g.events.Send(input.PointerEvent(input.PointerUp, x, y))
		g.touching = false
		return
	}
	x, y := ebiten.TouchPosition(g.touchID)
	if p := image.Pt(x, y); p != g.lastTouch {
		g.lastTouch = p
		g.events.Send(input.PointerEvent(input.PointerMove, x, y))
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	frame := g.renderer.compositor.Compose(g.store.Snapshot())
	if frame == nil {
		return
	}
	if frame.Bounds().Size() != screen.Bounds().Size() {
		return
	}
	screen.WritePixels(frame.Pix)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := render.CanvasSize(outsideWidth, outsideHeight, g.maxSide)
	if w == 0 || h == 0 {
		return g.renderer.compositor.Size()
	}
	g.renderer.compositor.Resize(w, h)
	g.store.SetViewport(w, h)
	return w, h
}
