package screens

import (
	"image/color"

	"github.com/rook-computer/acrosstheroom/internal/input"
	"github.com/rook-computer/acrosstheroom/internal/render"
	"github.com/rook-computer/acrosstheroom/internal/state"
)

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Navigator is implemented by the host application. Screens call it to move
// between splash, settings and display.
type Navigator interface {
	ShowSettings()
	ShowDisplay()
	Exit(err error)
}

// Screen is a render.Screen that also consumes input. HandleInput is called
// from the app's dispatch goroutine, Draw from the render loop.
type Screen interface {
	render.Screen
	HandleInput(ev input.Event)
}

// Dialogs opens native pickers. ok is false when the user cancels.
type Dialogs interface {
	PickColor(title string, initial state.Color) (c state.Color, ok bool, err error)
	EnterText(title, initial string) (text string, ok bool, err error)
}

// Theme is the settings UI palette. It never affects surface colors.
type Theme struct {
	Background color.RGBA
	Panel      color.RGBA
	Text       color.RGBA
	Muted      color.RGBA
	Accent     color.RGBA
	OnAccent   color.RGBA
	Focus      color.RGBA
	Border     color.RGBA
}

var (
	LightTheme = Theme{
		Background: color.RGBA{0xF4, 0xF4, 0xF6, 0xFF},
		Panel:      color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
		Text:       color.RGBA{0x11, 0x18, 0x27, 0xFF},
		Muted:      color.RGBA{0x6B, 0x72, 0x80, 0xFF},
		Accent:     color.RGBA{0x25, 0x63, 0xEB, 0xFF},
		OnAccent:   color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
		Focus:      color.RGBA{0xF5, 0x9E, 0x0B, 0xFF},
		Border:     color.RGBA{0xD1, 0xD5, 0xDB, 0xFF},
	}
	DarkTheme = Theme{
		Background: color.RGBA{0x11, 0x18, 0x27, 0xFF},
		Panel:      color.RGBA{0x1F, 0x29, 0x37, 0xFF},
		Text:       color.RGBA{0xF9, 0xFA, 0xFB, 0xFF},
		Muted:      color.RGBA{0x9C, 0xA3, 0xAF, 0xFF},
		Accent:     color.RGBA{0x3B, 0x82, 0xF6, 0xFF},
		OnAccent:   color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
		Focus:      color.RGBA{0xFB, 0xBF, 0x24, 0xFF},
		Border:     color.RGBA{0x37, 0x41, 0x51, 0xFF},
	}
)

func ThemeFor(dark bool) Theme {
	if dark {
		return DarkTheme
	}
	return LightTheme
}
