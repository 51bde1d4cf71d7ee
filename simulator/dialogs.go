package main

import (
	"errors"

	"github.com/ncruces/zenity"

	"github.com/rook-computer/acrosstheroom/internal/state"
)

// zenityDialogs opens native pickers. Cancelling a dialog is not an error.
type zenityDialogs struct{}

func (zenityDialogs) PickColor(title string, initial state.Color) (state.Color, bool, error) {
	c, err := zenity.SelectColor(
		zenity.Title(title),
		zenity.Color(initial.RGBA()),
		zenity.ShowPalette(),
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return initial, false, nil
		}
		return initial, false, err
	}
	return state.ColorFrom(c), true, nil
}

func (zenityDialogs) EnterText(title, initial string) (string, bool, error) {
	text, err := zenity.Entry(
		"Message to show across the room:",
		zenity.Title(title),
		zenity.EntryText(initial),
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return initial, false, nil
		}
		return initial, false, err
	}
	return text, true, nil
}
