// Package ui defines the client's sole polymorphic rendering boundary, per
// spec.md §9 DESIGN NOTES's capability set (show_message, show_error,
// show_prompt, draw_countdown, poll_input, poll_single_key).
//
// Grounded on original_source/client/src/lobby/ui.rs's LobbyUi trait.
package ui

import "github.com/mazenet/mazenet/internal/color"

// InputMode tells the UI adapter how to treat the keyboard this frame, per
// spec.md §4.6's "Input mode" column and §9 DESIGN NOTES.
type InputMode int

const (
	// InputHidden means don't read input at all (e.g. mid-countdown).
	InputHidden InputMode = iota
	// InputEnabled means read a full line.
	InputEnabled
	// InputSingleKey means read one keypress, no line buffering.
	InputSingleKey
	// InputDisabledWaiting means show a "waiting" affordance, accept nothing.
	InputDisabledWaiting
)

// UI is the capability interface every screen (username entry, lobby chat,
// difficulty choice, countdown, in-game HUD, after-game chat) drives
// through rather than talking to a terminal or window directly.
type UI interface {
	ShowMessage(text string)
	ShowMessageColor(text string, c color.Name)
	ShowError(text string)
	ShowPrompt(text string)
	DrawCountdown(value string)
	// PollInput returns a full line of input if one is ready, ok=false if
	// none is available yet, and err set if the input source is gone.
	PollInput() (line string, ok bool, err error)
	// PollSingleKey returns a single keypress if one is ready.
	PollSingleKey() (key string, ok bool, err error)
}
