package client

import "github.com/mazenet/mazenet/internal/ui"

// InputMode and UI are aliases onto internal/ui, which owns the
// capability interface's definition; session/client only consumes it.
type InputMode = ui.InputMode

const (
	InputHidden          = ui.InputHidden
	InputEnabled         = ui.InputEnabled
	InputSingleKey       = ui.InputSingleKey
	InputDisabledWaiting = ui.InputDisabledWaiting
)

// UI is the client's sole polymorphic rendering boundary. See internal/ui
// for the grounding and full documentation.
type UI = ui.UI
