package client

// Disconnected is the terminal state: show the reason and wait for the
// user to press Escape, per spec.md §4.6. The actual key-press detection
// lives in the UI adapter's event loop (cmd/client); this phase only
// carries the message to display.
type Disconnected struct {
	Message string
	shown   bool
}

func (*Disconnected) phaseName() string { return "Disconnected" }

func (d *Disconnected) handle(s *Session) Phase {
	if !d.shown {
		s.ui.ShowError(d.Message)
		d.shown = true
	}
	return nil
}
