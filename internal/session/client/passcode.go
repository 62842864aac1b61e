package client

import (
	"fmt"

	"github.com/mazenet/mazenet/internal/passcode"
	"github.com/mazenet/mazenet/internal/wire"
)

// PasscodeEntry records the connect passcode before attempting a transport
// connection, per spec.md §4.6. Grounded on
// original_source/client/src/lobby/state_handlers/passcode.rs.
type PasscodeEntry struct {
	promptPrinted   bool
	pendingPasscode []byte
}

func (*PasscodeEntry) phaseName() string { return "Passcode" }

func (p *PasscodeEntry) handle(s *Session) Phase {
	if line, ok, _ := s.ui.PollInput(); ok {
		if code, ok := parsePasscodeInput(line); ok {
			return &Connecting{pendingPasscode: code.Digits}
		}
		s.ui.ShowError(fmt.Sprintf("Invalid format: %q. Passcode must be a 6-digit number.", line))
		s.ui.ShowPrompt(passcodePrompt(passcode.MaxAttempts))
		p.promptPrinted = true
		return nil
	}

	if !p.promptPrinted {
		s.ui.ShowPrompt(passcodePrompt(passcode.MaxAttempts))
		p.promptPrinted = true
	}
	return nil
}

func passcodePrompt(remaining int) string {
	return fmt.Sprintf("Enter passcode (%d guesses): ", remaining)
}

func parsePasscodeInput(input string) (passcode.Passcode, bool) {
	if len(input) != 6 {
		return passcode.Passcode{}, false
	}
	return passcode.FromString(input)
}

// Connecting opens the transport connection and sends the passcode once it
// succeeds, per spec.md §4.6. Grounded on
// original_source/client/src/lobby/handlers/connecting.rs.
type Connecting struct {
	pendingPasscode []byte
	dialed          bool
}

func (*Connecting) phaseName() string { return "Connecting" }

func (c *Connecting) handle(s *Session) Phase {
	if !c.dialed {
		c.dialed = true
		if err := s.net.Connect(s.ServerAddr); err != nil {
			return &Disconnected{Message: fmt.Sprintf("connection failed: %s", err)}
		}
	}

	if s.net.IsConnected() {
		s.net.SendMessage(wire.ChannelReliable, wire.ClientMessage{
			Tag:           wire.TagSendPasscode,
			PasscodeGuess: c.pendingPasscode,
		})
		return &Authenticating{GuessesLeft: passcode.MaxAttempts, WaitingForServer: true}
	}

	if s.net.IsDisconnected() {
		return &Disconnected{Message: fmt.Sprintf("connection failed: %s", s.net.DisconnectReason())}
	}

	return nil
}
