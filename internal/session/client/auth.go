package client

import (
	"fmt"

	"github.com/mazenet/mazenet/internal/wire"
)

// Authenticating resolves the passcode exchange with the server, per
// spec.md §4.6. Grounded on
// original_source/client/src/lobby/state_handlers/auth.rs.
type Authenticating struct {
	GuessesLeft      int
	WaitingForInput  bool
	WaitingForServer bool
}

func (*Authenticating) phaseName() string { return "Authenticating" }

func (a *Authenticating) handle(s *Session) Phase {
	for {
		msg, ok := s.net.ReceiveMessage(wire.ChannelReliable)
		if !ok {
			break
		}
		if msg.Tag != wire.TagServerInfo {
			continue
		}
		a.WaitingForServer = false

		switch msg.InfoMessage {
		case "a game is already in progress":
			return &Disconnected{Message: msg.InfoMessage}
		case "Passcode accepted.":
			s.ui.ShowMessage(fmt.Sprintf("Server: %s", msg.InfoMessage))
			return &ChoosingUsername{}
		case "Incorrect passcode, try again.":
			a.GuessesLeft--
			s.ui.ShowPrompt(passcodePrompt(a.GuessesLeft))
			a.WaitingForInput = true
		case "Too many incorrect attempts.":
			return &Disconnected{Message: "authentication failed"}
		default:
			s.ui.ShowMessage(fmt.Sprintf("Server: %s", msg.InfoMessage))
		}
	}

	if line, ok, _ := s.ui.PollInput(); ok && a.WaitingForInput {
		if code, valid := parsePasscodeInput(line); valid {
			s.ui.ShowMessage("Sending new guess...")
			s.net.SendMessage(wire.ChannelReliable, wire.ClientMessage{
				Tag:           wire.TagSendPasscode,
				PasscodeGuess: code.Digits,
			})
			a.WaitingForInput = false
			a.WaitingForServer = true
		} else {
			s.ui.ShowError(fmt.Sprintf("Invalid format: %q. Passcode must be a 6-digit number.", line))
			s.ui.ShowPrompt(passcodePrompt(a.GuessesLeft))
		}
	}

	return nil
}
