package client

import (
	"fmt"

	"github.com/mazenet/mazenet/internal/username"
	"github.com/mazenet/mazenet/internal/wire"
)

// ChoosingUsername lets the player pick a username and submits it to the
// server, per spec.md §4.6. Grounded on
// original_source/client/src/lobby/state_handlers/username.rs.
type ChoosingUsername struct {
	promptPrinted bool
}

func (*ChoosingUsername) phaseName() string { return "ChoosingUsername" }

func (cu *ChoosingUsername) handle(s *Session) Phase {
	if !cu.promptPrinted {
		s.ui.ShowPrompt(fmt.Sprintf("Choose a username (1-%d characters, letters/numbers/_/- only): ", username.MaxLength))
		cu.promptPrinted = true
	}

	if line, ok, _ := s.ui.PollInput(); ok {
		clean, err := username.Sanitize(line)
		if err != nil {
			s.ui.ShowError(err.Error())
			return &ChoosingUsername{}
		}

		s.net.SendMessage(wire.ChannelReliable, wire.ClientMessage{Tag: wire.TagSetUsername, Username: clean})
		return &AwaitingUsernameConfirmation{}
	}

	return nil
}

// AwaitingUsernameConfirmation waits for the server to accept or reject the
// submitted username, per spec.md §4.6. Grounded on
// original_source/client/src/lobby/handlers/waiting.rs.
type AwaitingUsernameConfirmation struct{}

func (*AwaitingUsernameConfirmation) phaseName() string { return "AwaitingUsernameConfirmation" }

func (*AwaitingUsernameConfirmation) handle(s *Session) Phase {
	for {
		msg, ok := s.net.ReceiveMessage(wire.ChannelReliable)
		if !ok {
			break
		}
		switch msg.Tag {
		case wire.TagWelcome:
			s.ui.ShowMessage(fmt.Sprintf("Server: Welcome, %s!", msg.Username))
			return &Chat{AwaitingInitialRoster: true}
		case wire.TagUsernameError:
			s.ui.ShowError(fmt.Sprintf("Username error: %s", msg.ErrorMessage))
			s.ui.ShowMessage("Please try a different username.")
			return &ChoosingUsername{}
		case wire.TagServerInfo:
			s.ui.ShowMessage(fmt.Sprintf("Server: %s", msg.InfoMessage))
			return &Disconnected{Message: msg.InfoMessage}
		}
	}
	return nil
}
