package client

import (
	"fmt"

	"github.com/mazenet/mazenet/internal/color"
	"github.com/mazenet/mazenet/internal/wire"
)

// Chat is the pre-game lobby chat, per spec.md §4.6. Grounded on
// original_source/client/src/lobby/state_handlers/chat.rs.
type Chat struct {
	AwaitingInitialRoster bool
	WaitingForServer      bool
}

func (*Chat) phaseName() string { return "Chat" }

func (c *Chat) handle(s *Session) Phase {
	for {
		msg, ok := s.net.ReceiveMessage(wire.ChannelReliable)
		if !ok {
			break
		}
		c.WaitingForServer = false

		switch msg.Tag {
		case wire.TagCountdownStarted:
			return &Countdown{EndTime: msg.EndTime, GameData: msg.GameData}
		case wire.TagBeginDifficultySelection:
			return &ChoosingDifficulty{}
		case wire.TagDenyDifficultySelection:
			// waiting_for_server already cleared above.
		case wire.TagChatMessage:
			if c.AwaitingInitialRoster {
				continue
			}
			s.ui.ShowMessageColor(fmt.Sprintf("%s: %s", msg.Username, msg.ChatContent), color.Name(msg.Color))
		case wire.TagUserJoined:
			if c.AwaitingInitialRoster {
				continue
			}
			s.ui.ShowMessage(fmt.Sprintf("Server: %s joined the chat.", msg.Username))
		case wire.TagUserLeft:
			if c.AwaitingInitialRoster {
				continue
			}
			s.ui.ShowMessage(fmt.Sprintf("Server: %s left the chat.", msg.Username))
		case wire.TagRoster:
			if len(msg.Roster) == 0 {
				s.ui.ShowMessage("Server: You are the only player online.")
			} else {
				s.ui.ShowMessage("Server: Players online:")
				for _, entry := range msg.Roster {
					s.ui.ShowMessageColor(fmt.Sprintf(" - %s", entry.Username), color.Name(entry.Color))
				}
			}
			c.AwaitingInitialRoster = false
		case wire.TagServerInfo:
			s.ui.ShowMessage(fmt.Sprintf("Server: %s", msg.InfoMessage))
		case wire.TagAppointHost:
			s.IsHost = true
			s.ui.ShowMessage("Server: You have been appointed host. Press TAB to begin.")
		}
	}

	for {
		line, ok, _ := s.ui.PollInput()
		if !ok {
			break
		}
		if line == "\t" {
			if s.IsHost {
				s.net.SendMessage(wire.ChannelReliable, wire.ClientMessage{Tag: wire.TagRequestStartGame})
				c.WaitingForServer = true
			}
			continue
		}
		if line == "" {
			continue
		}
		sendChat(s, line)
		c.WaitingForServer = true
	}

	return nil
}
