package client

import (
	"fmt"

	"github.com/mazenet/mazenet/internal/clock"
	"github.com/mazenet/mazenet/internal/color"
	"github.com/mazenet/mazenet/internal/wire"
)

// AfterGameChat shows the match roster and leaderboard, then behaves like
// Chat, per spec.md §4.6. Grounded on
// original_source/client/src/after_game_chat.rs.
type AfterGameChat struct {
	awaitingInitialRoster bool
	leaderboardReceived   bool
}

func (*AfterGameChat) phaseName() string { return "AfterGameChat" }

func (a *AfterGameChat) handle(s *Session) Phase {
	for {
		msg, ok := s.net.ReceiveMessage(wire.ChannelReliable)
		if !ok {
			break
		}

		switch msg.Tag {
		case wire.TagChatMessage:
			if a.awaitingInitialRoster {
				continue
			}
			s.ui.ShowMessageColor(fmt.Sprintf("%s: %s", msg.Username, msg.ChatContent), color.Name(msg.Color))
		case wire.TagUserJoined:
			if a.awaitingInitialRoster {
				continue
			}
			s.ui.ShowMessage(fmt.Sprintf("Server: %s joined the chat.", msg.Username))
		case wire.TagUserLeft:
			if a.awaitingInitialRoster {
				continue
			}
			s.ui.ShowMessage(fmt.Sprintf("Server: %s left the chat.", msg.Username))
		case wire.TagAfterGameRoster:
			if len(msg.HadesShades) == 0 {
				s.ui.ShowMessage("Server: You are the only shade in Hades.")
			} else {
				s.ui.ShowMessage("Server: Shades in Hades:")
				for _, name := range msg.HadesShades {
					s.ui.ShowMessage(fmt.Sprintf(" - %s", name))
				}
			}
			a.awaitingInitialRoster = false
		case wire.TagAfterGameLeaderboard:
			showLeaderboard(s, msg.Leaderboard)
			a.leaderboardReceived = true
		case wire.TagServerInfo:
			s.ui.ShowMessage(fmt.Sprintf("Server: %s", msg.InfoMessage))
		}
	}

	if !a.leaderboardReceived {
		for {
			line, ok, _ := s.ui.PollInput()
			if !ok {
				break
			}
			if line == "" {
				continue
			}
			sendChat(s, line)
		}
	}

	return nil
}

func showLeaderboard(s *Session, entries []wire.LeaderboardEntry) {
	s.ui.ShowMessage(" ")
	s.ui.ShowMessage("Leaderboard:")

	rank := 1
	var prevTicks uint64
	havePrev := false
	for _, e := range entries {
		if havePrev && prevTicks != e.TicksSurvived {
			rank++
		}
		prevTicks, havePrev = e.TicksSurvived, true

		seconds := float64(e.TicksSurvived) * clock.TickSecs
		s.ui.ShowMessageColor(
			fmt.Sprintf("  %d. %s  %.1f s  (%s)", rank, e.Username, seconds, exitReasonString(e.ExitReason)),
			color.Name(e.Color),
		)
	}

	s.ui.ShowMessage(" ")
	s.ui.ShowMessageColor("That's your lot. Press escape to exit.", color.Yellow)
}

func exitReasonString(r wire.ExitReason) string {
	switch r {
	case wire.ExitReasonEscaped:
		return "escaped"
	case wire.ExitReasonDied:
		return "died"
	case wire.ExitReasonDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}
