package client

import (
	"github.com/mazenet/mazenet/internal/wire"
)

const invalidDifficultyChoiceMessage = "Invalid choice. Please press 1, 2, or 3."

// ChoosingDifficulty is where the host picks a difficulty level, per
// spec.md §4.6. Grounded on
// original_source/client/src/lobby/state_handlers/difficulty.rs.
type ChoosingDifficulty struct {
	promptPrinted bool
	choiceSent    bool
}

func (*ChoosingDifficulty) phaseName() string { return "ChoosingDifficulty" }

func (cd *ChoosingDifficulty) handle(s *Session) Phase {
	if !cd.promptPrinted && !cd.choiceSent {
		s.ui.ShowMessage("Server: Choose a difficulty level:")
		s.ui.ShowMessage("  1. Easy")
		s.ui.ShowMessage("  2. So-so")
		s.ui.ShowMessage("  3. Next level")
		s.ui.ShowPrompt("Press 1, 2, or 3.")
		cd.promptPrinted = true
	}

	for {
		msg, ok := s.net.ReceiveMessage(wire.ChannelReliable)
		if !ok {
			break
		}
		switch msg.Tag {
		case wire.TagCountdownStarted:
			return &Countdown{EndTime: msg.EndTime, GameData: msg.GameData}
		case wire.TagServerInfo:
			s.ui.ShowMessage("Server: " + msg.InfoMessage)
			return &ChoosingDifficulty{}
		}
	}

	if !cd.choiceSent {
		if key, ok, _ := s.ui.PollSingleKey(); ok {
			var level uint8
			switch key {
			case "1":
				level = 1
			case "2":
				level = 2
			case "3":
				level = 3
			default:
				s.ui.ShowError(invalidDifficultyChoiceMessage)
			}
			if level != 0 {
				s.net.SendMessage(wire.ChannelReliable, wire.ClientMessage{Tag: wire.TagSetDifficulty, Difficulty: level})
				return &ChoosingDifficulty{promptPrinted: cd.promptPrinted, choiceSent: true}
			}
		}
	}

	return nil
}
