package client

import (
	"fmt"
	"math"

	"github.com/mazenet/mazenet/internal/wire"
)

// Countdown shows the pre-match countdown while the simulation package
// (outside this package) pre-builds its own state from GameData, per
// spec.md §4.6's Countdown↔Game handoff. Grounded on
// original_source/client/src/lobby/state_handlers/countdown.rs.
type Countdown struct {
	EndTime  float64
	GameData wire.GameData
}

func (*Countdown) phaseName() string { return "Countdown" }

// drain discards reliable-channel traffic and redraws the remaining time,
// mirroring countdown.rs's handle body (it always returns None; the
// transition to Game happens in Session.Advance once the clock catches up).
func (cd *Countdown) drain(s *Session) {
	for {
		if _, ok := s.net.ReceiveMessage(wire.ChannelReliable); !ok {
			break
		}
	}

	remaining := cd.EndTime - s.EstimatedServerTime
	value := uint64(0)
	if remaining > 0 {
		value = uint64(math.Floor(remaining))
	}
	s.ui.DrawCountdown(fmt.Sprintf("%d", value))
}

func (cd *Countdown) intoGame() Phase {
	return &Game{GameData: cd.GameData}
}
