package server

import (
	"github.com/mazenet/mazenet/internal/color"
	"github.com/mazenet/mazenet/internal/matchdata"
	"github.com/mazenet/mazenet/internal/wire"
)

// Countdown holds the match about to start, per spec.md §4.3: "drain
// reliable channel but ignore inputs... When server wall clock >= end_time,
// transition to InGame(initial_data)."
type Countdown struct {
	EndTime     float64
	InitialData matchdata.InitialData
	usernames   map[ClientID]string
	colors      map[ClientID]color.Name
}

func (*Countdown) phaseName() string { return "Countdown" }

// NewCountdown starts a countdown to data's match, carrying forward c's
// username/color bookkeeping so a mid-countdown disconnect can still be
// reflected (removed from usernames) per spec.md §4.3.
func NewCountdown(c *ChoosingDifficulty, data matchdata.InitialData, endTime float64) *Countdown {
	names := make(map[ClientID]string, len(c.usernames))
	for id, name := range c.usernames {
		names[id] = name
	}
	colors := make(map[ClientID]color.Name, len(c.colors))
	for id, n := range c.colors {
		colors[id] = n
	}
	return &Countdown{EndTime: endTime, InitialData: data, usernames: names, colors: colors}
}

// handle ignores every ClientMessage while counting down, per spec.md
// §4.3's "drain reliable channel but ignore inputs."
func (cd *Countdown) handle(net Network, id ClientID, msg wire.ClientMessage) {}

// removeClient implements spec.md §4.3's Countdown disconnect handling:
// "On disconnect of any client: remove from usernames." No host
// re-election is specified for this phase.
func (cd *Countdown) removeClient(id ClientID) {
	delete(cd.usernames, id)
	delete(cd.colors, id)
}

// intoInGame transitions to InGame once the server's wall clock reaches
// EndTime, per spec.md §4.3.
func (cd *Countdown) intoInGame() *InGame {
	return NewInGame(cd.InitialData, cd.usernames, cd.colors)
}
