package server

import (
	"github.com/mazenet/mazenet/internal/color"
	"github.com/mazenet/mazenet/internal/matchdata"
	"github.com/mazenet/mazenet/internal/wire"
)

// exitRecord is how and when one player's match ended.
type exitRecord struct {
	reason        wire.ExitReason
	ticksSurvived uint64
}

// InGame holds the match data for the active round. The per-tick
// simulation work described in spec.md §4.5 (draining inputs, advancing
// player state, broadcasting snapshots) lives in the simulation package,
// which is driven directly by the server main loop rather than through
// Session.HandleMessage — §4.7's input intake reads the unreliable channel
// itself and feeds each player's NetworkBuffer, bypassing per-message
// dispatch for volume reasons. InGame only tracks what's needed to build
// the AfterGameChat leaderboard when the match ends.
type InGame struct {
	InitialData matchdata.InitialData
	usernames   map[ClientID]string
	colors      map[ClientID]color.Name
	exits       map[ClientID]exitRecord
}

func (*InGame) phaseName() string { return "InGame" }

// NewInGame starts a match in progress.
func NewInGame(data matchdata.InitialData, usernames map[ClientID]string, colors map[ClientID]color.Name) *InGame {
	return &InGame{
		InitialData: data,
		usernames:   usernames,
		colors:      colors,
		exits:       make(map[ClientID]exitRecord),
	}
}

// handle enforces spec.md §4.6's Game-state contract: the only
// lifecycle-valid client message during InGame is Input, which the
// simulation driver consumes directly from the unreliable channel. Any
// other variant is a lifecycle violation, per spec.md §7 ("out-of-lifecycle
// binary"): log and disconnect.
func (ig *InGame) handle(id ClientID, msg wire.ClientMessage) {
	// Input is routed by the simulation/input-intake path, not here;
	// every other tag is out-of-lifecycle and the caller disconnects.
}

// RecordExit marks how and when a still-tracked player's match ended
// (escaped, died, or disconnected), used to build the AfterGameChat
// leaderboard.
func (ig *InGame) RecordExit(id ClientID, reason wire.ExitReason, ticksSurvived uint64) {
	ig.exits[id] = exitRecord{reason: reason, ticksSurvived: ticksSurvived}
}

// removeClient marks a disconnect during InGame. spec.md doesn't describe
// host re-election mid-match (there is no host role in Game per the
// client-state table); the simulation driver is expected to freeze that
// player's state (Player.disconnected, per spec.md §3) separately and
// report its actual tick count through RecordExit before this fires, if
// available.
func (ig *InGame) removeClient(id ClientID) {
	if _, already := ig.exits[id]; !already {
		ig.RecordExit(id, wire.ExitReasonDisconnected, 0)
	}
}

// intoAfterGameChat transitions to AfterGameChat once the simulation
// driver determines the match has ended, building the leaderboard from
// however each tracked player's match concluded.
func (ig *InGame) intoAfterGameChat() *AfterGameChat {
	return NewAfterGameChat(ig)
}
