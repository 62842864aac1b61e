package client

import "github.com/mazenet/mazenet/internal/wire"

// Game is the active match. The per-tick work described in spec.md §4.6's
// Game row (consuming snapshots, capturing Input at target_tick) lives in
// the simulation package, driven directly by the client main loop rather
// than through Session.Advance, mirroring InGame's placeholder role in
// session/server. Game only carries the authoritative starting data the
// simulation package needs to build its local world.
type Game struct {
	GameData wire.GameData
}

func (*Game) phaseName() string { return "Game" }

// IntoAfterGameChat transitions to AfterGameChat once the simulation
// driver determines the match has ended.
func (g *Game) IntoAfterGameChat() Phase {
	return &AfterGameChat{}
}
