// Package matchdata builds the authoritative InitialData for one match,
// per spec.md §3: "{maze, players, difficulty, exit_coords?, timer_duration}
// produced once at the start of a match from the set of authenticated
// (client_id -> username -> color) plus a chosen difficulty."
package matchdata

import (
	"math/rand"

	"github.com/mazenet/mazenet/internal/color"
	"github.com/mazenet/mazenet/internal/maze"
	"github.com/mazenet/mazenet/internal/player"
)

// ClientID identifies one connected client. A distinct named type from
// session/server's, username's, and passcode's own ClientID types (the
// packages don't share one to avoid an import-cycle-prone common package);
// callers convert with a plain uint64 cast.
type ClientID uint64

// TimerSecs is the match clock every difficulty starts with. spec.md §3
// lists a single `timer_duration` field without a solo/multiplayer split;
// the original source varied it by player count (SOLO_TIMER_DURATION vs
// BATTLE_TIMER_DURATION), but since those constants aren't present in the
// grounding source available here, New uses one fixed duration for every
// match size, documented as an Open Question resolution in DESIGN.md.
const TimerSecs = 300.0

// MatchPlayer is one player's authoritative starting data.
type MatchPlayer struct {
	ClientID ClientID
	Username string
	Color    color.Name
	Spawn    player.Vec3
}

// InitialData is the match's immutable starting state.
type InitialData struct {
	Maze       *maze.Maze
	Players    []MatchPlayer
	Difficulty uint8
	HasExit    bool
	ExitRow    int
	ExitCol    int
	TimerSecs  float64
}

// Seed is one authenticated client's username and assigned color, the
// input to New.
type Seed struct {
	ClientID ClientID
	Username string
	Color    color.Name
}

// New builds a fresh match: generates a maze for difficulty, places each
// seed at a distinct random open cell (removed from the pool as it's
// claimed, mirroring the original's `spaces_remaining.remove`), and always
// carves an exit from the last-placed player's spawn — spec.md marks
// exit_coords optional but gives no rule for when it's absent, so New
// always produces one.
func New(seeds []Seed, difficulty uint8, rng *rand.Rand) InitialData {
	m := maze.New(difficulty, rng)

	spacesRemaining := append([]maze.Coord(nil), m.Spaces...)
	players := make([]MatchPlayer, 0, len(seeds))
	var lastSpawnCell maze.Coord

	for _, seed := range seeds {
		if len(spacesRemaining) == 0 {
			spacesRemaining = append([]maze.Coord(nil), m.Spaces...)
		}
		idx := rng.Intn(len(spacesRemaining))
		cell := spacesRemaining[idx]
		spacesRemaining = append(spacesRemaining[:idx], spacesRemaining[idx+1:]...)
		lastSpawnCell = cell

		players = append(players, MatchPlayer{
			ClientID: seed.ClientID,
			Username: seed.Username,
			Color:    seed.Color,
			Spawn:    cellCenter(cell),
		})
	}

	m = m.WithExit(lastSpawnCell)

	data := InitialData{
		Maze:       m,
		Players:    players,
		Difficulty: difficulty,
		TimerSecs:  TimerSecs,
	}
	if m.ExitCoord != nil {
		data.HasExit = true
		data.ExitRow = m.ExitCoord.Row
		data.ExitCol = m.ExitCoord.Col
	}
	return data
}

func cellCenter(c maze.Coord) player.Vec3 {
	return player.Vec3{
		X: (float64(c.Col) + 0.5) * maze.CellSize,
		Y: player.Height / 2,
		Z: (float64(c.Row) + 0.5) * maze.CellSize,
	}
}
