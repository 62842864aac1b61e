// Package simulation implements the server's fixed-tick InGame driver
// described in spec.md §4.5: drain inputs, resolve one tick of player
// state, detect exits, and broadcast snapshots every three ticks.
//
// Grounded on spec.md §4.5's per-tick work list. original_source's own
// state_handlers/game.rs never got past a TODO stub ("Have the server
// increment its tick. Process inputs for current tick. Send customized
// snapshot to each player."), so the tick body here follows spec.md's fully
// specified five-step list rather than the original, which the expanded
// spec treats as the decided, complete design where the original left a
// placeholder. The surrounding loop shape (transport pump, fixed-step
// accumulator, sleep) is grounded on original_source/server/src/run.rs's
// server_loop.
package simulation

import (
	"math/rand"

	"github.com/mazenet/mazenet/internal/inputintake"
	"github.com/mazenet/mazenet/internal/matchdata"
	"github.com/mazenet/mazenet/internal/maze"
	"github.com/mazenet/mazenet/internal/player"
	"github.com/mazenet/mazenet/internal/wire"
)

const (
	// TickSecs is one fixed simulation step, per spec.md §4.5.
	TickSecs = player.TickSecs

	// BroadcastEveryNTicks is the snapshot broadcast cadence, per spec.md
	// §4.5 (BROADCAST_INTERVAL = 3 * TICK_SECS, ~50ms).
	BroadcastEveryNTicks = 3

	// repulsionStrength is the fraction of overlap corrected per tick by
	// player.State.resolveOtherPlayerCollision. original_source/common/
	// src/player.rs takes this as a caller-supplied parameter but no
	// in-tree caller (the never-finished game.rs) ever set a concrete
	// value; 0.5 is this expansion's own choice — resolve half the overlap
	// per tick, a common middle ground for positional correction that
	// neither snaps instantly nor lets players visibly sink into each
	// other.
	repulsionStrength = 0.5
)

// ClientID identifies one connected client. A type alias (not a distinct
// named type) to inputintake.ClientID, since Match must satisfy
// inputintake.Match and Network must satisfy inputintake.Network exactly.
type ClientID = inputintake.ClientID

// Network is everything the simulation driver needs from the connection
// layer: inputintake.Network's drain surface, plus raw send/broadcast for
// snapshots.
type Network interface {
	inputintake.Network
	Send(id ClientID, channel wire.Channel, msg []byte)
	Broadcast(channel wire.Channel, msg []byte)
}

// Exit records how and when one player's participation in the match ended,
// for the caller to fold into the session layer's leaderboard bookkeeping
// (server.InGame.RecordExit).
type Exit struct {
	ClientID      ClientID
	Reason        wire.ExitReason
	TicksSurvived uint64
}

// Match is the live, mutable state of one in-progress match: the
// authoritative maze, every player (indexed identically to
// matchdata.InitialData.Players), and per-client exit/spectator
// bookkeeping. Owned exclusively by the server's simulation loop, per
// spec.md §5 and §9's "no cross-thread sharing" / "ownership of ring
// buffers" design notes.
type Match struct {
	Maze       *maze.Maze
	Players    []*player.Player
	Difficulty uint8
	HasExit    bool
	ExitRow    int
	ExitCol    int
	TimerSecs  float64

	CurrentTick uint64

	clientIndex   map[ClientID]int
	afterGameChat map[ClientID]bool
	ingressBytes  int
}

// NewMatch builds the live match state from the authoritative InitialData
// computed once at match start (matchdata.New), seeding every player's
// input buffer at startTick (the tick the match begins).
func NewMatch(data matchdata.InitialData, startTick uint64) *Match {
	m := &Match{
		Maze:          data.Maze,
		Difficulty:    data.Difficulty,
		HasExit:       data.HasExit,
		ExitRow:       data.ExitRow,
		ExitCol:       data.ExitCol,
		TimerSecs:     data.TimerSecs,
		CurrentTick:   startTick,
		clientIndex:   make(map[ClientID]int, len(data.Players)),
		afterGameChat: make(map[ClientID]bool),
	}
	m.Players = make([]*player.Player, 0, len(data.Players))
	for i, mp := range data.Players {
		id := ClientID(mp.ClientID)
		m.Players = append(m.Players, player.NewPlayer(i, uint64(mp.ClientID), mp.Username, mp.Spawn, mp.Color, startTick))
		m.clientIndex[id] = i
	}
	return m
}

// IsAfterGameChat reports whether id has already exited this match and
// become a Hades shade — still connected, but spectating chat rather than
// playing. Satisfies inputintake.Match.
func (m *Match) IsAfterGameChat(id ClientID) bool { return m.afterGameChat[id] }

// Player returns the live player backing a connected client, if any.
// Satisfies inputintake.Match.
func (m *Match) Player(id ClientID) (*player.Player, bool) {
	idx, ok := m.clientIndex[id]
	if !ok {
		return nil, false
	}
	return m.Players[idx], true
}

// NoteIngressBytes accumulates this tick's unreliable-channel ingress for
// observability. Satisfies inputintake.Match.
func (m *Match) NoteIngressBytes(n int) { m.ingressBytes += n }

// IngressBytes returns the running ingress byte total, for logging.
func (m *Match) IngressBytes() int { return m.ingressBytes }

// RemainingPlayers counts players who are still playing: connected, alive,
// and not yet a Hades shade. The caller transitions the session out of
// InGame once this reaches zero.
func (m *Match) RemainingPlayers() int {
	remaining := 0
	for id, idx := range m.clientIndex {
		p := m.Players[idx]
		if !m.afterGameChat[id] && p.IsAlive() {
			remaining++
		}
	}
	return remaining
}

// MarkDisconnected freezes a disconnecting player's state and records their
// exit, if they haven't already exited some other way. Called by the
// server orchestration layer when a transport disconnect event arrives
// during InGame.
func (m *Match) MarkDisconnected(id ClientID) (Exit, bool) {
	idx, ok := m.clientIndex[id]
	if !ok {
		return Exit{}, false
	}
	p := m.Players[idx]
	already := p.Disconnected
	p.Disconnected = true
	if already || m.afterGameChat[id] {
		return Exit{}, false
	}
	return m.recordExit(id, wire.ExitReasonDisconnected), true
}

func (m *Match) recordExit(id ClientID, reason wire.ExitReason) Exit {
	idx := m.clientIndex[id]
	p := m.Players[idx]
	m.afterGameChat[id] = true
	return Exit{ClientID: id, Reason: reason, TicksSurvived: p.CurrentTick}
}

// Step advances the match by exactly one tick, per spec.md §4.5's
// five-step per-tick work list, and returns any exits (escapes) detected
// this tick. Disconnect-triggered exits are reported separately through
// MarkDisconnected, fired by the caller as transport events arrive rather
// than discovered here.
func Step(network Network, m *Match, rng *rand.Rand) []Exit {
	tick := m.CurrentTick

	// 1. Drain inputs.
	inputintake.Drain(network, m, rng)

	// 2. Resolve inputs for tick T, in deterministic player-index order.
	for _, p := range m.Players {
		if !p.IsAlive() {
			continue
		}
		input, ok := p.InputBuffer.Get(tick)
		if ok {
			p.LastResolvedInput = input
		} else {
			input = p.LastResolvedInput
		}
		p.State.Update(m.Maze, input, p.Index, m.otherPositions(p.Index), repulsionStrength)
		p.CurrentTick = tick
	}

	// 3. Bullets/hits: out of scope per spec.md §4.5 step 3.

	// Escape detection: a live, still-playing player standing in the exit
	// cell has escaped. Elimination ("died") has no in-scope trigger since
	// the hit/damage subsystem producing it is the opaque out-of-scope
	// subsystem from step 3.
	var exits []Exit
	if m.HasExit {
		for id, idx := range m.clientIndex {
			p := m.Players[idx]
			if !p.IsAlive() || m.afterGameChat[id] {
				continue
			}
			if m.atExitCell(p.State.Position) {
				exits = append(exits, m.recordExit(id, wire.ExitReasonEscaped))
			}
		}
	}

	// 4. Advance tail so late arrivals for past ticks are dropped.
	for _, p := range m.Players {
		p.InputBuffer.AdvanceTail(tick)
	}

	// 5. Broadcast snapshots every BroadcastEveryNTicks ticks.
	if tick%BroadcastEveryNTicks == 0 {
		broadcastSnapshots(network, m, tick)
	}

	m.CurrentTick = tick + 1
	return exits
}

func (m *Match) atExitCell(pos player.Vec3) bool {
	row := int(pos.Z / maze.CellSize)
	col := int(pos.X / maze.CellSize)
	return row == m.ExitRow && col == m.ExitCol
}

func (m *Match) otherPositions(ownIndex int) []player.OtherPosition {
	others := make([]player.OtherPosition, 0, len(m.Players)-1)
	for _, p := range m.Players {
		if p.Index == ownIndex {
			continue
		}
		others = append(others, player.OtherPosition{Index: p.Index, Position: p.State.Position})
	}
	return others
}

// broadcastSnapshots sends every still-playing client its personalized
// Snapshot (itself as LocalPlayer, everyone else as RemotePlayer),
// per spec.md §4.5 step 5. Hades shades (already exited, spectating chat)
// don't receive snapshots — they're back in a chat view, not a game view.
func broadcastSnapshots(network Network, m *Match, tick uint64) {
	for id, idx := range m.clientIndex {
		if m.afterGameChat[id] {
			continue
		}
		recipient := m.Players[idx]
		snapshot := wire.Snapshot{Local: localView(recipient)}
		for _, p := range m.Players {
			if p.Index == recipient.Index {
				continue
			}
			snapshot.Remote = append(snapshot.Remote, remoteView(p))
		}
		w := wire.NewWriter(64 + 40*len(m.Players))
		wire.EncodeServerMessage(w, wire.ServerMessage{
			Tag:        wire.TagSnapshot,
			SnapshotID: uint16(tick),
			Snapshot:   snapshot,
		})
		network.Send(id, wire.ChannelUnreliable, w.Bytes())
	}
}

func localView(p *player.Player) wire.LocalPlayer {
	return wire.LocalPlayer{
		X: p.State.Position.X, Y: p.State.Position.Y, Z: p.State.Position.Z,
		VX: p.State.Velocity.X, VY: p.State.Velocity.Y, VZ: p.State.Velocity.Z,
		Yaw: p.State.Yaw, Pitch: p.State.Pitch,
		YawVelocity: p.State.YawVelocity, PitchVelocity: p.State.PitchVelocity,
		IsZoomed: p.State.IsZoomed,
	}
}

func remoteView(p *player.Player) wire.RemotePlayer {
	return wire.RemotePlayer{
		Index: uint16(p.Index),
		X:     p.State.Position.X, Y: p.State.Position.Y, Z: p.State.Position.Z,
		Yaw: p.State.Yaw, Pitch: p.State.Pitch,
	}
}
