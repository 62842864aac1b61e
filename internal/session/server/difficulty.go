package server

import (
	"math/rand"

	"github.com/mazenet/mazenet/internal/chat"
	"github.com/mazenet/mazenet/internal/color"
	"github.com/mazenet/mazenet/internal/matchdata"
	"github.com/mazenet/mazenet/internal/wire"
)

// countdownDuration is the fixed gap between a valid SetDifficulty and
// match start, per spec.md §4.3: "compute end_time = now + 11 s".
const countdownDuration = 11.0

// ChoosingDifficulty persists the host identity and the registered
// usernames/colors from Lobby while the host picks a difficulty, per
// spec.md §4.3.
type ChoosingDifficulty struct {
	host      ClientID
	usernames map[ClientID]string
	colors    map[ClientID]color.Name
}

func (*ChoosingDifficulty) phaseName() string { return "ChoosingDifficulty" }

// NewChoosingDifficulty snapshots l's registered usernames and host, per
// spec.md §4.3's Lobby-to-ChoosingDifficulty transition ("carrying the
// current Lobby").
func NewChoosingDifficulty(l *Lobby) *ChoosingDifficulty {
	host, _ := l.names.HostID()
	names := make(map[ClientID]string)
	colors := make(map[ClientID]color.Name)
	for _, id := range l.names.AllIDs() {
		name, _ := l.names.Username(id)
		names[ClientID(id)] = name
	}
	for id, n := range l.assigned {
		colors[id] = n
	}
	return &ChoosingDifficulty{host: ClientID(host), usernames: names, colors: colors}
}

func (c *ChoosingDifficulty) handle(net Network, id ClientID, msg wire.ClientMessage, now float64, rng *rand.Rand) Phase {
	switch msg.Tag {
	case wire.TagSetDifficulty:
		return c.handleSetDifficulty(net, id, msg.Difficulty, now, rng)
	case wire.TagSendChat:
		c.handleChat(net, id, msg.ChatText)
	case wire.TagSendPasscode, wire.TagSetUsername:
		net.Send(id, wire.ChannelReliable, wire.ServerMessage{
			Tag:         wire.TagServerInfo,
			InfoMessage: "a game is already in progress",
		})
	default:
		// RequestStartGame and unknown variants: log and ignore.
	}
	return nil
}

func (c *ChoosingDifficulty) handleSetDifficulty(net Network, id ClientID, level uint8, now float64, rng *rand.Rand) Phase {
	if id != c.host {
		return nil
	}
	if level < 1 || level > 3 {
		net.Send(id, wire.ChannelReliable, wire.ServerMessage{
			Tag:         wire.TagServerInfo,
			InfoMessage: "Invalid choice. Please press 1, 2, or 3.",
		})
		return nil
	}

	seeds := make([]matchdata.Seed, 0, len(c.usernames))
	for cid, name := range c.usernames {
		seeds = append(seeds, matchdata.Seed{ClientID: matchdata.ClientID(cid), Username: name, Color: c.colors[cid]})
	}
	data := matchdata.New(seeds, level, rng)
	endTime := now + countdownDuration

	net.Broadcast(wire.ChannelReliable, wire.ServerMessage{
		Tag:      wire.TagCountdownStarted,
		EndTime:  endTime,
		GameData: toWireGameData(data),
	})

	return NewCountdown(c, data, endTime)
}

func (c *ChoosingDifficulty) handleChat(net Network, id ClientID, text string) {
	name, ok := c.usernames[id]
	if !ok {
		return
	}
	content, ok := chat.Prepare(text)
	if !ok {
		return
	}
	net.Broadcast(wire.ChannelReliable, wire.ServerMessage{
		Tag:         wire.TagChatMessage,
		Username:    name,
		Color:       uint8(c.colors[id]),
		ChatContent: content,
	})
}

// removeClient implements the disconnect cascade while choosing a
// difficulty: spec.md §4.3 doesn't special-case this phase beyond the
// general cascade, so it behaves like Lobby's (minus re-electing a
// colour-assigner, since colours were already handed out).
func (c *ChoosingDifficulty) removeClient(net Network, id ClientID) {
	_, hadUsername := c.usernames[id]
	name := c.usernames[id]
	delete(c.usernames, id)
	delete(c.colors, id)

	if hadUsername {
		net.Broadcast(wire.ChannelReliable, wire.ServerMessage{Tag: wire.TagUserLeft, Username: name})
	}

	if id == c.host {
		c.host = 0
		for cid := range c.usernames {
			c.host = cid
			net.Send(cid, wire.ChannelReliable, wire.ServerMessage{Tag: wire.TagAppointHost})
			break
		}
	}
}

func toWireGameData(d matchdata.InitialData) wire.GameData {
	players := make([]wire.InitialPlayer, 0, len(d.Players))
	for _, p := range d.Players {
		players = append(players, wire.InitialPlayer{
			Username: p.Username,
			Color:    uint8(p.Color),
			X:        p.Spawn.X,
			Y:        p.Spawn.Y,
			Z:        p.Spawn.Z,
		})
	}
	return wire.GameData{
		MazeGrid:   d.Maze.Grid,
		Players:    players,
		Difficulty: d.Difficulty,
		HasExit:    d.HasExit,
		ExitRow:    uint16(d.ExitRow),
		ExitCol:    uint16(d.ExitCol),
		TimerSecs:  d.TimerSecs,
	}
}
