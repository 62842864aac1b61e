package server

import (
	"github.com/mazenet/mazenet/internal/chat"
	"github.com/mazenet/mazenet/internal/color"
	"github.com/mazenet/mazenet/internal/wire"
)

// AfterGameChat behaves like Lobby chat, plus it immediately announces the
// match's outcome via AfterGameRoster and AfterGameLeaderboard, per
// spec.md §4.3.
type AfterGameChat struct {
	usernames map[ClientID]string
	colors    map[ClientID]color.Name
}

func (*AfterGameChat) phaseName() string { return "AfterGameChat" }

// NewAfterGameChat builds the leaderboard from ig's recorded exits and
// returns the new phase; the caller is responsible for sending the
// AfterGameRoster/AfterGameLeaderboard this constructor computes via
// Announcement.
func NewAfterGameChat(ig *InGame) *AfterGameChat {
	names := make(map[ClientID]string, len(ig.usernames))
	for id, n := range ig.usernames {
		names[id] = n
	}
	colors := make(map[ClientID]color.Name, len(ig.colors))
	for id, c := range ig.colors {
		colors[id] = c
	}
	return &AfterGameChat{usernames: names, colors: colors}
}

// Announcement builds the AfterGameRoster ("Hades shades" — the original's
// name for the list of everyone who was in the match) and
// AfterGameLeaderboard messages for ig's recorded exits, to be sent by the
// caller immediately after transitioning into AfterGameChat.
func Announcement(ig *InGame) (roster wire.ServerMessage, leaderboard wire.ServerMessage) {
	shades := make([]string, 0, len(ig.usernames))
	for _, name := range ig.usernames {
		shades = append(shades, name)
	}

	entries := make([]wire.LeaderboardEntry, 0, len(ig.exits))
	for id, rec := range ig.exits {
		entries = append(entries, wire.LeaderboardEntry{
			Username:      ig.usernames[id],
			Color:         uint8(ig.colors[id]),
			TicksSurvived: rec.ticksSurvived,
			ExitReason:    rec.reason,
		})
	}

	roster = wire.ServerMessage{Tag: wire.TagAfterGameRoster, HadesShades: shades}
	leaderboard = wire.ServerMessage{Tag: wire.TagAfterGameLeaderboard, Leaderboard: entries}
	return roster, leaderboard
}

func (a *AfterGameChat) handle(net Network, id ClientID, msg wire.ClientMessage) {
	if msg.Tag != wire.TagSendChat {
		return
	}
	name, ok := a.usernames[id]
	if !ok {
		return
	}
	content, ok := chat.Prepare(msg.ChatText)
	if !ok {
		return
	}
	net.Broadcast(wire.ChannelReliable, wire.ServerMessage{
		Tag:         wire.TagChatMessage,
		Username:    name,
		Color:       uint8(a.colors[id]),
		ChatContent: content,
	})
}

// removeClient handles disconnection identically to Lobby chat, per
// spec.md §9's Open Question resolution for after-game chat.
func (a *AfterGameChat) removeClient(net Network, id ClientID) {
	name, hadUsername := a.usernames[id]
	delete(a.usernames, id)
	delete(a.colors, id)
	if hadUsername {
		net.Broadcast(wire.ChannelReliable, wire.ServerMessage{Tag: wire.TagUserLeft, Username: name})
	}
}
