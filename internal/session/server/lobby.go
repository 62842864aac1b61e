package server

import (
	"github.com/mazenet/mazenet/internal/chat"
	"github.com/mazenet/mazenet/internal/color"
	"github.com/mazenet/mazenet/internal/passcode"
	"github.com/mazenet/mazenet/internal/username"
	"github.com/mazenet/mazenet/internal/wire"
)

// Lobby is the entry phase, per spec.md §4.3: holds the three disjoint
// client sets (auth_attempts, pending_usernames, usernames) plus the
// optional host, grounded on the original server's Lobby struct
// (server/src/state.rs).
type Lobby struct {
	code     passcode.Passcode
	attempts *passcode.Attempts
	names    *username.Registry
	colors   *color.Assigner
	assigned map[ClientID]color.Name
}

func (*Lobby) phaseName() string { return "Lobby" }

// NewLobby starts an empty lobby guarded by code.
func NewLobby(code passcode.Passcode) *Lobby {
	return &Lobby{
		code:     code,
		attempts: passcode.NewAttempts(),
		names:    username.NewRegistry(),
		colors:   &color.Assigner{},
		assigned: make(map[ClientID]color.Name),
	}
}

// registerConnection implements spec.md §4.3 Lobby transition 1: on
// connect, track the client at zero wrong attempts.
func (l *Lobby) registerConnection(id ClientID) {
	l.attempts.Track(username.ClientID(id))
}

// handle dispatches one ClientMessage per spec.md §4.3's Lobby transitions
// 2-6, returning the next Phase on transition to ChoosingDifficulty, or nil
// to stay in Lobby.
func (l *Lobby) handle(net Network, id ClientID, msg wire.ClientMessage) Phase {
	switch msg.Tag {
	case wire.TagSendPasscode:
		l.handlePasscode(net, id, msg.PasscodeGuess)
	case wire.TagSetUsername:
		l.handleSetUsername(net, id, msg.Username)
	case wire.TagSendChat:
		l.handleChat(net, id, msg.ChatText)
	case wire.TagRequestStartGame:
		return l.handleRequestStartGame(net, id)
	default:
		// Log and ignore, per transition 6.
	}
	return nil
}

func (l *Lobby) handlePasscode(net Network, id ClientID, guess []byte) {
	uid := username.ClientID(id)
	if !l.attempts.IsTracked(uid) {
		return
	}
	if l.code.Equal(guess) {
		l.attempts.Clear(uid)
		l.names.MarkPending(uid)
		net.Send(id, wire.ChannelReliable, wire.ServerMessage{
			Tag:         wire.TagServerInfo,
			InfoMessage: "Passcode accepted.",
		})
		return
	}

	exceeded := l.attempts.RecordWrongGuess(uid)
	if exceeded {
		net.Send(id, wire.ChannelReliable, wire.ServerMessage{
			Tag:         wire.TagServerInfo,
			InfoMessage: "Too many incorrect attempts.",
		})
		l.attempts.Clear(uid)
		net.Disconnect(id, "too many incorrect passcode attempts")
		return
	}
	net.Send(id, wire.ChannelReliable, wire.ServerMessage{
		Tag:         wire.TagServerInfo,
		InfoMessage: "Incorrect passcode, try again.",
	})
}

func (l *Lobby) handleSetUsername(net Network, id ClientID, name string) {
	uid := username.ClientID(id)
	if !l.names.IsPending(uid) {
		return
	}

	sanitized, becameHost, err := l.names.Register(uid, name)
	if err != nil {
		net.Send(id, wire.ChannelReliable, wire.ServerMessage{
			Tag:          wire.TagUsernameError,
			ErrorMessage: err.Error(),
		})
		return
	}

	n, _, ok := l.colors.Next()
	if !ok {
		net.Send(id, wire.ChannelReliable, wire.ServerMessage{
			Tag:          wire.TagUsernameError,
			ErrorMessage: "the lobby is full",
		})
		return
	}
	l.assigned[id] = n

	net.Send(id, wire.ChannelReliable, wire.ServerMessage{
		Tag:      wire.TagWelcome,
		Username: sanitized,
		Color:    uint8(n),
	})

	onlineIDs := l.names.OnlineIDs(uid)
	roster := make([]wire.RosterEntry, 0, len(onlineIDs))
	for _, otherID := range onlineIDs {
		otherName, _ := l.names.Username(otherID)
		roster = append(roster, wire.RosterEntry{
			Username: otherName,
			Color:    uint8(l.assigned[ClientID(otherID)]),
		})
	}
	net.Send(id, wire.ChannelReliable, wire.ServerMessage{Tag: wire.TagRoster, Roster: roster})

	if becameHost {
		net.Send(id, wire.ChannelReliable, wire.ServerMessage{Tag: wire.TagAppointHost})
	}

	net.BroadcastExcept(id, wire.ChannelReliable, wire.ServerMessage{
		Tag:      wire.TagUserJoined,
		Username: sanitized,
	})
}

func (l *Lobby) handleChat(net Network, id ClientID, text string) {
	if _, ok := l.names.Username(username.ClientID(id)); !ok {
		return
	}
	content, ok := chat.Prepare(text)
	if !ok {
		return
	}
	senderName, _ := l.names.Username(username.ClientID(id))
	senderColor := l.assigned[id]
	net.Broadcast(wire.ChannelReliable, wire.ServerMessage{
		Tag:         wire.TagChatMessage,
		Username:    senderName,
		Color:       uint8(senderColor),
		ChatContent: content,
	})
}

func (l *Lobby) handleRequestStartGame(net Network, id ClientID) Phase {
	if !l.names.IsHost(username.ClientID(id)) {
		net.Send(id, wire.ChannelReliable, wire.ServerMessage{Tag: wire.TagDenyDifficultySelection})
		return nil
	}
	return NewChoosingDifficulty(l)
}

// removeClient implements spec.md §4.3's disconnect cascade for Lobby: drop
// id from every membership set, broadcast UserLeft iff it had a username,
// and promote + notify a new host iff id was host.
func (l *Lobby) removeClient(net Network, id ClientID) {
	uid := username.ClientID(id)
	l.attempts.Clear(uid)

	leavingName, _ := l.names.Username(uid)
	hadUsername, newHost, hostChanged := l.names.Remove(uid)
	delete(l.assigned, id)

	if hadUsername {
		net.Broadcast(wire.ChannelReliable, wire.ServerMessage{Tag: wire.TagUserLeft, Username: leavingName})
	}
	if hostChanged {
		net.Send(ClientID(newHost), wire.ChannelReliable, wire.ServerMessage{Tag: wire.TagAppointHost})
	}
}
