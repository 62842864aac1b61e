// Package client implements the client-side session state machine from
// spec.md §4.6: Startup, ServerAddress, Passcode, Connecting,
// Authenticating, ChoosingUsername, AwaitingUsernameConfirmation, Chat,
// ChoosingDifficulty, Countdown, Game, AfterGameChat, Disconnected.
//
// Grounded on original_source/client/src/lobby/state.rs (the `Lobby`
// variant enum) and its state_handlers/*.rs files, one handler per state.
package client

import "github.com/mazenet/mazenet/internal/wire"

// Phase is the sum type over the twelve client states in spec.md §4.6. Each
// concrete phase type below is one variant.
type Phase interface {
	phaseName() string
}

// Session owns exactly one active Phase and the connection/identity state
// that survives across phase transitions, per spec.md §5's single-owner
// model (the only goroutine touching Session is the client main loop).
type Session struct {
	Phase Phase

	ClientID   uint64
	IsHost     bool
	ServerAddr string

	EstimatedServerTime float64

	net Network
	ui  UI
}

// NewSession starts a fresh client session in Startup, the only entry
// state.
func NewSession(net Network, ui UI) *Session {
	return &Session{Phase: &Startup{}, net: net, ui: ui}
}

// Advance runs the active phase's handle function once (one frame's worth
// of work: drain incoming messages, poll input, maybe transition), mirroring
// original_source/client/src/lobby/flow.rs's update_lobby_state dispatch.
func (s *Session) Advance() {
	if s.net.IsDisconnected() && !isDisconnectedPhase(s.Phase) {
		s.Phase = &Disconnected{Message: s.net.DisconnectReason()}
		return
	}

	var next Phase
	switch p := s.Phase.(type) {
	case *Startup:
		next = p.handle(s)
	case *ServerAddress:
		next = p.handle(s)
	case *PasscodeEntry:
		next = p.handle(s)
	case *Connecting:
		next = p.handle(s)
	case *Authenticating:
		next = p.handle(s)
	case *ChoosingUsername:
		next = p.handle(s)
	case *AwaitingUsernameConfirmation:
		next = p.handle(s)
	case *Chat:
		next = p.handle(s)
	case *ChoosingDifficulty:
		next = p.handle(s)
	case *Countdown:
		if s.EstimatedServerTime >= p.EndTime {
			next = p.intoGame()
		} else {
			p.drain(s)
		}
	case *Game:
		// Input capture and snapshot consumption are driven directly by the
		// simulation package, not through Advance; see spec.md §4.6's Game
		// row and the InGame phase's doc comment in session/server.
	case *AfterGameChat:
		next = p.handle(s)
	case *Disconnected:
		next = p.handle(s)
	}

	if next != nil {
		s.Phase = next
	}
}

// EnterAfterGameChat transitions a Game session to AfterGameChat once the
// simulation driver (outside this package) determines the match has ended.
func (s *Session) EnterAfterGameChat() {
	g, ok := s.Phase.(*Game)
	if !ok {
		return
	}
	s.Phase = g.IntoAfterGameChat()
}

func isDisconnectedPhase(p Phase) bool {
	_, ok := p.(*Disconnected)
	return ok
}

// sendChat sends a SendChat client message on the reliable channel, shared
// by Chat and AfterGameChat.
func sendChat(s *Session, text string) {
	s.net.SendMessage(wire.ChannelReliable, wire.ClientMessage{Tag: wire.TagSendChat, ChatText: text})
}
