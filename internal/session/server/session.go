package server

import (
	"math/rand"

	"github.com/mazenet/mazenet/internal/passcode"
	"github.com/mazenet/mazenet/internal/wire"
)

// Phase is the sum type over the five server states in spec.md §4.3. Each
// concrete phase type below is one variant.
type Phase interface {
	phaseName() string
}

// Session owns exactly one active Phase and mediates every transition
// between them. It is the single point through which connects,
// disconnects, and client messages flow into the active phase's logic, per
// spec.md §5's single-owner, no-cross-thread-sharing model.
type Session struct {
	Phase Phase
	net   Network
	rng   *rand.Rand
}

// NewSession starts a fresh session in Lobby, the only entry state, guarded
// by code (generated once per server run, per spec.md §3). rng seeds match
// generation when the host picks a difficulty.
func NewSession(net Network, code passcode.Passcode, rng *rand.Rand) *Session {
	return &Session{Phase: NewLobby(code), net: net, rng: rng}
}

// HandleConnect registers a newly connected client with the active phase.
// Per spec.md §4.3, only Lobby accepts new connections; every later phase
// rejects them.
func (s *Session) HandleConnect(id ClientID) {
	switch p := s.Phase.(type) {
	case *Lobby:
		p.registerConnection(id)
	default:
		s.net.Send(id, wire.ChannelReliable, wire.ServerMessage{
			Tag:         wire.TagServerInfo,
			InfoMessage: "a game is already in progress",
		})
		s.net.Disconnect(id, "game already started")
	}
}

// HandleMessage routes one decoded ClientMessage from id to the active
// phase, applying any resulting transition. now is the server's wall-clock
// time in seconds, needed only by ChoosingDifficulty to stamp the
// countdown's end_time.
func (s *Session) HandleMessage(id ClientID, msg wire.ClientMessage, now float64) {
	switch p := s.Phase.(type) {
	case *Lobby:
		if next := p.handle(s.net, id, msg); next != nil {
			s.Phase = next
		}
	case *ChoosingDifficulty:
		if next := p.handle(s.net, id, msg, now, s.rng); next != nil {
			s.Phase = next
		}
	case *Countdown:
		p.handle(s.net, id, msg)
	case *InGame:
		p.handle(id, msg)
	case *AfterGameChat:
		p.handle(s.net, id, msg)
	}
}

// HandleDisconnect fires the disconnect cascade (spec.md §4.3's
// "Disconnect cascade" paragraph): the active phase removes id from every
// membership set it owns and, if id was host, promotes a successor.
func (s *Session) HandleDisconnect(id ClientID) {
	switch p := s.Phase.(type) {
	case *Lobby:
		p.removeClient(s.net, id)
	case *ChoosingDifficulty:
		p.removeClient(s.net, id)
	case *Countdown:
		p.removeClient(id)
	case *InGame:
		p.removeClient(id)
	case *AfterGameChat:
		p.removeClient(s.net, id)
	}
}

// Advance gives Countdown a chance to transition to InGame on wall-clock
// progress alone, with no incoming message. now is the server's wall-clock
// time in seconds. InGame's own match-end transition to AfterGameChat is
// driven by the simulation package, which calls Session.EnterAfterGameChat
// directly since only it knows when the match actually ended.
func (s *Session) Advance(now float64) {
	if cd, ok := s.Phase.(*Countdown); ok && now >= cd.EndTime {
		s.Phase = cd.intoInGame()
	}
}

// EnterAfterGameChat transitions an InGame session to AfterGameChat once
// the simulation driver (outside this package) determines the match has
// ended, and broadcasts the resulting AfterGameRoster and
// AfterGameLeaderboard.
func (s *Session) EnterAfterGameChat() {
	ig, ok := s.Phase.(*InGame)
	if !ok {
		return
	}
	roster, leaderboard := Announcement(ig)
	s.Phase = ig.intoAfterGameChat()
	s.net.Broadcast(wire.ChannelReliable, roster)
	s.net.Broadcast(wire.ChannelReliable, leaderboard)
}
