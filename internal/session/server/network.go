// Package server implements the tagged-union server session state machine
// from spec.md §4.3: Lobby, ChoosingDifficulty, Countdown, InGame, and
// AfterGameChat, plus the client disconnect cascade shared by all of them.
package server

import "github.com/mazenet/mazenet/internal/wire"

// ClientID identifies one connected client for the lifetime of its
// transport connection.
type ClientID uint64

// Network is everything a session phase needs from the connection layer,
// grounded on the original server's ServerNetworkHandle trait (send/
// broadcast/broadcast-except/disconnect). Kept separate from the
// internal/transport package so session logic can be unit-tested against a
// fake without depending on any real socket code.
type Network interface {
	Send(id ClientID, channel wire.Channel, message wire.ServerMessage)
	Broadcast(channel wire.Channel, message wire.ServerMessage)
	BroadcastExcept(excluding ClientID, channel wire.Channel, message wire.ServerMessage)
	Disconnect(id ClientID, reason string)
}
