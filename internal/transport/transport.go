// Package transport defines the connection boundary shared by
// internal/session/server and internal/session/client: a server-side
// transport multiplexing any number of clients, and a client-side
// transport dialing exactly one server, both moving raw message bytes
// over spec.md §4.1's three logical channels.
//
// Grounded on the teacher's internal/gameserver client/connection-manager
// pair (per-client send queue + writer goroutine, registry, broadcast) and
// on original_source/server/src/lib.rs's ServerNetworkHandle trait plus
// original_source/client/src/net.rs's NetworkHandle trait — both ported
// from renet's trait shape to a plain Go interface pair, with
// renet/renet_netcode's job (reliable-ordered delivery, connect tokens)
// taken over by the udptransport subpackage instead of a dependency.
package transport

import (
	"time"

	"github.com/mazenet/mazenet/internal/wire"
)

// ClientID identifies one connected client for the lifetime of its
// transport connection. It is a transport-layer identifier, distinct from
// (but normally assigned 1:1 with) any session-level client ID.
type ClientID uint64

// ServerEventKind distinguishes the two lifecycle events a ServerTransport
// reports, mirroring original_source/server/src/lib.rs's
// ServerNetworkEvent enum.
type ServerEventKind int

const (
	EventClientConnected ServerEventKind = iota
	EventClientDisconnected
)

// ServerEvent is one connect/disconnect notification queued by a
// ServerTransport for the server loop to drain.
type ServerEvent struct {
	Kind     ServerEventKind
	ClientID ClientID
	Reason   string // meaningful only for EventClientDisconnected
}

// ServerTransport is the server-side connection boundary, per
// SPEC_FULL.md §4.11. Implementations buffer inbound messages per
// (client, channel) for Receive to drain and queue connect/disconnect
// events for PollEvent to drain; both are non-blocking.
type ServerTransport interface {
	// PollEvent drains one queued connect/disconnect notification, or
	// reports false if none are pending.
	PollEvent() (ServerEvent, bool)
	Receive(id ClientID, ch wire.Channel) ([]byte, bool)
	Send(id ClientID, ch wire.Channel, msg []byte)
	Broadcast(ch wire.Channel, msg []byte)
	BroadcastExcept(excluding ClientID, ch wire.Channel, msg []byte)
	Disconnect(id ClientID, reason string)
	RTT(id ClientID) time.Duration
	Close() error
}

// ClientTransport is the client-side connection boundary, per
// SPEC_FULL.md §4.11.
type ClientTransport interface {
	Connect(addr string) error
	Receive(ch wire.Channel) ([]byte, bool)
	Send(ch wire.Channel, msg []byte)
	IsConnected() bool
	IsDisconnected() bool
	DisconnectReason() string
	RTT() time.Duration
	Close() error
}
