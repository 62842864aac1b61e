package client

import (
	"time"

	"github.com/mazenet/mazenet/internal/wire"
)

// Network is the client's transport-facing capability set, per spec.md §9
// DESIGN NOTES (`send_message`, `receive_message(channel)`, `is_connected`,
// `is_disconnected`, `disconnect_reason`, `rtt`). Grounded on
// original_source/client/src/net.rs's NetworkHandle trait.
type Network interface {
	Connect(addr string) error
	SendMessage(channel wire.Channel, msg wire.ClientMessage)
	ReceiveMessage(channel wire.Channel) (wire.ServerMessage, bool)
	IsConnected() bool
	IsDisconnected() bool
	DisconnectReason() string
	RTT() time.Duration
}
