// Package clientapp drives the client's single main loop: transport pump,
// clock synchronisation, session state machine, and — while the session is
// in the Game phase — per-tick input capture and snapshot consumption.
// Grounded on original_source/client/src/main.rs's run loop (connect ->
// fixed-rate update -> render), adapted to a ticker-driven step with no
// render stage, per spec.md's rendering non-goal.
package clientapp

import (
	"time"

	"github.com/mazenet/mazenet/internal/transport"
	"github.com/mazenet/mazenet/internal/wire"
)

// networkAdapter implements session/client.Network over a raw
// transport.ClientTransport, encoding outbound ClientMessages and decoding
// inbound ServerMessages on whichever channel the caller names. It also
// supports a one-shot pushback per channel: Run's Game-phase handling peeks
// a reliable message to detect the match-end handoff, then pushes it back
// so the session's own AfterGameChat phase (in a different package, with an
// unexported handler) sees it on its next ReceiveMessage call.
type networkAdapter struct {
	transport transport.ClientTransport
	pending   map[wire.Channel][]wire.ServerMessage
}

func newNetworkAdapter(t transport.ClientTransport) *networkAdapter {
	return &networkAdapter{transport: t, pending: make(map[wire.Channel][]wire.ServerMessage)}
}

func (n *networkAdapter) Connect(addr string) error { return n.transport.Connect(addr) }

func (n *networkAdapter) SendMessage(channel wire.Channel, msg wire.ClientMessage) {
	w := wire.NewWriter(64)
	wire.EncodeClientMessage(w, msg)
	n.transport.Send(channel, w.Bytes())
}

// ReceiveMessage returns the next message on channel: a pushed-back message
// first if one is queued, otherwise the next datagram off the transport.
// A malformed datagram is dropped silently, same as a channel with nothing
// pending — the transport layer has no notion of a "bad message" response.
func (n *networkAdapter) ReceiveMessage(channel wire.Channel) (wire.ServerMessage, bool) {
	if queued := n.pending[channel]; len(queued) > 0 {
		msg := queued[0]
		n.pending[channel] = queued[1:]
		return msg, true
	}

	data, ok := n.transport.Receive(channel)
	if !ok {
		return wire.ServerMessage{}, false
	}
	msg, err := wire.DecodeServerMessage(wire.NewReader(data))
	if err != nil {
		return wire.ServerMessage{}, false
	}
	return msg, true
}

func (n *networkAdapter) pushback(channel wire.Channel, msg wire.ServerMessage) {
	n.pending[channel] = append([]wire.ServerMessage{msg}, n.pending[channel]...)
}

func (n *networkAdapter) IsConnected() bool        { return n.transport.IsConnected() }
func (n *networkAdapter) IsDisconnected() bool     { return n.transport.IsDisconnected() }
func (n *networkAdapter) DisconnectReason() string { return n.transport.DisconnectReason() }
func (n *networkAdapter) RTT() time.Duration       { return n.transport.RTT() }
