// Package serverapp wires the message-level session/server state machine
// and the tick-level simulation driver onto a byte-level transport.ServerTransport,
// and owns the server's single main loop. Grounded on the teacher's
// cmd/gameserver entrypoint (config load → listener → signal handling →
// loop) and original_source/server/src/run.rs's server_loop/process_events
// shape.
package serverapp

import (
	"github.com/mazenet/mazenet/internal/inputintake"
	server "github.com/mazenet/mazenet/internal/session/server"
	"github.com/mazenet/mazenet/internal/simulation"
	"github.com/mazenet/mazenet/internal/transport"
	"github.com/mazenet/mazenet/internal/wire"
)

// ClientRegistry wraps a transport.ServerTransport with the connected-ID
// bookkeeping neither session/server.Network nor simulation.Network gets
// for free from the transport interface itself (transport.ServerTransport
// exposes no exported ClientIDs — only an internal helper it uses for its
// own Broadcast). PollEvents must be drained every loop iteration to keep
// this bookkeeping current.
type ClientRegistry struct {
	transport transport.ServerTransport
	connected map[transport.ClientID]bool
}

// NewClientRegistry wraps t.
func NewClientRegistry(t transport.ServerTransport) *ClientRegistry {
	return &ClientRegistry{transport: t, connected: make(map[transport.ClientID]bool)}
}

// DrainEvents pops every pending connect/disconnect event, updating the
// connected set, and returns them for the caller to route into the session
// and (if InGame) the active match.
func (r *ClientRegistry) DrainEvents() []transport.ServerEvent {
	var events []transport.ServerEvent
	for {
		ev, ok := r.transport.PollEvent()
		if !ok {
			break
		}
		switch ev.Kind {
		case transport.EventClientConnected:
			r.connected[ev.ClientID] = true
		case transport.EventClientDisconnected:
			delete(r.connected, ev.ClientID)
		}
		events = append(events, ev)
	}
	return events
}

// ClientIDs returns every currently connected transport client, converted
// to session/server's ClientID type.
func (r *ClientRegistry) serverClientIDs() []server.ClientID {
	ids := make([]server.ClientID, 0, len(r.connected))
	for id := range r.connected {
		ids = append(ids, server.ClientID(id))
	}
	return ids
}

// SessionNetwork returns an adapter satisfying session/server.Network:
// encodes/decodes wire.ServerMessage over the raw transport.
func (r *ClientRegistry) SessionNetwork() server.Network { return (*sessionNetwork)(r) }

// SimulationNetwork returns an adapter satisfying simulation.Network: raw
// byte send/receive/broadcast plus the connected-ID set, for the
// simulation driver and its embedded input intake.
func (r *ClientRegistry) SimulationNetwork() simulation.Network { return (*simNetwork)(r) }

type sessionNetwork ClientRegistry

func (s *sessionNetwork) registry() *ClientRegistry { return (*ClientRegistry)(s) }

func (s *sessionNetwork) Send(id server.ClientID, channel wire.Channel, message wire.ServerMessage) {
	w := wire.NewWriter(64)
	wire.EncodeServerMessage(w, message)
	s.registry().transport.Send(transport.ClientID(id), channel, w.Bytes())
}

func (s *sessionNetwork) Broadcast(channel wire.Channel, message wire.ServerMessage) {
	w := wire.NewWriter(64)
	wire.EncodeServerMessage(w, message)
	s.registry().transport.Broadcast(channel, w.Bytes())
}

func (s *sessionNetwork) BroadcastExcept(excluding server.ClientID, channel wire.Channel, message wire.ServerMessage) {
	w := wire.NewWriter(64)
	wire.EncodeServerMessage(w, message)
	s.registry().transport.BroadcastExcept(transport.ClientID(excluding), channel, w.Bytes())
}

func (s *sessionNetwork) Disconnect(id server.ClientID, reason string) {
	s.registry().transport.Disconnect(transport.ClientID(id), reason)
}

type simNetwork ClientRegistry

func (n *simNetwork) registry() *ClientRegistry { return (*ClientRegistry)(n) }

func (n *simNetwork) ClientIDs() []simulation.ClientID {
	raw := n.registry().serverClientIDs()
	ids := make([]simulation.ClientID, len(raw))
	for i, id := range raw {
		ids[i] = simulation.ClientID(id)
	}
	return ids
}

func (n *simNetwork) Receive(id simulation.ClientID, channel wire.Channel) ([]byte, bool) {
	return n.registry().transport.Receive(transport.ClientID(id), channel)
}

func (n *simNetwork) Disconnect(id simulation.ClientID, reason string) {
	n.registry().transport.Disconnect(transport.ClientID(id), reason)
}

func (n *simNetwork) Send(id simulation.ClientID, channel wire.Channel, msg []byte) {
	n.registry().transport.Send(transport.ClientID(id), channel, msg)
}

func (n *simNetwork) Broadcast(channel wire.Channel, msg []byte) {
	n.registry().transport.Broadcast(channel, msg)
}

var _ inputintake.Network = (*simNetwork)(nil)
