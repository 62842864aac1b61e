// Package memtransport is an in-process double for internal/transport's
// ServerTransport/ClientTransport interfaces, connecting one fake server
// to any number of fake clients over buffered Go channels instead of
// sockets. This is the double used throughout internal/session's and
// internal/simulation's tests, mirroring the role the teacher's
// internal/testutil in-process connection fakes play for
// internal/gameserver, generalized to message-channel framing instead of
// raw TCP bytes.
package memtransport

import (
	"math/rand"
	"sync"
	"time"

	"github.com/mazenet/mazenet/internal/transport"
	"github.com/mazenet/mazenet/internal/wire"
)

const channelCount = 3
const queueDepth = 256

// Pair owns every connected client's message queues. LossRate, in [0,1],
// randomly drops that fraction of sends in both directions; zero (the
// default) is perfectly reliable delivery.
type Pair struct {
	LossRate float64

	mu      sync.Mutex
	clients map[transport.ClientID]*conn
	nextID  transport.ClientID
	events  []transport.ServerEvent
	rng     *rand.Rand
}

// conn holds the two message queues for one connected client: toServer
// carries client->server traffic, toClient carries server->client
// traffic.
type conn struct {
	toServer [channelCount]chan []byte
	toClient [channelCount]chan []byte

	disconnected bool
	reason       string
	rtt          time.Duration
}

func newConn() *conn {
	c := &conn{rtt: time.Millisecond}
	for i := 0; i < channelCount; i++ {
		c.toServer[i] = make(chan []byte, queueDepth)
		c.toClient[i] = make(chan []byte, queueDepth)
	}
	return c
}

// NewPair creates an empty server with no clients connected yet.
func NewPair() *Pair {
	return &Pair{
		clients: make(map[transport.ClientID]*conn),
		rng:     rand.New(rand.NewSource(1)),
	}
}

// Server returns the ServerTransport half of the pair.
func (p *Pair) Server() transport.ServerTransport { return (*server)(p) }

// Dial connects a new fake client and returns its ClientTransport. addr is
// ignored — there is no real socket to dial.
func (p *Pair) Dial() transport.ClientTransport {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.clients[id] = newConn()
	p.events = append(p.events, transport.ServerEvent{Kind: transport.EventClientConnected, ClientID: id})
	p.mu.Unlock()
	return &client{pair: p, id: id}
}

func (p *Pair) drop() bool {
	if p.LossRate <= 0 {
		return false
	}
	return p.rng.Float64() < p.LossRate
}

func (p *Pair) closeClient(id transport.ClientID, reason string, notify bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.clients[id]
	if !ok || c.disconnected {
		return
	}
	c.disconnected = true
	c.reason = reason
	if notify {
		p.events = append(p.events, transport.ServerEvent{Kind: transport.EventClientDisconnected, ClientID: id, Reason: reason})
	}
}

type server Pair

func (s *server) pair() *Pair { return (*Pair)(s) }

func (s *server) PollEvent() (transport.ServerEvent, bool) {
	p := s.pair()
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.events) == 0 {
		return transport.ServerEvent{}, false
	}
	ev := p.events[0]
	p.events = p.events[1:]
	return ev, true
}

func (s *server) Receive(id transport.ClientID, ch wire.Channel) ([]byte, bool) {
	p := s.pair()
	p.mu.Lock()
	c, ok := p.clients[id]
	p.mu.Unlock()
	if !ok {
		return nil, false
	}
	select {
	case msg := <-c.toServer[ch]:
		return msg, true
	default:
		return nil, false
	}
}

func (s *server) Send(id transport.ClientID, ch wire.Channel, msg []byte) {
	p := s.pair()
	p.mu.Lock()
	c, ok := p.clients[id]
	drop := ok && p.drop()
	p.mu.Unlock()
	if !ok || drop || c.disconnected {
		return
	}
	select {
	case c.toClient[ch] <- msg:
	default:
	}
}

func (s *server) Broadcast(ch wire.Channel, msg []byte) {
	for _, id := range s.pair().clientIDs() {
		s.Send(id, ch, msg)
	}
}

func (s *server) BroadcastExcept(excluding transport.ClientID, ch wire.Channel, msg []byte) {
	for _, id := range s.pair().clientIDs() {
		if id != excluding {
			s.Send(id, ch, msg)
		}
	}
}

func (p *Pair) clientIDs() []transport.ClientID {
	p.mu.Lock()
	defer p.mu.Unlock()
	ids := make([]transport.ClientID, 0, len(p.clients))
	for id := range p.clients {
		ids = append(ids, id)
	}
	return ids
}

func (s *server) Disconnect(id transport.ClientID, reason string) {
	s.pair().closeClient(id, reason, true)
}

func (s *server) RTT(id transport.ClientID) time.Duration {
	p := s.pair()
	p.mu.Lock()
	defer p.mu.Unlock()
	if c, ok := p.clients[id]; ok {
		return c.rtt
	}
	return 0
}

func (s *server) Close() error { return nil }

type client struct {
	pair *Pair
	id   transport.ClientID
}

// Connect is a no-op: Dial already established the connection.
func (c *client) Connect(addr string) error { return nil }

func (c *client) Receive(ch wire.Channel) ([]byte, bool) {
	c.pair.mu.Lock()
	conn, ok := c.pair.clients[c.id]
	c.pair.mu.Unlock()
	if !ok {
		return nil, false
	}
	select {
	case msg := <-conn.toClient[ch]:
		return msg, true
	default:
		return nil, false
	}
}

func (c *client) Send(ch wire.Channel, msg []byte) {
	c.pair.mu.Lock()
	conn, ok := c.pair.clients[c.id]
	drop := ok && c.pair.drop()
	c.pair.mu.Unlock()
	if !ok || drop || conn.disconnected {
		return
	}
	select {
	case conn.toServer[ch] <- msg:
	default:
	}
}

func (c *client) IsConnected() bool {
	c.pair.mu.Lock()
	defer c.pair.mu.Unlock()
	conn, ok := c.pair.clients[c.id]
	return ok && !conn.disconnected
}

func (c *client) IsDisconnected() bool {
	c.pair.mu.Lock()
	defer c.pair.mu.Unlock()
	conn, ok := c.pair.clients[c.id]
	return !ok || conn.disconnected
}

func (c *client) DisconnectReason() string {
	c.pair.mu.Lock()
	defer c.pair.mu.Unlock()
	if conn, ok := c.pair.clients[c.id]; ok {
		return conn.reason
	}
	return ""
}

func (c *client) RTT() time.Duration {
	c.pair.mu.Lock()
	defer c.pair.mu.Unlock()
	if conn, ok := c.pair.clients[c.id]; ok {
		return conn.rtt
	}
	return 0
}

// Close disconnects gracefully from the client's own side, without
// reporting a server-visible reason string (mirroring a clean client
// shutdown rather than a transport failure).
func (c *client) Close() error {
	c.pair.closeClient(c.id, "client closed connection", true)
	return nil
}

var (
	_ transport.ServerTransport = (*server)(nil)
	_ transport.ClientTransport = (*client)(nil)
)
