package udptransport

import (
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/mazenet/mazenet/internal/transport"
	"github.com/mazenet/mazenet/internal/wire"
)

// serverConn is one connected client's per-connection state.
type serverConn struct {
	addr net.Addr

	inbox       [3]chan []byte // direct delivery for Unreliable/TimeSync
	reliableIn  *reliableReceiver
	reliableOut *reliableSender
	stopResend  chan struct{}

	mu           sync.Mutex
	rtt          time.Duration
	disconnected bool
	reason       string
}

// Server implements transport.ServerTransport over one UDP socket,
// multiplexing any number of clients by remote address.
type Server struct {
	conn   net.PacketConn
	secret []byte

	mu       sync.Mutex
	clients  map[transport.ClientID]*serverConn
	byAddr   map[string]transport.ClientID
	nextID   transport.ClientID
	events   []transport.ServerEvent
	stopRead chan struct{}
	closed   bool
}

// Listen binds a UDP socket at addr and starts accepting connect
// handshakes. secret is the shared passphrase used to verify each
// client's connect token (see token.go).
func Listen(addr string, secret []byte) (*Server, error) {
	conn, err := net.ListenPacket("udp", addr)
	if err != nil {
		return nil, err
	}
	s := &Server{
		conn:     conn,
		secret:   secret,
		clients:  make(map[transport.ClientID]*serverConn),
		byAddr:   make(map[string]transport.ClientID),
		stopRead: make(chan struct{}),
	}
	go s.readLoop()
	slog.Info("udptransport: server listening", "addr", conn.LocalAddr().String())
	return s, nil
}

func (s *Server) readLoop() {
	buf := make([]byte, maxDatagramSize)
	for {
		n, addr, err := s.conn.ReadFrom(buf)
		if err != nil {
			select {
			case <-s.stopRead:
				return
			default:
				slog.Warn("udptransport: server read failed", "error", err)
				return
			}
		}
		datagram := append([]byte(nil), buf[:n]...)
		s.handleDatagram(addr, datagram)
	}
}

func (s *Server) handleDatagram(addr net.Addr, datagram []byte) {
	kind, rest, err := frameKindOf(datagram)
	if err != nil {
		return
	}

	switch kind {
	case frameConnect:
		s.handleConnect(addr, rest)
	case frameData:
		s.handleData(addr, rest)
	case frameAck:
		s.handleAck(addr, rest)
	case frameDisconnect:
		s.handleDisconnect(addr, rest)
	default:
		slog.Warn("udptransport: server ignoring unknown frame", "kind", kind, "addr", addr.String())
	}
}

func (s *Server) handleConnect(addr net.Addr, payload []byte) {
	version, expiry, tag, err := decodeConnect(payload)
	if err != nil {
		slog.Warn("udptransport: malformed connect request", "addr", addr.String(), "error", err)
		return
	}
	if version != protocolVersion {
		slog.Warn("udptransport: rejecting connect", "addr", addr.String(), "clientVersion", version, "serverVersion", protocolVersion)
		s.conn.WriteTo(encodeConnectReject("protocol version mismatch"), addr)
		return
	}
	if err := verifyToken(s.secret, expiry, time.Now(), tag); err != nil {
		slog.Warn("udptransport: rejecting connect", "addr", addr.String(), "error", err)
		s.conn.WriteTo(encodeConnectReject(err.Error()), addr)
		return
	}

	s.mu.Lock()
	if id, already := s.byAddr[addr.String()]; already {
		s.mu.Unlock()
		s.conn.WriteTo(encodeConnectAccept(uint64(id)), addr)
		return
	}
	id := s.nextID
	s.nextID++
	c := &serverConn{
		addr:        addr,
		reliableIn:  newReliableReceiver(),
		reliableOut: newReliableSender(),
		stopResend:  make(chan struct{}),
	}
	for i := range c.inbox {
		c.inbox[i] = make(chan []byte, 256)
	}
	s.clients[id] = c
	s.byAddr[addr.String()] = id
	s.events = append(s.events, transport.ServerEvent{Kind: transport.EventClientConnected, ClientID: id})
	s.mu.Unlock()

	go resendLoop(c.reliableOut, func(d []byte) { s.conn.WriteTo(d, addr) }, c.stopResend)

	slog.Info("udptransport: client connected", "id", id, "addr", addr.String())
	s.conn.WriteTo(encodeConnectAccept(uint64(id)), addr)
}

func (s *Server) handleData(addr net.Addr, payload []byte) {
	ch, seq, msg, err := decodeData(payload)
	if err != nil {
		return
	}
	c, ok := s.connByAddr(addr)
	if !ok {
		return
	}

	if ch == wire.ChannelReliable {
		c.reliableIn.onFrame(seq, msg)
		s.conn.WriteTo(encodeAck(ch, seq), addr)
		return
	}
	select {
	case c.inbox[ch] <- msg:
	default:
	}
}

func (s *Server) handleAck(addr net.Addr, payload []byte) {
	ch, seq, err := decodeAck(payload)
	if err != nil || ch != wire.ChannelReliable {
		return
	}
	c, ok := s.connByAddr(addr)
	if !ok {
		return
	}
	if sample, tracked := c.reliableOut.ack(seq); tracked {
		updateRTT(&c.mu, &c.rtt, sample)
	}
}

func (s *Server) handleDisconnect(addr net.Addr, payload []byte) {
	reason, err := decodeDisconnect(payload)
	if err != nil {
		reason = "peer disconnected"
	}
	s.mu.Lock()
	id, ok := s.byAddr[addr.String()]
	s.mu.Unlock()
	if !ok {
		return
	}
	s.markDisconnected(id, reason)
}

func (s *Server) connByAddr(addr net.Addr) (*serverConn, bool) {
	s.mu.Lock()
	id, ok := s.byAddr[addr.String()]
	if !ok {
		s.mu.Unlock()
		return nil, false
	}
	c := s.clients[id]
	s.mu.Unlock()
	return c, true
}

func (s *Server) markDisconnected(id transport.ClientID, reason string) {
	s.mu.Lock()
	c, ok := s.clients[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	c.mu.Lock()
	already := c.disconnected
	c.disconnected = true
	c.reason = reason
	c.mu.Unlock()
	if !already {
		s.events = append(s.events, transport.ServerEvent{Kind: transport.EventClientDisconnected, ClientID: id, Reason: reason})
		close(c.stopResend)
	}
	s.mu.Unlock()
	if !already {
		slog.Info("udptransport: client disconnected", "id", id, "reason", reason)
	}
}

func (s *Server) PollEvent() (transport.ServerEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) == 0 {
		return transport.ServerEvent{}, false
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev, true
}

func (s *Server) Receive(id transport.ClientID, ch wire.Channel) ([]byte, bool) {
	s.mu.Lock()
	c, ok := s.clients[id]
	s.mu.Unlock()
	if !ok {
		return nil, false
	}
	if ch == wire.ChannelReliable {
		return c.reliableIn.drain()
	}
	select {
	case msg := <-c.inbox[ch]:
		return msg, true
	default:
		return nil, false
	}
}

func (s *Server) Send(id transport.ClientID, ch wire.Channel, msg []byte) {
	s.mu.Lock()
	c, ok := s.clients[id]
	s.mu.Unlock()
	if !ok {
		return
	}
	c.mu.Lock()
	disconnected := c.disconnected
	c.mu.Unlock()
	if disconnected {
		return
	}

	if ch == wire.ChannelReliable {
		seq := c.reliableOut.nextSeqNum()
		datagram := encodeData(ch, seq, msg)
		c.reliableOut.track(seq, datagram)
		s.conn.WriteTo(datagram, c.addr)
		return
	}
	s.conn.WriteTo(encodeData(ch, 0, msg), c.addr)
}

func (s *Server) Broadcast(ch wire.Channel, msg []byte) {
	for _, id := range s.clientIDs() {
		s.Send(id, ch, msg)
	}
}

func (s *Server) BroadcastExcept(excluding transport.ClientID, ch wire.Channel, msg []byte) {
	for _, id := range s.clientIDs() {
		if id != excluding {
			s.Send(id, ch, msg)
		}
	}
}

func (s *Server) clientIDs() []transport.ClientID {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]transport.ClientID, 0, len(s.clients))
	for id := range s.clients {
		ids = append(ids, id)
	}
	return ids
}

func (s *Server) Disconnect(id transport.ClientID, reason string) {
	s.mu.Lock()
	c, ok := s.clients[id]
	s.mu.Unlock()
	if !ok {
		return
	}
	s.conn.WriteTo(encodeDisconnect(reason), c.addr)
	s.markDisconnected(id, reason)
}

func (s *Server) RTT(id transport.ClientID) time.Duration {
	s.mu.Lock()
	c, ok := s.clients[id]
	s.mu.Unlock()
	if !ok {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rtt
}

func (s *Server) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	for _, c := range s.clients {
		c.mu.Lock()
		if !c.disconnected {
			c.disconnected = true
			close(c.stopResend)
		}
		c.mu.Unlock()
	}
	s.mu.Unlock()
	close(s.stopRead)
	return s.conn.Close()
}

var _ transport.ServerTransport = (*Server)(nil)
