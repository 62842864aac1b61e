package udptransport

import (
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/mazenet/mazenet/internal/transport"
	"github.com/mazenet/mazenet/internal/wire"
)

// connectTimeout bounds how long Connect waits for the server's
// connect-accept/reject before giving up.
const connectTimeout = 5 * time.Second

// Client implements transport.ClientTransport over one UDP socket dialed
// at a single server.
type Client struct {
	secret []byte

	conn        net.Conn
	id          uint64
	inbox       [3]chan []byte
	reliableIn  *reliableReceiver
	reliableOut *reliableSender
	stopRead    chan struct{}
	stopResend  chan struct{}

	mu           sync.Mutex
	connected    bool
	disconnected bool
	reason       string
	rtt          time.Duration
}

// NewClient creates an unconnected client bound to the given shared
// secret; call Connect to dial a server.
func NewClient(secret []byte) *Client {
	c := &Client{secret: secret, reliableIn: newReliableReceiver(), reliableOut: newReliableSender()}
	for i := range c.inbox {
		c.inbox[i] = make(chan []byte, 256)
	}
	return c
}

func (c *Client) Connect(addr string) error {
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return fmt.Errorf("udptransport: dial %s: %w", addr, err)
	}
	c.conn = conn
	c.stopRead = make(chan struct{})
	c.stopResend = make(chan struct{})

	expiry := time.Now().Add(tokenTTL).Unix()
	tag := buildToken(c.secret, expiry)
	if _, err := conn.Write(encodeConnect(expiry, tag)); err != nil {
		return fmt.Errorf("udptransport: sending connect request: %w", err)
	}

	accepted, id, rejectReason, err := c.awaitHandshake()
	if err != nil {
		return err
	}
	if !accepted {
		return fmt.Errorf("udptransport: connect rejected: %s", rejectReason)
	}

	c.mu.Lock()
	c.id = id
	c.connected = true
	c.mu.Unlock()

	go c.readLoop()
	go resendLoop(c.reliableOut, func(d []byte) { c.conn.Write(d) }, c.stopResend)
	slog.Info("udptransport: connected", "server", addr, "id", id)
	return nil
}

// awaitHandshake blocks on the socket for the connect-accept/reject
// response, since Connect is called before the steady-state read loop
// exists.
func (c *Client) awaitHandshake() (accepted bool, id uint64, rejectReason string, err error) {
	c.conn.SetReadDeadline(time.Now().Add(connectTimeout))
	defer c.conn.SetReadDeadline(time.Time{})

	buf := make([]byte, maxDatagramSize)
	for {
		n, readErr := c.conn.Read(buf)
		if readErr != nil {
			return false, 0, "", fmt.Errorf("udptransport: handshake timed out: %w", readErr)
		}
		kind, rest, frameErr := frameKindOf(buf[:n])
		if frameErr != nil {
			continue
		}
		switch kind {
		case frameConnectAccept:
			id, err = decodeConnectAccept(rest)
			return err == nil, id, "", err
		case frameConnectReject:
			reason, _ := decodeConnectReject(rest)
			return false, 0, reason, nil
		}
	}
}

func (c *Client) readLoop() {
	buf := make([]byte, maxDatagramSize)
	for {
		n, err := c.conn.Read(buf)
		if err != nil {
			select {
			case <-c.stopRead:
				return
			default:
				c.markDisconnected("connection lost: " + err.Error())
				return
			}
		}
		c.handleDatagram(append([]byte(nil), buf[:n]...))
	}
}

func (c *Client) handleDatagram(datagram []byte) {
	kind, rest, err := frameKindOf(datagram)
	if err != nil {
		return
	}
	switch kind {
	case frameData:
		ch, seq, msg, derr := decodeData(rest)
		if derr != nil {
			return
		}
		if ch == wire.ChannelReliable {
			c.reliableIn.onFrame(seq, msg)
			c.conn.Write(encodeAck(ch, seq))
			return
		}
		select {
		case c.inbox[ch] <- msg:
		default:
		}
	case frameAck:
		ch, seq, derr := decodeAck(rest)
		if derr != nil || ch != wire.ChannelReliable {
			return
		}
		if sample, tracked := c.reliableOut.ack(seq); tracked {
			updateRTT(&c.mu, &c.rtt, sample)
		}
	case frameDisconnect:
		reason, _ := decodeDisconnect(rest)
		c.markDisconnected(reason)
	}
}

func (c *Client) markDisconnected(reason string) {
	c.mu.Lock()
	already := c.disconnected
	c.disconnected = true
	c.reason = reason
	c.mu.Unlock()
	if !already {
		if c.stopResend != nil {
			close(c.stopResend)
		}
		slog.Info("udptransport: disconnected", "reason", reason)
	}
}

func (c *Client) Receive(ch wire.Channel) ([]byte, bool) {
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

func (c *Client) Send(ch wire.Channel, msg []byte) {
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
		c.conn.Write(datagram)
		return
	}
	c.conn.Write(encodeData(ch, 0, msg))
}

func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected && !c.disconnected
}

func (c *Client) IsDisconnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disconnected
}

func (c *Client) DisconnectReason() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reason
}

func (c *Client) RTT() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rtt
}

func (c *Client) Close() error {
	c.mu.Lock()
	if c.disconnected {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()
	if c.conn != nil {
		c.conn.Write(encodeDisconnect("client closed connection"))
	}
	c.markDisconnected("client closed connection")
	if c.stopRead != nil {
		close(c.stopRead)
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

var _ transport.ClientTransport = (*Client)(nil)
