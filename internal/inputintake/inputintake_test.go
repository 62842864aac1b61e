package inputintake

import (
	"math/rand"
	"testing"

	"github.com/mazenet/mazenet/internal/color"
	"github.com/mazenet/mazenet/internal/player"
	"github.com/mazenet/mazenet/internal/wire"
)

type fakeNetwork struct {
	inbox        map[ClientID][][]byte
	disconnected map[ClientID]string
}

func newFakeNetwork() *fakeNetwork {
	return &fakeNetwork{inbox: make(map[ClientID][][]byte), disconnected: make(map[ClientID]string)}
}

func (f *fakeNetwork) ClientIDs() []ClientID {
	ids := make([]ClientID, 0, len(f.inbox))
	for id := range f.inbox {
		ids = append(ids, id)
	}
	return ids
}

func (f *fakeNetwork) Receive(id ClientID, channel wire.Channel) ([]byte, bool) {
	if channel != wire.ChannelUnreliable {
		return nil, false
	}
	queue := f.inbox[id]
	if len(queue) == 0 {
		return nil, false
	}
	f.inbox[id] = queue[1:]
	return queue[0], true
}

func (f *fakeNetwork) Disconnect(id ClientID, reason string) {
	f.disconnected[id] = reason
	delete(f.inbox, id)
}

func (f *fakeNetwork) enqueue(id ClientID, datagrams ...[]byte) {
	f.inbox[id] = append(f.inbox[id], datagrams...)
}

type fakeMatch struct {
	players       map[ClientID]*player.Player
	afterGameChat map[ClientID]bool
	ingressBytes  int
}

func newFakeMatch() *fakeMatch {
	return &fakeMatch{players: make(map[ClientID]*player.Player), afterGameChat: make(map[ClientID]bool)}
}

func (m *fakeMatch) IsAfterGameChat(id ClientID) bool { return m.afterGameChat[id] }

func (m *fakeMatch) Player(id ClientID) (*player.Player, bool) {
	p, ok := m.players[id]
	return p, ok
}

func (m *fakeMatch) NoteIngressBytes(n int) { m.ingressBytes += n }

func inputDatagram(t *testing.T, id uint16, forward bool) []byte {
	t.Helper()
	w := wire.NewWriter(8)
	wire.EncodeClientMessage(w, wire.ClientMessage{
		Tag:     wire.TagInput,
		InputID: id,
		Input:   wire.PlayerInput{Forward: forward},
	})
	return w.Bytes()
}

func malformedDatagram() []byte {
	return []byte{0xFF, 0xFF, 0xFF}
}

func TestDrainInsertsInputIntoPlayerBuffer(t *testing.T) {
	net := newFakeNetwork()
	match := newFakeMatch()

	p := player.NewPlayer(0, 1, "alice", player.Vec3{}, color.Orange, 100)
	match.players[1] = p
	net.enqueue(1, inputDatagram(t, 101, true))

	Drain(net, match, rand.New(rand.NewSource(1)))

	got, ok := p.InputBuffer.Get(101)
	if !ok || !got.Forward {
		t.Fatalf("InputBuffer.Get(101) = %+v, %v; want a Forward input", got, ok)
	}
	if match.ingressBytes == 0 {
		t.Fatal("expected ingress bytes to be counted")
	}
}

func TestDrainSkipsClientsNotYetIndexed(t *testing.T) {
	net := newFakeNetwork()
	match := newFakeMatch()
	net.enqueue(7, inputDatagram(t, 1, true))

	Drain(net, match, rand.New(rand.NewSource(1)))

	if _, disconnected := net.disconnected[7]; disconnected {
		t.Fatal("an unindexed client should be skipped, not disconnected")
	}
}

func TestDrainDrainsAfterGameChatClientsWithoutAPlayer(t *testing.T) {
	net := newFakeNetwork()
	match := newFakeMatch()
	match.afterGameChat[3] = true
	net.enqueue(3, inputDatagram(t, 1, true), inputDatagram(t, 2, true))

	Drain(net, match, rand.New(rand.NewSource(1)))

	if match.ingressBytes == 0 {
		t.Fatal("expected after-game-chat traffic to still be counted")
	}
	if len(net.inbox[3]) != 0 {
		t.Fatal("expected the after-game-chat client's queue to be fully drained")
	}
}

func TestDrainOverCapSkipsExcessMessagesAndAddsOneStrike(t *testing.T) {
	net := newFakeNetwork()
	match := newFakeMatch()
	p := player.NewPlayer(0, 1, "alice", player.Vec3{}, color.Orange, 0)
	match.players[1] = p

	datagrams := make([][]byte, 0, MaxMessagesPerClientPerTick+5)
	for i := 0; i < MaxMessagesPerClientPerTick+5; i++ {
		datagrams = append(datagrams, inputDatagram(t, uint16(i), true))
	}
	net.enqueue(1, datagrams...)

	Drain(net, match, rand.New(rand.NewSource(1)))

	if p.OverCapStrikes != 1 {
		t.Fatalf("OverCapStrikes = %d, want 1", p.OverCapStrikes)
	}
	if _, disconnected := net.disconnected[1]; disconnected {
		t.Fatal("one over-cap tick should not disconnect the player")
	}
}

func TestDrainUnderCapForgivesAPriorStrike(t *testing.T) {
	net := newFakeNetwork()
	match := newFakeMatch()
	p := player.NewPlayer(0, 1, "alice", player.Vec3{}, color.Orange, 0)
	p.OverCapStrikes = 3
	match.players[1] = p
	net.enqueue(1, inputDatagram(t, 1, true))

	Drain(net, match, rand.New(rand.NewSource(1)))

	if p.OverCapStrikes != 2 {
		t.Fatalf("OverCapStrikes = %d, want 2 (one forgiven)", p.OverCapStrikes)
	}
}

func TestDrainDisconnectsAtMaxStrikes(t *testing.T) {
	net := newFakeNetwork()
	match := newFakeMatch()
	p := player.NewPlayer(0, 1, "alice", player.Vec3{}, color.Orange, 0)
	p.OverCapStrikes = MaxOverCapStrikes - 1
	match.players[1] = p

	datagrams := make([][]byte, 0, MaxMessagesPerClientPerTick+1)
	for i := 0; i < MaxMessagesPerClientPerTick+1; i++ {
		datagrams = append(datagrams, inputDatagram(t, uint16(i), true))
	}
	net.enqueue(1, datagrams...)

	Drain(net, match, rand.New(rand.NewSource(1)))

	if p.OverCapStrikes != MaxOverCapStrikes {
		t.Fatalf("OverCapStrikes = %d, want %d", p.OverCapStrikes, MaxOverCapStrikes)
	}
	if reason, disconnected := net.disconnected[1]; !disconnected || reason == "" {
		t.Fatal("expected the player to be disconnected once strikes reach the max")
	}
}

func TestDrainDisconnectsOnMalformedDatagram(t *testing.T) {
	net := newFakeNetwork()
	match := newFakeMatch()
	p := player.NewPlayer(0, 1, "alice", player.Vec3{}, color.Orange, 0)
	match.players[1] = p
	net.enqueue(1, malformedDatagram())

	Drain(net, match, rand.New(rand.NewSource(1)))

	if _, disconnected := net.disconnected[1]; !disconnected {
		t.Fatal("expected a malformed datagram to disconnect the client")
	}
}

func TestDrainDisconnectsOnUnexpectedTag(t *testing.T) {
	net := newFakeNetwork()
	match := newFakeMatch()
	p := player.NewPlayer(0, 1, "alice", player.Vec3{}, color.Orange, 0)
	match.players[1] = p

	w := wire.NewWriter(8)
	wire.EncodeClientMessage(w, wire.ClientMessage{Tag: wire.TagSendChat, ChatText: "hi"})
	net.enqueue(1, w.Bytes())

	Drain(net, match, rand.New(rand.NewSource(1)))

	if _, disconnected := net.disconnected[1]; !disconnected {
		t.Fatal("expected a non-Input tag on the unreliable channel to disconnect the client")
	}
}
