package udptransport

import (
	"testing"
	"time"

	"github.com/mazenet/mazenet/internal/transport"
	"github.com/mazenet/mazenet/internal/wire"
)

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestConnectHandshakeAssignsClientID(t *testing.T) {
	secret := []byte("test-secret")
	srv, err := Listen("127.0.0.1:0", secret)
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer srv.Close()

	cli := NewClient(secret)
	if err := cli.Connect(srv.conn.LocalAddr().String()); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer cli.Close()

	if !cli.IsConnected() {
		t.Fatal("expected client to be connected")
	}

	waitFor(t, time.Second, func() bool {
		_, ok := srv.PollEvent()
		return ok || len(srv.clientIDs()) == 1
	})
}

func TestConnectRejectsWrongSecret(t *testing.T) {
	srv, err := Listen("127.0.0.1:0", []byte("correct-secret"))
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer srv.Close()

	cli := NewClient([]byte("wrong-secret"))
	err = cli.Connect(srv.conn.LocalAddr().String())
	if err == nil {
		t.Fatal("expected Connect to fail with a mismatched secret")
	}
}

func TestReliableDeliveryRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	srv, err := Listen("127.0.0.1:0", secret)
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer srv.Close()

	cli := NewClient(secret)
	if err := cli.Connect(srv.conn.LocalAddr().String()); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer cli.Close()

	var id transport.ClientID
	waitFor(t, time.Second, func() bool {
		ev, ok := srv.PollEvent()
		if ok && ev.Kind == transport.EventClientConnected {
			id = ev.ClientID
			return true
		}
		return false
	})

	cli.Send(wire.ChannelReliable, []byte("hello server"))
	var fromClient []byte
	waitFor(t, time.Second, func() bool {
		msg, ok := srv.Receive(id, wire.ChannelReliable)
		if ok {
			fromClient = msg
		}
		return ok
	})
	if string(fromClient) != "hello server" {
		t.Fatalf("server received %q, want %q", fromClient, "hello server")
	}

	srv.Send(id, wire.ChannelReliable, []byte("hello client"))
	var fromServer []byte
	waitFor(t, time.Second, func() bool {
		msg, ok := cli.Receive(wire.ChannelReliable)
		if ok {
			fromServer = msg
		}
		return ok
	})
	if string(fromServer) != "hello client" {
		t.Fatalf("client received %q, want %q", fromServer, "hello client")
	}
}

func TestDisconnectPropagatesToClient(t *testing.T) {
	secret := []byte("test-secret")
	srv, err := Listen("127.0.0.1:0", secret)
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer srv.Close()

	cli := NewClient(secret)
	if err := cli.Connect(srv.conn.LocalAddr().String()); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer cli.Close()

	var id transport.ClientID
	waitFor(t, time.Second, func() bool {
		ev, ok := srv.PollEvent()
		if ok && ev.Kind == transport.EventClientConnected {
			id = ev.ClientID
			return true
		}
		return false
	})

	srv.Disconnect(id, "match full")

	waitFor(t, time.Second, func() bool { return cli.IsDisconnected() })
	if cli.DisconnectReason() != "match full" {
		t.Fatalf("DisconnectReason = %q, want %q", cli.DisconnectReason(), "match full")
	}
}
