package udptransport

import "testing"

func TestReliableReceiverDeliversInOrder(t *testing.T) {
	r := newReliableReceiver()

	r.onFrame(0, []byte("a"))
	r.onFrame(1, []byte("b"))

	msg, ok := r.drain()
	if !ok || string(msg) != "a" {
		t.Fatalf("drain = %q, %v, want \"a\", true", msg, ok)
	}
	msg, ok = r.drain()
	if !ok || string(msg) != "b" {
		t.Fatalf("drain = %q, %v, want \"b\", true", msg, ok)
	}
	if _, ok := r.drain(); ok {
		t.Fatal("expected queue to be empty")
	}
}

func TestReliableReceiverBuffersOutOfOrder(t *testing.T) {
	r := newReliableReceiver()

	r.onFrame(2, []byte("c")) // arrives before 0 and 1
	if _, ok := r.drain(); ok {
		t.Fatal("seq 2 should be buffered, not delivered, while 0 and 1 are missing")
	}

	r.onFrame(0, []byte("a"))
	msg, ok := r.drain()
	if !ok || string(msg) != "a" {
		t.Fatalf("drain = %q, %v, want \"a\", true", msg, ok)
	}
	if _, ok := r.drain(); ok {
		t.Fatal("seq 1 is still missing; seq 2 must stay buffered")
	}

	r.onFrame(1, []byte("b"))
	msg, ok = r.drain()
	if !ok || string(msg) != "b" {
		t.Fatalf("drain = %q, %v, want \"b\", true", msg, ok)
	}
	msg, ok = r.drain()
	if !ok || string(msg) != "c" {
		t.Fatalf("drain = %q, %v, want \"c\" (now unblocked), true", msg, ok)
	}
}

func TestReliableReceiverDropsDuplicateResend(t *testing.T) {
	r := newReliableReceiver()

	r.onFrame(0, []byte("a"))
	r.drain()
	r.onFrame(0, []byte("a")) // resent after the peer never saw our ack

	if _, ok := r.drain(); ok {
		t.Fatal("a duplicate resend of an already-delivered seq must not redeliver")
	}
}

func TestReliableSenderTrackAndAck(t *testing.T) {
	s := newReliableSender()

	seq := s.nextSeqNum()
	s.track(seq, []byte("frame"))

	if got := s.unackedDatagrams(); len(got) != 1 {
		t.Fatalf("unackedDatagrams = %v, want 1 entry", got)
	}

	if _, tracked := s.ack(seq); !tracked {
		t.Fatal("expected ack to find the tracked frame")
	}
	if got := s.unackedDatagrams(); len(got) != 0 {
		t.Fatalf("unackedDatagrams after ack = %v, want empty", got)
	}

	if _, tracked := s.ack(seq); tracked {
		t.Fatal("acking an already-acked seq should report untracked")
	}
}
