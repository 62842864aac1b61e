package udptransport

import (
	"sync"
	"time"
)

// reliableReceiver reorders incoming ChannelReliable frames by sequence
// number and exposes them to Receive in order, deduplicating resent
// frames. Grounded on renet's reliable-ordered channel semantics
// (original_source/common/src/net.rs's SendType::ReliableOrdered), without
// renet's congestion control.
type reliableReceiver struct {
	mu       sync.Mutex
	expected uint32
	buffered map[uint32][]byte
	ready    [][]byte
}

func newReliableReceiver() *reliableReceiver {
	return &reliableReceiver{buffered: make(map[uint32][]byte)}
}

// onFrame records an incoming frame, delivering it (and any now-consecutive
// buffered frames) in sequence order. Frames below the next-expected
// sequence are duplicate resends and are silently dropped after they've
// already been delivered once.
func (r *reliableReceiver) onFrame(seq uint32, payload []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if seq < r.expected {
		return
	}
	if seq > r.expected {
		if _, exists := r.buffered[seq]; !exists {
			r.buffered[seq] = payload
		}
		return
	}

	r.ready = append(r.ready, payload)
	r.expected++
	for {
		next, ok := r.buffered[r.expected]
		if !ok {
			break
		}
		delete(r.buffered, r.expected)
		r.ready = append(r.ready, next)
		r.expected++
	}
}

func (r *reliableReceiver) drain() ([]byte, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.ready) == 0 {
		return nil, false
	}
	msg := r.ready[0]
	r.ready = r.ready[1:]
	return msg, true
}

// reliableSender tracks unacked outbound frames on the reliable channel so
// a background loop can retransmit them every resendInterval until acked.
type pendingFrame struct {
	datagram []byte
	sentAt   time.Time
}

type reliableSender struct {
	mu      sync.Mutex
	nextSeq uint32
	pending map[uint32]pendingFrame
}

func newReliableSender() *reliableSender {
	return &reliableSender{pending: make(map[uint32]pendingFrame)}
}

// track assigns the next sequence number to datagram and records it as
// unacked, returning the sequence number the caller must encode into it.
func (s *reliableSender) nextSeqNum() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	seq := s.nextSeq
	s.nextSeq++
	return seq
}

func (s *reliableSender) track(seq uint32, datagram []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[seq] = pendingFrame{datagram: datagram, sentAt: time.Now()}
}

// ack records seq as acknowledged, returning the round-trip time since it
// was first sent (for RTT estimation) and whether it was still pending
// (false if already acked or never tracked).
func (s *reliableSender) ack(seq uint32) (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.pending[seq]
	if !ok {
		return 0, false
	}
	delete(s.pending, seq)
	return time.Since(f.sentAt), true
}

// unackedDatagrams returns a snapshot of every datagram still awaiting an
// ack, for the resend loop to retransmit.
func (s *reliableSender) unackedDatagrams() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]byte, 0, len(s.pending))
	for _, f := range s.pending {
		out = append(out, f.datagram)
	}
	return out
}

// resendLoop retransmits every unacked datagram every resendInterval until
// stop is closed.
func resendLoop(sender *reliableSender, write func([]byte), stop <-chan struct{}) {
	ticker := time.NewTicker(resendInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			for _, datagram := range sender.unackedDatagrams() {
				write(datagram)
			}
		}
	}
}
