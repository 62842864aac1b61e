// Package inputintake implements the server's per-tick drain of the
// unreliable channel described in spec.md §4.7: a per-client message cap
// with a forgiving strike counter, and a wall-clock time budget that sheds
// load rather than blow the tick deadline.
//
// Grounded on original_source/server/src/input.rs's receive_inputs, ported
// function for function: the client shuffle for fairness, the 2ms/every-10th
// -message time-budget check, the cap/strike/disconnect state machine, and
// the one-strike-forgiven-per-clean-tick rule.
package inputintake

import (
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/mazenet/mazenet/internal/player"
	"github.com/mazenet/mazenet/internal/ring"
	"github.com/mazenet/mazenet/internal/wire"
)

// errUnexpectedTag is returned by decodeInputMessage when a datagram on the
// unreliable channel isn't an Input message.
var errUnexpectedTag = errors.New("inputintake: unexpected message tag on unreliable channel")

const (
	// NetworkTimeBudget bounds how long one call to Drain may spend
	// decoding messages before it starts shedding the rest of the tick's
	// unreliable queue.
	NetworkTimeBudget = 2 * time.Millisecond

	// MaxMessagesPerClientPerTick is the per-client cap on unreliable
	// messages accepted in a single tick.
	MaxMessagesPerClientPerTick = 128

	// MaxOverCapStrikes is how many consecutive over-cap ticks a client
	// tolerates before being disconnected.
	MaxOverCapStrikes = 8
)

// ClientID identifies one connected client, kept as its own type per this
// module's convention of not sharing one ClientID type across packages.
type ClientID uint64

// Network is everything Drain needs from the connection layer: the set of
// connected clients, raw per-channel receive, and disconnect.
type Network interface {
	ClientIDs() []ClientID
	Receive(id ClientID, channel wire.Channel) ([]byte, bool)
	Disconnect(id ClientID, reason string)
}

// Match is everything Drain needs from the live match state: whether a
// client has already moved into the post-match chat holding area (its
// unreliable traffic is drained but not decoded there), the player backing
// a still-playing client, and a sink for ingress byte accounting.
type Match interface {
	IsAfterGameChat(id ClientID) bool
	Player(id ClientID) (*player.Player, bool)
	NoteIngressBytes(n int)
}

// Drain pops every pending unreliable-channel message for every connected
// client, in a randomized client order so an overloaded server sheds load
// fairly rather than always punishing the same player, and feeds Input
// messages into the owning player's InputBuffer. rng drives the per-tick
// shuffle.
func Drain(network Network, match Match, rng *rand.Rand) {
	start := time.Now()
	totalMessages := 0
	shedding := false

	clientIDs := network.ClientIDs()
	rng.Shuffle(len(clientIDs), func(i, j int) {
		clientIDs[i], clientIDs[j] = clientIDs[j], clientIDs[i]
	})

	for _, id := range clientIDs {
		if match.IsAfterGameChat(id) {
			drainAfterGameChatClient(network, match, id)
			continue
		}

		p, ok := match.Player(id)
		if !ok {
			slog.Warn("inputintake: client connected but not indexed into a player yet; skipping", "client", id)
			continue
		}

		messagesThisClient := 0
		ingressBytes := 0
		disconnected := false

		for {
			data, ok := network.Receive(id, wire.ChannelUnreliable)
			if !ok {
				break
			}
			ingressBytes += len(data)

			if totalMessages%10 == 0 && time.Since(start) > NetworkTimeBudget {
				if !shedding {
					slog.Warn("inputintake: time budget exceeded; dropping remaining messages to flush the queue")
					shedding = true
				}
			}
			if shedding {
				continue
			}
			totalMessages++

			switch applyInputCap(p, &messagesThisClient) {
			case capSkip:
				continue
			case capDisconnect:
				network.Disconnect(id, "repeatedly exceeded the per-tick message limit")
				disconnected = true
			}
			if disconnected {
				break
			}

			msg, err := decodeInputMessage(data)
			if err != nil {
				slog.Warn("inputintake: client sent malformed input; disconnecting", "client", id, "player", p.Name)
				network.Disconnect(id, "sent malformed input")
				disconnected = true
				break
			}
			p.InputBuffer.Insert(msg)
		}

		// A clean tick (under the cap) forgives one strike. A client
		// disconnected mid-tick for being over cap never reaches here
		// with a clean count; one disconnected for a different reason
		// (malformed input) may still have it forgiven, matching the
		// original: the strike counter no longer matters once they're gone.
		if messagesThisClient < MaxMessagesPerClientPerTick && p.OverCapStrikes > 0 {
			p.OverCapStrikes--
		}

		match.NoteIngressBytes(ingressBytes)
	}
}

// drainAfterGameChatClient pops and discards unreliable traffic for a
// client already in the post-match holding area (it has nothing left to
// feed a player's input buffer into), still accounting the bytes.
func drainAfterGameChatClient(network Network, match Match, id ClientID) {
	ingressBytes := 0
	for {
		data, ok := network.Receive(id, wire.ChannelUnreliable)
		if !ok {
			break
		}
		ingressBytes += len(data)
	}
	match.NoteIngressBytes(ingressBytes)
}

type capOutcome int

const (
	capProcess capOutcome = iota
	capSkip
	capDisconnect
)

// applyInputCap enforces the per-tick cap and strike accumulation on p,
// incrementing messagesReceived as a side effect.
func applyInputCap(p *player.Player, messagesReceived *int) capOutcome {
	if *messagesReceived >= MaxMessagesPerClientPerTick {
		// Only apply a strike the first time this tick crosses the cap.
		if *messagesReceived == MaxMessagesPerClientPerTick {
			p.OverCapStrikes++
			if p.OverCapStrikes >= MaxOverCapStrikes {
				slog.Error("inputintake: player repeatedly exceeded the message limit; disconnecting", "player", p.Name)
			} else {
				slog.Warn("inputintake: player exceeded the per-tick message limit; discarding further messages this tick", "player", p.Name, "strikes", p.OverCapStrikes)
			}
		}
		*messagesReceived++
		if p.OverCapStrikes >= MaxOverCapStrikes {
			return capDisconnect
		}
		return capSkip
	}
	*messagesReceived++
	return capProcess
}

// decodeInputMessage decodes one unreliable-channel datagram as an Input
// ring.WireItem; any other tag is a lifecycle violation on this channel
// (spec.md §4.1 puts only inputs and snapshots on the unreliable channel).
func decodeInputMessage(data []byte) (ring.WireItem[player.Input], error) {
	msg, err := wire.DecodeClientMessage(wire.NewReader(data))
	if err != nil {
		return ring.WireItem[player.Input]{}, err
	}
	if msg.Tag != wire.TagInput {
		return ring.WireItem[player.Input]{}, errUnexpectedTag
	}
	return ring.WireItem[player.Input]{ID: msg.InputID, Data: toPlayerInput(msg.Input)}, nil
}

// toPlayerInput converts the wire's bit-packed PlayerInput into the player
// package's struct form. SimTick is left zero: the tick lives in the
// enclosing WireItem's id, which NetworkBuffer.Insert resolves and uses as
// the ring key rather than reading it back out of Data.
func toPlayerInput(w wire.PlayerInput) player.Input {
	return player.Input{
		Forward:   w.Forward,
		Backward:  w.Backward,
		Left:      w.Left,
		Right:     w.Right,
		YawLeft:   w.YawLeft,
		YawRight:  w.YawRight,
		PitchUp:   w.PitchUp,
		PitchDown: w.PitchDown,
		Fire:      w.Fire,
		FireNonce: w.FireNonce,
		IsZoomed:  w.IsZoomed,
	}
}
