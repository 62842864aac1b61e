package clientapp

import (
	"context"
	"time"

	"github.com/mazenet/mazenet/internal/clock"
	"github.com/mazenet/mazenet/internal/config"
	"github.com/mazenet/mazenet/internal/ring"
	client "github.com/mazenet/mazenet/internal/session/client"
	"github.com/mazenet/mazenet/internal/transport"
	"github.com/mazenet/mazenet/internal/ui"
	"github.com/mazenet/mazenet/internal/wire"
)

const (
	inputRingCapacity    = 256 // spec.md §2's "256-slot history of outbound PlayerInput"
	snapshotRingCapacity = 16  // spec.md §2's "16-slot buffer of inbound snapshots"
)

// match holds the per-tick state that only exists while the session is in
// the Game phase, rebuilt each time Game is (re-)entered.
type match struct {
	inputs         *ring.NetworkBuffer[wire.PlayerInput]
	snapshots      *ring.NetworkBuffer[wire.Snapshot]
	inputSeeded    bool
	snapshotSeeded bool
	held           heldKeys
}

// Run drives the client's single main loop for the lifetime of ctx: drain
// time-sync beacons into the clock estimator, advance the session state
// machine once per tick, and — while in the Game phase — capture input at
// the scheduled target tick and consume inbound snapshots into a ring
// buffer for the display collaborator to read (rendering itself is out of
// scope, per spec.md §1's non-goals).
func Run(ctx context.Context, cfg config.Client, t transport.ClientTransport, screen ui.UI) error {
	net := newNetworkAdapter(t)
	sess := client.NewSession(net, screen)
	sess.ServerAddr = cfg.ServerAddress

	estimator := &clock.Estimator{}

	ticker := time.NewTicker(time.Duration(clock.TickSecs * float64(time.Second)))
	defer ticker.Stop()

	start := time.Now()
	var lastNow float64
	var m *match

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		now := time.Since(start).Seconds()
		dt := now - lastNow
		lastNow = now

		drainTimeSync(net, estimator, now)
		estimator.Tick(dt, now)
		sess.EstimatedServerTime = estimator.EstimatedServerTime()

		if _, ok := sess.Phase.(*client.Game); ok {
			if m == nil {
				m = newMatch(estimator)
			}
			if stepGame(net, sess, screen, estimator, m) {
				m = nil
			}
			continue
		}

		m = nil
		sess.Advance()
	}
}

func newMatch(estimator *clock.Estimator) *match {
	startTick := estimator.InitialTick()
	return &match{
		inputs:    ring.NewNetworkBuffer[wire.PlayerInput](inputRingCapacity, startTick, startTick),
		snapshots: ring.NewNetworkBuffer[wire.Snapshot](snapshotRingCapacity, startTick, startTick),
	}
}

// drainTimeSync feeds every pending ChannelTimeSync beacon into estimator,
// per spec.md §4.8 step 1. Beacons are independent and tolerate loss and
// reorder (spec.md §9), so every one received this tick is folded in.
func drainTimeSync(net *networkAdapter, estimator *clock.Estimator, now float64) {
	for {
		msg, ok := net.ReceiveMessage(wire.ChannelTimeSync)
		if !ok {
			return
		}
		if msg.Tag != wire.TagServerTime {
			continue
		}
		estimator.AddSample(clock.Sample{
			ServerTime:        msg.ServerTime,
			ClientReceiveTime: now,
			RTT:               net.RTT().Seconds(),
		})
	}
}

// stepGame performs one tick's worth of Game-phase work: consume inbound
// snapshots, capture and send this tick's Input at the scheduler's target
// tick, and watch for the match-end handoff (the only reliable-channel
// traffic the server ever sends during InGame, per
// session/server.InGame.handle's doc comment). Returns true once the match
// has ended and the session has moved on to AfterGameChat.
func stepGame(net *networkAdapter, sess *client.Session, screen ui.UI, estimator *clock.Estimator, m *match) bool {
	for {
		msg, ok := net.ReceiveMessage(wire.ChannelReliable)
		if !ok {
			break
		}
		if msg.Tag == wire.TagAfterGameRoster || msg.Tag == wire.TagAfterGameLeaderboard {
			net.pushback(wire.ChannelReliable, msg)
			sess.EnterAfterGameChat()
			sess.Advance()
			return true
		}
	}

	for {
		msg, ok := net.ReceiveMessage(wire.ChannelUnreliable)
		if !ok {
			break
		}
		if msg.Tag != wire.TagSnapshot {
			continue
		}
		item := ring.WireItem[wire.Snapshot]{ID: msg.SnapshotID, Data: msg.Snapshot}
		if !m.snapshotSeeded {
			m.snapshots.InsertFirstItem(item)
			m.snapshotSeeded = true
		} else {
			m.snapshots.Insert(item)
		}
	}

	input := captureInput(screen, &m.held)
	tick := estimator.TargetTick()
	wireItem := ring.WireItem[wire.PlayerInput]{ID: uint16(tick), Data: input}
	if !m.inputSeeded {
		m.inputs.InsertFirstItem(wireItem)
		m.inputSeeded = true
	} else {
		m.inputs.Insert(wireItem)
	}

	net.SendMessage(wire.ChannelUnreliable, wire.ClientMessage{
		Tag:     wire.TagInput,
		InputID: uint16(tick),
		Input:   input,
	})

	return false
}
