package serverapp

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/mazenet/mazenet/internal/config"
	"github.com/mazenet/mazenet/internal/passcode"
	server "github.com/mazenet/mazenet/internal/session/server"
	"github.com/mazenet/mazenet/internal/simulation"
	"github.com/mazenet/mazenet/internal/transport"
	"github.com/mazenet/mazenet/internal/wire"
)

// PasscodeLength is spec.md §3's "length 6 in the default configuration".
const PasscodeLength = 6

// beaconHz is spec.md §3's "broadcasts server monotonic seconds on the
// time-sync channel ≈20 Hz".
const beaconHz = 20

// Run drives the server's single main loop for the lifetime of ctx: drain
// transport connect/disconnect events, drain reliable-channel client
// messages into the session state machine, advance Countdown->InGame on
// wall-clock progress, and — while InGame — step the simulation driver once
// per tick. Grounded on original_source/server/src/run.rs's server_loop:
// transport update -> process_events -> per-state dispatch -> sleep,
// adapted to a ticker-driven fixed step rather than a free-running frame
// loop with manual accumulation, since Go's time.Ticker already gives a
// steady per-tick wakeup.
//
// code is generated by the caller (passcode.Generate(PasscodeLength)) rather
// than by Run itself, so the caller can print or log it before the loop
// starts accepting connections.
func Run(ctx context.Context, cfg config.Server, t transport.ServerTransport, code passcode.Passcode, rng *rand.Rand) error {
	registry := NewClientRegistry(t)

	sess := server.NewSession(registry.SessionNetwork(), code, rng)

	tickHz := cfg.TickHz
	if tickHz <= 0 {
		tickHz = int(1.0 / simulation.TickSecs)
	}
	tickSecs := 1.0 / float64(tickHz)
	ticker := time.NewTicker(time.Duration(tickSecs * float64(time.Second)))
	defer ticker.Stop()

	// beaconEveryNTicks spaces out ServerTime beacons to spec.md §3's ≈20Hz,
	// independent of the simulation's own 60Hz tick rate.
	beaconEveryNTicks := tickHz / beaconHz
	if beaconEveryNTicks < 1 {
		beaconEveryNTicks = 1
	}

	var match *simulation.Match
	start := time.Now()
	var tick uint64

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		now := time.Since(start).Seconds()
		tick++

		for _, ev := range registry.DrainEvents() {
			handleTransportEvent(sess, match, ev)
		}

		drainReliableMessages(t, registry, sess, now)

		if tick%uint64(beaconEveryNTicks) == 0 {
			registry.SessionNetwork().Broadcast(wire.ChannelTimeSync, wire.ServerMessage{
				Tag:        wire.TagServerTime,
				ServerTime: now,
			})
		}

		sess.Advance(now)

		match = stepSimulation(registry, sess, match, rng)
	}
}

func handleTransportEvent(sess *server.Session, match *simulation.Match, ev transport.ServerEvent) {
	switch ev.Kind {
	case transport.EventClientConnected:
		sess.HandleConnect(server.ClientID(ev.ClientID))
	case transport.EventClientDisconnected:
		if match != nil {
			if exit, ok := match.MarkDisconnected(simulation.ClientID(ev.ClientID)); ok {
				if ig, ok := sess.Phase.(*server.InGame); ok {
					ig.RecordExit(server.ClientID(exit.ClientID), exit.Reason, exit.TicksSurvived)
				}
			}
		}
		sess.HandleDisconnect(server.ClientID(ev.ClientID))
	}
}

// drainReliableMessages pops every pending reliable-channel datagram for
// every connected client and routes it through the session. Input messages
// never arrive here in practice (clients only send them once InGame, and
// they go out on the unreliable channel, drained instead by
// inputintake.Drain inside simulation.Step); a client sending Input on the
// reliable channel anyway decodes fine and is rejected as out-of-lifecycle
// by whichever phase receives it.
func drainReliableMessages(t transport.ServerTransport, registry *ClientRegistry, sess *server.Session, now float64) {
	for id := range registry.connected {
		for {
			data, ok := t.Receive(id, wire.ChannelReliable)
			if !ok {
				break
			}
			msg, err := wire.DecodeClientMessage(wire.NewReader(data))
			if err != nil {
				slog.Warn("serverapp: malformed client message; disconnecting", "client", id, "err", err)
				t.Disconnect(id, "sent a malformed message")
				break
			}
			sess.HandleMessage(server.ClientID(id), msg, now)
		}
	}
}

// stepSimulation advances the match by one tick iff the session is
// currently InGame, building a fresh Match the first tick a new InGame
// phase is observed and tearing it down once every player has exited, per
// spec.md §4.3's InGame->AfterGameChat transition.
func stepSimulation(registry *ClientRegistry, sess *server.Session, match *simulation.Match, rng *rand.Rand) *simulation.Match {
	ig, inGame := sess.Phase.(*server.InGame)
	if !inGame {
		return nil
	}

	if match == nil {
		match = simulation.NewMatch(ig.InitialData, 0)
	}

	exits := simulation.Step(registry.SimulationNetwork(), match, rng)
	for _, exit := range exits {
		ig.RecordExit(server.ClientID(exit.ClientID), exit.Reason, exit.TicksSurvived)
	}

	if match.RemainingPlayers() == 0 {
		sess.EnterAfterGameChat()
		return nil
	}
	return match
}
