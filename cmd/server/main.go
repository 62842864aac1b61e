// Command server runs the mazenet game server: one passcode-gated session
// per process, ticking the lobby/countdown/match state machine until every
// player has left or the process is signaled to stop.
//
// Grounded on cmd/gameserver/main.go's run() shape: load config first (so
// the log level is known before the first log line), configure slog,
// install a signal handler that cancels a shared context, and run the
// long-lived service under an errgroup so a transport failure and a
// SIGINT/SIGTERM both fold into the same shutdown path.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mazenet/mazenet/internal/config"
	"github.com/mazenet/mazenet/internal/passcode"
	"github.com/mazenet/mazenet/internal/serverapp"
	"github.com/mazenet/mazenet/internal/transport/udptransport"
)

const configPathEnv = "MAZENET_SERVER_CONFIG"
const defaultConfigPath = "config/server.yaml"

// transportSecret authenticates "knows the shared secret", nothing
// stronger — see internal/transport/udptransport/token.go's doc comment.
// Real transport-level cryptography is out of scope (spec.md places it as
// an external non-goal); admission control is the passcode, not this.
var transportSecret = []byte("mazenet-udptransport-v1")

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := defaultConfigPath
	if p := os.Getenv(configPathEnv); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Info("mazenet server starting", "bind", cfg.BindAddress, "port", cfg.Port, "tick_hz", cfg.TickHz)

	addr := fmt.Sprintf("%s:%d", cfg.BindAddress, cfg.Port)
	listener, err := udptransport.Listen(addr, transportSecret)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	defer listener.Close()

	code := passcode.Generate(serverapp.PasscodeLength)
	fmt.Printf("Passcode for this session: %s\n", code.String)
	slog.Info("passcode generated", "length", len(code.Digits))

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return serverapp.Run(gctx, cfg, listener, code, rng)
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
