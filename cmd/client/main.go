// Command client runs the mazenet terminal client: connect to a server,
// authenticate with its passcode, and play through the lobby/countdown/
// match/after-game flow on a plain terminal.
//
// Grounded on cmd/gameserver/main.go's run() shape (config load → slog
// setup → signal handling → errgroup-supervised service), mirrored here
// for the single client loop instead of the server's multi-service fleet.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/mazenet/mazenet/assets"
	"github.com/mazenet/mazenet/internal/clientapp"
	"github.com/mazenet/mazenet/internal/config"
	client "github.com/mazenet/mazenet/internal/session/client"
	"github.com/mazenet/mazenet/internal/transport/udptransport"
	"github.com/mazenet/mazenet/internal/ui/terminal"
)

const configPathEnv = "MAZENET_CLIENT_CONFIG"
const defaultConfigPath = "config/client.yaml"

// transportSecret must match cmd/server's; see that package's doc comment
// for why a single shared constant is the intended, documented scope here.
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
	cfg, err := config.LoadClient(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	if addr, err := assets.DefaultServerAddress(); err != nil {
		slog.Warn("falling back to the built-in default server address", "err", err)
	} else {
		client.DefaultServerAddr = addr
	}

	transportClient := udptransport.NewClient(transportSecret)
	screen := terminal.New()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return clientapp.Run(gctx, cfg, transportClient, screen)
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		return fmt.Errorf("client: %w", err)
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
