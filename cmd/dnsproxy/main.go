package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/blazskufca/dnsproxy/internal/cache"
	"github.com/blazskufca/dnsproxy/internal/config"
	"github.com/blazskufca/dnsproxy/internal/dispatcher"
	"github.com/blazskufca/dnsproxy/internal/transport"
	"github.com/blazskufca/dnsproxy/internal/upstream"
)

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: cfg.Debug,
		Level:     level,
	}))

	if err := run(cfg, logger); err != nil {
		logger.Error("dnsproxy exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	listenCfg := transport.ListenConfig()
	pc, err := listenCfg.ListenPacket(ctx, "udp", cfg.Listen)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Listen, err)
	}
	conn, ok := pc.(*net.UDPConn)
	if !ok {
		return fmt.Errorf("listen on %s: not a UDP connection", cfg.Listen)
	}

	logger.Info("dnsproxy starting",
		slog.String("listen", cfg.Listen),
		slog.String("upstream", cfg.Upstream))

	client := upstream.New(cfg.Upstream, cfg.UpstreamTimeout)
	c := cache.New(logger)

	d := dispatcher.New(conn, client, c, logger,
		dispatcher.WithAcceptTimeout(cfg.AcceptTimeout),
		dispatcher.WithJanitorInterval(cfg.AgeInterval),
	)

	return d.Run(ctx)
}
