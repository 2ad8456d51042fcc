package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bourse/internal/api"
	"bourse/internal/config"
	"bourse/internal/feed"
	"bourse/internal/sim"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadAPIFromEnv()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	session := sim.New(cfg.SimConfig, logger, feed.New())
	go func() {
		if err := session.Clock.Run(ctx, cfg.MinuteEvery); err != nil && ctx.Err() == nil {
			logger.Error("clock stopped", "err", err)
		}
	}()

	server := api.New(cfg, logger, session.Store, session.Events, session.Feed, session.Clock, session.WorldMu())
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("bourse api listening", "addr", cfg.Addr, "seed", cfg.Seed)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}
