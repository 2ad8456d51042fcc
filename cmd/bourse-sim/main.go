package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"bourse/internal/config"
	"bourse/internal/feed"
	"bourse/internal/sim"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadSimFromEnv()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	session := sim.New(cfg, logger, feed.New())

	if cfg.RunDays > 0 {
		session.RunDays(cfg.RunDays)
		logger.Info("run-once completed",
			"days", cfg.RunDays,
			"day", session.Clock.Now().Day,
			"net_worth", session.Ledger.NetWorth())
		return
	}

	logger.Info("simulation started",
		"stocks", cfg.StockCount,
		"funds", cfg.FundCount,
		"seed", cfg.Seed,
		"minute_every", cfg.MinuteEvery.String())
	if err := session.Clock.Run(ctx, cfg.MinuteEvery); err != nil && ctx.Err() == nil {
		logger.Error("clock stopped", "err", err)
		os.Exit(1)
	}
	logger.Info("simulation shutdown", "day", session.Clock.Now().Day)
}
