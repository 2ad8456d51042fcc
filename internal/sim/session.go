// Package sim assembles a full game world and drives it from the clock.
// All three binaries build their world through a Session so the wiring
// between clock, engines, desk and ledger exists in exactly one place.
package sim

import (
	"log/slog"
	"sync"

	"bourse/internal/clock"
	"bourse/internal/config"
	"bourse/internal/derivatives"
	"bourse/internal/feed"
	"bourse/internal/market"
	"bourse/internal/portfolio"
	"bourse/internal/randx"
	"bourse/internal/store"
)

type Session struct {
	Cfg    config.SimConfig
	Log    *slog.Logger
	RNG    *randx.Source
	Store  *store.Memory
	Feed   *feed.Feed
	Events *market.EventEngine
	Prices *market.PriceEngine
	Ledger *portfolio.Ledger
	Desk   *derivatives.Desk
	Clock  *clock.Clock

	// mu serializes clock-driven ticks against readers of engine state.
	mu sync.Mutex
}

// New generates the instrument universe from the configured seed and wires
// every collaborator to the clock. The world is live once the clock runs.
func New(cfg config.SimConfig, logger *slog.Logger, announcements *feed.Feed) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	if announcements == nil {
		announcements = feed.New()
	}

	rng := randx.New(cfg.Seed)
	stocks := market.GenerateStocks(rng, cfg.StockCount)
	st := store.NewMemory(stocks, market.GenerateIndexFunds(rng, stocks, cfg.FundCount))

	events := market.NewEventEngine(rng, logger, announcements)
	events.AttachMarket(st)
	prices := market.NewPriceEngine(rng, logger, st, events)

	ledger := portfolio.NewLedger(cfg.StartingBalance, st)
	desk := derivatives.NewDesk(st, ledger, announcements)

	s := &Session{
		Cfg:    cfg,
		Log:    logger,
		RNG:    rng,
		Store:  st,
		Feed:   announcements,
		Events: events,
		Prices: prices,
		Ledger: ledger,
		Desk:   desk,
		Clock:  clock.New(cfg.StartDay, cfg.TimeLimitDays),
	}
	s.wireClock()
	return s
}

// WorldMu guards engine state for out-of-band readers such as the HTTP
// server. Ticks take it internally.
func (s *Session) WorldMu() *sync.Mutex {
	return &s.mu
}

func (s *Session) wireClock() {
	s.Clock.OnMinute(func(int) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.Prices.FluctuateMarketPricesByMinute()
		s.Events.PassMinute()
	})
	s.Clock.OnDay(func(day int) {
		s.mu.Lock()
		s.Prices.FluctuateMarketPricesByDays(1)
		s.Events.PassDay()
		s.mu.Unlock()
		s.Desk.PassDay()
		s.Log.Info("day closed", "day", day)
	})
	s.Clock.OnSkip(func(days int) {
		s.mu.Lock()
		s.Prices.FluctuateMarketPricesByDays(days)
		s.Events.PassDays(days)
		s.mu.Unlock()
		s.Desk.PassDays(days)
		s.Log.Info("skipped ahead", "days", days)
	})
	s.Clock.OnTimeLimit(func() {
		s.Log.Info("time limit reached", "net_worth", s.Ledger.NetWorth())
		s.Feed.Announce(market.Announcement{
			Title:            "Game Over.",
			Description:      "The time limit has been reached. The market is closed.",
			TitleColor:       "#e2522e",
			DescriptionColor: "#e2522e",
			BorderColor:      "#e2522e",
		})
	})
}

// RunDays fast-forwards n full days without the wall-clock ticker.
func (s *Session) RunDays(n int) {
	s.Clock.SkipDays(n)
}
