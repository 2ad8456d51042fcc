// Package api exposes a read-only HTTP view of a running simulation:
// quotes, index funds, active events, pressure state and the announcement
// feed. It never mutates the world; trading stays in-process.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"bourse/internal/clock"
	"bourse/internal/config"
	"bourse/internal/feed"
	"bourse/internal/market"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	cfg    config.APIConfig
	log    *slog.Logger
	store  market.Store
	events *market.EventEngine
	feed   *feed.Feed
	clock  *clock.Clock

	// worldMu serializes reads of engine state against the tick loop.
	worldMu *sync.Mutex
	mux     *chi.Mux
}

func New(cfg config.APIConfig, logger *slog.Logger, store market.Store, events *market.EventEngine, announcements *feed.Feed, clk *clock.Clock, worldMu *sync.Mutex) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if worldMu == nil {
		worldMu = &sync.Mutex{}
	}
	s := &Server{
		cfg:     cfg,
		log:     logger,
		store:   store,
		events:  events,
		feed:    announcements,
		clock:   clk,
		worldMu: worldMu,
		mux:     chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/stocks", s.handleStocksList)
		r.Get("/stocks/{symbol}", s.handleStockDetail)
		r.Get("/funds", s.handleFundsList)
		r.Get("/events", s.handleEventsList)
		r.Get("/pressures", s.handlePressures)
		r.Get("/feed", s.handleFeed)
		r.Get("/clock", s.handleClock)
	})
}

func (s *Server) handleStocksList(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"stocks": s.store.GetStocks()})
}

func (s *Server) handleStockDetail(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(chi.URLParam(r, "symbol"))
	stock, ok := s.store.GetInstrumentByName(symbol)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown instrument: "+symbol)
		return
	}
	writeJSON(w, http.StatusOK, stock)
}

func (s *Server) handleFundsList(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"funds": s.store.GetIndexFunds()})
}

func (s *Server) handleEventsList(w http.ResponseWriter, _ *http.Request) {
	s.worldMu.Lock()
	events := s.events.ActiveEvents()
	out := make([]market.Event, len(events))
	copy(out, events)
	s.worldMu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"events": out})
}

func (s *Server) handlePressures(w http.ResponseWriter, _ *http.Request) {
	s.worldMu.Lock()
	fields := make(map[string]market.Pressure, len(s.events.FieldPressures()))
	for name, p := range s.events.FieldPressures() {
		fields[name] = *p
	}
	stocks := make(map[string]market.Pressure, len(s.events.StockPressures()))
	for name, p := range s.events.StockPressures() {
		stocks[name] = *p
	}
	s.worldMu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"fields": fields, "stocks": stocks})
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	n := 20
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "invalid n")
			return
		}
		n = parsed
	}
	writeJSON(w, http.StatusOK, map[string]any{"announcements": s.feed.Recent(n)})
}

func (s *Server) handleClock(w http.ResponseWriter, _ *http.Request) {
	now := s.clock.Now()
	writeJSON(w, http.StatusOK, map[string]any{
		"day":    now.Day,
		"hour":   now.Hour,
		"minute": now.Minute,
		"ended":  s.clock.Ended(),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}
