package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bourse/internal/clock"
	"bourse/internal/config"
	"bourse/internal/feed"
	"bourse/internal/market"
	"bourse/internal/randx"
	"bourse/internal/store"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	rng := randx.New(7)
	stocks := market.GenerateStocks(rng, 5)
	st := store.NewMemory(stocks, market.GenerateIndexFunds(rng, stocks, 2))

	events := market.NewEventEngine(rng, nil, nil)
	events.AttachMarket(st)

	announcements := feed.New()
	announcements.Announce(market.Announcement{Title: "Market Open.", Description: "Trading has begun."})

	return New(config.APIConfig{Addr: ":0"}, nil, st, events, announcements, clock.New(29, 60), nil)
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := get(t, testServer(t), "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestStocksListAndDetail(t *testing.T) {
	srv := testServer(t)

	rec := get(t, srv, "/v1/stocks")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}
	var listed struct {
		Stocks []market.Stock `json:"stocks"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed.Stocks) != 5 {
		t.Fatalf("listed %d stocks, want 5", len(listed.Stocks))
	}

	rec = get(t, srv, "/v1/stocks/"+listed.Stocks[0].Name)
	if rec.Code != http.StatusOK {
		t.Fatalf("detail status = %d, want 200", rec.Code)
	}
	var detail market.Stock
	if err := json.Unmarshal(rec.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode detail: %v", err)
	}
	if detail.Name != listed.Stocks[0].Name {
		t.Fatalf("detail name = %q, want %q", detail.Name, listed.Stocks[0].Name)
	}

	if rec := get(t, srv, "/v1/stocks/ZZZZ"); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown symbol status = %d, want 404", rec.Code)
	}
}

func TestFundsEventsPressures(t *testing.T) {
	srv := testServer(t)

	rec := get(t, srv, "/v1/funds")
	var funds struct {
		Funds []market.IndexFund `json:"funds"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &funds); err != nil {
		t.Fatalf("decode funds: %v", err)
	}
	if len(funds.Funds) != 3 { // 2 sector funds + total market index
		t.Fatalf("listed %d funds, want 3", len(funds.Funds))
	}

	rec = get(t, srv, "/v1/events")
	if rec.Code != http.StatusOK {
		t.Fatalf("events status = %d, want 200", rec.Code)
	}

	rec = get(t, srv, "/v1/pressures")
	var pressures struct {
		Fields map[string]market.Pressure `json:"fields"`
		Stocks map[string]market.Pressure `json:"stocks"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &pressures); err != nil {
		t.Fatalf("decode pressures: %v", err)
	}
	if len(pressures.Fields) == 0 || len(pressures.Stocks) != 5 {
		t.Fatalf("pressures fields=%d stocks=%d, want >0 and 5", len(pressures.Fields), len(pressures.Stocks))
	}
	for name, p := range pressures.Stocks {
		if p.Turbulence != 1 {
			t.Fatalf("stock %s turbulence = %v, want neutral 1", name, p.Turbulence)
		}
	}
}

func TestFeedAndClock(t *testing.T) {
	srv := testServer(t)

	rec := get(t, srv, "/v1/feed?n=5")
	var got struct {
		Announcements []market.Announcement `json:"announcements"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode feed: %v", err)
	}
	if len(got.Announcements) != 1 || got.Announcements[0].Title != "Market Open." {
		t.Fatalf("feed = %+v, want the single market-open entry", got.Announcements)
	}

	if rec := get(t, srv, "/v1/feed?n=zero"); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad n status = %d, want 400", rec.Code)
	}

	rec = get(t, srv, "/v1/clock")
	var now struct {
		Day   int  `json:"day"`
		Ended bool `json:"ended"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &now); err != nil {
		t.Fatalf("decode clock: %v", err)
	}
	if now.Day != 29 || now.Ended {
		t.Fatalf("clock = %+v, want day 29 not ended", now)
	}
}
