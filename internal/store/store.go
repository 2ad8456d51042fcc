// Package store is the in-process market data store. The simulation engines
// read fresh state and write whole lists back each tick; the game keeps no
// state across process restarts.
package store

import (
	"sync"

	"bourse/internal/market"
)

type Memory struct {
	mu     sync.RWMutex
	stocks []market.Stock
	funds  []market.IndexFund
}

func NewMemory(stocks []market.Stock, funds []market.IndexFund) *Memory {
	return &Memory{stocks: stocks, funds: funds}
}

func (m *Memory) GetStocks() []market.Stock {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]market.Stock, len(m.stocks))
	copy(out, m.stocks)
	return out
}

func (m *Memory) GetIndexFunds() []market.IndexFund {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]market.IndexFund, len(m.funds))
	copy(out, m.funds)
	return out
}

func (m *Memory) SetStocks(stocks []market.Stock) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stocks = stocks
}

func (m *Memory) SetIndexFunds(funds []market.IndexFund) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.funds = funds
}

func (m *Memory) GetInstrumentByName(name string) (market.Stock, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.stocks {
		if s.Name == name {
			return s, true
		}
	}
	for _, f := range m.funds {
		if f.Name == name {
			return f.Stock, true
		}
	}
	return market.Stock{}, false
}

// AdjustShares moves tradable float when the player buys (negative delta)
// or sells (positive delta). Unknown names are ignored.
func (m *Memory) AdjustShares(name string, delta float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.stocks {
		if m.stocks[i].Name == name {
			next := m.stocks[i].SharesOutstanding + delta
			if next < 0 {
				next = 0
			}
			m.stocks[i].SharesOutstanding = next
			return
		}
	}
	for i := range m.funds {
		if m.funds[i].Name == name {
			next := m.funds[i].SharesOutstanding + delta
			if next < 0 {
				next = 0
			}
			m.funds[i].SharesOutstanding = next
			return
		}
	}
}
