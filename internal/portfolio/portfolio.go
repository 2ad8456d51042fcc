// Package portfolio is the player ledger: liquid cash plus instrument
// holdings, valued against the live market. It contains no simulation
// logic, only bookkeeping arithmetic.
package portfolio

import (
	"errors"
	"sort"
	"sync"

	"bourse/internal/market"
)

var (
	ErrUnknownInstrument  = errors.New("unknown instrument")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInsufficientShares = errors.New("insufficient shares")
)

// Market is the slice of the store the ledger needs: price lookups and
// tradable-float adjustments.
type Market interface {
	GetInstrumentByName(name string) (market.Stock, bool)
	AdjustShares(name string, delta float64)
}

type Asset struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Quantity float64 `json:"quantity"`
}

type Ledger struct {
	mu     sync.Mutex
	cash   float64
	assets map[string]*Asset
	market Market
}

func NewLedger(startingCash float64, mkt Market) *Ledger {
	return &Ledger{
		cash:   startingCash,
		assets: make(map[string]*Asset),
		market: mkt,
	}
}

func (l *Ledger) LiquidBalance() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cash
}

func (l *Ledger) Assets() []Asset {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Asset, 0, len(l.assets))
	for _, a := range l.assets {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (l *Ledger) Asset(name string) (Asset, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.assets[name]
	if !ok {
		return Asset{}, false
	}
	return *a, true
}

// Buy purchases shares at the current market price, reducing tradable float.
func (l *Ledger) Buy(name string, shares float64) (float64, error) {
	if shares <= 0 {
		return 0, ErrInsufficientShares
	}
	inst, ok := l.market.GetInstrumentByName(name)
	if !ok {
		return 0, ErrUnknownInstrument
	}
	if shares > inst.SharesOutstanding {
		return 0, ErrInsufficientShares
	}
	cost := inst.Price * shares

	l.mu.Lock()
	if cost > l.cash {
		l.mu.Unlock()
		return 0, ErrInsufficientFunds
	}
	l.cash -= cost
	a, ok := l.assets[name]
	if !ok {
		a = &Asset{Name: name, Type: inst.Type}
		l.assets[name] = a
	}
	a.Quantity += shares
	l.mu.Unlock()

	l.market.AdjustShares(name, -shares)
	return cost, nil
}

// Sell liquidates shares at the current market price, returning float to
// the market.
func (l *Ledger) Sell(name string, shares float64) (float64, error) {
	if shares <= 0 {
		return 0, ErrInsufficientShares
	}
	inst, ok := l.market.GetInstrumentByName(name)
	if !ok {
		return 0, ErrUnknownInstrument
	}
	proceeds := inst.Price * shares

	l.mu.Lock()
	a, ok := l.assets[name]
	if !ok || a.Quantity < shares {
		l.mu.Unlock()
		return 0, ErrInsufficientShares
	}
	a.Quantity -= shares
	if a.Quantity <= 0 {
		delete(l.assets, name)
	}
	l.cash += proceeds
	l.mu.Unlock()

	l.market.AdjustShares(name, shares)
	return proceeds, nil
}

// Debit removes cash, failing on insufficient balance. Used for priced
// purchases like option premiums.
func (l *Ledger) Debit(amount float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if amount > l.cash {
		return ErrInsufficientFunds
	}
	l.cash -= amount
	return nil
}

// ForceDebit removes cash unconditionally. Auto-billing of expired debts can
// push the balance negative; the game carries the debt rather than failing.
func (l *Ledger) ForceDebit(amount float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cash -= amount
}

func (l *Ledger) Credit(amount float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cash += amount
}

// NetWorth values cash plus holdings at current prices. Holdings whose
// instrument no longer resolves are valued at zero, not failed.
func (l *Ledger) NetWorth() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	total := l.cash
	for _, a := range l.assets {
		if inst, ok := l.market.GetInstrumentByName(a.Name); ok {
			total += inst.Price * a.Quantity
		}
	}
	return total
}
