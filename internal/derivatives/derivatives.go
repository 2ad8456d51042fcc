// Package derivatives is the order bookkeeping desk for options, shorts and
// loans. Valuation comes from the stateless market formulas; this package
// only tracks positions, ages them daily, and settles them against the
// player ledger.
package derivatives

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"

	"bourse/internal/market"
	"bourse/internal/portfolio"
)

var ErrOrderNotFound = errors.New("order not found")

const (
	playerActionColor = "#ff5e86"
	autoBillColor     = "#ff4646"
)

type OptionKind string

const (
	KindCall OptionKind = "Call"
	KindPut  OptionKind = "Put"
)

type Option struct {
	ID           string     `json:"id"`
	StockName    string     `json:"stock_name"`
	Kind         OptionKind `json:"kind"`
	StrikePrice  float64    `json:"strike_price"`
	DurationDays int        `json:"duration_days"`
	Premium      float64    `json:"premium"`
	Shares       float64    `json:"shares"`
}

type ShortOrder struct {
	ID           string  `json:"id"`
	StockName    string  `json:"stock_name"`
	Quantity     float64 `json:"quantity"`
	Notional     float64 `json:"notional"`
	DurationDays int     `json:"duration_days"`
}

type Loan struct {
	ID           string  `json:"id"`
	Amount       float64 `json:"amount"`
	InterestRate float64 `json:"interest_rate"`
	Debt         float64 `json:"debt"`
	DurationDays int     `json:"duration_days"`
}

type Desk struct {
	mu        sync.Mutex
	store     market.Store
	ledger    *portfolio.Ledger
	announcer market.Announcer

	options []Option
	shorts  []ShortOrder
	loans   []Loan
}

func NewDesk(store market.Store, ledger *portfolio.Ledger, announcer market.Announcer) *Desk {
	return &Desk{store: store, ledger: ledger, announcer: announcer}
}

func (d *Desk) announce(title, description, color string) {
	if d.announcer == nil {
		return
	}
	d.announcer.Announce(market.Announcement{
		Title:            title,
		Description:      description,
		TitleColor:       color,
		DescriptionColor: color,
		BorderColor:      color,
	})
}

// BuyOption debits the premium and opens a call or put position.
func (d *Desk) BuyOption(kind OptionKind, stockName string, strike float64, days int, shares float64) (Option, error) {
	stock, ok := d.store.GetInstrumentByName(stockName)
	if !ok {
		return Option{}, fmt.Errorf("buy option: %w", portfolio.ErrUnknownInstrument)
	}

	var premium float64
	if kind == KindCall {
		premium = market.CallOptionPrice(stock, strike, days, shares)
	} else {
		premium = market.PutOptionPrice(stock, strike, days, shares)
	}
	if err := d.ledger.Debit(premium); err != nil {
		return Option{}, fmt.Errorf("buy option: %w", err)
	}

	option := Option{
		ID:           uuid.NewString(),
		StockName:    stockName,
		Kind:         kind,
		StrikePrice:  strike,
		DurationDays: days,
		Premium:      premium,
		Shares:       shares,
	}
	d.mu.Lock()
	d.options = append(d.options, option)
	d.mu.Unlock()

	d.announce("Player Action.",
		fmt.Sprintf("You bought a %s option on %s, strike $%.2f for %.0f shares over %d days at a premium of $%.2f.",
			kind, stockName, strike, shares, days, premium),
		playerActionColor)
	return option, nil
}

// ExerciseOption settles at intrinsic value and closes the position.
func (d *Desk) ExerciseOption(id string) (float64, error) {
	d.mu.Lock()
	idx := -1
	for i, o := range d.options {
		if o.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		d.mu.Unlock()
		return 0, ErrOrderNotFound
	}
	option := d.options[idx]
	d.options = append(d.options[:idx], d.options[idx+1:]...)
	d.mu.Unlock()

	stock, ok := d.store.GetInstrumentByName(option.StockName)
	if !ok {
		// Instrument vanished; the position settles worthless.
		return 0, nil
	}
	var intrinsic float64
	if option.Kind == KindCall {
		intrinsic = math.Max(stock.Price-option.StrikePrice, 0)
	} else {
		intrinsic = math.Max(option.StrikePrice-stock.Price, 0)
	}
	payout := math.Round(intrinsic*option.Shares*100) / 100
	d.ledger.Credit(payout)

	d.announce("Player Action.",
		fmt.Sprintf("You exercised your %s option on %s for $%.2f.", option.Kind, option.StockName, payout),
		playerActionColor)
	return payout, nil
}

// OpenShort credits the sale of borrowed shares; the position must be bought
// back within its duration or it is auto-billed.
func (d *Desk) OpenShort(stockName string, quantity float64, days int) (ShortOrder, error) {
	stock, ok := d.store.GetInstrumentByName(stockName)
	if !ok {
		return ShortOrder{}, fmt.Errorf("open short: %w", portfolio.ErrUnknownInstrument)
	}
	notional := market.ShortOrderPrice(stock, quantity)
	d.ledger.Credit(notional)

	short := ShortOrder{
		ID:           uuid.NewString(),
		StockName:    stockName,
		Quantity:     quantity,
		Notional:     notional,
		DurationDays: days,
	}
	d.mu.Lock()
	d.shorts = append(d.shorts, short)
	d.mu.Unlock()

	d.announce("Player Action.",
		fmt.Sprintf("You shorted %s for $%.2f: %.0f borrowed shares must be bought back within %d days.",
			stockName, notional, quantity, days),
		playerActionColor)
	return short, nil
}

// CoverShort buys back up to quantity shares at the current price.
func (d *Desk) CoverShort(id string, quantity float64) error {
	d.mu.Lock()
	idx := -1
	for i, s := range d.shorts {
		if s.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		d.mu.Unlock()
		return ErrOrderNotFound
	}
	short := &d.shorts[idx]
	stock, ok := d.store.GetInstrumentByName(short.StockName)
	if !ok {
		d.shorts = append(d.shorts[:idx], d.shorts[idx+1:]...)
		d.mu.Unlock()
		return nil
	}

	covered := math.Min(quantity, short.Quantity)
	cost := math.Round(covered*stock.Price*100) / 100
	short.Quantity -= covered
	stockName := short.StockName
	remaining := short.Quantity
	if remaining <= 0 {
		d.shorts = append(d.shorts[:idx], d.shorts[idx+1:]...)
	}
	d.mu.Unlock()

	d.ledger.ForceDebit(cost)
	d.announce("Player Action.",
		fmt.Sprintf("You bought back %.0f shares of %s for $%.2f; %.0f shorted shares remain.",
			covered, stockName, cost, remaining),
		playerActionColor)
	return nil
}

// TakeLoan credits the principal; total debt accrues the full interest up
// front and is due within the duration.
func (d *Desk) TakeLoan(amount, interestRate float64, days int) Loan {
	debt := math.Round(amount*(1+interestRate/100)*100) / 100
	loan := Loan{
		ID:           uuid.NewString(),
		Amount:       amount,
		InterestRate: interestRate,
		Debt:         debt,
		DurationDays: days,
	}
	d.mu.Lock()
	d.loans = append(d.loans, loan)
	d.mu.Unlock()

	d.ledger.Credit(amount)
	d.announce("Player Action.",
		fmt.Sprintf("You took a loan of $%.2f at %.2f%% interest: $%.2f due within %d days.",
			amount, interestRate, debt, days),
		playerActionColor)
	return loan
}

// RepayLoan pays down up to amount of the loan's outstanding debt.
func (d *Desk) RepayLoan(id string, amount float64) error {
	d.mu.Lock()
	idx := -1
	for i, l := range d.loans {
		if l.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		d.mu.Unlock()
		return ErrOrderNotFound
	}
	loan := &d.loans[idx]
	paid := math.Min(loan.Debt, amount)
	loan.Debt -= paid
	remaining := loan.Debt
	if loan.Debt <= 0 {
		d.loans = append(d.loans[:idx], d.loans[idx+1:]...)
	}
	d.mu.Unlock()

	d.ledger.ForceDebit(paid)
	d.announce("Player Action.",
		fmt.Sprintf("You paid $%.2f toward loan %s; $%.2f remains outstanding.", paid, id, remaining),
		playerActionColor)
	return nil
}

// PassDay ages every position by one day. Expired options lapse worthless;
// expired shorts and loans are auto-billed against the ledger, negative
// balance allowed.
func (d *Desk) PassDay() {
	d.mu.Lock()

	keptOptions := d.options[:0]
	for _, o := range d.options {
		o.DurationDays--
		if o.DurationDays > 0 {
			keptOptions = append(keptOptions, o)
		}
	}
	d.options = keptOptions

	var shortBills []ShortOrder
	keptShorts := d.shorts[:0]
	for _, s := range d.shorts {
		s.DurationDays--
		if s.DurationDays <= 0 {
			shortBills = append(shortBills, s)
			continue
		}
		keptShorts = append(keptShorts, s)
	}
	d.shorts = keptShorts

	var loanBills []Loan
	keptLoans := d.loans[:0]
	for _, l := range d.loans {
		l.DurationDays--
		if l.DurationDays <= 0 {
			loanBills = append(loanBills, l)
			continue
		}
		keptLoans = append(keptLoans, l)
	}
	d.loans = keptLoans
	d.mu.Unlock()

	for _, s := range shortBills {
		cost := 0.0
		if stock, ok := d.store.GetInstrumentByName(s.StockName); ok {
			cost = math.Round(s.Quantity*stock.Price*100) / 100
		}
		d.ledger.ForceDebit(cost)
		d.announce("Derivatives Action.",
			fmt.Sprintf("An unpaid short debt on %s was automatically billed for $%.2f.", s.StockName, cost),
			autoBillColor)
	}
	for _, l := range loanBills {
		d.ledger.ForceDebit(l.Debt)
		d.announce("Derivatives Action.",
			fmt.Sprintf("An unpaid loan debt was automatically billed for $%.2f.", l.Debt),
			autoBillColor)
	}
}

func (d *Desk) PassDays(days int) {
	for i := 0; i < days; i++ {
		d.PassDay()
	}
}

func (d *Desk) Options() []Option {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Option, len(d.options))
	copy(out, d.options)
	return out
}

func (d *Desk) Shorts() []ShortOrder {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]ShortOrder, len(d.shorts))
	copy(out, d.shorts)
	return out
}

func (d *Desk) Loans() []Loan {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Loan, len(d.loans))
	copy(out, d.loans)
	return out
}
