package derivatives

import (
	"errors"
	"math"
	"testing"

	"bourse/internal/market"
	"bourse/internal/portfolio"
	"bourse/internal/store"
)

func testWorld(t *testing.T, cash float64) (*store.Memory, *portfolio.Ledger, *Desk) {
	t.Helper()
	st := store.NewMemory([]market.Stock{
		{
			Name:              "ACME",
			Price:             100,
			PriceHistory:      []market.PricePoint{{Day: 29, Price: 100}},
			SharesOutstanding: 500_000,
			Field:             "Technology",
			RiskRating:        0.05,
			Type:              market.TypeStock,
		},
	}, nil)
	ledger := portfolio.NewLedger(cash, st)
	return st, ledger, NewDesk(st, ledger, nil)
}

func setPrice(st *store.Memory, name string, price float64) {
	stocks := st.GetStocks()
	for i := range stocks {
		if stocks[i].Name == name {
			stocks[i].Price = price
		}
	}
	st.SetStocks(stocks)
}

func TestBuyAndExerciseCall(t *testing.T) {
	st, ledger, desk := testWorld(t, 10_000)

	option, err := desk.BuyOption(KindCall, "ACME", 95, 10, 10)
	if err != nil {
		t.Fatalf("BuyOption: %v", err)
	}
	if option.Premium <= 0 {
		t.Fatalf("premium = %v, want > 0", option.Premium)
	}
	if got := ledger.LiquidBalance(); math.Abs(got-(10_000-option.Premium)) > 1e-9 {
		t.Fatalf("balance after buy = %v, want %v", got, 10_000-option.Premium)
	}

	setPrice(st, "ACME", 120)
	payout, err := desk.ExerciseOption(option.ID)
	if err != nil {
		t.Fatalf("ExerciseOption: %v", err)
	}
	if want := 250.0; payout != want { // (120-95) * 10
		t.Fatalf("payout = %v, want %v", payout, want)
	}
	if len(desk.Options()) != 0 {
		t.Fatalf("options remaining = %d, want 0", len(desk.Options()))
	}
	if _, err := desk.ExerciseOption(option.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("second exercise err = %v, want ErrOrderNotFound", err)
	}
}

func TestExercisePutOutOfTheMoney(t *testing.T) {
	_, ledger, desk := testWorld(t, 10_000)

	option, err := desk.BuyOption(KindPut, "ACME", 80, 5, 10)
	if err != nil {
		t.Fatalf("BuyOption: %v", err)
	}
	before := ledger.LiquidBalance()
	payout, err := desk.ExerciseOption(option.ID)
	if err != nil {
		t.Fatalf("ExerciseOption: %v", err)
	}
	if payout != 0 {
		t.Fatalf("payout = %v, want 0", payout)
	}
	if got := ledger.LiquidBalance(); got != before {
		t.Fatalf("balance moved on worthless exercise: %v -> %v", before, got)
	}
}

func TestBuyOptionInsufficientFunds(t *testing.T) {
	_, _, desk := testWorld(t, 1)
	if _, err := desk.BuyOption(KindCall, "ACME", 95, 30, 100); !errors.Is(err, portfolio.ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}
	if len(desk.Options()) != 0 {
		t.Fatalf("rejected buy left an open position")
	}
}

func TestOptionExpiresWorthless(t *testing.T) {
	_, _, desk := testWorld(t, 10_000)
	if _, err := desk.BuyOption(KindCall, "ACME", 95, 2, 10); err != nil {
		t.Fatalf("BuyOption: %v", err)
	}
	desk.PassDay()
	if len(desk.Options()) != 1 {
		t.Fatalf("option expired a day early")
	}
	desk.PassDay()
	if len(desk.Options()) != 0 {
		t.Fatalf("option survived past its duration")
	}
}

func TestShortOpenCoverAndAutoBill(t *testing.T) {
	st, ledger, desk := testWorld(t, 1_000)

	short, err := desk.OpenShort("ACME", 10, 3)
	if err != nil {
		t.Fatalf("OpenShort: %v", err)
	}
	if want := 1_000.0; short.Notional != want {
		t.Fatalf("notional = %v, want %v", short.Notional, want)
	}
	if got := ledger.LiquidBalance(); got != 2_000 {
		t.Fatalf("balance after short = %v, want 2000", got)
	}

	// Price falls, buy back half.
	setPrice(st, "ACME", 80)
	if err := desk.CoverShort(short.ID, 5); err != nil {
		t.Fatalf("CoverShort: %v", err)
	}
	if got := ledger.LiquidBalance(); got != 1_600 {
		t.Fatalf("balance after cover = %v, want 1600", got)
	}
	if got := desk.Shorts()[0].Quantity; got != 5 {
		t.Fatalf("remaining shorted quantity = %v, want 5", got)
	}

	// Price spikes, let the rest expire: billed at the current price.
	setPrice(st, "ACME", 200)
	desk.PassDays(3)
	if len(desk.Shorts()) != 0 {
		t.Fatalf("expired short still open")
	}
	if got := ledger.LiquidBalance(); got != 600 {
		t.Fatalf("balance after auto-bill = %v, want 600", got)
	}
}

func TestLoanLifecycle(t *testing.T) {
	_, ledger, desk := testWorld(t, 0)

	loan := desk.TakeLoan(1_000, 10, 5)
	if loan.Debt != 1_100 {
		t.Fatalf("debt = %v, want 1100", loan.Debt)
	}
	if got := ledger.LiquidBalance(); got != 1_000 {
		t.Fatalf("balance after loan = %v, want 1000", got)
	}

	if err := desk.RepayLoan(loan.ID, 600); err != nil {
		t.Fatalf("RepayLoan: %v", err)
	}
	if got := desk.Loans()[0].Debt; got != 500 {
		t.Fatalf("remaining debt = %v, want 500", got)
	}

	// Overpay the rest: only the outstanding debt is taken.
	if err := desk.RepayLoan(loan.ID, 10_000); err != nil {
		t.Fatalf("RepayLoan: %v", err)
	}
	if len(desk.Loans()) != 0 {
		t.Fatalf("repaid loan still open")
	}
	if got := ledger.LiquidBalance(); math.Abs(got-(-100)) > 1e-9 {
		t.Fatalf("balance after full repayment = %v, want -100", got)
	}
}

func TestLoanAutoBillGoesNegative(t *testing.T) {
	_, ledger, desk := testWorld(t, 0)
	desk.TakeLoan(500, 20, 1)
	desk.PassDay()
	if len(desk.Loans()) != 0 {
		t.Fatalf("expired loan still open")
	}
	if got := ledger.LiquidBalance(); got != -100 {
		t.Fatalf("balance = %v, want -100 (500 credited, 600 billed)", got)
	}
}
