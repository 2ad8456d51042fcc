// Package market is the simulation core of the game: it generates the
// instrument universe, spawns macro events that bias price behavior, and
// evolves prices stochastically at minute and day cadence. Everything here
// degrades silently: malformed state is clamped or skipped, never fatal,
// because a crashed market has no retry path mid-game.
package market

import "math"

const (
	TypeStock     = "Stock"
	TypeIndexFund = "Index Fund"

	// FieldIndexFund is the sector tag carried by funds.
	FieldIndexFund = "Index Fund"

	// MinPrice is the hard floor applied after every price update.
	MinPrice = 0.01

	// HistorySeedDays is how many synthetic days each instrument starts with.
	HistorySeedDays = 30
)

// StockFields is the fixed sector universe stocks are drawn from.
var StockFields = []string{
	"Technology",
	"Healthcare",
	"Finance",
	"Energy",
	"Retail",
	"Biotech",
	"Automotive",
	"Aerospace",
	"Telecom",
	"Entertainment",
	"Cybersecurity",
	"Robotics",
	"Neurotech",
	"AI",
	"Agritech",
	"Nanotech",
	"Virtual Reality",
	"Quantum Computing",
	"Space Mining",
	"Climate Engineering",
}

type PricePoint struct {
	Day   int     `json:"day"`
	Price float64 `json:"price"`
}

type Stock struct {
	Name              string       `json:"name"`
	Price             float64      `json:"price"`
	PriceHistory      []PricePoint `json:"price_history"`
	SharesOutstanding float64      `json:"shares_outstanding"`
	Field             string       `json:"field"`
	Trend             float64      `json:"trend"`
	RiskRating        float64      `json:"risk_rating"`
	Type              string       `json:"type"`
}

// Clone deep-copies the stock so tick functions can derive new state without
// aliasing history entries held by callers.
func (s Stock) Clone() Stock {
	out := s
	out.PriceHistory = make([]PricePoint, len(s.PriceHistory))
	copy(out.PriceHistory, s.PriceHistory)
	return out
}

// Holding is one constituent position inside an index fund basket.
type Holding struct {
	Name       string  `json:"name"`
	SharesHeld float64 `json:"shares_held"`
}

// IndexFund is a stock whose price is strictly derived from a frozen basket
// of constituents. The basket never reweights after creation.
type IndexFund struct {
	Stock
	StocksHeld []Holding `json:"stocks_held"`
}

func (f IndexFund) Clone() IndexFund {
	out := f
	out.Stock = f.Stock.Clone()
	out.StocksHeld = make([]Holding, len(f.StocksHeld))
	copy(out.StocksHeld, f.StocksHeld)
	return out
}

// Pressure is the accumulated directional/volatility bias applied per sector
// field or per instrument. Raw accumulators are unbounded; clamping happens
// only when the price engine aggregates them.
type Pressure struct {
	Drift      float64 `json:"drift"`
	Turbulence float64 `json:"turbulence"`
	Sentiment  float64 `json:"sentiment"`
}

func NeutralPressure() Pressure {
	return Pressure{Drift: 0, Turbulence: 1, Sentiment: 0}
}

// Event is a live market event spawned from a template. AffectedStocks is
// assigned at spawn time; templates carry only AffectedFields.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	EventType   string `json:"event_type"`

	AffectedFields []string `json:"affected_fields"`
	AffectedStocks []string `json:"affected_stocks"`

	DriftDelta      float64 `json:"drift_delta"`
	TurbulenceDelta float64 `json:"turbulence_delta"`
	SentimentDelta  float64 `json:"sentiment_delta"`

	// DurationDays is remaining lifetime. Persistent events carry no
	// duration tracking and never expire on their own.
	DurationDays int  `json:"duration_days"`
	Persistent   bool `json:"persistent"`
}

// Affects reports whether the event targets the instrument's field or name.
func (e Event) Affects(field, name string) bool {
	for _, f := range e.AffectedFields {
		if f == field {
			return true
		}
	}
	for _, s := range e.AffectedStocks {
		if s == name {
			return true
		}
	}
	return false
}

// Announcement is the fire-and-forget payload pushed to the event feed
// whenever something noteworthy happens. Colors are #rrggbb strings.
type Announcement struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	TitleColor       string `json:"title_color"`
	DescriptionColor string `json:"description_color"`
	BorderColor      string `json:"border_color"`
}

// Announcer receives announcements. No acknowledgment, no backpressure.
type Announcer interface {
	Announce(Announcement)
}

// Store is the market data collaborator. The engines never hold their own
// copy of instrument state; they read fresh and write whole lists back.
type Store interface {
	GetStocks() []Stock
	GetIndexFunds() []IndexFund
	SetStocks([]Stock)
	SetIndexFunds([]IndexFund)
	GetInstrumentByName(name string) (Stock, bool)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// sanitize replaces NaN/Inf with a fallback so bad arithmetic can never
// poison stored state.
func sanitize(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
