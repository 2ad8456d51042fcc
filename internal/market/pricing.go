package market

import (
	"log/slog"
	"math"

	"bourse/internal/randx"
)

// Price model constants. The intraday model works in log-returns: a tempered
// gaussian shock scaled by an effective volatility, a squashed pressure
// bias, and a pull toward the trailing average, all behind a hard per-tick
// circuit breaker.
const (
	minutesPerDay = 390.0

	minDailyVol = 0.01
	maxDailyVol = 0.06

	volClusterWindow = 10
	volClusterFloor  = 0.8
	volClusterCeil   = 1.5

	minMinuteVol = 0.0002
	maxMinuteVol = 0.03

	minuteBiasCap  = 0.0005
	reversionScale = 0.05
	reversionCap   = 0.05
	reversionLen   = 20

	fatTailProb  = 0.05
	fatTailScale = 2.5
	shockClamp   = 4.0

	minuteBreaker = 0.02

	dayVolFloor = 0.005
	dayVolCeil  = 0.12

	regimeBiasStep = 0.002

	momentumWindow = 3
	momentumScale  = 0.02
	momentumCap    = 0.5

	recoveryWindow    = 7
	recoveryThreshold = 0.05
	recoveryScale     = 0.02

	dayDriftCap     = 0.01
	daySentimentCap = 0.005

	dayBreaker = 0.15

	riskMoveThreshold = 0.10
	riskUpFactor      = 1.03
	riskDecayFactor   = 0.98
	minRiskRating     = 0.01
	maxRiskRating     = 0.5

	feeDragBase  = 0.9999
	feeDragNoise = 0.0001
)

// AggregatePressures folds field, stock, and active-event pressure into a
// single clamped record for one instrument. Raw stored values can exceed the
// bounds; the clamp happens here, at read time.
func AggregatePressures(stock Stock, events []Event, fieldPressures, stockPressures map[string]*Pressure) Pressure {
	fieldP := NeutralPressure()
	if p, ok := fieldPressures[stock.Field]; ok && p != nil {
		fieldP = *p
	}
	stockP := NeutralPressure()
	if p, ok := stockPressures[stock.Name]; ok && p != nil {
		stockP = *p
	}

	drift := fieldP.Drift + stockP.Drift
	turbulence := fieldP.Turbulence * stockP.Turbulence
	sentiment := fieldP.Sentiment + stockP.Sentiment

	for _, event := range events {
		if !event.Affects(stock.Field, stock.Name) {
			continue
		}
		drift += event.DriftDelta
		turbulence *= 1 + clamp(event.TurbulenceDelta, -0.5, 1.0)
		sentiment += event.SentimentDelta
	}

	return Pressure{
		Drift:      clamp(sanitize(drift, 0), -5, 5),
		Turbulence: clamp(sanitize(turbulence, 1), 0.5, 3.0),
		Sentiment:  clamp(sanitize(sentiment, 0), -5, 5),
	}
}

// squash is a bounded saturating transform: pressure accumulators live in
// roughly [-5,5] and map smoothly onto (-1,1).
func squash(v float64) float64 {
	return math.Tanh(v / 5)
}

// dailyVolatility mixes the base volatility band by normalized risk rating
// and scales by turbulence.
func dailyVolatility(riskRating, turbulence float64) float64 {
	risk := clamp(sanitize(riskRating, minRiskRating), minRiskRating, maxRiskRating)
	norm := (risk - minRiskRating) / (maxRiskRating - minRiskRating)
	return (minDailyVol + (maxDailyVol-minDailyVol)*norm) * turbulence
}

// realizedVolFactor boosts or damps minute volatility based on the variance
// of recent log returns relative to the model's daily volatility, so noisy
// stretches cluster. Too little history means no adjustment.
func realizedVolFactor(history []PricePoint, sigmaDay float64) float64 {
	if sigmaDay <= 0 {
		return 1
	}
	start := len(history) - volClusterWindow
	if start < 0 {
		start = 0
	}
	window := history[start:]
	if len(window) < 4 {
		return 1
	}

	returns := make([]float64, 0, len(window)-1)
	for i := 1; i < len(window); i++ {
		prev, cur := window[i-1].Price, window[i].Price
		if prev <= 0 || cur <= 0 {
			continue
		}
		returns = append(returns, math.Log(cur/prev))
	}
	if len(returns) < 3 {
		return 1
	}

	var mean float64
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))
	var variance float64
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns) - 1)

	factor := math.Sqrt(variance) / sigmaDay
	return clamp(sanitize(factor, 1), volClusterFloor, volClusterCeil)
}

// temperedShock draws a standard normal that occasionally fattens its tail
// and is hard-clamped so no single draw can run away.
func temperedShock(rng *randx.Source) float64 {
	shock := rng.Gaussian()
	if rng.Float64() < fatTailProb {
		shock *= fatTailScale
	}
	return clamp(shock, -shockClamp, shockClamp)
}

func trailingAverage(history []PricePoint, window int) float64 {
	start := len(history) - window
	if start < 0 {
		start = 0
	}
	slice := history[start:]
	if len(slice) == 0 {
		return 0
	}
	var sum float64
	for _, p := range slice {
		sum += p.Price
	}
	return sum / float64(len(slice))
}

func percentTrend(oldPrice, newPrice float64) float64 {
	if oldPrice <= 0 {
		return 0
	}
	return math.Round(((newPrice-oldPrice)/oldPrice)*10000) / 100
}

// FluctuateStockPrices runs one intra-day minute tick across the universe
// and returns the derived instrument list. Only the final history entry is
// touched; the day index never advances here.
func FluctuateStockPrices(rng *randx.Source, stocks []Stock, events []Event, fieldPressures, stockPressures map[string]*Pressure) []Stock {
	updated := make([]Stock, 0, len(stocks))
	for _, stock := range stocks {
		agg := AggregatePressures(stock, events, fieldPressures, stockPressures)

		sigmaDay := dailyVolatility(stock.RiskRating, agg.Turbulence)
		sigmaMin := sigmaDay * math.Sqrt(1/minutesPerDay)
		sigmaMin *= realizedVolFactor(stock.PriceHistory, sigmaDay)
		sigmaEff := clamp(sigmaMin, minMinuteVol, maxMinuteVol)

		bias := squash(agg.Drift)*minuteBiasCap + squash(agg.Sentiment)*minuteBiasCap

		reversion := 0.0
		if avg := trailingAverage(stock.PriceHistory, reversionLen); avg > 0 && stock.Price > 0 {
			reversion = clamp((avg-stock.Price)/stock.Price, -reversionCap, reversionCap) * reversionScale
		}

		r := bias + reversion/minutesPerDay + sigmaEff*temperedShock(rng)
		pct := clamp(sanitize(math.Expm1(r), 0), -minuteBreaker, minuteBreaker)

		newPrice := roundCents(stock.Price * (1 + pct))
		newPrice = sanitize(newPrice, stock.Price)
		if newPrice < MinPrice {
			newPrice = MinPrice
		}

		next := stock.Clone()
		next.Trend = percentTrend(stock.Price, newPrice)
		next.Price = newPrice
		if n := len(next.PriceHistory); n > 0 {
			next.PriceHistory[n-1].Price = newPrice
		}
		updated = append(updated, next)
	}
	return updated
}

// GenerateTomorrowsStockPrices runs one day tick: a shared regime bias is
// drawn once per call, every stock gets a fresh daily return with momentum
// and recovery terms, histories gain a new day entry, and risk ratings creep
// with realized movement.
func GenerateTomorrowsStockPrices(rng *randx.Source, stocks []Stock, events []Event, fieldPressures, stockPressures map[string]*Pressure) []Stock {
	regimeBias := float64(rng.IntN(3)-1) * regimeBiasStep

	updated := make([]Stock, 0, len(stocks))
	for _, stock := range stocks {
		agg := AggregatePressures(stock, events, fieldPressures, stockPressures)

		sigmaDay := clamp(dailyVolatility(stock.RiskRating, agg.Turbulence), dayVolFloor, dayVolCeil)
		bias := squash(agg.Drift)*dayDriftCap + squash(agg.Sentiment)*daySentimentCap

		momentum := 0.0
		if n := len(stock.PriceHistory); n >= 2 {
			start := n - momentumWindow
			if start < 0 {
				start = 0
			}
			first := stock.PriceHistory[start].Price
			last := stock.PriceHistory[n-1].Price
			if first > 0 {
				momentum = clamp((last-first)/first, -momentumCap, momentumCap) * momentumScale
			}
		}

		recovery := 0.0
		if avg := trailingAverage(stock.PriceHistory, recoveryWindow); avg > 0 {
			deviation := (avg - stock.Price) / avg
			if deviation > recoveryThreshold {
				recovery = clamp(deviation, 0, 1) * recoveryScale
			}
		}

		r := regimeBias + bias + momentum + recovery + sigmaDay*temperedShock(rng)
		pct := clamp(sanitize(math.Expm1(r), 0), -dayBreaker, dayBreaker)

		newPrice := roundCents(stock.Price * (1 + pct))
		newPrice = sanitize(newPrice, stock.Price)
		if newPrice < MinPrice {
			newPrice = MinPrice
		}

		risk := stock.RiskRating
		if math.Abs(pct) > riskMoveThreshold {
			risk *= riskUpFactor
		} else {
			risk *= riskDecayFactor
		}
		risk = clamp(sanitize(risk, stock.RiskRating), minRiskRating, maxRiskRating)

		next := stock.Clone()
		next.Trend = percentTrend(stock.Price, newPrice)
		next.Price = newPrice
		next.RiskRating = risk
		lastDay := 0
		if n := len(next.PriceHistory); n > 0 {
			lastDay = next.PriceHistory[n-1].Day
		}
		next.PriceHistory = append(next.PriceHistory, PricePoint{Day: lastDay + 1, Price: newPrice})
		updated = append(updated, next)
	}
	return updated
}

// UpdateIndexFundPrices recomputes every fund as the value-weighted average
// of its frozen basket against current constituent prices. Unresolvable
// constituents are skipped, not failed. Day ticks apply a tiny fee/tracking
// drag and append a history entry; minute ticks overwrite the last entry and
// apply no drag.
func UpdateIndexFundPrices(rng *randx.Source, stocks []Stock, funds []IndexFund, newDay bool) []IndexFund {
	byName := make(map[string]Stock, len(stocks))
	for _, s := range stocks {
		byName[s.Name] = s
	}

	updated := make([]IndexFund, 0, len(funds))
	for _, fund := range funds {
		var totalValue, totalShares float64
		for _, held := range fund.StocksHeld {
			stock, ok := byName[held.Name]
			if !ok {
				continue
			}
			totalValue += stock.Price * held.SharesHeld
			totalShares += held.SharesHeld
		}

		newPrice := fund.Price
		if totalShares > 0 {
			newPrice = totalValue / totalShares
			if newDay {
				newPrice *= feeDragBase + rng.Gaussian()*feeDragNoise
			}
			newPrice = roundCents(sanitize(newPrice, fund.Price))
			if newPrice < MinPrice {
				newPrice = MinPrice
			}
		}

		next := fund.Clone()
		next.Trend = percentTrend(fund.Price, newPrice)
		next.Price = newPrice

		lastDay := 0
		if n := len(next.PriceHistory); n > 0 {
			lastDay = next.PriceHistory[n-1].Day
		}
		if newDay {
			next.PriceHistory = append(next.PriceHistory, PricePoint{Day: lastDay + 1, Price: newPrice})
		} else if n := len(next.PriceHistory); n > 0 {
			next.PriceHistory[n-1].Price = newPrice
		}
		updated = append(updated, next)
	}
	return updated
}

// PriceEngine drives the tick cadence against the store: read fresh state,
// run the stock update, sync funds, write everything back.
type PriceEngine struct {
	rng    *randx.Source
	log    *slog.Logger
	store  Store
	events *EventEngine
}

func NewPriceEngine(rng *randx.Source, logger *slog.Logger, store Store, events *EventEngine) *PriceEngine {
	if logger == nil {
		logger = slog.Default()
	}
	return &PriceEngine{rng: rng, log: logger, store: store, events: events}
}

// FluctuateMarketPricesByMinute runs one minute tick and writes back.
func (p *PriceEngine) FluctuateMarketPricesByMinute() {
	if p.store == nil || p.events == nil {
		return
	}
	stocks := FluctuateStockPrices(p.rng, p.store.GetStocks(), p.events.ActiveEvents(), p.events.FieldPressures(), p.events.StockPressures())
	funds := UpdateIndexFundPrices(p.rng, stocks, p.store.GetIndexFunds(), false)
	p.store.SetStocks(stocks)
	p.store.SetIndexFunds(funds)
}

// FluctuateMarketPricesByDays chains n day ticks in memory and writes back
// once at the end.
func (p *PriceEngine) FluctuateMarketPricesByDays(days int) {
	if p.store == nil || p.events == nil {
		return
	}
	stocks := p.store.GetStocks()
	funds := p.store.GetIndexFunds()
	for i := 0; i < days; i++ {
		stocks = GenerateTomorrowsStockPrices(p.rng, stocks, p.events.ActiveEvents(), p.events.FieldPressures(), p.events.StockPressures())
		funds = UpdateIndexFundPrices(p.rng, stocks, funds, true)
	}
	p.store.SetStocks(stocks)
	p.store.SetIndexFunds(funds)
	p.log.Debug("day batch applied", "days", days, "stocks", len(stocks), "funds", len(funds))
}
