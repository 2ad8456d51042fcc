package market

import (
	"bourse/internal/randx"
)

const (
	symbolLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	symbolLength  = 4

	// fundValue is the notional capital a fund allocates across its basket
	// at creation time.
	fundValue = 1_000_000

	TotalMarketIndexName = "Total Market Index"
)

// stockRiskRatings is the discrete risk set new stocks draw from.
var stockRiskRatings = []float64{0.02, 0.05, 0.1}

func generateSymbol(rng *randx.Source) string {
	b := make([]byte, symbolLength)
	for i := range b {
		b[i] = symbolLetters[rng.IntN(len(symbolLetters))]
	}
	return string(b)
}

// generatePriceHistory compounds a uniform ±riskRating daily shock from
// basePrice across the given number of days.
func generatePriceHistory(rng *randx.Source, riskRating float64, days int, basePrice float64) []PricePoint {
	history := make([]PricePoint, 0, days)
	current := basePrice
	for day := 0; day < days; day++ {
		change := current * rng.Range(-riskRating, riskRating)
		current = roundCents(current + change)
		if current < MinPrice {
			current = MinPrice
		}
		history = append(history, PricePoint{Day: day, Price: current})
	}
	return history
}

func generateStock(rng *randx.Source) Stock {
	basePrice := roundCents(rng.Range(10, 210))
	field := randx.Pick(rng, StockFields)
	riskRating := randx.Pick(rng, stockRiskRatings)
	history := generatePriceHistory(rng, riskRating, HistorySeedDays, basePrice)

	latest := history[len(history)-1].Price
	yesterday := history[len(history)-2].Price

	return Stock{
		Name:              generateSymbol(rng),
		Price:             latest,
		PriceHistory:      history,
		SharesOutstanding: float64(rng.IntN(900_000) + 100_000),
		Field:             field,
		Trend:             roundCents(latest - yesterday),
		RiskRating:        riskRating,
		Type:              TypeStock,
	}
}

// GenerateStocks produces count stocks with unique symbols. Name collisions
// are resolved by rejection sampling.
func GenerateStocks(rng *randx.Source, count int) []Stock {
	stocks := make([]Stock, 0, count)
	seen := make(map[string]bool, count)
	for len(stocks) < count {
		stock := generateStock(rng)
		if seen[stock.Name] {
			continue
		}
		seen[stock.Name] = true
		stocks = append(stocks, stock)
	}
	return stocks
}

// generateIndexFund samples between minStocks and maxStocks constituents and
// allocates fundValue across them proportionally to market cap among the
// chosen constituents. The basket is frozen from then on.
func generateIndexFund(rng *randx.Source, stocks []Stock, minStocks, maxStocks int) IndexFund {
	constituents := randx.PickN(rng, stocks, minStocks, maxStocks)

	var chosenCap float64
	for _, s := range constituents {
		chosenCap += s.Price * s.SharesOutstanding
	}

	held := make([]Holding, 0, len(constituents))
	var totalShares float64
	for _, s := range constituents {
		weight := (s.Price * s.SharesOutstanding) / chosenCap
		capital := fundValue * weight
		shares := capital / s.Price
		held = append(held, Holding{Name: s.Name, SharesHeld: shares})
		totalShares += shares
	}

	byName := make(map[string]Stock, len(stocks))
	for _, s := range stocks {
		byName[s.Name] = s
	}

	days := len(stocks[0].PriceHistory)
	history := make([]PricePoint, 0, days)
	for i := 0; i < days; i++ {
		var dayValue float64
		for _, h := range held {
			dayValue += byName[h.Name].PriceHistory[i].Price * h.SharesHeld
		}
		history = append(history, PricePoint{Day: i, Price: roundCents(dayValue / totalShares)})
	}

	latest := history[len(history)-1].Price
	yesterday := history[len(history)-2].Price

	return IndexFund{
		Stock: Stock{
			Name:              generateSymbol(rng),
			Price:             latest,
			PriceHistory:      history,
			SharesOutstanding: totalShares,
			Field:             FieldIndexFund,
			Trend:             roundCents(latest - yesterday),
			RiskRating:        0.01,
			Type:              TypeIndexFund,
		},
		StocksHeld: held,
	}
}

// GenerateIndexFunds builds count diversified funds of 3-5 constituents plus
// one cap-weighted fund spanning the whole universe.
func GenerateIndexFunds(rng *randx.Source, stocks []Stock, count int) []IndexFund {
	funds := make([]IndexFund, 0, count+1)
	for i := 0; i < count; i++ {
		funds = append(funds, generateIndexFund(rng, stocks, 3, 5))
	}

	total := generateIndexFund(rng, stocks, len(stocks), len(stocks))
	total.Name = TotalMarketIndexName
	funds = append(funds, total)

	return funds
}
