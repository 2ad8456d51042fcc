package market

import "math"

// Stateless valuation formulas consumed by the order-entry side. Premium is
// intrinsic value plus a time/volatility component, marked up by risk rating
// and the current trend.

func optionPremium(stock Stock, intrinsic float64, expirationDays int, quantity float64) float64 {
	if expirationDays < 0 {
		expirationDays = 0
	}
	timeFactor := math.Sqrt(float64(expirationDays) / 365)
	riskMultiplier := 1 + stock.RiskRating/10
	trendMultiplier := 1 + stock.Trend/100
	volatilityPremium := 0.1 * stock.Price * timeFactor

	perShare := (intrinsic + volatilityPremium) * riskMultiplier * trendMultiplier
	return roundCents(sanitize(perShare*quantity, 0))
}

// CallOptionPrice prices the right to buy at strike within expirationDays.
func CallOptionPrice(stock Stock, strikePrice float64, expirationDays int, quantity float64) float64 {
	return optionPremium(stock, math.Max(stock.Price-strikePrice, 0), expirationDays, quantity)
}

// PutOptionPrice prices the right to sell at strike within expirationDays.
func PutOptionPrice(stock Stock, strikePrice float64, expirationDays int, quantity float64) float64 {
	return optionPremium(stock, math.Max(strikePrice-stock.Price, 0), expirationDays, quantity)
}

// ShortOrderPrice is the notional credited when selling borrowed shares.
func ShortOrderPrice(stock Stock, quantity float64) float64 {
	return roundCents(stock.Price * quantity)
}
