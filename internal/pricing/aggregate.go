package pricing

import (
	"time"

	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/models"
)

// legGreeks returns one leg's signed contribution: per-contract Greeks
// scaled by side sign and quantity.
func (e *Engine) legGreeks(leg models.StrategyLeg, s, sigma, r, q float64, now time.Time) models.Greeks {
	g := e.ComputeGreeks(leg.Contract, s, sigma, r, q, now)
	return g.Scale(leg.Side.Sign() * leg.Quantity)
}

// StrategyGreeks aggregates Greeks across a strategy's legs: the signed
// sum with long legs counted +1 and short legs -1, scaled by quantity.
func (e *Engine) StrategyGreeks(strategy *models.OptionsStrategy, s, sigma, r, q float64, now time.Time) models.Greeks {
	total := models.Greeks{}
	for _, leg := range strategy.Legs {
		total = total.Add(e.legGreeks(leg, s, sigma, r, q, now))
	}
	return total
}

// PositionGreeks aggregates Greeks across an open position's legs under
// the given market conditions.
func (e *Engine) PositionGreeks(position models.OptionsPosition, mc models.MarketConditions, now time.Time) models.Greeks {
	total := models.Greeks{}
	for _, leg := range position.Legs {
		total = total.Add(e.legGreeks(leg, mc.Price, mc.ImpliedVol, mc.RiskFreeRate, mc.DividendYield, now))
	}
	return total
}

// PortfolioGreeks sums position Greeks across the whole portfolio.
// Splitting or merging positions does not change the total. Underlyings
// with no market conditions fall back to the engine defaults with a
// logged warning; the aggregation never aborts.
func (e *Engine) PortfolioGreeks(positions []models.OptionsPosition, conditions map[models.Underlying]models.MarketConditions, now time.Time) models.Greeks {
	total := models.Greeks{}
	for _, pos := range positions {
		mc, ok := conditions[pos.Underlying]
		if !ok || mc.Price <= 0 {
			e.log.Warn().
				Str("symbol", string(pos.Underlying)).
				Msg("No market conditions for underlying, using conservative defaults")
			mc = e.fallbackConditions(mc)
		}
		if mc.ImpliedVol <= 0 {
			mc.ImpliedVol = e.defaults.ImpliedVol
		}
		total = total.Add(e.PositionGreeks(pos, mc, now))
	}
	return total
}

func (e *Engine) fallbackConditions(partial models.MarketConditions) models.MarketConditions {
	mc := partial
	if mc.ImpliedVol <= 0 {
		mc.ImpliedVol = e.defaults.ImpliedVol
	}
	if mc.RiskFreeRate == 0 {
		mc.RiskFreeRate = e.defaults.RiskFreeRate
	}
	if mc.Trend == "" {
		mc.Trend = models.TrendNeutral
	}
	return mc
}
