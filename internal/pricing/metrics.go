package pricing

import (
	"math"
	"time"

	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/models"
	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/options"
)

// RiskMetrics derives per-strategy risk figures: a one-day delta VaR, the
// maximum drawdown, the probability of profit from the distance to the
// nearest breakeven, and the resulting expected value.
func (e *Engine) RiskMetrics(strategy *models.OptionsStrategy, s, sigma, r, q float64, now time.Time) models.RiskMetrics {
	greeks := e.StrategyGreeks(strategy, s, sigma, r, q, now)

	m := models.RiskMetrics{
		ValueAtRisk: math.Abs(greeks.Delta) * s * sigma * math.Sqrt(1/daysPerYear),
		MaxDrawdown: strategy.MaxLoss,
	}

	t := earliestExpiry(strategy, now)
	expectedMove := s * sigma * math.Sqrt(math.Max(t, 1/daysPerYear))
	pop := probabilityOfProfit(strategy, s, expectedMove)
	m.ProbabilityOfProfit = pop

	maxProfit := strategy.MaxProfit
	maxLoss := strategy.MaxLoss
	if models.IsUnbounded(maxProfit) {
		// Proxy unlimited upside with the P&L two expected moves away.
		maxProfit = math.Max(options.PnLAt(strategy, s+2*expectedMove), options.PnLAt(strategy, math.Max(s-2*expectedMove, 0)))
	}
	if models.IsUnbounded(maxLoss) {
		maxLoss = math.Max(-options.PnLAt(strategy, s+2*expectedMove), -options.PnLAt(strategy, math.Max(s-2*expectedMove, 0)))
		if maxLoss < 0 {
			maxLoss = 0
		}
	}
	m.ExpectedValue = maxProfit*pop - maxLoss*(1-pop)

	return m
}

// probabilityOfProfit estimates the chance the strategy expires
// profitable from the normal CDF of the distance between the current
// price and the nearest breakeven, scaled by the expected move.
func probabilityOfProfit(strategy *models.OptionsStrategy, s, expectedMove float64) float64 {
	if len(strategy.Breakevens) == 0 || expectedMove <= 0 {
		if options.PnLAt(strategy, s) > 0 {
			return 1
		}
		return 0
	}

	nearest := strategy.Breakevens[0]
	for _, be := range strategy.Breakevens[1:] {
		if math.Abs(be-s) < math.Abs(nearest-s) {
			nearest = be
		}
	}

	z := math.Abs(nearest-s) / expectedMove
	if options.PnLAt(strategy, s) > 0 {
		// Profitable now: probability of staying on this side of the
		// breakeven.
		return normCDF(z)
	}
	// Needs to cross the breakeven first.
	return 1 - normCDF(z)
}

// earliestExpiry returns the shortest time-to-expiration among the
// strategy's legs, in years.
func earliestExpiry(strategy *models.OptionsStrategy, now time.Time) float64 {
	t := math.Inf(1)
	for _, leg := range strategy.Legs {
		if lt := leg.Contract.TimeToExpiration(now); lt < t {
			t = lt
		}
	}
	if math.IsInf(t, 1) || t < 0 {
		return 0
	}
	return t
}
