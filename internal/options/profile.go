package options

import (
	apperrors "github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/errors"
	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/models"
)

// PnLProfile samples the strategy's expiration profit/loss across the
// given price range. The result is a finite slice that callers can
// iterate any number of times.
func PnLProfile(strategy *models.OptionsStrategy, pr models.PriceRange) ([]models.PnLPoint, error) {
	if strategy == nil || len(strategy.Legs) == 0 {
		return nil, apperrors.NewStrategyError("pnl_profile", "strategy has no legs", nil)
	}
	if pr.Steps < 2 || pr.Max <= pr.Min {
		return nil, apperrors.NewStrategyError("pnl_profile", "price range requires min < max and at least 2 steps", nil)
	}

	step := (pr.Max - pr.Min) / float64(pr.Steps-1)
	points := make([]models.PnLPoint, pr.Steps)
	for i := 0; i < pr.Steps; i++ {
		price := pr.Min + step*float64(i)
		points[i] = models.PnLPoint{Price: price, PnL: PnLAt(strategy, price)}
	}
	return points, nil
}

// PnLAt returns the strategy's expiration profit/loss at one underlying
// price: per leg, intrinsic value minus entry cost for longs, entry
// credit minus intrinsic value for shorts, scaled by quantity and
// multiplier.
func PnLAt(strategy *models.OptionsStrategy, price float64) float64 {
	total := 0.0
	for _, leg := range strategy.Legs {
		intrinsic := leg.Contract.IntrinsicValue(price)
		perShare := leg.Side.Sign() * (intrinsic - leg.EntryPrice)
		total += perShare * leg.Quantity * multiplierOf(leg)
	}
	return total
}
