package pricing

import (
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/models"
)

// Property: pricing at a known volatility and then inverting the price
// recovers a volatility that reprices to within the solver tolerance.
func TestProperty_ImpliedVolRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	e := testEngine()
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	properties.Property("price -> implied vol -> price round-trips", prop.ForAll(
		func(s, moneyness, sigma float64, months int, isCall bool) bool {
			typ := models.Put
			if isCall {
				typ = models.Call
			}
			strike := s * moneyness
			expiry := now.AddDate(0, months, 0)
			contract, err := models.NewOptionContract("TEST", strike, expiry, typ)
			if err != nil {
				return false
			}

			marketPrice := e.Price(contract, s, sigma, 0.05, 0, now)
			if marketPrice < 0.01 {
				// Deep OTM quotes below a cent carry no vol information.
				return true
			}
			iv := e.ImpliedVolatility(contract, s, marketPrice, 0.05, 0, now)
			repriced := e.Price(contract, s, iv, 0.05, 0, now)
			return math.Abs(repriced-marketPrice) < 1e-3
		},
		gen.Float64Range(50, 200),
		gen.Float64Range(0.85, 1.15),
		gen.Float64Range(0.10, 0.60),
		gen.IntRange(1, 12),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

// Property: option value is nondecreasing in volatility. More uncertainty
// never makes optionality cheaper.
func TestProperty_PriceMonotonicInVol(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	e := testEngine()
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	properties.Property("higher vol never lowers the price", prop.ForAll(
		func(s, moneyness, sigmaLow, bump float64, isCall bool) bool {
			typ := models.Put
			if isCall {
				typ = models.Call
			}
			expiry := now.AddDate(0, 3, 0)
			contract, err := models.NewOptionContract("TEST", s*moneyness, expiry, typ)
			if err != nil {
				return false
			}
			low := e.Price(contract, s, sigmaLow, 0.05, 0, now)
			high := e.Price(contract, s, sigmaLow+bump, 0.05, 0, now)
			return high >= low-1e-9
		},
		gen.Float64Range(50, 200),
		gen.Float64Range(0.8, 1.2),
		gen.Float64Range(0.05, 0.50),
		gen.Float64Range(0.01, 0.50),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

// Property: portfolio Greeks are a signed sum over legs, so splitting a
// position into two or merging two positions into one never changes the
// portfolio total, and the total matches the strategy-level aggregation.
func TestProperty_GreeksSuperposition(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	e := testEngine()
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	expiry := now.AddDate(0, 3, 0)

	makeLeg := func(s, moneyness, qty float64, short, isCall bool) (models.StrategyLeg, error) {
		typ := models.Put
		if isCall {
			typ = models.Call
		}
		contract, err := models.NewOptionContract("TEST", s*moneyness, expiry, typ)
		if err != nil {
			return models.StrategyLeg{}, err
		}
		action := models.BuyToOpen
		if short {
			action = models.SellToOpen
		}
		return models.NewStrategyLeg(contract, action, qty, 1)
	}

	properties.Property("split and merged positions aggregate identically", prop.ForAll(
		func(s, m1, q1 float64, short1, call1 bool, m2, q2 float64, short2, call2 bool) bool {
			leg1, err := makeLeg(s, m1, q1, short1, call1)
			if err != nil {
				return false
			}
			leg2, err := makeLeg(s, m2, q2, short2, call2)
			if err != nil {
				return false
			}

			conditions := map[models.Underlying]models.MarketConditions{
				"TEST": {Price: s, ImpliedVol: 0.25, RiskFreeRate: 0.05},
			}
			merged := []models.OptionsPosition{
				{Underlying: "TEST", Legs: []models.StrategyLeg{leg1, leg2}},
			}
			split := []models.OptionsPosition{
				{Underlying: "TEST", Legs: []models.StrategyLeg{leg1}},
				{Underlying: "TEST", Legs: []models.StrategyLeg{leg2}},
			}

			a := e.PortfolioGreeks(merged, conditions, now)
			b := e.PortfolioGreeks(split, conditions, now)
			strategy := &models.OptionsStrategy{Legs: []models.StrategyLeg{leg1, leg2}}
			c := e.StrategyGreeks(strategy, s, 0.25, 0.05, 0, now)

			return greeksClose(a, b) && greeksClose(a, c)
		},
		gen.Float64Range(50, 200),
		gen.Float64Range(0.85, 1.15),
		gen.Float64Range(0.5, 10),
		gen.Bool(),
		gen.Bool(),
		gen.Float64Range(0.85, 1.15),
		gen.Float64Range(0.5, 10),
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func greeksClose(a, b models.Greeks) bool {
	const eps = 1e-9
	return math.Abs(a.Delta-b.Delta) < eps &&
		math.Abs(a.Gamma-b.Gamma) < eps &&
		math.Abs(a.Theta-b.Theta) < eps &&
		math.Abs(a.Vega-b.Vega) < eps &&
		math.Abs(a.Rho-b.Rho) < eps
}

// Property: a long option is never worth less than intrinsic value (with
// no dividend, for calls; puts may dip below intrinsic only by the
// discount on the strike).
func TestProperty_CallAboveIntrinsic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	e := testEngine()
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	properties.Property("call price >= intrinsic when q = 0", prop.ForAll(
		func(s, moneyness, sigma float64) bool {
			expiry := now.AddDate(0, 3, 0)
			contract, err := models.NewOptionContract("TEST", s*moneyness, expiry, models.Call)
			if err != nil {
				return false
			}
			price := e.Price(contract, s, sigma, 0.05, 0, now)
			return price >= contract.IntrinsicValue(s)-1e-9
		},
		gen.Float64Range(50, 200),
		gen.Float64Range(0.7, 1.3),
		gen.Float64Range(0.05, 0.60),
	))

	properties.TestingRun(t)
}
