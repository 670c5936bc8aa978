// Package pricing implements Black-Scholes option pricing, Greeks,
// implied-volatility inversion, and derived risk metrics.
package pricing

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/models"
)

// Defaults are the conservative market inputs substituted when live data
// is unavailable.
type Defaults struct {
	ImpliedVol    float64
	RiskFreeRate  float64
	DividendYield float64
}

// ConservativeDefaults returns the standard fallback inputs: 25% implied
// volatility, 5% risk-free rate, no dividends.
func ConservativeDefaults() Defaults {
	return Defaults{ImpliedVol: 0.25, RiskFreeRate: 0.05, DividendYield: 0}
}

// Engine prices options and computes their sensitivities under the
// Black-Scholes model. Pure computation, safe for concurrent use.
type Engine struct {
	defaults Defaults
	log      zerolog.Logger
}

// NewEngine creates a pricing engine.
func NewEngine(defaults Defaults, logger zerolog.Logger) *Engine {
	if defaults.ImpliedVol <= 0 {
		defaults = ConservativeDefaults()
	}
	return &Engine{defaults: defaults, log: logger}
}

// Defaults returns the engine's fallback market inputs.
func (e *Engine) Defaults() Defaults {
	return e.defaults
}

const (
	sqrt2Pi     = 2.5066282746310002
	daysPerYear = 365.0
)

// normCDF is the standard normal cumulative distribution function.
func normCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

// normPDF is the standard normal density.
func normPDF(x float64) float64 {
	return math.Exp(-x*x/2) / sqrt2Pi
}

// d1d2 computes the Black-Scholes auxiliary terms.
func d1d2(s, k, t, sigma, r, q float64) (float64, float64) {
	d1 := (math.Log(s/k) + (r-q+sigma*sigma/2)*t) / (sigma * math.Sqrt(t))
	return d1, d1 - sigma*math.Sqrt(t)
}

// Price returns the Black-Scholes value of the contract. At or past
// expiration it returns intrinsic value.
func (e *Engine) Price(contract models.OptionContract, s, sigma, r, q float64, now time.Time) float64 {
	t := contract.TimeToExpiration(now)
	if t <= 0 {
		return contract.IntrinsicValue(s)
	}
	if sigma <= 0 || s <= 0 {
		return contract.IntrinsicValue(s)
	}

	d1, d2 := d1d2(s, contract.Strike, t, sigma, r, q)
	if contract.Type == models.Call {
		return s*math.Exp(-q*t)*normCDF(d1) - contract.Strike*math.Exp(-r*t)*normCDF(d2)
	}
	return contract.Strike*math.Exp(-r*t)*normCDF(-d2) - s*math.Exp(-q*t)*normCDF(-d1)
}

// ComputeGreeks returns the contract's sensitivities. Theta is per day,
// vega per 1-point volatility change, rho per 1-point rate change. All
// Greeks are exactly zero at or after expiration.
func (e *Engine) ComputeGreeks(contract models.OptionContract, s, sigma, r, q float64, now time.Time) models.Greeks {
	t := contract.TimeToExpiration(now)
	if t <= 0 || sigma <= 0 || s <= 0 {
		return models.Greeks{}
	}

	d1, d2 := d1d2(s, contract.Strike, t, sigma, r, q)
	k := contract.Strike
	sqrtT := math.Sqrt(t)
	discQ := math.Exp(-q * t)
	discR := math.Exp(-r * t)
	pdf := normPDF(d1)

	g := models.Greeks{
		Gamma: discQ * pdf / (s * sigma * sqrtT),
		Vega:  s * discQ * pdf * sqrtT / 100,
	}

	// Annualized theta: time-value decay, discounted-strike carry, and
	// dividend drift.
	decay := -s * discQ * pdf * sigma / (2 * sqrtT)
	if contract.Type == models.Call {
		g.Delta = discQ * normCDF(d1)
		theta := decay - r*k*discR*normCDF(d2) + q*s*discQ*normCDF(d1)
		g.Theta = theta / daysPerYear
		g.Rho = k * t * discR * normCDF(d2) / 100
	} else {
		g.Delta = -discQ * normCDF(-d1)
		theta := decay + r*k*discR*normCDF(-d2) - q*s*discQ*normCDF(-d1)
		g.Theta = theta / daysPerYear
		g.Rho = -k * t * discR * normCDF(-d2) / 100
	}
	return g
}
