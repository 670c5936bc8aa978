package pricing

import (
	"math"
	"time"

	apperrors "github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/errors"
	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/models"
)

const (
	ivInitialGuess = 0.20
	ivTolerance    = 1e-4
	ivMaxIter      = 100
	ivFloor        = 0.001
)

// ImpliedVolatility inverts the Black-Scholes price via Newton-Raphson.
// When the solver stalls (zero vega) it returns the best estimate found
// so far rather than failing; convergence is not guaranteed for deep
// in/out-of-the-money quotes.
func (e *Engine) ImpliedVolatility(contract models.OptionContract, s, marketPrice, r, q float64, now time.Time) float64 {
	sigma := ivInitialGuess
	for i := 0; i < ivMaxIter; i++ {
		price := e.Price(contract, s, sigma, r, q, now)
		diff := price - marketPrice
		if math.Abs(diff) < ivTolerance {
			return sigma
		}

		// Vega is stored per 1-point vol change; rescale to a true
		// derivative dPrice/dSigma.
		vega := e.ComputeGreeks(contract, s, sigma, r, q, now).Vega * 100
		if math.Abs(vega) < 1e-10 {
			e.log.Warn().
				Str("contract", contract.String()).
				Int("iteration", i).
				Err(apperrors.NewComputationError("implied_volatility", sigma, "solver hit zero vega")).
				Msg("Implied volatility solver stalled, returning current estimate")
			return sigma
		}

		sigma -= diff / vega
		if sigma < ivFloor {
			sigma = ivFloor
		}
	}
	e.log.Warn().
		Str("contract", contract.String()).
		Err(apperrors.NewComputationError("implied_volatility", sigma, "no convergence within iteration limit")).
		Msg("Implied volatility solver did not converge, returning last estimate")
	return sigma
}
