package pricing

import (
	"time"

	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/models"
)

// Sensitivity holds finite-difference shifts of a contract's Greeks under
// perturbed inputs, each expressed as the change from the base Greeks.
type Sensitivity struct {
	Base       models.Greeks
	PriceShift models.Greeks // Greeks(S*(1+priceShift)) - Base
	VolShift   models.Greeks // Greeks(sigma*(1+volShift)) - Base
	TimeDecay  models.Greeks // Greeks(expiration-1d) - Base
}

func diffGreeks(a, b models.Greeks) models.Greeks {
	return a.Add(b.Scale(-1))
}

// GreeksSensitivity re-evaluates the contract's Greeks at a shifted
// underlying price, shifted volatility, and one day closer to expiration,
// and reports each as a delta against the base Greeks.
func (e *Engine) GreeksSensitivity(contract models.OptionContract, s, sigma, r, q, priceShift, volShift float64, now time.Time) Sensitivity {
	base := e.ComputeGreeks(contract, s, sigma, r, q, now)

	shiftedPrice := e.ComputeGreeks(contract, s*(1+priceShift), sigma, r, q, now)
	shiftedVol := e.ComputeGreeks(contract, s, sigma*(1+volShift), r, q, now)
	decayed := e.ComputeGreeks(contract, s, sigma, r, q, now.Add(24*time.Hour))

	return Sensitivity{
		Base:       base,
		PriceShift: diffGreeks(shiftedPrice, base),
		VolShift:   diffGreeks(shiftedVol, base),
		TimeDecay:  diffGreeks(decayed, base),
	}
}
