package options

import (
	"fmt"
	"time"

	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/models"
)

// expiryWarningWindow is how close to expiration a leg triggers a
// validation warning.
const expiryWarningWindow = 7 * 24 * time.Hour

// Validate checks a built strategy against account constraints. Business
// violations come back in the result, never as an error.
func (b *Builder) Validate(strategy *models.OptionsStrategy, account models.AccountInfo, now time.Time) models.ValidationResult {
	result := models.ValidationResult{IsValid: true}

	if strategy == nil || len(strategy.Legs) == 0 {
		result.AddError("strategy has no legs")
		return result
	}

	if strategy.Margin > account.BuyingPower {
		result.AddError(fmt.Sprintf("required margin %.2f exceeds buying power %.2f", strategy.Margin, account.BuyingPower))
	}
	if strategy.Collateral > account.Cash {
		result.AddError(fmt.Sprintf("required collateral %.2f exceeds available cash %.2f", strategy.Collateral, account.Cash))
	}

	for i, leg := range strategy.Legs {
		if leg.Contract.IsExpired(now) {
			result.AddError(fmt.Sprintf("leg %d contract %s is expired", i, leg.Contract))
			continue
		}
		if leg.Contract.Expiration.Sub(now) <= expiryWarningWindow {
			result.AddWarning(fmt.Sprintf("leg %d contract %s expires within 7 days", i, leg.Contract))
		}
	}

	if models.IsUnbounded(strategy.MaxLoss) {
		result.AddWarning("maximum loss is unbounded")
	}

	return result
}
