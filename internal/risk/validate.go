package risk

import (
	"context"
	"fmt"

	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/models"
)

// ValidateNewPosition projects portfolio risk as if the candidate
// strategy were added and checks the result against configured limits.
// Hard-limit breaches return errors in the result, soft breaches
// warnings; the call never fails for an expected business-rule violation.
func (a *Assessor) ValidateNewPosition(ctx context.Context, strategy *models.OptionsStrategy, currentPositions []models.OptionsPosition, account models.AccountInfo, mc models.MarketConditions) models.PositionValidation {
	v := models.PositionValidation{ValidationResult: models.ValidationResult{IsValid: true}}

	if strategy == nil || len(strategy.Legs) == 0 {
		v.AddError("candidate strategy has no legs")
		return v
	}

	candidateRisk := strategy.Margin + strategy.Collateral

	// Position-level risk as a share of the portfolio.
	if account.PortfolioValue > 0 {
		v.PositionRiskPct = candidateRisk / account.PortfolioValue * 100
		if v.PositionRiskPct > a.cfg.MaxPositionRiskPercent {
			v.AddError(fmt.Sprintf("position risk %.1f%% exceeds limit %.1f%%", v.PositionRiskPct, a.cfg.MaxPositionRiskPercent))
		} else if v.PositionRiskPct > a.cfg.WarnPositionRiskPercent {
			v.AddWarning(fmt.Sprintf("position risk %.1f%% above %.1f%% advisory level", v.PositionRiskPct, a.cfg.WarnPositionRiskPercent))
		}
	}

	// Projected concentration for the candidate's underlying.
	conditions := a.gatherConditions(ctx, currentPositions)
	exposure, total := a.exposureByUnderlying(currentPositions, conditions)

	candidateNotional := 0.0
	for _, leg := range strategy.Legs {
		candidateNotional += leg.Notional(mc.Price)
	}
	underlying := strategy.Underlying()
	projectedTotal := total + candidateNotional
	if projectedTotal > 0 {
		v.ConcentrationPct = (exposure[underlying] + candidateNotional) / projectedTotal * 100
		if v.ConcentrationPct > a.cfg.MaxConcentrationPercent {
			v.AddError(fmt.Sprintf("%s would be %.1f%% of options exposure, limit %.1f%%", underlying, v.ConcentrationPct, a.cfg.MaxConcentrationPercent))
		} else if v.ConcentrationPct > a.cfg.WarnConcentrationPercent {
			v.AddWarning(fmt.Sprintf("%s would be %.1f%% of options exposure, advisory level %.1f%%", underlying, v.ConcentrationPct, a.cfg.WarnConcentrationPercent))
		}
	}

	// Margin impact on account utilization.
	v.MarginImpact = strategy.Margin
	accountCopy := account
	analysis := a.marginAnalysis(currentPositions, conditions, &accountCopy)
	if denom := analysis.UsedMargin + strategy.Margin + account.BuyingPower; denom > 0 {
		v.ProjectedUtilization = (analysis.UsedMargin + strategy.Margin) / denom
	}
	if v.ProjectedUtilization > a.cfg.MaxMarginUtilization {
		v.AddError(fmt.Sprintf("projected margin utilization %.0f%% exceeds limit %.0f%%", v.ProjectedUtilization*100, a.cfg.MaxMarginUtilization*100))
	} else if v.ProjectedUtilization > a.cfg.WarnMarginUtilization {
		v.AddWarning(fmt.Sprintf("projected margin utilization %.0f%% above %.0f%% advisory level", v.ProjectedUtilization*100, a.cfg.WarnMarginUtilization*100))
	}

	if strategy.Margin > account.BuyingPower {
		v.AddError(fmt.Sprintf("required margin %.2f exceeds buying power %.2f", strategy.Margin, account.BuyingPower))
	}
	if strategy.Collateral > account.Cash {
		v.AddError(fmt.Sprintf("required collateral %.2f exceeds available cash %.2f", strategy.Collateral, account.Cash))
	}

	return v
}
