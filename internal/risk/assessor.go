package risk

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/config"
	apperrors "github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/errors"
	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/logging"
	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/marketdata"
	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/models"
	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/options"
	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/pricing"
	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/store"
)

// Assessor computes portfolio-level risk assessments from live account
// and market data.
type Assessor struct {
	cfg     config.RiskConfig
	engine  *pricing.Engine
	margin  options.MarginModel
	data    marketdata.Provider
	account marketdata.AccountProvider
	store   store.Store // optional journal, may be nil
	log     zerolog.Logger
	now     func() time.Time
}

// NewAssessor creates a portfolio risk assessor. The store may be nil to
// disable journaling.
func NewAssessor(cfg config.RiskConfig, engine *pricing.Engine, margin options.MarginModel, data marketdata.Provider, account marketdata.AccountProvider, st store.Store, logger zerolog.Logger) *Assessor {
	if margin == nil {
		margin = options.NewFlatMarginModel(cfg.NakedShortMarginRate)
	}
	return &Assessor{
		cfg:     cfg,
		engine:  engine,
		margin:  margin,
		data:    data,
		account: account,
		store:   st,
		log:     logger,
		now:     time.Now,
	}
}

// assess runs one full portfolio risk assessment. Market-data failures
// degrade to conservative defaults; only account/position failures
// surface as errors (the monitor converts those into alerts).
func (a *Assessor) assess(ctx context.Context, book *alertBook) (*models.RiskAssessment, error) {
	started := a.now()

	account, err := a.account.Account(ctx)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrAccountUnavailable, "fetching account: %v", err)
	}
	positions, err := a.account.Positions(ctx)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrAccountUnavailable, "fetching positions: %v", err)
	}

	conditions := a.gatherConditions(ctx, positions)
	now := a.now()

	assessment := &models.RiskAssessment{
		Greeks:         a.engine.PortfolioGreeks(positions, conditions, now),
		PortfolioValue: account.PortfolioValue,
		Timestamp:      now,
	}

	exposure, totalExposure := a.exposureByUnderlying(positions, conditions)
	assessment.Concentration = a.concentration(exposure, totalExposure)
	assessment.OptionsValue = a.optionsValue(positions, conditions, now)
	assessment.Margin = a.marginAnalysis(positions, conditions, account)
	assessment.VaR = a.portfolioVaR(positions, conditions, now)
	assessment.StressResults = a.stressTests(positions, conditions, now)

	assessment.Score = a.riskScore(assessment)
	assessment.Level = models.LevelForScore(assessment.Score)
	assessment.Alerts = a.raiseAlerts(ctx, assessment, book)

	logging.LogAssessment(a.log, assessment.Score, assessment.Level, len(assessment.Alerts), a.now().Sub(started))

	if a.store != nil {
		if err := a.store.SaveAssessment(ctx, assessment); err != nil {
			a.log.Warn().Err(err).Msg("Failed to journal assessment")
		}
	}
	return assessment, nil
}

// gatherConditions fetches market conditions for every distinct
// underlying, substituting conservative defaults where data is
// unavailable. Never fails.
func (a *Assessor) gatherConditions(ctx context.Context, positions []models.OptionsPosition) map[models.Underlying]models.MarketConditions {
	defaults := a.engine.Defaults()
	conditions := make(map[models.Underlying]models.MarketConditions)

	for _, pos := range positions {
		if _, seen := conditions[pos.Underlying]; seen {
			continue
		}
		mc, err := a.data.Conditions(ctx, string(pos.Underlying))
		if err != nil || mc == nil || mc.Price <= 0 {
			logging.LogDataFallback(a.log, string(pos.Underlying), err)
			mc = &models.MarketConditions{
				ImpliedVol:   defaults.ImpliedVol,
				RiskFreeRate: defaults.RiskFreeRate,
				Trend:        models.TrendNeutral,
				Timestamp:    a.now(),
			}
		}
		filled := *mc
		if filled.ImpliedVol <= 0 {
			filled.ImpliedVol = defaults.ImpliedVol
		}
		if filled.RiskFreeRate == 0 {
			filled.RiskFreeRate = defaults.RiskFreeRate
		}
		if filled.Trend == "" {
			filled.Trend = models.TrendNeutral
		}
		conditions[pos.Underlying] = filled
	}
	return conditions
}

// exposureByUnderlying returns the dollar notional per underlying and the
// total across the portfolio.
func (a *Assessor) exposureByUnderlying(positions []models.OptionsPosition, conditions map[models.Underlying]models.MarketConditions) (map[models.Underlying]float64, float64) {
	exposure := make(map[models.Underlying]float64)
	total := 0.0
	for _, pos := range positions {
		mc := conditions[pos.Underlying]
		for _, leg := range pos.Legs {
			notional := leg.Notional(mc.Price)
			exposure[pos.Underlying] += notional
			total += notional
		}
	}
	return exposure, total
}

func (a *Assessor) concentration(exposure map[models.Underlying]float64, total float64) models.ConcentrationRisk {
	cr := models.ConcentrationRisk{Exposure: make(map[models.Underlying]float64)}
	if total <= 0 {
		return cr
	}
	for symbol, notional := range exposure {
		share := notional / total
		cr.Exposure[symbol] = share
		if share*100 > a.cfg.WarnConcentrationPercent {
			cr.Flagged = append(cr.Flagged, symbol)
		}
	}
	return cr
}

// optionsValue marks every leg to model under current conditions.
func (a *Assessor) optionsValue(positions []models.OptionsPosition, conditions map[models.Underlying]models.MarketConditions, now time.Time) float64 {
	total := 0.0
	for _, pos := range positions {
		mc := conditions[pos.Underlying]
		for _, leg := range pos.Legs {
			price := a.engine.Price(leg.Contract, mc.Price, mc.ImpliedVol, mc.RiskFreeRate, mc.DividendYield, now)
			mult := leg.Contract.Multiplier
			if mult == 0 {
				mult = models.DefaultMultiplier
			}
			total += math.Abs(price * leg.Quantity * mult)
		}
	}
	return total
}

func (a *Assessor) marginAnalysis(positions []models.OptionsPosition, conditions map[models.Underlying]models.MarketConditions, account *models.AccountInfo) models.MarginAnalysis {
	used := 0.0
	for _, pos := range positions {
		mc := conditions[pos.Underlying]
		used += a.margin.RequiredMargin(models.SingleLeg, pos.Legs, mc.Price)
	}
	m := models.MarginAnalysis{
		UsedMargin:      used,
		AvailableMargin: account.BuyingPower,
	}
	if denom := used + account.BuyingPower; denom > 0 {
		m.Utilization = used / denom
	}
	return m
}

// portfolioVaR sums per-underlying one-day delta VaR.
func (a *Assessor) portfolioVaR(positions []models.OptionsPosition, conditions map[models.Underlying]models.MarketConditions, now time.Time) float64 {
	deltaBySymbol := make(map[models.Underlying]float64)
	for _, pos := range positions {
		mc := conditions[pos.Underlying]
		g := a.engine.PositionGreeks(pos, mc, now)
		deltaBySymbol[pos.Underlying] += g.Delta
	}
	total := 0.0
	for symbol, delta := range deltaBySymbol {
		mc := conditions[symbol]
		total += math.Abs(delta) * mc.Price * mc.ImpliedVol * math.Sqrt(1.0/365.0)
	}
	return total
}

// stressTests projects portfolio P&L under each configured price shock by
// repricing every leg at the shifted underlying.
func (a *Assessor) stressTests(positions []models.OptionsPosition, conditions map[models.Underlying]models.MarketConditions, now time.Time) []models.StressResult {
	shifts := a.cfg.StressShifts
	if len(shifts) == 0 {
		shifts = []float64{-0.20, -0.10, 0.10, 0.20}
	}

	results := make([]models.StressResult, 0, len(shifts))
	for _, shift := range shifts {
		pnl := 0.0
		for _, pos := range positions {
			mc := conditions[pos.Underlying]
			if mc.Price <= 0 {
				continue
			}
			for _, leg := range pos.Legs {
				base := a.engine.Price(leg.Contract, mc.Price, mc.ImpliedVol, mc.RiskFreeRate, mc.DividendYield, now)
				shocked := a.engine.Price(leg.Contract, mc.Price*(1+shift), mc.ImpliedVol, mc.RiskFreeRate, mc.DividendYield, now)
				mult := leg.Contract.Multiplier
				if mult == 0 {
					mult = models.DefaultMultiplier
				}
				pnl += leg.Side.Sign() * (shocked - base) * leg.Quantity * mult
			}
		}
		results = append(results, models.StressResult{
			Scenario:   fmt.Sprintf("underlying %+.0f%%", shift*100),
			PriceShift: shift,
			PnL:        pnl,
		})
	}
	return results
}

// riskScore blends leverage, concentration, and VaR into a 0-100 score.
func (a *Assessor) riskScore(assessment *models.RiskAssessment) float64 {
	leverage := assessment.Margin.Utilization

	concentration := 0.0
	for _, share := range assessment.Concentration.Exposure {
		if share > concentration {
			concentration = share
		}
	}

	varFraction := 0.0
	if assessment.PortfolioValue > 0 {
		varFraction = math.Min(assessment.VaR/assessment.PortfolioValue*10, 1)
	}

	weights := a.cfg.LeverageWeight + a.cfg.ConcentrationWeight + a.cfg.VaRWeight
	if weights <= 0 {
		return 0
	}
	score := 100 * (a.cfg.LeverageWeight*leverage + a.cfg.ConcentrationWeight*concentration + a.cfg.VaRWeight*varFraction) / weights
	return clampScore(score)
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// raiseAlerts emits threshold-crossing alerts, deduplicated through the
// book, and returns only the newly raised ones.
func (a *Assessor) raiseAlerts(ctx context.Context, assessment *models.RiskAssessment, book *alertBook) []models.RiskAlert {
	now := assessment.Timestamp
	var candidates []models.RiskAlert

	switch {
	case assessment.Score >= a.cfg.HighScoreThreshold:
		candidates = append(candidates, models.RiskAlert{
			Category:  models.AlertPortfolioRisk,
			Severity:  models.SeverityHigh,
			Message:   fmt.Sprintf("portfolio risk score %.0f exceeds %.0f", assessment.Score, a.cfg.HighScoreThreshold),
			Timestamp: now,
		})
	case assessment.Score >= a.cfg.MediumScoreThreshold:
		candidates = append(candidates, models.RiskAlert{
			Category:  models.AlertPortfolioRisk,
			Severity:  models.SeverityMedium,
			Message:   fmt.Sprintf("portfolio risk score %.0f exceeds %.0f", assessment.Score, a.cfg.MediumScoreThreshold),
			Timestamp: now,
		})
	}

	for _, symbol := range assessment.Concentration.Flagged {
		share := assessment.Concentration.Exposure[symbol] * 100
		severity := models.SeverityMedium
		if share > a.cfg.MaxConcentrationPercent {
			severity = models.SeverityHigh
		}
		candidates = append(candidates, models.RiskAlert{
			Category:  models.AlertConcentration,
			Symbol:    symbol,
			Severity:  severity,
			Message:   fmt.Sprintf("%s is %.1f%% of options exposure (warn at %.1f%%)", symbol, share, a.cfg.WarnConcentrationPercent),
			Timestamp: now,
		})
	}

	if u := assessment.Margin.Utilization; u > a.cfg.WarnMarginUtilization {
		severity := models.SeverityMedium
		if u > a.cfg.MaxMarginUtilization {
			severity = models.SeverityHigh
		}
		candidates = append(candidates, models.RiskAlert{
			Category:  models.AlertMargin,
			Severity:  severity,
			Message:   fmt.Sprintf("margin utilization %.0f%% (warn at %.0f%%)", u*100, a.cfg.WarnMarginUtilization*100),
			Timestamp: now,
		})
	}

	if assessment.PortfolioValue > 0 {
		frac := assessment.VaR / assessment.PortfolioValue
		if frac > 0.05 {
			severity := models.SeverityMedium
			if frac > 0.10 {
				severity = models.SeverityHigh
			}
			candidates = append(candidates, models.RiskAlert{
				Category:  models.AlertVaR,
				Severity:  severity,
				Message:   fmt.Sprintf("one-day VaR %.2f is %.1f%% of portfolio value", assessment.VaR, frac*100),
				Timestamp: now,
			})
		}
	}

	var raised []models.RiskAlert
	for _, alert := range candidates {
		if !book.raise(alert) {
			continue
		}
		raised = append(raised, alert)
		logging.LogAlert(a.log, alert)
		if a.store != nil {
			if err := a.store.SaveAlert(ctx, alert); err != nil {
				a.log.Warn().Err(err).Msg("Failed to journal alert")
			}
		}
	}
	return raised
}
