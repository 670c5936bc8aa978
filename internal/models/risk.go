package models

import "time"

// AlertSeverity grades a risk alert.
type AlertSeverity string

const (
	SeverityLow    AlertSeverity = "LOW"
	SeverityMedium AlertSeverity = "MEDIUM"
	SeverityHigh   AlertSeverity = "HIGH"
)

// AlertCategory classifies a risk alert for deduplication.
type AlertCategory string

const (
	AlertPortfolioRisk AlertCategory = "PORTFOLIO_RISK"
	AlertConcentration AlertCategory = "CONCENTRATION"
	AlertMargin        AlertCategory = "MARGIN"
	AlertVaR           AlertCategory = "VAR"
	AlertMonitoring    AlertCategory = "MONITORING"
)

// RiskAlert is a transient alert raised by the risk assessor. Alerts are
// deduplicated per (symbol, category) within a 5-minute window.
type RiskAlert struct {
	Category  AlertCategory
	Symbol    Underlying
	Severity  AlertSeverity
	Message   string
	Timestamp time.Time
}

// RiskLevel buckets a 0-100 risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskModerate RiskLevel = "MODERATE"
	RiskElevated RiskLevel = "ELEVATED"
	RiskHigh     RiskLevel = "HIGH"
)

// LevelForScore maps a risk score to its qualitative level.
func LevelForScore(score float64) RiskLevel {
	switch {
	case score >= 80:
		return RiskHigh
	case score >= 60:
		return RiskElevated
	case score >= 40:
		return RiskModerate
	default:
		return RiskLow
	}
}

// ConcentrationRisk is the share of options exposure per underlying.
type ConcentrationRisk struct {
	Exposure map[Underlying]float64 // symbol -> fraction of total exposure
	Flagged  []Underlying           // symbols above the concentration threshold
}

// MarginAnalysis summarizes account margin usage.
type MarginAnalysis struct {
	UsedMargin      float64
	AvailableMargin float64
	Utilization     float64 // used / (used + available)
}

// StressResult is the projected portfolio P&L under one price shock.
type StressResult struct {
	Scenario   string
	PriceShift float64 // e.g. -0.10 for a 10% drop
	PnL        float64
}

// RiskAssessment is the portfolio-level risk snapshot produced by each
// monitoring tick or on-demand assessment. Each assessment supersedes the
// previous one.
type RiskAssessment struct {
	Score          float64 // clamped to [0,100]
	Level          RiskLevel
	Greeks         Greeks
	Alerts         []RiskAlert
	Concentration  ConcentrationRisk
	Margin         MarginAnalysis
	StressResults  []StressResult
	PortfolioValue float64
	OptionsValue   float64
	VaR            float64
	Timestamp      time.Time
}

// RiskMetrics holds per-strategy risk figures.
type RiskMetrics struct {
	ValueAtRisk         float64 // one-day VaR, dollars
	MaxDrawdown         float64
	ProbabilityOfProfit float64 // [0,1]
	ExpectedValue       float64
}

// ValidationResult is the uniform result shape for business-rule
// validation. Expected violations populate Errors/Warnings; the call
// itself does not fail.
type ValidationResult struct {
	IsValid  bool
	Errors   []string
	Warnings []string
}

// AddError records a hard violation and marks the result invalid.
func (r *ValidationResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.IsValid = false
}

// AddWarning records a soft violation.
func (r *ValidationResult) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// PositionValidation is the result of validating a candidate position
// against portfolio limits.
type PositionValidation struct {
	ValidationResult
	PositionRiskPct      float64 // candidate margin+collateral as % of portfolio
	ConcentrationPct     float64 // projected exposure share of the candidate's underlying
	MarginImpact         float64 // additional margin the candidate requires
	ProjectedUtilization float64
}

// RiskDashboardData is the aggregate view consumed by the presentation
// layer.
type RiskDashboardData struct {
	RiskScore          float64
	RiskLevel          RiskLevel
	PortfolioGreeks    Greeks
	RiskMetrics        RiskMetrics
	Alerts             []RiskAlert
	Concentration      ConcentrationRisk
	Margin             MarginAnalysis
	StressResults      []StressResult
	PortfolioValue     float64
	OptionsExposurePct float64
	LastUpdated        time.Time
}
