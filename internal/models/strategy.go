package models

import "math"

// StrategyKind tags the archetype of an options strategy.
type StrategyKind string

const (
	SingleLeg      StrategyKind = "SINGLE_LEG"
	CoveredCall    StrategyKind = "COVERED_CALL"
	CashSecuredPut StrategyKind = "CASH_SECURED_PUT"
	ProtectivePut  StrategyKind = "PROTECTIVE_PUT"
	Straddle       StrategyKind = "STRADDLE"
	Strangle       StrategyKind = "STRANGLE"
	IronCondor     StrategyKind = "IRON_CONDOR"
	Butterfly      StrategyKind = "BUTTERFLY"
)

// StrategyKinds lists all supported archetypes.
var StrategyKinds = []StrategyKind{
	SingleLeg, CoveredCall, CashSecuredPut, ProtectivePut,
	Straddle, Strangle, IronCondor, Butterfly,
}

// Unbounded encodes an unlimited profit or loss.
var Unbounded = math.Inf(1)

// IsUnbounded reports whether a payoff figure represents an unlimited
// amount.
func IsUnbounded(v float64) bool {
	return math.IsInf(v, 0)
}

// OptionsStrategy represents a composed options strategy and its static
// payoff attributes. Strategies are value objects: built once per request
// and never mutated.
type OptionsStrategy struct {
	Name        string
	Kind        StrategyKind
	Legs        []StrategyLeg
	MaxProfit   float64
	MaxLoss     float64
	Breakevens  []float64 // ascending
	Collateral  float64
	Margin      float64
	Description string
}

// Underlying returns the underlying symbol of the strategy's first leg.
func (s *OptionsStrategy) Underlying() Underlying {
	if len(s.Legs) == 0 {
		return ""
	}
	return s.Legs[0].Contract.Underlying
}

// NetPremium returns the signed premium of the strategy in dollars:
// positive for a net credit, negative for a net debit.
func (s *OptionsStrategy) NetPremium() float64 {
	total := 0.0
	for _, leg := range s.Legs {
		mult := leg.Contract.Multiplier
		if mult == 0 {
			mult = DefaultMultiplier
		}
		total -= leg.Side.Sign() * leg.EntryPrice * leg.Quantity * mult
	}
	return total
}

// PnLPoint is a single sample of a strategy's profit/loss curve.
type PnLPoint struct {
	Price float64
	PnL   float64
}

// PriceRange describes the sampling window for a P&L profile.
type PriceRange struct {
	Min   float64
	Max   float64
	Steps int
}

// OptionsPosition represents an already-open multi-leg position fed into
// portfolio risk assessment.
type OptionsPosition struct {
	Underlying Underlying
	Legs       []StrategyLeg
}
