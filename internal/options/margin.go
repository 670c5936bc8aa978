package options

import (
	"math"

	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/models"
)

// MarginModel estimates the broker margin required to carry a strategy.
// The flat model below is an approximation; a SPAN-style engine can be
// substituted without touching the builder or the risk assessor.
type MarginModel interface {
	RequiredMargin(kind models.StrategyKind, legs []models.StrategyLeg, underlyingPrice float64) float64
}

// FlatMarginModel charges a flat fraction of notional for naked short
// options and the spread width for defined-risk short structures.
type FlatMarginModel struct {
	NakedRate float64 // fraction of short notional, e.g. 0.20
}

// NewFlatMarginModel creates a flat margin model with the given naked
// short rate.
func NewFlatMarginModel(nakedRate float64) *FlatMarginModel {
	return &FlatMarginModel{NakedRate: nakedRate}
}

// RequiredMargin implements MarginModel.
func (m *FlatMarginModel) RequiredMargin(kind models.StrategyKind, legs []models.StrategyLeg, underlyingPrice float64) float64 {
	switch kind {
	case models.CoveredCall:
		// Short call is covered by the owned shares.
		return 0
	case models.CashSecuredPut:
		// Fully collateralized with cash, no additional margin.
		return 0
	case models.IronCondor, models.Butterfly:
		return m.spreadMargin(legs)
	}

	total := 0.0
	for _, leg := range legs {
		if leg.Side != models.Short {
			continue
		}
		total += m.NakedRate * leg.Notional(underlyingPrice)
	}
	return total
}

// spreadMargin returns the worst-case width of the defined-risk short
// spreads in the leg set, in dollars.
func (m *FlatMarginModel) spreadMargin(legs []models.StrategyLeg) float64 {
	margin := 0.0
	for _, short := range legs {
		if short.Side != models.Short {
			continue
		}
		// Widest protection gap to a long leg of the same type.
		width := math.Inf(1)
		for _, long := range legs {
			if long.Side != models.Long || long.Contract.Type != short.Contract.Type {
				continue
			}
			gap := math.Abs(long.Contract.Strike - short.Contract.Strike)
			if gap < width {
				width = gap
			}
		}
		if math.IsInf(width, 1) {
			// Unprotected short inside a nominally defined-risk structure.
			width = short.Contract.Strike
		}
		margin = math.Max(margin, width*short.Quantity*multiplierOf(short))
	}
	return margin
}
