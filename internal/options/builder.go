// Package options implements the strategy builder: archetype construction,
// static payoff attributes, P&L profiles, and strategy validation.
package options

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	apperrors "github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/errors"
	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/models"
)

// Builder composes strategy legs into named archetypes and computes their
// static payoff attributes.
type Builder struct {
	margin MarginModel
	log    zerolog.Logger
}

// NewBuilder creates a strategy builder. A nil margin model falls back to
// the flat 20%-of-notional estimate.
func NewBuilder(margin MarginModel, logger zerolog.Logger) *Builder {
	if margin == nil {
		margin = NewFlatMarginModel(0.20)
	}
	return &Builder{margin: margin, log: logger}
}

// payoffFunc computes the static payoff attributes for one archetype.
// attrs are written onto the strategy in place.
type payoffFunc func(legs []models.StrategyLeg, underlyingPrice float64, s *models.OptionsStrategy) error

// payoffTable dispatches archetypes to their payoff functions. Archetypes
// are a tagged union, not a type hierarchy.
var payoffTable = map[models.StrategyKind]payoffFunc{
	models.SingleLeg:      singleLegAttrs,
	models.CoveredCall:    coveredCallAttrs,
	models.CashSecuredPut: cashSecuredPutAttrs,
	models.ProtectivePut:  protectivePutAttrs,
	models.Straddle:       straddleAttrs,
	models.Strangle:       strangleAttrs,
	models.IronCondor:     ironCondorAttrs,
	models.Butterfly:      butterflyAttrs,
}

// Build composes the given legs into a strategy of the given kind and
// computes its payoff attributes at the supplied market conditions.
func (b *Builder) Build(kind models.StrategyKind, legs []models.StrategyLeg, mc models.MarketConditions) (*models.OptionsStrategy, error) {
	if len(legs) == 0 {
		return nil, apperrors.NewStrategyError(string(kind), "strategy requires at least one leg", nil)
	}
	for i, leg := range legs {
		if err := leg.Validate(); err != nil {
			return nil, apperrors.NewStrategyError(string(kind), fmt.Sprintf("leg %d invalid", i), err)
		}
	}
	payoff, ok := payoffTable[kind]
	if !ok {
		return nil, apperrors.NewStrategyError(string(kind), "unknown strategy archetype", nil)
	}

	s := &models.OptionsStrategy{
		Name: strategyName(kind, legs),
		Kind: kind,
		Legs: legs,
	}
	if err := payoff(legs, mc.Price, s); err != nil {
		return nil, err
	}
	sort.Float64s(s.Breakevens)
	s.Margin = b.margin.RequiredMargin(kind, legs, mc.Price)
	if s.Margin < 0 {
		s.Margin = 0
	}

	b.log.Debug().
		Str("kind", string(kind)).
		Int("legs", len(legs)).
		Float64("max_profit", s.MaxProfit).
		Float64("max_loss", s.MaxLoss).
		Msg("Strategy built")

	return s, nil
}

func strategyName(kind models.StrategyKind, legs []models.StrategyLeg) string {
	underlying := legs[0].Contract.Underlying
	switch kind {
	case models.SingleLeg:
		leg := legs[0]
		dir := "Long"
		if leg.Side == models.Short {
			dir = "Short"
		}
		typ := "Call"
		if leg.Contract.Type == models.Put {
			typ = "Put"
		}
		return fmt.Sprintf("%s %s %s", dir, typ, underlying)
	case models.CoveredCall:
		return fmt.Sprintf("Covered Call %s", underlying)
	case models.CashSecuredPut:
		return fmt.Sprintf("Cash-Secured Put %s", underlying)
	case models.ProtectivePut:
		return fmt.Sprintf("Protective Put %s", underlying)
	case models.Straddle:
		return fmt.Sprintf("Long Straddle %s", underlying)
	case models.Strangle:
		return fmt.Sprintf("Long Strangle %s", underlying)
	case models.IronCondor:
		return fmt.Sprintf("Iron Condor %s", underlying)
	case models.Butterfly:
		return fmt.Sprintf("Butterfly %s", underlying)
	}
	return string(kind)
}

// legsByShape splits legs into calls and puts, each by side.
type legShape struct {
	longCalls, shortCalls, longPuts, shortPuts []models.StrategyLeg
}

func shapeOf(legs []models.StrategyLeg) legShape {
	var sh legShape
	for _, leg := range legs {
		switch {
		case leg.Contract.Type == models.Call && leg.Side == models.Long:
			sh.longCalls = append(sh.longCalls, leg)
		case leg.Contract.Type == models.Call:
			sh.shortCalls = append(sh.shortCalls, leg)
		case leg.Side == models.Long:
			sh.longPuts = append(sh.longPuts, leg)
		default:
			sh.shortPuts = append(sh.shortPuts, leg)
		}
	}
	return sh
}

func shapeError(kind models.StrategyKind, want string) error {
	return apperrors.NewStrategyError(string(kind), fmt.Sprintf("legs do not form a %s (want %s)", kind, want), nil)
}

func multiplierOf(leg models.StrategyLeg) float64 {
	if leg.Contract.Multiplier != 0 {
		return leg.Contract.Multiplier
	}
	return models.DefaultMultiplier
}
