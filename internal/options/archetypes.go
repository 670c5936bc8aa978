package options

import (
	"fmt"
	"math"

	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/models"
)

// singleLegAttrs computes payoff attributes for a single long or short
// option.
func singleLegAttrs(legs []models.StrategyLeg, underlyingPrice float64, s *models.OptionsStrategy) error {
	if len(legs) != 1 {
		return shapeError(models.SingleLeg, "exactly one leg")
	}
	leg := legs[0]
	mult := multiplierOf(leg)
	premium := leg.EntryPrice * leg.Quantity * mult
	strike := leg.Contract.Strike

	switch {
	case leg.Contract.Type == models.Call && leg.Side == models.Long:
		s.MaxProfit = models.Unbounded
		s.MaxLoss = premium
		s.Breakevens = []float64{strike + leg.EntryPrice}
		s.Description = fmt.Sprintf("Long call: unlimited upside above %.2f, risk limited to %.2f premium", strike+leg.EntryPrice, premium)
	case leg.Contract.Type == models.Call:
		s.MaxProfit = premium
		s.MaxLoss = models.Unbounded
		s.Breakevens = []float64{strike + leg.EntryPrice}
		s.Description = fmt.Sprintf("Short call: keep %.2f premium below %.2f, unlimited risk above", premium, strike+leg.EntryPrice)
	case leg.Side == models.Long:
		s.MaxProfit = (strike - leg.EntryPrice) * leg.Quantity * mult
		s.MaxLoss = premium
		s.Breakevens = []float64{strike - leg.EntryPrice}
		s.Description = fmt.Sprintf("Long put: profit below %.2f, risk limited to %.2f premium", strike-leg.EntryPrice, premium)
	default:
		s.MaxProfit = premium
		s.MaxLoss = (strike - leg.EntryPrice) * leg.Quantity * mult
		s.Breakevens = []float64{strike - leg.EntryPrice}
		s.Description = fmt.Sprintf("Short put: keep %.2f premium above %.2f", premium, strike-leg.EntryPrice)
	}
	return nil
}

// coveredCallAttrs computes payoff attributes for a covered call: one
// short call per 100 owned shares.
//
// The breakeven here is strike + premium, matching the behavior this
// engine replaced; the textbook covered-call breakeven would be
// stockPrice - premium. Pinned by regression test.
func coveredCallAttrs(legs []models.StrategyLeg, underlyingPrice float64, s *models.OptionsStrategy) error {
	sh := shapeOf(legs)
	if len(legs) != 1 || len(sh.shortCalls) != 1 {
		return shapeError(models.CoveredCall, "exactly one short call")
	}
	leg := sh.shortCalls[0]
	mult := multiplierOf(leg)
	shares := leg.Quantity * mult

	s.MaxProfit = leg.Contract.Strike*shares + leg.EntryPrice*shares
	s.MaxLoss = models.Unbounded // stock can go to zero
	s.Breakevens = []float64{leg.Contract.Strike + leg.EntryPrice}
	s.Description = fmt.Sprintf("Covered call over %.0f shares: income %.2f, called away above %.2f", shares, leg.EntryPrice*shares, leg.Contract.Strike)
	return nil
}

// cashSecuredPutAttrs computes payoff attributes for a short put fully
// collateralized with cash.
func cashSecuredPutAttrs(legs []models.StrategyLeg, underlyingPrice float64, s *models.OptionsStrategy) error {
	sh := shapeOf(legs)
	if len(legs) != 1 || len(sh.shortPuts) != 1 {
		return shapeError(models.CashSecuredPut, "exactly one short put")
	}
	leg := sh.shortPuts[0]
	mult := multiplierOf(leg)

	s.MaxProfit = leg.EntryPrice * leg.Quantity * mult
	s.MaxLoss = (leg.Contract.Strike - leg.EntryPrice) * leg.Quantity * mult
	s.Breakevens = []float64{leg.Contract.Strike - leg.EntryPrice}
	s.Collateral = leg.Contract.Strike * leg.Quantity * mult
	s.Description = fmt.Sprintf("Cash-secured put: %.2f cash reserved, assigned below %.2f", s.Collateral, leg.Contract.Strike)
	return nil
}

// protectivePutAttrs computes payoff attributes for a long put protecting
// an owned stock position.
func protectivePutAttrs(legs []models.StrategyLeg, underlyingPrice float64, s *models.OptionsStrategy) error {
	sh := shapeOf(legs)
	if len(legs) != 1 || len(sh.longPuts) != 1 {
		return shapeError(models.ProtectivePut, "exactly one long put")
	}
	leg := sh.longPuts[0]
	mult := multiplierOf(leg)
	shares := leg.Quantity * mult

	s.MaxProfit = models.Unbounded
	s.MaxLoss = (underlyingPrice - leg.Contract.Strike + leg.EntryPrice) * shares
	s.Breakevens = []float64{underlyingPrice + leg.EntryPrice}
	s.Description = fmt.Sprintf("Protective put: downside floored at %.2f, insurance cost %.2f", leg.Contract.Strike, leg.EntryPrice*shares)
	return nil
}

// straddleAttrs computes payoff attributes for a long straddle: long call
// and long put at the same strike.
func straddleAttrs(legs []models.StrategyLeg, underlyingPrice float64, s *models.OptionsStrategy) error {
	sh := shapeOf(legs)
	if len(legs) != 2 || len(sh.longCalls) != 1 || len(sh.longPuts) != 1 {
		return shapeError(models.Straddle, "one long call and one long put")
	}
	call, put := sh.longCalls[0], sh.longPuts[0]
	if call.Contract.Strike != put.Contract.Strike {
		return shapeError(models.Straddle, "matching strikes")
	}
	if call.Quantity != put.Quantity {
		return shapeError(models.Straddle, "matching quantities")
	}
	mult := multiplierOf(call)
	totalPremium := call.EntryPrice + put.EntryPrice

	s.MaxProfit = models.Unbounded
	s.MaxLoss = totalPremium * call.Quantity * mult
	s.Breakevens = []float64{
		call.Contract.Strike - totalPremium,
		call.Contract.Strike + totalPremium,
	}
	s.Description = fmt.Sprintf("Long straddle at %.2f: profits on a move beyond ±%.2f", call.Contract.Strike, totalPremium)
	return nil
}

// strangleAttrs computes payoff attributes for a long strangle: long call
// and long put at different strikes.
func strangleAttrs(legs []models.StrategyLeg, underlyingPrice float64, s *models.OptionsStrategy) error {
	sh := shapeOf(legs)
	if len(legs) != 2 || len(sh.longCalls) != 1 || len(sh.longPuts) != 1 {
		return shapeError(models.Strangle, "one long call and one long put")
	}
	call, put := sh.longCalls[0], sh.longPuts[0]
	if put.Contract.Strike >= call.Contract.Strike {
		return shapeError(models.Strangle, "put strike below call strike")
	}
	if call.Quantity != put.Quantity {
		return shapeError(models.Strangle, "matching quantities")
	}
	mult := multiplierOf(call)
	totalPremium := call.EntryPrice + put.EntryPrice

	s.MaxProfit = models.Unbounded
	s.MaxLoss = totalPremium * call.Quantity * mult
	s.Breakevens = []float64{
		put.Contract.Strike - totalPremium,
		call.Contract.Strike + totalPremium,
	}
	s.Description = fmt.Sprintf("Long strangle %.2f/%.2f: profits outside the strikes by %.2f", put.Contract.Strike, call.Contract.Strike, totalPremium)
	return nil
}

// ironCondorAttrs computes payoff attributes for an iron condor: a short
// put spread plus a short call spread.
func ironCondorAttrs(legs []models.StrategyLeg, underlyingPrice float64, s *models.OptionsStrategy) error {
	sh := shapeOf(legs)
	if len(legs) != 4 || len(sh.shortPuts) != 1 || len(sh.longPuts) != 1 ||
		len(sh.shortCalls) != 1 || len(sh.longCalls) != 1 {
		return shapeError(models.IronCondor, "short put spread plus short call spread")
	}
	putSell, putBuy := sh.shortPuts[0], sh.longPuts[0]
	callSell, callBuy := sh.shortCalls[0], sh.longCalls[0]

	if !(putBuy.Contract.Strike < putSell.Contract.Strike &&
		putSell.Contract.Strike < callSell.Contract.Strike &&
		callSell.Contract.Strike < callBuy.Contract.Strike) {
		return shapeError(models.IronCondor, "strikes ordered putBuy < putSell < callSell < callBuy")
	}
	qty := putSell.Quantity
	if putBuy.Quantity != qty || callSell.Quantity != qty || callBuy.Quantity != qty {
		return shapeError(models.IronCondor, "matching quantities on all four legs")
	}
	mult := multiplierOf(putSell)

	netCredit := (putSell.EntryPrice - putBuy.EntryPrice + callSell.EntryPrice - callBuy.EntryPrice) * qty * mult
	putWidth := putSell.Contract.Strike - putBuy.Contract.Strike
	callWidth := callBuy.Contract.Strike - callSell.Contract.Strike
	width := math.Max(putWidth, callWidth)

	s.MaxProfit = netCredit
	s.MaxLoss = width*qty*mult - netCredit
	creditPerShare := netCredit / (qty * mult)
	s.Breakevens = []float64{
		putSell.Contract.Strike - creditPerShare,
		callSell.Contract.Strike + creditPerShare,
	}
	s.Description = fmt.Sprintf("Iron condor %.2f/%.2f/%.2f/%.2f for %.2f credit",
		putBuy.Contract.Strike, putSell.Contract.Strike, callSell.Contract.Strike, callBuy.Contract.Strike, netCredit)
	return nil
}

// butterflyAttrs computes payoff attributes for a long butterfly: long one
// lower strike, short two middle, long one upper, same contract type.
func butterflyAttrs(legs []models.StrategyLeg, underlyingPrice float64, s *models.OptionsStrategy) error {
	if len(legs) != 3 {
		return shapeError(models.Butterfly, "three legs: long-short(x2)-long")
	}
	var longs, shorts []models.StrategyLeg
	for _, leg := range legs {
		if leg.Side == models.Long {
			longs = append(longs, leg)
		} else {
			shorts = append(shorts, leg)
		}
	}
	if len(longs) != 2 || len(shorts) != 1 {
		return shapeError(models.Butterfly, "two long wings and one short body")
	}
	lower, upper := longs[0], longs[1]
	if lower.Contract.Strike > upper.Contract.Strike {
		lower, upper = upper, lower
	}
	middle := shorts[0]
	if lower.Contract.Type != middle.Contract.Type || middle.Contract.Type != upper.Contract.Type {
		return shapeError(models.Butterfly, "all legs the same contract type")
	}
	if !(lower.Contract.Strike < middle.Contract.Strike && middle.Contract.Strike < upper.Contract.Strike) {
		return shapeError(models.Butterfly, "strikes ordered lower < middle < upper")
	}
	qty := lower.Quantity
	if upper.Quantity != qty || middle.Quantity != 2*qty {
		return shapeError(models.Butterfly, "body quantity twice the wing quantity")
	}
	mult := multiplierOf(lower)

	netDebit := (lower.EntryPrice - 2*middle.EntryPrice + upper.EntryPrice) * qty * mult
	s.MaxProfit = (middle.Contract.Strike-lower.Contract.Strike)*qty*mult - netDebit
	s.MaxLoss = netDebit
	debitPerShare := netDebit / (qty * mult)
	s.Breakevens = []float64{
		lower.Contract.Strike + debitPerShare,
		upper.Contract.Strike - debitPerShare,
	}
	s.Description = fmt.Sprintf("Butterfly %.2f/%.2f/%.2f for %.2f debit",
		lower.Contract.Strike, middle.Contract.Strike, upper.Contract.Strike, netDebit)
	return nil
}
