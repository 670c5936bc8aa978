package options

import (
	apperrors "github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/errors"
	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/models"
)

// LongCall builds a single-leg long call.
func (b *Builder) LongCall(contract models.OptionContract, qty, premium float64, mc models.MarketConditions) (*models.OptionsStrategy, error) {
	return b.singleLeg(contract, models.BuyToOpen, qty, premium, mc)
}

// LongPut builds a single-leg long put.
func (b *Builder) LongPut(contract models.OptionContract, qty, premium float64, mc models.MarketConditions) (*models.OptionsStrategy, error) {
	return b.singleLeg(contract, models.BuyToOpen, qty, premium, mc)
}

// ShortCall builds a single-leg naked short call.
func (b *Builder) ShortCall(contract models.OptionContract, qty, premium float64, mc models.MarketConditions) (*models.OptionsStrategy, error) {
	return b.singleLeg(contract, models.SellToOpen, qty, premium, mc)
}

// ShortPut builds a single-leg naked short put.
func (b *Builder) ShortPut(contract models.OptionContract, qty, premium float64, mc models.MarketConditions) (*models.OptionsStrategy, error) {
	return b.singleLeg(contract, models.SellToOpen, qty, premium, mc)
}

func (b *Builder) singleLeg(contract models.OptionContract, action models.LegAction, qty, premium float64, mc models.MarketConditions) (*models.OptionsStrategy, error) {
	leg, err := models.NewStrategyLeg(contract, action, qty, premium)
	if err != nil {
		return nil, apperrors.NewStrategyError(string(models.SingleLeg), "invalid leg", err)
	}
	return b.Build(models.SingleLeg, []models.StrategyLeg{leg}, mc)
}

// CoveredCall builds a covered call: one short call per 100 owned shares.
func (b *Builder) CoveredCall(call models.OptionContract, qty, premium float64, mc models.MarketConditions) (*models.OptionsStrategy, error) {
	leg, err := models.NewStrategyLeg(call, models.SellToOpen, qty, premium)
	if err != nil {
		return nil, apperrors.NewStrategyError(string(models.CoveredCall), "invalid leg", err)
	}
	return b.Build(models.CoveredCall, []models.StrategyLeg{leg}, mc)
}

// CashSecuredPut builds a short put collateralized with cash.
func (b *Builder) CashSecuredPut(put models.OptionContract, qty, premium float64, mc models.MarketConditions) (*models.OptionsStrategy, error) {
	leg, err := models.NewStrategyLeg(put, models.SellToOpen, qty, premium)
	if err != nil {
		return nil, apperrors.NewStrategyError(string(models.CashSecuredPut), "invalid leg", err)
	}
	return b.Build(models.CashSecuredPut, []models.StrategyLeg{leg}, mc)
}

// ProtectivePut builds a long put protecting an owned stock position.
func (b *Builder) ProtectivePut(put models.OptionContract, qty, premium float64, mc models.MarketConditions) (*models.OptionsStrategy, error) {
	leg, err := models.NewStrategyLeg(put, models.BuyToOpen, qty, premium)
	if err != nil {
		return nil, apperrors.NewStrategyError(string(models.ProtectivePut), "invalid leg", err)
	}
	return b.Build(models.ProtectivePut, []models.StrategyLeg{leg}, mc)
}

// LongStraddle builds a long call plus long put at the same strike.
func (b *Builder) LongStraddle(call, put models.OptionContract, qty, callPremium, putPremium float64, mc models.MarketConditions) (*models.OptionsStrategy, error) {
	legs, err := twoLongLegs(call, put, qty, callPremium, putPremium)
	if err != nil {
		return nil, apperrors.NewStrategyError(string(models.Straddle), "invalid legs", err)
	}
	return b.Build(models.Straddle, legs, mc)
}

// LongStrangle builds a long call plus long put at different strikes.
func (b *Builder) LongStrangle(call, put models.OptionContract, qty, callPremium, putPremium float64, mc models.MarketConditions) (*models.OptionsStrategy, error) {
	legs, err := twoLongLegs(call, put, qty, callPremium, putPremium)
	if err != nil {
		return nil, apperrors.NewStrategyError(string(models.Strangle), "invalid legs", err)
	}
	return b.Build(models.Strangle, legs, mc)
}

func twoLongLegs(call, put models.OptionContract, qty, callPremium, putPremium float64) ([]models.StrategyLeg, error) {
	callLeg, err := models.NewStrategyLeg(call, models.BuyToOpen, qty, callPremium)
	if err != nil {
		return nil, err
	}
	putLeg, err := models.NewStrategyLeg(put, models.BuyToOpen, qty, putPremium)
	if err != nil {
		return nil, err
	}
	return []models.StrategyLeg{callLeg, putLeg}, nil
}

// CondorQuotes carries the four contracts and premiums of an iron condor.
type CondorQuotes struct {
	PutBuy, PutSell, CallSell, CallBuy                                 models.OptionContract
	PutBuyPremium, PutSellPremium, CallSellPremium, CallBuyPremium float64
}

// IronCondor builds a short put spread plus a short call spread.
func (b *Builder) IronCondor(q CondorQuotes, qty float64, mc models.MarketConditions) (*models.OptionsStrategy, error) {
	specs := []struct {
		contract models.OptionContract
		action   models.LegAction
		premium  float64
	}{
		{q.PutBuy, models.BuyToOpen, q.PutBuyPremium},
		{q.PutSell, models.SellToOpen, q.PutSellPremium},
		{q.CallSell, models.SellToOpen, q.CallSellPremium},
		{q.CallBuy, models.BuyToOpen, q.CallBuyPremium},
	}
	legs := make([]models.StrategyLeg, 0, len(specs))
	for _, sp := range specs {
		leg, err := models.NewStrategyLeg(sp.contract, sp.action, qty, sp.premium)
		if err != nil {
			return nil, apperrors.NewStrategyError(string(models.IronCondor), "invalid leg", err)
		}
		legs = append(legs, leg)
	}
	return b.Build(models.IronCondor, legs, mc)
}

// Butterfly builds a long butterfly: long lower, short two middle, long
// upper, all the same contract type.
func (b *Builder) Butterfly(lower, middle, upper models.OptionContract, qty, lowerPremium, middlePremium, upperPremium float64, mc models.MarketConditions) (*models.OptionsStrategy, error) {
	lowerLeg, err := models.NewStrategyLeg(lower, models.BuyToOpen, qty, lowerPremium)
	if err != nil {
		return nil, apperrors.NewStrategyError(string(models.Butterfly), "invalid lower leg", err)
	}
	middleLeg, err := models.NewStrategyLeg(middle, models.SellToOpen, 2*qty, middlePremium)
	if err != nil {
		return nil, apperrors.NewStrategyError(string(models.Butterfly), "invalid middle leg", err)
	}
	upperLeg, err := models.NewStrategyLeg(upper, models.BuyToOpen, qty, upperPremium)
	if err != nil {
		return nil, apperrors.NewStrategyError(string(models.Butterfly), "invalid upper leg", err)
	}
	return b.Build(models.Butterfly, []models.StrategyLeg{lowerLeg, middleLeg, upperLeg}, mc)
}
