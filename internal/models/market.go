package models

import "time"

// TrendTag is a qualitative market trend label.
type TrendTag string

const (
	TrendBullish TrendTag = "BULLISH"
	TrendBearish TrendTag = "BEARISH"
	TrendNeutral TrendTag = "NEUTRAL"
)

// Greeks represents option sensitivities. Theta is per day, vega per
// 1-point volatility change, rho per 1-point rate change. The zero value
// is the correct result for an expired contract.
type Greeks struct {
	Delta float64
	Gamma float64
	Theta float64
	Vega  float64
	Rho   float64
}

// Add returns the component-wise sum of two Greeks.
func (g Greeks) Add(o Greeks) Greeks {
	return Greeks{
		Delta: g.Delta + o.Delta,
		Gamma: g.Gamma + o.Gamma,
		Theta: g.Theta + o.Theta,
		Vega:  g.Vega + o.Vega,
		Rho:   g.Rho + o.Rho,
	}
}

// Scale returns the Greeks scaled by a signed factor.
func (g Greeks) Scale(f float64) Greeks {
	return Greeks{
		Delta: g.Delta * f,
		Gamma: g.Gamma * f,
		Theta: g.Theta * f,
		Vega:  g.Vega * f,
		Rho:   g.Rho * f,
	}
}

// MarketConditions holds the pricing inputs for one underlying. Supplied
// by the market-data collaborator; the engine never fetches it itself.
type MarketConditions struct {
	Price         float64
	ImpliedVol    float64
	RiskFreeRate  float64
	DividendYield float64
	Trend         TrendTag
	Timestamp     time.Time
}

// MarketData is the raw quote payload from the market-data collaborator.
type MarketData struct {
	Symbol        string
	Price         float64
	Volume        int64
	ChangePercent float64
	Timestamp     time.Time
	IsMarketOpen  bool
}

// AccountInfo is the account snapshot from the brokerage collaborator.
type AccountInfo struct {
	BuyingPower    float64
	Cash           float64
	PortfolioValue float64
	Positions      []OptionsPosition
}
