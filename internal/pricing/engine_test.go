package pricing

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/models"
)

func testEngine() *Engine {
	return NewEngine(ConservativeDefaults(), zerolog.Nop())
}

func contractAt(t *testing.T, strike float64, expiry time.Time, typ models.ContractType) models.OptionContract {
	t.Helper()
	c, err := models.NewOptionContract("TEST", strike, expiry, typ)
	if err != nil {
		t.Fatalf("NewOptionContract: %v", err)
	}
	return c
}

func TestBlackScholesReferenceCall(t *testing.T) {
	e := testEngine()
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	expiry := now.Add(time.Duration(0.25 * 365 * 24 * float64(time.Hour)))

	call := contractAt(t, 100, expiry, models.Call)
	price := e.Price(call, 100, 0.20, 0.05, 0, now)

	// Standard reference value for S=100, K=100, T=0.25, r=5%, sigma=20%.
	if math.Abs(price-4.615) > 0.05 {
		t.Errorf("Price = %v, want 4.615 ± 0.05", price)
	}
}

func TestPutCallParity(t *testing.T) {
	e := testEngine()
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	expiry := now.AddDate(0, 6, 0)

	tests := []struct {
		name       string
		s, k       float64
		sigma, r   float64
		q          float64
	}{
		{"at the money", 100, 100, 0.20, 0.05, 0},
		{"in the money call", 120, 100, 0.30, 0.03, 0},
		{"with dividend", 100, 95, 0.25, 0.05, 0.02},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call := contractAt(t, tt.k, expiry, models.Call)
			put := contractAt(t, tt.k, expiry, models.Put)
			tau := call.TimeToExpiration(now)

			c := e.Price(call, tt.s, tt.sigma, tt.r, tt.q, now)
			p := e.Price(put, tt.s, tt.sigma, tt.r, tt.q, now)

			lhs := c - p
			rhs := tt.s*math.Exp(-tt.q*tau) - tt.k*math.Exp(-tt.r*tau)
			if math.Abs(lhs-rhs) > 1e-9 {
				t.Errorf("parity violated: C-P = %v, S*e^-qT - K*e^-rT = %v", lhs, rhs)
			}
		})
	}
}

func TestPriceAtExpirationIsIntrinsic(t *testing.T) {
	e := testEngine()
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		typ    models.ContractType
		strike float64
		spot   float64
		want   float64
	}{
		{"ITM call", models.Call, 100, 110, 10},
		{"OTM call", models.Call, 100, 90, 0},
		{"ITM put", models.Put, 100, 90, 10},
		{"OTM put", models.Put, 100, 110, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := contractAt(t, tt.strike, now, tt.typ)
			if got := e.Price(c, tt.spot, 0.20, 0.05, 0, now); got != tt.want {
				t.Errorf("Price = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGreeksZeroAtExpiration(t *testing.T) {
	e := testEngine()
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	for _, typ := range []models.ContractType{models.Call, models.Put} {
		c := contractAt(t, 100, now.Add(-time.Hour), typ)
		g := e.ComputeGreeks(c, 110, 0.20, 0.05, 0, now)
		if g != (models.Greeks{}) {
			t.Errorf("%s Greeks at expiration = %+v, want all zero", typ, g)
		}
	}
}

func TestGreeksBounds(t *testing.T) {
	e := testEngine()
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	expiry := now.AddDate(0, 3, 0)

	call := contractAt(t, 100, expiry, models.Call)
	put := contractAt(t, 100, expiry, models.Put)

	gc := e.ComputeGreeks(call, 100, 0.20, 0.05, 0, now)
	gp := e.ComputeGreeks(put, 100, 0.20, 0.05, 0, now)

	if gc.Delta < 0 || gc.Delta > 1 {
		t.Errorf("call delta = %v, want in [0,1]", gc.Delta)
	}
	if gp.Delta < -1 || gp.Delta > 0 {
		t.Errorf("put delta = %v, want in [-1,0]", gp.Delta)
	}
	if gc.Gamma <= 0 || gp.Gamma <= 0 {
		t.Errorf("gamma = %v / %v, want positive", gc.Gamma, gp.Gamma)
	}
	if gc.Vega <= 0 || gp.Vega <= 0 {
		t.Errorf("vega = %v / %v, want positive", gc.Vega, gp.Vega)
	}
	// Same-strike call and put share gamma and vega.
	if math.Abs(gc.Gamma-gp.Gamma) > 1e-12 || math.Abs(gc.Vega-gp.Vega) > 1e-12 {
		t.Errorf("call/put gamma or vega differ: %+v vs %+v", gc, gp)
	}
	// Long ATM options bleed value daily.
	if gc.Theta >= 0 {
		t.Errorf("ATM call theta = %v, want negative", gc.Theta)
	}
}

func TestStrategyGreeksSignAndScale(t *testing.T) {
	e := testEngine()
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	expiry := now.AddDate(0, 3, 0)

	call := contractAt(t, 100, expiry, models.Call)
	longLeg, err := models.NewStrategyLeg(call, models.BuyToOpen, 2, 5)
	if err != nil {
		t.Fatalf("NewStrategyLeg: %v", err)
	}
	shortLeg, err := models.NewStrategyLeg(call, models.SellToOpen, 2, 5)
	if err != nil {
		t.Fatalf("NewStrategyLeg: %v", err)
	}

	single := e.ComputeGreeks(call, 100, 0.20, 0.05, 0, now)

	long := e.StrategyGreeks(&models.OptionsStrategy{Legs: []models.StrategyLeg{longLeg}}, 100, 0.20, 0.05, 0, now)
	short := e.StrategyGreeks(&models.OptionsStrategy{Legs: []models.StrategyLeg{shortLeg}}, 100, 0.20, 0.05, 0, now)

	if math.Abs(long.Delta-2*single.Delta) > 1e-12 {
		t.Errorf("long delta = %v, want %v", long.Delta, 2*single.Delta)
	}
	if math.Abs(short.Delta+2*single.Delta) > 1e-12 {
		t.Errorf("short delta = %v, want %v", short.Delta, -2*single.Delta)
	}
	// Opposite legs cancel exactly.
	both := e.StrategyGreeks(&models.OptionsStrategy{Legs: []models.StrategyLeg{longLeg, shortLeg}}, 100, 0.20, 0.05, 0, now)
	if math.Abs(both.Delta) > 1e-12 || math.Abs(both.Vega) > 1e-12 {
		t.Errorf("offsetting legs left residual Greeks: %+v", both)
	}
}

func TestImpliedVolatilityKnownValue(t *testing.T) {
	e := testEngine()
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	expiry := now.AddDate(0, 3, 0)
	call := contractAt(t, 100, expiry, models.Call)

	trueVol := 0.35
	marketPrice := e.Price(call, 100, trueVol, 0.05, 0, now)
	iv := e.ImpliedVolatility(call, 100, marketPrice, 0.05, 0, now)

	// The solver converges in price space to 1e-4; nearly exact in vol
	// space for an ATM contract.
	if math.Abs(iv-trueVol) > 1e-3 {
		t.Errorf("ImpliedVolatility = %v, want %v ± 1e-3", iv, trueVol)
	}
}

func TestImpliedVolatilityZeroVegaReturnsEstimate(t *testing.T) {
	e := testEngine()
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	// Expired contract: vega is zero on the first iteration.
	call := contractAt(t, 100, now.Add(-time.Hour), models.Call)

	iv := e.ImpliedVolatility(call, 120, 50, 0.05, 0, now)
	if iv != ivInitialGuess {
		t.Errorf("ImpliedVolatility = %v, want the initial %v estimate", iv, ivInitialGuess)
	}
}

func TestImpliedVolatilityStallLogsBestEstimate(t *testing.T) {
	var logBuf strings.Builder
	e := NewEngine(ConservativeDefaults(), zerolog.New(&logBuf))
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	call := contractAt(t, 100, now.Add(-time.Hour), models.Call)

	e.ImpliedVolatility(call, 120, 50, 0.05, 0, now)

	logged := logBuf.String()
	if !strings.Contains(logged, "implied_volatility") || !strings.Contains(logged, "best estimate") {
		t.Errorf("stall did not log a computation error with the estimate: %q", logged)
	}
}

func TestGreeksSensitivityDirections(t *testing.T) {
	e := testEngine()
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	expiry := now.AddDate(0, 3, 0)
	call := contractAt(t, 100, expiry, models.Call)

	s := e.GreeksSensitivity(call, 100, 0.20, 0.05, 0, 0.05, 0.10, now)

	// Spot up: ATM call delta rises.
	if s.PriceShift.Delta <= 0 {
		t.Errorf("delta shift under higher spot = %v, want positive", s.PriceShift.Delta)
	}
	// Base Greeks carried through unchanged.
	base := e.ComputeGreeks(call, 100, 0.20, 0.05, 0, now)
	if s.Base != base {
		t.Errorf("Base = %+v, want %+v", s.Base, base)
	}
}

func TestRiskMetricsDefinedRiskStrategy(t *testing.T) {
	e := testEngine()
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	expiry := now.AddDate(0, 3, 0)

	call := contractAt(t, 100, expiry, models.Call)
	leg, err := models.NewStrategyLeg(call, models.BuyToOpen, 1, 5)
	if err != nil {
		t.Fatalf("NewStrategyLeg: %v", err)
	}
	strategy := &models.OptionsStrategy{
		Kind:       models.SingleLeg,
		Legs:       []models.StrategyLeg{leg},
		MaxProfit:  models.Unbounded,
		MaxLoss:    500,
		Breakevens: []float64{105},
	}

	m := e.RiskMetrics(strategy, 100, 0.20, 0.05, 0, now)

	if m.ValueAtRisk <= 0 {
		t.Errorf("ValueAtRisk = %v, want positive", m.ValueAtRisk)
	}
	if m.MaxDrawdown != 500 {
		t.Errorf("MaxDrawdown = %v, want the 500 max loss", m.MaxDrawdown)
	}
	if m.ProbabilityOfProfit < 0 || m.ProbabilityOfProfit > 1 {
		t.Errorf("ProbabilityOfProfit = %v, want in [0,1]", m.ProbabilityOfProfit)
	}
}
