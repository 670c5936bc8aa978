package pricing

import (
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/models"
)

func positionWith(t *testing.T, underlying string, strike float64, expiry time.Time) models.OptionsPosition {
	t.Helper()
	contract, err := models.NewOptionContract(underlying, strike, expiry, models.Call)
	if err != nil {
		t.Fatalf("NewOptionContract: %v", err)
	}
	leg, err := models.NewStrategyLeg(contract, models.BuyToOpen, 1, 2)
	if err != nil {
		t.Fatalf("NewStrategyLeg: %v", err)
	}
	return models.OptionsPosition{Underlying: contract.Underlying, Legs: []models.StrategyLeg{leg}}
}

func TestPortfolioGreeksMissingConditionsFallback(t *testing.T) {
	var logBuf strings.Builder
	e := NewEngine(ConservativeDefaults(), zerolog.New(&logBuf))
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	expiry := now.AddDate(0, 3, 0)

	covered := positionWith(t, "AAPL", 150, expiry)
	uncovered := positionWith(t, "XYZ", 50, expiry)

	conditions := map[models.Underlying]models.MarketConditions{
		"AAPL": {Price: 150, ImpliedVol: 0.20, RiskFreeRate: 0.05},
	}

	total := e.PortfolioGreeks([]models.OptionsPosition{covered, uncovered}, conditions, now)

	// The uncovered underlying has no usable price, so it contributes
	// nothing; the aggregation must still complete and warn.
	want := e.PositionGreeks(covered, conditions["AAPL"], now)
	if !greeksClose(total, want) {
		t.Errorf("portfolio Greeks = %+v, want covered position only %+v", total, want)
	}
	if want == (models.Greeks{}) {
		t.Fatal("covered position produced zero Greeks, fixture is broken")
	}
	if !strings.Contains(logBuf.String(), "conservative defaults") {
		t.Errorf("missing-conditions warning not logged: %q", logBuf.String())
	}
}

func TestPortfolioGreeksZeroVolUsesDefault(t *testing.T) {
	e := testEngine()
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	expiry := now.AddDate(0, 3, 0)

	pos := positionWith(t, "AAPL", 150, expiry)

	// Live feeds without a vol surface leave ImpliedVol zero; the
	// aggregation substitutes the engine default.
	partial := map[models.Underlying]models.MarketConditions{
		"AAPL": {Price: 150, RiskFreeRate: 0.05},
	}
	got := e.PortfolioGreeks([]models.OptionsPosition{pos}, partial, now)

	filled := models.MarketConditions{Price: 150, ImpliedVol: e.Defaults().ImpliedVol, RiskFreeRate: 0.05}
	want := e.PositionGreeks(pos, filled, now)
	if !greeksClose(got, want) {
		t.Errorf("Greeks with defaulted vol = %+v, want %+v", got, want)
	}
}
