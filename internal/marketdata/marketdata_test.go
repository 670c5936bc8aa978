package marketdata

import (
	"context"
	"testing"
	"time"

	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/models"
)

func TestPaperProviderQuotes(t *testing.T) {
	p := NewPaperProvider()
	ctx := context.Background()

	if _, err := p.Quote(ctx, "AAPL"); err == nil {
		t.Error("Quote for an unseeded symbol succeeded")
	}

	p.SetQuote("AAPL", 150.25)
	quote, err := p.Quote(ctx, "AAPL")
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if quote.Price != 150.25 || quote.Symbol != "AAPL" {
		t.Errorf("quote = %+v, want AAPL at 150.25", quote)
	}
}

func TestPaperProviderConditions(t *testing.T) {
	p := NewPaperProvider()
	ctx := context.Background()

	p.SetConditions("SPY", models.MarketConditions{
		Price:        480,
		ImpliedVol:   0.18,
		RiskFreeRate: 0.05,
		Trend:        models.TrendBullish,
	})

	mc, err := p.Conditions(ctx, "SPY")
	if err != nil {
		t.Fatalf("Conditions: %v", err)
	}
	if mc.Price != 480 || mc.Trend != models.TrendBullish {
		t.Errorf("conditions = %+v", mc)
	}

	if _, err := p.Conditions(ctx, "MISSING"); err == nil {
		t.Error("Conditions for an unseeded symbol succeeded")
	}
}

func TestPaperProviderAccountDefaults(t *testing.T) {
	p := NewPaperProvider()
	account, err := p.Account(context.Background())
	if err != nil {
		t.Fatalf("Account: %v", err)
	}
	if account.Cash != 100000 || account.BuyingPower != 100000 {
		t.Errorf("default account = %+v, want 100k cash and buying power", account)
	}

	positions, err := p.Positions(context.Background())
	if err != nil {
		t.Fatalf("Positions: %v", err)
	}
	if len(positions) != 0 {
		t.Errorf("default positions = %v, want none", positions)
	}
}

func TestParseOptionSymbol(t *testing.T) {
	tests := []struct {
		symbol     string
		wantOK     bool
		underlying models.Underlying
		strike     float64
		typ        models.ContractType
		month      time.Month
		year       int
	}{
		{"NIFTY25SEP24000CE", true, "NIFTY", 24000, models.Call, time.September, 2025},
		{"BANKNIFTY26JAN52000PE", true, "BANKNIFTY", 52000, models.Put, time.January, 2026},
		{"RELIANCE25DEC3000CE", true, "RELIANCE", 3000, models.Call, time.December, 2025},
		{"RELIANCE", false, "", 0, "", 0, 0},          // equity, no option suffix
		{"25SEP24000CE", false, "", 0, "", 0, 0},      // missing underlying
		{"NIFTY25XXX24000CE", false, "", 0, "", 0, 0}, // bad month code
		{"NIFTYSEP24000CE", false, "", 0, "", 0, 0},   // missing year digits
	}
	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			contract, ok := parseOptionSymbol(tt.symbol)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if contract.Underlying != tt.underlying {
				t.Errorf("Underlying = %q, want %q", contract.Underlying, tt.underlying)
			}
			if contract.Strike != tt.strike {
				t.Errorf("Strike = %v, want %v", contract.Strike, tt.strike)
			}
			if contract.Type != tt.typ {
				t.Errorf("Type = %v, want %v", contract.Type, tt.typ)
			}
			if contract.Expiration.Month() != tt.month || contract.Expiration.Year() != tt.year {
				t.Errorf("Expiration = %v, want %v %d", contract.Expiration, tt.month, tt.year)
			}
			if contract.Exchange != "NFO" {
				t.Errorf("Exchange = %q, want NFO", contract.Exchange)
			}
		})
	}
}
