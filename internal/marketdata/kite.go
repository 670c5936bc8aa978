package marketdata

import (
	"context"
	"strconv"
	"strings"
	"time"

	kiteconnect "github.com/zerodha/gokiteconnect/v4"

	apperrors "github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/errors"
	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/models"
	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/pkg/utils"
)

// KiteProvider implements Provider and AccountProvider against the Kite
// Connect API. Volatility is not part of the quote feed; Conditions
// leaves ImpliedVol zero so consumers substitute their defaults.
type KiteProvider struct {
	client   *kiteconnect.Client
	exchange string
	retry    utils.RetryConfig
}

// KiteConfig holds Kite Connect credentials.
type KiteConfig struct {
	APIKey      string
	AccessToken string
	Exchange    string // quote prefix, defaults to NSE
}

// NewKiteProvider creates a Kite-backed market-data provider. The access
// token must already be issued; session management lives outside the
// engine.
func NewKiteProvider(cfg KiteConfig) (*KiteProvider, error) {
	if cfg.APIKey == "" || cfg.AccessToken == "" {
		return nil, apperrors.ErrNotAuthenticated
	}
	client := kiteconnect.New(cfg.APIKey)
	client.SetAccessToken(cfg.AccessToken)

	exchange := cfg.Exchange
	if exchange == "" {
		exchange = "NSE"
	}
	return &KiteProvider{
		client:   client,
		exchange: exchange,
		retry:    utils.DefaultRetryConfig(),
	}, nil
}

func (k *KiteProvider) qualify(symbol string) string {
	if strings.Contains(symbol, ":") {
		return symbol
	}
	return k.exchange + ":" + symbol
}

// Quote implements Provider.
func (k *KiteProvider) Quote(ctx context.Context, symbol string) (*models.MarketData, error) {
	qualified := k.qualify(symbol)
	quotes, err := utils.RetryWithResult(ctx, k.retry, func() (kiteconnect.Quote, error) {
		return k.client.GetQuote(qualified)
	})
	if err != nil {
		return nil, apperrors.NewDataError("quote", symbol, "quote fetch failed", err)
	}
	q, ok := quotes[qualified]
	if !ok {
		return nil, apperrors.NewDataError("quote", symbol, "symbol missing from quote response", apperrors.ErrMarketDataUnavailable)
	}

	changePercent := 0.0
	if q.OHLC.Close != 0 {
		changePercent = q.NetChange / q.OHLC.Close * 100
	}
	return &models.MarketData{
		Symbol:        symbol,
		Price:         q.LastPrice,
		Volume:        int64(q.Volume),
		ChangePercent: changePercent,
		Timestamp:     q.LastTradeTime.Time,
		IsMarketOpen:  true,
	}, nil
}

// Conditions implements Provider. Trend is derived from the day's change;
// implied volatility and rates are left for the consumer's defaults.
func (k *KiteProvider) Conditions(ctx context.Context, symbol string) (*models.MarketConditions, error) {
	quote, err := k.Quote(ctx, symbol)
	if err != nil {
		return nil, err
	}
	trend := models.TrendNeutral
	switch {
	case quote.ChangePercent > 1.0:
		trend = models.TrendBullish
	case quote.ChangePercent < -1.0:
		trend = models.TrendBearish
	}
	return &models.MarketConditions{
		Price:     quote.Price,
		Trend:     trend,
		Timestamp: quote.Timestamp,
	}, nil
}

// Account implements AccountProvider.
func (k *KiteProvider) Account(ctx context.Context) (*models.AccountInfo, error) {
	margins, err := utils.RetryWithResult(ctx, k.retry, k.client.GetUserMargins)
	if err != nil {
		return nil, apperrors.NewDataError("account", "", "margin fetch failed", err)
	}
	available := margins.Equity.Available.Cash + margins.Equity.Available.Collateral
	return &models.AccountInfo{
		BuyingPower:    available,
		Cash:           margins.Equity.Available.Cash,
		PortfolioValue: margins.Equity.Net,
	}, nil
}

// Positions implements AccountProvider. Only recognizable option
// positions are returned; equity and futures lines are skipped.
func (k *KiteProvider) Positions(ctx context.Context) ([]models.OptionsPosition, error) {
	positions, err := utils.RetryWithResult(ctx, k.retry, k.client.GetPositions)
	if err != nil {
		return nil, apperrors.NewDataError("positions", "", "position fetch failed", err)
	}

	var out []models.OptionsPosition
	for _, pos := range positions.Net {
		if pos.Quantity == 0 {
			continue
		}
		contract, ok := parseOptionSymbol(pos.Tradingsymbol)
		if !ok {
			continue
		}
		action := models.BuyToOpen
		qty := float64(pos.Quantity)
		if qty < 0 {
			action = models.SellToOpen
			qty = -qty
		}
		leg, err := models.NewStrategyLeg(contract, action, qty, pos.AveragePrice)
		if err != nil {
			continue
		}
		out = append(out, models.OptionsPosition{
			Underlying: contract.Underlying,
			Legs:       []models.StrategyLeg{leg},
		})
	}
	return out, nil
}

var monthCodes = map[string]time.Month{
	"JAN": time.January, "FEB": time.February, "MAR": time.March,
	"APR": time.April, "MAY": time.May, "JUN": time.June,
	"JUL": time.July, "AUG": time.August, "SEP": time.September,
	"OCT": time.October, "NOV": time.November, "DEC": time.December,
}

// parseOptionSymbol decodes NFO monthly option symbols of the form
// UNDERLYING + YY + MON + STRIKE + CE/PE, e.g. "NIFTY25SEP24000CE".
// The expiry is approximated as the last day of the contract month.
func parseOptionSymbol(symbol string) (models.OptionContract, bool) {
	var typ models.ContractType
	switch {
	case strings.HasSuffix(symbol, "CE"):
		typ = models.Call
	case strings.HasSuffix(symbol, "PE"):
		typ = models.Put
	default:
		return models.OptionContract{}, false
	}
	body := symbol[:len(symbol)-2]

	// Strike: trailing digits.
	i := len(body)
	for i > 0 && body[i-1] >= '0' && body[i-1] <= '9' {
		i--
	}
	strike, err := strconv.ParseFloat(body[i:], 64)
	if err != nil || strike <= 0 || i < 5 {
		return models.OptionContract{}, false
	}
	body = body[:i]

	month, ok := monthCodes[body[len(body)-3:]]
	if !ok {
		return models.OptionContract{}, false
	}
	year, err := strconv.Atoi(body[len(body)-5 : len(body)-3])
	if err != nil {
		return models.OptionContract{}, false
	}
	underlying := body[:len(body)-5]
	if underlying == "" {
		return models.OptionContract{}, false
	}

	expiry := time.Date(2000+year, month+1, 0, 15, 30, 0, 0, time.Local)
	contract, cerr := models.NewOptionContract(underlying, strike, expiry, typ)
	if cerr != nil {
		return models.OptionContract{}, false
	}
	contract.Exchange = "NFO"
	return contract, true
}
