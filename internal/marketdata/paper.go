package marketdata

import (
	"context"
	"sync"
	"time"

	apperrors "github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/errors"
	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/models"
)

// PaperProvider is a deterministic in-memory provider for simulation and
// tests. Quotes, conditions, account state, and positions are seeded by
// the caller.
type PaperProvider struct {
	quotes     map[string]models.MarketData
	conditions map[string]models.MarketConditions
	account    models.AccountInfo
	positions  []models.OptionsPosition
	mu         sync.RWMutex
}

// NewPaperProvider creates an empty paper provider with a default
// account of 100k cash.
func NewPaperProvider() *PaperProvider {
	return &PaperProvider{
		quotes:     make(map[string]models.MarketData),
		conditions: make(map[string]models.MarketConditions),
		account: models.AccountInfo{
			BuyingPower:    100000,
			Cash:           100000,
			PortfolioValue: 100000,
		},
	}
}

// SetQuote seeds a quote for a symbol.
func (p *PaperProvider) SetQuote(symbol string, price float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.quotes[symbol] = models.MarketData{
		Symbol:       symbol,
		Price:        price,
		Timestamp:    time.Now(),
		IsMarketOpen: true,
	}
}

// SetConditions seeds market conditions for a symbol.
func (p *PaperProvider) SetConditions(symbol string, mc models.MarketConditions) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.conditions[symbol] = mc
}

// SetAccount replaces the simulated account snapshot.
func (p *PaperProvider) SetAccount(account models.AccountInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.account = account
}

// SetPositions replaces the simulated open positions.
func (p *PaperProvider) SetPositions(positions []models.OptionsPosition) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.positions = positions
}

// Quote implements Provider.
func (p *PaperProvider) Quote(ctx context.Context, symbol string) (*models.MarketData, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	q, ok := p.quotes[symbol]
	if !ok {
		return nil, apperrors.NewDataError("quote", symbol, "no seeded quote", apperrors.ErrMarketDataUnavailable)
	}
	return &q, nil
}

// Conditions implements Provider.
func (p *PaperProvider) Conditions(ctx context.Context, symbol string) (*models.MarketConditions, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	mc, ok := p.conditions[symbol]
	if !ok {
		return nil, apperrors.NewDataError("conditions", symbol, "no seeded conditions", apperrors.ErrMarketDataUnavailable)
	}
	return &mc, nil
}

// Account implements AccountProvider.
func (p *PaperProvider) Account(ctx context.Context) (*models.AccountInfo, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	account := p.account
	account.Positions = append([]models.OptionsPosition(nil), p.positions...)
	return &account, nil
}

// Positions implements AccountProvider.
func (p *PaperProvider) Positions(ctx context.Context) ([]models.OptionsPosition, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]models.OptionsPosition(nil), p.positions...), nil
}
