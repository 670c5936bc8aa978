// Package marketdata defines the market-data and account collaborator
// boundary and its implementations. The analytics engine consumes these
// interfaces; it never reaches a data feed directly.
package marketdata

import (
	"context"

	"github.com/prodshashankxgs/agents-hackathon-submission-sub000/internal/models"
)

// Provider supplies quotes and pricing inputs per underlying. Calls may
// fail; consumers must degrade to conservative defaults rather than
// propagate the failure.
type Provider interface {
	Quote(ctx context.Context, symbol string) (*models.MarketData, error)
	Conditions(ctx context.Context, symbol string) (*models.MarketConditions, error)
}

// AccountProvider supplies the brokerage account snapshot and the
// already-open options positions fed into risk assessment.
type AccountProvider interface {
	Account(ctx context.Context) (*models.AccountInfo, error)
	Positions(ctx context.Context) ([]models.OptionsPosition, error)
}
