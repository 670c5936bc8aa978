// Package models defines the core value objects shared across the engine.
package models

import (
	"fmt"
	"time"
)

// ContractType represents the type of an option contract.
type ContractType string

const (
	Call ContractType = "CALL"
	Put  ContractType = "PUT"
)

// Valid reports whether the contract type is a known value.
func (t ContractType) Valid() bool {
	return t == Call || t == Put
}

// LegAction represents the order action for a strategy leg.
type LegAction string

const (
	BuyToOpen   LegAction = "BUY_TO_OPEN"
	SellToOpen  LegAction = "SELL_TO_OPEN"
	BuyToClose  LegAction = "BUY_TO_CLOSE"
	SellToClose LegAction = "SELL_TO_CLOSE"
)

// PositionSide represents the direction of a position.
type PositionSide string

const (
	Long  PositionSide = "LONG"
	Short PositionSide = "SHORT"
)

// Sign returns +1 for long and -1 for short positions.
func (s PositionSide) Sign() float64 {
	if s == Short {
		return -1
	}
	return 1
}

// SideFor returns the position side implied by a leg action.
func SideFor(action LegAction) (PositionSide, error) {
	switch action {
	case BuyToOpen, BuyToClose:
		if action == BuyToClose {
			return Short, nil
		}
		return Long, nil
	case SellToOpen:
		return Short, nil
	case SellToClose:
		return Long, nil
	default:
		return "", fmt.Errorf("unknown leg action: %s", action)
	}
}

// DefaultMultiplier is the standard equity-option contract multiplier.
const DefaultMultiplier = 100

// OptionContract represents a single option contract. Treated as immutable
// once constructed.
type OptionContract struct {
	Underlying Underlying
	Strike     float64
	Expiration time.Time
	Type       ContractType
	Multiplier float64
	Exchange   string
}

// Underlying identifies the underlying symbol of a contract.
type Underlying string

// NewOptionContract validates and constructs an option contract. The
// multiplier defaults to 100 when zero.
func NewOptionContract(underlying string, strike float64, expiration time.Time, typ ContractType) (OptionContract, error) {
	if underlying == "" {
		return OptionContract{}, fmt.Errorf("contract underlying is required")
	}
	if strike <= 0 {
		return OptionContract{}, fmt.Errorf("contract strike must be positive, got %.4f", strike)
	}
	if !typ.Valid() {
		return OptionContract{}, fmt.Errorf("unknown contract type: %q", typ)
	}
	return OptionContract{
		Underlying: Underlying(underlying),
		Strike:     strike,
		Expiration: expiration,
		Type:       typ,
		Multiplier: DefaultMultiplier,
	}, nil
}

// TimeToExpiration returns the time to expiration in years. Non-positive
// for expired contracts.
func (c OptionContract) TimeToExpiration(now time.Time) float64 {
	return c.Expiration.Sub(now).Hours() / (24 * 365)
}

// IsExpired reports whether the contract has expired as of now.
func (c OptionContract) IsExpired(now time.Time) bool {
	return !c.Expiration.After(now)
}

// IntrinsicValue returns the exercise value of the contract at the given
// underlying price, ignoring time value.
func (c OptionContract) IntrinsicValue(underlyingPrice float64) float64 {
	if c.Type == Call {
		if v := underlyingPrice - c.Strike; v > 0 {
			return v
		}
		return 0
	}
	if v := c.Strike - underlyingPrice; v > 0 {
		return v
	}
	return 0
}

// String renders the contract in OCC-ish shorthand, e.g. "AAPL 190C 2026-01-16".
func (c OptionContract) String() string {
	suffix := "C"
	if c.Type == Put {
		suffix = "P"
	}
	return fmt.Sprintf("%s %.6g%s %s", c.Underlying, c.Strike, suffix, c.Expiration.Format("2006-01-02"))
}

// StrategyLeg represents a single leg of an options strategy.
type StrategyLeg struct {
	Contract   OptionContract
	Action     LegAction
	Side       PositionSide
	Quantity   float64 // contracts; fractional allowed for partial lots
	EntryPrice float64 // premium in dollars per share
}

// NewStrategyLeg validates and constructs a strategy leg. The side is
// derived from the action and must agree with it.
func NewStrategyLeg(contract OptionContract, action LegAction, quantity, entryPrice float64) (StrategyLeg, error) {
	if quantity <= 0 {
		return StrategyLeg{}, fmt.Errorf("leg quantity must be positive, got %.4f", quantity)
	}
	side, err := SideFor(action)
	if err != nil {
		return StrategyLeg{}, err
	}
	return StrategyLeg{
		Contract:   contract,
		Action:     action,
		Side:       side,
		Quantity:   quantity,
		EntryPrice: entryPrice,
	}, nil
}

// Validate checks the leg invariants: positive quantity and side/action
// agreement.
func (l StrategyLeg) Validate() error {
	if l.Quantity <= 0 {
		return fmt.Errorf("leg quantity must be positive, got %.4f", l.Quantity)
	}
	side, err := SideFor(l.Action)
	if err != nil {
		return err
	}
	if l.Side != side {
		return fmt.Errorf("leg side %s inconsistent with action %s", l.Side, l.Action)
	}
	return nil
}

// Notional returns the dollar notional of the leg at the given underlying
// price.
func (l StrategyLeg) Notional(underlyingPrice float64) float64 {
	mult := l.Contract.Multiplier
	if mult == 0 {
		mult = DefaultMultiplier
	}
	return underlyingPrice * l.Quantity * mult
}
