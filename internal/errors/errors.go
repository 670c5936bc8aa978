// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrInvalidStrategy       = errors.New("invalid strategy")
	ErrInvalidContract       = errors.New("invalid contract")
	ErrMarketDataUnavailable = errors.New("market data unavailable")
	ErrAccountUnavailable    = errors.New("account data unavailable")
	ErrMonitorRunning        = errors.New("monitor already running")
	ErrMonitorStopped        = errors.New("monitor not running")
	ErrConfigInvalid         = errors.New("invalid configuration")
	ErrDatabaseError         = errors.New("database error")
	ErrNotAuthenticated      = errors.New("not authenticated")
)

// StrategyError represents a strategy construction error.
type StrategyError struct {
	Kind    string
	Message string
	Err     error
}

func (e *StrategyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("strategy error [%s]: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("strategy error [%s]: %s", e.Kind, e.Message)
}

func (e *StrategyError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidStrategy
}

// NewStrategyError creates a new StrategyError.
func NewStrategyError(kind, message string, err error) *StrategyError {
	return &StrategyError{Kind: kind, Message: message, Err: err}
}

// ComputationError represents a numerical computation that could not
// converge. The carried Estimate is the best value found before
// termination.
type ComputationError struct {
	Operation string
	Estimate  float64
	Message   string
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("computation error [%s]: %s (best estimate: %.6f)", e.Operation, e.Message, e.Estimate)
}

// NewComputationError creates a new ComputationError.
func NewComputationError(operation string, estimate float64, message string) *ComputationError {
	return &ComputationError{Operation: operation, Estimate: estimate, Message: message}
}

// DataError represents a market/account data error.
type DataError struct {
	DataType string
	Symbol   string
	Message  string
	Err      error
}

func (e *DataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data error [%s] %s: %s: %v", e.DataType, e.Symbol, e.Message, e.Err)
	}
	return fmt.Sprintf("data error [%s] %s: %s", e.DataType, e.Symbol, e.Message)
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// NewDataError creates a new DataError.
func NewDataError(dataType, symbol, message string, err error) *DataError {
	return &DataError{DataType: dataType, Symbol: symbol, Message: message, Err: err}
}

// MonitorError represents a failure inside a monitoring tick.
type MonitorError struct {
	Tick    int64
	Message string
	Err     error
}

func (e *MonitorError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("monitor error [tick %d]: %s: %v", e.Tick, e.Message, e.Err)
	}
	return fmt.Sprintf("monitor error [tick %d]: %s", e.Tick, e.Message)
}

func (e *MonitorError) Unwrap() error {
	return e.Err
}

// NewMonitorError creates a new MonitorError.
func NewMonitorError(tick int64, message string, err error) *MonitorError {
	return &MonitorError{Tick: tick, Message: message, Err: err}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
