// Package errors provides the typed error taxonomy for the bridge
// transaction builder. Every failure surfaced to callers wraps one of the
// sentinel categories below so that callers can branch with errors.Is
// without parsing messages.
package errors

import (
	"errors"
	"fmt"
)

// Error categories
var (
	// ErrAmountNotEnough indicates the transferable amount after fee
	// deduction is zero or negative.
	ErrAmountNotEnough = errors.New("amount not enough to pay fee")

	// ErrUnsupportedRoute indicates the requested messenger is not
	// configured for the chain pair (e.g. a missing CCTP domain).
	ErrUnsupportedRoute = errors.New("route not supported")

	// ErrAggregator indicates the swap aggregator failed to quote or to
	// build the swap transaction fragment.
	ErrAggregator = errors.New("aggregator swap failed")

	// ErrDerivation indicates malformed derivation seeds. This is a
	// programming defect and is never retried.
	ErrDerivation = errors.New("account derivation failed")

	// ErrExternalDependency indicates the catalog, RPC node or cost oracle
	// was unreachable or returned malformed data.
	ErrExternalDependency = errors.New("external dependency failed")

	// ErrMethodNotSupported indicates the execution model does not
	// implement the requested capability.
	ErrMethodNotSupported = errors.New("method not supported")

	// ErrZeroLiquidity indicates a pool with no liquidity; conversions
	// through the invariant curve are undefined.
	ErrZeroLiquidity = errors.New("pool has no liquidity")

	// ErrInvalidInput indicates invalid caller-supplied parameters.
	ErrInvalidInput = errors.New("invalid input")
)

// BridgeError carries a category plus diagnostic context.
type BridgeError struct {
	Err     error // category sentinel
	Cause   error // underlying failure, nil for caller mistakes
	Message string
	Details map[string]interface{}
}

// Error implements the error interface. The cause's text is part of the
// message so nothing is lost when the error is logged as a string.
func (e *BridgeError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if len(e.Details) > 0 {
		msg = fmt.Sprintf("%s (details: %v)", msg, e.Details)
	}
	return msg
}

// Unwrap exposes the category sentinel and the cause for errors.Is/As.
func (e *BridgeError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

// New creates a BridgeError in the given category.
func New(category error, format string, args ...interface{}) *BridgeError {
	return &BridgeError{
		Err:     category,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a BridgeError that keeps both the category and the cause on
// the unwrap chain.
func Wrap(category error, cause error, format string, args ...interface{}) *BridgeError {
	return &BridgeError{
		Err:     category,
		Cause:   cause,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithDetails attaches diagnostic context to the error.
func (e *BridgeError) WithDetails(details map[string]interface{}) *BridgeError {
	e.Details = details
	return e
}
