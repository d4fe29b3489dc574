package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCauseInMessage(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrExternalDependency, cause, "cannot resolve bridge lookup table %s", "9xQe")

	assert.Equal(t, "cannot resolve bridge lookup table 9xQe: connection refused", err.Error())
	assert.True(t, errors.Is(err, ErrExternalDependency))
	assert.True(t, errors.Is(err, cause))
}

func TestWrapTraversesNestedCauses(t *testing.T) {
	inner := errors.New("status 502")
	middle := fmt.Errorf("request failed: %w", inner)
	err := Wrap(ErrAggregator, middle, "aggregator quote failed")

	assert.True(t, errors.Is(err, ErrAggregator))
	assert.True(t, errors.Is(err, inner))
	assert.Contains(t, err.Error(), "status 502")
}

func TestNewWithoutCause(t *testing.T) {
	err := New(ErrInvalidInput, "amount must be positive, got %d", -5)

	assert.Equal(t, "amount must be positive, got -5", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestWithDetails(t *testing.T) {
	err := New(ErrAmountNotEnough, "amount not enough to pay fee").
		WithDetails(map[string]interface{}{"amount": "500"})

	assert.Contains(t, err.Error(), "amount not enough to pay fee")
	assert.Contains(t, err.Error(), "amount:500")
	assert.True(t, errors.Is(err, ErrAmountNotEnough))
}
