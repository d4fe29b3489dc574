// Package pool implements the stableswap-style invariant curve used to
// convert token amounts into the chain-agnostic normalized (vUSD) unit.
// All arithmetic is integer with floor rounding and must match the
// on-chain programs bit-for-bit; floating point is never used.
package pool

import (
	"math/big"

	"github.com/bridgecore-service/bridge_core/internal/domain/entities"
	domainerrors "github.com/bridgecore-service/bridge_core/internal/domain/errors"
)

// SystemPrecision is the number of decimals of the normalized unit. Pool
// balances are stored in system precision.
const SystemPrecision = 3

var (
	three = big.NewInt(3)
	four  = big.NewInt(4)
	eight = big.NewInt(8)
)

// ToSystemPrecision converts an integer amount in token decimals to system
// precision, flooring.
func ToSystemPrecision(amount *big.Int, decimals int) *big.Int {
	return convertPrecision(amount, decimals, SystemPrecision)
}

// FromSystemPrecision converts a system-precision amount to token decimals,
// flooring.
func FromSystemPrecision(amount *big.Int, decimals int) *big.Int {
	return convertPrecision(amount, SystemPrecision, decimals)
}

func convertPrecision(amount *big.Int, from, to int) *big.Int {
	if amount == nil {
		return big.NewInt(0)
	}
	result := new(big.Int).Set(amount)
	switch {
	case to > from:
		result.Mul(result, pow10(to-from))
	case to < from:
		result.Quo(result, pow10(from-to))
	}
	return result
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

// GetY solves the invariant curve for the output-side balance given the
// input-side balance x:
//
//	p = 4a(x - d) + d
//	y = (sqrt(p^2 + 4a * d^3 / x) - p) / 8a
//
// using integer square root and floor division, matching the on-chain
// formula.
func GetY(x, a, d *big.Int) (*big.Int, error) {
	if x == nil || a == nil || d == nil || x.Sign() == 0 || d.Sign() == 0 {
		return nil, domainerrors.New(domainerrors.ErrZeroLiquidity,
			"invariant curve undefined for empty pool (x=%v, d=%v)", x, d)
	}

	a4 := new(big.Int).Mul(a, four)
	a8 := new(big.Int).Mul(a, eight)

	// p = 4a(x - d) + d
	p := new(big.Int).Sub(x, d)
	p.Mul(p, a4)
	p.Add(p, d)

	// discriminant = p^2 + 4a * d^3 / x
	dCubed := new(big.Int).Exp(d, three, nil)
	term := new(big.Int).Mul(a4, dCubed)
	term.Quo(term, x)
	disc := new(big.Int).Mul(p, p)
	disc.Add(disc, term)

	y := new(big.Int).Sqrt(disc)
	y.Sub(y, p)
	y.Quo(y, a8)
	return y, nil
}

// VUsdAmount converts a token-native integer amount into the normalized
// unit through the pool's invariant curve:
//
//	vUsd = vUsdBalance - getY(tokenBalance + toSystemPrecision(amount))
//
// A pool with zero liquidity fails fast rather than returning zero.
func VUsdAmount(info entities.PoolInfo, amount *big.Int, tokenDecimals int) (*big.Int, error) {
	if amount == nil || amount.Sign() < 0 {
		return nil, domainerrors.New(domainerrors.ErrInvalidInput,
			"amount must not be negative, got %v", amount)
	}
	if info.DValue == nil || info.DValue.Sign() == 0 {
		return nil, domainerrors.New(domainerrors.ErrZeroLiquidity,
			"pool D value is zero, cannot compute normalized amount")
	}
	if amount.Sign() == 0 {
		return big.NewInt(0), nil
	}

	x := ToSystemPrecision(amount, tokenDecimals)
	x.Add(x, info.TokenBalance)

	y, err := GetY(x, info.AValue, info.DValue)
	if err != nil {
		return nil, err
	}

	vUsd := new(big.Int).Sub(info.VUsdBalance, y)
	if vUsd.Sign() < 0 {
		vUsd.SetInt64(0)
	}
	return vUsd, nil
}
