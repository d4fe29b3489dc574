// Package fee resolves the relayer fee into source-chain native currency
// units, converting stablecoin-denominated requests through the cost
// oracle's native token price.
package fee

import (
	"context"
	"math/big"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bridgecore-service/bridge_core/internal/adapters/coreapi"
	"github.com/bridgecore-service/bridge_core/internal/domain/entities"
	domainerrors "github.com/bridgecore-service/bridge_core/internal/domain/errors"
)

// Request carries everything fee resolution needs.
type Request struct {
	SourceChain        entities.ChainDescriptor
	DestinationChainID int
	Messenger          entities.Messenger
	TokenDecimals      int
	Fee                *big.Int // in native units (NATIVE) or token units (STABLECOIN)
	ExtraGas           *big.Int // same denomination as Fee; may be nil
	Method             entities.FeePaymentMethod
}

// Resolver produces a ResolvedFee for a transfer request.
type Resolver struct {
	api    coreapi.Service
	logger *zap.Logger
}

// NewResolver creates a new fee resolver
func NewResolver(api coreapi.Service, logger *zap.Logger) *Resolver {
	return &Resolver{api: api, logger: logger}
}

// Resolve converts the requested fee into native currency units. A NATIVE
// request passes through unchanged; a STABLECOIN request is divided by the
// oracle's source native token price and rescaled from token decimals to
// native decimals, flooring. Resolution is idempotent for identical inputs
// and a fixed oracle price.
func (r *Resolver) Resolve(ctx context.Context, req Request) (entities.ResolvedFee, error) {
	if req.Method != entities.FeePaymentWithStablecoin {
		return entities.ResolvedFee{
			Method:   entities.FeePaymentWithNative,
			Fee:      new(big.Int).Set(req.Fee),
			ExtraGas: copyOrNil(req.ExtraGas),
		}, nil
	}

	cost, err := r.api.GetReceiveTransactionCost(ctx, coreapi.ReceiveTransactionCostRequest{
		SourceChainID:      req.SourceChain.ChainID,
		DestinationChainID: req.DestinationChainID,
		Messenger:          req.Messenger,
	})
	if err != nil {
		return entities.ResolvedFee{}, err
	}

	price, err := decimal.NewFromString(cost.SourceNativeTokenPrice)
	if err != nil || price.Sign() <= 0 {
		return entities.ResolvedFee{}, domainerrors.New(domainerrors.ErrExternalDependency,
			"oracle returned invalid native token price %q for chain %s",
			cost.SourceNativeTokenPrice, req.SourceChain.ChainSymbol)
	}

	scale := req.SourceChain.NativeDecimals() - req.TokenDecimals
	resolved := entities.ResolvedFee{
		Method: entities.FeePaymentWithNative,
		Fee:    convertToNative(req.Fee, price, scale),
	}
	if req.ExtraGas != nil && req.ExtraGas.Sign() > 0 {
		resolved.ExtraGas = convertToNative(req.ExtraGas, price, scale)
	}

	r.logger.Debug("Resolved stablecoin fee to native currency",
		zap.String("chain", string(req.SourceChain.ChainSymbol)),
		zap.String("messenger", req.Messenger.String()),
		zap.String("price", price.String()),
		zap.String("fee", resolved.Fee.String()))
	return resolved, nil
}

// convertToNative computes floor(amount / price * 10^scale) exactly: with
// price = coefficient * 10^exponent this is
// floor(amount * 10^(scale-exponent) / coefficient), all in integers so the
// result never drifts from the on-chain rounding.
func convertToNative(amount *big.Int, price decimal.Decimal, scale int) *big.Int {
	numerator := new(big.Int).Set(amount)
	exp := scale - int(price.Exponent())
	switch {
	case exp > 0:
		numerator.Mul(numerator, pow10(exp))
	case exp < 0:
		// rare: price with a positive exponent larger than the scale
		return numerator.Quo(numerator, new(big.Int).Mul(price.Coefficient(), pow10(-exp)))
	}
	return numerator.Quo(numerator, price.Coefficient())
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

func copyOrNil(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}
