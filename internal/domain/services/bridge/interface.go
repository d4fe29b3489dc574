// Package bridge dispatches transaction builds to the chain-specific
// builder for the source chain's execution model and normalizes send
// parameters into the wire-level form the builders consume.
package bridge

import (
	"context"

	"github.com/bridgecore-service/bridge_core/internal/domain/entities"
)

// ChainBridgeService builds raw transactions for one execution model.
type ChainBridgeService interface {
	// ChainType identifies the execution model this builder serves.
	ChainType() entities.ChainType

	// SendTx builds an unsigned cross-chain send transaction from
	// normalized parameters.
	SendTx(ctx context.Context, params *TxSendParams) (entities.RawTransaction, error)

	// BuildSwapTransaction builds a single-chain cross-token swap through
	// the bridge program.
	BuildSwapTransaction(ctx context.Context, params entities.SwapParams) (entities.RawTransaction, error)

	// BuildPoolOperation builds a liquidity pool deposit, withdrawal or
	// reward claim.
	BuildPoolOperation(ctx context.Context, kind entities.PoolOperationKind, params entities.PoolOperationParams) (entities.RawTransaction, error)
}
