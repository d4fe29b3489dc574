package coreapi

import (
	"context"
	"math/big"

	"github.com/bridgecore-service/bridge_core/internal/domain/entities"
)

// Service defines the catalog and cost oracle operations the builder needs.
// Implementations must be safe for concurrent use across builds.
type Service interface {
	// GetChainDetailsMap fetches the full chain/token catalog.
	GetChainDetailsMap(ctx context.Context) (map[entities.ChainSymbol]ChainDetails, error)

	// GetPoolInfo fetches a fresh pool state snapshot.
	GetPoolInfo(ctx context.Context, chainSymbol entities.ChainSymbol, poolAddress string) (entities.PoolInfo, error)

	// GetReceiveTransactionCost quotes the relayer fee and the source
	// native token price for a chain pair and messenger.
	GetReceiveTransactionCost(ctx context.Context, req ReceiveTransactionCostRequest) (*ReceiveTransactionCostResponse, error)

	// GetGasPriceSuggestion returns a suggested priority fee for chains
	// that need one (Polygon), nil otherwise.
	GetGasPriceSuggestion(ctx context.Context, chainSymbol entities.ChainSymbol) (*big.Int, error)
}

// ChainDetails is the catalog entry for one chain with its tokens resolved
// to domain entities.
type ChainDetails struct {
	Chain  entities.ChainDescriptor
	Tokens []entities.TokenDescriptor
}

// Ensure Client implements Service
var _ Service = (*Client)(nil)
