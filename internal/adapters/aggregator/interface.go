package aggregator

import (
	"context"
	"math/big"

	"github.com/gagliardetto/solana-go"
)

// SwapFragment is the aggregator-built piece of a transaction that swaps a
// stablecoin into native currency. Instructions are bundled ahead of the
// bridge instructions in the same transaction; AmountIn is the stablecoin
// amount the swap consumes and must be deducted from the transfer.
type SwapFragment struct {
	Instructions         []solana.Instruction
	LookupTableAddresses []solana.PublicKey
	AmountIn             *big.Int
}

// Service quotes and builds an atomic swap of an input token into an exact
// amount of native currency on one chain.
type Service interface {
	// GetSwapTxForExactOut builds a swap of inputTokenMint into exactly
	// outAmount of the native currency for userAddress.
	GetSwapTxForExactOut(ctx context.Context, userAddress, inputTokenMint string, outAmount *big.Int) (*SwapFragment, error)
}

// Ensure Client implements Service
var _ Service = (*Client)(nil)
