package solanarpc

import (
	"context"

	"github.com/gagliardetto/solana-go"
)

// Provider defines the chain reads the Solana transaction builder needs.
// Implementations must be safe for concurrent use across builds.
type Provider interface {
	// LatestBlockhash returns the current recency token.
	LatestBlockhash(ctx context.Context) (solana.Hash, error)

	// AccountData returns an account's raw data.
	AccountData(ctx context.Context, account solana.PublicKey) ([]byte, error)

	// AccountExists reports whether an account exists.
	AccountExists(ctx context.Context, account solana.PublicKey) (bool, error)

	// LookupTable resolves the addresses of an address lookup table.
	LookupTable(ctx context.Context, table solana.PublicKey) (solana.PublicKeySlice, error)
}

// Ensure Client implements Provider
var _ Provider = (*Client)(nil)
