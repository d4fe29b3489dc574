package evmrpc

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// Provider defines the contract reads the EVM transaction builder needs.
// Implementations must be safe for concurrent use across builds.
type Provider interface {
	// CallContract executes a read-only contract call and returns the raw
	// ABI-encoded result.
	CallContract(ctx context.Context, to common.Address, data []byte) ([]byte, error)
}

// Ensure Client implements Provider
var _ Provider = (*Client)(nil)
