// Package evmrpc wraps an EVM JSON-RPC client behind the narrow Provider
// interface the transaction builder depends on.
package evmrpc

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	domainerrors "github.com/bridgecore-service/bridge_core/internal/domain/errors"
	"github.com/bridgecore-service/bridge_core/pkg/retry"
)

// Client represents an EVM RPC provider
type Client struct {
	eth     *ethclient.Client
	retrier *retry.Retrier
	logger  *zap.Logger
}

// NewClient creates a new provider over the given RPC endpoint
func NewClient(rpcURL string, logger *zap.Logger) (*Client, error) {
	eth, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrExternalDependency, err,
			"dial EVM RPC endpoint failed")
	}
	policy := retry.Policy{
		MaxRetries:     2,
		InitialBackoff: 200 * time.Millisecond,
		MaxBackoff:     2 * time.Second,
		Jitter:         true,
	}
	return &Client{
		eth:     eth,
		retrier: retry.NewRetrier(policy, logger),
		logger:  logger,
	}, nil
}

// CallContract executes a read-only contract call at the latest block
func (c *Client) CallContract(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	msg := ethereum.CallMsg{To: &to, Data: data}
	var result []byte
	err := c.retrier.Do(ctx, func() error {
		var err error
		result, err = c.eth.CallContract(ctx, msg, nil)
		return err
	})
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrExternalDependency, err,
			"contract call to %s failed", to)
	}
	return result, nil
}
