// Package solanarpc wraps the Solana JSON-RPC client behind the narrow
// Provider interface the transaction builder depends on.
package solanarpc

import (
	"context"
	"errors"
	"time"

	"github.com/gagliardetto/solana-go"
	addresslookuptable "github.com/gagliardetto/solana-go/programs/address-lookup-table"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	domainerrors "github.com/bridgecore-service/bridge_core/internal/domain/errors"
	"github.com/bridgecore-service/bridge_core/pkg/retry"
)

// Client represents a Solana RPC provider
type Client struct {
	rpc     *rpc.Client
	retrier *retry.Retrier
	logger  *zap.Logger
}

// NewClient creates a new provider over the given RPC endpoint
func NewClient(rpcURL string, logger *zap.Logger) *Client {
	policy := retry.Policy{
		MaxRetries:     2,
		InitialBackoff: 200 * time.Millisecond,
		MaxBackoff:     2 * time.Second,
		Jitter:         true,
		// Missing accounts are a real answer, not a transient failure.
		RetryableFunc: func(err error) bool {
			return !errors.Is(err, rpc.ErrNotFound)
		},
	}
	return &Client{
		rpc:     rpc.New(rpcURL),
		retrier: retry.NewRetrier(policy, logger),
		logger:  logger,
	}
}

// LatestBlockhash returns the current recency token
func (c *Client) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	var result *rpc.GetLatestBlockhashResult
	err := c.retrier.Do(ctx, func() error {
		var err error
		result, err = c.rpc.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
		return err
	})
	if err != nil {
		return solana.Hash{}, domainerrors.Wrap(domainerrors.ErrExternalDependency, err,
			"get latest blockhash failed")
	}
	return result.Value.Blockhash, nil
}

// AccountData returns an account's raw data
func (c *Client) AccountData(ctx context.Context, account solana.PublicKey) ([]byte, error) {
	result, err := c.getAccountInfo(ctx, account)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrExternalDependency, err,
			"get account info failed for %s", account)
	}
	if result.Value == nil {
		return nil, domainerrors.New(domainerrors.ErrExternalDependency,
			"account %s does not exist", account)
	}
	return result.Value.Data.GetBinary(), nil
}

// AccountExists reports whether an account exists
func (c *Client) AccountExists(ctx context.Context, account solana.PublicKey) (bool, error) {
	result, err := c.getAccountInfo(ctx, account)
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return false, nil
		}
		return false, domainerrors.Wrap(domainerrors.ErrExternalDependency, err,
			"get account info failed for %s", account)
	}
	return result.Value != nil, nil
}

// LookupTable resolves the addresses of an address lookup table
func (c *Client) LookupTable(ctx context.Context, table solana.PublicKey) (solana.PublicKeySlice, error) {
	data, err := c.AccountData(ctx, table)
	if err != nil {
		return nil, err
	}
	state, err := addresslookuptable.DecodeAddressLookupTableState(data)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrExternalDependency, err,
			"decode lookup table %s failed", table)
	}
	return state.Addresses, nil
}

func (c *Client) getAccountInfo(ctx context.Context, account solana.PublicKey) (*rpc.GetAccountInfoResult, error) {
	var result *rpc.GetAccountInfoResult
	err := c.retrier.Do(ctx, func() error {
		var err error
		result, err = c.rpc.GetAccountInfo(ctx, account)
		return err
	})
	return result, err
}
