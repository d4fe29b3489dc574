package evm

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"github.com/bridgecore-service/bridge_core/internal/adapters/evmrpc"
	"github.com/bridgecore-service/bridge_core/internal/domain/entities"
	domainerrors "github.com/bridgecore-service/bridge_core/internal/domain/errors"
)

// rewardShift is the fixed-point precision of accRewardPerShareP on the
// pool contracts.
const rewardShift = 52

// poolReadMethods are the independent pool state getters; they are read
// concurrently and joined into one snapshot.
var poolReadMethods = [...]string{
	"a", "d", "tokenBalance", "vUsdBalance", "totalLpAmount", "accRewardPerShareP",
}

// PoolInfo reads a pool's state from the chain. The six getters are issued
// concurrently; a snapshot is never partially populated.
func (s *Service) PoolInfo(ctx context.Context, token entities.TokenDescriptor) (entities.PoolInfo, error) {
	provider, poolAddress, err := s.poolTarget(token)
	if err != nil {
		return entities.PoolInfo{}, err
	}

	values := make([]*big.Int, len(poolReadMethods))
	g, gctx := errgroup.WithContext(ctx)
	for i, method := range poolReadMethods {
		g.Go(func() error {
			value, callErr := s.readPoolValue(gctx, provider, poolAddress, method)
			if callErr != nil {
				return callErr
			}
			values[i] = value
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return entities.PoolInfo{}, err
	}

	return entities.PoolInfo{
		AValue:             values[0],
		DValue:             values[1],
		TokenBalance:       values[2],
		VUsdBalance:        values[3],
		TotalLpAmount:      values[4],
		AccRewardPerShareP: values[5],
		P:                  rewardShift,
	}, nil
}

// UserBalanceInfo reads a user's liquidity position in a token's pool.
func (s *Service) UserBalanceInfo(ctx context.Context, accountAddress string, token entities.TokenDescriptor) (entities.UserBalanceInfo, error) {
	provider, poolAddress, err := s.poolTarget(token)
	if err != nil {
		return entities.UserBalanceInfo{}, err
	}
	if !common.IsHexAddress(accountAddress) {
		return entities.UserBalanceInfo{}, domainerrors.New(domainerrors.ErrInvalidInput,
			"invalid account address %q", accountAddress)
	}

	_, _, plABI, err := contractABIs()
	if err != nil {
		return entities.UserBalanceInfo{}, domainerrors.Wrap(domainerrors.ErrInvalidInput, err,
			"parse contract ABI failed")
	}
	data, err := plABI.Pack("userInfo", common.HexToAddress(accountAddress))
	if err != nil {
		return entities.UserBalanceInfo{}, domainerrors.Wrap(domainerrors.ErrInvalidInput, err,
			"encode userInfo call failed")
	}

	out, err := provider.CallContract(ctx, poolAddress, data)
	if err != nil {
		return entities.UserBalanceInfo{}, err
	}
	results, err := plABI.Unpack("userInfo", out)
	if err != nil || len(results) != 2 {
		return entities.UserBalanceInfo{}, domainerrors.Wrap(domainerrors.ErrExternalDependency, err,
			"decode userInfo result failed")
	}
	lpAmount, lpOk := results[0].(*big.Int)
	rewardDebt, debtOk := results[1].(*big.Int)
	if !lpOk || !debtOk {
		return entities.UserBalanceInfo{}, domainerrors.New(domainerrors.ErrExternalDependency,
			"userInfo result has unexpected types")
	}
	return entities.UserBalanceInfo{LpAmount: lpAmount, RewardDebt: rewardDebt}, nil
}

func (s *Service) poolTarget(token entities.TokenDescriptor) (evmrpc.Provider, common.Address, error) {
	provider, ok := s.providers[token.Chain.ChainSymbol]
	if !ok {
		return nil, common.Address{}, domainerrors.New(domainerrors.ErrExternalDependency,
			"no RPC endpoint configured for chain %s", token.Chain.ChainSymbol)
	}
	if !common.IsHexAddress(token.PoolAddress) {
		return nil, common.Address{}, domainerrors.New(domainerrors.ErrInvalidInput,
			"invalid pool address %q", token.PoolAddress)
	}
	return provider, common.HexToAddress(token.PoolAddress), nil
}

func (s *Service) readPoolValue(ctx context.Context, provider evmrpc.Provider, pool common.Address, method string) (*big.Int, error) {
	_, _, plABI, err := contractABIs()
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrInvalidInput, err, "parse contract ABI failed")
	}
	data, err := plABI.Pack(method)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrInvalidInput, err,
			"encode %s call failed", method)
	}
	out, err := provider.CallContract(ctx, pool, data)
	if err != nil {
		return nil, err
	}
	results, err := plABI.Unpack(method, out)
	if err != nil || len(results) != 1 {
		return nil, domainerrors.Wrap(domainerrors.ErrExternalDependency, err,
			"decode %s result failed", method)
	}
	value, ok := results[0].(*big.Int)
	if !ok {
		return nil, domainerrors.New(domainerrors.ErrExternalDependency,
			"%s result has unexpected type", method)
	}
	return value, nil
}
