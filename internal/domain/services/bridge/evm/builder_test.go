package evm

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bridgecore-service/bridge_core/internal/adapters/coreapi"
	"github.com/bridgecore-service/bridge_core/internal/domain/entities"
	domainerrors "github.com/bridgecore-service/bridge_core/internal/domain/errors"
	"github.com/bridgecore-service/bridge_core/internal/domain/services/bridge"
	"github.com/bridgecore-service/bridge_core/pkg/logger"
)

type stubCoreAPI struct {
	coreapi.Service
	gasPrice *big.Int
	calls    int
}

func (s *stubCoreAPI) GetGasPriceSuggestion(ctx context.Context, chainSymbol entities.ChainSymbol) (*big.Int, error) {
	s.calls++
	return s.gasPrice, nil
}

func ethChain() entities.ChainDescriptor {
	return entities.ChainDescriptor{
		ChainSymbol:   entities.ChainSymbolEth,
		ChainType:     entities.ChainTypeEvm,
		ChainID:       2,
		BridgeAddress: "0x609c690e8F7D68a59885c9132e812eEbDaAf0c9e",
		CctpAddress:   "0x2F1dAcE76695E8045EAcf5d55A95E8a866cA18a0",
	}
}

func usdt() entities.TokenDescriptor {
	return entities.TokenDescriptor{
		Chain:        ethChain(),
		TokenAddress: "0xdAC17F958D2ee523a2206206994597C13D831ec7",
		Decimals:     6,
		Symbol:       "USDT",
		PoolAddress:  "0x7DBF07Ad92Ed4e26D5511b4F285508eBF174135D",
	}
}

func sendParams(messenger entities.Messenger) *bridge.TxSendParams {
	params := &bridge.TxSendParams{
		Amount:             big.NewInt(1_000_000),
		FromAccountAddress: "0x68b3465833fb72A70ecDF485E0e4C7bD8665Fc45",
		SourceToken:        usdt(),
		DestinationChainID: 4,
		Messenger:          messenger,
		Fee:                big.NewInt(40_000_000_000_000),
		FeePaymentMethod:   entities.FeePaymentWithNative,
	}
	params.Nonce[31] = 9
	params.ToAccountAddress[0] = 1
	params.ReceiveTokenAddress[0] = 2
	return params
}

func TestSendTx_SwapAndBridge(t *testing.T) {
	s := NewService(&stubCoreAPI{}, nil, logger.NewNop())

	raw, err := s.SendTx(context.Background(), sendParams(entities.MessengerAllbridge))
	require.NoError(t, err)

	tx, ok := raw.(*entities.EvmRawTransaction)
	require.True(t, ok)
	assert.Equal(t, common.HexToAddress(ethChain().BridgeAddress), tx.To)
	assert.Equal(t, big.NewInt(40_000_000_000_000), tx.Value, "native fee rides as call value")

	brABI, _, _, err := contractABIs()
	require.NoError(t, err)
	method, err := brABI.MethodById(tx.Data[:4])
	require.NoError(t, err)
	assert.Equal(t, "swapAndBridge", method.Name)

	args, err := method.Inputs.Unpack(tx.Data[4:])
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1_000_000), args[1])
	assert.Equal(t, uint8(4), args[3])
	assert.Equal(t, big.NewInt(9), args[5], "nonce packs as uint256")
	assert.Equal(t, uint8(entities.MessengerAllbridge), args[6])
	assert.Zero(t, big.NewInt(0).Cmp(args[7].(*big.Int)), "no stablecoin fee on the native path")
}

func TestSendTx_StablecoinFeeBecomesTokenAmount(t *testing.T) {
	s := NewService(&stubCoreAPI{}, nil, logger.NewNop())

	params := sendParams(entities.MessengerWormhole)
	params.Fee = big.NewInt(500_000)
	params.ExtraGas = big.NewInt(100_000)
	params.FeePaymentMethod = entities.FeePaymentWithStablecoin

	raw, err := s.SendTx(context.Background(), params)
	require.NoError(t, err)

	tx := raw.(*entities.EvmRawTransaction)
	assert.Equal(t, big.NewInt(0), tx.Value)

	brABI, _, _, err := contractABIs()
	require.NoError(t, err)
	method, err := brABI.MethodById(tx.Data[:4])
	require.NoError(t, err)
	args, err := method.Inputs.Unpack(tx.Data[4:])
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(600_000), args[7], "fee plus extra gas in token units")
}

func TestSendTx_CctpTargetsCctpBridge(t *testing.T) {
	s := NewService(&stubCoreAPI{}, nil, logger.NewNop())

	raw, err := s.SendTx(context.Background(), sendParams(entities.MessengerCctp))
	require.NoError(t, err)

	tx := raw.(*entities.EvmRawTransaction)
	assert.Equal(t, common.HexToAddress(ethChain().CctpAddress), tx.To)

	_, cctpABI, _, err := contractABIs()
	require.NoError(t, err)
	method, err := cctpABI.MethodById(tx.Data[:4])
	require.NoError(t, err)
	assert.Equal(t, "bridge", method.Name)
}

func TestSendTx_CctpWithoutAddress(t *testing.T) {
	s := NewService(&stubCoreAPI{}, nil, logger.NewNop())

	params := sendParams(entities.MessengerCctp)
	params.SourceToken.Chain.CctpAddress = ""

	_, err := s.SendTx(context.Background(), params)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnsupportedRoute))
}

func TestBuildSwapTransaction(t *testing.T) {
	s := NewService(&stubCoreAPI{}, nil, logger.NewNop())

	dest := usdt()
	dest.TokenAddress = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"

	raw, err := s.BuildSwapTransaction(context.Background(), entities.SwapParams{
		Amount:             big.NewInt(2_000_000),
		FromAccountAddress: "0x68b3465833fb72A70ecDF485E0e4C7bD8665Fc45",
		ToAccountAddress:   "0x68b3465833fb72A70ecDF485E0e4C7bD8665Fc45",
		SourceToken:        usdt(),
		DestinationToken:   dest,
	})
	require.NoError(t, err)

	tx := raw.(*entities.EvmRawTransaction)
	brABI, _, _, err := contractABIs()
	require.NoError(t, err)
	method, err := brABI.MethodById(tx.Data[:4])
	require.NoError(t, err)
	assert.Equal(t, "swap", method.Name)
}

func TestBuildPoolOperation(t *testing.T) {
	tests := []struct {
		kind   entities.PoolOperationKind
		method string
	}{
		{entities.PoolOperationDeposit, "deposit"},
		{entities.PoolOperationWithdraw, "withdraw"},
		{entities.PoolOperationClaim, "claimRewards"},
	}
	s := NewService(&stubCoreAPI{}, nil, logger.NewNop())

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			raw, err := s.BuildPoolOperation(context.Background(), tt.kind, entities.PoolOperationParams{
				AccountAddress: "0x68b3465833fb72A70ecDF485E0e4C7bD8665Fc45",
				Token:          usdt(),
				Amount:         big.NewInt(700),
			})
			require.NoError(t, err)

			tx := raw.(*entities.EvmRawTransaction)
			assert.Equal(t, common.HexToAddress(usdt().PoolAddress), tx.To)
			assert.Nil(t, tx.MaxPriorityFeePerGas)

			_, _, plABI, err := contractABIs()
			require.NoError(t, err)
			method, err := plABI.MethodById(tx.Data[:4])
			require.NoError(t, err)
			assert.Equal(t, tt.method, method.Name)
		})
	}
}

func TestBuildPoolOperation_PolygonPriorityFee(t *testing.T) {
	api := &stubCoreAPI{gasPrice: big.NewInt(35_000_000_000)}
	s := NewService(api, nil, logger.NewNop())

	token := usdt()
	token.Chain.ChainSymbol = entities.ChainSymbolPol

	raw, err := s.BuildPoolOperation(context.Background(), entities.PoolOperationDeposit, entities.PoolOperationParams{
		AccountAddress: "0x68b3465833fb72A70ecDF485E0e4C7bD8665Fc45",
		Token:          token,
		Amount:         big.NewInt(700),
	})
	require.NoError(t, err)

	tx := raw.(*entities.EvmRawTransaction)
	assert.Equal(t, 1, api.calls)
	assert.Equal(t, big.NewInt(35_000_000_000), tx.MaxPriorityFeePerGas)
}
