package bridge

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bridgecore-service/bridge_core/internal/adapters/coreapi"
	"github.com/bridgecore-service/bridge_core/internal/domain/entities"
	domainerrors "github.com/bridgecore-service/bridge_core/internal/domain/errors"
	"github.com/bridgecore-service/bridge_core/internal/infrastructure/metrics"
	"github.com/bridgecore-service/bridge_core/pkg/logger"
)

type fakeBuilder struct {
	chainType entities.ChainType
	gotSend   *TxSendParams
	err       error
}

func (f *fakeBuilder) ChainType() entities.ChainType { return f.chainType }

func (f *fakeBuilder) SendTx(ctx context.Context, params *TxSendParams) (entities.RawTransaction, error) {
	f.gotSend = params
	if f.err != nil {
		return nil, f.err
	}
	return &entities.SolanaRawTransaction{}, nil
}

func (f *fakeBuilder) BuildSwapTransaction(ctx context.Context, params entities.SwapParams) (entities.RawTransaction, error) {
	return &entities.SolanaRawTransaction{}, f.err
}

func (f *fakeBuilder) BuildPoolOperation(ctx context.Context, kind entities.PoolOperationKind, params entities.PoolOperationParams) (entities.RawTransaction, error) {
	return &entities.SolanaRawTransaction{}, f.err
}

type stubCoreAPI struct {
	coreapi.Service
	fee   string
	calls int
}

func (s *stubCoreAPI) GetReceiveTransactionCost(ctx context.Context, req coreapi.ReceiveTransactionCostRequest) (*coreapi.ReceiveTransactionCostResponse, error) {
	s.calls++
	return &coreapi.ReceiveTransactionCostResponse{Fee: s.fee, SourceNativeTokenPrice: "100"}, nil
}

func solToken() entities.TokenDescriptor {
	return entities.TokenDescriptor{
		Chain: entities.ChainDescriptor{
			ChainSymbol: entities.ChainSymbolSol,
			ChainType:   entities.ChainTypeSolana,
			ChainID:     4,
		},
		TokenAddress: solana.NewWallet().PublicKey().String(),
		Decimals:     6,
		Symbol:       "USDC",
	}
}

func ethToken() entities.TokenDescriptor {
	return entities.TokenDescriptor{
		Chain: entities.ChainDescriptor{
			ChainSymbol: entities.ChainSymbolEth,
			ChainType:   entities.ChainTypeEvm,
			ChainID:     2,
		},
		TokenAddress: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
		Decimals:     6,
		Symbol:       "USDC",
	}
}

func newTestService(api coreapi.Service, builders ...ChainBridgeService) *Service {
	m := metrics.New(prometheus.NewRegistry())
	return NewService(api, m, logger.NewNop(), builders...)
}

func TestAddressToBytes32(t *testing.T) {
	t.Run("solana round trip", func(t *testing.T) {
		key := solana.NewWallet().PublicKey()
		got, err := AddressToBytes32(entities.ChainTypeSolana, key.String())
		require.NoError(t, err)
		assert.Equal(t, key[:], got[:])
	})

	t.Run("evm left padded", func(t *testing.T) {
		got, err := AddressToBytes32(entities.ChainTypeEvm, "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
		require.NoError(t, err)
		assert.Equal(t, make([]byte, 12), got[:12])
		assert.Equal(t, byte(0xA0), got[12])
		assert.Equal(t, byte(0x48), got[31])
	})

	t.Run("invalid addresses", func(t *testing.T) {
		_, err := AddressToBytes32(entities.ChainTypeSolana, "not-base58!")
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidInput))

		_, err = AddressToBytes32(entities.ChainTypeEvm, "0x123")
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidInput))
	})
}

func TestBuildSendTransaction_Normalization(t *testing.T) {
	builder := &fakeBuilder{chainType: entities.ChainTypeSolana}
	api := &stubCoreAPI{fee: "5000"}
	s := newTestService(api, builder)

	dest := ethToken()
	_, err := s.BuildSendTransaction(context.Background(), entities.SendParams{
		Amount:             big.NewInt(1_000_000),
		FromAccountAddress: solana.NewWallet().PublicKey().String(),
		ToAccountAddress:   "0x68b3465833fb72A70ecDF485E0e4C7bD8665Fc45",
		SourceToken:        solToken(),
		DestinationToken:   dest,
		Messenger:          entities.MessengerAllbridge,
		Fee:                big.NewInt(7000),
	})
	require.NoError(t, err)
	require.NotNil(t, builder.gotSend)

	got := builder.gotSend
	assert.Equal(t, big.NewInt(1_000_000), got.Amount)
	assert.Equal(t, 2, got.DestinationChainID)
	assert.Equal(t, big.NewInt(7000), got.Fee)
	assert.Equal(t, entities.FeePaymentWithNative, got.FeePaymentMethod)
	assert.NotEqual(t, [32]byte{}, got.Nonce, "nonce must be generated")
	assert.Equal(t, 0, api.calls, "explicit fee must not hit the oracle")

	// receive token is the destination token address left-padded
	want, err := AddressToBytes32(entities.ChainTypeEvm, dest.TokenAddress)
	require.NoError(t, err)
	assert.Equal(t, want, got.ReceiveTokenAddress)
}

func TestBuildSendTransaction_FeeDefaultsFromOracle(t *testing.T) {
	builder := &fakeBuilder{chainType: entities.ChainTypeSolana}
	api := &stubCoreAPI{fee: "12345"}
	s := newTestService(api, builder)

	_, err := s.BuildSendTransaction(context.Background(), entities.SendParams{
		Amount:             big.NewInt(1_000_000),
		FromAccountAddress: solana.NewWallet().PublicKey().String(),
		ToAccountAddress:   "0x68b3465833fb72A70ecDF485E0e4C7bD8665Fc45",
		SourceToken:        solToken(),
		DestinationToken:   ethToken(),
		Messenger:          entities.MessengerWormhole,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, api.calls)
	assert.Equal(t, big.NewInt(12345), builder.gotSend.Fee)
}

func TestBuildSendTransaction_InvalidAmount(t *testing.T) {
	s := newTestService(&stubCoreAPI{}, &fakeBuilder{chainType: entities.ChainTypeSolana})

	for _, amount := range []*big.Int{nil, big.NewInt(0), big.NewInt(-5)} {
		_, err := s.BuildSendTransaction(context.Background(), entities.SendParams{
			Amount:           amount,
			SourceToken:      solToken(),
			DestinationToken: ethToken(),
		})
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidInput), "amount %v", amount)
	}
}

func TestBuildSendTransaction_UnregisteredChain(t *testing.T) {
	s := newTestService(&stubCoreAPI{}) // no builders

	_, err := s.BuildSendTransaction(context.Background(), entities.SendParams{
		Amount:           big.NewInt(1),
		SourceToken:      solToken(),
		DestinationToken: ethToken(),
	})
	assert.True(t, errors.Is(err, domainerrors.ErrMethodNotSupported))
}

func TestBuildSwapTransaction_RejectsCrossChain(t *testing.T) {
	s := newTestService(&stubCoreAPI{}, &fakeBuilder{chainType: entities.ChainTypeSolana})

	_, err := s.BuildSwapTransaction(context.Background(), entities.SwapParams{
		Amount:           big.NewInt(100),
		SourceToken:      solToken(),
		DestinationToken: ethToken(),
	})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidInput))
}

func TestBuildPoolOperation_ClaimSkipsAmountCheck(t *testing.T) {
	builder := &fakeBuilder{chainType: entities.ChainTypeSolana}
	s := newTestService(&stubCoreAPI{}, builder)

	_, err := s.BuildPoolOperation(context.Background(), entities.PoolOperationClaim, entities.PoolOperationParams{
		AccountAddress: solana.NewWallet().PublicKey().String(),
		Token:          solToken(),
	})
	assert.NoError(t, err)

	_, err = s.BuildPoolOperation(context.Background(), entities.PoolOperationDeposit, entities.PoolOperationParams{
		AccountAddress: solana.NewWallet().PublicKey().String(),
		Token:          solToken(),
	})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidInput))
}
