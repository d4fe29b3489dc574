package evm

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/bridgecore-service/bridge_core/internal/adapters/coreapi"
	"github.com/bridgecore-service/bridge_core/internal/adapters/evmrpc"
	"github.com/bridgecore-service/bridge_core/internal/domain/entities"
	domainerrors "github.com/bridgecore-service/bridge_core/internal/domain/errors"
	"github.com/bridgecore-service/bridge_core/internal/domain/services/bridge"
)

// Service builds raw EVM transactions. It implements
// bridge.ChainBridgeService; the caller signs and submits the returned
// call data. Pool state reads go through the per-chain RPC providers.
type Service struct {
	api       coreapi.Service
	providers map[entities.ChainSymbol]evmrpc.Provider
	logger    *zap.Logger
}

var _ bridge.ChainBridgeService = (*Service)(nil)

// NewService creates the EVM transaction builder.
func NewService(api coreapi.Service, providers map[entities.ChainSymbol]evmrpc.Provider, logger *zap.Logger) *Service {
	return &Service{api: api, providers: providers, logger: logger}
}

// ChainType identifies the execution model this builder serves.
func (s *Service) ChainType() entities.ChainType {
	return entities.ChainTypeEvm
}

// SendTx builds the swapAndBridge contract call. The relayer fee rides as
// call value when paid in native currency, or as the feeTokenAmount
// argument when paid from the transfer stablecoin. CCTP transfers target
// the CCTP bridge contract instead.
func (s *Service) SendTx(ctx context.Context, params *bridge.TxSendParams) (entities.RawTransaction, error) {
	brABI, cctpABI, _, err := contractABIs()
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrInvalidInput, err, "parse contract ABI failed")
	}

	token, err := bridge.AddressToBytes32(entities.ChainTypeEvm, params.SourceToken.TokenAddress)
	if err != nil {
		return nil, err
	}
	if !common.IsHexAddress(params.FromAccountAddress) {
		return nil, domainerrors.New(domainerrors.ErrInvalidInput,
			"invalid sender address %q", params.FromAccountAddress)
	}
	from := common.HexToAddress(params.FromAccountAddress)

	value := big.NewInt(0)
	feeTokenAmount := big.NewInt(0)
	if params.FeePaymentMethod == entities.FeePaymentWithStablecoin {
		feeTokenAmount = new(big.Int).Set(params.Fee)
		if params.ExtraGas != nil {
			feeTokenAmount.Add(feeTokenAmount, params.ExtraGas)
		}
	} else {
		value = new(big.Int).Set(params.Fee)
		if params.ExtraGas != nil {
			value.Add(value, params.ExtraGas)
		}
	}

	var to common.Address
	var data []byte
	if params.Messenger == entities.MessengerCctp {
		cctpAddress := params.SourceToken.Chain.CctpAddress
		if cctpAddress == "" {
			return nil, domainerrors.New(domainerrors.ErrUnsupportedRoute,
				"CCTP is not available on %s", params.SourceToken.Chain.ChainSymbol)
		}
		to = common.HexToAddress(cctpAddress)
		data, err = cctpABI.Pack("bridge",
			token,
			params.Amount,
			params.ToAccountAddress,
			uint8(params.DestinationChainID),
			params.ReceiveTokenAddress,
			feeTokenAmount,
		)
	} else {
		to = common.HexToAddress(params.SourceToken.Chain.BridgeAddress)
		data, err = brABI.Pack("swapAndBridge",
			token,
			params.Amount,
			params.ToAccountAddress,
			uint8(params.DestinationChainID),
			params.ReceiveTokenAddress,
			new(big.Int).SetBytes(params.Nonce[:]),
			uint8(params.Messenger),
			feeTokenAmount,
		)
	}
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrInvalidInput, err,
			"encode bridge call failed")
	}

	s.logger.Info("Built evm send transaction",
		zap.String("chain", string(params.SourceToken.Chain.ChainSymbol)),
		zap.String("messenger", params.Messenger.String()),
		zap.String("amount", params.Amount.String()))
	return &entities.EvmRawTransaction{
		From:  from,
		To:    to,
		Value: value,
		Data:  data,
	}, nil
}

// BuildSwapTransaction builds the bridge contract's single-chain swap call.
func (s *Service) BuildSwapTransaction(ctx context.Context, params entities.SwapParams) (entities.RawTransaction, error) {
	brABI, _, _, err := contractABIs()
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrInvalidInput, err, "parse contract ABI failed")
	}

	token, err := bridge.AddressToBytes32(entities.ChainTypeEvm, params.SourceToken.TokenAddress)
	if err != nil {
		return nil, err
	}
	receiveToken, err := bridge.AddressToBytes32(entities.ChainTypeEvm, params.DestinationToken.TokenAddress)
	if err != nil {
		return nil, err
	}
	if !common.IsHexAddress(params.FromAccountAddress) || !common.IsHexAddress(params.ToAccountAddress) {
		return nil, domainerrors.New(domainerrors.ErrInvalidInput,
			"invalid account address in swap request")
	}

	minimumReceive := big.NewInt(0)
	if params.MinimumReceiveAmount != nil {
		minimumReceive = params.MinimumReceiveAmount
	}
	data, err := brABI.Pack("swap",
		params.Amount,
		token,
		receiveToken,
		common.HexToAddress(params.ToAccountAddress),
		minimumReceive,
	)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrInvalidInput, err,
			"encode swap call failed")
	}

	return &entities.EvmRawTransaction{
		From:  common.HexToAddress(params.FromAccountAddress),
		To:    common.HexToAddress(params.SourceToken.Chain.BridgeAddress),
		Value: big.NewInt(0),
		Data:  data,
	}, nil
}

// BuildPoolOperation builds a liquidity pool call. Polygon transactions
// carry the oracle's suggested priority fee.
func (s *Service) BuildPoolOperation(ctx context.Context, kind entities.PoolOperationKind, params entities.PoolOperationParams) (entities.RawTransaction, error) {
	_, _, plABI, err := contractABIs()
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrInvalidInput, err, "parse contract ABI failed")
	}

	if !common.IsHexAddress(params.AccountAddress) {
		return nil, domainerrors.New(domainerrors.ErrInvalidInput,
			"invalid account address %q", params.AccountAddress)
	}

	var data []byte
	switch kind {
	case entities.PoolOperationDeposit:
		data, err = plABI.Pack("deposit", params.Amount)
	case entities.PoolOperationWithdraw:
		data, err = plABI.Pack("withdraw", params.Amount)
	case entities.PoolOperationClaim:
		data, err = plABI.Pack("claimRewards")
	default:
		return nil, domainerrors.New(domainerrors.ErrMethodNotSupported,
			"unknown pool operation %q", kind)
	}
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrInvalidInput, err,
			"encode pool call failed")
	}

	tx := &entities.EvmRawTransaction{
		From:  common.HexToAddress(params.AccountAddress),
		To:    common.HexToAddress(params.Token.PoolAddress),
		Value: big.NewInt(0),
		Data:  data,
	}

	if params.Token.Chain.ChainSymbol == entities.ChainSymbolPol {
		priorityFee, feeErr := s.api.GetGasPriceSuggestion(ctx, params.Token.Chain.ChainSymbol)
		if feeErr != nil {
			return nil, feeErr
		}
		tx.MaxPriorityFeePerGas = priorityFee
	}
	return tx, nil
}
