package bridge

import (
	"context"
	"math/big"

	"go.uber.org/zap"

	"github.com/bridgecore-service/bridge_core/internal/adapters/coreapi"
	"github.com/bridgecore-service/bridge_core/internal/domain/entities"
	domainerrors "github.com/bridgecore-service/bridge_core/internal/domain/errors"
	"github.com/bridgecore-service/bridge_core/internal/infrastructure/metrics"
)

// Service is the top-level transaction builder. It validates and normalizes
// requests, then dispatches to the builder registered for the source
// chain's execution model.
type Service struct {
	api     coreapi.Service
	chains  map[entities.ChainType]ChainBridgeService
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewService creates the dispatcher over the given chain builders.
func NewService(api coreapi.Service, m *metrics.Metrics, logger *zap.Logger, builders ...ChainBridgeService) *Service {
	chains := make(map[entities.ChainType]ChainBridgeService, len(builders))
	for _, b := range builders {
		chains[b.ChainType()] = b
	}
	return &Service{api: api, chains: chains, metrics: m, logger: logger}
}

// BuildSendTransaction builds an unsigned cross-chain send transaction.
func (s *Service) BuildSendTransaction(ctx context.Context, params entities.SendParams) (entities.RawTransaction, error) {
	chain := params.SourceToken.Chain
	builder, err := s.chainService(chain.ChainType)
	if err != nil {
		return nil, err
	}

	txParams, err := s.prepareTxSendParams(ctx, params)
	if err != nil {
		s.metrics.RecordBuild(string(chain.ChainSymbol), params.Messenger.String(), metrics.OutcomeFailure)
		return nil, err
	}

	tx, err := builder.SendTx(ctx, txParams)
	if err != nil {
		s.metrics.RecordBuild(string(chain.ChainSymbol), params.Messenger.String(), metrics.OutcomeFailure)
		return nil, err
	}
	s.metrics.RecordBuild(string(chain.ChainSymbol), params.Messenger.String(), metrics.OutcomeSuccess)
	s.logger.Info("Built send transaction",
		zap.String("chain", string(chain.ChainSymbol)),
		zap.String("messenger", params.Messenger.String()),
		zap.String("amount", txParams.Amount.String()))
	return tx, nil
}

// BuildSwapTransaction builds a single-chain cross-token swap through the
// bridge program. Source and destination tokens must live on the same chain.
func (s *Service) BuildSwapTransaction(ctx context.Context, params entities.SwapParams) (entities.RawTransaction, error) {
	if params.SourceToken.Chain.ChainSymbol != params.DestinationToken.Chain.ChainSymbol {
		return nil, domainerrors.New(domainerrors.ErrInvalidInput,
			"swap requires both tokens on one chain, got %s and %s",
			params.SourceToken.Chain.ChainSymbol, params.DestinationToken.Chain.ChainSymbol)
	}
	if err := validateAmount(params.Amount); err != nil {
		return nil, err
	}
	builder, err := s.chainService(params.SourceToken.Chain.ChainType)
	if err != nil {
		return nil, err
	}
	return builder.BuildSwapTransaction(ctx, params)
}

// BuildPoolOperation builds a liquidity pool deposit, withdrawal or reward
// claim on the token's chain.
func (s *Service) BuildPoolOperation(ctx context.Context, kind entities.PoolOperationKind, params entities.PoolOperationParams) (entities.RawTransaction, error) {
	if kind != entities.PoolOperationClaim {
		if err := validateAmount(params.Amount); err != nil {
			return nil, err
		}
	}
	builder, err := s.chainService(params.Token.Chain.ChainType)
	if err != nil {
		return nil, err
	}
	return builder.BuildPoolOperation(ctx, kind, params)
}

func (s *Service) chainService(chainType entities.ChainType) (ChainBridgeService, error) {
	builder, ok := s.chains[chainType]
	if !ok {
		return nil, domainerrors.New(domainerrors.ErrMethodNotSupported,
			"no builder registered for chain type %q", chainType)
	}
	return builder, nil
}

// prepareTxSendParams validates the request and converts it to wire form.
// A missing fee is filled from the cost oracle in native denomination.
func (s *Service) prepareTxSendParams(ctx context.Context, params entities.SendParams) (*TxSendParams, error) {
	if err := validateAmount(params.Amount); err != nil {
		return nil, err
	}

	destChain := params.DestinationToken.Chain
	toAccount, err := AddressToBytes32(destChain.ChainType, params.ToAccountAddress)
	if err != nil {
		return nil, err
	}
	receiveToken, err := AddressToBytes32(destChain.ChainType, params.DestinationToken.TokenAddress)
	if err != nil {
		return nil, err
	}
	nonce, err := newNonce()
	if err != nil {
		return nil, err
	}

	method := params.FeePaymentMethod
	if method == "" {
		method = entities.FeePaymentWithNative
	}

	fee := params.Fee
	if fee == nil {
		if method != entities.FeePaymentWithNative {
			return nil, domainerrors.New(domainerrors.ErrInvalidInput,
				"fee amount is required when paying with stablecoin")
		}
		cost, err := s.api.GetReceiveTransactionCost(ctx, coreapi.ReceiveTransactionCostRequest{
			SourceChainID:      params.SourceToken.Chain.ChainID,
			DestinationChainID: destChain.ChainID,
			Messenger:          params.Messenger,
		})
		if err != nil {
			return nil, err
		}
		fee, err = parseAmount(cost.Fee)
		if err != nil {
			return nil, domainerrors.New(domainerrors.ErrExternalDependency,
				"oracle returned invalid fee %q", cost.Fee)
		}
	}

	return &TxSendParams{
		Amount:              new(big.Int).Set(params.Amount),
		FromAccountAddress:  params.FromAccountAddress,
		SourceToken:         params.SourceToken,
		DestinationChainID:  destChain.ChainID,
		ToAccountAddress:    toAccount,
		ReceiveTokenAddress: receiveToken,
		Messenger:           params.Messenger,
		Fee:                 fee,
		ExtraGas:            params.ExtraGas,
		FeePaymentMethod:    method,
		Nonce:               nonce,
	}, nil
}

func validateAmount(amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return domainerrors.New(domainerrors.ErrInvalidInput, "amount must be positive")
	}
	return nil
}

func parseAmount(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, domainerrors.New(domainerrors.ErrInvalidInput, "invalid amount %q", s)
	}
	return v, nil
}
