package sol

import (
	"context"
	"math/big"

	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bridgecore-service/bridge_core/internal/adapters/aggregator"
	"github.com/bridgecore-service/bridge_core/internal/adapters/solanarpc"
	"github.com/bridgecore-service/bridge_core/internal/domain/entities"
	domainerrors "github.com/bridgecore-service/bridge_core/internal/domain/errors"
	"github.com/bridgecore-service/bridge_core/internal/domain/services/bridge"
	"github.com/bridgecore-service/bridge_core/internal/domain/services/fee"
	"github.com/bridgecore-service/bridge_core/internal/domain/services/pool"
)

// Compute unit limits requested ahead of the bridge call.
const (
	computeUnitLimit     = 1_000_000
	cctpComputeUnitLimit = 2_000_000
)

// CctpParams configures the CCTP route: the Circle programs and the numeric
// Circle domain per destination chain id.
type CctpParams struct {
	TransmitterProgramID   solana.PublicKey
	TokenMessengerMinterID solana.PublicKey
	Domains                map[int]uint32
}

// Params holds the chain-wide addresses the builder needs beyond the
// per-token catalog data.
type Params struct {
	WormholeProgramID  solana.PublicKey
	LookupTableAddress solana.PublicKey
	Cctp               CctpParams
}

// Service builds unsigned Solana transactions. It implements
// bridge.ChainBridgeService.
type Service struct {
	params   Params
	provider solanarpc.Provider
	swaps    aggregator.Service
	fees     *fee.Resolver
	logger   *zap.Logger
}

var _ bridge.ChainBridgeService = (*Service)(nil)

// NewService creates the Solana transaction builder.
func NewService(params Params, provider solanarpc.Provider, swaps aggregator.Service, fees *fee.Resolver, logger *zap.Logger) *Service {
	return &Service{
		params:   params,
		provider: provider,
		swaps:    swaps,
		fees:     fees,
		logger:   logger,
	}
}

// ChainType identifies the execution model this builder serves.
func (s *Service) ChainType() entities.ChainType {
	return entities.ChainTypeSolana
}

// SendTx builds the cross-chain send transaction. When the fee is paid in
// stablecoin the aggregator's swap into native currency is merged ahead of
// the bridge instructions and its consumed input is deducted from the
// transfer amount.
func (s *Service) SendTx(ctx context.Context, params *bridge.TxSendParams) (entities.RawTransaction, error) {
	amount := new(big.Int).Set(params.Amount)
	extraGas := params.ExtraGas

	var fragment *aggregator.SwapFragment
	if params.FeePaymentMethod == entities.FeePaymentWithStablecoin {
		resolved, err := s.fees.Resolve(ctx, fee.Request{
			SourceChain:        params.SourceToken.Chain,
			DestinationChainID: params.DestinationChainID,
			Messenger:          params.Messenger,
			TokenDecimals:      params.SourceToken.Decimals,
			Fee:                params.Fee,
			ExtraGas:           params.ExtraGas,
			Method:             params.FeePaymentMethod,
		})
		if err != nil {
			return nil, err
		}
		extraGas = resolved.ExtraGas

		fragment, err = s.swaps.GetSwapTxForExactOut(ctx,
			params.FromAccountAddress, params.SourceToken.TokenAddress, resolved.Total())
		if err != nil {
			return nil, err
		}
		amount.Sub(amount, fragment.AmountIn)
		if amount.Sign() <= 0 {
			missing := decimal.NewFromBigInt(new(big.Int).Neg(amount), -int32(params.SourceToken.Decimals))
			return nil, domainerrors.New(domainerrors.ErrAmountNotEnough,
				"amount not enough to pay fee, %s %s is missing",
				missing.String(), params.SourceToken.Symbol).WithDetails(map[string]interface{}{
				"amount":   params.Amount.String(),
				"swapCost": fragment.AmountIn.String(),
			})
		}
	}

	var instructions []solana.Instruction
	var extraSigner *solana.PrivateKey
	var err error
	switch params.Messenger {
	case entities.MessengerAllbridge:
		data, prepErr := s.prepareSendData(ctx, params, amount, extraGas)
		if prepErr != nil {
			return nil, prepErr
		}
		instructions, err = s.buildAllbridgeInstructions(data)
	case entities.MessengerWormhole:
		data, prepErr := s.prepareSendData(ctx, params, amount, extraGas)
		if prepErr != nil {
			return nil, prepErr
		}
		instructions, extraSigner, err = s.buildWormholeInstructions(ctx, data)
	case entities.MessengerCctp:
		instructions, err = s.buildCctpInstructions(ctx, params, amount, extraGas)
	default:
		err = domainerrors.New(domainerrors.ErrUnsupportedRoute,
			"unknown messenger %d", params.Messenger)
	}
	if err != nil {
		return nil, err
	}

	tx, err := s.assemble(ctx, params.FromAccountAddress, instructions, fragment, extraSigner)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Built solana send transaction",
		zap.String("messenger", params.Messenger.String()),
		zap.String("amount", amount.String()),
		zap.Int("destinationChainId", params.DestinationChainID))
	return tx, nil
}

// sendData is everything the ALLBRIDGE and WORMHOLE instruction builders
// need, derived once per build.
type sendData struct {
	bridgeProgramID    solana.PublicKey
	amount             uint64
	vUsdAmount         uint64
	nonce              [32]byte
	recipient          [32]byte
	receiveToken       [32]byte
	destinationChainID int
	sourceChainID      int
	userAccount        solana.PublicKey
	mint               solana.PublicKey
	poolAccount        solana.PublicKey
	lockAccount        solana.PublicKey
	authority          solana.PublicKey
	userToken          solana.PublicKey
	bridgeToken        solana.PublicKey
	chainBridge        solana.PublicKey
	otherBridgeToken   solana.PublicKey
	configAccount      solana.PublicKey
	config             bridgeConfigState
	gasPrice           solana.PublicKey
	thisGasPrice       solana.PublicKey
	messageHash        [32]byte
	extraGasIx         solana.Instruction
}

func (s *Service) prepareSendData(ctx context.Context, params *bridge.TxSendParams, amount, extraGas *big.Int) (*sendData, error) {
	bridgeProgramID, err := solana.PublicKeyFromBase58(params.SourceToken.Chain.BridgeAddress)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrInvalidInput, err,
			"invalid bridge address %q", params.SourceToken.Chain.BridgeAddress)
	}
	userAccount, err := solana.PublicKeyFromBase58(params.FromAccountAddress)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrInvalidInput, err,
			"invalid sender address %q", params.FromAccountAddress)
	}
	mint, err := solana.PublicKeyFromBase58(params.SourceToken.TokenAddress)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrInvalidInput, err,
			"invalid token address %q", params.SourceToken.TokenAddress)
	}
	poolAccount, err := solana.PublicKeyFromBase58(params.SourceToken.PoolAddress)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrInvalidInput, err,
			"invalid pool address %q", params.SourceToken.PoolAddress)
	}

	amountU64, err := amountToU64(amount)
	if err != nil {
		return nil, err
	}

	// fresh pool state decides the normalized amount
	poolInfo, poolDecimals, err := s.readPoolState(ctx, poolAccount)
	if err != nil {
		return nil, err
	}
	vUsd, err := pool.VUsdAmount(poolInfo, amount, poolDecimals)
	if err != nil {
		return nil, err
	}
	vUsdU64, err := amountToU64(vUsd)
	if err != nil {
		return nil, err
	}

	data := &sendData{
		bridgeProgramID:    bridgeProgramID,
		amount:             amountU64,
		vUsdAmount:         vUsdU64,
		nonce:              params.Nonce,
		recipient:          params.ToAccountAddress,
		receiveToken:       params.ReceiveTokenAddress,
		destinationChainID: params.DestinationChainID,
		sourceChainID:      params.SourceToken.Chain.ChainID,
		userAccount:        userAccount,
		mint:               mint,
		poolAccount:        poolAccount,
	}

	if data.lockAccount, err = LockAccount(params.Nonce, bridgeProgramID); err != nil {
		return nil, err
	}
	if data.authority, err = AuthorityAccount(bridgeProgramID); err != nil {
		return nil, err
	}
	if data.userToken, err = AssociatedTokenAccount(userAccount, mint); err != nil {
		return nil, err
	}
	if data.bridgeToken, err = BridgeTokenAccount(mint, bridgeProgramID); err != nil {
		return nil, err
	}
	if data.chainBridge, err = ChainBridgeAccount(params.DestinationChainID, bridgeProgramID); err != nil {
		return nil, err
	}
	if data.otherBridgeToken, err = OtherChainTokenAccount(params.DestinationChainID,
		params.ReceiveTokenAddress, bridgeProgramID); err != nil {
		return nil, err
	}
	if data.configAccount, err = ConfigAccount(bridgeProgramID); err != nil {
		return nil, err
	}

	configData, err := s.provider.AccountData(ctx, data.configAccount)
	if err != nil {
		return nil, err
	}
	if err := decodeAccountState(configData, "bridge config", &data.config); err != nil {
		return nil, err
	}
	if data.gasPrice, err = GasPriceAccount(params.DestinationChainID, data.config.GasOracleProgramID); err != nil {
		return nil, err
	}
	if data.thisGasPrice, err = GasPriceAccount(data.sourceChainID, data.config.GasOracleProgramID); err != nil {
		return nil, err
	}

	data.messageHash = messageHash(vUsdU64, data.recipient, data.nonce, data.receiveToken,
		data.destinationChainID, data.sourceChainID, data.authority)

	if data.extraGasIx, err = s.extraGasInstruction(extraGas, userAccount, data.configAccount); err != nil {
		return nil, err
	}
	return data, nil
}

// extraGasInstruction transfers the extra destination gas to the collecting
// account; nil when none was requested.
func (s *Service) extraGasInstruction(extraGas *big.Int, from, to solana.PublicKey) (solana.Instruction, error) {
	if extraGas == nil || extraGas.Sign() == 0 {
		return nil, nil
	}
	lamports, err := amountToU64(extraGas)
	if err != nil {
		return nil, err
	}
	return system.NewTransferInstruction(lamports, from, to).Build(), nil
}

func (s *Service) readPoolState(ctx context.Context, poolAccount solana.PublicKey) (entities.PoolInfo, int, error) {
	data, err := s.provider.AccountData(ctx, poolAccount)
	if err != nil {
		return entities.PoolInfo{}, 0, err
	}
	var state poolState
	if err := decodeAccountState(data, "pool", &state); err != nil {
		return entities.PoolInfo{}, 0, err
	}
	info := entities.PoolInfo{
		AValue:             new(big.Int).SetUint64(state.A),
		DValue:             new(big.Int).SetUint64(state.D),
		TokenBalance:       new(big.Int).SetUint64(state.TokenBalance),
		VUsdBalance:        new(big.Int).SetUint64(state.VUsdBalance),
		TotalLpAmount:      new(big.Int).SetUint64(state.TotalLpAmount),
		AccRewardPerShareP: state.AccRewardPerShareP.BigInt(),
		P:                  rewardShift,
	}
	return info, int(state.Decimals), nil
}

// PoolInfo reads a pool's state from the chain.
func (s *Service) PoolInfo(ctx context.Context, poolAddress string) (entities.PoolInfo, error) {
	poolAccount, err := solana.PublicKeyFromBase58(poolAddress)
	if err != nil {
		return entities.PoolInfo{}, domainerrors.Wrap(domainerrors.ErrInvalidInput, err,
			"invalid pool address %q", poolAddress)
	}
	info, _, err := s.readPoolState(ctx, poolAccount)
	return info, err
}

// UserBalanceInfo reads a user's liquidity position in a token's pool.
// A missing position account reads as an empty position.
func (s *Service) UserBalanceInfo(ctx context.Context, accountAddress string, token entities.TokenDescriptor) (entities.UserBalanceInfo, error) {
	owner, err := solana.PublicKeyFromBase58(accountAddress)
	if err != nil {
		return entities.UserBalanceInfo{}, domainerrors.Wrap(domainerrors.ErrInvalidInput, err,
			"invalid account address %q", accountAddress)
	}
	mint, err := solana.PublicKeyFromBase58(token.TokenAddress)
	if err != nil {
		return entities.UserBalanceInfo{}, domainerrors.Wrap(domainerrors.ErrInvalidInput, err,
			"invalid token address %q", token.TokenAddress)
	}
	bridgeProgramID, err := solana.PublicKeyFromBase58(token.Chain.BridgeAddress)
	if err != nil {
		return entities.UserBalanceInfo{}, domainerrors.Wrap(domainerrors.ErrInvalidInput, err,
			"invalid bridge address %q", token.Chain.BridgeAddress)
	}

	depositAccount, err := UserDepositAccount(mint, owner, bridgeProgramID)
	if err != nil {
		return entities.UserBalanceInfo{}, err
	}
	exists, err := s.provider.AccountExists(ctx, depositAccount)
	if err != nil {
		return entities.UserBalanceInfo{}, err
	}
	if !exists {
		return entities.UserBalanceInfo{LpAmount: big.NewInt(0), RewardDebt: big.NewInt(0)}, nil
	}

	data, err := s.provider.AccountData(ctx, depositAccount)
	if err != nil {
		return entities.UserBalanceInfo{}, err
	}
	var state userDepositState
	if err := decodeAccountState(data, "user deposit", &state); err != nil {
		return entities.UserBalanceInfo{}, err
	}
	return entities.UserBalanceInfo{
		LpAmount:   new(big.Int).SetUint64(state.LpAmount),
		RewardDebt: new(big.Int).SetUint64(state.RewardDebt),
	}, nil
}

// BuildSwapTransaction builds a single-chain swap between two pools of the
// bridge program. A missing receiver token account is created inside the
// same transaction; that is the only internally repaired condition.
func (s *Service) BuildSwapTransaction(ctx context.Context, params entities.SwapParams) (entities.RawTransaction, error) {
	bridgeProgramID, err := solana.PublicKeyFromBase58(params.SourceToken.Chain.BridgeAddress)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrInvalidInput, err,
			"invalid bridge address %q", params.SourceToken.Chain.BridgeAddress)
	}
	userAccount, err := solana.PublicKeyFromBase58(params.FromAccountAddress)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrInvalidInput, err,
			"invalid sender address %q", params.FromAccountAddress)
	}
	receiverAccount, err := solana.PublicKeyFromBase58(params.ToAccountAddress)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrInvalidInput, err,
			"invalid receiver address %q", params.ToAccountAddress)
	}
	sendMint, err := solana.PublicKeyFromBase58(params.SourceToken.TokenAddress)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrInvalidInput, err,
			"invalid token address %q", params.SourceToken.TokenAddress)
	}
	receiveMint, err := solana.PublicKeyFromBase58(params.DestinationToken.TokenAddress)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrInvalidInput, err,
			"invalid token address %q", params.DestinationToken.TokenAddress)
	}
	sendPool, err := solana.PublicKeyFromBase58(params.SourceToken.PoolAddress)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrInvalidInput, err,
			"invalid pool address %q", params.SourceToken.PoolAddress)
	}
	receivePool, err := solana.PublicKeyFromBase58(params.DestinationToken.PoolAddress)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrInvalidInput, err,
			"invalid pool address %q", params.DestinationToken.PoolAddress)
	}

	amount, err := amountToU64(params.Amount)
	if err != nil {
		return nil, err
	}
	var minimumReceive uint64
	if params.MinimumReceiveAmount != nil {
		if minimumReceive, err = amountToU64(params.MinimumReceiveAmount); err != nil {
			return nil, err
		}
	}

	authority, err := AuthorityAccount(bridgeProgramID)
	if err != nil {
		return nil, err
	}
	configAccount, err := ConfigAccount(bridgeProgramID)
	if err != nil {
		return nil, err
	}
	sendBridgeToken, err := BridgeTokenAccount(sendMint, bridgeProgramID)
	if err != nil {
		return nil, err
	}
	receiveBridgeToken, err := BridgeTokenAccount(receiveMint, bridgeProgramID)
	if err != nil {
		return nil, err
	}
	sendUserToken, err := AssociatedTokenAccount(userAccount, sendMint)
	if err != nil {
		return nil, err
	}
	receiveUserToken, err := AssociatedTokenAccount(receiverAccount, receiveMint)
	if err != nil {
		return nil, err
	}

	instructions := []solana.Instruction{
		computebudget.NewSetComputeUnitLimitInstruction(computeUnitLimit).Build(),
	}

	exists, err := s.provider.AccountExists(ctx, receiveUserToken)
	if err != nil {
		return nil, err
	}
	if !exists {
		instructions = append(instructions,
			associatedtokenaccount.NewCreateInstruction(userAccount, receiverAccount, receiveMint).Build())
	}

	data, err := encodeInstructionData(methodSwap, swapArgs{
		Amount:               amount,
		MinimumReceiveAmount: minimumReceive,
	})
	if err != nil {
		return nil, err
	}
	instructions = append(instructions, solana.NewInstruction(bridgeProgramID, solana.AccountMetaSlice{
		solana.NewAccountMeta(userAccount, true, true),
		solana.NewAccountMeta(configAccount, false, false),
		solana.NewAccountMeta(authority, false, false),
		solana.NewAccountMeta(userAccount, false, false),
		solana.NewAccountMeta(sendBridgeToken, true, false),
		solana.NewAccountMeta(sendMint, false, false),
		solana.NewAccountMeta(sendPool, true, false),
		solana.NewAccountMeta(sendUserToken, true, false),
		solana.NewAccountMeta(receiveBridgeToken, true, false),
		solana.NewAccountMeta(receiveMint, false, false),
		solana.NewAccountMeta(receivePool, true, false),
		solana.NewAccountMeta(receiveUserToken, true, false),
		solana.NewAccountMeta(solana.TokenProgramID, false, false),
	}, data))

	return s.assemble(ctx, params.FromAccountAddress, instructions, nil, nil)
}

// BuildPoolOperation builds a deposit, withdrawal or reward claim against
// the token's pool.
func (s *Service) BuildPoolOperation(ctx context.Context, kind entities.PoolOperationKind, params entities.PoolOperationParams) (entities.RawTransaction, error) {
	bridgeProgramID, err := solana.PublicKeyFromBase58(params.Token.Chain.BridgeAddress)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrInvalidInput, err,
			"invalid bridge address %q", params.Token.Chain.BridgeAddress)
	}
	userAccount, err := solana.PublicKeyFromBase58(params.AccountAddress)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrInvalidInput, err,
			"invalid account address %q", params.AccountAddress)
	}
	mint, err := solana.PublicKeyFromBase58(params.Token.TokenAddress)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrInvalidInput, err,
			"invalid token address %q", params.Token.TokenAddress)
	}
	poolAccount, err := solana.PublicKeyFromBase58(params.Token.PoolAddress)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrInvalidInput, err,
			"invalid pool address %q", params.Token.PoolAddress)
	}

	var data []byte
	switch kind {
	case entities.PoolOperationDeposit:
		amount, amountErr := amountToU64(params.Amount)
		if amountErr != nil {
			return nil, amountErr
		}
		data, err = encodeInstructionData(methodDeposit, amountArgs{Amount: amount})
	case entities.PoolOperationWithdraw:
		amount, amountErr := amountToU64(params.Amount)
		if amountErr != nil {
			return nil, amountErr
		}
		data, err = encodeInstructionData(methodWithdraw, amountArgs{Amount: amount})
	case entities.PoolOperationClaim:
		data, err = encodeInstructionData(methodClaimRewards, nil)
	default:
		return nil, domainerrors.New(domainerrors.ErrMethodNotSupported,
			"unknown pool operation %q", kind)
	}
	if err != nil {
		return nil, err
	}

	authority, err := AuthorityAccount(bridgeProgramID)
	if err != nil {
		return nil, err
	}
	configAccount, err := ConfigAccount(bridgeProgramID)
	if err != nil {
		return nil, err
	}
	bridgeToken, err := BridgeTokenAccount(mint, bridgeProgramID)
	if err != nil {
		return nil, err
	}
	userToken, err := AssociatedTokenAccount(userAccount, mint)
	if err != nil {
		return nil, err
	}
	userDeposit, err := UserDepositAccount(mint, userAccount, bridgeProgramID)
	if err != nil {
		return nil, err
	}

	instructions := []solana.Instruction{
		computebudget.NewSetComputeUnitLimitInstruction(computeUnitLimit).Build(),
		solana.NewInstruction(bridgeProgramID, solana.AccountMetaSlice{
			solana.NewAccountMeta(mint, false, false),
			solana.NewAccountMeta(userAccount, true, true),
			solana.NewAccountMeta(configAccount, false, false),
			solana.NewAccountMeta(poolAccount, true, false),
			solana.NewAccountMeta(authority, false, false),
			solana.NewAccountMeta(userToken, true, false),
			solana.NewAccountMeta(bridgeToken, true, false),
			solana.NewAccountMeta(userDeposit, true, false),
			solana.NewAccountMeta(solana.SystemProgramID, false, false),
			solana.NewAccountMeta(solana.TokenProgramID, false, false),
		}, data),
	}

	return s.assemble(ctx, params.AccountAddress, instructions, nil, nil)
}

// assemble stamps the recency token and fee payer, merges the aggregator
// fragment ahead of the bridge instructions, compiles the v0 message
// against the configured lookup table and partially signs with the extra
// signer when one exists.
func (s *Service) assemble(ctx context.Context, payerAddress string, instructions []solana.Instruction, fragment *aggregator.SwapFragment, extraSigner *solana.PrivateKey) (*entities.SolanaRawTransaction, error) {
	payer, err := solana.PublicKeyFromBase58(payerAddress)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrInvalidInput, err,
			"invalid fee payer address %q", payerAddress)
	}

	tables := make(map[solana.PublicKey]solana.PublicKeySlice)
	addresses, err := s.provider.LookupTable(ctx, s.params.LookupTableAddress)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrExternalDependency, err,
			"cannot resolve bridge lookup table %s", s.params.LookupTableAddress)
	}
	tables[s.params.LookupTableAddress] = addresses

	if fragment != nil {
		instructions = append(fragment.Instructions, instructions...)
		for _, table := range fragment.LookupTableAddresses {
			fragmentAddresses, tableErr := s.provider.LookupTable(ctx, table)
			if tableErr != nil {
				return nil, domainerrors.Wrap(domainerrors.ErrExternalDependency, tableErr,
					"cannot resolve aggregator lookup table %s", table)
			}
			tables[table] = fragmentAddresses
		}
	}

	blockhash, err := s.provider.LatestBlockhash(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := solana.NewTransaction(instructions, blockhash,
		solana.TransactionPayer(payer),
		solana.TransactionAddressTables(tables))
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrInvalidInput, err,
			"compile transaction failed")
	}

	if extraSigner != nil {
		if _, err := tx.PartialSign(func(key solana.PublicKey) *solana.PrivateKey {
			if key.Equals(extraSigner.PublicKey()) {
				return extraSigner
			}
			return nil
		}); err != nil {
			return nil, domainerrors.Wrap(domainerrors.ErrInvalidInput, err,
				"sign with message account failed")
		}
	}

	return &entities.SolanaRawTransaction{Tx: tx, ExtraSigner: extraSigner}, nil
}
