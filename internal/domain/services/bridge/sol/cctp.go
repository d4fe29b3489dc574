package sol

import (
	"context"
	"math/big"

	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"

	domainerrors "github.com/bridgecore-service/bridge_core/internal/domain/errors"
	"github.com/bridgecore-service/bridge_core/internal/domain/services/bridge"
)

// buildCctpInstructions builds the bridge call of the CCTP bridge program.
// The route must be fully configured (CCTP bridge address, Circle programs
// and destination domain) before any domain-dependent derivation happens.
func (s *Service) buildCctpInstructions(ctx context.Context, params *bridge.TxSendParams, amount, extraGas *big.Int) ([]solana.Instruction, error) {
	cctpAddress := params.SourceToken.Chain.CctpAddress
	domain, hasDomain := s.params.Cctp.Domains[params.DestinationChainID]
	if cctpAddress == "" || !hasDomain ||
		s.params.Cctp.TransmitterProgramID.IsZero() ||
		s.params.Cctp.TokenMessengerMinterID.IsZero() {
		return nil, domainerrors.New(domainerrors.ErrUnsupportedRoute,
			"CCTP is not configured for destination chain %d", params.DestinationChainID)
	}

	cctpProgramID, err := solana.PublicKeyFromBase58(cctpAddress)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrInvalidInput, err,
			"invalid CCTP bridge address %q", cctpAddress)
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

	amountU64, err := amountToU64(amount)
	if err != nil {
		return nil, err
	}

	cctpBridgeAccount, err := CctpBridgeAccount(cctpProgramID)
	if err != nil {
		return nil, err
	}
	authority, err := CctpAuthorityAccount(cctpBridgeAccount, cctpProgramID)
	if err != nil {
		return nil, err
	}
	bridgeToken, err := CctpBridgeTokenAccount(mint, cctpProgramID)
	if err != nil {
		return nil, err
	}
	chainBridge, err := ChainBridgeAccount(params.DestinationChainID, cctpProgramID)
	if err != nil {
		return nil, err
	}
	userToken, err := AssociatedTokenAccount(userAccount, mint)
	if err != nil {
		return nil, err
	}

	// the CCTP bridge reads its gas oracle from its own state account
	var state struct {
		GasOracleProgramID solana.PublicKey
	}
	stateData, err := s.provider.AccountData(ctx, cctpBridgeAccount)
	if err != nil {
		return nil, err
	}
	if err := decodeAccountState(stateData, "cctp bridge", &state); err != nil {
		return nil, err
	}
	gasPrice, err := GasPriceAccount(params.DestinationChainID, state.GasOracleProgramID)
	if err != nil {
		return nil, err
	}
	thisGasPrice, err := GasPriceAccount(params.SourceToken.Chain.ChainID, state.GasOracleProgramID)
	if err != nil {
		return nil, err
	}

	circle, err := DeriveCircleAccounts(domain, mint,
		s.params.Cctp.TransmitterProgramID, s.params.Cctp.TokenMessengerMinterID)
	if err != nil {
		return nil, err
	}

	data, err := encodeInstructionData(methodCctpBridge, cctpBridgeArgs{
		Amount:             amountU64,
		DestinationChainID: uint8(params.DestinationChainID),
		Recipient:          params.ToAccountAddress,
		ReceiveToken:       params.ReceiveTokenAddress,
	})
	if err != nil {
		return nil, err
	}

	bridgeIx := solana.NewInstruction(cctpProgramID, solana.AccountMetaSlice{
		solana.NewAccountMeta(mint, true, false),
		solana.NewAccountMeta(userAccount, true, true),
		solana.NewAccountMeta(cctpBridgeAccount, true, false),
		solana.NewAccountMeta(s.params.Cctp.TokenMessengerMinterID, false, false),
		solana.NewAccountMeta(s.params.Cctp.TransmitterProgramID, false, false),
		solana.NewAccountMeta(circle.MessageTransmitter, true, false),
		solana.NewAccountMeta(circle.TokenMessenger, false, false),
		solana.NewAccountMeta(circle.TokenMinter, false, false),
		solana.NewAccountMeta(circle.LocalToken, true, false),
		solana.NewAccountMeta(circle.RemoteTokenMessenger, false, false),
		solana.NewAccountMeta(circle.SenderAuthority, false, false),
		solana.NewAccountMeta(bridgeToken, true, false),
		solana.NewAccountMeta(gasPrice, false, false),
		solana.NewAccountMeta(thisGasPrice, false, false),
		solana.NewAccountMeta(chainBridge, false, false),
		solana.NewAccountMeta(userToken, true, false),
		solana.NewAccountMeta(authority, false, false),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
		solana.NewAccountMeta(solana.TokenProgramID, false, false),
	}, data)

	instructions := []solana.Instruction{
		computebudget.NewSetComputeUnitLimitInstruction(cctpComputeUnitLimit).Build(),
		bridgeIx,
	}
	if extraGas != nil && extraGas.Sign() > 0 {
		extraGasIx, extraErr := s.extraGasInstruction(extraGas, userAccount, cctpBridgeAccount)
		if extraErr != nil {
			return nil, extraErr
		}
		instructions = append(instructions, extraGasIx)
	}
	return instructions, nil
}
