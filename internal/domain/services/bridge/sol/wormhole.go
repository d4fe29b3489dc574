package sol

import (
	"context"

	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/gagliardetto/solana-go/programs/system"

	domainerrors "github.com/bridgecore-service/bridge_core/internal/domain/errors"
)

// buildWormholeInstructions builds the swap_and_bridge_wormhole call. The
// wormhole message account is a fresh keypair returned as the extra signer,
// and the wormhole message fee is transferred to the fee collector ahead of
// the bridge call.
func (s *Service) buildWormholeInstructions(ctx context.Context, d *sendData) ([]solana.Instruction, *solana.PrivateKey, error) {
	whProgramID := s.params.WormholeProgramID

	whBridge, err := deriveAddress(whProgramID, "wormhole bridge", []byte("Bridge"))
	if err != nil {
		return nil, nil, err
	}
	whFeeCollector, err := deriveAddress(whProgramID, "wormhole fee collector", []byte("fee_collector"))
	if err != nil {
		return nil, nil, err
	}
	whSequence, err := deriveAddress(whProgramID, "wormhole sequence", []byte("Sequence"), d.authority[:])
	if err != nil {
		return nil, nil, err
	}

	messengerProgramID := d.config.WormholeMessengerProgramID
	gasUsage, err := GasUsageAccount(d.destinationChainID, messengerProgramID)
	if err != nil {
		return nil, nil, err
	}
	messengerConfig, err := ConfigAccount(messengerProgramID)
	if err != nil {
		return nil, nil, err
	}

	// the message fee is stored in the wormhole bridge account
	bridgeAccountData, err := s.provider.AccountData(ctx, whBridge)
	if err != nil {
		return nil, nil, domainerrors.Wrap(domainerrors.ErrExternalDependency, err,
			"cannot fetch wormhole bridge account %s", whBridge)
	}
	feeLamports, err := parseWormholeFee(bridgeAccountData)
	if err != nil {
		return nil, nil, err
	}

	messageKey := solana.NewWallet().PrivateKey
	messageAccount := messageKey.PublicKey()

	data, err := encodeInstructionData(methodSwapAndBridgeWormhole, swapAndBridgeArgs{
		VusdAmount:         d.vUsdAmount,
		Nonce:              d.nonce,
		DestinationChainID: uint8(d.destinationChainID),
		Recipient:          d.recipient,
		ReceiveToken:       d.receiveToken,
	})
	if err != nil {
		return nil, nil, err
	}

	bridgeIx := solana.NewInstruction(d.bridgeProgramID, solana.AccountMetaSlice{
		solana.NewAccountMeta(d.mint, false, false),
		solana.NewAccountMeta(d.userAccount, true, true),
		solana.NewAccountMeta(d.configAccount, false, false),
		solana.NewAccountMeta(d.lockAccount, true, false),
		solana.NewAccountMeta(d.poolAccount, true, false),
		solana.NewAccountMeta(d.gasPrice, false, false),
		solana.NewAccountMeta(d.thisGasPrice, false, false),
		solana.NewAccountMeta(d.authority, false, false),
		solana.NewAccountMeta(d.userToken, true, false),
		solana.NewAccountMeta(d.bridgeToken, true, false),
		solana.NewAccountMeta(d.chainBridge, false, false),
		solana.NewAccountMeta(d.otherBridgeToken, false, false),
		solana.NewAccountMeta(gasUsage, false, false),
		solana.NewAccountMeta(whProgramID, false, false),
		solana.NewAccountMeta(whBridge, true, false),
		solana.NewAccountMeta(messageAccount, true, true),
		solana.NewAccountMeta(messengerProgramID, false, false),
		solana.NewAccountMeta(whSequence, true, false),
		solana.NewAccountMeta(whFeeCollector, true, false),
		solana.NewAccountMeta(messengerConfig, false, false),
		solana.NewAccountMeta(solana.SysVarClockPubkey, false, false),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
		solana.NewAccountMeta(solana.TokenProgramID, false, false),
	}, data)

	instructions := []solana.Instruction{
		computebudget.NewSetComputeUnitLimitInstruction(computeUnitLimit).Build(),
		system.NewTransferInstruction(feeLamports, d.userAccount, whFeeCollector).Build(),
		bridgeIx,
	}
	if d.extraGasIx != nil {
		instructions = append(instructions, d.extraGasIx)
	}
	return instructions, &messageKey, nil
}
