package sol

import (
	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
)

// buildAllbridgeInstructions builds the swap_and_bridge call through the
// native messenger: the message is recorded in a sent_message account
// derived from its hash.
func (s *Service) buildAllbridgeInstructions(d *sendData) ([]solana.Instruction, error) {
	messengerProgramID := d.config.AllbridgeMessengerProgramID

	gasUsage, err := GasUsageAccount(d.destinationChainID, messengerProgramID)
	if err != nil {
		return nil, err
	}
	messengerConfig, err := ConfigAccount(messengerProgramID)
	if err != nil {
		return nil, err
	}
	sentMessage, err := SentMessageAccount(d.messageHash, messengerProgramID)
	if err != nil {
		return nil, err
	}

	data, err := encodeInstructionData(methodSwapAndBridge, swapAndBridgeArgs{
		VusdAmount:         d.vUsdAmount,
		Nonce:              d.nonce,
		DestinationChainID: uint8(d.destinationChainID),
		Recipient:          d.recipient,
		ReceiveToken:       d.receiveToken,
	})
	if err != nil {
		return nil, err
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
		solana.NewAccountMeta(messengerProgramID, false, false),
		solana.NewAccountMeta(gasUsage, false, false),
		solana.NewAccountMeta(messengerConfig, true, false),
		solana.NewAccountMeta(sentMessage, true, false),
		solana.NewAccountMeta(d.otherBridgeToken, false, false),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
		solana.NewAccountMeta(solana.TokenProgramID, false, false),
	}, data)

	instructions := []solana.Instruction{
		computebudget.NewSetComputeUnitLimitInstruction(computeUnitLimit).Build(),
		bridgeIx,
	}
	if d.extraGasIx != nil {
		instructions = append(instructions, d.extraGasIx)
	}
	return instructions, nil
}
