// Package sol builds unsigned Solana transactions for the bridge: program
// derived account resolution, Anchor instruction encoding, the three
// messenger strategies and the final v0 assembly against the bridge's
// address lookup table.
package sol

import (
	"strconv"

	"github.com/gagliardetto/solana-go"

	domainerrors "github.com/bridgecore-service/bridge_core/internal/domain/errors"
)

func deriveAddress(programID solana.PublicKey, label string, seeds ...[]byte) (solana.PublicKey, error) {
	address, _, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return solana.PublicKey{}, domainerrors.Wrap(domainerrors.ErrDerivation, err,
			"derive %s account under %s failed", label, programID)
	}
	return address, nil
}

// AuthorityAccount derives the bridge authority.
func AuthorityAccount(bridgeProgramID solana.PublicKey) (solana.PublicKey, error) {
	return deriveAddress(bridgeProgramID, "authority", []byte("authority"))
}

// ConfigAccount derives a program's config account. Both the bridge and the
// messenger programs keep their config under the same seed.
func ConfigAccount(programID solana.PublicKey) (solana.PublicKey, error) {
	return deriveAddress(programID, "config", []byte("config"))
}

// LockAccount derives the per-transfer lock from the transfer nonce.
func LockAccount(nonce [32]byte, bridgeProgramID solana.PublicKey) (solana.PublicKey, error) {
	return deriveAddress(bridgeProgramID, "lock", []byte("lock"), nonce[:])
}

// BridgeTokenAccount derives the bridge's token account for a mint.
func BridgeTokenAccount(mint, bridgeProgramID solana.PublicKey) (solana.PublicKey, error) {
	return deriveAddress(bridgeProgramID, "bridge token", []byte("token"), mint[:])
}

// ChainBridgeAccount derives the per-destination chain bridge account.
func ChainBridgeAccount(chainID int, bridgeProgramID solana.PublicKey) (solana.PublicKey, error) {
	return deriveAddress(bridgeProgramID, "chain bridge", []byte("chain_bridge"), []byte{byte(chainID)})
}

// OtherChainTokenAccount derives the registration of the receive token on
// the destination chain.
func OtherChainTokenAccount(chainID int, receiveToken [32]byte, bridgeProgramID solana.PublicKey) (solana.PublicKey, error) {
	return deriveAddress(bridgeProgramID, "other chain token",
		[]byte("other_bridge_token"), []byte{byte(chainID)}, receiveToken[:])
}

// GasPriceAccount derives the gas oracle's price account for a chain.
func GasPriceAccount(chainID int, gasOracleProgramID solana.PublicKey) (solana.PublicKey, error) {
	return deriveAddress(gasOracleProgramID, "gas price", []byte("price_v2"), []byte{byte(chainID)})
}

// GasUsageAccount derives a messenger's gas usage account for a chain.
func GasUsageAccount(chainID int, messengerProgramID solana.PublicKey) (solana.PublicKey, error) {
	return deriveAddress(messengerProgramID, "gas usage", []byte("gas_usage"), []byte{byte(chainID)})
}

// SentMessageAccount derives the messenger account that records a sent
// message, keyed by the message hash.
func SentMessageAccount(messageHash [32]byte, messengerProgramID solana.PublicKey) (solana.PublicKey, error) {
	return deriveAddress(messengerProgramID, "sent message", []byte("sent_message"), messageHash[:])
}

// AssociatedTokenAccount derives the SPL associated token account.
func AssociatedTokenAccount(owner, mint solana.PublicKey) (solana.PublicKey, error) {
	address, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return solana.PublicKey{}, domainerrors.Wrap(domainerrors.ErrDerivation, err,
			"derive associated token account for %s failed", owner)
	}
	return address, nil
}

// UserDepositAccount derives the user's liquidity position account in a
// pool program.
func UserDepositAccount(mint, owner, poolProgramID solana.PublicKey) (solana.PublicKey, error) {
	return deriveAddress(poolProgramID, "user deposit", []byte("user_deposit"), mint[:], owner[:])
}

// CctpBridgeAccount derives the CCTP bridge state account.
func CctpBridgeAccount(cctpBridgeProgramID solana.PublicKey) (solana.PublicKey, error) {
	return deriveAddress(cctpBridgeProgramID, "cctp bridge", []byte("cctp_bridge"))
}

// CctpAuthorityAccount derives the CCTP bridge authority over its state
// account.
func CctpAuthorityAccount(cctpBridgeAccount, cctpBridgeProgramID solana.PublicKey) (solana.PublicKey, error) {
	return deriveAddress(cctpBridgeProgramID, "cctp authority",
		[]byte("cctp_authority"), cctpBridgeAccount[:])
}

// CctpBridgeTokenAccount derives the CCTP bridge's token account for a mint.
func CctpBridgeTokenAccount(mint, cctpBridgeProgramID solana.PublicKey) (solana.PublicKey, error) {
	return deriveAddress(cctpBridgeProgramID, "cctp bridge token",
		[]byte("cctp_bridge_token"), mint[:])
}

// CircleAccounts are the Circle program accounts a CCTP deposit-for-burn
// touches.
type CircleAccounts struct {
	MessageTransmitter   solana.PublicKey
	TokenMessenger       solana.PublicKey
	TokenMinter          solana.PublicKey
	LocalToken           solana.PublicKey
	RemoteTokenMessenger solana.PublicKey
	SenderAuthority      solana.PublicKey
}

// DeriveCircleAccounts derives the Circle message transmitter and token
// messenger minter accounts for a destination domain.
func DeriveCircleAccounts(domain uint32, mint, transmitterProgramID, tokenMessengerMinterProgramID solana.PublicKey) (CircleAccounts, error) {
	var accounts CircleAccounts
	var err error

	if accounts.MessageTransmitter, err = deriveAddress(transmitterProgramID,
		"message transmitter", []byte("message_transmitter")); err != nil {
		return accounts, err
	}
	if accounts.TokenMessenger, err = deriveAddress(tokenMessengerMinterProgramID,
		"token messenger", []byte("token_messenger")); err != nil {
		return accounts, err
	}
	if accounts.TokenMinter, err = deriveAddress(tokenMessengerMinterProgramID,
		"token minter", []byte("token_minter")); err != nil {
		return accounts, err
	}
	if accounts.LocalToken, err = deriveAddress(tokenMessengerMinterProgramID,
		"local token", []byte("local_token"), mint[:]); err != nil {
		return accounts, err
	}
	// Circle keys remote messengers by the decimal string of the domain.
	if accounts.RemoteTokenMessenger, err = deriveAddress(tokenMessengerMinterProgramID,
		"remote token messenger", []byte("remote_token_messenger"),
		[]byte(strconv.FormatUint(uint64(domain), 10))); err != nil {
		return accounts, err
	}
	if accounts.SenderAuthority, err = deriveAddress(tokenMessengerMinterProgramID,
		"sender authority", []byte("sender_authority")); err != nil {
		return accounts, err
	}
	return accounts, nil
}
