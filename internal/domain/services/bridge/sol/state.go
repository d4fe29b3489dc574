package sol

import (
	"crypto/sha256"
	"encoding/binary"
	"math/big"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	domainerrors "github.com/bridgecore-service/bridge_core/internal/domain/errors"
)

const anchorAccountDiscriminatorLen = 8

// rewardShift is the fixed-point precision of accRewardPerShareP in the
// pool program.
const rewardShift = 52

// bridgeConfigState is the bridge program's config account: the program ids
// the bridge delegates to.
type bridgeConfigState struct {
	AllbridgeMessengerProgramID solana.PublicKey
	WormholeMessengerProgramID  solana.PublicKey
	GasOracleProgramID          solana.PublicKey
}

// poolState is the pool program's state account.
type poolState struct {
	A                  uint64
	D                  uint64
	TokenBalance       uint64
	VUsdBalance        uint64
	TotalLpAmount      uint64
	AccRewardPerShareP bin.Uint128
	Decimals           uint8
}

// userDepositState is a user's position account in a pool.
type userDepositState struct {
	LpAmount   uint64
	RewardDebt uint64
}

func decodeAccountState(data []byte, label string, out interface{}) error {
	if len(data) < anchorAccountDiscriminatorLen {
		return domainerrors.New(domainerrors.ErrExternalDependency,
			"%s account data too short: %d bytes", label, len(data))
	}
	if err := bin.NewBorshDecoder(data[anchorAccountDiscriminatorLen:]).Decode(out); err != nil {
		return domainerrors.Wrap(domainerrors.ErrExternalDependency, err,
			"decode %s account failed", label)
	}
	return nil
}

// parseWormholeFee reads the message fee from the wormhole bridge account:
// a little-endian u64 at bytes [16:24].
func parseWormholeFee(data []byte) (uint64, error) {
	if len(data) < 24 {
		return 0, domainerrors.New(domainerrors.ErrExternalDependency,
			"wormhole bridge account data too short: %d bytes", len(data))
	}
	return binary.LittleEndian.Uint64(data[16:24]), nil
}

// messageHash computes the 32-byte transfer message identity: sha256 over
// the packed normalized amount, recipient, nonce, receive token, chain ids
// and the chain bridge authority. The sent_message account is derived from
// this hash and the receive side recomputes it to match.
func messageHash(vUsdAmount uint64, recipient, nonce, receiveToken [32]byte, destinationChainID, sourceChainID int, chainBridge solana.PublicKey) [32]byte {
	packed := make([]byte, 0, 8+32+32+32+1+1+32)
	var amount [8]byte
	binary.BigEndian.PutUint64(amount[:], vUsdAmount)
	packed = append(packed, amount[:]...)
	packed = append(packed, recipient[:]...)
	packed = append(packed, nonce[:]...)
	packed = append(packed, receiveToken[:]...)
	packed = append(packed, byte(destinationChainID), byte(sourceChainID))
	packed = append(packed, chainBridge[:]...)
	return sha256.Sum256(packed)
}

// amountToU64 converts a big integer token amount to the u64 the programs
// take.
func amountToU64(amount *big.Int) (uint64, error) {
	if amount == nil || amount.Sign() < 0 || !amount.IsUint64() {
		return 0, domainerrors.New(domainerrors.ErrInvalidInput,
			"amount %v is out of the u64 range", amount)
	}
	return amount.Uint64(), nil
}
