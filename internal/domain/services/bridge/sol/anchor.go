package sol

import (
	"bytes"
	"crypto/sha256"

	bin "github.com/gagliardetto/binary"

	domainerrors "github.com/bridgecore-service/bridge_core/internal/domain/errors"
)

// Anchor method names of the bridge programs.
const (
	methodSwapAndBridge         = "swap_and_bridge"
	methodSwapAndBridgeWormhole = "swap_and_bridge_wormhole"
	methodSwap                  = "swap"
	methodCctpBridge            = "bridge"
	methodDeposit               = "deposit"
	methodWithdraw              = "withdraw"
	methodClaimRewards          = "claim_rewards"
)

// anchorDiscriminator returns the 8-byte Anchor instruction discriminator:
// sha256("global:<method>")[:8].
func anchorDiscriminator(method string) []byte {
	hash := sha256.Sum256([]byte("global:" + method))
	return hash[:8]
}

// encodeInstructionData builds Anchor instruction data: discriminator
// followed by Borsh-encoded args. A nil args value encodes the
// discriminator alone.
func encodeInstructionData(method string, args interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(anchorDiscriminator(method))
	if args != nil {
		if err := bin.NewBorshEncoder(buf).Encode(args); err != nil {
			return nil, domainerrors.Wrap(domainerrors.ErrInvalidInput, err,
				"encode %s instruction args failed", method)
		}
	}
	return buf.Bytes(), nil
}

// swapAndBridgeArgs are the args of swap_and_bridge and
// swap_and_bridge_wormhole.
type swapAndBridgeArgs struct {
	VusdAmount         uint64
	Nonce              [32]byte
	DestinationChainID uint8
	Recipient          [32]byte
	ReceiveToken       [32]byte
}

type swapArgs struct {
	Amount               uint64
	MinimumReceiveAmount uint64
}

// cctpBridgeArgs are the args of the CCTP bridge's bridge method; the
// amount stays in token units, there is no normalization step.
type cctpBridgeArgs struct {
	Amount             uint64
	DestinationChainID uint8
	Recipient          [32]byte
	ReceiveToken       [32]byte
}

type amountArgs struct {
	Amount uint64
}
