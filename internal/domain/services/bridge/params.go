package bridge

import (
	"crypto/rand"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"

	"github.com/bridgecore-service/bridge_core/internal/domain/entities"
	domainerrors "github.com/bridgecore-service/bridge_core/internal/domain/errors"
)

// TxSendParams is the normalized form of a send request: recipient and
// receive token converted to 32-byte wire representation, fee resolved to a
// concrete amount, nonce fixed. Chain builders consume this form only.
type TxSendParams struct {
	Amount              *big.Int // token base units
	FromAccountAddress  string
	SourceToken         entities.TokenDescriptor
	DestinationChainID  int
	ToAccountAddress    [32]byte
	ReceiveTokenAddress [32]byte
	Messenger           entities.Messenger
	Fee                 *big.Int
	ExtraGas            *big.Int // nil when none requested
	FeePaymentMethod    entities.FeePaymentMethod
	Nonce               [32]byte
}

// AddressToBytes32 converts a chain address to its 32-byte wire
// representation: Solana addresses decode from base58, EVM addresses are
// left-padded to 32 bytes.
func AddressToBytes32(chainType entities.ChainType, address string) ([32]byte, error) {
	var out [32]byte
	switch chainType {
	case entities.ChainTypeSolana:
		key, err := solana.PublicKeyFromBase58(address)
		if err != nil {
			return out, domainerrors.Wrap(domainerrors.ErrInvalidInput, err,
				"invalid solana address %q", address)
		}
		copy(out[:], key[:])
	case entities.ChainTypeEvm:
		if !common.IsHexAddress(address) {
			return out, domainerrors.New(domainerrors.ErrInvalidInput,
				"invalid evm address %q", address)
		}
		addr := common.HexToAddress(address)
		copy(out[12:], addr[:])
	default:
		return out, domainerrors.New(domainerrors.ErrInvalidInput,
			"unsupported chain type %q", chainType)
	}
	return out, nil
}

func newNonce() ([32]byte, error) {
	var nonce [32]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nonce, domainerrors.Wrap(domainerrors.ErrInvalidInput, err,
			"generate nonce failed")
	}
	return nonce, nil
}
