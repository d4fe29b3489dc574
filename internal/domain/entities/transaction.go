package entities

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"
)

// RawTransaction is an execution-model-specific unsigned transaction
// envelope, handed opaquely to an external signer/broadcaster.
//
// A built transaction is stamped with a recency token (blockhash or gas
// parameters) at the very end of assembly; holding it for too long before
// broadcast makes it stale and the chain will reject it.
type RawTransaction interface {
	ChainType() ChainType
}

// SolanaRawTransaction wraps a compiled v0 transaction. When a messenger
// requires a protocol-owned signer (the wormhole message account), the
// transaction is already partially signed with it and the key is exposed so
// the caller can re-sign after updating the blockhash.
type SolanaRawTransaction struct {
	Tx *solana.Transaction
	// ExtraSigner is the freshly generated single-use message keypair, nil
	// unless the wormhole messenger was used.
	ExtraSigner *solana.PrivateKey
}

// ChainType implements RawTransaction.
func (t *SolanaRawTransaction) ChainType() ChainType { return ChainTypeSolana }

// EvmRawTransaction is a contract call envelope.
type EvmRawTransaction struct {
	From  common.Address
	To    common.Address
	Value *big.Int
	Data  []byte
	// MaxPriorityFeePerGas is set only when the cost oracle suggests one
	// (Polygon); nil lets the signer pick.
	MaxPriorityFeePerGas *big.Int
}

// ChainType implements RawTransaction.
func (t *EvmRawTransaction) ChainType() ChainType { return ChainTypeEvm }
