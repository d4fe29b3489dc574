package entities

import "math/big"

// Messenger selects the cross-chain messaging protocol.
type Messenger int

const (
	MessengerAllbridge Messenger = 1
	MessengerWormhole  Messenger = 2
	MessengerCctp      Messenger = 3
)

// String returns a human-readable protocol name.
func (m Messenger) String() string {
	switch m {
	case MessengerAllbridge:
		return "ALLBRIDGE"
	case MessengerWormhole:
		return "WORMHOLE"
	case MessengerCctp:
		return "CCTP"
	default:
		return "UNKNOWN"
	}
}

// FeePaymentMethod selects how the relayer fee is paid.
type FeePaymentMethod string

const (
	// FeePaymentWithNative pays the fee from the user's native currency
	// balance.
	FeePaymentWithNative FeePaymentMethod = "native"
	// FeePaymentWithStablecoin pays the fee out of the transferred
	// stablecoin amount.
	FeePaymentWithStablecoin FeePaymentMethod = "stablecoin"
)

// SendParams describes a cross-chain transfer request.
type SendParams struct {
	Amount             *big.Int // integer, source token decimals; must be > 0
	FromAccountAddress string
	ToAccountAddress   string
	SourceToken        TokenDescriptor
	DestinationToken   TokenDescriptor
	Messenger          Messenger
	Fee                *big.Int // relayer fee; units depend on FeePaymentMethod
	ExtraGas           *big.Int // optional extra gas dropped on the destination
	FeePaymentMethod   FeePaymentMethod
}

// SwapParams describes a single-chain cross-token swap through the bridge.
type SwapParams struct {
	Amount               *big.Int
	FromAccountAddress   string
	ToAccountAddress     string
	SourceToken          TokenDescriptor
	DestinationToken     TokenDescriptor
	MinimumReceiveAmount *big.Int // guard against price movement; may be nil
}

// ResolvedFee is the outcome of fee resolution: amounts expressed in the
// source chain's native currency base units. Produced once per build and
// immutable afterwards.
type ResolvedFee struct {
	// Method is the payment method after resolution; a stablecoin request
	// resolves to native once the amounts are converted.
	Method   FeePaymentMethod
	Fee      *big.Int
	ExtraGas *big.Int // nil when no extra gas was requested
}

// Total returns fee plus extra gas.
func (f ResolvedFee) Total() *big.Int {
	total := new(big.Int).Set(f.Fee)
	if f.ExtraGas != nil {
		total.Add(total, f.ExtraGas)
	}
	return total
}

// PoolOperationKind selects a single-chain pool interaction.
type PoolOperationKind string

const (
	PoolOperationDeposit  PoolOperationKind = "DEPOSIT"
	PoolOperationWithdraw PoolOperationKind = "WITHDRAW"
	PoolOperationClaim    PoolOperationKind = "CLAIM"
)

// PoolOperationParams describes a pool deposit, withdrawal or reward claim.
// Amount is ignored for claims.
type PoolOperationParams struct {
	AccountAddress string
	Token          TokenDescriptor
	Amount         *big.Int
}
