package entities

// ChainType represents the execution model of a chain.
type ChainType string

const (
	ChainTypeSolana ChainType = "solana" // account-based VM with program-derived addresses
	ChainTypeEvm    ChainType = "evm"    // contract-call chain
)

// ChainSymbol identifies a supported chain.
type ChainSymbol string

const (
	ChainSymbolSol ChainSymbol = "SOL"
	ChainSymbolEth ChainSymbol = "ETH"
	ChainSymbolPol ChainSymbol = "POL"
	ChainSymbolArb ChainSymbol = "ARB"
	ChainSymbolBas ChainSymbol = "BAS"
	ChainSymbolTrx ChainSymbol = "TRX"
)

// NativeDecimalsByType maps an execution model to its native currency
// decimals.
var NativeDecimalsByType = map[ChainType]int{
	ChainTypeSolana: 9,
	ChainTypeEvm:    18,
}

// ChainDescriptor identifies a chain. Immutable, loaded from the external
// catalog.
type ChainDescriptor struct {
	ChainSymbol   ChainSymbol
	ChainType     ChainType
	ChainID       int // bridge-internal numeric chain id
	Name          string
	BridgeAddress string
	// CctpAddress is the CCTP bridge program on this chain; empty when the
	// chain has no CCTP route.
	CctpAddress   string
	Confirmations int
}

// NativeDecimals returns the chain's native currency decimals.
func (c ChainDescriptor) NativeDecimals() int {
	return NativeDecimalsByType[c.ChainType]
}
