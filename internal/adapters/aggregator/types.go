package aggregator

// QuoteResponse is the aggregator's quote for an ExactOut swap.
type QuoteResponse struct {
	InputMint  string          `json:"inputMint"`
	OutputMint string          `json:"outputMint"`
	InAmount   string          `json:"inAmount"`
	OutAmount  string          `json:"outAmount"`
	SwapMode   string          `json:"swapMode"`
	RoutePlan  []RoutePlanStep `json:"routePlan"`
}

// RoutePlanStep is one hop of the aggregator's route.
type RoutePlanStep struct {
	Percent int `json:"percent"`
}

// InstructionAccountDTO is one account meta of a serialized instruction.
type InstructionAccountDTO struct {
	Pubkey     string `json:"pubkey"`
	IsSigner   bool   `json:"isSigner"`
	IsWritable bool   `json:"isWritable"`
}

// InstructionDTO is the aggregator's wire form of one instruction; Data is
// base64.
type InstructionDTO struct {
	ProgramID string                  `json:"programId"`
	Accounts  []InstructionAccountDTO `json:"accounts"`
	Data      string                  `json:"data"`
}

// SwapInstructionsResponse carries everything needed to splice the swap
// into a larger transaction.
type SwapInstructionsResponse struct {
	SetupInstructions           []InstructionDTO `json:"setupInstructions"`
	SwapInstruction             *InstructionDTO  `json:"swapInstruction"`
	CleanupInstruction          *InstructionDTO  `json:"cleanupInstruction"`
	AddressLookupTableAddresses []string         `json:"addressLookupTableAddresses"`
}

// swapInstructionsRequest is the body for the swap-instructions endpoint.
type swapInstructionsRequest struct {
	UserPublicKey    string        `json:"userPublicKey"`
	QuoteResponse    QuoteResponse `json:"quoteResponse"`
	WrapAndUnwrapSol bool          `json:"wrapAndUnwrapSol"`
}
