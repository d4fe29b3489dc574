package coreapi

import "github.com/bridgecore-service/bridge_core/internal/domain/entities"

// PoolDTO is the wire representation of a pool state snapshot. Balances are
// decimal strings because they exceed JSON-safe integers.
type PoolDTO struct {
	AValue             string `json:"aValue"`
	DValue             string `json:"dValue"`
	TokenBalance       string `json:"tokenBalance"`
	VUsdBalance        string `json:"vUsdBalance"`
	TotalLpAmount      string `json:"totalLpAmount"`
	AccRewardPerShareP string `json:"accRewardPerShareP"`
	P                  uint   `json:"p"`
}

// TokenDTO is the wire representation of a token entry in the catalog.
type TokenDTO struct {
	Name               string  `json:"name"`
	Symbol             string  `json:"symbol"`
	Decimals           int     `json:"decimals"`
	TokenAddress       string  `json:"tokenAddress"`
	OriginTokenAddress string  `json:"originTokenAddress,omitempty"`
	PoolAddress        string  `json:"poolAddress"`
	FeeShare           string  `json:"feeShare"`
	Pool               PoolDTO `json:"pool"`
}

// ChainDetailsDTO is the wire representation of one chain in the catalog.
type ChainDetailsDTO struct {
	ChainID       int        `json:"chainId"`
	BridgeAddress string     `json:"bridgeAddress"`
	CctpAddress   string     `json:"cctpAddress,omitempty"`
	Confirmations int        `json:"confirmations"`
	Tokens        []TokenDTO `json:"tokens"`
}

// ChainDetailsResponse maps chain symbol to chain details.
type ChainDetailsResponse map[string]ChainDetailsDTO

// PoolResponse maps chain symbol to pool snapshots keyed by pool address.
type PoolResponse map[string]map[string]PoolDTO

// ReceiveTransactionCostRequest keys a relayer fee quote.
type ReceiveTransactionCostRequest struct {
	SourceChainID      int                `json:"sourceChainId"`
	DestinationChainID int                `json:"destinationChainId"`
	Messenger          entities.Messenger `json:"messenger"`
}

// ReceiveTransactionCostResponse carries the oracle's quote. Fee is in the
// source chain's native currency base units; SourceNativeTokenPrice is the
// native token price denominated in the transfer stablecoin.
type ReceiveTransactionCostResponse struct {
	Fee                    string `json:"fee"`
	SourceNativeTokenPrice string `json:"sourceNativeTokenPrice"`
}

// GasPriceSuggestionResponse carries a suggested priority fee in the
// chain's native base units.
type GasPriceSuggestionResponse struct {
	MaxPriorityFeePerGas string `json:"maxPriorityFeePerGas"`
}
