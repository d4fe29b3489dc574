package coreapi

import (
	"math/big"
	"strings"

	"github.com/bridgecore-service/bridge_core/internal/domain/entities"
	domainerrors "github.com/bridgecore-service/bridge_core/internal/domain/errors"
)

// chainProperties holds the static properties of every chain the builder
// knows; chains returned by the catalog but absent here are skipped.
var chainProperties = map[entities.ChainSymbol]struct {
	Name      string
	ChainType entities.ChainType
}{
	entities.ChainSymbolSol: {"Solana", entities.ChainTypeSolana},
	entities.ChainSymbolEth: {"Ethereum", entities.ChainTypeEvm},
	entities.ChainSymbolPol: {"Polygon", entities.ChainTypeEvm},
	entities.ChainSymbolArb: {"Arbitrum", entities.ChainTypeEvm},
	entities.ChainSymbolBas: {"Base", entities.ChainTypeEvm},
}

func mapChainDetailsResponse(response ChainDetailsResponse) map[entities.ChainSymbol]ChainDetails {
	result := make(map[entities.ChainSymbol]ChainDetails, len(response))
	for symbolValue, dto := range response {
		symbol := entities.ChainSymbol(symbolValue)
		props, ok := chainProperties[symbol]
		if !ok {
			continue
		}
		chain := entities.ChainDescriptor{
			ChainSymbol:   symbol,
			ChainType:     props.ChainType,
			ChainID:       dto.ChainID,
			Name:          props.Name,
			BridgeAddress: dto.BridgeAddress,
			CctpAddress:   dto.CctpAddress,
			Confirmations: dto.Confirmations,
		}
		tokens := make([]entities.TokenDescriptor, 0, len(dto.Tokens))
		for _, tokenDTO := range dto.Tokens {
			token, err := mapTokenDTO(chain, tokenDTO)
			if err != nil {
				continue
			}
			tokens = append(tokens, token)
		}
		result[symbol] = ChainDetails{Chain: chain, Tokens: tokens}
	}
	return result
}

func mapTokenDTO(chain entities.ChainDescriptor, dto TokenDTO) (entities.TokenDescriptor, error) {
	pool, err := mapPoolDTO(dto.Pool)
	if err != nil {
		return entities.TokenDescriptor{}, err
	}
	return entities.TokenDescriptor{
		Chain:              chain,
		TokenAddress:       dto.TokenAddress,
		Decimals:           dto.Decimals,
		Symbol:             dto.Symbol,
		PoolAddress:        dto.PoolAddress,
		Pool:               pool,
		OriginTokenAddress: dto.OriginTokenAddress,
	}, nil
}

func mapPoolDTO(dto PoolDTO) (entities.PoolInfo, error) {
	var err error
	parse := func(name, value string) *big.Int {
		parsed, ok := new(big.Int).SetString(value, 10)
		if !ok && err == nil {
			err = domainerrors.New(domainerrors.ErrExternalDependency,
				"pool field %s is not a decimal integer: %q", name, value)
		}
		return parsed
	}

	info := entities.PoolInfo{
		P:                  dto.P,
		AValue:             parse("aValue", dto.AValue),
		DValue:             parse("dValue", dto.DValue),
		TokenBalance:       parse("tokenBalance", dto.TokenBalance),
		VUsdBalance:        parse("vUsdBalance", dto.VUsdBalance),
		TotalLpAmount:      parse("totalLpAmount", dto.TotalLpAmount),
		AccRewardPerShareP: parse("accRewardPerShareP", dto.AccRewardPerShareP),
	}
	if err != nil {
		return entities.PoolInfo{}, err
	}
	return info, nil
}

// PoolKey builds the catalog's pool map key: "SYMBOL_poolAddress".
func PoolKey(chainSymbol entities.ChainSymbol, poolAddress string) string {
	return string(chainSymbol) + "_" + poolAddress
}

// ParsePoolKey splits a pool map key into chain symbol and pool address.
func ParsePoolKey(poolKey string) (entities.ChainSymbol, string) {
	divider := strings.Index(poolKey, "_")
	if divider < 0 {
		return "", poolKey
	}
	return entities.ChainSymbol(poolKey[:divider]), poolKey[divider+1:]
}
