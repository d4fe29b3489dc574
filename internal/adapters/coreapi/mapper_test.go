package coreapi

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bridgecore-service/bridge_core/internal/domain/entities"
	domainerrors "github.com/bridgecore-service/bridge_core/internal/domain/errors"
)

func TestMapPoolDTO(t *testing.T) {
	pool, err := mapPoolDTO(PoolDTO{
		AValue:             "20",
		DValue:             "2000000",
		TokenBalance:       "1100000",
		VUsdBalance:        "900000",
		TotalLpAmount:      "1995000",
		AccRewardPerShareP: "987654321",
		P:                  48,
	})
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(20), pool.AValue)
	assert.Equal(t, big.NewInt(2000000), pool.DValue)
	assert.Equal(t, big.NewInt(1100000), pool.TokenBalance)
	assert.Equal(t, big.NewInt(900000), pool.VUsdBalance)
	assert.Equal(t, big.NewInt(1995000), pool.TotalLpAmount)
	assert.Equal(t, big.NewInt(987654321), pool.AccRewardPerShareP)
	assert.Equal(t, uint(48), pool.P)
}

func TestMapPoolDTOInvalidBalance(t *testing.T) {
	tests := []struct {
		name string
		dto  PoolDTO
	}{
		{
			name: "empty dValue",
			dto:  PoolDTO{AValue: "20", DValue: "", TokenBalance: "1", VUsdBalance: "1", TotalLpAmount: "1", AccRewardPerShareP: "0"},
		},
		{
			name: "non-numeric tokenBalance",
			dto:  PoolDTO{AValue: "20", DValue: "1", TokenBalance: "1.5e6", VUsdBalance: "1", TotalLpAmount: "1", AccRewardPerShareP: "0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mapPoolDTO(tt.dto)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerrors.ErrExternalDependency))
		})
	}
}

func TestMapChainDetailsResponseSkipsBadTokens(t *testing.T) {
	resp := ChainDetailsResponse{
		"ETH": ChainDetailsDTO{
			ChainID:       1,
			BridgeAddress: "0xbridge",
			Tokens: []TokenDTO{
				{Symbol: "USDT", TokenAddress: "0xusdt", Decimals: 6, Pool: PoolDTO{
					AValue: "20", DValue: "1", TokenBalance: "1", VUsdBalance: "1", TotalLpAmount: "1", AccRewardPerShareP: "0",
				}},
				{Symbol: "BAD", TokenAddress: "0xbad", Decimals: 6, Pool: PoolDTO{
					AValue: "oops", DValue: "1", TokenBalance: "1", VUsdBalance: "1", TotalLpAmount: "1", AccRewardPerShareP: "0",
				}},
			},
		},
	}

	details := mapChainDetailsResponse(resp)
	require.Len(t, details, 1)
	require.Len(t, details[entities.ChainSymbolEth].Tokens, 1)
	assert.Equal(t, "USDT", details[entities.ChainSymbolEth].Tokens[0].Symbol)
}

func TestPoolKeyRoundTrip(t *testing.T) {
	key := PoolKey(entities.ChainSymbolSol, "4yx1NJ4Vqf2zT1oVLk4SySBhhDJXmXFt88ncm4gPxtL7")
	assert.Equal(t, "SOL_4yx1NJ4Vqf2zT1oVLk4SySBhhDJXmXFt88ncm4gPxtL7", key)

	symbol, address := ParsePoolKey(key)
	assert.Equal(t, entities.ChainSymbolSol, symbol)
	assert.Equal(t, "4yx1NJ4Vqf2zT1oVLk4SySBhhDJXmXFt88ncm4gPxtL7", address)
}

func TestParsePoolKeyWithoutDivider(t *testing.T) {
	symbol, address := ParsePoolKey("justanaddress")
	assert.Equal(t, entities.ChainSymbol(""), symbol)
	assert.Equal(t, "justanaddress", address)
}
