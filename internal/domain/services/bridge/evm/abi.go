// Package evm builds raw contract-call transactions for EVM chains: the
// bridge's swapAndBridge and swap entry points and the liquidity pool
// operations.
package evm

import (
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const bridgeABIJSON = `[
  {"type":"function","name":"swapAndBridge","stateMutability":"payable","inputs":[
    {"name":"token","type":"bytes32"},
    {"name":"amount","type":"uint256"},
    {"name":"recipient","type":"bytes32"},
    {"name":"destinationChainId","type":"uint8"},
    {"name":"receiveToken","type":"bytes32"},
    {"name":"nonce","type":"uint256"},
    {"name":"messenger","type":"uint8"},
    {"name":"feeTokenAmount","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"swap","stateMutability":"nonpayable","inputs":[
    {"name":"amount","type":"uint256"},
    {"name":"token","type":"bytes32"},
    {"name":"receiveToken","type":"bytes32"},
    {"name":"recipient","type":"address"},
    {"name":"minimumReceiveAmount","type":"uint256"}],"outputs":[]}
]`

const cctpBridgeABIJSON = `[
  {"type":"function","name":"bridge","stateMutability":"payable","inputs":[
    {"name":"token","type":"bytes32"},
    {"name":"amount","type":"uint256"},
    {"name":"recipient","type":"bytes32"},
    {"name":"destinationChainId","type":"uint8"},
    {"name":"receiveToken","type":"bytes32"},
    {"name":"feeTokenAmount","type":"uint256"}],"outputs":[]}
]`

const poolABIJSON = `[
  {"type":"function","name":"deposit","stateMutability":"nonpayable","inputs":[
    {"name":"amount","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"withdraw","stateMutability":"nonpayable","inputs":[
    {"name":"amountLp","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"claimRewards","stateMutability":"nonpayable","inputs":[],"outputs":[]},
  {"type":"function","name":"a","stateMutability":"view","inputs":[],"outputs":[
    {"name":"","type":"uint256"}]},
  {"type":"function","name":"d","stateMutability":"view","inputs":[],"outputs":[
    {"name":"","type":"uint256"}]},
  {"type":"function","name":"tokenBalance","stateMutability":"view","inputs":[],"outputs":[
    {"name":"","type":"uint256"}]},
  {"type":"function","name":"vUsdBalance","stateMutability":"view","inputs":[],"outputs":[
    {"name":"","type":"uint256"}]},
  {"type":"function","name":"totalLpAmount","stateMutability":"view","inputs":[],"outputs":[
    {"name":"","type":"uint256"}]},
  {"type":"function","name":"accRewardPerShareP","stateMutability":"view","inputs":[],"outputs":[
    {"name":"","type":"uint256"}]},
  {"type":"function","name":"userInfo","stateMutability":"view","inputs":[
    {"name":"user","type":"address"}],"outputs":[
    {"name":"lpAmount","type":"uint256"},
    {"name":"rewardDebt","type":"uint256"}]}
]`

var (
	parseOnce  sync.Once
	bridgeABI  abi.ABI
	cctpABI    abi.ABI
	poolABI    abi.ABI
	parseError error
)

func contractABIs() (abi.ABI, abi.ABI, abi.ABI, error) {
	parseOnce.Do(func() {
		if bridgeABI, parseError = abi.JSON(strings.NewReader(bridgeABIJSON)); parseError != nil {
			return
		}
		if cctpABI, parseError = abi.JSON(strings.NewReader(cctpBridgeABIJSON)); parseError != nil {
			return
		}
		poolABI, parseError = abi.JSON(strings.NewReader(poolABIJSON))
	})
	return bridgeABI, cctpABI, poolABI, parseError
}
