package entities

import "math/big"

// PoolInfo is a point-in-time snapshot of a liquidity pool's state. It is
// re-fetched for every build and never cached across builds.
type PoolInfo struct {
	AValue             *big.Int // invariant curve amplification parameter
	DValue             *big.Int // invariant curve total liquidity parameter
	TokenBalance       *big.Int // token side, system precision
	VUsdBalance        *big.Int // normalized side, system precision
	TotalLpAmount      *big.Int
	AccRewardPerShareP *big.Int // accumulated reward per share, shifted left by P
	P                  uint     // fixed-point shift precision of AccRewardPerShareP
}

// TokenDescriptor describes a token and the pool backing it on its chain.
type TokenDescriptor struct {
	Chain        ChainDescriptor
	TokenAddress string
	Decimals     int
	Symbol       string
	PoolAddress  string
	Pool         PoolInfo
	// OriginTokenAddress is the 32-byte representation used on the wire;
	// empty when equal to TokenAddress.
	OriginTokenAddress string
}

// UserBalanceInfo holds a user's position in a pool.
type UserBalanceInfo struct {
	LpAmount   *big.Int
	RewardDebt *big.Int
}

// Earned returns the user's pending rewards given the current pool state:
// lpAmount * accRewardPerShareP / 2^P - rewardDebt, floored at zero.
func (u UserBalanceInfo) Earned(pool PoolInfo) *big.Int {
	if u.LpAmount == nil || pool.AccRewardPerShareP == nil {
		return big.NewInt(0)
	}
	acc := new(big.Int).Mul(u.LpAmount, pool.AccRewardPerShareP)
	acc.Rsh(acc, pool.P)
	if u.RewardDebt != nil {
		acc.Sub(acc, u.RewardDebt)
	}
	if acc.Sign() < 0 {
		return big.NewInt(0)
	}
	return acc
}
