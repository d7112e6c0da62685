package types

import (
	"cosmossdk.io/math"
)

// LiquidityResult reports the amounts actually deposited by AddLiquidity.
type LiquidityResult struct {
	Amount0Used  math.Int `json:"amount0_used"`
	Amount1Used  math.Int `json:"amount1_used"`
	SharesMinted math.Int `json:"shares_minted"`
}

// WithdrawResult reports the payouts of RemoveLiquidity.
type WithdrawResult struct {
	Amount0 math.Int `json:"amount0"`
	Amount1 math.Int `json:"amount1"`
}

// SwapResult reports both legs of an executed or quoted swap.
type SwapResult struct {
	AssetIn   string   `json:"asset_in"`
	AmountIn  math.Int `json:"amount_in"`
	AssetOut  string   `json:"asset_out"`
	AmountOut math.Int `json:"amount_out"`
}
