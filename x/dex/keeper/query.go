package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/dex/types"
)

// Read-only quotes. They apply the same pricing as the mutating operations
// against current state but move no assets and emit nothing.

// QuoteExactIn returns what SwapExactIn would pay for amountIn right now.
func (k Keeper) QuoteExactIn(ctx context.Context, poolID uint64, assetIn string, amountIn math.Int) (types.SwapResult, error) {
	pool, reserveIn, reserveOut, assetOut, err := k.swapSides(ctx, poolID, assetIn)
	if err != nil {
		return types.SwapResult{}, err
	}
	amountOut, err := GetAmountOut(amountIn, reserveIn, reserveOut, pool.Fee)
	if err != nil {
		return types.SwapResult{}, err
	}
	return types.SwapResult{AssetIn: assetIn, AmountIn: amountIn, AssetOut: assetOut, AmountOut: amountOut}, nil
}

// QuoteExactOut returns the input SwapExactOut would charge for amountOut right now.
func (k Keeper) QuoteExactOut(ctx context.Context, poolID uint64, assetIn string, amountOut math.Int) (types.SwapResult, error) {
	pool, reserveIn, reserveOut, assetOut, err := k.swapSides(ctx, poolID, assetIn)
	if err != nil {
		return types.SwapResult{}, err
	}
	amountIn, err := GetAmountIn(amountOut, reserveIn, reserveOut, pool.Fee)
	if err != nil {
		return types.SwapResult{}, err
	}
	return types.SwapResult{AssetIn: assetIn, AmountIn: amountIn, AssetOut: assetOut, AmountOut: amountOut}, nil
}

// QuoteAddLiquidity returns the amounts AddLiquidity would take and the
// shares it would mint.
func (k Keeper) QuoteAddLiquidity(ctx context.Context, poolID uint64, amount0Desired, amount1Desired math.Int) (types.LiquidityResult, error) {
	if err := validateAmount("amount0 desired", amount0Desired); err != nil {
		return types.LiquidityResult{}, err
	}
	if err := validateAmount("amount1 desired", amount1Desired); err != nil {
		return types.LiquidityResult{}, err
	}
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return types.LiquidityResult{}, err
	}

	if pool.IsEmpty() {
		_, minted, err := CalculateInitialShares(amount0Desired, amount1Desired, k.GetParams(ctx).MinimumLiquidity)
		if err != nil {
			return types.LiquidityResult{}, err
		}
		return types.LiquidityResult{Amount0Used: amount0Desired, Amount1Used: amount1Desired, SharesMinted: minted}, nil
	}

	used0, used1, err := CalculateOptimalDeposit(amount0Desired, amount1Desired, pool.Reserve0, pool.Reserve1)
	if err != nil {
		return types.LiquidityResult{}, err
	}
	minted, err := CalculateSharesMinted(used0, used1, pool.Reserve0, pool.Reserve1, pool.TotalShares)
	if err != nil {
		return types.LiquidityResult{}, err
	}
	return types.LiquidityResult{Amount0Used: used0, Amount1Used: used1, SharesMinted: minted}, nil
}

// QuoteRemoveLiquidity returns the payouts burning shares would yield.
func (k Keeper) QuoteRemoveLiquidity(ctx context.Context, poolID uint64, shares math.Int) (types.WithdrawResult, error) {
	if err := validateAmount("shares", shares); err != nil {
		return types.WithdrawResult{}, err
	}
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return types.WithdrawResult{}, err
	}
	if pool.IsEmpty() {
		return types.WithdrawResult{}, types.ErrInsufficientLiquidity.Wrapf("pool %d is empty", poolID)
	}
	amount0, amount1, err := CalculateWithdrawal(shares, pool.Reserve0, pool.Reserve1, pool.TotalShares)
	if err != nil {
		return types.WithdrawResult{}, err
	}
	return types.WithdrawResult{Amount0: amount0, Amount1: amount1}, nil
}

// GetPositions returns every non-zero share balance of owner.
func (k Keeper) GetPositions(ctx context.Context, owner sdk.AccAddress) ([]types.Position, error) {
	var positions []types.Position
	err := k.IterateAllShares(ctx, func(poolID uint64, holder sdk.AccAddress, shares math.Int) bool {
		if holder.Equals(owner) {
			positions = append(positions, types.Position{PoolId: poolID, Owner: owner.String(), Shares: shares})
		}
		return false
	})
	return positions, err
}

func (k Keeper) swapSides(ctx context.Context, poolID uint64, assetIn string) (pool types.Pool, reserveIn, reserveOut math.Int, assetOut string, err error) {
	pool, err = k.GetPool(ctx, poolID)
	if err != nil {
		return
	}
	reserveIn, reserveOut, assetOut, err = pool.SwapSides(assetIn)
	if err != nil {
		return
	}
	if pool.IsEmpty() {
		err = types.ErrInsufficientLiquidity.Wrapf("pool %d is empty", poolID)
	}
	return
}
