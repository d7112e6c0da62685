package types

import (
	"context"

	sdkmath "cosmossdk.io/math"
)

// DexHooks defines the interface for DEX module callbacks. Hooks run inside
// the operation's unit of work: an error returned by a hook aborts the
// operation and discards its state changes.
type DexHooks interface {
	// AfterPoolCreated is called after a new liquidity pool is registered.
	AfterPoolCreated(ctx context.Context, poolID uint64, asset0, asset1 string) error

	// AfterLiquidityChanged is called when liquidity is added or removed.
	// Deltas are always non-negative; isAdd tells the direction.
	AfterLiquidityChanged(ctx context.Context, poolID uint64, account string, delta0, delta1, shares sdkmath.Int, isAdd bool) error

	// AfterSwap is called after a successful swap.
	AfterSwap(ctx context.Context, poolID uint64, trader string, assetIn, assetOut string, amountIn, amountOut sdkmath.Int) error
}

// MultiDexHooks combines multiple DEX hooks into a single hook that calls all of them.
type MultiDexHooks []DexHooks

// NewMultiDexHooks creates a new MultiDexHooks from a list of hooks.
func NewMultiDexHooks(hooks ...DexHooks) MultiDexHooks {
	return hooks
}

// AfterPoolCreated calls AfterPoolCreated on all registered hooks.
func (h MultiDexHooks) AfterPoolCreated(ctx context.Context, poolID uint64, asset0, asset1 string) error {
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.AfterPoolCreated(ctx, poolID, asset0, asset1); err != nil {
			return err
		}
	}
	return nil
}

// AfterLiquidityChanged calls AfterLiquidityChanged on all registered hooks.
func (h MultiDexHooks) AfterLiquidityChanged(ctx context.Context, poolID uint64, account string, delta0, delta1, shares sdkmath.Int, isAdd bool) error {
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.AfterLiquidityChanged(ctx, poolID, account, delta0, delta1, shares, isAdd); err != nil {
			return err
		}
	}
	return nil
}

// AfterSwap calls AfterSwap on all registered hooks.
func (h MultiDexHooks) AfterSwap(ctx context.Context, poolID uint64, trader string, assetIn, assetOut string, amountIn, amountOut sdkmath.Int) error {
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.AfterSwap(ctx, poolID, trader, assetIn, assetOut, amountIn, amountOut); err != nil {
			return err
		}
	}
	return nil
}
