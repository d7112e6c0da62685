package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/paw-chain/pawswap/x/dex/types"
)

// SwapExactIn sells exactly amountIn of assetIn and fails with
// ErrSlippageExceeded if less than minAmountOut would be received.
func (k Keeper) SwapExactIn(
	ctx context.Context,
	trader sdk.AccAddress,
	poolID uint64,
	assetIn string,
	amountIn, minAmountOut math.Int,
) (res types.SwapResult, err error) {
	ctx, span := k.startSpan(ctx, "SwapExactIn", attribute.Int64("pool_id", int64(poolID)), attribute.String("asset_in", assetIn))
	defer func() { k.endSpan(span, "swap_exact_in", err) }()

	if err := validateAmount("amount in", amountIn); err != nil {
		return res, err
	}
	if err := validateBound("min amount out", minAmountOut); err != nil {
		return res, err
	}

	return k.executeSwap(ctx, trader, poolID, assetIn, func(pool types.Pool, reserveIn, reserveOut math.Int) (math.Int, math.Int, error) {
		amountOut, err := GetAmountOut(amountIn, reserveIn, reserveOut, pool.Fee)
		if err != nil {
			return math.Int{}, math.Int{}, err
		}
		if amountOut.LT(minAmountOut) {
			return math.Int{}, math.Int{}, types.ErrSlippageExceeded.Wrapf("output %s below minimum %s", amountOut, minAmountOut)
		}
		return amountIn, amountOut, nil
	})
}

// SwapExactOut buys exactly amountOut of the counter-asset, paying in
// assetIn, and fails with ErrSlippageExceeded if the required input exceeds
// maxAmountIn.
func (k Keeper) SwapExactOut(
	ctx context.Context,
	trader sdk.AccAddress,
	poolID uint64,
	assetIn string,
	amountOut, maxAmountIn math.Int,
) (res types.SwapResult, err error) {
	ctx, span := k.startSpan(ctx, "SwapExactOut", attribute.Int64("pool_id", int64(poolID)), attribute.String("asset_in", assetIn))
	defer func() { k.endSpan(span, "swap_exact_out", err) }()

	if err := validateAmount("amount out", amountOut); err != nil {
		return res, err
	}
	if err := validateBound("max amount in", maxAmountIn); err != nil {
		return res, err
	}

	return k.executeSwap(ctx, trader, poolID, assetIn, func(pool types.Pool, reserveIn, reserveOut math.Int) (math.Int, math.Int, error) {
		amountIn, err := GetAmountIn(amountOut, reserveIn, reserveOut, pool.Fee)
		if err != nil {
			return math.Int{}, math.Int{}, err
		}
		if amountIn.GT(maxAmountIn) {
			return math.Int{}, math.Int{}, types.ErrSlippageExceeded.Wrapf("required input %s exceeds maximum %s", amountIn, maxAmountIn)
		}
		return amountIn, amountOut, nil
	})
}

// quoteFunc prices a swap against oriented reserves, returning the input
// taken and the output paid.
type quoteFunc func(pool types.Pool, reserveIn, reserveOut math.Int) (amountIn, amountOut math.Int, err error)

// executeSwap is the shared body of both swap entry points. The full input,
// fee included, is added to the input reserve. The constant product is
// re-checked on the resulting reserves before anything is written.
func (k Keeper) executeSwap(ctx context.Context, trader sdk.AccAddress, poolID uint64, assetIn string, quote quoteFunc) (types.SwapResult, error) {
	if trader.Empty() {
		return types.SwapResult{}, sdkerrors.ErrInvalidAddress.Wrap("trader address cannot be empty")
	}
	if trader.Equals(k.moduleAddr) {
		return types.SwapResult{}, sdkerrors.ErrInvalidAddress.Wrapf("trader %s is the dex custody address", trader)
	}

	var (
		res  types.SwapResult
		pool types.Pool
	)
	err := k.executeAtomically(ctx, func(cacheCtx sdk.Context) (sdk.Events, error) {
		var err error
		pool, err = k.GetPool(cacheCtx, poolID)
		if err != nil {
			return nil, err
		}
		reserveIn, reserveOut, assetOut, err := pool.SwapSides(assetIn)
		if err != nil {
			return nil, err
		}
		if pool.IsEmpty() {
			return nil, types.ErrInsufficientLiquidity.Wrapf("pool %d is empty", poolID)
		}

		// 1. Price the trade
		amountIn, amountOut, err := quote(pool, reserveIn, reserveOut)
		if err != nil {
			return nil, err
		}

		// 2. New reserves and the constant-product check
		newIn, err := SafeAdd(reserveIn, amountIn)
		if err != nil {
			return nil, err
		}
		newOut, err := SafeSub(reserveOut, amountOut)
		if err != nil {
			return nil, err
		}
		if err := checkConstantProduct(pool, reserveIn, reserveOut, newIn, newOut); err != nil {
			k.Logger(ctx).Error("swap aborted by constant product check", "pool_id", poolID, "error", err)
			return nil, err
		}

		pool = pool.WithReserves(assetIn, newIn, newOut)
		if err := k.setPool(cacheCtx, pool); err != nil {
			return nil, err
		}

		// 3. Settle through the ledger
		if err := k.ledger.SendCoins(cacheCtx, trader, k.moduleAddr, sdk.NewCoins(sdk.NewCoin(assetIn, amountIn))); err != nil {
			return nil, errorsmod.Wrapf(err, "collect %s%s for pool %d", amountIn, assetIn, poolID)
		}
		if err := k.ledger.SendCoins(cacheCtx, k.moduleAddr, trader, sdk.NewCoins(sdk.NewCoin(assetOut, amountOut))); err != nil {
			return nil, errorsmod.Wrapf(err, "pay %s%s from pool %d", amountOut, assetOut, poolID)
		}

		if k.hooks != nil {
			if err := k.hooks.AfterSwap(cacheCtx, poolID, trader.String(), assetIn, assetOut, amountIn, amountOut); err != nil {
				return nil, err
			}
		}

		res = types.SwapResult{AssetIn: assetIn, AmountIn: amountIn, AssetOut: assetOut, AmountOut: amountOut}
		return sdk.Events{types.SwapExecuted{
			PoolId:    poolID,
			Trader:    trader,
			AssetIn:   assetIn,
			AmountIn:  amountIn,
			AssetOut:  assetOut,
			AmountOut: amountOut,
		}.ToEvent()}, nil
	})
	if err != nil {
		return types.SwapResult{}, err
	}

	k.metrics.recordSwap(pool, res)
	k.Logger(ctx).Info("swap executed",
		"pool_id", poolID,
		"trader", trader.String(),
		"asset_in", res.AssetIn,
		"amount_in", res.AmountIn.String(),
		"asset_out", res.AssetOut,
		"amount_out", res.AmountOut.String(),
	)
	return res, nil
}

// checkConstantProduct verifies that a swap did not shrink reserve product,
// and that it grew whenever the pool charges a fee.
func checkConstantProduct(pool types.Pool, oldIn, oldOut, newIn, newOut math.Int) error {
	oldK := product(oldIn, oldOut)
	newK := product(newIn, newOut)

	cmp := newK.Cmp(oldK)
	if cmp < 0 || (cmp == 0 && pool.Fee.Numerator > 0) {
		return types.ErrInvariantViolation.Wrapf("pool %d: reserve product %s -> %s", pool.Id, oldK, newK)
	}
	return nil
}
