package keeper

import (
	"context"
	"encoding/binary"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/paw-chain/pawswap/x/dex/types"
)

// GetShares returns owner's LP share balance in a pool.
func (k Keeper) GetShares(ctx context.Context, poolID uint64, owner sdk.AccAddress) (math.Int, error) {
	bz := k.getStore(ctx).Get(types.GetSharesKey(poolID, owner))
	if bz == nil {
		return math.ZeroInt(), nil
	}

	var shares math.Int
	if err := shares.Unmarshal(bz); err != nil {
		return math.Int{}, types.ErrInvalidPoolState.Wrapf("decode shares of %s in pool %d: %s", owner, poolID, err)
	}
	return shares, nil
}

// setShares stores a share balance, removing the entry once it reaches zero.
func (k Keeper) setShares(ctx context.Context, poolID uint64, owner sdk.AccAddress, shares math.Int) error {
	store := k.getStore(ctx)
	key := types.GetSharesKey(poolID, owner)

	if shares.IsZero() {
		store.Delete(key)
		return nil
	}

	bz, err := shares.Marshal()
	if err != nil {
		return err
	}
	store.Set(key, bz)
	return nil
}

// creditShares adds shares to owner's balance.
func (k Keeper) creditShares(ctx context.Context, poolID uint64, owner sdk.AccAddress, shares math.Int) error {
	balance, err := k.GetShares(ctx, poolID, owner)
	if err != nil {
		return err
	}
	balance, err = SafeAdd(balance, shares)
	if err != nil {
		return err
	}
	return k.setShares(ctx, poolID, owner, balance)
}

// IterateShares walks every share balance of one pool until cb returns true.
func (k Keeper) IterateShares(ctx context.Context, poolID uint64, cb func(owner sdk.AccAddress, shares math.Int) (stop bool)) error {
	prefix := types.GetPoolSharesPrefix(poolID)
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), prefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		owner := sdk.AccAddress(iterator.Key()[len(prefix):])

		var shares math.Int
		if err := shares.Unmarshal(iterator.Value()); err != nil {
			return types.ErrInvalidPoolState.Wrapf("decode shares of %s in pool %d: %s", owner, poolID, err)
		}
		if cb(owner, shares) {
			break
		}
	}
	return nil
}

// IterateAllShares walks every share balance of every pool until cb returns true.
func (k Keeper) IterateAllShares(ctx context.Context, cb func(poolID uint64, owner sdk.AccAddress, shares math.Int) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.SharesKey)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		key := iterator.Key()[len(types.SharesKey):]
		poolID := binary.BigEndian.Uint64(key[:8])
		owner := sdk.AccAddress(key[8:])

		var shares math.Int
		if err := shares.Unmarshal(iterator.Value()); err != nil {
			return types.ErrInvalidPoolState.Wrapf("decode shares of %s in pool %d: %s", owner, poolID, err)
		}
		if cb(poolID, owner, shares) {
			break
		}
	}
	return nil
}

// AddLiquidity deposits up to (amount0Desired, amount1Desired) of the pool's
// assets, ordered as the pool's Asset0 and Asset1, and mints LP shares.
//
// The first deposit into an empty pool is taken in full and creates
// floor(sqrt(amount0 * amount1)) shares, of which params.MinimumLiquidity are
// locked forever. Later deposits are trimmed to the current reserve ratio and
// mint shares pro rata. Fails with ErrSlippageExceeded if fewer than
// minShares would be minted.
func (k Keeper) AddLiquidity(
	ctx context.Context,
	provider sdk.AccAddress,
	poolID uint64,
	amount0Desired, amount1Desired, minShares math.Int,
) (res types.LiquidityResult, err error) {
	ctx, span := k.startSpan(ctx, "AddLiquidity", attribute.Int64("pool_id", int64(poolID)))
	defer func() { k.endSpan(span, "add_liquidity", err) }()

	// 1. Stateless validation
	if provider.Empty() {
		return res, sdkerrors.ErrInvalidAddress.Wrap("provider address cannot be empty")
	}
	if provider.Equals(k.moduleAddr) || provider.Equals(k.lockedAddr) {
		return res, sdkerrors.ErrInvalidAddress.Wrapf("provider %s is a dex custody address", provider)
	}
	if err := validateAmount("amount0 desired", amount0Desired); err != nil {
		return res, err
	}
	if err := validateAmount("amount1 desired", amount1Desired); err != nil {
		return res, err
	}
	if err := validateBound("min shares", minShares); err != nil {
		return res, err
	}

	var pool types.Pool
	err = k.executeAtomically(ctx, func(cacheCtx sdk.Context) (sdk.Events, error) {
		var err error
		pool, err = k.GetPool(cacheCtx, poolID)
		if err != nil {
			return nil, err
		}

		// 2. Size the deposit and the shares it earns
		if pool.IsEmpty() {
			total, minted, err := CalculateInitialShares(amount0Desired, amount1Desired, k.GetParams(cacheCtx).MinimumLiquidity)
			if err != nil {
				return nil, err
			}
			if locked := total.Sub(minted); locked.IsPositive() {
				if err := k.creditShares(cacheCtx, poolID, k.lockedAddr, locked); err != nil {
					return nil, err
				}
			}
			res = types.LiquidityResult{Amount0Used: amount0Desired, Amount1Used: amount1Desired, SharesMinted: minted}
			pool.TotalShares = total
		} else {
			used0, used1, err := CalculateOptimalDeposit(amount0Desired, amount1Desired, pool.Reserve0, pool.Reserve1)
			if err != nil {
				return nil, err
			}
			minted, err := CalculateSharesMinted(used0, used1, pool.Reserve0, pool.Reserve1, pool.TotalShares)
			if err != nil {
				return nil, err
			}
			if pool.TotalShares, err = SafeAdd(pool.TotalShares, minted); err != nil {
				return nil, err
			}
			res = types.LiquidityResult{Amount0Used: used0, Amount1Used: used1, SharesMinted: minted}
		}

		// 3. Slippage bound
		if res.SharesMinted.LT(minShares) {
			return nil, types.ErrSlippageExceeded.Wrapf("would mint %s shares, minimum is %s", res.SharesMinted, minShares)
		}

		// 4. Apply to reserves and the share ledger
		if pool.Reserve0, err = SafeAdd(pool.Reserve0, res.Amount0Used); err != nil {
			return nil, err
		}
		if pool.Reserve1, err = SafeAdd(pool.Reserve1, res.Amount1Used); err != nil {
			return nil, err
		}
		if err := k.creditShares(cacheCtx, poolID, provider, res.SharesMinted); err != nil {
			return nil, err
		}
		if err := k.setPool(cacheCtx, pool); err != nil {
			return nil, err
		}

		// 5. Move the assets into custody
		deposit := sdk.NewCoins(sdk.NewCoin(pool.Asset0, res.Amount0Used), sdk.NewCoin(pool.Asset1, res.Amount1Used))
		if err := k.ledger.SendCoins(cacheCtx, provider, k.moduleAddr, deposit); err != nil {
			return nil, errorsmod.Wrapf(err, "deposit %s into pool %d", deposit, poolID)
		}

		if k.hooks != nil {
			if err := k.hooks.AfterLiquidityChanged(cacheCtx, poolID, provider.String(), res.Amount0Used, res.Amount1Used, res.SharesMinted, true); err != nil {
				return nil, err
			}
		}

		return sdk.Events{types.LiquidityAdded{
			PoolId:       poolID,
			Provider:     provider,
			Amount0:      res.Amount0Used,
			Amount1:      res.Amount1Used,
			SharesMinted: res.SharesMinted,
		}.ToEvent()}, nil
	})
	if err != nil {
		return types.LiquidityResult{}, err
	}

	k.metrics.recordLiquidity(pool, "add", res.Amount0Used, res.Amount1Used)
	k.Logger(ctx).Info("liquidity added",
		"pool_id", poolID,
		"provider", provider.String(),
		"amount0", res.Amount0Used.String(),
		"amount1", res.Amount1Used.String(),
		"shares", res.SharesMinted.String(),
	)
	return res, nil
}

// RemoveLiquidity burns shares held by owner and pays out the matching
// fraction of both reserves, rounded down. Fails with ErrSlippageExceeded if
// either payout is below its minimum, and with ErrZeroAmount if either rounds
// to nothing.
func (k Keeper) RemoveLiquidity(
	ctx context.Context,
	owner sdk.AccAddress,
	poolID uint64,
	shares, minAmount0, minAmount1 math.Int,
) (res types.WithdrawResult, err error) {
	ctx, span := k.startSpan(ctx, "RemoveLiquidity", attribute.Int64("pool_id", int64(poolID)))
	defer func() { k.endSpan(span, "remove_liquidity", err) }()

	if owner.Empty() {
		return res, sdkerrors.ErrInvalidAddress.Wrap("owner address cannot be empty")
	}
	if owner.Equals(k.moduleAddr) {
		return res, sdkerrors.ErrInvalidAddress.Wrapf("owner %s is the dex custody address", owner)
	}
	if err := validateAmount("shares", shares); err != nil {
		return res, err
	}
	if err := validateBound("min amount0", minAmount0); err != nil {
		return res, err
	}
	if err := validateBound("min amount1", minAmount1); err != nil {
		return res, err
	}
	if owner.Equals(k.lockedAddr) {
		return res, types.ErrInsufficientShares.Wrap("locked minimum liquidity cannot be withdrawn")
	}

	var pool types.Pool
	err = k.executeAtomically(ctx, func(cacheCtx sdk.Context) (sdk.Events, error) {
		var err error
		pool, err = k.GetPool(cacheCtx, poolID)
		if err != nil {
			return nil, err
		}

		// 1. Ownership
		balance, err := k.GetShares(cacheCtx, poolID, owner)
		if err != nil {
			return nil, err
		}
		if balance.LT(shares) {
			return nil, types.ErrInsufficientShares.Wrapf("%s holds %s shares of pool %d, requested %s", owner, balance, poolID, shares)
		}

		// 2. Pro-rata payout and bounds
		amount0, amount1, err := CalculateWithdrawal(shares, pool.Reserve0, pool.Reserve1, pool.TotalShares)
		if err != nil {
			return nil, err
		}
		if amount0.IsZero() || amount1.IsZero() {
			return nil, types.ErrZeroAmount.Wrapf("burning %s shares pays out %s/%s", shares, amount0, amount1)
		}
		if amount0.LT(minAmount0) || amount1.LT(minAmount1) {
			return nil, types.ErrSlippageExceeded.Wrapf("payout %s/%s below minimum %s/%s", amount0, amount1, minAmount0, minAmount1)
		}

		// 3. Apply
		if pool.Reserve0, err = SafeSub(pool.Reserve0, amount0); err != nil {
			return nil, err
		}
		if pool.Reserve1, err = SafeSub(pool.Reserve1, amount1); err != nil {
			return nil, err
		}
		if pool.TotalShares, err = SafeSub(pool.TotalShares, shares); err != nil {
			return nil, err
		}
		if err := k.setShares(cacheCtx, poolID, owner, balance.Sub(shares)); err != nil {
			return nil, err
		}
		if err := k.setPool(cacheCtx, pool); err != nil {
			return nil, err
		}

		// 4. Pay out of custody
		payout := sdk.NewCoins(sdk.NewCoin(pool.Asset0, amount0), sdk.NewCoin(pool.Asset1, amount1))
		if err := k.ledger.SendCoins(cacheCtx, k.moduleAddr, owner, payout); err != nil {
			return nil, errorsmod.Wrapf(err, "pay out %s from pool %d", payout, poolID)
		}

		if k.hooks != nil {
			if err := k.hooks.AfterLiquidityChanged(cacheCtx, poolID, owner.String(), amount0, amount1, shares, false); err != nil {
				return nil, err
			}
		}

		res = types.WithdrawResult{Amount0: amount0, Amount1: amount1}
		return sdk.Events{types.LiquidityRemoved{
			PoolId:       poolID,
			Owner:        owner,
			Amount0:      amount0,
			Amount1:      amount1,
			SharesBurned: shares,
		}.ToEvent()}, nil
	})
	if err != nil {
		return types.WithdrawResult{}, err
	}

	k.metrics.recordLiquidity(pool, "remove", res.Amount0, res.Amount1)
	k.Logger(ctx).Info("liquidity removed",
		"pool_id", poolID,
		"owner", owner.String(),
		"amount0", res.Amount0.String(),
		"amount1", res.Amount1.String(),
		"shares", shares.String(),
	)
	return res, nil
}
