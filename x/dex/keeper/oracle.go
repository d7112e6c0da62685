package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/dex/types"
)

// SpotPrice returns the current price of baseAsset in units of the pool's
// other asset, reserve_quote / reserve_base, as an exact fraction. It is a
// point-in-time read of the reserves: any swap earlier in the same block
// moves it, so it is unsuitable as a manipulation-resistant oracle.
func (k Keeper) SpotPrice(ctx context.Context, poolID uint64, baseAsset string) (types.SpotPrice, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return types.SpotPrice{}, err
	}
	reserveBase, reserveQuote, quoteAsset, err := pool.SwapSides(baseAsset)
	if err != nil {
		return types.SpotPrice{}, err
	}
	if pool.IsEmpty() {
		return types.SpotPrice{}, types.ErrInsufficientLiquidity.Wrapf("pool %d is empty", poolID)
	}
	return types.NewSpotPrice(baseAsset, quoteAsset, reserveBase, reserveQuote)
}

// ObserveSpotPrice reads the spot price like SpotPrice and also records the
// observation as an asset_price event on ctx.
func (k Keeper) ObserveSpotPrice(ctx context.Context, poolID uint64, baseAsset string) (types.SpotPrice, error) {
	price, err := k.SpotPrice(ctx, poolID, baseAsset)
	if err != nil {
		return types.SpotPrice{}, err
	}
	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(types.AssetPriceObserved{PoolId: poolID, Price: price}.ToEvent())
	return price, nil
}
