package keeper

import (
	"context"
	"encoding/binary"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"go.opentelemetry.io/otel/attribute"

	"github.com/paw-chain/pawswap/x/dex/types"
)

// MaxIterationLimit bounds GetAllPools so a bloated store cannot stall a query.
const MaxIterationLimit = 10_000

// GetNextPoolID returns the id the next created pool will receive.
func (k Keeper) GetNextPoolID(ctx context.Context) uint64 {
	bz := k.getStore(ctx).Get(types.PoolCountKey)
	if bz == nil {
		return 1
	}
	return binary.BigEndian.Uint64(bz)
}

// SetNextPoolID sets the next pool ID counter
func (k Keeper) SetNextPoolID(ctx context.Context, poolID uint64) {
	k.getStore(ctx).Set(types.PoolCountKey, sdk.Uint64ToBigEndian(poolID))
}

// CreatePool registers an empty pool for the pair (assetA, assetB). The pair
// is canonicalized first, so (A, B) and (B, A) name the same pool. A zero fee
// selects the default fee from params. No assets move.
func (k Keeper) CreatePool(ctx context.Context, assetA, assetB string, fee types.Fee) (poolID uint64, err error) {
	ctx, span := k.startSpan(ctx, "CreatePool", attribute.String("asset_a", assetA), attribute.String("asset_b", assetB))
	defer func() { k.endSpan(span, "create_pool", err) }()

	// 1. Canonicalize the pair
	pair, err := types.NewAssetPair(assetA, assetB, k.ordering)
	if err != nil {
		return 0, err
	}

	// 2. Resolve and bound the fee
	params := k.GetParams(ctx)
	if fee.IsZero() {
		fee = params.DefaultFee
	}
	if err := fee.Validate(); err != nil {
		return 0, err
	}
	if !fee.LTE(params.MaxFee) {
		return 0, types.ErrInvalidFee.Wrapf("fee %s exceeds maximum %s", fee, params.MaxFee)
	}

	err = k.executeAtomically(ctx, func(cacheCtx sdk.Context) (sdk.Events, error) {
		// 3. Enforce uniqueness
		if existing, found := k.getPoolIDByPair(cacheCtx, pair); found {
			return nil, types.ErrPoolAlreadyExists.Wrapf("pool %d already trades %s", existing, pair)
		}

		// 4. Allocate id and store the empty pool
		poolID = k.GetNextPoolID(cacheCtx)
		k.SetNextPoolID(cacheCtx, poolID+1)

		pool := types.NewPool(poolID, pair, fee)
		if err := k.setPool(cacheCtx, pool); err != nil {
			return nil, err
		}
		k.getStore(cacheCtx).Set(types.GetPoolByAssetsKey(pair), sdk.Uint64ToBigEndian(poolID))

		if k.hooks != nil {
			if err := k.hooks.AfterPoolCreated(cacheCtx, poolID, pair.Asset0, pair.Asset1); err != nil {
				return nil, err
			}
		}

		return sdk.Events{types.PoolCreated{PoolId: poolID, Pair: pair, Fee: fee}.ToEvent()}, nil
	})
	if err != nil {
		return 0, err
	}

	k.metrics.PoolsCreated.Inc()
	k.Logger(ctx).Info("pool created", "pool_id", poolID, "asset0", pair.Asset0, "asset1", pair.Asset1, "fee", fee.String())
	return poolID, nil
}

// GetPool returns a pool by id.
func (k Keeper) GetPool(ctx context.Context, poolID uint64) (types.Pool, error) {
	bz := k.getStore(ctx).Get(types.GetPoolKey(poolID))
	if bz == nil {
		return types.Pool{}, types.ErrPoolNotFound.Wrapf("pool %d", poolID)
	}

	var pool types.Pool
	if err := k.cdc.Unmarshal(bz, &pool); err != nil {
		return types.Pool{}, types.ErrInvalidPoolState.Wrapf("decode pool %d: %s", poolID, err)
	}
	return pool, nil
}

// GetPoolByAssets canonicalizes (assetA, assetB) and returns the pool trading
// that pair, in either argument order.
func (k Keeper) GetPoolByAssets(ctx context.Context, assetA, assetB string) (types.Pool, error) {
	pair, err := types.NewAssetPair(assetA, assetB, k.ordering)
	if err != nil {
		return types.Pool{}, err
	}
	poolID, found := k.getPoolIDByPair(ctx, pair)
	if !found {
		return types.Pool{}, types.ErrPoolNotFound.Wrapf("no pool for %s", pair)
	}
	return k.GetPool(ctx, poolID)
}

// IteratePools walks all pools in id order until cb returns true.
func (k Keeper) IteratePools(ctx context.Context, cb func(pool types.Pool) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.PoolKey)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var pool types.Pool
		if err := k.cdc.Unmarshal(iterator.Value(), &pool); err != nil {
			return types.ErrInvalidPoolState.Wrapf("decode pool at key %X: %s", iterator.Key(), err)
		}
		if cb(pool) {
			break
		}
	}
	return nil
}

// GetAllPools returns every registered pool, up to MaxIterationLimit.
func (k Keeper) GetAllPools(ctx context.Context) ([]types.Pool, error) {
	var pools []types.Pool
	err := k.IteratePools(ctx, func(pool types.Pool) bool {
		pools = append(pools, pool)
		return len(pools) >= MaxIterationLimit
	})
	return pools, err
}

// GetPoolCount returns the number of registered pools.
func (k Keeper) GetPoolCount(ctx context.Context) uint64 {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.PoolKey)
	defer iterator.Close()

	var count uint64
	for ; iterator.Valid(); iterator.Next() {
		count++
	}
	return count
}

// setPool persists a pool record after checking its structural invariants.
func (k Keeper) setPool(ctx context.Context, pool types.Pool) error {
	if err := pool.Validate(k.ordering); err != nil {
		return err
	}
	bz, err := k.cdc.Marshal(&pool)
	if err != nil {
		return err
	}
	k.getStore(ctx).Set(types.GetPoolKey(pool.Id), bz)
	return nil
}

func (k Keeper) getPoolIDByPair(ctx context.Context, pair types.AssetPair) (uint64, bool) {
	bz := k.getStore(ctx).Get(types.GetPoolByAssetsKey(pair))
	if bz == nil {
		return 0, false
	}
	return binary.BigEndian.Uint64(bz), true
}
