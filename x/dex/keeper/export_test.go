package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"go.opentelemetry.io/otel/trace"

	"github.com/paw-chain/pawswap/x/dex/types"
)

// WritePoolForTest stores pool without validation so tests can seed corrupt state.
func WritePoolForTest(k *Keeper, ctx sdk.Context, pool types.Pool) {
	k.getStore(ctx).Set(types.GetPoolKey(pool.Id), k.cdc.MustMarshal(&pool))
}

// SetSharesForTest overwrites owner's share balance without touching the pool.
func SetSharesForTest(k *Keeper, ctx sdk.Context, poolID uint64, owner sdk.AccAddress, shares math.Int) error {
	return k.setShares(ctx, poolID, owner, shares)
}

// SetTracerForTest replaces the keeper's tracer.
func SetTracerForTest(k *Keeper, tracer trace.Tracer) {
	k.tracer = tracer
}
