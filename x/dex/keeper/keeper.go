package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/paw-chain/pawswap/x/dex/types"
)

// Keeper of the dex store. It owns the pool registry and the LP share
// ledger; both are reachable only through its methods.
type Keeper struct {
	storeKey storetypes.StoreKey
	cdc      *codec.LegacyAmino
	ledger   types.LedgerKeeper
	ordering types.AssetOrdering
	hooks    types.DexHooks
	metrics  *DEXMetrics
	tracer   trace.Tracer

	moduleAddr sdk.AccAddress
	lockedAddr sdk.AccAddress
}

// NewKeeper creates a new dex Keeper instance. ordering defines the canonical
// order of assets within a pair and must stay fixed for the life of a store.
func NewKeeper(
	cdc *codec.LegacyAmino,
	key storetypes.StoreKey,
	ledger types.LedgerKeeper,
	ordering types.AssetOrdering,
) *Keeper {
	if ordering == nil {
		ordering = types.LexicographicOrdering
	}
	return &Keeper{
		storeKey:   key,
		cdc:        cdc,
		ledger:     ledger,
		ordering:   ordering,
		metrics:    NewDEXMetrics(),
		tracer:     otel.Tracer("github.com/paw-chain/pawswap/x/dex"),
		moduleAddr: authtypes.NewModuleAddress(types.ModuleName),
		lockedAddr: authtypes.NewModuleAddress(types.LockedSharesName),
	}
}

// SetHooks sets the dex hooks. It may only be called once.
func (k *Keeper) SetHooks(hooks types.DexHooks) *Keeper {
	if k.hooks != nil {
		panic("cannot set dex hooks twice")
	}
	k.hooks = hooks
	return k
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// Ordering returns the asset ordering pairs are canonicalized with.
func (k Keeper) Ordering() types.AssetOrdering {
	return k.ordering
}

// GetModuleAddress returns the custody account holding every pool's reserves.
func (k Keeper) GetModuleAddress() sdk.AccAddress {
	return k.moduleAddr
}

// LockedSharesAddress returns the account credited with each pool's
// permanently locked minimum liquidity. Shares held there can never be burned.
func (k Keeper) LockedSharesAddress() sdk.AccAddress {
	return k.lockedAddr
}

// getStore returns the KVStore for the dex module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}
