package keeper

import (
	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/pawswap/x/dex/keeper"
	"github.com/paw-chain/pawswap/x/dex/types"
	ledgerkeeper "github.com/paw-chain/pawswap/x/ledger/keeper"
	ledgertypes "github.com/paw-chain/pawswap/x/ledger/types"
)

// DexFixture bundles a dex keeper with the ledger it settles through, both
// mounted on one in-memory IAVL multistore.
type DexFixture struct {
	Keeper *keeper.Keeper
	Ledger ledgerkeeper.Keeper
	Ctx    sdk.Context
}

// DexKeeper creates a test keeper for the DEX module backed by a real ledger
func DexKeeper(t require.TestingT) (*keeper.Keeper, sdk.Context) {
	f := NewDexFixture(t, types.DefaultParams(), types.LexicographicOrdering)
	return f.Keeper, f.Ctx
}

// NewDexFixture builds a dex keeper with the given params and asset ordering.
func NewDexFixture(t require.TestingT, params types.Params, ordering types.AssetOrdering) *DexFixture {
	dexKey := storetypes.NewKVStoreKey(types.StoreKey)
	ledgerKey := storetypes.NewKVStoreKey(ledgertypes.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(dexKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(ledgerKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	ledger := ledgerkeeper.NewKeeper(ledgerKey)
	k := keeper.NewKeeper(types.ModuleCdc, dexKey, ledger, ordering)

	ctx := sdk.NewContext(stateStore, cmtproto.Header{Height: 1}, false, log.NewNopLogger())

	genesis := types.DefaultGenesis()
	genesis.Params = params
	require.NoError(t, k.InitGenesis(ctx, *genesis))

	return &DexFixture{Keeper: k, Ledger: ledger, Ctx: ctx}
}

// Fund mints coins to addr on the fixture's ledger.
func (f *DexFixture) Fund(t require.TestingT, addr sdk.AccAddress, coins ...sdk.Coin) {
	require.NoError(t, f.Ledger.MintCoins(f.Ctx, addr, sdk.NewCoins(coins...)))
}

// Balance returns addr's ledger balance of denom.
func (f *DexFixture) Balance(addr sdk.AccAddress, denom string) math.Int {
	return f.Ledger.GetBalance(f.Ctx, addr, denom).Amount
}

// CreateFundedPool creates a pool for (assetA, assetB) and seeds it with the
// given amounts from a freshly funded provider. Amounts follow the argument
// order, not the canonical pool order.
func (f *DexFixture) CreateFundedPool(t require.TestingT, provider sdk.AccAddress, assetA, assetB string, amountA, amountB math.Int) types.Pool {
	poolID, err := f.Keeper.CreatePool(f.Ctx, assetA, assetB, types.Fee{})
	require.NoError(t, err)

	pool, err := f.Keeper.GetPool(f.Ctx, poolID)
	require.NoError(t, err)

	amount0, amount1 := amountA, amountB
	if pool.Asset0 != assetA {
		amount0, amount1 = amountB, amountA
	}
	f.Fund(t, provider, sdk.NewCoin(pool.Asset0, amount0), sdk.NewCoin(pool.Asset1, amount1))

	_, err = f.Keeper.AddLiquidity(f.Ctx, provider, poolID, amount0, amount1, math.ZeroInt())
	require.NoError(t, err)

	pool, err = f.Keeper.GetPool(f.Ctx, poolID)
	require.NoError(t, err)
	return pool
}

// TestAddr returns a deterministic 20-byte account address for index i.
func TestAddr(i int) sdk.AccAddress {
	addr := make([]byte, 20)
	copy(addr, "pawswap_test_addr_")
	addr[18] = byte(i >> 8)
	addr[19] = byte(i)
	return sdk.AccAddress(addr)
}
