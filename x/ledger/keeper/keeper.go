package keeper

import (
	"context"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/ledger/types"
)

// Event types emitted by the ledger.
const (
	EventTypeTransfer = "transfer"
	EventTypeMint     = "mint"

	AttributeKeySender    = "sender"
	AttributeKeyRecipient = "recipient"
	AttributeKeyAmount    = "amount"
)

// Keeper is a store-backed custody ledger: balances per (account, denom)
// with transfers between accounts. It backs the dex's asset movements when
// no full bank module is hosted.
type Keeper struct {
	storeKey storetypes.StoreKey
}

// NewKeeper creates a new ledger Keeper instance
func NewKeeper(key storetypes.StoreKey) Keeper {
	return Keeper{storeKey: key}
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}

// GetBalance returns addr's balance of denom, zero if it holds none.
func (k Keeper) GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin {
	bz := k.getStore(ctx).Get(types.BalanceKey(addr, denom))
	if bz == nil {
		return sdk.NewCoin(denom, math.ZeroInt())
	}

	var amount math.Int
	if err := amount.Unmarshal(bz); err != nil {
		panic(err)
	}
	return sdk.NewCoin(denom, amount)
}

// GetAllBalances returns every non-zero balance of addr, sorted by denom.
func (k Keeper) GetAllBalances(ctx context.Context, addr sdk.AccAddress) sdk.Coins {
	accountStore := prefix.NewStore(k.getStore(ctx), types.CreateAccountBalancesPrefix(addr))
	iterator := accountStore.Iterator(nil, nil)
	defer iterator.Close()

	balances := sdk.NewCoins()
	for ; iterator.Valid(); iterator.Next() {
		var amount math.Int
		if err := amount.Unmarshal(iterator.Value()); err != nil {
			panic(err)
		}
		balances = balances.Add(sdk.NewCoin(string(iterator.Key()), amount))
	}
	return balances
}

// IterateAllBalances walks every balance of every account until cb returns true.
func (k Keeper) IterateAllBalances(ctx context.Context, cb func(addr sdk.AccAddress, coin sdk.Coin) (stop bool)) error {
	balancesStore := prefix.NewStore(k.getStore(ctx), types.BalancesPrefix)
	iterator := balancesStore.Iterator(nil, nil)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		addr, denom, err := types.AddressAndDenomFromBalanceKey(iterator.Key())
		if err != nil {
			return err
		}
		var amount math.Int
		if err := amount.Unmarshal(iterator.Value()); err != nil {
			return err
		}
		if cb(addr, sdk.NewCoin(denom, amount)) {
			break
		}
	}
	return nil
}

// SendCoins moves amt from one account to another. Either every coin moves
// or, on error, none does.
func (k Keeper) SendCoins(ctx context.Context, from, to sdk.AccAddress, amt sdk.Coins) error {
	if from.Empty() || to.Empty() {
		return types.ErrInvalidAddress.Wrap("sender and recipient must be set")
	}
	if !amt.IsValid() {
		return types.ErrInvalidCoins.Wrap(amt.String())
	}

	for _, coin := range amt {
		balance := k.GetBalance(ctx, from, coin.Denom)
		if balance.Amount.LT(coin.Amount) {
			return types.ErrInsufficientBalance.Wrapf("%s has %s, needs %s", from, balance, coin)
		}
	}
	for _, coin := range amt {
		balance := k.GetBalance(ctx, from, coin.Denom)
		if err := k.setBalance(ctx, from, balance.Amount.Sub(coin.Amount), coin.Denom); err != nil {
			return err
		}
		if err := k.addBalance(ctx, to, coin); err != nil {
			return err
		}
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(
		EventTypeTransfer,
		sdk.NewAttribute(AttributeKeySender, from.String()),
		sdk.NewAttribute(AttributeKeyRecipient, to.String()),
		sdk.NewAttribute(AttributeKeyAmount, amt.String()),
	))
	return nil
}

// MintCoins credits addr with new coins. It exists for account provisioning
// in genesis, simulation and tests; the dex never calls it.
func (k Keeper) MintCoins(ctx context.Context, addr sdk.AccAddress, amt sdk.Coins) error {
	if addr.Empty() {
		return types.ErrInvalidAddress.Wrap("recipient must be set")
	}
	if !amt.IsValid() {
		return types.ErrInvalidCoins.Wrap(amt.String())
	}
	for _, coin := range amt {
		if err := k.addBalance(ctx, addr, coin); err != nil {
			return err
		}
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(
		EventTypeMint,
		sdk.NewAttribute(AttributeKeyRecipient, addr.String()),
		sdk.NewAttribute(AttributeKeyAmount, amt.String()),
	))
	return nil
}

func (k Keeper) addBalance(ctx context.Context, addr sdk.AccAddress, coin sdk.Coin) error {
	balance := k.GetBalance(ctx, addr, coin.Denom)
	sum, err := balance.Amount.SafeAdd(coin.Amount)
	if err != nil {
		return types.ErrInvalidCoins.Wrapf("balance of %s in %s overflows", addr, coin.Denom)
	}
	return k.setBalance(ctx, addr, sum, coin.Denom)
}

func (k Keeper) setBalance(ctx context.Context, addr sdk.AccAddress, amount math.Int, denom string) error {
	store := k.getStore(ctx)
	key := types.BalanceKey(addr, denom)
	if amount.IsZero() {
		store.Delete(key)
		return nil
	}
	bz, err := amount.Marshal()
	if err != nil {
		return err
	}
	store.Set(key, bz)
	return nil
}

func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	return sdk.UnwrapSDKContext(ctx).KVStore(k.storeKey)
}
