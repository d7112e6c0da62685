package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/ledger/types"
)

// InitGenesis credits every genesis balance. It may run only once per store.
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return err
	}
	if k.IsInitialized(ctx) {
		return types.ErrAlreadyInitialized
	}
	k.getStore(ctx).Set(types.InitializedKey, []byte{1})
	for _, b := range genState.Balances {
		addr, err := sdk.AccAddressFromBech32(b.Address)
		if err != nil {
			return err
		}
		for _, coin := range b.Coins {
			if err := k.addBalance(ctx, addr, coin); err != nil {
				return fmt.Errorf("failed to credit %s: %w", b.Address, err)
			}
		}
	}
	return nil
}

// IsInitialized reports whether InitGenesis has run against this store.
func (k Keeper) IsInitialized(ctx context.Context) bool {
	return k.getStore(ctx).Has(types.InitializedKey)
}

// ExportGenesis returns every non-zero balance grouped by account.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	var (
		balances []types.Balance
		index    = map[string]int{}
	)
	err := k.IterateAllBalances(ctx, func(addr sdk.AccAddress, coin sdk.Coin) bool {
		key := addr.String()
		i, ok := index[key]
		if !ok {
			i = len(balances)
			index[key] = i
			balances = append(balances, types.Balance{Address: key, Coins: sdk.NewCoins()})
		}
		balances[i].Coins = balances[i].Coins.Add(coin)
		return false
	})
	if err != nil {
		return nil, err
	}
	if balances == nil {
		balances = []types.Balance{}
	}
	return &types.GenesisState{Balances: balances}, nil
}
