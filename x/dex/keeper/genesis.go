package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/dex/types"
)

// InitGenesis initializes the dex module's state from a genesis state
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(k.ordering); err != nil {
		return err
	}

	// Set parameters
	if err := k.SetParams(ctx, genState.Params); err != nil {
		return fmt.Errorf("failed to set params: %w", err)
	}

	// Set next pool ID counter
	k.SetNextPoolID(ctx, genState.NextPoolId)

	// Initialize pools and their pair index
	store := k.getStore(ctx)
	for _, pool := range genState.Pools {
		if err := k.setPool(ctx, pool); err != nil {
			return fmt.Errorf("failed to set pool %d: %w", pool.Id, err)
		}
		store.Set(types.GetPoolByAssetsKey(pool.Pair()), sdk.Uint64ToBigEndian(pool.Id))
		k.metrics.observeReserves(pool)
	}

	// Initialize share balances
	for _, pos := range genState.Positions {
		owner, err := sdk.AccAddressFromBech32(pos.Owner)
		if err != nil {
			return fmt.Errorf("invalid position owner %s: %w", pos.Owner, err)
		}
		if err := k.setShares(ctx, pos.PoolId, owner, pos.Shares); err != nil {
			return fmt.Errorf("failed to set shares of %s in pool %d: %w", pos.Owner, pos.PoolId, err)
		}
	}

	return nil
}

// ExportGenesis returns the dex module's exported genesis
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	pools, err := k.GetAllPools(ctx)
	if err != nil {
		return nil, err
	}

	positions := []types.Position{}
	err = k.IterateAllShares(ctx, func(poolID uint64, owner sdk.AccAddress, shares math.Int) bool {
		positions = append(positions, types.Position{PoolId: poolID, Owner: owner.String(), Shares: shares})
		return false
	})
	if err != nil {
		return nil, err
	}

	if pools == nil {
		pools = []types.Pool{}
	}
	return &types.GenesisState{
		Params:     k.GetParams(ctx),
		Pools:      pools,
		Positions:  positions,
		NextPoolId: k.GetNextPoolID(ctx),
	}, nil
}
