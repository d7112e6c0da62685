package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Position is one LP share balance as exported in genesis.
type Position struct {
	PoolId uint64   `json:"pool_id"`
	Owner  string   `json:"owner"`
	Shares math.Int `json:"shares"`
}

// GenesisState defines the dex module's genesis state.
type GenesisState struct {
	Params     Params     `json:"params"`
	Pools      []Pool     `json:"pools"`
	Positions  []Position `json:"positions"`
	NextPoolId uint64     `json:"next_pool_id"`
}

// DefaultGenesis returns the default genesis state
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:     DefaultParams(),
		Pools:      []Pool{},
		Positions:  []Position{},
		NextPoolId: 1,
	}
}

// Validate performs basic genesis state validation. Besides per-record checks
// it verifies that share balances sum to each pool's total supply.
func (gs GenesisState) Validate(order AssetOrdering) error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}
	if gs.NextPoolId == 0 {
		return ErrInvalidGenesis.Wrap("next pool id must be positive")
	}

	poolIDs := make(map[uint64]Pool, len(gs.Pools))
	pairs := make(map[string]uint64, len(gs.Pools))
	for _, pool := range gs.Pools {
		if pool.Id == 0 || pool.Id >= gs.NextPoolId {
			return ErrInvalidGenesis.Wrapf("pool id %d outside [1, %d)", pool.Id, gs.NextPoolId)
		}
		if _, dup := poolIDs[pool.Id]; dup {
			return ErrInvalidGenesis.Wrapf("duplicate pool id %d", pool.Id)
		}
		if err := pool.Validate(order); err != nil {
			return ErrInvalidGenesis.Wrapf("pool %d: %s", pool.Id, err)
		}
		pairKey := string(pool.Pair().Key())
		if other, dup := pairs[pairKey]; dup {
			return ErrInvalidGenesis.Wrapf("pools %d and %d share pair %s", other, pool.Id, pool.Pair())
		}
		poolIDs[pool.Id] = pool
		pairs[pairKey] = pool.Id
	}

	sums := make(map[uint64]math.Int, len(gs.Pools))
	seen := make(map[string]struct{}, len(gs.Positions))
	var err error
	for _, pos := range gs.Positions {
		if _, ok := poolIDs[pos.PoolId]; !ok {
			return ErrInvalidGenesis.Wrapf("position of %s references unknown pool %d", pos.Owner, pos.PoolId)
		}
		if _, err = sdk.AccAddressFromBech32(pos.Owner); err != nil {
			return ErrInvalidGenesis.Wrapf("position owner %q: %s", pos.Owner, err)
		}
		if pos.Shares.IsNil() || !pos.Shares.IsPositive() {
			return ErrInvalidGenesis.Wrapf("position of %s in pool %d must hold positive shares", pos.Owner, pos.PoolId)
		}
		key := fmt.Sprintf("%d/%s", pos.PoolId, pos.Owner)
		if _, dup := seen[key]; dup {
			return ErrInvalidGenesis.Wrapf("duplicate position %s", key)
		}
		seen[key] = struct{}{}

		sum, ok := sums[pos.PoolId]
		if !ok {
			sum = math.ZeroInt()
		}
		if sums[pos.PoolId], err = sum.SafeAdd(pos.Shares); err != nil {
			return ErrInvalidGenesis.Wrapf("pool %d: share sum: %s", pos.PoolId, err)
		}
	}

	for id, pool := range poolIDs {
		sum, ok := sums[id]
		if !ok {
			sum = math.ZeroInt()
		}
		if !sum.Equal(pool.TotalShares) {
			return ErrInvalidGenesis.Wrapf("pool %d: positions sum to %s, total shares %s", id, sum, pool.TotalShares)
		}
	}
	return nil
}
