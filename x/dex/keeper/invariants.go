package keeper

import (
	"fmt"
	"sort"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/dex/types"
)

// RegisterInvariants registers all DEX invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "pool-state", PoolStateInvariant(k))
	ir.RegisterRoute(types.ModuleName, "pool-shares", PoolSharesInvariant(k))
	ir.RegisterRoute(types.ModuleName, "module-balance", ModuleBalanceInvariant(k))
}

// AllInvariants runs all invariants of the DEX module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := PoolStateInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		res, stop = PoolSharesInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		return ModuleBalanceInvariant(k)(ctx)
	}
}

// PoolStateInvariant checks every pool record: non-negative reserves and
// shares, and shares outstanding exactly when both reserves are non-zero.
func PoolStateInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		pools, err := k.GetAllPools(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "pool-state", err.Error()), true
		}
		for _, pool := range pools {
			if err := pool.Validate(k.ordering); err != nil {
				count++
				msg += fmt.Sprintf("pool %d: %s\n", pool.Id, err)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "pool-state",
			fmt.Sprintf("found %d invalid pools\n%s", count, msg),
		), broken
	}
}

// PoolSharesInvariant checks that the share ledger of each pool sums to the
// pool's total share supply.
func PoolSharesInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		pools, err := k.GetAllPools(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "pool-shares", err.Error()), true
		}
		for _, pool := range pools {
			sum := math.ZeroInt()
			if err := k.IterateShares(ctx, pool.Id, func(_ sdk.AccAddress, shares math.Int) bool {
				sum = sum.Add(shares)
				return false
			}); err != nil {
				count++
				msg += fmt.Sprintf("pool %d: %s\n", pool.Id, err)
				continue
			}

			if !sum.Equal(pool.TotalShares) {
				count++
				msg += fmt.Sprintf("pool %d: ledger holds %s shares, total supply is %s\n",
					pool.Id, sum, pool.TotalShares)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "pool-shares",
			fmt.Sprintf("found %d pools with mismatched shares\n%s", count, msg),
		), broken
	}
}

// ModuleBalanceInvariant checks that the custody account covers the sum of
// all pool reserves of each asset. Assets sent to the custody account from
// outside the dex make it hold more, never less.
func ModuleBalanceInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		pools, err := k.GetAllPools(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "module-balance", err.Error()), true
		}

		totals := make(map[string]math.Int)
		for _, pool := range pools {
			for asset, reserve := range map[string]math.Int{pool.Asset0: pool.Reserve0, pool.Asset1: pool.Reserve1} {
				if existing, ok := totals[asset]; ok {
					totals[asset] = existing.Add(reserve)
				} else {
					totals[asset] = reserve
				}
			}
		}

		assets := make([]string, 0, len(totals))
		for asset := range totals {
			assets = append(assets, asset)
		}
		sort.Strings(assets)

		for _, asset := range assets {
			balance := k.ledger.GetBalance(ctx, k.moduleAddr, asset)
			if balance.Amount.LT(totals[asset]) {
				count++
				msg += fmt.Sprintf("%s: custody holds %s < reserves %s\n", asset, balance.Amount, totals[asset])
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "module-balance",
			fmt.Sprintf("found %d assets with custody mismatch\n%s", count, msg),
		), broken
	}
}
