package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/ledger/types"
)

// RegisterInvariants registers the ledger invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "positive-balances", PositiveBalancesInvariant(k))
}

// PositiveBalancesInvariant checks that every stored balance is a valid,
// strictly positive coin. Zero balances are deleted, never stored.
func PositiveBalancesInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg    string
			broken bool
		)

		err := k.IterateAllBalances(ctx, func(addr sdk.AccAddress, coin sdk.Coin) bool {
			if err := coin.Validate(); err != nil || !coin.IsPositive() {
				broken = true
				msg += fmt.Sprintf("\t%s holds invalid balance %s\n", addr, coin)
			}
			return false
		})
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "positive-balances", err.Error()), true
		}

		return sdk.FormatInvariant(types.ModuleName, "positive-balances", msg), broken
	}
}
