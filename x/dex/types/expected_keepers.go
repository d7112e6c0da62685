package types

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// LedgerKeeper is the custody backend the dex moves assets through. The dex
// never mints or burns assets; it only transfers existing balances between
// accounts and its own custody address.
type LedgerKeeper interface {
	SendCoins(ctx context.Context, from, to sdk.AccAddress, amt sdk.Coins) error
	GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin
}
