package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Balance is the holdings of one account as exported in genesis.
type Balance struct {
	Address string    `json:"address"`
	Coins   sdk.Coins `json:"coins"`
}

// GenesisState defines the ledger module's genesis state.
type GenesisState struct {
	Balances []Balance `json:"balances"`
}

// DefaultGenesis returns an empty ledger.
func DefaultGenesis() *GenesisState {
	return &GenesisState{Balances: []Balance{}}
}

// Validate checks addresses, coins and that no account appears twice.
func (gs GenesisState) Validate() error {
	seen := make(map[string]struct{}, len(gs.Balances))
	for _, b := range gs.Balances {
		if _, err := sdk.AccAddressFromBech32(b.Address); err != nil {
			return ErrInvalidAddress.Wrapf("%q: %s", b.Address, err)
		}
		if _, dup := seen[b.Address]; dup {
			return ErrInvalidAddress.Wrapf("duplicate balance for %s", b.Address)
		}
		seen[b.Address] = struct{}{}
		if err := b.Coins.Validate(); err != nil {
			return ErrInvalidCoins.Wrapf("%s: %s", b.Address, err)
		}
	}
	return nil
}
