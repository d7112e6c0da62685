package types

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
)

func TestGenesisState_Validate(t *testing.T) {
	addr := sdk.AccAddress(secp256k1.GenPrivKey().PubKey().Address()).String()
	coins := sdk.NewCoins(sdk.NewCoin("uatom", math.NewInt(10)))

	require.NoError(t, DefaultGenesis().Validate())
	require.NoError(t, GenesisState{Balances: []Balance{{Address: addr, Coins: coins}}}.Validate())

	dup := GenesisState{Balances: []Balance{{Address: addr, Coins: coins}, {Address: addr, Coins: coins}}}
	require.ErrorIs(t, dup.Validate(), ErrInvalidAddress)

	bad := GenesisState{Balances: []Balance{{Address: "nope", Coins: coins}}}
	require.ErrorIs(t, bad.Validate(), ErrInvalidAddress)

	unsorted := GenesisState{Balances: []Balance{{Address: addr, Coins: sdk.Coins{
		sdk.NewCoin("upaw", math.NewInt(1)),
		sdk.NewCoin("uatom", math.NewInt(1)),
	}}}}
	require.ErrorIs(t, unsorted.Validate(), ErrInvalidCoins)
}

func TestBalanceKey_RoundTrip(t *testing.T) {
	addr := sdk.AccAddress([]byte("ledger_test_address_"))

	key := BalanceKey(addr, "ibc/ABC")
	gotAddr, gotDenom, err := AddressAndDenomFromBalanceKey(key[len(BalancesPrefix):])
	require.NoError(t, err)
	require.True(t, addr.Equals(gotAddr))
	require.Equal(t, "ibc/ABC", gotDenom)

	_, _, err = AddressAndDenomFromBalanceKey([]byte{20, 1, 2})
	require.ErrorIs(t, err, ErrInvalidAddress)
}
