package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	// ModuleName defines the module name
	ModuleName = "ledger"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName
)

var (
	// BalancesPrefix prefixes every (account, denom) balance entry.
	BalancesPrefix = []byte{0x01}

	// InitializedKey is written once by InitGenesis. It also keeps the
	// store non-empty, so its first committed version can be reloaded.
	InitializedKey = []byte{0x02}
)

// CreateAccountBalancesPrefix returns the prefix of all balances of addr.
func CreateAccountBalancesPrefix(addr sdk.AccAddress) []byte {
	return append(append([]byte{}, BalancesPrefix...), address.MustLengthPrefix(addr)...)
}

// BalanceKey returns the store key of addr's balance in denom.
func BalanceKey(addr sdk.AccAddress, denom string) []byte {
	return append(CreateAccountBalancesPrefix(addr), denom...)
}

// AddressAndDenomFromBalanceKey splits a balance key with BalancesPrefix
// already stripped.
func AddressAndDenomFromBalanceKey(key []byte) (sdk.AccAddress, string, error) {
	if len(key) == 0 {
		return nil, "", ErrInvalidAddress.Wrap("empty balance key")
	}
	addrLen := int(key[0])
	if len(key) < 1+addrLen {
		return nil, "", ErrInvalidAddress.Wrapf("balance key too short for %d-byte address", addrLen)
	}
	return sdk.AccAddress(key[1 : 1+addrLen]), string(key[1+addrLen:]), nil
}
