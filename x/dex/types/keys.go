package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// ModuleName defines the module name
	ModuleName = "dex"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// LockedSharesName names the account that holds the permanently locked
	// minimum liquidity of every pool.
	LockedSharesName = ModuleName + "/locked"
)

// Store key prefixes
var (
	PoolKey         = []byte{0x01} // prefix for pool store
	PoolCountKey    = []byte{0x02} // key for next pool id
	SharesKey       = []byte{0x03} // prefix for LP share balances
	PoolByAssetsKey = []byte{0x04} // prefix for pool lookup by canonical pair
	ParamsKey       = []byte{0x05} // key for module params
)

// GetPoolKey returns the store key for a pool
func GetPoolKey(poolId uint64) []byte {
	return append(append([]byte{}, PoolKey...), sdk.Uint64ToBigEndian(poolId)...)
}

// GetPoolSharesPrefix returns the prefix under which every share balance of a pool lives
func GetPoolSharesPrefix(poolId uint64) []byte {
	return append(append([]byte{}, SharesKey...), sdk.Uint64ToBigEndian(poolId)...)
}

// GetSharesKey returns the store key for an account's share balance in a pool
func GetSharesKey(poolId uint64, owner sdk.AccAddress) []byte {
	return append(GetPoolSharesPrefix(poolId), owner.Bytes()...)
}

// GetPoolByAssetsKey returns the store key for pool lookup by canonical pair
func GetPoolByAssetsKey(pair AssetPair) []byte {
	return append(append([]byte{}, PoolByAssetsKey...), pair.Key()...)
}
