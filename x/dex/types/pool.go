package types

import (
	"cosmossdk.io/math"
)

// Pool is the state record of one constant-product liquidity pool.
type Pool struct {
	Id          uint64   `json:"id"`
	Asset0      string   `json:"asset0"`
	Asset1      string   `json:"asset1"`
	Reserve0    math.Int `json:"reserve0"`
	Reserve1    math.Int `json:"reserve1"`
	TotalShares math.Int `json:"total_shares"`
	Fee         Fee      `json:"fee"`
}

// NewPool returns an empty pool for pair.
func NewPool(id uint64, pair AssetPair, fee Fee) Pool {
	return Pool{
		Id:          id,
		Asset0:      pair.Asset0,
		Asset1:      pair.Asset1,
		Reserve0:    math.ZeroInt(),
		Reserve1:    math.ZeroInt(),
		TotalShares: math.ZeroInt(),
		Fee:         fee,
	}
}

// Pair returns the canonical asset pair of the pool.
func (p Pool) Pair() AssetPair {
	return AssetPair{Asset0: p.Asset0, Asset1: p.Asset1}
}

// IsEmpty reports whether the pool holds no liquidity.
func (p Pool) IsEmpty() bool {
	return p.TotalShares.IsZero()
}

// Reserve returns the reserve held for asset.
func (p Pool) Reserve(asset string) (math.Int, error) {
	switch asset {
	case p.Asset0:
		return p.Reserve0, nil
	case p.Asset1:
		return p.Reserve1, nil
	default:
		return math.Int{}, ErrInvalidAsset.Wrapf("%s is not traded by pool %d", asset, p.Id)
	}
}

// SwapSides orients the pool for a trade that pays assetIn, returning the
// input reserve, the output reserve and the output asset.
func (p Pool) SwapSides(assetIn string) (reserveIn, reserveOut math.Int, assetOut string, err error) {
	switch assetIn {
	case p.Asset0:
		return p.Reserve0, p.Reserve1, p.Asset1, nil
	case p.Asset1:
		return p.Reserve1, p.Reserve0, p.Asset0, nil
	default:
		return math.Int{}, math.Int{}, "", ErrInvalidAsset.Wrapf("%s is not traded by pool %d", assetIn, p.Id)
	}
}

// WithReserves returns a copy of the pool with reserves oriented by assetIn.
func (p Pool) WithReserves(assetIn string, reserveIn, reserveOut math.Int) Pool {
	if assetIn == p.Asset0 {
		p.Reserve0, p.Reserve1 = reserveIn, reserveOut
	} else {
		p.Reserve0, p.Reserve1 = reserveOut, reserveIn
	}
	return p
}

// Validate checks the structural invariants of a pool record: canonical
// asset order, non-negative reserves and shares, and that shares exist
// exactly when both reserves do.
func (p Pool) Validate(order AssetOrdering) error {
	pair, err := NewAssetPair(p.Asset0, p.Asset1, order)
	if err != nil {
		return err
	}
	if pair.Asset0 != p.Asset0 {
		return ErrInvalidPoolState.Wrapf("pool %d assets %s/%s are not in canonical order", p.Id, p.Asset0, p.Asset1)
	}
	if err := p.Fee.Validate(); err != nil {
		return err
	}
	for name, v := range map[string]math.Int{"reserve0": p.Reserve0, "reserve1": p.Reserve1, "total_shares": p.TotalShares} {
		if v.IsNil() || v.IsNegative() {
			return ErrInvalidPoolState.Wrapf("pool %d: %s must be non-negative", p.Id, name)
		}
	}

	hasShares := p.TotalShares.IsPositive()
	if hasShares != p.Reserve0.IsPositive() || hasShares != p.Reserve1.IsPositive() {
		return ErrInvalidPoolState.Wrapf("pool %d: shares %s inconsistent with reserves %s/%s",
			p.Id, p.TotalShares, p.Reserve0, p.Reserve1)
	}
	return nil
}
