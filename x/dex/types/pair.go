package types

import (
	"encoding/binary"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// AssetOrdering is a total order over asset identifiers. It returns a negative
// number when a sorts before b, zero when they are the same asset and a
// positive number otherwise.
type AssetOrdering func(a, b string) int

// LexicographicOrdering orders assets by byte-wise string comparison.
func LexicographicOrdering(a, b string) int {
	return strings.Compare(a, b)
}

// AssetPair is the canonical, order-independent key of a pool: Asset0 always
// sorts before Asset1 under the configured ordering.
type AssetPair struct {
	Asset0 string `json:"asset0"`
	Asset1 string `json:"asset1"`
}

// ValidateAsset checks that an asset identifier is a well-formed denom.
func ValidateAsset(asset string) error {
	if err := sdk.ValidateDenom(asset); err != nil {
		return ErrInvalidAsset.Wrapf("%q: %s", asset, err)
	}
	return nil
}

// NewAssetPair canonicalizes two asset identifiers using order.
func NewAssetPair(assetA, assetB string, order AssetOrdering) (AssetPair, error) {
	if err := ValidateAsset(assetA); err != nil {
		return AssetPair{}, err
	}
	if err := ValidateAsset(assetB); err != nil {
		return AssetPair{}, err
	}
	if order == nil {
		order = LexicographicOrdering
	}

	cmp := order(assetA, assetB)
	if assetA == assetB || cmp == 0 {
		return AssetPair{}, ErrIdenticalAssets.Wrapf("%s and %s", assetA, assetB)
	}
	if cmp > 0 {
		assetA, assetB = assetB, assetA
	}
	return AssetPair{Asset0: assetA, Asset1: assetB}, nil
}

// Key returns the store key bytes of the pair. Each asset is length-prefixed
// since denoms may themselves contain separators such as '/'.
func (p AssetPair) Key() []byte {
	key := make([]byte, 0, 4+len(p.Asset0)+len(p.Asset1))
	key = binary.BigEndian.AppendUint16(key, uint16(len(p.Asset0)))
	key = append(key, p.Asset0...)
	key = binary.BigEndian.AppendUint16(key, uint16(len(p.Asset1)))
	return append(key, p.Asset1...)
}

// Contains reports whether asset is one side of the pair.
func (p AssetPair) Contains(asset string) bool {
	return asset == p.Asset0 || asset == p.Asset1
}

// Other returns the counter-asset of asset within the pair.
func (p AssetPair) Other(asset string) (string, error) {
	switch asset {
	case p.Asset0:
		return p.Asset1, nil
	case p.Asset1:
		return p.Asset0, nil
	default:
		return "", ErrInvalidAsset.Wrapf("%s is not part of pair %s", asset, p)
	}
}

func (p AssetPair) String() string {
	return p.Asset0 + "-" + p.Asset1
}
