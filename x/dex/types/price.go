package types

import (
	"fmt"
	"math/big"

	"cosmossdk.io/math"
)

// SpotPrice is the instantaneous, unsmoothed price of BaseAsset in units of
// QuoteAsset, kept as an exact reduced fraction Num/Den. It can be moved by
// any swap in the same block and must not be used as a manipulation-resistant
// oracle.
type SpotPrice struct {
	BaseAsset  string   `json:"base_asset"`
	QuoteAsset string   `json:"quote_asset"`
	Num        math.Int `json:"num"`
	Den        math.Int `json:"den"`
}

// NewSpotPrice builds the price reserveQuote/reserveBase in lowest terms.
func NewSpotPrice(base, quote string, reserveBase, reserveQuote math.Int) (SpotPrice, error) {
	if !reserveBase.IsPositive() || !reserveQuote.IsPositive() {
		return SpotPrice{}, ErrInsufficientLiquidity.Wrapf("cannot price %s against empty reserves", base)
	}

	num, den := reserveQuote.BigInt(), reserveBase.BigInt()
	gcd := new(big.Int).GCD(nil, nil, num, den)
	return SpotPrice{
		BaseAsset:  base,
		QuoteAsset: quote,
		Num:        math.NewIntFromBigInt(num.Quo(num, gcd)),
		Den:        math.NewIntFromBigInt(den.Quo(den, gcd)),
	}, nil
}

// Rat returns the price as an exact big.Rat.
func (p SpotPrice) Rat() *big.Rat {
	return new(big.Rat).SetFrac(p.Num.BigInt(), p.Den.BigInt())
}

// Dec returns the price truncated to 18 decimals, for display.
func (p SpotPrice) Dec() math.LegacyDec {
	return math.LegacyNewDecFromInt(p.Num).QuoInt(p.Den)
}

func (p SpotPrice) String() string {
	return fmt.Sprintf("%s/%s", p.Num, p.Den)
}
