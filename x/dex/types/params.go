package types

import (
	"fmt"

	"cosmossdk.io/math"
)

const (
	// DefaultMinimumLiquidity is the number of shares locked forever on the
	// first deposit into a pool.
	DefaultMinimumLiquidity = 100

	// DefaultFeeNumerator and DefaultFeeDenominator give a 0.3% swap fee.
	DefaultFeeNumerator   = 3
	DefaultFeeDenominator = 1000
)

// Fee is a swap fee expressed as an exact fraction Numerator/Denominator.
type Fee struct {
	Numerator   uint64 `json:"numerator"`
	Denominator uint64 `json:"denominator"`
}

// NewFee returns a fee of numerator/denominator.
func NewFee(numerator, denominator uint64) Fee {
	return Fee{Numerator: numerator, Denominator: denominator}
}

// IsZero reports whether the fee was left unset.
func (f Fee) IsZero() bool {
	return f.Numerator == 0 && f.Denominator == 0
}

// Validate checks that the fee is a proper fraction below one.
func (f Fee) Validate() error {
	if f.Denominator == 0 {
		return ErrInvalidFee.Wrap("fee denominator must be positive")
	}
	if f.Numerator >= f.Denominator {
		return ErrInvalidFee.Wrapf("fee %s must be below 100%%", f)
	}
	return nil
}

// LTE reports whether f <= other, comparing cross products exactly.
func (f Fee) LTE(other Fee) bool {
	lhs := math.NewIntFromUint64(f.Numerator).Mul(math.NewIntFromUint64(other.Denominator))
	rhs := math.NewIntFromUint64(other.Numerator).Mul(math.NewIntFromUint64(f.Denominator))
	return lhs.LTE(rhs)
}

// Rate returns the fee as a decimal, for display and metrics only.
func (f Fee) Rate() math.LegacyDec {
	if f.Denominator == 0 {
		return math.LegacyZeroDec()
	}
	return math.LegacyNewDecFromInt(math.NewIntFromUint64(f.Numerator)).
		QuoInt(math.NewIntFromUint64(f.Denominator))
}

func (f Fee) String() string {
	return fmt.Sprintf("%d/%d", f.Numerator, f.Denominator)
}

// Params defines the policy parameters of the dex module.
type Params struct {
	// DefaultFee applies to pools created without an explicit fee.
	DefaultFee Fee `json:"default_fee"`
	// MaxFee caps the fee any pool may be created with.
	MaxFee Fee `json:"max_fee"`
	// MinimumLiquidity shares are locked on the first deposit into a pool.
	MinimumLiquidity math.Int `json:"minimum_liquidity"`
}

// DefaultParams returns default dex parameters
func DefaultParams() Params {
	return Params{
		DefaultFee:       NewFee(DefaultFeeNumerator, DefaultFeeDenominator),
		MaxFee:           NewFee(1, 10),
		MinimumLiquidity: math.NewInt(DefaultMinimumLiquidity),
	}
}

// Validate performs basic validation of dex parameters
func (p Params) Validate() error {
	if err := p.DefaultFee.Validate(); err != nil {
		return ErrInvalidParams.Wrapf("default fee: %s", err)
	}
	if err := p.MaxFee.Validate(); err != nil {
		return ErrInvalidParams.Wrapf("max fee: %s", err)
	}
	if !p.DefaultFee.LTE(p.MaxFee) {
		return ErrInvalidParams.Wrapf("default fee %s exceeds max fee %s", p.DefaultFee, p.MaxFee)
	}
	if p.MinimumLiquidity.IsNil() || p.MinimumLiquidity.IsNegative() {
		return ErrInvalidParams.Wrap("minimum liquidity must be non-negative")
	}
	return nil
}
