package keeper

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/dex/types"
)

// Overflow-safe arithmetic for pool accounting. Intermediate products are
// carried exactly in big.Int; only values that are stored or returned must
// fit math.Int's 256-bit range, and anything that does not aborts with
// ErrArithmeticOverflow.

// SafeAdd adds two math.Int values with overflow checking
func SafeAdd(a, b math.Int) (math.Int, error) {
	res, err := a.SafeAdd(b)
	if err != nil {
		return math.Int{}, types.ErrArithmeticOverflow.Wrapf("%s + %s", a, b)
	}
	return res, nil
}

// SafeSub subtracts b from a, refusing to go below zero
func SafeSub(a, b math.Int) (math.Int, error) {
	if a.LT(b) {
		return math.Int{}, types.ErrArithmeticOverflow.Wrapf("underflow: %s - %s", a, b)
	}
	return a.Sub(b), nil
}

// SafeMul multiplies two math.Int values with overflow checking
func SafeMul(a, b math.Int) (math.Int, error) {
	res, err := a.SafeMul(b)
	if err != nil {
		return math.Int{}, types.ErrArithmeticOverflow.Wrapf("%s * %s", a, b)
	}
	return res, nil
}

// SafeMulDiv returns floor(a * b / c).
func SafeMulDiv(a, b, c math.Int) (math.Int, error) {
	if !c.IsPositive() {
		return math.Int{}, types.ErrArithmeticOverflow.Wrapf("division by %s", c)
	}
	num := new(big.Int).Mul(a.BigInt(), b.BigInt())
	return fromBig(num.Quo(num, c.BigInt()))
}

// SafeMulDivCeil returns ceil(a * b / c).
func SafeMulDivCeil(a, b, c math.Int) (math.Int, error) {
	if !c.IsPositive() {
		return math.Int{}, types.ErrArithmeticOverflow.Wrapf("division by %s", c)
	}
	num := new(big.Int).Mul(a.BigInt(), b.BigInt())
	return fromBig(ceilQuo(num, c.BigInt()))
}

// SqrtProduct returns floor(sqrt(a * b)).
func SqrtProduct(a, b math.Int) (math.Int, error) {
	prod := new(big.Int).Mul(a.BigInt(), b.BigInt())
	if prod.Sign() < 0 {
		return math.Int{}, types.ErrInvalidAmount.Wrapf("square root of negative product %s", prod)
	}
	return fromBig(prod.Sqrt(prod))
}

// ceilQuo returns ceil(num / den) for non-negative num and positive den.
func ceilQuo(num, den *big.Int) *big.Int {
	q, r := new(big.Int).QuoRem(num, den, new(big.Int))
	if r.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	return q
}

func fromBig(v *big.Int) (math.Int, error) {
	if v.BitLen() > math.MaxBitLen {
		return math.Int{}, types.ErrArithmeticOverflow.Wrapf("result has %d bits, limit is %d", v.BitLen(), math.MaxBitLen)
	}
	return math.NewIntFromBigInt(v), nil
}

// product returns a*b exactly.
func product(a, b math.Int) *big.Int {
	return new(big.Int).Mul(a.BigInt(), b.BigInt())
}
