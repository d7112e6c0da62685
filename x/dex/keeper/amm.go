package keeper

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/dex/types"
)

// Constant-product pricing. These functions are pure: they read no state and
// are shared by the mutating operations and the quote queries.

// GetAmountOut returns the output of selling amountIn into a pool with the
// given reserves. The fee stays in the input reserve:
//
//	inWithFee = amountIn * (den - num)
//	amountOut = floor(inWithFee * reserveOut / (reserveIn * den + inWithFee))
func GetAmountOut(amountIn, reserveIn, reserveOut math.Int, fee types.Fee) (math.Int, error) {
	if err := validateAmount("amount in", amountIn); err != nil {
		return math.Int{}, err
	}
	if !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return math.Int{}, types.ErrInsufficientLiquidity.Wrap("pool has no reserves")
	}

	den := new(big.Int).SetUint64(fee.Denominator)
	keep := new(big.Int).SetUint64(fee.Denominator - fee.Numerator)

	inWithFee := new(big.Int).Mul(amountIn.BigInt(), keep)
	num := new(big.Int).Mul(inWithFee, reserveOut.BigInt())
	denom := new(big.Int).Mul(reserveIn.BigInt(), den)
	denom.Add(denom, inWithFee)

	out, err := fromBig(num.Quo(num, denom))
	if err != nil {
		return math.Int{}, err
	}
	if out.IsZero() {
		return math.Int{}, types.ErrZeroAmount.Wrapf("input %s too small to produce any output", amountIn)
	}
	return out, nil
}

// GetAmountIn returns the smallest input that buys at least amountOut:
//
//	amountIn = ceil(reserveIn * amountOut * den / ((reserveOut - amountOut) * (den - num)))
//
// Rounding up keeps any remainder in the pool.
func GetAmountIn(amountOut, reserveIn, reserveOut math.Int, fee types.Fee) (math.Int, error) {
	if err := validateAmount("amount out", amountOut); err != nil {
		return math.Int{}, err
	}
	if !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return math.Int{}, types.ErrInsufficientLiquidity.Wrap("pool has no reserves")
	}
	if amountOut.GTE(reserveOut) {
		return math.Int{}, types.ErrInsufficientLiquidity.Wrapf("requested %s, reserve holds %s", amountOut, reserveOut)
	}

	num := new(big.Int).Mul(reserveIn.BigInt(), amountOut.BigInt())
	num.Mul(num, new(big.Int).SetUint64(fee.Denominator))

	denom := new(big.Int).Sub(reserveOut.BigInt(), amountOut.BigInt())
	denom.Mul(denom, new(big.Int).SetUint64(fee.Denominator-fee.Numerator))

	return fromBig(ceilQuo(num, denom))
}

// CalculateInitialShares returns the share supply created by the first
// deposit, floor(sqrt(amount0 * amount1)), and the part of it credited to the
// provider once minimumLiquidity is locked away.
func CalculateInitialShares(amount0, amount1, minimumLiquidity math.Int) (total, minted math.Int, err error) {
	total, err = SqrtProduct(amount0, amount1)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if total.LTE(minimumLiquidity) {
		return math.Int{}, math.Int{}, types.ErrInsufficientInitialLiquidity.Wrapf(
			"sqrt(%s * %s) = %s does not exceed locked minimum %s", amount0, amount1, total, minimumLiquidity)
	}
	return total, total.Sub(minimumLiquidity), nil
}

// CalculateOptimalDeposit picks the largest amounts, each within its desired
// bound, that match the pool's current reserve ratio. Amounts round down.
func CalculateOptimalDeposit(amount0Desired, amount1Desired, reserve0, reserve1 math.Int) (used0, used1 math.Int, err error) {
	optimal1, err := SafeMulDiv(amount0Desired, reserve1, reserve0)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if optimal1.LTE(amount1Desired) {
		used0, used1 = amount0Desired, optimal1
	} else {
		optimal0, err := SafeMulDiv(amount1Desired, reserve0, reserve1)
		if err != nil {
			return math.Int{}, math.Int{}, err
		}
		used0, used1 = optimal0, amount1Desired
	}

	if used0.IsZero() || used1.IsZero() {
		return math.Int{}, math.Int{}, types.ErrZeroAmount.Wrapf(
			"deposit of %s/%s rounds to zero at reserves %s/%s", amount0Desired, amount1Desired, reserve0, reserve1)
	}
	return used0, used1, nil
}

// CalculateSharesMinted returns the shares a proportional deposit earns,
// taking the smaller of the two per-asset ratios.
func CalculateSharesMinted(used0, used1, reserve0, reserve1, totalShares math.Int) (math.Int, error) {
	shares0, err := SafeMulDiv(used0, totalShares, reserve0)
	if err != nil {
		return math.Int{}, err
	}
	shares1, err := SafeMulDiv(used1, totalShares, reserve1)
	if err != nil {
		return math.Int{}, err
	}

	shares := math.MinInt(shares0, shares1)
	if shares.IsZero() {
		return math.Int{}, types.ErrZeroAmount.Wrap("deposit too small to mint any shares")
	}
	return shares, nil
}

// CalculateWithdrawal returns each reserve's pro-rata payout for shares,
// rounded down. Accrued fees sit in the reserves, so they are paid out here.
func CalculateWithdrawal(shares, reserve0, reserve1, totalShares math.Int) (amount0, amount1 math.Int, err error) {
	if shares.GT(totalShares) {
		return math.Int{}, math.Int{}, types.ErrInsufficientShares.Wrapf("%s exceeds total supply %s", shares, totalShares)
	}
	amount0, err = SafeMulDiv(reserve0, shares, totalShares)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	amount1, err = SafeMulDiv(reserve1, shares, totalShares)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	return amount0, amount1, nil
}

// validateAmount rejects nil and negative amounts with ErrInvalidAmount and
// zero with ErrZeroAmount.
func validateAmount(name string, amount math.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInvalidAmount.Wrapf("%s must be a non-negative integer", name)
	}
	if amount.IsZero() {
		return types.ErrZeroAmount.Wrapf("%s is zero", name)
	}
	return nil
}

// validateBound rejects nil and negative slippage bounds.
func validateBound(name string, bound math.Int) error {
	if bound.IsNil() || bound.IsNegative() {
		return types.ErrInvalidAmount.Wrapf("%s must be a non-negative integer", name)
	}
	return nil
}
