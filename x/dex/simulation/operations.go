package simulation

import (
	"math/rand"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	simtypes "github.com/cosmos/cosmos-sdk/types/simulation"

	"github.com/paw-chain/pawswap/x/dex/keeper"
	"github.com/paw-chain/pawswap/x/dex/types"
)

// Simulation operation weights constants
const (
	OpWeightCreatePool      = "op_weight_create_pool"
	OpWeightAddLiquidity    = "op_weight_add_liquidity"
	OpWeightRemoveLiquidity = "op_weight_remove_liquidity"
	OpWeightSwapExactIn     = "op_weight_swap_exact_in"
	OpWeightSwapExactOut    = "op_weight_swap_exact_out"

	DefaultWeightCreatePool      = 15
	DefaultWeightAddLiquidity    = 30
	DefaultWeightRemoveLiquidity = 20
	DefaultWeightSwapExactIn     = 40
	DefaultWeightSwapExactOut    = 20
)

// Operation names reported in OperationMsg.Name.
const (
	OpCreatePool      = "create_pool"
	OpAddLiquidity    = "add_liquidity"
	OpRemoveLiquidity = "remove_liquidity"
	OpSwapExactIn     = "swap_exact_in"
	OpSwapExactOut    = "swap_exact_out"
)

// Denoms is the asset universe simulated pools are drawn from.
var Denoms = []string{"upaw", "uatom", "uosmo", "ujuno"}

// Operation performs one random dex operation directly against the keeper.
// A returned error means the simulation found a bug; expected rejections
// such as slippage come back as a no-op message instead.
type Operation func(r *rand.Rand, ctx sdk.Context, accs []simtypes.Account) (simtypes.OperationMsg, error)

// WeightedOperation pairs an operation with its selection weight.
type WeightedOperation struct {
	Weight int
	Op     Operation
}

// WeightedOperations returns all the DEX module operations with their respective weights.
func WeightedOperations(appParams simtypes.AppParams, k *keeper.Keeper, lk types.LedgerKeeper) []WeightedOperation {
	var (
		weightCreatePool      int
		weightAddLiquidity    int
		weightRemoveLiquidity int
		weightSwapExactIn     int
		weightSwapExactOut    int
	)

	appParams.GetOrGenerate(OpWeightCreatePool, &weightCreatePool, nil,
		func(_ *rand.Rand) {
			weightCreatePool = DefaultWeightCreatePool
		},
	)

	appParams.GetOrGenerate(OpWeightAddLiquidity, &weightAddLiquidity, nil,
		func(_ *rand.Rand) {
			weightAddLiquidity = DefaultWeightAddLiquidity
		},
	)

	appParams.GetOrGenerate(OpWeightRemoveLiquidity, &weightRemoveLiquidity, nil,
		func(_ *rand.Rand) {
			weightRemoveLiquidity = DefaultWeightRemoveLiquidity
		},
	)

	appParams.GetOrGenerate(OpWeightSwapExactIn, &weightSwapExactIn, nil,
		func(_ *rand.Rand) {
			weightSwapExactIn = DefaultWeightSwapExactIn
		},
	)

	appParams.GetOrGenerate(OpWeightSwapExactOut, &weightSwapExactOut, nil,
		func(_ *rand.Rand) {
			weightSwapExactOut = DefaultWeightSwapExactOut
		},
	)

	return []WeightedOperation{
		{Weight: weightCreatePool, Op: SimulateCreatePool(k)},
		{Weight: weightAddLiquidity, Op: SimulateAddLiquidity(k, lk)},
		{Weight: weightRemoveLiquidity, Op: SimulateRemoveLiquidity(k)},
		{Weight: weightSwapExactIn, Op: SimulateSwapExactIn(k, lk)},
		{Weight: weightSwapExactOut, Op: SimulateSwapExactOut(k, lk)},
	}
}

// SimulateCreatePool creates a pool for a random pair with a random fee
func SimulateCreatePool(k *keeper.Keeper) Operation {
	return func(r *rand.Rand, ctx sdk.Context, _ []simtypes.Account) (simtypes.OperationMsg, error) {
		assetA := Denoms[r.Intn(len(Denoms))]
		assetB := Denoms[r.Intn(len(Denoms))]
		if assetA == assetB {
			return simtypes.NoOpMsg(types.ModuleName, OpCreatePool, "same asset"), nil
		}

		// zero selects the default fee
		fee := types.Fee{}
		if r.Intn(2) == 0 {
			fee = types.NewFee(uint64(simtypes.RandIntBetween(r, 0, 100)), 1000)
		}

		_, err := k.CreatePool(ctx, assetA, assetB, fee)
		return result(OpCreatePool, err)
	}
}

// SimulateAddLiquidity deposits a random amount into a random pool
func SimulateAddLiquidity(k *keeper.Keeper, lk types.LedgerKeeper) Operation {
	return func(r *rand.Rand, ctx sdk.Context, accs []simtypes.Account) (simtypes.OperationMsg, error) {
		simAccount, _ := simtypes.RandomAcc(r, accs)

		pool, ok := randomPool(r, ctx, k)
		if !ok {
			return simtypes.NoOpMsg(types.ModuleName, OpAddLiquidity, "no pools"), nil
		}

		amount0 := math.NewInt(int64(simtypes.RandIntBetween(r, 100, 1000000)))
		amount1 := math.NewInt(int64(simtypes.RandIntBetween(r, 100, 1000000)))
		if lk.GetBalance(ctx, simAccount.Address, pool.Asset0).Amount.LT(amount0) ||
			lk.GetBalance(ctx, simAccount.Address, pool.Asset1).Amount.LT(amount1) {
			return simtypes.NoOpMsg(types.ModuleName, OpAddLiquidity, "insufficient balance"), nil
		}

		_, err := k.AddLiquidity(ctx, simAccount.Address, pool.Id, amount0, amount1, math.ZeroInt())
		return result(OpAddLiquidity, err)
	}
}

// SimulateRemoveLiquidity burns a random portion of an account's shares
func SimulateRemoveLiquidity(k *keeper.Keeper) Operation {
	return func(r *rand.Rand, ctx sdk.Context, accs []simtypes.Account) (simtypes.OperationMsg, error) {
		simAccount, _ := simtypes.RandomAcc(r, accs)

		pool, ok := randomPool(r, ctx, k)
		if !ok {
			return simtypes.NoOpMsg(types.ModuleName, OpRemoveLiquidity, "no pools"), nil
		}

		// Check if user has liquidity
		shares, err := k.GetShares(ctx, pool.Id, simAccount.Address)
		if err != nil || shares.IsZero() {
			return simtypes.NoOpMsg(types.ModuleName, OpRemoveLiquidity, "no liquidity"), nil
		}

		// Remove random portion
		sharesToRemove := simtypes.RandomAmount(r, shares)
		if sharesToRemove.IsZero() {
			sharesToRemove = shares
		}

		_, err = k.RemoveLiquidity(ctx, simAccount.Address, pool.Id, sharesToRemove, math.ZeroInt(), math.ZeroInt())
		return result(OpRemoveLiquidity, err)
	}
}

// SimulateSwapExactIn sells a random amount in a random direction
func SimulateSwapExactIn(k *keeper.Keeper, lk types.LedgerKeeper) Operation {
	return func(r *rand.Rand, ctx sdk.Context, accs []simtypes.Account) (simtypes.OperationMsg, error) {
		simAccount, _ := simtypes.RandomAcc(r, accs)

		pool, ok := randomPool(r, ctx, k)
		if !ok || pool.IsEmpty() {
			return simtypes.NoOpMsg(types.ModuleName, OpSwapExactIn, "no liquid pools"), nil
		}
		assetIn := randomSide(r, pool)

		amountIn := math.NewInt(int64(simtypes.RandIntBetween(r, 10, 100000)))
		if lk.GetBalance(ctx, simAccount.Address, assetIn).Amount.LT(amountIn) {
			return simtypes.NoOpMsg(types.ModuleName, OpSwapExactIn, "insufficient balance"), nil
		}

		// accept up to 5% worse than the current quote
		minOut := math.ZeroInt()
		if quote, err := k.QuoteExactIn(ctx, pool.Id, assetIn, amountIn); err == nil {
			minOut = quote.AmountOut.MulRaw(95).QuoRaw(100)
		}

		_, err := k.SwapExactIn(ctx, simAccount.Address, pool.Id, assetIn, amountIn, minOut)
		return result(OpSwapExactIn, err)
	}
}

// SimulateSwapExactOut buys a random share of the output reserve
func SimulateSwapExactOut(k *keeper.Keeper, lk types.LedgerKeeper) Operation {
	return func(r *rand.Rand, ctx sdk.Context, accs []simtypes.Account) (simtypes.OperationMsg, error) {
		simAccount, _ := simtypes.RandomAcc(r, accs)

		pool, ok := randomPool(r, ctx, k)
		if !ok || pool.IsEmpty() {
			return simtypes.NoOpMsg(types.ModuleName, OpSwapExactOut, "no liquid pools"), nil
		}
		assetIn := randomSide(r, pool)
		_, reserveOut, _, err := pool.SwapSides(assetIn)
		if err != nil {
			return simtypes.NoOpMsg(types.ModuleName, OpSwapExactOut, err.Error()), nil
		}

		limit := reserveOut.QuoRaw(10)
		if !limit.IsPositive() {
			return simtypes.NoOpMsg(types.ModuleName, OpSwapExactOut, "reserve too small"), nil
		}
		amountOut := simtypes.RandomAmount(r, limit)
		if amountOut.IsZero() {
			return simtypes.NoOpMsg(types.ModuleName, OpSwapExactOut, "reserve too small"), nil
		}
		maxIn := lk.GetBalance(ctx, simAccount.Address, assetIn).Amount

		_, err = k.SwapExactOut(ctx, simAccount.Address, pool.Id, assetIn, amountOut, maxIn)
		return result(OpSwapExactOut, err)
	}
}

// SelectOperation picks an operation with probability proportional to its weight.
func SelectOperation(r *rand.Rand, ops []WeightedOperation) Operation {
	total := 0
	for _, op := range ops {
		total += op.Weight
	}
	if total <= 0 {
		return nil
	}
	x := r.Intn(total)
	for _, op := range ops {
		if x < op.Weight {
			return op.Op
		}
		x -= op.Weight
	}
	return ops[len(ops)-1].Op
}

func randomPool(r *rand.Rand, ctx sdk.Context, k *keeper.Keeper) (types.Pool, bool) {
	pools, err := k.GetAllPools(ctx)
	if err != nil || len(pools) == 0 {
		return types.Pool{}, false
	}
	return pools[r.Intn(len(pools))], true
}

func randomSide(r *rand.Rand, pool types.Pool) string {
	if r.Intn(2) == 0 {
		return pool.Asset0
	}
	return pool.Asset1
}

// result turns a keeper outcome into an operation message. Rejections the
// dex is expected to make are no-ops; a broken invariant or corrupt pool is
// returned as an error.
func result(op string, err error) (simtypes.OperationMsg, error) {
	switch {
	case err == nil:
		return simtypes.OperationMsg{Route: types.ModuleName, Name: op, OK: true}, nil
	case errorsmod.IsOf(err, types.ErrInvariantViolation, types.ErrInvalidPoolState):
		return simtypes.NoOpMsg(types.ModuleName, op, err.Error()), err
	default:
		return simtypes.NoOpMsg(types.ModuleName, op, err.Error()), nil
	}
}
