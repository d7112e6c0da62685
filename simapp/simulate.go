package simapp

import (
	"fmt"
	"math/rand"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	simtypes "github.com/cosmos/cosmos-sdk/types/simulation"

	"github.com/paw-chain/pawswap/app"
	dexsim "github.com/paw-chain/pawswap/x/dex/simulation"
	dextypes "github.com/paw-chain/pawswap/x/dex/types"
)

// Setup funds params.NumAccounts random accounts with every simulated denom
// and seeds params.InitialPoolCount pools from the first account. The state
// is committed as one block.
func Setup(r *rand.Rand, a *app.App, params SimulationParams) ([]simtypes.Account, error) {
	accs := simtypes.RandomAccounts(r, params.NumAccounts)
	ctx := a.NewContext()

	coins := sdk.NewCoins()
	for _, denom := range dexsim.Denoms {
		coins = coins.Add(sdk.NewCoin(denom, params.InitialAccountBalance))
	}
	for _, acc := range accs {
		if err := a.LedgerKeeper.MintCoins(ctx, acc.Address, coins); err != nil {
			return nil, fmt.Errorf("failed to fund %s: %w", acc.Address, err)
		}
	}

	seeder := accs[0].Address
	for i := 0; i < params.InitialPoolCount; i++ {
		assetA, assetB := dexsim.Denoms[i%len(dexsim.Denoms)], dexsim.Denoms[(i+1+i/len(dexsim.Denoms))%len(dexsim.Denoms)]
		if _, err := a.DexKeeper.GetPoolByAssets(ctx, assetA, assetB); err == nil {
			continue
		}
		poolID, err := a.DexKeeper.CreatePool(ctx, assetA, assetB, dextypes.Fee{})
		if err != nil {
			return nil, fmt.Errorf("failed to create pool %s/%s: %w", assetA, assetB, err)
		}
		_, err = a.DexKeeper.AddLiquidity(ctx, seeder, poolID, params.InitialLiquidity, params.InitialLiquidity, math.ZeroInt())
		if err != nil {
			return nil, fmt.Errorf("failed to seed pool %d: %w", poolID, err)
		}
	}

	a.Commit()
	return accs, nil
}

// Run sets up a simulation on a and executes params.NumBlocks blocks of
// params.OpsPerBlock random dex operations, committing after each block.
func Run(a *app.App, seed int64, appParams simtypes.AppParams, params SimulationParams) (dexsim.Report, error) {
	r := rand.New(rand.NewSource(seed))
	report := dexsim.NewReport()

	accs, err := Setup(r, a, params)
	if err != nil {
		return report, err
	}

	ops := dexsim.WeightedOperations(appParams, a.DexKeeper, a.LedgerKeeper)
	invariant := func(ctx sdk.Context) (string, bool) {
		if err := a.Invariants().Assert(ctx); err != nil {
			return err.Error(), true
		}
		return "", false
	}

	for block := 0; block < params.NumBlocks; block++ {
		ctx := a.NewContext()
		blockReport, err := dexsim.Run(r, ctx, ops, accs, params.OpsPerBlock, invariant)
		report.Merge(blockReport)
		if err != nil {
			return report, fmt.Errorf("block %d: %w", ctx.BlockHeight(), err)
		}
		id := a.Commit()
		a.Logger().Debug("simulated block", "height", id.Version, "ops", blockReport.Total())
	}
	return report, nil
}
