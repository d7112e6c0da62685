// Package simapp drives randomized dex simulations against a full App:
// accounts are funded on the ledger, a few pools are seeded and then blocks
// of random operations are executed and committed with the invariants
// checked after every operation.
package simapp

import (
	"math/rand"

	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/types/simulation"
)

// Simulation parameter keys
const (
	NumAccounts           = "num_accounts"
	InitialAccountBalance = "initial_account_balance"
	InitialPoolCount      = "initial_pool_count"
	InitialLiquidity      = "initial_liquidity"
)

// SimulationParams defines the parameters for the simulation
type SimulationParams struct {
	// Account parameters
	NumAccounts           int
	InitialAccountBalance math.Int

	// DEX parameters
	InitialPoolCount int
	InitialLiquidity math.Int

	// Run length
	NumBlocks   int
	OpsPerBlock int
}

// DefaultSimulationParams returns default simulation parameters
func DefaultSimulationParams() SimulationParams {
	return SimulationParams{
		NumAccounts:           20,
		InitialAccountBalance: math.NewInt(1000000000000), // 1M tokens
		InitialPoolCount:      3,
		InitialLiquidity:      math.NewInt(10000000000), // 10k tokens per pool side
		NumBlocks:             10,
		OpsPerBlock:           50,
	}
}

// RandomizedParams creates randomized simulation parameters. The run length
// is kept from DefaultSimulationParams.
func RandomizedParams(r *rand.Rand, appParams simulation.AppParams) SimulationParams {
	params := DefaultSimulationParams()

	appParams.GetOrGenerate(NumAccounts, &params.NumAccounts, r, func(r *rand.Rand) {
		params.NumAccounts = simulation.RandIntBetween(r, 5, 50)
	})
	appParams.GetOrGenerate(InitialAccountBalance, &params.InitialAccountBalance, r, func(r *rand.Rand) {
		params.InitialAccountBalance = simulation.RandomAmount(r, math.NewInt(10000000000000)).AddRaw(1000000)
	})
	appParams.GetOrGenerate(InitialPoolCount, &params.InitialPoolCount, r, func(r *rand.Rand) {
		params.InitialPoolCount = simulation.RandIntBetween(r, 1, 6)
	})
	appParams.GetOrGenerate(InitialLiquidity, &params.InitialLiquidity, r, func(r *rand.Rand) {
		params.InitialLiquidity = simulation.RandomAmount(r, math.NewInt(100000000000)).AddRaw(1000)
	})
	return params
}
