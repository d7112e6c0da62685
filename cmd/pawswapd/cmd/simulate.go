package cmd

import (
	"context"
	"fmt"
	"time"

	simtypes "github.com/cosmos/cosmos-sdk/types/simulation"
	"github.com/spf13/cobra"

	"github.com/paw-chain/pawswap/app/telemetry"
	"github.com/paw-chain/pawswap/simapp"
)

const (
	flagSeed        = "seed"
	flagBlocks      = "blocks"
	flagOpsPerBlock = "ops-per-block"
	flagAccounts    = "accounts"
	flagPools       = "pools"
	flagHold        = "hold"
)

// SimulateCmd runs randomized dex operations against the node state.
func SimulateCmd() *cobra.Command {
	defaults := simapp.DefaultSimulationParams()

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run random dex operations against the node state",
		Long: `Fund random accounts, seed pools and run blocks of random pool creations,
deposits, withdrawals and swaps. Every block is committed and the invariants
are checked after every operation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			nc := getNodeContext(cmd)

			tp, err := telemetry.NewProvider(nc.cfg.Telemetry)
			if err != nil {
				return err
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := tp.Shutdown(ctx); err != nil {
					nc.logger.Error("failed to flush traces", "err", err)
				}
			}()

			a, err := openApp(nc)
			if err != nil {
				return err
			}
			defer a.Close()

			if nc.cfg.Metrics.Enabled {
				shutdown := StartPrometheusServer(nc.logger, nc.cfg.Metrics.Port, a.LastBlockHeight)
				defer shutdown(context.Background())
			}

			params := defaults
			seed, _ := cmd.Flags().GetInt64(flagSeed)
			params.NumBlocks, _ = cmd.Flags().GetInt(flagBlocks)
			params.OpsPerBlock, _ = cmd.Flags().GetInt(flagOpsPerBlock)
			params.NumAccounts, _ = cmd.Flags().GetInt(flagAccounts)
			params.InitialPoolCount, _ = cmd.Flags().GetInt(flagPools)
			if params.NumAccounts <= 0 {
				return fmt.Errorf("--%s must be positive", flagAccounts)
			}

			start := time.Now()
			report, err := simapp.Run(a, seed, make(simtypes.AppParams), params)
			fmt.Fprint(cmd.OutOrStdout(), report.String())
			if err != nil {
				return err
			}
			nc.logger.Info("simulation finished",
				"seed", seed,
				"height", a.LastBlockHeight(),
				"ops", report.Total(),
				"elapsed", time.Since(start).String(),
			)

			if hold, _ := cmd.Flags().GetDuration(flagHold); hold > 0 && nc.cfg.Metrics.Enabled {
				nc.logger.Info("holding metrics endpoint open", "for", hold.String())
				select {
				case <-cmd.Context().Done():
				case <-time.After(hold):
				}
			}
			return nil
		},
	}

	cmd.Flags().Int64(flagSeed, 42, "random seed")
	cmd.Flags().Int(flagBlocks, defaults.NumBlocks, "number of blocks to simulate")
	cmd.Flags().Int(flagOpsPerBlock, defaults.OpsPerBlock, "operations per block")
	cmd.Flags().Int(flagAccounts, defaults.NumAccounts, "number of funded accounts")
	cmd.Flags().Int(flagPools, defaults.InitialPoolCount, "number of pools seeded before the run")
	cmd.Flags().Duration(flagHold, 0, "keep serving metrics this long after the run")

	return cmd
}
