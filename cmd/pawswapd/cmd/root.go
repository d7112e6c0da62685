package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/paw-chain/pawswap/app"
)

type nodeContextKey struct{}

// nodeContext carries what every subcommand needs after flags and config
// have been resolved.
type nodeContext struct {
	home   string
	cfg    app.Config
	logger log.Logger
}

// NewRootCmd creates the root command for pawswapd. It is called once in
// the main function.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pawswapd",
		Short: "PAW swap engine",
		Long: `pawswapd runs a constant-product AMM over a local ledger. State lives in
a versioned store under --home and survives restarts.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// set the default command outputs
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())

			home, err := cmd.Flags().GetString(flags.FlagHome)
			if err != nil {
				return err
			}

			v, err := app.NewViper(home, cmd.Flags())
			if err != nil {
				return err
			}
			cfg, err := app.ReadConfig(v)
			if err != nil {
				return err
			}

			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, nodeContextKey{}, &nodeContext{
				home:   home,
				cfg:    cfg,
				logger: logger,
			}))
			return nil
		},
	}

	rootCmd.PersistentFlags().String(flags.FlagHome, app.DefaultNodeHome, "directory for config and data")
	rootCmd.PersistentFlags().String(app.FlagLogLevel, "info", "log level (trace|debug|info|warn|error)")
	rootCmd.PersistentFlags().String(app.FlagLogFormat, "plain", "log format (plain|json)")

	rootCmd.AddCommand(
		InitCmd(),
		SimulateCmd(),
		ExportCmd(),
		CheckInvariantsCmd(),
		PoolsCmd(),
		VersionCmd(),
	)

	return rootCmd
}

func newLogger(cfg app.Config) (log.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	opts := []log.Option{log.LevelOption(level)}
	if cfg.LogFormat == "json" {
		opts = append(opts, log.OutputJSONOption())
	}
	return log.NewLogger(os.Stderr, opts...), nil
}

func getNodeContext(cmd *cobra.Command) *nodeContext {
	if nc, ok := cmd.Context().Value(nodeContextKey{}).(*nodeContext); ok {
		return nc
	}
	panic("node context not set; PersistentPreRunE did not run")
}

// openApp opens the node database and applies genesis.json on first use.
func openApp(nc *nodeContext) (*app.App, error) {
	db, err := app.OpenDB(nc.home, dbm.BackendType(nc.cfg.DBBackend))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	a, err := app.New(nc.logger, db, nc.cfg)
	if err != nil {
		db.Close()
		return nil, err
	}
	if a.LastBlockHeight() > 0 {
		return a, nil
	}

	genesis, err := readGenesis(nc.home)
	if err != nil {
		a.Close()
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("no genesis found, run init first: %w", err)
		}
		return nil, err
	}
	if err := a.InitChain(genesis); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}
