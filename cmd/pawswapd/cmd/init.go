package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/spf13/cobra"

	"github.com/paw-chain/pawswap/app"
)

const flagOverwrite = "overwrite"

// InitCmd returns a command that writes app.toml and genesis.json under home.
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the application configuration and genesis files",
		Long: `Write config/app.toml and config/genesis.json under --home.

Example:
  pawswapd init --chain-id pawswap-testnet-1 --home ~/.pawswap
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			nc := getNodeContext(cmd)
			overwrite, _ := cmd.Flags().GetBool(flagOverwrite)

			if _, err := os.Stat(app.GenesisPath(nc.home)); err == nil && !overwrite {
				return fmt.Errorf("genesis.json already exists in %s; use --%s to replace it", nc.home, flagOverwrite)
			}

			// --chain-id reaches cfg through the viper flag binding
			cfg := nc.cfg
			if err := app.WriteConfigFile(nc.home, cfg); err != nil {
				return fmt.Errorf("failed to write app.toml: %w", err)
			}

			genesis, err := app.DefaultGenesis(cfg)
			if err != nil {
				return err
			}
			if err := writeGenesis(nc.home, genesis); err != nil {
				return err
			}

			nc.logger.Info("initialized node home", "home", nc.home, "chain_id", cfg.ChainID)
			return nil
		},
	}

	cmd.Flags().String(flags.FlagChainID, "", "genesis file chain-id")
	cmd.Flags().Bool(flagOverwrite, false, "overwrite the genesis.json file")

	return cmd
}

func writeGenesis(home string, genesis app.GenesisState) error {
	bz, err := json.MarshalIndent(genesis, "", "  ")
	if err != nil {
		return err
	}
	path := app.GenesisPath(home)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, bz, 0o600)
}

func readGenesis(home string) (app.GenesisState, error) {
	bz, err := os.ReadFile(app.GenesisPath(home))
	if err != nil {
		return nil, err
	}
	var genesis app.GenesisState
	if err := json.Unmarshal(bz, &genesis); err != nil {
		return nil, fmt.Errorf("failed to parse genesis.json: %w", err)
	}
	return genesis, nil
}
