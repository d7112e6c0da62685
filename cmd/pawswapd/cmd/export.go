package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// ExportCmd dumps the latest committed state as genesis JSON.
func ExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export state to genesis JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(getNodeContext(cmd))
			if err != nil {
				return err
			}
			defer a.Close()

			genesis, err := a.ExportGenesis()
			if err != nil {
				return err
			}
			bz, err := json.MarshalIndent(genesis, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
			return err
		},
	}
}

// CheckInvariantsCmd asserts every registered invariant on the latest state.
func CheckInvariantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-invariants",
		Short: "Assert all module invariants on the latest committed state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(getNodeContext(cmd))
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.CheckInvariants(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d invariants hold at height %d\n", len(a.Invariants().Routes()), a.LastBlockHeight())
			return nil
		},
	}
}
