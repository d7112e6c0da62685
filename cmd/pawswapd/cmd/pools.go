package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// PoolsCmd lists every pool with its reserves, or the spot price of one pool.
func PoolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pools",
		Short: "List pools and their reserves",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(getNodeContext(cmd))
			if err != nil {
				return err
			}
			defer a.Close()

			pools, err := a.DexKeeper.GetAllPools(a.NewContext())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPAIR\tRESERVE0\tRESERVE1\tSHARES\tFEE")
			for _, pool := range pools {
				fmt.Fprintf(w, "%d\t%s/%s\t%s\t%s\t%s\t%s\n",
					pool.Id, pool.Asset0, pool.Asset1, pool.Reserve0, pool.Reserve1, pool.TotalShares, pool.Fee)
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "price [pool-id] [base-asset]",
		Short: "Print the spot price of base-asset in the other asset of a pool",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			poolID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid pool id %q: %w", args[0], err)
			}

			a, err := openApp(getNodeContext(cmd))
			if err != nil {
				return err
			}
			defer a.Close()

			price, err := a.DexKeeper.SpotPrice(a.NewContext(), poolID, args[1])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), price.String())
			return err
		},
	})

	return cmd
}
