package main

import (
	"os"

	"github.com/paw-chain/pawswap/app"
	"github.com/paw-chain/pawswap/cmd/pawswapd/cmd"
)

func main() {
	app.SetConfig()

	rootCmd := cmd.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
