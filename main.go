package main

import (
	"os"

	"github.com/Action-Foundry/AVM-Action/cmd"
)

func main() {
	rootCmd := cmd.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
