package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Action-Foundry/AVM-Action/config"
	"github.com/Action-Foundry/AVM-Action/utils/command"
)

// NewRunCmd creates the single-shot entrypoint the CI bootstrap invokes once
// per pipeline run.
func NewRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Execute the configured terraform command",
		Run: func(cmd *cobra.Command, args []string) {
			configFile, _ := cmd.Flags().GetString("config")

			var cfg *config.Config
			if configFile != "" {
				loaded, err := config.FromFile(configFile)
				if err != nil {
					fmt.Fprintln(os.Stderr, "Error loading configuration:", err)
					os.Exit(1)
				}
				cfg = loaded
			} else {
				cfg = config.FromEnv()
			}

			os.Exit(command.Run(cfg, command.NewUtils()))
		},
	}

	runCmd.Flags().String("config", "", "Load inputs from a YAML file instead of the environment")

	return runCmd
}
