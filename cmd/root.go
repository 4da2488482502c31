package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the avm-action CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "avm-action",
		Short:        "Run validated Terraform commands against Azure from CI.",
		Long:         `avm-action turns declarative CI inputs into a validated sequence of Terraform CLI invocations against Azure.`,
		SilenceUsage: true,
	}

	// Add individual commands
	rootCmd.AddCommand(NewRunCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}
