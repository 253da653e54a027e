package commands

import (
	"github.com/spf13/cobra"

	"github.com/ecomstat/ecomclean/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "ecomclean",
		Short:   "Normalize the manufacturing e-commerce survey table into tidy records",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newInitCommand(),
		newCleanCommand(),
		newInspectCommand(),
		newSummaryCommand(),
		newHistoryCommand(),
	)

	return rootCmd
}
