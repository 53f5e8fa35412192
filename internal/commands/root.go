package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noel97chan-creator/IFRS16calculator/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "ifrs16",
		Short:   "IFRS 16 lease liability and amortization schedule calculator",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newScheduleCommand())
	rootCmd.AddCommand(newCompareCommand())
	rootCmd.AddCommand(newServeCommand())

	return rootCmd
}
