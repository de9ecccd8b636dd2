// Package cli wires the cobra commands for the doclane binary.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/doclane/doclane-cli/internal/logger"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "doclane",
	Short: "Synchronise project documentation with Doclane",
	Long: `doclane keeps a project's .mdx documentation in sync with the Doclane
processing service.

The interactive flow authenticates through your browser, discovers
documentation files in the local git checkout, strips their markup, and
uploads the result:

  doclane sync

Pipelines use the non-interactive variant, which diffs two revisions
through the GitHub API and forwards the changed files to a webhook:

  doclane ci --base <sha> --head <sha>`,
	PersistentPreRun: func(*cobra.Command, []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
