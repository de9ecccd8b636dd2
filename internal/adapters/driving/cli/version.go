package cli

import "github.com/spf13/cobra"

// Version is overridden at build time through -ldflags.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the doclane version",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("doclane %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
