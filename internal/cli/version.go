package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/draft-release/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
		fmt.Fprintln(cmd.OutOrStdout(), SourceURL)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
