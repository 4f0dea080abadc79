package commands

import (
	"fmt"

	"github.com/nockpoint/nockit/internal/version"
	"github.com/spf13/cobra"
)

var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Show the current version of nockit`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "nockit %s (commit %s, built %s)\n",
			version.Version, version.Commit, version.BuildDate)
	},
}
