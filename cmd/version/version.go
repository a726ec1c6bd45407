package version

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set via -ldflags "-X hexprobe/cmd/version.Version=..." at release time.
var (
	Version   = "dev"
	GitTag    = "none"
	GitCommit = "none"
	BuildTime = "unknown"
)

var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Prints build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "hexprobe %s (tag=%s commit=%s built=%s)\n", Version, GitTag, GitCommit, BuildTime)
	},
}
