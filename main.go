package main

import (
	"os"

	"hexprobe/cmd/replay"
	"hexprobe/cmd/run"
	"hexprobe/cmd/serve"
	"hexprobe/cmd/sessions"
	"hexprobe/cmd/status"
	"hexprobe/cmd/version"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hexprobe",
	Short: "Sends a fixed request to a TCP endpoint and hex-dumps the reply.",
	// Without a subcommand hexprobe behaves like 'hexprobe run'.
	Run: run.Cmd.Run,
}

func main() {
	rootCmd.Flags().AddFlagSet(run.Cmd.Flags())
	rootCmd.AddCommand(run.Cmd)
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(replay.Cmd)
	rootCmd.AddCommand(sessions.Cmd)
	rootCmd.AddCommand(status.Cmd)
	rootCmd.AddCommand(version.Cmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
