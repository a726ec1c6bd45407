package sessions

import (
	"fmt"
	"io"
	"log"
	"text/tabwriter"
	"time"

	"hexprobe/internal/capture"

	"github.com/spf13/cobra"
)

var recordPath string

func init() {
	Cmd.Flags().StringVarP(&recordPath, "record", "r", "capture", "Capture directory written by 'run --record'.")
}

var Cmd = &cobra.Command{
	Use:   "sessions",
	Short: "Lists recorded sessions.",
	Run: func(cmd *cobra.Command, args []string) {
		if err := list(cmd.OutOrStdout(), recordPath); err != nil {
			log.Fatalf("%v", err)
		}
	},
}

func list(out io.Writer, path string) error {
	store, err := capture.Open(path, true)
	if err != nil {
		return err
	}
	defer store.Close()

	all, err := store.Sessions()
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTARGET\tNETWORK\tSTARTED\tCHUNKS\tBYTES\tEND")
	for _, s := range all {
		end := s.EndError
		if end == "" {
			end = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n", s.ID, s.Target, s.Network, s.Started.Format(time.RFC3339), s.Chunks, s.Bytes, end)
	}
	return tw.Flush()
}
