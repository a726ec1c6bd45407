package replay

import (
	"fmt"
	"log"

	"hexprobe/internal/capture"
	"hexprobe/internal/conf"
	"hexprobe/internal/session"

	"github.com/spf13/cobra"
)

var (
	recordPath string
	noColor    bool
	absolute   bool
)

func init() {
	Cmd.Flags().StringVarP(&recordPath, "record", "r", "capture", "Capture directory written by 'run --record'.")
	Cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable ANSI colors in the dump.")
	Cmd.Flags().BoolVar(&absolute, "absolute", false, "Number dump rows by stream offset instead of per chunk.")
}

var Cmd = &cobra.Command{
	Use:   "replay [session-id]",
	Short: "Re-dumps a recorded session (the latest when no id is given).",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := ""
		if len(args) == 1 {
			id = args[0]
		}
		out := conf.Default().Output
		if noColor {
			v := false
			out.Color = &v
		}
		out.AbsoluteOffsets = absolute
		if err := Replay(recordPath, id, session.NewPrinter(cmd.OutOrStdout(), &out)); err != nil {
			log.Fatalf("replay failed: %v", err)
		}
	},
}

// Replay prints the chunks of session id from the store at path.
func Replay(path, id string, pr *session.Printer) error {
	store, err := capture.Open(path, true)
	if err != nil {
		return err
	}
	defer store.Close()

	if id == "" {
		list, err := store.Sessions()
		if err != nil {
			return err
		}
		if len(list) == 0 {
			return fmt.Errorf("no sessions recorded in %s", path)
		}
		id = list[len(list)-1].ID
	}

	sess, err := store.Session(id)
	if err != nil {
		return err
	}
	pr.Line("session %s: %s over %s, %d chunks, %d bytes", sess.ID, sess.Target, sess.Network, sess.Chunks, sess.Bytes)
	if err := store.Chunks(id, func(_ int, data []byte) error { return pr.Chunk(data) }); err != nil {
		return err
	}
	if sess.EndError != "" {
		pr.Line("stream ended: %s", sess.EndError)
	}
	return nil
}
