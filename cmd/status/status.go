package status

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"hexprobe/internal/conf"
	"hexprobe/internal/diag"

	"github.com/spf13/cobra"
)

var (
	confPath  string
	pprofAddr string
	jsonOut   bool
	timeout   time.Duration
)

func init() {
	Cmd.Flags().StringVarP(&confPath, "config", "c", "config.yaml", "Path to the configuration file (used to detect debug endpoints).")
	Cmd.Flags().StringVar(&pprofAddr, "pprof", "", "Debug HTTP bind address (host:port). If empty, uses config or defaults to 127.0.0.1:6060.")
	Cmd.Flags().BoolVar(&jsonOut, "json", false, "Print JSON from "+diag.PathStatus+" instead of text.")
	Cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Second, "HTTP timeout (e.g. 500ms, 2s).")
}

var Cmd = &cobra.Command{
	Use:   "status",
	Short: "Prints live status of a running fixture server",
	Run: func(cmd *cobra.Command, args []string) {
		if err := run(cmd.OutOrStdout()); err != nil {
			log.Fatalf("%v", err)
		}
	},
}

func run(out io.Writer) error {
	addr, diagEnabled, err := resolveDebugAddr()
	if err != nil {
		return err
	}

	path := diag.PathText
	if jsonOut {
		path = diag.PathStatus
	}
	url := fmt.Sprintf("http://%s%s", addr, path)

	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("failed to reach %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		hint := ""
		if !diagEnabled {
			hint = "\n\nHint: status endpoints are disabled. Start the server with `hexprobe serve --pprof 127.0.0.1:6060 --diag` or set debug.diag in the config."
		}
		return fmt.Errorf("debug endpoint returned %s: %s%s", resp.Status, string(body), hint)
	}

	_, err = out.Write(body)
	return err
}

func resolveDebugAddr() (addr string, diagEnabled bool, err error) {
	if pprofAddr != "" {
		return pprofAddr, true, nil
	}

	if confPath != "" {
		if _, statErr := os.Stat(confPath); statErr == nil {
			cfg, loadErr := conf.LoadFromFile(confPath)
			if loadErr != nil {
				return "", false, loadErr
			}
			if cfg.Debug.Pprof != "" {
				addr = cfg.Debug.Pprof
			}
			diagEnabled = cfg.Debug.Diag
		} else if !errors.Is(statErr, os.ErrNotExist) {
			return "", false, statErr
		}
	}

	if addr == "" {
		addr = "127.0.0.1:6060"
	}
	return addr, diagEnabled, nil
}
