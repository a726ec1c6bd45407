package run

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hexprobe/internal/conf"
	"hexprobe/internal/flog"
	"hexprobe/internal/session"

	"github.com/spf13/cobra"
)

// exitSetupFailure is returned when the connection cannot be set up
// (socket creation, address, connect). POSIX shells observe it as 255.
const exitSetupFailure = -1

var (
	confPath    string
	addr        string
	network     string
	timeout     string
	socksAddr   string
	kcpKey      string
	method      string
	path        string
	host        string
	headers     []string
	bufsize     int
	noColor     bool
	placeholder string
	absolute    bool
	recordPath  string
	logLevel    string
)

func init() {
	f := Cmd.Flags()
	f.StringVarP(&confPath, "config", "c", "", "Path to an optional YAML configuration file.")
	f.StringVarP(&addr, "addr", "a", "", "Target host:port (default 127.0.0.1:8080).")
	f.StringVar(&network, "network", "", "Stream network: tcp or kcp.")
	f.StringVar(&timeout, "timeout", "", "Connect timeout (e.g. 2s). Empty waits for the kernel.")
	f.StringVar(&socksAddr, "socks5", "", "Dial the target through this SOCKS5 proxy (host:port).")
	f.StringVar(&kcpKey, "kcp-key", "", "Shared secret for the kcp network.")
	f.StringVar(&method, "method", "", "Request method (default GET).")
	f.StringVar(&path, "path", "", "Request path (default /doThing).")
	f.StringVar(&host, "host", "", "Host header value (default localhost:8080).")
	f.StringArrayVarP(&headers, "header", "H", nil, "Extra header line 'Name: value' (repeatable).")
	f.IntVar(&bufsize, "bufsize", 0, "Receive buffer size in bytes (default 1024).")
	f.BoolVar(&noColor, "no-color", false, "Disable ANSI colors in the dump.")
	f.StringVar(&placeholder, "placeholder", "", "Character shown for non-printable bytes (default '.').")
	f.BoolVar(&absolute, "absolute", false, "Number dump rows by stream offset instead of per chunk.")
	f.StringVar(&recordPath, "record", "", "Record every received chunk into this capture directory.")
	f.StringVar(&logLevel, "log-level", "", "Log level: none, debug, info, warn, error, fatal.")
}

var Cmd = &cobra.Command{
	Use:   "run",
	Short: "Connects, sends the probe request and hex-dumps the response.",
	Long: `The 'run' command opens one connection to the target, writes the request
line, the Host header and the empty line ending the header block, then dumps
every chunk it reads until the peer closes the connection.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := load(cmd)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		flog.SetLevel(cfg.Log.Level)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// Probe only fails on connection setup; the kind message is already printed.
		sum, err := session.Probe(ctx, cfg, cmd.OutOrStdout())
		if err != nil {
			flog.Flush(time.Second)
			os.Exit(exitSetupFailure)
		}
		flog.Debugf("probe done: %d chunks, %d bytes", sum.Chunks, sum.Bytes)
		flog.Flush(time.Second)
	},
}

func load(cmd *cobra.Command) (*conf.Conf, error) {
	cfg := conf.Default()
	if confPath != "" {
		var err error
		if cfg, err = conf.LoadFromFile(confPath); err != nil {
			return nil, err
		}
	}

	f := cmd.Flags()
	if f.Changed("addr") {
		cfg.Target.Addr = addr
	}
	if f.Changed("network") {
		cfg.Target.Network = network
	}
	if f.Changed("timeout") {
		cfg.Target.Timeout_ = timeout
	}
	if f.Changed("socks5") {
		if cfg.Target.SOCKS5 == nil {
			cfg.Target.SOCKS5 = &conf.SOCKS5{}
		}
		cfg.Target.SOCKS5.Addr = socksAddr
	}
	if f.Changed("kcp-key") {
		if cfg.Target.KCP == nil {
			cfg.Target.KCP = &conf.KCP{}
		}
		cfg.Target.KCP.Key = kcpKey
	}
	if f.Changed("method") {
		cfg.Request.Method = method
	}
	if f.Changed("path") {
		cfg.Request.Path = path
	}
	if f.Changed("host") {
		cfg.Request.Host = host
	}
	if f.Changed("header") {
		cfg.Request.Headers = append(cfg.Request.Headers, headers...)
	}
	if f.Changed("bufsize") {
		cfg.Read.Bufsize = bufsize
	}
	if noColor {
		v := false
		cfg.Output.Color = &v
	}
	if f.Changed("placeholder") {
		cfg.Output.Placeholder = placeholder
	}
	if absolute {
		cfg.Output.AbsoluteOffsets = true
	}
	if f.Changed("record") {
		cfg.Record.Path = recordPath
	}
	if f.Changed("log-level") {
		cfg.Log.Level_ = logLevel
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}
