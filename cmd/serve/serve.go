package serve

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hexprobe/internal/conf"
	"hexprobe/internal/diag"
	"hexprobe/internal/fixture"
	"hexprobe/internal/flog"

	"github.com/spf13/cobra"
)

var (
	confPath string
	listen   string
	status   int
	body     string
	silent   bool
	pprof    string
	diagOn   bool
	logLevel string
)

func init() {
	f := Cmd.Flags()
	f.StringVarP(&confPath, "config", "c", "", "Path to an optional YAML configuration file.")
	f.StringVarP(&listen, "listen", "l", "", "Listen address (default 127.0.0.1:8080).")
	f.IntVar(&status, "status", 0, "HTTP status code of the canned response (default 200).")
	f.StringVar(&body, "body", "", "Body of the canned response.")
	f.BoolVar(&silent, "silent", false, "Close connections after the request without answering.")
	f.StringVar(&pprof, "pprof", "", "Debug HTTP bind address (host:port) for pprof.")
	f.BoolVar(&diagOn, "diag", false, "Expose /debug/hexprobe/* status on the pprof address.")
	f.StringVar(&logLevel, "log-level", "", "Log level: none, debug, info, warn, error, fatal.")
}

var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs a local fixture server that answers probe requests.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := load(cmd)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		initialize(cfg)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := fixture.New(&cfg.Serve).Serve(ctx); err != nil {
			flog.Fatalf("fixture server failed: %v", err)
		}
		flog.Flush(time.Second)
	},
}

func initialize(cfg *conf.Conf) {
	flog.SetLevel(cfg.Log.Level)
	diag.Enable(cfg.Debug.Diag)
	if cfg.Debug.Diag {
		diag.SetConfig(diag.ConfigInfo{
			Role:   "serve",
			Listen: cfg.Serve.Listen_,
			Pprof:  cfg.Debug.Pprof,
		})
		diag.RegisterHTTP(nil)
	}
	startPprof(cfg.Debug.Pprof)
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
	if f.Changed("listen") {
		cfg.Serve.Listen_ = listen
	}
	if f.Changed("status") {
		cfg.Serve.Status = status
	}
	if f.Changed("body") {
		cfg.Serve.Body = body
	}
	if silent {
		cfg.Serve.Silent = true
	}
	if f.Changed("pprof") {
		cfg.Debug.Pprof = pprof
	}
	if diagOn {
		cfg.Debug.Diag = true
	}
	if f.Changed("log-level") {
		cfg.Log.Level_ = logLevel
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}
