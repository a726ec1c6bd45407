package flog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

type Level int

const None Level = -1
const (
	Debug Level = iota
	Info
	Warn
	Error
	Fatal
)

var (
	minLevel  atomic.Int32
	logCh     = make(chan string, 1024)
	flushCh   = make(chan chan struct{})
	dropped   atomic.Uint64
	startOnce sync.Once

	outMu sync.Mutex
	out   io.Writer = os.Stderr
)

func init() {
	minLevel.Store(int32(Info))
}

// ParseLevel maps a config level name to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return None, nil
	case "debug":
		return Debug, nil
	case "", "info":
		return Info, nil
	case "warn", "warning":
		return Warn, nil
	case "error":
		return Error, nil
	case "fatal":
		return Fatal, nil
	}
	return Info, fmt.Errorf("unknown log level %q", s)
}

// SetOutput redirects log lines. Console output of the dump never goes through here.
func SetOutput(w io.Writer) {
	outMu.Lock()
	out = w
	outMu.Unlock()
}

func SetLevel(l int) {
	minLevel.Store(int32(l))
	if l == int(None) {
		return
	}

	startOnce.Do(func() {
		go func() {
			ticker := time.NewTicker(10 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case msg, ok := <-logCh:
					if !ok {
						return
					}
					write(msg)
				case done := <-flushCh:
					drain()
					close(done)
				case <-ticker.C:
					if n := dropped.Swap(0); n > 0 {
						now := time.Now().Format("2006-01-02 15:04:05.000")
						write(fmt.Sprintf("%s [WARN] flog: dropped %d log lines (logCh full)\n", now, n))
					}
				}
			}
		}()
	})
}

func write(msg string) {
	outMu.Lock()
	_, _ = io.WriteString(out, msg)
	outMu.Unlock()
}

func drain() {
	for {
		select {
		case msg := <-logCh:
			write(msg)
		default:
			return
		}
	}
}

// Flush blocks until every queued line has been written or the timeout passes.
func Flush(timeout time.Duration) {
	if Level(minLevel.Load()) == None {
		return
	}
	done := make(chan struct{})
	select {
	case flushCh <- done:
	case <-time.After(timeout):
		return
	}
	select {
	case <-done:
	case <-time.After(timeout):
	}
}

func logf(level Level, format string, args ...any) {
	lvl := Level(minLevel.Load())
	if level < lvl || lvl == None {
		return
	}

	for i, arg := range args {
		if err, ok := arg.(error); ok {
			if WErr(err) == nil {
				args[i] = "<filtered>"
			}
		}
	}

	now := time.Now().Format("2006-01-02 15:04:05.000")
	line := fmt.Sprintf("%s [%s] %s\n", now, level.String(), fmt.Sprintf(format, args...))

	select {
	case logCh <- line:
	default:
		dropped.Add(1)
	}
}

func (l Level) String() string {
	switch l {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	case Fatal:
		return "FATAL"
	case None:
		return "None"
	default:
		return "UNKNOWN"
	}
}

func Debugf(format string, args ...any) { logf(Debug, format, args...) }
func Infof(format string, args ...any)  { logf(Info, format, args...) }
func Warnf(format string, args ...any)  { logf(Warn, format, args...) }
func Errorf(format string, args ...any) { logf(Error, format, args...) }
func Fatalf(format string, args ...any) {
	logf(Fatal, format, args...)
	Flush(100 * time.Millisecond)
	os.Exit(1)
}
