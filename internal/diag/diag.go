package diag

import (
	"fmt"
	"hexprobe/cmd/version"
	"runtime"
	"sync/atomic"
	"time"
)

var startTime = time.Now()

var enabled atomic.Bool

func Enable(on bool) { enabled.Store(on) }
func Enabled() bool  { return enabled.Load() }

type ConfigInfo struct {
	Role   string `json:"role,omitempty"`
	Target string `json:"target,omitempty"`
	Listen string `json:"listen,omitempty"`
	Pprof  string `json:"pprof,omitempty"`
	Record string `json:"record,omitempty"`
}

var cfg atomic.Value // *ConfigInfo

var sessions atomic.Int64
var active atomic.Int64

var sentBytes atomic.Uint64
var recvBytes atomic.Uint64
var chunks atomic.Uint64

var lastPeer atomic.Value // string
var lastAt atomic.Int64   // unix nano

type Status struct {
	Now    time.Time `json:"now"`
	Uptime string    `json:"uptime"`

	Version   string `json:"version"`
	GitTag    string `json:"git_tag"`
	GitCommit string `json:"git_commit"`
	BuildTime string `json:"build_time"`

	Config ConfigInfo `json:"config"`

	Sessions int64 `json:"sessions"`
	Active   int64 `json:"active"`

	SentBytes uint64 `json:"sent_bytes"`
	RecvBytes uint64 `json:"recv_bytes"`
	Chunks    uint64 `json:"chunks"`

	LastPeer   string     `json:"last_peer,omitempty"`
	LastAt     *time.Time `json:"last_at,omitempty"`
	Goroutines int        `json:"goroutines"`
	AllocBytes uint64     `json:"alloc_bytes"`
	SysBytes   uint64     `json:"sys_bytes"`
	NumGC      uint32     `json:"num_gc"`
}

func SetConfig(info ConfigInfo) {
	cfg.Store(&info)
}

// BeginSession counts a new probe (client) or accepted connection (serve).
func BeginSession(peer string) {
	sessions.Add(1)
	active.Add(1)
	lastPeer.Store(peer)
	lastAt.Store(time.Now().UnixNano())
}

func EndSession() { active.Add(-1) }

func AddSent(n int64) {
	if n > 0 {
		sentBytes.Add(uint64(n))
	}
}

// AddChunk records one successful read of n bytes.
func AddChunk(n int) {
	if n > 0 {
		recvBytes.Add(uint64(n))
		chunks.Add(1)
	}
}

func Snapshot() Status {
	s := Status{
		Now:        time.Now(),
		Uptime:     time.Since(startTime).Truncate(time.Second).String(),
		Version:    version.Version,
		GitTag:     version.GitTag,
		GitCommit:  version.GitCommit,
		BuildTime:  version.BuildTime,
		Sessions:   sessions.Load(),
		Active:     active.Load(),
		SentBytes:  sentBytes.Load(),
		RecvBytes:  recvBytes.Load(),
		Chunks:     chunks.Load(),
		Goroutines: runtime.NumGoroutine(),
	}
	if v := cfg.Load(); v != nil {
		s.Config = *v.(*ConfigInfo)
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	s.AllocBytes = ms.Alloc
	s.SysBytes = ms.Sys
	s.NumGC = ms.NumGC

	if v := lastPeer.Load(); v != nil {
		s.LastPeer = v.(string)
	}
	if at := lastAt.Load(); at > 0 {
		t := time.Unix(0, at)
		s.LastAt = &t
	}
	return s
}

func FormatText(s Status) string {
	last := "last: n/a"
	if s.LastAt != nil {
		last = fmt.Sprintf("last: peer=%s at=%s", s.LastPeer, s.LastAt.Format(time.RFC3339))
	}

	return fmt.Sprintf(
		"hexprobe status\n"+
			"  role: %s\n"+
			"  uptime: %s\n"+
			"  version: %s (tag=%s commit=%s)\n"+
			"  sessions: %d  active: %d\n"+
			"  bytes: sent=%d  recv=%d  chunks=%d\n"+
			"  %s\n"+
			"  runtime: goroutines=%d alloc=%dB sys=%dB gc=%d\n"+
			"  config: target=%s listen=%s record=%s pprof=%s\n",
		s.Config.Role,
		s.Uptime,
		s.Version, s.GitTag, s.GitCommit,
		s.Sessions, s.Active,
		s.SentBytes, s.RecvBytes, s.Chunks,
		last,
		s.Goroutines, s.AllocBytes, s.SysBytes, s.NumGC,
		s.Config.Target, s.Config.Listen, s.Config.Record, s.Config.Pprof,
	)
}
