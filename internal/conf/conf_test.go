package conf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault_MatchesBuiltInProbe(t *testing.T) {
	c := Default()
	if c.Target.Addr != "127.0.0.1:8080" || c.Target.Network != "tcp" {
		t.Fatalf("unexpected target defaults: %+v", c.Target)
	}
	if c.Target.Timeout != 0 {
		t.Fatalf("expected no timeout by default, got %v", c.Target.Timeout)
	}
	r := c.Request
	if r.Method != "GET" || r.Path != "/doThing" || r.Proto != "HTTP/1.0" || r.Host != "localhost:8080" {
		t.Fatalf("unexpected request defaults: %+v", r)
	}
	if c.Read.Bufsize != 1024 {
		t.Fatalf("expected bufsize 1024, got %d", c.Read.Bufsize)
	}
	if !c.Output.Colored() || c.Output.Placeholder != "." {
		t.Fatalf("unexpected output defaults: %+v", c.Output)
	}
}

func TestParse_OverridesAndDurations(t *testing.T) {
	c, err := Parse([]byte(`
target:
  addr: "10.0.0.5:9000"
  timeout: "1500ms"
request:
  path: "/health"
  headers:
    - "User-Agent: hexprobe"
read:
  bufsize: 4096
output:
  color: false
  placeholder: "~"
log:
  level: "debug"
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Target.Addr != "10.0.0.5:9000" || c.Target.Timeout != 1500*time.Millisecond {
		t.Fatalf("unexpected target: %+v", c.Target)
	}
	if c.Request.Path != "/health" || c.Request.Method != "GET" || len(c.Request.Headers) != 1 {
		t.Fatalf("unexpected request: %+v", c.Request)
	}
	if c.Output.Colored() || c.Output.Placeholder != "~" {
		t.Fatalf("unexpected output: %+v", c.Output)
	}
	if c.Log.Level != 0 {
		t.Fatalf("expected debug level 0, got %d", c.Log.Level)
	}
}

func TestParse_UnknownFieldRejected(t *testing.T) {
	if _, err := Parse([]byte("target:\n  adr: \"x\"\n")); err == nil {
		t.Fatalf("expected strict decoding to reject unknown field")
	}
}

func TestParse_CollectsAllValidationErrors(t *testing.T) {
	_, err := Parse([]byte(`
target:
  network: "udp"
request:
  path: "no-slash"
read:
  bufsize: 8
output:
  placeholder: "ab"
`))
	if err == nil {
		t.Fatalf("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"target network", "request path", "read bufsize", "output placeholder"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in error, got: %v", want, err)
		}
	}
}

func TestParse_MalformedTargetAddrLeftToConnector(t *testing.T) {
	c, err := Parse([]byte("target:\n  addr: \"not-an-address\"\n"))
	if err != nil {
		t.Fatalf("malformed target addr should not fail config load: %v", err)
	}
	if c.Target.Addr != "not-an-address" {
		t.Fatalf("unexpected addr %q", c.Target.Addr)
	}
}

func TestRequest_RejectsHeaderInjection(t *testing.T) {
	r := Request{Headers: []string{"X-A: 1\r\nX-B: 2"}}
	r.setDefaults()
	if errs := r.validate(); len(errs) == 0 {
		t.Fatalf("expected CR/LF header to be rejected")
	}
}

func TestTarget_KCPDefaultsAndBlock(t *testing.T) {
	tg := Target{Network: "kcp", KCP: &KCP{Key: "secret"}}
	tg.setDefaults()
	if errs := tg.validate(); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if tg.KCP.Mode != "fast2" || tg.KCP.Block_ != "aes" || tg.KCP.Block == nil {
		t.Fatalf("unexpected kcp config: %+v", tg.KCP)
	}
}

func TestTarget_KCPRequiresKey(t *testing.T) {
	tg := Target{Network: "kcp"}
	tg.setDefaults()
	if errs := tg.validate(); len(errs) == 0 {
		t.Fatalf("expected missing key to be rejected")
	}

	tg = Target{Network: "kcp", KCP: &KCP{Block_: "none"}}
	tg.setDefaults()
	if errs := tg.validate(); len(errs) != 0 {
		t.Fatalf("block none should not need a key: %v", errs)
	}
}

func TestTarget_SOCKS5OnlyWithTCP(t *testing.T) {
	tg := Target{Network: "kcp", KCP: &KCP{Block_: "none"}, SOCKS5: &SOCKS5{Addr: "127.0.0.1:1080"}}
	tg.setDefaults()
	errs := tg.validate()
	if len(errs) != 1 || !strings.Contains(errs[0].Error(), "socks5") {
		t.Fatalf("expected a single socks5 error, got %v", errs)
	}
}

func TestDebug_DiagNeedsPprof(t *testing.T) {
	d := Debug{Diag: true}
	if errs := d.validate(); len(errs) == 0 {
		t.Fatalf("expected diag without pprof to be rejected")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("serve:\n  listen: \"127.0.0.1:0\"\n  body: \"hi\"\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if c.Serve.Listen == nil || c.Serve.Body != "hi" || c.Serve.Status != 200 {
		t.Fatalf("unexpected serve: %+v", c.Serve)
	}

	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
