package session

import (
	"bytes"
	"context"
	"errors"
	"net"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"hexprobe/internal/capture"
	"hexprobe/internal/conf"
	"hexprobe/internal/connector"
	"hexprobe/internal/fixture"
)

func testConf(addr string) *conf.Conf {
	c := conf.Default()
	c.Target.Addr = addr
	v := false
	c.Output.Color = &v
	return c
}

func startFixture(t *testing.T, body string) (string, func()) {
	t.Helper()
	cfg := conf.Default()
	cfg.Serve.Listen_ = "127.0.0.1:0"
	cfg.Serve.Body = body
	s := fixture.New(&cfg.Serve)
	if err := s.Listen(); err != nil {
		t.Fatalf("Listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = s.Serve(ctx)
		close(done)
	}()
	return s.Addr().String(), func() {
		cancel()
		<-done
	}
}

func TestProbe_AgainstFixture(t *testing.T) {
	addr, stop := startFixture(t, "hello\x00\n")
	defer stop()

	var out bytes.Buffer
	sum, err := Probe(context.Background(), testConf(addr), &out)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	got := out.String()

	for _, want := range []string{
		"Successfully sent requestline\n",
		"Successfully sent host header\n",
		"Successfully sent header end\n",
		"---- 00 01 02 03 04 05 06 07 08 09 0A 0B 0C 0D 0E 0F\n",
		"0000 48 54 54 50 2f 31 2e 30 20 32 30 30 20 4f 4b 0d HTTP/1.0 200 OK.\n",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in output:\n%s", want, got)
		}
	}
	if !strings.HasSuffix(got, "\nStopping client\n") {
		t.Fatalf("expected output to end with Stopping client:\n%s", got)
	}
	if sum.Chunks == 0 || strings.Count(got, "bytes of data:") != sum.Chunks {
		t.Fatalf("chunks=%d but output has %d read lines", sum.Chunks, strings.Count(got, "bytes of data:"))
	}
	for _, r := range sum.Results {
		if !r.OK() {
			t.Fatalf("send failed: %+v", r)
		}
	}
}

func TestProbe_PeerClosesWithoutData(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	go func() {
		c, err := ln.Accept()
		if err == nil {
			c.Close()
		}
	}()

	var out bytes.Buffer
	sum, err := Probe(context.Background(), testConf(ln.Addr().String()), &out)
	if err != nil {
		t.Fatalf("a closed peer is a normal completion, got %v", err)
	}
	if sum.Chunks != 0 || strings.Contains(out.String(), "bytes of data") {
		t.Fatalf("expected zero dump iterations, got %d:\n%s", sum.Chunks, out.String())
	}
	if !strings.HasSuffix(out.String(), "Stopping client\n") {
		t.Fatalf("expected Stopping client:\n%s", out.String())
	}
}

func TestProbe_ConnectionFailedSendsNothing(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	var out bytes.Buffer
	sum, err := Probe(context.Background(), testConf(addr), &out)
	if !errors.Is(err, connector.ConnectFailed) || sum != nil {
		t.Fatalf("expected ConnectFailed, got sum=%v err=%v", sum, err)
	}
	if out.String() != "Connection failed\n" {
		t.Fatalf("expected only the failure line, got %q", out.String())
	}
}

func TestProbe_InvalidAddress(t *testing.T) {
	var out bytes.Buffer
	_, err := Probe(context.Background(), testConf("127.0.0.1:99999"), &out)
	if !errors.Is(err, connector.InvalidAddress) || out.String() != "Invalid address\n" {
		t.Fatalf("expected Invalid address, got %q / %v", out.String(), err)
	}
}

func TestProbe_CancelUnblocksRead(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	held := make(chan net.Conn, 1)
	go func() {
		c, err := ln.Accept()
		if err == nil {
			held <- c
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	done := make(chan error, 1)
	go func() {
		_, err := Probe(ctx, testConf(ln.Addr().String()), &bytes.Buffer{})
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Probe: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Probe did not return after cancellation")
	}
	if c := <-held; c != nil {
		c.Close()
	}
}

func TestProbe_RecordsChunks(t *testing.T) {
	addr, stop := startFixture(t, strings.Repeat("z", 3000))
	defer stop()

	cfg := testConf(addr)
	cfg.Record.Path = filepath.Join(t.TempDir(), "capture")
	var out bytes.Buffer
	sum, err := Probe(context.Background(), cfg, &out)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if sum.RecordID == "" {
		t.Fatalf("expected a record id")
	}

	store, err := capture.Open(cfg.Record.Path, true)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()
	sess, err := store.Session(sum.RecordID)
	if err != nil {
		t.Fatalf("Session: %v", err)
	}
	if sess.Chunks != sum.Chunks || sess.Bytes != sum.Bytes {
		t.Fatalf("recorded %d chunks/%d bytes, probe saw %d/%d", sess.Chunks, sess.Bytes, sum.Chunks, sum.Bytes)
	}
	if !strings.HasPrefix(string(sess.Request), "GET /doThing HTTP/1.0\r\n") {
		t.Fatalf("unexpected recorded request %q", sess.Request)
	}
}

func TestPrinter_AbsoluteOffsets(t *testing.T) {
	o := conf.Default().Output
	v := false
	o.Color = &v
	o.AbsoluteOffsets = true
	var out bytes.Buffer
	p := NewPrinter(&out, &o)
	_ = p.Chunk(make([]byte, 20))
	_ = p.Chunk(make([]byte, 4))
	if !strings.Contains(out.String(), "read 4 bytes of data:\n---- 00") || !strings.Contains(out.String(), "\n0014 00 00 00 00 ") {
		t.Fatalf("expected second chunk to start at 0x14:\n%s", out.String())
	}
}
