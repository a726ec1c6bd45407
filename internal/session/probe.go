package session

import (
	"bytes"
	"context"
	"errors"
	"io"

	"hexprobe/internal/capture"
	"hexprobe/internal/conf"
	"hexprobe/internal/connector"
	"hexprobe/internal/diag"
	"hexprobe/internal/flog"
	"hexprobe/internal/pkg/buffer"
	"hexprobe/internal/request"
)

// Summary describes a completed probe.
type Summary struct {
	Results  []request.Result
	Chunks   int
	Bytes    int64
	EndErr   error
	RecordID string
}

// Probe connects to cfg.Target, sends the configured request and dumps every
// chunk read until the peer closes. Only a failure to connect is returned as
// an error (a *connector.Error); its console message has already been
// printed. Send and read failures end up in the Summary.
func Probe(ctx context.Context, cfg *conf.Conf, out io.Writer) (*Summary, error) {
	pr := NewPrinter(out, &cfg.Output)
	parts := request.Build(&cfg.Request)

	conn, err := connector.Dial(ctx, &cfg.Target)
	if err != nil {
		var ce *connector.Error
		if errors.As(err, &ce) {
			pr.Line("%s", ce.Kind.Error())
		}
		flog.Debugf("dial %s failed: %v", cfg.Target.Addr, err)
		return nil, err
	}
	defer conn.Close()

	// Blocked reads and writes return once the connection is closed.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	diag.BeginSession(conn.RemoteAddr().String())
	defer diag.EndSession()

	rec := startRecording(cfg, conn.Network(), parts)

	sum := &Summary{}
	sum.Results = request.Send(conn, parts, request.NewReporter(out))

	bufp := buffer.Get(cfg.Read.Bufsize)
	defer buffer.Put(bufp)

	rd := NewReader(conn, *bufp)
	for {
		chunk, ok := rd.Next()
		if !ok {
			break
		}
		diag.AddChunk(len(chunk))
		if rec != nil {
			if err := rec.Append(chunk); err != nil {
				flog.Warnf("recording stopped: %v", err)
				rec.close(err)
				rec = nil
			}
		}
		if err := pr.Chunk(chunk); err != nil {
			flog.Errorf("failed to write dump: %v", err)
		}
		sum.Chunks++
	}
	sum.Bytes = rd.Total()
	sum.EndErr = rd.Err()

	if diag.IsBenignStreamErr(sum.EndErr) {
		flog.Debugf("stream from %s ended: %v", cfg.Target.Addr, sum.EndErr)
	} else {
		flog.Debugf("stream from %s ended with error: %v", cfg.Target.Addr, sum.EndErr)
	}

	if rec != nil {
		sum.RecordID = rec.ID()
		rec.close(sum.EndErr)
	}

	pr.Line("Stopping client")
	return sum, nil
}

type recording struct {
	*capture.Recorder
	store *capture.Store
}

// startRecording opens the capture store when configured. A store that cannot
// be opened only disables recording.
func startRecording(cfg *conf.Conf, network string, parts []request.Part) *recording {
	if cfg.Record.Path == "" {
		return nil
	}
	store, err := capture.Open(cfg.Record.Path, false)
	if err != nil {
		flog.Warnf("recording disabled: %v", err)
		return nil
	}
	var req bytes.Buffer
	for _, p := range parts {
		req.Write(p.Data)
	}
	rec, err := store.Begin(cfg.Target.Addr, network, req.Bytes())
	if err != nil {
		flog.Warnf("recording disabled: %v", err)
		store.Close()
		return nil
	}
	flog.Infof("recording session %s to %s", rec.ID(), cfg.Record.Path)
	return &recording{Recorder: rec, store: store}
}

func (r *recording) close(endErr error) {
	if err := r.Finish(endErr); err != nil {
		flog.Warnf("failed to finish recording %s: %v", r.ID(), err)
	}
	if err := r.store.Close(); err != nil {
		flog.Warnf("failed to close capture store: %v", err)
	}
}
