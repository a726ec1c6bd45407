package fixture

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"hexprobe/internal/conf"
	"hexprobe/internal/diag"
	"hexprobe/internal/flog"

	"golang.org/x/sync/errgroup"
)

const (
	headerTimeout  = 10 * time.Second
	maxHeaderBytes = 64 * 1024
)

// Server answers each connection with a canned HTTP/1.0 response once the
// request header block has been read, then closes it.
type Server struct {
	cfg *conf.Serve
	ln  net.Listener
}

func New(cfg *conf.Serve) *Server {
	return &Server{cfg: cfg}
}

// Listen binds the configured address. Addr is valid afterwards.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.cfg.Listen_)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Listen_, err)
	}
	s.ln = ln
	return nil
}

func (s *Server) Addr() net.Addr { return s.ln.Addr() }

// Serve accepts until ctx is done. It returns nil on shutdown and the accept
// error otherwise. Every connection handler has returned when Serve does.
func (s *Server) Serve(ctx context.Context) error {
	if s.ln == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}
	flog.Infof("fixture server listening on %s", s.ln.Addr())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		return s.ln.Close()
	})
	g.Go(func() error {
		for {
			c, err := s.ln.Accept()
			if err != nil {
				if gctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("accept failed: %w", err)
			}
			g.Go(func() error {
				s.handle(gctx, c)
				return nil
			})
		}
	})

	err := g.Wait()
	if errors.Is(err, net.ErrClosed) {
		err = nil
	}
	flog.Infof("fixture server on %s stopped", s.ln.Addr())
	return err
}

func (s *Server) handle(ctx context.Context, c net.Conn) {
	defer c.Close()
	stop := context.AfterFunc(ctx, func() { c.Close() })
	defer stop()

	peer := c.RemoteAddr().String()
	diag.BeginSession(peer)
	defer diag.EndSession()

	_ = c.SetReadDeadline(time.Now().Add(headerTimeout))
	line, n, err := readHeader(bufio.NewReader(c))
	diag.AddChunk(n)
	if err != nil {
		flog.Debugf("fixture: %s: %v", peer, err)
		return
	}
	flog.Infof("fixture: %s %q", peer, line)

	if s.cfg.Silent {
		return
	}
	if _, err := diag.WriteFull(c, Response(s.cfg.Status, s.cfg.Body)); err != nil {
		flog.Debugf("fixture: failed to answer %s: %v", peer, err)
	}
}

// readHeader consumes lines up to and including the empty line ending the
// header block. It returns the request line and the number of bytes read.
func readHeader(br *bufio.Reader) (string, int, error) {
	var first string
	total := 0
	for {
		line, err := br.ReadString('\n')
		total += len(line)
		if err != nil {
			return first, total, err
		}
		if total > maxHeaderBytes {
			return first, total, fmt.Errorf("header block exceeds %d bytes", maxHeaderBytes)
		}
		trimmed := strings.TrimRight(line, "\r\n")
		if trimmed == "" {
			return first, total, nil
		}
		if first == "" {
			first = trimmed
		}
	}
}

// Response renders a minimal HTTP/1.0 response with a text body.
func Response(status int, body string) []byte {
	text := http.StatusText(status)
	if text == "" {
		text = "Status"
	}
	return fmt.Appendf(nil,
		"HTTP/1.0 %d %s\r\nContent-Type: text/plain; charset=utf-8\r\nContent-Length: %d\r\nConnection: close\r\n\r\n%s",
		status, text, len(body), body)
}
