package connector

import (
	"context"
	"fmt"
	"net"
	"time"

	"hexprobe/internal/conf"
	"hexprobe/internal/flog"

	"github.com/txthinking/socks5"
)

func dialSOCKS5(ctx context.Context, addr string, cfg *conf.SOCKS5) (*Conn, error) {
	a, h, p, err := socks5.ParseAddress(addr)
	if err != nil {
		return nil, newError(InvalidAddress, addr, err)
	}
	if a == socks5.ATYPDomain {
		h = h[1:]
	}
	raddr, _ := net.ResolveTCPAddr("tcp", addr)

	c := &socks5.Client{
		Server:        cfg.Addr,
		UserName:      cfg.Username,
		Password:      cfg.Password,
		TCPTimeout:    cfg.TCPTimeout,
		RemoteAddress: raddr,
	}

	type result struct {
		nc  net.Conn
		err error
	}
	ch := make(chan result, 1)
	go func() {
		nc, err := handshakeSOCKS5(c, socks5.NewRequest(socks5.CmdConnect, a, h, p))
		ch <- result{nc, err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			return nil, newError(ConnectFailed, addr, fmt.Errorf("via socks5 %s: %w", cfg.Addr, r.err))
		}
		flog.Debugf("socks5 proxy %s connected to %s", cfg.Addr, addr)
		return newConn(r.nc, "tcp+socks5"), nil
	case <-ctx.Done():
		// The handshake goroutine still owns whatever it opens; release it when it lands.
		go func() {
			if r := <-ch; r.nc != nil {
				r.nc.Close()
			}
		}()
		return nil, newError(ConnectFailed, addr, ctx.Err())
	}
}

// handshakeSOCKS5 runs negotiation and CONNECT on c. The proxy connection is
// closed on every failure. On success the tcp_timeout deadline armed for the
// handshake is cleared so that it does not bound the session.
func handshakeSOCKS5(c *socks5.Client, rq *socks5.Request) (net.Conn, error) {
	fail := func(err error) (net.Conn, error) {
		if c.TCPConn != nil {
			c.TCPConn.Close()
		}
		return nil, err
	}

	if err := c.Negotiate(nil); err != nil {
		return fail(fmt.Errorf("negotiate: %w", err))
	}
	if _, err := c.Request(rq); err != nil {
		return fail(fmt.Errorf("connect: %w", err))
	}
	if err := c.TCPConn.SetDeadline(time.Time{}); err != nil {
		return fail(fmt.Errorf("clear handshake deadline: %w", err))
	}
	return c, nil
}
