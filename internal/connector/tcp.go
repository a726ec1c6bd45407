package connector

import (
	"context"
	"net"
	"time"
)

func dialTCP(ctx context.Context, addr string, timeout time.Duration) (*Conn, error) {
	d := net.Dialer{Timeout: timeout}
	nc, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, classify(addr, err)
	}

	// Each request part should leave as its own segment.
	if tc, ok := nc.(*net.TCPConn); ok {
		if err := tc.SetNoDelay(true); err != nil {
			nc.Close()
			return nil, newError(ConnectFailed, addr, err)
		}
	}
	return newConn(nc, "tcp"), nil
}
