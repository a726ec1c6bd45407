package connector

import (
	"net"
	"sync"
)

// Conn owns one established stream. It is closed exactly once no matter how
// many times Close is called.
type Conn struct {
	nc      net.Conn
	network string

	closeOnce sync.Once
	closeErr  error
}

func newConn(nc net.Conn, network string) *Conn {
	return &Conn{nc: nc, network: network}
}

func (c *Conn) Read(p []byte) (int, error)  { return c.nc.Read(p) }
func (c *Conn) Write(p []byte) (int, error) { return c.nc.Write(p) }

func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.nc.Close()
	})
	return c.closeErr
}

func (c *Conn) Network() string      { return c.network }
func (c *Conn) LocalAddr() net.Addr  { return c.nc.LocalAddr() }
func (c *Conn) RemoteAddr() net.Addr { return c.nc.RemoteAddr() }
