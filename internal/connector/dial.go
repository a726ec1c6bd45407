package connector

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"os"
	"strconv"

	"hexprobe/internal/conf"
	"hexprobe/internal/flog"
)

// Dial resolves the target address and opens one stream to it. Failures are
// returned as *Error with one of SocketCreate, InvalidAddress or ConnectFailed.
// Nothing acquired before a failure outlives the call.
func Dial(ctx context.Context, t *conf.Target) (*Conn, error) {
	addr, err := resolve(ctx, t.Addr)
	if err != nil {
		return nil, newError(InvalidAddress, t.Addr, err)
	}

	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}

	var c *Conn
	switch {
	case t.Network == "kcp":
		c, err = dialKCP(addr, t.KCP)
	case t.SOCKS5 != nil:
		c, err = dialSOCKS5(ctx, addr, t.SOCKS5)
	default:
		c, err = dialTCP(ctx, addr, t.Timeout)
	}
	if err != nil {
		return nil, err
	}

	flog.Debugf("connected to %s over %s (local %s)", addr, c.Network(), c.LocalAddr())
	return c, nil
}

// resolve returns ip:port. Hostnames are looked up; an unresolvable host or an
// out-of-range port is an address failure, not a connect failure.
func resolve(ctx context.Context, addr string) (string, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", err
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("port %q must be between 1-65535", portStr)
	}
	if host == "" {
		return "", fmt.Errorf("host is empty")
	}

	ip, err := netip.ParseAddr(host)
	if err != nil {
		ips, lerr := net.DefaultResolver.LookupNetIP(ctx, "ip", host)
		if lerr != nil {
			return "", lerr
		}
		if len(ips) == 0 {
			return "", fmt.Errorf("no addresses for host %q", host)
		}
		ip = ips[0]
		for _, cand := range ips {
			if cand.Is4() {
				ip = cand
				break
			}
		}
	}
	return netip.AddrPortFrom(ip.Unmap(), uint16(port)).String(), nil
}

// classify splits a dial error into socket-creation and connect failures.
func classify(addr string, err error) *Error {
	var se *os.SyscallError
	if errors.As(err, &se) && se.Syscall == "socket" {
		return newError(SocketCreate, addr, err)
	}
	return newError(ConnectFailed, addr, err)
}
