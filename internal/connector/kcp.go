package connector

import (
	"hexprobe/internal/conf"

	"github.com/xtaci/kcp-go/v5"
)

// dialKCP opens a reliable-UDP stream. KCP has no handshake, so the dial never
// waits on the peer and target.timeout has nothing to bound. An absent peer
// only shows up as a read that blocks until the run is interrupted.
func dialKCP(addr string, cfg *conf.KCP) (*Conn, error) {
	sess, err := kcp.DialWithOptions(addr, cfg.Block, cfg.Dshard, cfg.Pshard)
	if err != nil {
		return nil, classify(addr, err)
	}
	applyKCP(sess, cfg)
	return newConn(sess, "kcp"), nil
}

func applyKCP(conn *kcp.UDPSession, cfg *conf.KCP) {
	conn.SetStreamMode(true)

	var noDelay, interval, resend, noCongestion int
	var wDelay, ackNoDelay bool
	switch cfg.Mode {
	case "normal":
		noDelay, interval, resend, noCongestion = 0, 40, 2, 0
		wDelay, ackNoDelay = true, false
	case "fast":
		noDelay, interval, resend, noCongestion = 0, 30, 2, 0
		wDelay, ackNoDelay = true, false
	case "fast2":
		noDelay, interval, resend, noCongestion = 1, 20, 2, 0
		wDelay, ackNoDelay = false, true
	case "fast3":
		noDelay, interval, resend, noCongestion = 1, 10, 2, 0
		wDelay, ackNoDelay = false, true
	}

	conn.SetNoDelay(noDelay, interval, resend, noCongestion)
	conn.SetWindowSize(cfg.Sndwnd, cfg.Rcvwnd)
	conn.SetMtu(cfg.MTU)
	conn.SetWriteDelay(wDelay)
	conn.SetACKNoDelay(ackNoDelay)
}
