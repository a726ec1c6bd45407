package flog

import (
	"context"
	"errors"
	"io"
	"net"
)

// WErr returns nil for errors that only mean the stream ended (EOF, closed
// connection, cancellation) so they do not show up as noise in log lines.
func WErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
