package diag

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"strings"
	"syscall"
)

// IsBenignStreamErr reports whether an error only means the stream ended:
// peer close, local close, cancellation or a deadline.
func IsBenignStreamErr(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	if errors.Is(err, os.ErrDeadlineExceeded) || errors.Is(err, net.ErrClosed) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return false
}

// IsNoBufferOrNoMem reports transient kernel buffer pressure.
func IsNoBufferOrNoMem(err error) bool {
	return errors.Is(err, syscall.ENOBUFS) ||
		errors.Is(err, syscall.ENOMEM) ||
		strings.Contains(err.Error(), "No buffer space available") ||
		strings.Contains(err.Error(), "Cannot allocate memory")
}
