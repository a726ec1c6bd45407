package diag

import (
	"io"
	"time"
)

// WriteFull writes all of p, continuing after short writes. ENOBUFS/ENOMEM
// are retried with bounded backoff; any other error stops the write. The
// returned count is what actually reached dst.
func WriteFull(dst io.Writer, p []byte) (int, error) {
	const (
		maxTotalSleep = 500 * time.Millisecond
		maxBackoff    = 20 * time.Millisecond
	)
	backoff := 200 * time.Microsecond
	var totalSlept time.Duration

	written := 0
	for len(p) > 0 {
		n, err := dst.Write(p)
		if n > 0 {
			written += n
			p = p[n:]
			AddSent(int64(n))
			backoff = 200 * time.Microsecond
			totalSlept = 0
		}
		if err == nil {
			if n == 0 {
				return written, io.ErrShortWrite
			}
			continue
		}

		if IsNoBufferOrNoMem(err) {
			if totalSlept >= maxTotalSleep {
				return written, err
			}
			time.Sleep(backoff)
			totalSlept += backoff
			if backoff < maxBackoff {
				backoff = min(backoff*2, maxBackoff)
			}
			continue
		}
		return written, err
	}
	return written, nil
}
