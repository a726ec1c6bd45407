package session

import (
	"io"
)

type State int

const (
	Reading State = iota
	Done
)

func (s State) String() string {
	if s == Done {
		return "DONE"
	}
	return "READING"
}

// Reader reads a stream chunk by chunk into one reused buffer. A read with
// data keeps it in Reading; a read with no data, whether EOF or an error,
// moves it to Done for good.
type Reader struct {
	r     io.Reader
	buf   []byte
	state State
	err   error
	total int64
}

func NewReader(r io.Reader, buf []byte) *Reader {
	return &Reader{r: r, buf: buf}
}

// Next returns the next chunk. The slice aliases the reader's buffer and is
// only valid until the following call. ok is false once the reader is Done.
func (r *Reader) Next() (chunk []byte, ok bool) {
	if r.state == Done {
		return nil, false
	}
	if r.err != nil {
		r.state = Done
		return nil, false
	}

	n, err := r.r.Read(r.buf)
	if n <= 0 {
		if err == nil {
			err = io.ErrNoProgress
		}
		r.err = err
		r.state = Done
		return nil, false
	}
	// Data that arrives together with an error is delivered first; the error
	// ends the loop on the next call.
	r.err = err
	r.total += int64(n)
	return r.buf[:n], true
}

func (r *Reader) State() State { return r.state }

// Err is what ended reading: io.EOF on an orderly close, anything else on a
// failed read. Callers treat both as the end of the stream.
func (r *Reader) Err() error { return r.err }

// Total is the number of bytes delivered so far.
func (r *Reader) Total() int64 { return r.total }
