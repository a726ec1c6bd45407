package request

import (
	"fmt"
	"io"

	"hexprobe/internal/conf"
	"hexprobe/internal/diag"
)

// Part is one byte sequence written on its own.
type Part struct {
	Name string
	Data []byte
}

// Result is the outcome of writing one Part. It never stands in for the
// connection; it only says how that one write went.
type Result struct {
	Part string
	Want int
	Sent int
	Err  error
}

// OK reports whether the whole part reached the writer.
func (r Result) OK() bool { return r.Err == nil && r.Sent == r.Want }

// Build returns the request line, the host header, any extra headers and the
// empty line that terminates the header block, in write order.
func Build(r *conf.Request) []Part {
	parts := []Part{
		{Name: "requestline", Data: fmt.Appendf(nil, "%s %s %s\r\n", r.Method, r.Path, r.Proto)},
		{Name: "host header", Data: fmt.Appendf(nil, "Host: %s\r\n", r.Host)},
	}
	for _, h := range r.Headers {
		parts = append(parts, Part{Name: "header " + h, Data: fmt.Appendf(nil, "%s\r\n", h)})
	}
	return append(parts, Part{Name: "header end", Data: []byte("\r\n")})
}

// Send writes every part in order and reports each outcome through rep.
// A failed part is reported and the remaining parts are still attempted.
func Send(w io.Writer, parts []Part, rep Reporter) []Result {
	results := make([]Result, 0, len(parts))
	for _, p := range parts {
		n, err := diag.WriteFull(w, p.Data)
		res := Result{Part: p.Name, Want: len(p.Data), Sent: n, Err: err}
		rep.Check(res.OK(), "Failed to send "+p.Name, "Successfully sent "+p.Name)
		results = append(results, res)
	}
	return results
}
