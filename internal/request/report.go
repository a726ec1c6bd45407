package request

import (
	"fmt"
	"io"
)

// Reporter prints one of two messages depending on ok. It has no other effect.
type Reporter interface {
	Check(ok bool, failMsg, okMsg string)
}

type lineReporter struct{ w io.Writer }

// NewReporter prints each check as one line on w.
func NewReporter(w io.Writer) Reporter { return lineReporter{w: w} }

func (r lineReporter) Check(ok bool, failMsg, okMsg string) {
	if ok {
		fmt.Fprintln(r.w, okMsg)
		return
	}
	fmt.Fprintln(r.w, failMsg)
}
