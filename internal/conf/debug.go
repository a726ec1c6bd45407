package conf

import (
	"fmt"
	"net"
)

// Debug configures optional debug endpoints for the fixture server. Keep these
// bound to localhost; they expose runtime internals.
type Debug struct {
	// Pprof enables the Go pprof HTTP endpoints when set (e.g. "127.0.0.1:6060").
	Pprof string `yaml:"pprof"`
	// Diag registers /debug/hexprobe/* status handlers on the pprof listener.
	Diag bool `yaml:"diag"`
}

func (d *Debug) setDefaults() {}

func (d *Debug) validate() []error {
	var errors []error
	if d.Pprof == "" {
		if d.Diag {
			errors = append(errors, fmt.Errorf("debug diag requires debug pprof address"))
		}
		return errors
	}
	if _, err := net.ResolveTCPAddr("tcp", d.Pprof); err != nil {
		errors = append(errors, fmt.Errorf("debug pprof address '%s' is invalid: %v", d.Pprof, err))
	}
	return errors
}
