package conf

import (
	"fmt"
)

// SOCKS5 routes the probe through a SOCKS5 proxy instead of dialing the target directly.
type SOCKS5 struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	// TCPTimeout is the proxy handshake timeout in seconds.
	TCPTimeout int `yaml:"tcp_timeout"`
}

func (c *SOCKS5) setDefaults() {
	if c.TCPTimeout == 0 {
		c.TCPTimeout = 10
	}
}

func (c *SOCKS5) validate() []error {
	var errors []error

	if _, err := validateAddr(c.Addr, true); err != nil {
		errors = append(errors, fmt.Errorf("socks5: %v", err))
	}
	if (c.Username == "") != (c.Password == "") {
		errors = append(errors, fmt.Errorf("socks5 username/password must both be set (or both be empty)"))
	}
	if c.TCPTimeout < 1 || c.TCPTimeout > 3600 {
		errors = append(errors, fmt.Errorf("socks5 tcp_timeout must be between 1-3600 seconds"))
	}

	return errors
}
