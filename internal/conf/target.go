package conf

import (
	"fmt"
	"slices"
	"time"
)

type Target struct {
	Addr     string  `yaml:"addr"`
	Network  string  `yaml:"network"`
	Timeout_ string  `yaml:"timeout"`
	SOCKS5   *SOCKS5 `yaml:"socks5"`
	KCP      *KCP    `yaml:"kcp"`

	// Timeout bounds connection setup only. Zero blocks until the kernel gives up.
	Timeout time.Duration `yaml:"-"`
}

func (t *Target) setDefaults() {
	if t.Addr == "" {
		t.Addr = "127.0.0.1:8080"
	}
	if t.Network == "" {
		t.Network = "tcp"
	}
	if t.SOCKS5 != nil {
		t.SOCKS5.setDefaults()
	}
	if t.Network == "kcp" {
		if t.KCP == nil {
			t.KCP = &KCP{}
		}
		t.KCP.setDefaults()
	}
}

func (t *Target) validate() []error {
	var errors []error

	// The address itself is parsed by the connector so that a malformed
	// address surfaces as an "Invalid address" dial failure.
	if t.Addr == "" {
		errors = append(errors, fmt.Errorf("target addr is required"))
	}

	validNetworks := []string{"tcp", "kcp"}
	if !slices.Contains(validNetworks, t.Network) {
		errors = append(errors, fmt.Errorf("target network must be one of: %v", validNetworks))
	}

	if t.Timeout_ != "" {
		d, err := time.ParseDuration(t.Timeout_)
		if err != nil {
			errors = append(errors, fmt.Errorf("target timeout '%s' is invalid: %v", t.Timeout_, err))
		} else if d < 0 {
			errors = append(errors, fmt.Errorf("target timeout must not be negative"))
		} else {
			t.Timeout = d
		}
	}

	if t.SOCKS5 != nil {
		if t.Network != "tcp" {
			errors = append(errors, fmt.Errorf("target socks5 is only supported with network 'tcp'"))
		}
		errors = append(errors, t.SOCKS5.validate()...)
	}

	if t.Network == "kcp" {
		if t.KCP == nil {
			errors = append(errors, fmt.Errorf("target.kcp is required when target.network is 'kcp'"))
		} else {
			errors = append(errors, t.KCP.validate()...)
		}
	}

	return errors
}
