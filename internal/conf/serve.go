package conf

import (
	"fmt"
	"net"
	"net/http"
)

// Serve configures the fixture server that answers probes locally.
type Serve struct {
	Listen_ string `yaml:"listen"`
	Status  int    `yaml:"status"`
	Body    string `yaml:"body"`
	// Silent closes each connection after the request without answering.
	Silent bool         `yaml:"silent"`
	Listen *net.TCPAddr `yaml:"-"`
}

func (s *Serve) setDefaults() {
	if s.Listen_ == "" {
		s.Listen_ = "127.0.0.1:8080"
	}
	if s.Status == 0 {
		s.Status = http.StatusOK
	}
	if s.Body == "" {
		s.Body = "ok\n"
	}
}

func (s *Serve) validate() []error {
	var errors []error

	addr, err := validateAddr(s.Listen_, false)
	if err != nil {
		errors = append(errors, fmt.Errorf("serve listen: %v", err))
	}
	s.Listen = addr

	if s.Status < 100 || s.Status > 999 {
		errors = append(errors, fmt.Errorf("serve status must be between 100-999"))
	}

	return errors
}
