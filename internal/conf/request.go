package conf

import (
	"fmt"
	"strings"
)

// Request describes the bytes written after connecting. With defaults it
// produces exactly "GET /doThing HTTP/1.0\r\n", "Host: localhost:8080\r\n", "\r\n".
type Request struct {
	Method  string   `yaml:"method"`
	Path    string   `yaml:"path"`
	Proto   string   `yaml:"proto"`
	Host    string   `yaml:"host"`
	Headers []string `yaml:"headers"`
}

func (r *Request) setDefaults() {
	if r.Method == "" {
		r.Method = "GET"
	}
	if r.Path == "" {
		r.Path = "/doThing"
	}
	if r.Proto == "" {
		r.Proto = "HTTP/1.0"
	}
	if r.Host == "" {
		r.Host = "localhost:8080"
	}
}

func (r *Request) validate() []error {
	var errors []error

	for name, v := range map[string]string{"method": r.Method, "path": r.Path, "proto": r.Proto} {
		if strings.ContainsAny(v, " \t\r\n") {
			errors = append(errors, fmt.Errorf("request %s '%s' must not contain whitespace", name, v))
		}
	}
	if !strings.HasPrefix(r.Path, "/") && r.Path != "*" {
		errors = append(errors, fmt.Errorf("request path must start with '/'"))
	}
	if strings.ContainsAny(r.Host, "\r\n") {
		errors = append(errors, fmt.Errorf("request host must not contain CR or LF"))
	}
	for i, h := range r.Headers {
		if strings.ContainsAny(h, "\r\n") {
			errors = append(errors, fmt.Errorf("request header %d must not contain CR or LF", i))
			continue
		}
		if k, _, ok := strings.Cut(h, ":"); !ok || strings.TrimSpace(k) == "" {
			errors = append(errors, fmt.Errorf("request header %d '%s' must be 'Name: value'", i, h))
		}
	}

	return errors
}
