package conf

import "fmt"

type Read struct {
	// Bufsize is the capacity of the single receive buffer reused across reads.
	Bufsize int `yaml:"bufsize"`
}

func (r *Read) setDefaults() {
	if r.Bufsize == 0 {
		r.Bufsize = 1024
	}
}

func (r *Read) validate() []error {
	var errors []error
	if r.Bufsize < 64 || r.Bufsize > 1<<20 {
		errors = append(errors, fmt.Errorf("read bufsize must be between 64-1048576 bytes"))
	}
	return errors
}
