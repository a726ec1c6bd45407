package conf

import (
	"fmt"
	"os"
)

// Record enables capture of every received chunk into a local store.
type Record struct {
	Path string `yaml:"path"`
}

func (r *Record) setDefaults() {}

func (r *Record) validate() []error {
	var errors []error
	if r.Path == "" {
		return errors
	}
	if st, err := os.Stat(r.Path); err == nil && !st.IsDir() {
		errors = append(errors, fmt.Errorf("record path '%s' exists and is not a directory", r.Path))
	}
	return errors
}
