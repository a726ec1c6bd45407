package conf

import "fmt"

type Output struct {
	Color           *bool  `yaml:"color"`
	Placeholder     string `yaml:"placeholder"`
	AbsoluteOffsets bool   `yaml:"absolute_offsets"`
}

func (o *Output) setDefaults() {
	if o.Color == nil {
		v := true
		o.Color = &v
	}
	if o.Placeholder == "" {
		o.Placeholder = "."
	}
}

func (o *Output) validate() []error {
	var errors []error
	if len(o.Placeholder) != 1 || o.Placeholder[0] < 0x20 || o.Placeholder[0] > 0x7e {
		errors = append(errors, fmt.Errorf("output placeholder must be a single printable ASCII character"))
	}
	return errors
}

func (o *Output) Colored() bool { return o.Color != nil && *o.Color }
